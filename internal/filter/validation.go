package filter

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" suggestion.
const maxSuggestionDistance = 3

var errBlank = errors.New("cannot be blank")

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}

// ValidateConditions rejects a condition list in which any value is empty or whitespace.
// The error details carry the ids of the offending conditions.
func ValidateConditions(conditions []model.FilterCondition) error {
	var blank []string
	for i := range conditions {
		c := conditions[i]
		if err := validation.ValidateStruct(&c,
			validation.Field(&c.Value, validation.By(notBlank)),
		); err != nil {
			blank = append(blank, c.ID)
		}
	}
	if len(blank) > 0 {
		return apierror.NewValidationError("condition values must not be empty", map[string]interface{}{"condition_ids": blank})
	}
	return nil
}

// Lint reports conditions the evaluator will treat specially: fields outside known (which
// never match) and operators it does not recognize (which always match). Pass a schema's
// Known fields. Close misspellings get a suggestion.
func Lint(fields []model.Field, conditions []model.FilterCondition) []string {
	known := make(map[model.Field]bool, len(fields))
	candidates := make([]string, 0, len(fields))
	for _, f := range fields {
		known[f] = true
		candidates = append(candidates, string(f))
	}
	operators := make([]string, 0, len(model.Operators))
	for _, op := range model.Operators {
		operators = append(operators, string(op))
	}

	var warnings []string
	for _, c := range conditions {
		field := ResolveField(string(c.Field))
		if !known[field] {
			warnings = append(warnings, withSuggestion(fmt.Sprintf("unknown field '%s' matches no rows", c.Field), string(field), candidates))
		}
		if CanonicalOperator(c.Operator) == "" {
			warnings = append(warnings, withSuggestion(fmt.Sprintf("unknown operator '%s' is ignored", c.Operator), strings.ToUpper(string(c.Operator)), operators))
		}
	}
	return warnings
}

func withSuggestion(message, input string, candidates []string) string {
	if s := Suggest(input, candidates); s != "" {
		return fmt.Sprintf("%s (did you mean %s?)", message, s)
	}
	return message
}

// Suggest returns the candidate closest to input, or "" when none is close enough.
func Suggest(input string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range candidates {
		distance := levenshtein.DistanceForStrings([]rune(input), []rune(candidate), levenshtein.DefaultOptions)
		if distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}
