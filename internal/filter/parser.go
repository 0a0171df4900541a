package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/jerry-enebeli/runboard/model"
)

const (
	defaultMaxFilters  = 20
	defaultMaxInValues = 100
	defaultMaxCharLen  = 1000
)

// ParseFromQuery reads field_operator=value query parameters (status_eq=failed,
// project_type_like=gitlab, duration_gte=300, status_notin=failed,pending) into an
// AND-joined condition list. Parameters are taken in key order and each condition is
// identified by its parameter name. Returns errors for invalid params rather than
// silently dropping them.
func ParseFromQuery(queryParams url.Values, opts *ParseOptions) *ParseResult {
	maxFilters := defaultMaxFilters
	maxInValues := defaultMaxInValues
	maxCharLen := defaultMaxCharLen
	if opts != nil {
		if opts.MaxFilters > 0 {
			maxFilters = opts.MaxFilters
		}
		if opts.MaxInValues > 0 {
			maxInValues = opts.MaxInValues
		}
		if opts.MaxCharLen > 0 {
			maxCharLen = opts.MaxCharLen
		}
	}

	result := &ParseResult{
		Conditions: make([]model.FilterCondition, 0),
		Errors:     make([]ParseError, 0),
	}

	keys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		values := queryParams[key]
		if len(values) == 0 || isReservedParam(key) {
			continue
		}

		idx := strings.LastIndex(key, "_")
		if idx <= 0 || idx == len(key)-1 {
			continue
		}
		operator := ResolveOperator(key[idx+1:])
		if operator == "" {
			// not a filter, e.g. a cache buster
			continue
		}
		field := ResolveField(key[:idx])

		if len(result.Conditions) >= maxFilters {
			result.Errors = append(result.Errors, ParseError{
				Param:   key,
				Message: fmt.Sprintf("exceeded maximum number of filters (%d)", maxFilters),
			})
			continue
		}

		value := values[0]
		if len(value) > maxCharLen {
			result.Errors = append(result.Errors, ParseError{
				Param:   key,
				Message: fmt.Sprintf("value exceeds maximum length (%d chars)", maxCharLen),
			})
			continue
		}

		if (operator == model.OpIn || operator == model.OpNotIn) && len(strings.Split(value, ",")) > maxInValues {
			result.Errors = append(result.Errors, ParseError{
				Param:   key,
				Message: fmt.Sprintf("%s operator exceeds maximum values (%d)", operator, maxInValues),
			})
			continue
		}

		result.Conditions = append(result.Conditions, model.FilterCondition{
			ID:       key,
			Field:    field,
			Operator: operator,
			Value:    value,
			Logic:    model.LogicAnd,
		})
	}

	return result
}
