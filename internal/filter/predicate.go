package filter

import (
	"strings"

	"github.com/jerry-enebeli/runboard/model"
)

// MatchCondition evaluates a single condition against row.
// Fields unknown to the schema compare as "", so equality style operators fail on them.
// An unrecognized operator always matches.
func MatchCondition[T any](schema Schema[T], row T, c model.FilterCondition) bool {
	raw, _ := schema.Value(row, c.Field)
	rowValue := strings.ToLower(raw)
	condValue := strings.ToLower(c.Value)

	switch op := CanonicalOperator(c.Operator); op {
	case model.OpEqual:
		return rowValue == condValue
	case model.OpNotEqual:
		return rowValue != condValue
	case model.OpGreaterThan, model.OpGreaterOrEqual, model.OpLessThan, model.OpLessOrEqual:
		cmp, ok := compareOrdered(raw, c.Value)
		if !ok {
			return false
		}
		switch op {
		case model.OpGreaterThan:
			return cmp > 0
		case model.OpGreaterOrEqual:
			return cmp >= 0
		case model.OpLessThan:
			return cmp < 0
		default:
			return cmp <= 0
		}
	case model.OpLike:
		return strings.Contains(rowValue, condValue)
	case model.OpIn:
		return inList(rowValue, c.Value)
	case model.OpNotIn:
		return !inList(rowValue, c.Value)
	default:
		return true
	}
}

// Matches evaluates conditions as one flat chain, ((c1 L2 c2) L3 c3)..., where Ln is the
// logic of the nth condition. An empty list matches every row.
func Matches[T any](schema Schema[T], row T, conditions []model.FilterCondition) bool {
	if len(conditions) == 0 {
		return true
	}
	result := MatchCondition(schema, row, conditions[0])
	for _, c := range conditions[1:] {
		if ResolveLogic(c.Logic) == model.LogicOr {
			result = result || MatchCondition(schema, row, c)
		} else {
			result = result && MatchCondition(schema, row, c)
		}
	}
	return result
}

// FilterAll returns the rows matching conditions, preserving order. The input is not modified.
func FilterAll[T any](schema Schema[T], rows []T, conditions []model.FilterCondition) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if Matches(schema, row, conditions) {
			out = append(out, row)
		}
	}
	return out
}

func inList(rowValue, list string) bool {
	for _, item := range splitList(list) {
		if item == rowValue {
			return true
		}
	}
	return false
}
