package filter

import (
	"strings"

	"github.com/jerry-enebeli/runboard/model"
)

// ResolveOperator maps an operator token, symbolic or spelled out, to its canonical form.
// Unknown tokens resolve to "". Only input parsers use it; stored and evaluated conditions
// carry canonical tokens, see CanonicalOperator.
func ResolveOperator(s string) model.Operator {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "=", "==", "eq":
		return model.OpEqual
	case "!=", "<>", "ne", "neq":
		return model.OpNotEqual
	case ">", "gt":
		return model.OpGreaterThan
	case ">=", "gte", "gteq":
		return model.OpGreaterOrEqual
	case "<", "lt":
		return model.OpLessThan
	case "<=", "lte", "lteq":
		return model.OpLessOrEqual
	case "like":
		return model.OpLike
	case "in":
		return model.OpIn
	case "not in", "notin", "nin":
		return model.OpNotIn
	default:
		return ""
	}
}

// CanonicalOperator returns op when it is exactly one of model.Operators, or "" otherwise.
func CanonicalOperator(op model.Operator) model.Operator {
	for _, known := range model.Operators {
		if op == known {
			return op
		}
	}
	return ""
}

func isOrdering(op model.Operator) bool {
	switch op {
	case model.OpGreaterThan, model.OpGreaterOrEqual, model.OpLessThan, model.OpLessOrEqual:
		return true
	}
	return false
}

// ResolveLogic treats anything but OR as AND.
func ResolveLogic(l model.Logic) model.Logic {
	if strings.EqualFold(strings.TrimSpace(string(l)), string(model.LogicOr)) {
		return model.LogicOr
	}
	return model.LogicAnd
}
