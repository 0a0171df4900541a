package main

import (
	"fmt"
	"strings"

	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
)

// parseClause reads one --where flag: "[AND|OR] FIELD OPERATOR VALUE", for example
// "or executor like lambda" or "status not in failed,pending". The value is the rest of
// the line and may be empty.
func parseClause(s string) (model.ConditionPatch, error) {
	tokens := strings.Fields(s)
	logic := model.LogicAnd
	if len(tokens) > 0 {
		switch strings.ToUpper(tokens[0]) {
		case string(model.LogicAnd):
			tokens = tokens[1:]
		case string(model.LogicOr):
			logic = model.LogicOr
			tokens = tokens[1:]
		}
	}
	if len(tokens) < 2 {
		return model.ConditionPatch{}, fmt.Errorf("clause %q needs a field and an operator", s)
	}

	field := filter.ResolveField(tokens[0])
	opLen := 1
	if strings.EqualFold(tokens[1], "not") && len(tokens) > 2 && strings.EqualFold(tokens[2], "in") {
		opLen = 2
	}
	op := filter.ResolveOperator(strings.Join(tokens[1:1+opLen], " "))
	if op == "" {
		return model.ConditionPatch{}, fmt.Errorf("clause %q has an unknown operator %q", s, tokens[1])
	}
	value := strings.Join(tokens[1+opLen:], " ")

	return model.ConditionPatch{Field: &field, Operator: &op, Value: &value, Logic: &logic}, nil
}
