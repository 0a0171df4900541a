/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import "strings"

// Field names a filterable column of a pipeline or project record.
type Field string

const (
	FieldID          Field = "ID"
	FieldName        Field = "NAME"
	FieldPipelineID  Field = "PIPELINE_ID"
	FieldProjectID   Field = "PROJECT_ID"
	FieldProjectType Field = "PROJECT_TYPE"
	FieldStatus      Field = "STATUS"
	FieldCreatedAt   Field = "CREATED_AT"
	FieldDuration    Field = "DURATION"
	FieldExecutor    Field = "EXECUTOR"
	FieldLanguage    Field = "LANGUAGE"
	FieldRepository  Field = "REPOSITORY"
)

// PipelineFields are the fields offered by the query builder on the pipelines page, in picker order.
var PipelineFields = []Field{
	FieldPipelineID,
	FieldProjectType,
	FieldStatus,
	FieldCreatedAt,
	FieldDuration,
	FieldExecutor,
}

// ProjectFields are the fields offered by the query builder on the projects page, in picker order.
var ProjectFields = []Field{
	FieldProjectID,
	FieldProjectType,
	FieldStatus,
	FieldCreatedAt,
	FieldLanguage,
	FieldRepository,
}

// Operator is a comparison operator of a filter condition.
type Operator string

const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpGreaterThan    Operator = ">"
	OpLessThan       Operator = "<"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpLike           Operator = "LIKE"
	OpIn             Operator = "IN"
	OpNotIn          Operator = "NOT IN"
)

// Operators lists every operator the query builder offers, in picker order.
var Operators = []Operator{
	OpEqual,
	OpNotEqual,
	OpGreaterThan,
	OpLessThan,
	OpGreaterOrEqual,
	OpLessOrEqual,
	OpLike,
	OpIn,
	OpNotIn,
}

// Logic joins a condition to the one before it.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// FilterCondition is one clause of a flat WHERE-style chain.
// The logic of the first condition in a list is never applied.
type FilterCondition struct {
	ID       string   `json:"id"`
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
	Logic    Logic    `json:"logic"`
}

// HasValue reports whether the condition carries a non-blank value.
func (c FilterCondition) HasValue() bool {
	return strings.TrimSpace(c.Value) != ""
}

// SameClause reports whether two conditions express the same clause, ignoring ids.
func (c FilterCondition) SameClause(other FilterCondition) bool {
	return c.Field == other.Field &&
		c.Operator == other.Operator &&
		c.Value == other.Value &&
		c.Logic == other.Logic
}

// CloneConditions copies a condition list so the result never aliases the input.
func CloneConditions(conditions []FilterCondition) []FilterCondition {
	if conditions == nil {
		return nil
	}
	out := make([]FilterCondition, len(conditions))
	copy(out, conditions)
	return out
}

// RemintConditions copies a condition list giving every copy a fresh id from next.
func RemintConditions(conditions []FilterCondition, next func() string) []FilterCondition {
	out := CloneConditions(conditions)
	for i := range out {
		out[i].ID = next()
	}
	return out
}

// ConditionPatch is a partial update of a condition. Nil fields are left untouched.
type ConditionPatch struct {
	Field    *Field    `json:"field,omitempty"`
	Operator *Operator `json:"operator,omitempty"`
	Value    *string   `json:"value,omitempty"`
	Logic    *Logic    `json:"logic,omitempty"`
}

// Apply merges the patch into c and returns the result.
func (p ConditionPatch) Apply(c FilterCondition) FilterCondition {
	if p.Field != nil {
		c.Field = *p.Field
	}
	if p.Operator != nil {
		c.Operator = *p.Operator
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.Logic != nil {
		c.Logic = *p.Logic
	}
	return c
}
