package filter

import (
	"fmt"
	"strings"

	"github.com/jerry-enebeli/runboard/model"
)

// BuildPipelineQuery turns a pipeline query into parameterized Postgres conditions with the
// same meaning the in-memory source gives it: status is compared case-insensitively,
// projectType and executor are substring matches, duration bounds are inclusive.
func BuildPipelineQuery(q model.PipelineQuery, alias string, startArgPos int) *BuildResult {
	b := newBuilder(TablePipelines, alias, startArgPos)
	b.equalFold(model.FieldStatus, q.Status)
	b.contains(model.FieldProjectType, q.ProjectType)
	b.contains(model.FieldExecutor, q.Executor)
	if q.DurationGte != nil {
		b.compare(model.FieldDuration, ">=", *q.DurationGte)
	}
	if q.DurationLte != nil {
		b.compare(model.FieldDuration, "<=", *q.DurationLte)
	}
	return b.result()
}

// BuildProjectQuery is BuildPipelineQuery for projects.
func BuildProjectQuery(q model.ProjectQuery, alias string, startArgPos int) *BuildResult {
	b := newBuilder(TableProjects, alias, startArgPos)
	b.equalFold(model.FieldStatus, q.Status)
	b.contains(model.FieldProjectType, q.ProjectType)
	b.contains(model.FieldLanguage, q.Language)
	return b.result()
}

// BuildConditionQuery pushes the clauses of a condition list that Postgres can answer with
// the evaluator's own semantics into parameterized conditions. The result selects a superset
// of the rows Matches accepts, so callers evaluate the list again over the fetched rows.
// Only an all-AND chain narrows; a chain with an OR selects the whole table.
func BuildConditionQuery(table string, conditions []model.FilterCondition, alias string, startArgPos int) *BuildResult {
	b := newBuilder(table, alias, startArgPos)
	for _, c := range conditions[min(1, len(conditions)):] {
		if ResolveLogic(c.Logic) == model.LogicOr {
			return b.result()
		}
	}
	for _, c := range conditions {
		b.condition(c)
	}
	return b.result()
}

type builder struct {
	table  string
	alias  string
	argPos int
	res    *BuildResult
}

func newBuilder(table, alias string, startArgPos int) *builder {
	return &builder{
		table:  table,
		alias:  alias,
		argPos: startArgPos,
		res: &BuildResult{
			Conditions: []string{},
			Args:       []interface{}{},
		},
	}
}

func (b *builder) column(field model.Field) string {
	// Resolve field to safe column name (breaks taint chain for static analyzers)
	col := safeColumnForTableAndField(b.table, field)
	if col == "" {
		return ""
	}
	if b.alias != "" {
		return fmt.Sprintf("%s.%s", b.alias, col)
	}
	return col
}

func (b *builder) add(condition string, arg interface{}) {
	b.res.Conditions = append(b.res.Conditions, condition)
	b.res.Args = append(b.res.Args, arg)
	b.argPos++
}

func (b *builder) equalFold(field model.Field, value string) {
	col := b.column(field)
	if value == "" || col == "" {
		return
	}
	b.add(fmt.Sprintf("LOWER(%s) = $%d", col, b.argPos), strings.ToLower(value))
}

func (b *builder) contains(field model.Field, value string) {
	col := b.column(field)
	if value == "" || col == "" {
		return
	}
	b.add(fmt.Sprintf("%s ILIKE $%d", col, b.argPos), "%"+escapeLike(value)+"%")
}

func (b *builder) compare(field model.Field, op string, value float64) {
	col := b.column(field)
	if col == "" {
		return
	}
	b.add(fmt.Sprintf("%s %s $%d", col, op, b.argPos), value)
}

func (b *builder) condition(c model.FilterCondition) {
	field := ResolveField(string(c.Field))
	col := b.column(field)
	if col == "" {
		return
	}

	op := CanonicalOperator(c.Operator)
	if field == model.FieldDuration {
		if !isOrdering(op) {
			return
		}
		if d, err := parseNumber(c.Value); err == nil {
			b.compare(field, string(op), d)
		}
		return
	}
	if field == model.FieldCreatedAt {
		return
	}

	switch op {
	case model.OpEqual, model.OpNotEqual:
		sqlOp := "="
		if op == model.OpNotEqual {
			sqlOp = "<>"
		}
		b.add(fmt.Sprintf("LOWER(%s) %s $%d", col, sqlOp, b.argPos), strings.ToLower(c.Value))
	case model.OpLike:
		b.add(fmt.Sprintf("%s ILIKE $%d", col, b.argPos), "%"+escapeLike(c.Value)+"%")
	case model.OpIn, model.OpNotIn:
		items := splitList(c.Value)
		placeholders := make([]string, len(items))
		args := make([]interface{}, len(items))
		for i, item := range items {
			placeholders[i] = fmt.Sprintf("$%d", b.argPos+i)
			args[i] = item
		}
		sqlOp := "IN"
		if op == model.OpNotIn {
			sqlOp = "NOT IN"
		}
		b.res.Conditions = append(b.res.Conditions, fmt.Sprintf("LOWER(%s) %s (%s)", col, sqlOp, strings.Join(placeholders, ", ")))
		b.res.Args = append(b.res.Args, args...)
		b.argPos += len(items)
	}
}

func (b *builder) result() *BuildResult {
	b.res.NextArgPos = b.argPos
	b.res.OrderBy = fmt.Sprintf("%s DESC", b.column(model.FieldCreatedAt))
	return b.res
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

// safeColumnForTableAndField maps a field to a column name using only string literals.
// Returns empty string for unknown fields.
func safeColumnForTableAndField(table string, field model.Field) string {
	switch table {
	case TablePipelines:
		switch field {
		case model.FieldID:
			return "id"
		case model.FieldPipelineID:
			return "pipeline_id"
		case model.FieldName:
			return "name"
		case model.FieldProjectType:
			return "project_type"
		case model.FieldStatus:
			return "status"
		case model.FieldExecutor:
			return "executor"
		case model.FieldDuration:
			return "duration"
		case model.FieldCreatedAt:
			return "created_at"
		}
	case TableProjects:
		switch field {
		case model.FieldID:
			return "id"
		case model.FieldProjectID:
			return "project_id"
		case model.FieldName:
			return "name"
		case model.FieldProjectType:
			return "project_type"
		case model.FieldStatus:
			return "status"
		case model.FieldRepository:
			return "repository"
		case model.FieldLanguage:
			return "language"
		case model.FieldCreatedAt:
			return "created_at"
		}
	}
	return ""
}
