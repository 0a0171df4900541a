package filter

import (
	"strconv"

	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/wacul/ptr"
)

// ToPipelineQuery maps the allow-listed fields of conditions onto a pipeline query.
// Other fields are dropped. A DURATION value that is not a number skips its clause and is
// reported in the returned list; translation itself never fails.
func ToPipelineQuery(conditions []model.FilterCondition, limit, offset int) (model.PipelineQuery, []error) {
	q := model.PipelineQuery{Limit: limit, Offset: offset}
	var errs []error

	for _, c := range conditions {
		switch ResolveField(string(c.Field)) {
		case model.FieldStatus:
			q.Status = normalizeValue(c.Value)
		case model.FieldProjectType:
			q.ProjectType = normalizeValue(c.Value)
		case model.FieldExecutor:
			q.Executor = normalizeValue(c.Value)
		case model.FieldDuration:
			op := CanonicalOperator(c.Operator)
			if !isOrdering(op) {
				continue
			}
			d, err := parseNumber(c.Value)
			if err != nil {
				errs = append(errs, apierror.NewTranslationError(string(model.FieldDuration), c.Value, err))
				continue
			}
			if op == model.OpGreaterThan || op == model.OpGreaterOrEqual {
				q.DurationGte = ptr.Float64(d)
			} else {
				q.DurationLte = ptr.Float64(d)
			}
		}
	}
	return q, errs
}

// ToProjectQuery maps the allow-listed fields of conditions onto a project query.
func ToProjectQuery(conditions []model.FilterCondition, limit, offset int) (model.ProjectQuery, []error) {
	q := model.ProjectQuery{Limit: limit, Offset: offset}
	for _, c := range conditions {
		switch ResolveField(string(c.Field)) {
		case model.FieldStatus:
			q.Status = normalizeValue(c.Value)
		case model.FieldProjectType:
			q.ProjectType = normalizeValue(c.Value)
		case model.FieldLanguage:
			q.Language = normalizeValue(c.Value)
		}
	}
	return q, nil
}

// PipelineQueryConditions expresses a pipeline query as conditions, so an in-memory source can
// answer it with the predicate evaluator. status is an equality match, projectType and executor
// are substring matches, and the duration bounds are inclusive.
func PipelineQueryConditions(q model.PipelineQuery) []model.FilterCondition {
	var conds []model.FilterCondition
	add := func(field model.Field, op model.Operator, value string) {
		conds = append(conds, model.FilterCondition{
			ID:       "query-" + strconv.Itoa(len(conds)+1),
			Field:    field,
			Operator: op,
			Value:    value,
			Logic:    model.LogicAnd,
		})
	}
	if q.Status != "" {
		add(model.FieldStatus, model.OpEqual, q.Status)
	}
	if q.ProjectType != "" {
		add(model.FieldProjectType, model.OpLike, q.ProjectType)
	}
	if q.Executor != "" {
		add(model.FieldExecutor, model.OpLike, q.Executor)
	}
	if q.DurationGte != nil {
		add(model.FieldDuration, model.OpGreaterOrEqual, strconv.FormatFloat(*q.DurationGte, 'f', -1, 64))
	}
	if q.DurationLte != nil {
		add(model.FieldDuration, model.OpLessOrEqual, strconv.FormatFloat(*q.DurationLte, 'f', -1, 64))
	}
	return conds
}

// ProjectQueryConditions is PipelineQueryConditions for projects.
func ProjectQueryConditions(q model.ProjectQuery) []model.FilterCondition {
	var conds []model.FilterCondition
	add := func(field model.Field, op model.Operator, value string) {
		conds = append(conds, model.FilterCondition{
			ID:       "query-" + strconv.Itoa(len(conds)+1),
			Field:    field,
			Operator: op,
			Value:    value,
			Logic:    model.LogicAnd,
		})
	}
	if q.Status != "" {
		add(model.FieldStatus, model.OpEqual, q.Status)
	}
	if q.ProjectType != "" {
		add(model.FieldProjectType, model.OpLike, q.ProjectType)
	}
	if q.Language != "" {
		add(model.FieldLanguage, model.OpLike, q.Language)
	}
	return conds
}
