package savedview

import (
	"time"

	"github.com/jerry-enebeli/runboard/model"
)

// Fixtures returns the four sample views, stamped with now.
func Fixtures(now time.Time) []model.SavedView {
	cond := func(id string, field model.Field, op model.Operator, value string, logic model.Logic) model.FilterCondition {
		return model.FilterCondition{ID: id, Field: field, Operator: op, Value: value, Logic: logic}
	}
	views := []model.SavedView{
		{
			ID:         "view-1",
			Name:       "Failed Pipelines",
			Conditions: []model.FilterCondition{cond("1", model.FieldStatus, model.OpEqual, "failed", model.LogicAnd)},
		},
		{
			ID:   "view-2",
			Name: "Running or Pending",
			Conditions: []model.FilterCondition{
				cond("1", model.FieldStatus, model.OpEqual, "running", model.LogicOr),
				cond("2", model.FieldStatus, model.OpEqual, "pending", model.LogicOr),
			},
		},
		{
			ID:         "view-3",
			Name:       "Long Running (>5min)",
			Conditions: []model.FilterCondition{cond("1", model.FieldDuration, model.OpGreaterThan, "300", model.LogicAnd)},
		},
		{
			ID:         "view-4",
			Name:       "GitLab CI Only",
			Conditions: []model.FilterCondition{cond("1", model.FieldProjectType, model.OpEqual, "gitlab", model.LogicAnd)},
		},
	}
	for i := range views {
		views[i].CreatedAt = now
		views[i].UpdatedAt = now
	}
	return views
}
