package runboard

import (
	"context"
	"errors"
	"testing"

	"github.com/jerry-enebeli/runboard/dashboard"
	"github.com/jerry-enebeli/runboard/database/mocks"
	"github.com/jerry-enebeli/runboard/datasource"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/jerry-enebeli/runboard/savedview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostgresBackingEvaluatesConditions(t *testing.T) {
	db := new(mocks.MockDataSource)
	r := New(db, savedview.NewPostgresStore(db), BackingPostgres)

	conditions := []model.FilterCondition{
		{ID: "1", Field: model.FieldStatus, Operator: model.OpEqual, Value: "FAILED"},
		{ID: "2", Field: model.FieldDuration, Operator: model.OpGreaterThan, Value: "30", Logic: model.LogicAnd},
	}
	// the narrowed fetch may return extra rows; the evaluator has the last word
	db.On("MatchPipelines", mock.Anything, conditions).Return(datasource.FixturePipelines(), nil)

	res, err := r.Query(context.Background(), dashboard.DomainPipelines, conditions, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "pipe-003", res.Rows[0].ID)
	assert.Empty(t, res.TranslationErrors)
	db.AssertExpectations(t)
	db.AssertNotCalled(t, "Pipelines", mock.Anything, mock.Anything)
}

func TestPostgresBackingNegatedOperators(t *testing.T) {
	tests := []struct {
		name string
		cond model.FilterCondition
	}{
		{name: "not equal", cond: model.FilterCondition{ID: "1", Field: model.FieldStatus, Operator: model.OpNotEqual, Value: "failed"}},
		{name: "not in", cond: model.FilterCondition{ID: "1", Field: model.FieldStatus, Operator: model.OpNotIn, Value: "failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mocks.MockDataSource)
			r := New(db, savedview.NewPostgresStore(db), BackingPostgres)
			db.On("MatchPipelines", mock.Anything, mock.Anything).Return(datasource.FixturePipelines(), nil)

			res, err := r.Query(context.Background(), dashboard.DomainPipelines, []model.FilterCondition{tt.cond}, 1, 100)
			require.NoError(t, err)
			assert.Equal(t, 10, res.Total)
			for _, row := range res.Rows {
				assert.NotEqual(t, model.StatusFailed, row.Status, row.ID)
			}
			assert.Equal(t, "SELECT * FROM pipelines WHERE STATUS "+string(tt.cond.Operator)+" 'failed'", res.Preview)
		})
	}
}

func TestPostgresBackingWithPlainSource(t *testing.T) {
	r := New(datasource.NewMockSource(0), savedview.NewMemoryStore(), BackingPostgres)
	conditions := []model.FilterCondition{
		{ID: "1", Field: model.FieldStatus, Operator: model.OpNotEqual, Value: "failed"},
	}

	res, err := r.Query(context.Background(), dashboard.DomainPipelines, conditions, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Total)
}

func TestPostgresBackingSourceError(t *testing.T) {
	db := new(mocks.MockDataSource)
	r := New(db, savedview.NewPostgresStore(db), BackingPostgres)

	failure := apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve projects", errors.New("connection reset"))
	db.On("MatchProjects", mock.Anything, mock.Anything).Return([]model.Project(nil), failure)

	_, err := r.Query(context.Background(), dashboard.DomainProjects, nil, 1, 10)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrInternalServer))
}

func TestPostgresBackingSaveView(t *testing.T) {
	db := new(mocks.MockDataSource)
	r := New(db, savedview.NewPostgresStore(db), BackingPostgres)

	db.On("CreateSavedView", mock.Anything, mock.MatchedBy(func(v model.SavedView) bool {
		return v.Name == "Failures" && len(v.Conditions) == 1 && v.Conditions[0].ID != "cond-1"
	})).Return(model.SavedView{ID: "view_1", Name: "Failures"}, nil)

	page := dashboard.NewPage(r.Loader(dashboard.DomainPipelines))
	ctl := r.Controller(dashboard.DomainPipelines, page)
	c := ctl.AddCondition()
	value := "failed"
	ctl.UpdateCondition(c.ID, model.ConditionPatch{Value: &value})

	view, err := ctl.SaveView(context.Background(), "Failures")
	require.NoError(t, err)
	assert.Equal(t, "view_1", view.ID)
	assert.Equal(t, dashboard.ModeLibrary, ctl.State().Mode)
	db.AssertExpectations(t)
}
