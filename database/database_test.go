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

package database

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/internal/cache"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"
)

var created = time.Date(2024, 1, 24, 12, 0, 0, 0, time.UTC)

func newMockDatasource(t *testing.T) (Datasource, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return Datasource{Conn: db}, mock
}

func TestGetDBConnection_Failure(t *testing.T) {
	// Reset the instance and once for testing purposes
	instance = nil
	once = sync.Once{}

	mockConfig := &config.Configuration{
		DataSource: config.DataSourceConfig{
			Dns: "invalid-dns",
		},
	}

	_, err := GetDBConnection(mockConfig)
	assert.Error(t, err)
}

func TestPipelines_Success(t *testing.T) {
	ds, mock := newMockDatasource(t)

	rows := sqlmock.NewRows([]string{"id", "pipeline_id", "name", "project_type", "status", "executor", "created_at", "duration", "attributes"}).
		AddRow("pipe-003", "pipe-003", "ETL Daily Job", "etl", "failed", "aws-lambda", created, 45.23, []byte(`{"errorLogs":["Retry exhausted"]}`)).
		AddRow("pipe-007", "pipe-007", "API Sync", "sync", "failed", "aws-lambda", created, 23.1, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM runboard.pipelines WHERE LOWER(status) = $1 AND executor ILIKE $2 AND duration >= $3 ORDER BY created_at DESC LIMIT $4")).
		WithArgs("failed", "%aws%", 10.0, 25).
		WillReturnRows(rows)

	pipelines, err := ds.Pipelines(context.Background(), model.PipelineQuery{
		Status:      "failed",
		Executor:    "aws",
		DurationGte: ptr.Float64(10),
		Limit:       25,
	})
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.Equal(t, "ETL Daily Job", pipelines[0].Name)
	assert.Equal(t, []interface{}{"Retry exhausted"}, pipelines[0].Attributes["errorLogs"])
	assert.Nil(t, pipelines[1].Attributes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipelines_QueryError(t *testing.T) {
	ds, mock := newMockDatasource(t)

	mock.ExpectQuery("FROM runboard.pipelines").WillReturnError(errors.New("connection reset"))

	_, err := ds.Pipelines(context.Background(), model.PipelineQuery{})
	assert.True(t, apierror.IsCode(err, apierror.ErrInternalServer))
}

func TestMatchPipelines_NegatedOperators(t *testing.T) {
	ds, mock := newMockDatasource(t)

	rows := sqlmock.NewRows([]string{"id", "pipeline_id", "name", "project_type", "status", "executor", "created_at", "duration", "attributes"}).
		AddRow("pipe-001", "pipe-001", "Data Ingestion", "java-11", "success", "k8s-pod", created, 245.67, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM runboard.pipelines WHERE LOWER(status) <> $1 AND LOWER(executor) NOT IN ($2, $3) ORDER BY created_at DESC")).
		WithArgs("failed", "aws-lambda", "gpu-pod").
		WillReturnRows(rows)

	pipelines, err := ds.MatchPipelines(context.Background(), []model.FilterCondition{
		{ID: "1", Field: model.FieldStatus, Operator: model.OpNotEqual, Value: "failed", Logic: model.LogicAnd},
		{ID: "2", Field: model.FieldExecutor, Operator: model.OpNotIn, Value: "aws-lambda, gpu-pod", Logic: model.LogicAnd},
	})
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	assert.Equal(t, "pipe-001", pipelines[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchProjects_OrChainFetchesAll(t *testing.T) {
	ds, mock := newMockDatasource(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM runboard.projects ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "project_type", "status", "repository", "language", "created_at", "attributes"}))

	projects, err := ds.MatchProjects(context.Background(), []model.FilterCondition{
		{ID: "1", Field: model.FieldStatus, Operator: model.OpEqual, Value: "active", Logic: model.LogicAnd},
		{ID: "2", Field: model.FieldLanguage, Operator: model.OpEqual, Value: "Go", Logic: model.LogicOr},
	})
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjects_OffsetOnly(t *testing.T) {
	ds, mock := newMockDatasource(t)

	rows := sqlmock.NewRows([]string{"id", "project_id", "name", "project_type", "status", "repository", "language", "created_at", "attributes"}).
		AddRow("proj-002", "proj-002", "Payment Service", "java-11", "deploying", "github.com/company/payment", "Go", created, []byte(`{}`))

	mock.ExpectQuery(regexp.QuoteMeta("FROM runboard.projects WHERE LOWER(status) = $1 ORDER BY created_at DESC OFFSET $2")).
		WithArgs("deploying", 5).
		WillReturnRows(rows)

	projects, err := ds.Projects(context.Background(), model.ProjectQuery{Status: "Deploying", Offset: 5})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Go", projects[0].Language)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPipeline_UniqueViolation(t *testing.T) {
	ds, mock := newMockDatasource(t)

	mock.ExpectExec("INSERT INTO runboard.pipelines").
		WillReturnError(&pq.Error{Code: "23505", Message: "unique_violation"})

	err := ds.InsertPipeline(context.Background(), model.Pipeline{ID: "pipe-001"})
	assert.True(t, apierror.IsCode(err, apierror.ErrConflict))
}

func TestInsertProject_Success(t *testing.T) {
	ds, mock := newMockDatasource(t)

	p := model.Project{ID: "proj-001", ProjectID: "proj-001", Name: "E-Commerce Platform", CreatedAt: created,
		Attributes: map[string]interface{}{"team": "frontend"}}
	mock.ExpectExec("INSERT INTO runboard.projects").
		WithArgs(p.ID, p.ProjectID, p.Name, p.ProjectType, p.Status, p.Repository, p.Language, p.CreatedAt, []byte(`{"team":"frontend"}`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, ds.InsertProject(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func savedViewRows(views ...model.SavedView) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "conditions", "created_at", "updated_at"})
	for _, v := range views {
		conditions, _ := json.Marshal(v.Conditions)
		rows.AddRow(v.ID, v.Name, conditions, v.CreatedAt, v.UpdatedAt)
	}
	return rows
}

func TestSavedViews_CachedList(t *testing.T) {
	ds, mock := newMockDatasource(t)
	mr := miniredis.RunT(t)
	ds.Cache = cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	failed := model.SavedView{
		ID:   "view_1",
		Name: "Failed Pipelines",
		Conditions: []model.FilterCondition{
			{ID: "cond_1", Field: model.FieldStatus, Operator: model.OpEqual, Value: "failed", Logic: model.LogicAnd},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}

	mock.ExpectQuery("FROM runboard.saved_views").WillReturnRows(savedViewRows(failed))

	views, err := ds.ListSavedViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, failed.Conditions, views[0].Conditions)

	// Served from the cache, no query expected.
	views, err = ds.ListSavedViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Failed Pipelines", views[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())

	// Deleting invalidates the cached list.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM runboard.saved_views WHERE id = $1")).
		WithArgs("view_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM runboard.saved_views").WillReturnRows(savedViewRows())

	require.NoError(t, ds.DeleteSavedView(ctx, "view_1"))
	views, err = ds.ListSavedViews(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSavedView(t *testing.T) {
	ds, mock := newMockDatasource(t)

	view := model.SavedView{
		ID:   "view_2",
		Name: "Long Running",
		Conditions: []model.FilterCondition{
			{ID: "cond_2", Field: model.FieldDuration, Operator: model.OpGreaterThan, Value: "300", Logic: model.LogicAnd},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	conditions, err := json.Marshal(view.Conditions)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO runboard.saved_views").
		WithArgs(view.ID, view.Name, conditions, view.CreatedAt, view.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	stored, err := ds.CreateSavedView(context.Background(), view)
	require.NoError(t, err)
	assert.Equal(t, view, stored)

	mock.ExpectExec("INSERT INTO runboard.saved_views").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})
	_, err = ds.CreateSavedView(context.Background(), view)
	assert.True(t, apierror.IsCode(err, apierror.ErrConflict))
}

func TestDeleteSavedView_Unknown(t *testing.T) {
	ds, mock := newMockDatasource(t)

	mock.ExpectExec("DELETE FROM runboard.saved_views").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, ds.DeleteSavedView(context.Background(), "missing"))
}
