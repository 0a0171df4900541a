package runboard

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/dashboard"
	"github.com/jerry-enebeli/runboard/datasource"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/internal/request"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/jerry-enebeli/runboard/savedview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRunboard() *Runboard {
	return New(datasource.NewMockSource(0), savedview.NewMemoryStore(), BackingMock)
}

func rowIDs(rows []model.TableRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestNewRunboardBacking(t *testing.T) {
	zero := 0
	r, err := NewRunboard(&config.Configuration{Mock: config.MockDataConfig{UseMock: true, RowsLatencyMs: &zero, ViewsLatencyMs: &zero}})
	require.NoError(t, err)
	assert.Equal(t, BackingMock, r.Backing())
	assert.Nil(t, r.DB())

	r, err = NewRunboard(&config.Configuration{Mock: config.MockDataConfig{UseMock: true, RowsLatencyMs: &zero, ViewsLatencyMs: &zero, FakeRows: 5}})
	require.NoError(t, err)
	res, err := r.Query(context.Background(), dashboard.DomainProjects, nil, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 13, res.Total)

	r, err = NewRunboard(&config.Configuration{API: config.APIConfig{BaseURL: "https://api.example.com"}})
	require.NoError(t, err)
	assert.Equal(t, BackingRemote, r.Backing())
	assert.IsType(t, &datasource.RemoteSource{}, r.Source())
	assert.IsType(t, &savedview.RemoteStore{}, r.Store())
}

func TestQueryFiltersInMemory(t *testing.T) {
	r := newMockRunboard()
	conditions := []model.FilterCondition{
		{ID: "1", Field: model.FieldStatus, Operator: model.OpEqual, Value: "failed", Logic: model.LogicAnd},
	}

	res, err := r.Query(context.Background(), dashboard.DomainPipelines, conditions, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"pipe-003", "pipe-007"}, rowIDs(res.Rows))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, dashboard.Range{Start: 1, End: 2, TotalPages: 1}, res.Range)
	assert.Equal(t, "SELECT * FROM pipelines WHERE STATUS = 'failed'", res.Preview)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.TranslationErrors)
}

func TestQueryPaging(t *testing.T) {
	r := newMockRunboard()

	res, err := r.Query(context.Background(), dashboard.DomainPipelines, nil, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, dashboard.DefaultRowsPerPage, res.RowsPerPage)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, dashboard.Range{Start: 11, End: 12, TotalPages: 2}, res.Range)
	assert.Equal(t, []int{1, 2}, res.Window)
	assert.Equal(t, []string{"pipe-011", "pipe-012"}, rowIDs(res.Rows))
}

func TestQueryEmptyResult(t *testing.T) {
	r := newMockRunboard()
	conditions := []model.FilterCondition{
		{ID: "1", Field: model.FieldLanguage, Operator: model.OpEqual, Value: "cobol", Logic: model.LogicAnd},
	}

	res, err := r.Query(context.Background(), dashboard.DomainProjects, conditions, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, dashboard.Range{}, res.Range)
	assert.Equal(t, 1, res.Page)
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Window)
}

func TestQueryRejectsBlankValues(t *testing.T) {
	r := newMockRunboard()
	conditions := []model.FilterCondition{
		{ID: "a", Field: model.FieldStatus, Operator: model.OpEqual, Value: "failed"},
		{ID: "b", Field: model.FieldExecutor, Operator: model.OpLike, Value: "  ", Logic: model.LogicAnd},
	}

	_, err := r.Query(context.Background(), dashboard.DomainPipelines, conditions, 1, 10)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrValidation))
}

func TestQueryWarnsOnUnknownField(t *testing.T) {
	r := newMockRunboard()
	conditions := []model.FilterCondition{
		{ID: "1", Field: "STATSU", Operator: model.OpEqual, Value: "failed"},
	}

	res, err := r.Query(context.Background(), dashboard.DomainPipelines, conditions, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "did you mean STATUS?")
}

func TestQueryRemoteReportsTranslationErrors(t *testing.T) {
	client := request.NewClient("https://api.example.com", time.Second, 0)
	httpmock.ActivateNonDefault(client.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	pipelines := datasource.FixturePipelines()
	httpmock.RegisterResponder(http.MethodGet, "https://api.example.com/pipelines",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, pipelines[:3]))

	r := New(datasource.NewRemoteSource(client), savedview.NewRemoteStore(client), BackingRemote)
	conditions := []model.FilterCondition{
		{ID: "1", Field: model.FieldDuration, Operator: model.OpGreaterThan, Value: "slow"},
	}

	res, err := r.Query(context.Background(), dashboard.DomainPipelines, conditions, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.TranslationErrors, 1)
	assert.Contains(t, res.TranslationErrors[0], "DURATION")
}

func TestControllerUsesStore(t *testing.T) {
	r := newMockRunboard()
	page := dashboard.NewPage(r.Loader(dashboard.DomainPipelines))
	c := r.Controller(dashboard.DomainPipelines, page)

	require.NoError(t, c.OpenLibrary(context.Background()))
	assert.Len(t, c.State().Views, 4)
}

func TestSQLFilesEmbedded(t *testing.T) {
	entries, err := SQLFiles.ReadDir("sql")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
