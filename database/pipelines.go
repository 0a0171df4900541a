package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
)

const pipelineColumns = `id, pipeline_id, name, project_type, status, executor, created_at, duration, attributes`

// Pipelines returns the pipelines matching q, newest first.
func (d Datasource) Pipelines(ctx context.Context, q model.PipelineQuery) ([]model.Pipeline, error) {
	return d.queryPipelines(ctx, filter.BuildPipelineQuery(q, "", 1), q.Limit, q.Offset)
}

// MatchPipelines returns the pipelines a condition list may select, newest first. Clauses
// Postgres cannot answer exactly are left to the caller.
func (d Datasource) MatchPipelines(ctx context.Context, conditions []model.FilterCondition) ([]model.Pipeline, error) {
	return d.queryPipelines(ctx, filter.BuildConditionQuery(filter.TablePipelines, conditions, "", 1), 0, 0)
}

func (d Datasource) queryPipelines(ctx context.Context, built *filter.BuildResult, limit, offset int) ([]model.Pipeline, error) {
	query, args := paged(
		fmt.Sprintf("SELECT %s FROM runboard.pipelines %s ORDER BY %s", pipelineColumns, built.Where(), built.OrderBy),
		built.Args, built.NextArgPos, limit, offset,
	)

	rows, err := d.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve pipelines", err)
	}
	defer rows.Close()

	pipelines := []model.Pipeline{}
	for rows.Next() {
		p := model.Pipeline{}
		var attributes []byte
		err = rows.Scan(&p.ID, &p.PipelineID, &p.Name, &p.ProjectType, &p.Status, &p.Executor, &p.CreatedAt, &p.Duration, &attributes)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan pipeline data", err)
		}
		if p.Attributes, err = decodeAttributes(attributes); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal attributes", err)
		}
		pipelines = append(pipelines, p)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over pipelines", err)
	}
	return pipelines, nil
}

// InsertPipeline upserts a pipeline by id.
func (d Datasource) InsertPipeline(ctx context.Context, p model.Pipeline) error {
	attributes, err := encodeAttributes(p.Attributes)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal attributes", err)
	}

	_, err = d.Conn.ExecContext(ctx, `
		INSERT INTO runboard.pipelines (id, pipeline_id, name, project_type, status, executor, created_at, duration, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			pipeline_id = EXCLUDED.pipeline_id,
			name = EXCLUDED.name,
			project_type = EXCLUDED.project_type,
			status = EXCLUDED.status,
			executor = EXCLUDED.executor,
			created_at = EXCLUDED.created_at,
			duration = EXCLUDED.duration,
			attributes = EXCLUDED.attributes
	`, p.ID, p.PipelineID, p.Name, p.ProjectType, p.Status, p.Executor, p.CreatedAt, p.Duration, attributes)
	if err != nil {
		return mapError(err, "Pipeline with this ID already exists", "Failed to insert pipeline")
	}
	return nil
}

// paged appends LIMIT and OFFSET placeholders for the non-zero values.
func paged(query string, args []interface{}, argPos, limit, offset int) (string, []interface{}) {
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, limit)
		argPos++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, offset)
	}
	return query, args
}

func encodeAttributes(attributes map[string]interface{}) ([]byte, error) {
	if attributes == nil {
		attributes = map[string]interface{}{}
	}
	return json.Marshal(attributes)
}

func decodeAttributes(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var attributes map[string]interface{}
	if err := json.Unmarshal(data, &attributes); err != nil {
		return nil, err
	}
	if len(attributes) == 0 {
		return nil, nil
	}
	return attributes, nil
}
