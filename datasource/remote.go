package datasource

import (
	"context"

	"github.com/jerry-enebeli/runboard/internal/request"
	"github.com/jerry-enebeli/runboard/model"
)

// RemoteSource reads rows from the dashboard API.
type RemoteSource struct {
	client *request.Client
}

func NewRemoteSource(client *request.Client) *RemoteSource {
	return &RemoteSource{client: client}
}

func (r *RemoteSource) Pipelines(ctx context.Context, q model.PipelineQuery) ([]model.Pipeline, error) {
	params := map[string]interface{}{
		"status":      q.Status,
		"projectType": q.ProjectType,
		"executor":    q.Executor,
		"durationGte": q.DurationGte,
		"durationLte": q.DurationLte,
	}
	addPaging(params, q.Limit, q.Offset)

	var pipelines []model.Pipeline
	if err := r.client.Get(ctx, "/pipelines", params, &pipelines); err != nil {
		return nil, err
	}
	return pipelines, nil
}

func (r *RemoteSource) Projects(ctx context.Context, q model.ProjectQuery) ([]model.Project, error) {
	params := map[string]interface{}{
		"status":      q.Status,
		"projectType": q.ProjectType,
		"language":    q.Language,
	}
	addPaging(params, q.Limit, q.Offset)

	var projects []model.Project
	if err := r.client.Get(ctx, "/projects", params, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func addPaging(params map[string]interface{}, limit, offset int) {
	if limit > 0 {
		params["limit"] = limit
	}
	if offset > 0 {
		params["offset"] = offset
	}
}
