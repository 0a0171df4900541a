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

// Package datasource loads pipeline and project rows, either from the built-in fixtures or
// from the remote dashboard API.
package datasource

import (
	"context"

	"github.com/jerry-enebeli/runboard/model"
)

// Source answers structured row queries. Implementations honor ctx cancellation.
type Source interface {
	Pipelines(ctx context.Context, q model.PipelineQuery) ([]model.Pipeline, error)
	Projects(ctx context.Context, q model.ProjectQuery) ([]model.Project, error)
}

// ConditionSource is a Source that can narrow a fetch by a condition list. The rows returned
// are a superset of the matches; the caller still evaluates the conditions over them.
type ConditionSource interface {
	Source
	MatchPipelines(ctx context.Context, conditions []model.FilterCondition) ([]model.Pipeline, error)
	MatchProjects(ctx context.Context, conditions []model.FilterCondition) ([]model.Project, error)
}

// window applies offset and limit to n rows. A zero limit keeps everything after offset.
func window(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
