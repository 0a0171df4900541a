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

	"github.com/jerry-enebeli/runboard/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	pipeline  // Interface for pipeline row operations
	project   // Interface for project row operations
	savedView // Interface for saved view operations
}

// pipeline defines methods for reading and seeding pipeline rows.
type pipeline interface {
	Pipelines(ctx context.Context, q model.PipelineQuery) ([]model.Pipeline, error)                     // Retrieves pipelines matching a query
	MatchPipelines(ctx context.Context, conditions []model.FilterCondition) ([]model.Pipeline, error) // Retrieves the pipelines a condition list may select
	InsertPipeline(ctx context.Context, p model.Pipeline) error                                          // Inserts or replaces a pipeline
}

// project defines methods for reading and seeding project rows.
type project interface {
	Projects(ctx context.Context, q model.ProjectQuery) ([]model.Project, error)                      // Retrieves projects matching a query
	MatchProjects(ctx context.Context, conditions []model.FilterCondition) ([]model.Project, error) // Retrieves the projects a condition list may select
	InsertProject(ctx context.Context, p model.Project) error                                         // Inserts or replaces a project
}

// savedView defines methods for the saved view library.
type savedView interface {
	ListSavedViews(ctx context.Context) ([]model.SavedView, error)
	CreateSavedView(ctx context.Context, view model.SavedView) (model.SavedView, error)
	DeleteSavedView(ctx context.Context, id string) error
}
