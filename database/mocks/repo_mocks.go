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
package mocks

import (
	"context"

	"github.com/jerry-enebeli/runboard/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Pipeline methods

func (m *MockDataSource) Pipelines(ctx context.Context, q model.PipelineQuery) ([]model.Pipeline, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Pipeline), args.Error(1)
}

func (m *MockDataSource) MatchPipelines(ctx context.Context, conditions []model.FilterCondition) ([]model.Pipeline, error) {
	args := m.Called(ctx, conditions)
	return args.Get(0).([]model.Pipeline), args.Error(1)
}

func (m *MockDataSource) InsertPipeline(ctx context.Context, p model.Pipeline) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// Project methods

func (m *MockDataSource) Projects(ctx context.Context, q model.ProjectQuery) ([]model.Project, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockDataSource) MatchProjects(ctx context.Context, conditions []model.FilterCondition) ([]model.Project, error) {
	args := m.Called(ctx, conditions)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockDataSource) InsertProject(ctx context.Context, p model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// Saved view methods

func (m *MockDataSource) ListSavedViews(ctx context.Context) ([]model.SavedView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.SavedView), args.Error(1)
}

func (m *MockDataSource) CreateSavedView(ctx context.Context, view model.SavedView) (model.SavedView, error) {
	args := m.Called(ctx, view)
	return args.Get(0).(model.SavedView), args.Error(1)
}

func (m *MockDataSource) DeleteSavedView(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
