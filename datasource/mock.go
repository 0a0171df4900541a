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

package datasource

import (
	"context"
	"time"

	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/sirupsen/logrus"
)

// MockSource serves the fixtures from memory after an artificial delay.
type MockSource struct {
	Latency   time.Duration
	pipelines []model.Pipeline
	projects  []model.Project
}

// NewMockSource returns a source over the built-in fixtures.
func NewMockSource(latency time.Duration) *MockSource {
	return NewMockSourceWith(latency, FixturePipelines(), FixtureProjects())
}

// NewMockSourceWith returns a source over the given rows. The slices are not copied.
func NewMockSourceWith(latency time.Duration, pipelines []model.Pipeline, projects []model.Project) *MockSource {
	return &MockSource{Latency: latency, pipelines: pipelines, projects: projects}
}

func (m *MockSource) Pipelines(ctx context.Context, q model.PipelineQuery) ([]model.Pipeline, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	rows := filter.FilterAll(filter.PipelineSchema, m.pipelines, filter.PipelineQueryConditions(q))
	start, end := window(len(rows), q.Limit, q.Offset)
	logrus.WithFields(logrus.Fields{"matched": len(rows), "returned": end - start}).Debug("mock pipelines query")
	return rows[start:end], nil
}

func (m *MockSource) Projects(ctx context.Context, q model.ProjectQuery) ([]model.Project, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	rows := filter.FilterAll(filter.ProjectSchema, m.projects, filter.ProjectQueryConditions(q))
	start, end := window(len(rows), q.Limit, q.Offset)
	logrus.WithFields(logrus.Fields{"matched": len(rows), "returned": end - start}).Debug("mock projects query")
	return rows[start:end], nil
}

func (m *MockSource) wait(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
