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

package dashboard

import (
	"context"

	"github.com/jerry-enebeli/runboard/datasource"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/model"
)

// LoadResult is one fetch of table rows. TranslationErrors lists the clauses a live query
// had to skip.
type LoadResult struct {
	Rows              []model.TableRow
	TranslationErrors []error
}

// Loader fetches the rows matching a condition list.
type Loader interface {
	Load(ctx context.Context, conditions []model.FilterCondition) (LoadResult, error)
}

// SourceLoader loads a domain from a datasource.Source.
// When Local is set the source owns the data: rows are fetched, narrowed by the source when
// it is a datasource.ConditionSource, and evaluated by the predicate evaluator. Otherwise the
// conditions are translated into a query and the remote source does the filtering.
type SourceLoader struct {
	Domain Domain
	Source datasource.Source
	Local  bool
}

func NewLoader(domain Domain, source datasource.Source, local bool) *SourceLoader {
	return &SourceLoader{Domain: domain, Source: source, Local: local}
}

func (l *SourceLoader) Load(ctx context.Context, conditions []model.FilterCondition) (LoadResult, error) {
	if l.Domain == DomainProjects {
		return l.loadProjects(ctx, conditions)
	}
	return l.loadPipelines(ctx, conditions)
}

func (l *SourceLoader) loadPipelines(ctx context.Context, conditions []model.FilterCondition) (LoadResult, error) {
	var (
		res  LoadResult
		rows []model.Pipeline
		err  error
	)
	matcher, narrows := l.Source.(datasource.ConditionSource)
	switch {
	case l.Local && narrows:
		rows, err = matcher.MatchPipelines(ctx, conditions)
	case l.Local:
		rows, err = l.Source.Pipelines(ctx, model.PipelineQuery{})
	default:
		var q model.PipelineQuery
		q, res.TranslationErrors = filter.ToPipelineQuery(conditions, 0, 0)
		rows, err = l.Source.Pipelines(ctx, q)
	}
	if err != nil {
		return LoadResult{}, err
	}
	if l.Local {
		rows = filter.FilterAll(filter.PipelineSchema, rows, conditions)
	}

	res.Rows = make([]model.TableRow, len(rows))
	for i, p := range rows {
		res.Rows[i] = p.ToRow()
	}
	return res, nil
}

func (l *SourceLoader) loadProjects(ctx context.Context, conditions []model.FilterCondition) (LoadResult, error) {
	var (
		res  LoadResult
		rows []model.Project
		err  error
	)
	matcher, narrows := l.Source.(datasource.ConditionSource)
	switch {
	case l.Local && narrows:
		rows, err = matcher.MatchProjects(ctx, conditions)
	case l.Local:
		rows, err = l.Source.Projects(ctx, model.ProjectQuery{})
	default:
		var q model.ProjectQuery
		q, res.TranslationErrors = filter.ToProjectQuery(conditions, 0, 0)
		rows, err = l.Source.Projects(ctx, q)
	}
	if err != nil {
		return LoadResult{}, err
	}
	if l.Local {
		rows = filter.FilterAll(filter.ProjectSchema, rows, conditions)
	}

	res.Rows = make([]model.TableRow, len(rows))
	for i, p := range rows {
		res.Rows[i] = p.ToRow()
	}
	return res, nil
}
