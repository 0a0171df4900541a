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

package runboard

import (
	"context"
	"embed"
	"fmt"

	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/dashboard"
	"github.com/jerry-enebeli/runboard/database"
	"github.com/jerry-enebeli/runboard/datasource"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/internal/request"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/jerry-enebeli/runboard/savedview"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var SQLFiles embed.FS

// fakeSeed keeps generated mock rows stable across restarts.
const fakeSeed = 42

// Backing names where rows and saved views come from.
type Backing string

const (
	BackingPostgres Backing = "postgres"
	BackingMock     Backing = "mock"
	BackingRemote   Backing = "remote"
)

// Runboard ties a row source and a saved view store together and serves queries over them.
type Runboard struct {
	source  datasource.Source
	store   savedview.Store
	backing Backing
	db      database.IDataSource
}

// NewRunboard picks the backing from the configuration. A Postgres DSN wins over mock
// mode, and mock mode wins over the remote API.
func NewRunboard(cfg *config.Configuration) (*Runboard, error) {
	switch {
	case cfg.DataSource.Dns != "":
		db, err := database.NewDataSource(cfg)
		if err != nil {
			return nil, fmt.Errorf("error getting datasource: %v", err)
		}
		r := New(db, savedview.NewPostgresStore(db), BackingPostgres)
		r.db = db
		return r, nil
	case cfg.Mock.UseMock:
		source := datasource.NewMockSource(cfg.RowsLatency())
		if cfg.Mock.FakeRows > 0 {
			source = datasource.NewMockSourceWith(cfg.RowsLatency(),
				append(datasource.FixturePipelines(), datasource.FakePipelines(cfg.Mock.FakeRows, fakeSeed)...),
				append(datasource.FixtureProjects(), datasource.FakeProjects(cfg.Mock.FakeRows, fakeSeed)...),
			)
		}
		return New(
			source,
			savedview.NewMemoryStore(savedview.WithLatency(cfg.ViewsLatency())),
			BackingMock,
		), nil
	default:
		client := request.NewClient(cfg.API.BaseURL, cfg.APITimeout(), cfg.API.MaxRetries)
		return New(datasource.NewRemoteSource(client), savedview.NewRemoteStore(client), BackingRemote), nil
	}
}

func New(source datasource.Source, store savedview.Store, backing Backing) *Runboard {
	logrus.WithField("backing", backing).Info("runboard initialized")
	return &Runboard{source: source, store: store, backing: backing}
}

func (r *Runboard) Source() datasource.Source {
	return r.source
}

func (r *Runboard) Store() savedview.Store {
	return r.store
}

func (r *Runboard) Backing() Backing {
	return r.backing
}

// DB returns the Postgres datasource, or nil when the runboard is not backed by Postgres.
func (r *Runboard) DB() database.IDataSource {
	return r.db
}

// Loader returns the row loader for a domain. The mock and Postgres backings own their rows
// and evaluate conditions locally; only the remote API is trusted with a translated query.
func (r *Runboard) Loader(domain dashboard.Domain) dashboard.Loader {
	return dashboard.NewLoader(domain, r.source, r.backing != BackingRemote)
}

// Controller builds a query builder controller for a domain, applying into applier.
func (r *Runboard) Controller(domain dashboard.Domain, applier dashboard.Applier, opts ...dashboard.Option) *dashboard.Controller {
	return dashboard.NewController(domain, r.store, applier, opts...)
}

// Preview renders the SQL-like text of conditions against the domain's table.
func (r *Runboard) Preview(domain dashboard.Domain, conditions []model.FilterCondition) string {
	return filter.Preview(domain.Table(), conditions)
}

// QueryResult is one page of a condition query.
type QueryResult struct {
	Rows              []model.TableRow `json:"rows"`
	Total             int              `json:"total"`
	Range             dashboard.Range  `json:"range"`
	Window            []int            `json:"window"`
	Page              int              `json:"page"`
	RowsPerPage       int              `json:"rows_per_page"`
	Preview           string           `json:"preview"`
	Warnings          []string         `json:"warnings,omitempty"`
	TranslationErrors []string         `json:"translation_errors,omitempty"`
}

// Query validates conditions, loads the matching rows of a domain and returns the
// requested page. An unsupported page size falls back to the default.
func (r *Runboard) Query(ctx context.Context, domain dashboard.Domain, conditions []model.FilterCondition, page, perPage int) (*QueryResult, error) {
	if err := filter.ValidateConditions(conditions); err != nil {
		return nil, err
	}
	if !dashboard.ValidRowsPerPage(perPage) {
		perPage = dashboard.DefaultRowsPerPage
	}

	res, err := r.Loader(domain).Load(ctx, conditions)
	if err != nil {
		return nil, err
	}

	rows, rng := dashboard.PageOf(res.Rows, perPage, page)
	page = clampPage(page, rng.TotalPages)
	out := &QueryResult{
		Rows:        rows,
		Total:       len(res.Rows),
		Range:       rng,
		Window:      dashboard.PageWindow(page, rng.TotalPages),
		Page:        page,
		RowsPerPage: perPage,
		Preview:     r.Preview(domain, conditions),
		Warnings:    filter.Lint(domain.KnownFields(), conditions),
	}
	for _, terr := range res.TranslationErrors {
		out.TranslationErrors = append(out.TranslationErrors, terr.Error())
	}
	return out, nil
}

func clampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
