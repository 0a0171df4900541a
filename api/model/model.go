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

package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jerry-enebeli/runboard/model"
)

// MaxLimit caps the page size of the record endpoints.
const MaxLimit = 1000

// PipelineQueryParams are the query string parameters of GET /pipelines.
type PipelineQueryParams struct {
	Status      string   `form:"status"`
	ProjectType string   `form:"projectType"`
	Executor    string   `form:"executor"`
	DurationGte *float64 `form:"durationGte"`
	DurationLte *float64 `form:"durationLte"`
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
}

// ProjectQueryParams are the query string parameters of GET /projects.
type ProjectQueryParams struct {
	Status      string `form:"status"`
	ProjectType string `form:"projectType"`
	Language    string `form:"language"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

// QueryRequest runs a condition list against a domain and returns one page.
type QueryRequest struct {
	Conditions  []model.FilterCondition `json:"conditions"`
	Page        int                     `json:"page"`
	RowsPerPage int                     `json:"rows_per_page"`
}

type PreviewRequest struct {
	Conditions []model.FilterCondition `json:"conditions"`
}

type PreviewResponse struct {
	SQL      string   `json:"sql"`
	Warnings []string `json:"warnings,omitempty"`
}

func (p *PipelineQueryParams) ValidatePipelineQuery() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Limit, validation.Min(0), validation.Max(MaxLimit)),
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.DurationLte, validation.By(func(value interface{}) error {
			if p.DurationGte != nil && p.DurationLte != nil && *p.DurationLte < *p.DurationGte {
				return errors.New("must not be less than durationGte")
			}
			return nil
		})),
	)
}

func (p *ProjectQueryParams) ValidateProjectQuery() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Limit, validation.Min(0), validation.Max(MaxLimit)),
		validation.Field(&p.Offset, validation.Min(0)),
	)
}

func (q *QueryRequest) ValidateQueryRequest() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.RowsPerPage, validation.Min(0)),
	)
}

func (p PipelineQueryParams) ToPipelineQuery() model.PipelineQuery {
	return model.PipelineQuery{
		Status:      p.Status,
		ProjectType: p.ProjectType,
		Executor:    p.Executor,
		DurationGte: p.DurationGte,
		DurationLte: p.DurationLte,
		Limit:       p.Limit,
		Offset:      p.Offset,
	}
}

func (p ProjectQueryParams) ToProjectQuery() model.ProjectQuery {
	return model.ProjectQuery{
		Status:      p.Status,
		ProjectType: p.ProjectType,
		Language:    p.Language,
		Limit:       p.Limit,
		Offset:      p.Offset,
	}
}
