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
	"sync"

	"github.com/jerry-enebeli/runboard/model"
	"github.com/sirupsen/logrus"
)

// Page holds the result table of one domain: the active conditions, the loaded rows and
// the pagination state. It implements Applier.
//
// Every load is stamped with a request id and only the most recent one is kept, so a slow
// response can never overwrite a newer one. A failed load keeps the previous rows.
type Page struct {
	mu sync.Mutex

	loader      Loader
	conditions  []model.FilterCondition
	rows        []model.TableRow
	warnings    []string
	loading     bool
	err         string
	page        int
	rowsPerPage int
	requestID   uint64
}

// PageState is a snapshot of a Page for rendering.
type PageState struct {
	Conditions  []model.FilterCondition `json:"conditions"`
	Rows        []model.TableRow        `json:"rows"`
	Total       int                     `json:"total"`
	Range       Range                   `json:"range"`
	Window      []int                   `json:"window"`
	Page        int                     `json:"page"`
	RowsPerPage int                     `json:"rows_per_page"`
	Loading     bool                    `json:"loading"`
	Error       string                  `json:"error,omitempty"`
	Warnings    []string                `json:"warnings,omitempty"`
}

func NewPage(loader Loader) *Page {
	return &Page{
		loader:      loader,
		page:        1,
		rowsPerPage: DefaultRowsPerPage,
	}
}

// Apply replaces the active conditions and reloads from page one.
func (p *Page) Apply(conditions []model.FilterCondition) {
	_ = p.ApplyContext(context.Background(), conditions)
}

// Clear drops every active condition and reloads.
func (p *Page) Clear() {
	_ = p.ApplyContext(context.Background(), nil)
}

// ApplyContext is Apply with a caller supplied context. The returned error is also kept
// in the page state.
func (p *Page) ApplyContext(ctx context.Context, conditions []model.FilterCondition) error {
	p.mu.Lock()
	p.conditions = model.CloneConditions(conditions)
	p.page = 1
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// ApplyAsync runs ApplyContext in its own goroutine. The channel is closed when the load
// has finished, whether or not anyone is still waiting for it.
func (p *Page) ApplyAsync(ctx context.Context, conditions []model.FilterCondition) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.ApplyContext(ctx, conditions)
	}()
	return done
}

// Refresh reloads the rows for the active conditions.
func (p *Page) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.requestID++
	id := p.requestID
	conditions := model.CloneConditions(p.conditions)
	p.loading = true
	p.mu.Unlock()

	res, err := p.loader.Load(ctx, conditions)

	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.requestID {
		logrus.WithField("request_id", id).Debug("discarding stale page load")
		return err
	}
	p.loading = false
	if err != nil {
		p.err = err.Error()
		logrus.WithError(err).Warn("failed to load rows")
		return err
	}

	p.err = ""
	p.rows = res.Rows
	p.warnings = p.warnings[:0]
	for _, terr := range res.TranslationErrors {
		p.warnings = append(p.warnings, terr.Error())
	}
	p.clampPage()
	return nil
}

// SetPage moves to page n, clamped to the available pages.
func (p *Page) SetPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = n
	p.clampPage()
}

// SetRowsPerPage changes the page size and returns to page one. Sizes that are not offered
// are ignored.
func (p *Page) SetRowsPerPage(n int) bool {
	if !ValidRowsPerPage(n) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rowsPerPage = n
	p.page = 1
	return true
}

// Row finds a loaded row by id, for the inspector.
func (p *Page) Row(id string) (model.TableRow, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.TableRow{}, false
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	visible, r := PageOf(p.rows, p.rowsPerPage, p.page)
	rows := make([]model.TableRow, len(visible))
	copy(rows, visible)

	var warnings []string
	if len(p.warnings) > 0 {
		warnings = append([]string(nil), p.warnings...)
	}
	return PageState{
		Conditions:  model.CloneConditions(p.conditions),
		Rows:        rows,
		Total:       len(p.rows),
		Range:       r,
		Window:      PageWindow(p.page, r.TotalPages),
		Page:        p.page,
		RowsPerPage: p.rowsPerPage,
		Loading:     p.loading,
		Error:       p.err,
		Warnings:    warnings,
	}
}

func (p *Page) clampPage() {
	total := Paginate(len(p.rows), p.rowsPerPage, 1).TotalPages
	if p.page > total {
		p.page = total
	}
	if p.page < 1 {
		p.page = 1
	}
}
