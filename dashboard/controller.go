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

// Package dashboard holds the query builder state machine and the result table state that
// sit behind the pipelines and projects pages.
package dashboard

import (
	"context"
	"strings"
	"sync"

	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/internal/filter"
	"github.com/jerry-enebeli/runboard/internal/idgen"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/jerry-enebeli/runboard/savedview"
	"github.com/sirupsen/logrus"
)

type Mode string

const (
	ModeBuilder Mode = "builder"
	ModeLibrary Mode = "library"
)

// Applier receives the condition lists the builder applies. Page implements it.
type Applier interface {
	Apply(conditions []model.FilterCondition)
	Clear()
}

// Template is a quick-start condition.
type Template struct {
	Name     string         `json:"name"`
	Field    model.Field    `json:"field"`
	Operator model.Operator `json:"operator"`
	Value    string         `json:"value"`
}

var Templates = []Template{
	{Name: "Failed Pipelines", Field: model.FieldStatus, Operator: model.OpEqual, Value: "failed"},
	{Name: "Long Running (>5min)", Field: model.FieldDuration, Operator: model.OpGreaterThan, Value: "300"},
	{Name: "GitLab CI Only", Field: model.FieldProjectType, Operator: model.OpEqual, Value: "gitlab"},
}

type SaveDialog struct {
	Open bool   `json:"open"`
	Name string `json:"name"`
}

// ControllerState is a snapshot of a Controller for rendering.
type ControllerState struct {
	Draft          []model.FilterCondition `json:"draft"`
	Mode           Mode                    `json:"mode"`
	Views          []model.SavedView       `json:"views"`
	LibraryLoading bool                    `json:"library_loading"`
	LibraryError   string                  `json:"library_error,omitempty"`
	SQLExpanded    bool                    `json:"sql_expanded"`
	SQL            string                  `json:"sql"`
	SaveDialog     SaveDialog              `json:"save_dialog"`
	Copied         bool                    `json:"copied"`
	EmptyValueIDs  []string                `json:"empty_value_ids"`
	CanApply       bool                    `json:"can_apply"`
}

// Controller is the query builder: a draft condition list edited in Builder mode and a
// saved view library browsed in Library mode. It is safe for concurrent use; store calls
// are made without holding the lock.
type Controller struct {
	mu sync.Mutex

	domain  Domain
	ids     idgen.Generator
	store   savedview.Store
	applier Applier

	draft          []model.FilterCondition
	mode           Mode
	views          []model.SavedView
	libraryLoading bool
	libraryError   string
	sqlExpanded    bool
	saveDialog     SaveDialog
	copied         flag
}

type Option func(*Controller)

// WithIDGenerator replaces the draft condition id generator.
func WithIDGenerator(g idgen.Generator) Option {
	return func(c *Controller) { c.ids = g }
}

// WithAfterFunc replaces the timer used to reset the copied confirmation.
func WithAfterFunc(after AfterFunc) Option {
	return func(c *Controller) { c.copied.after = after }
}

func NewController(domain Domain, store savedview.Store, applier Applier, opts ...Option) *Controller {
	c := &Controller{
		domain:      domain,
		store:       store,
		applier:     applier,
		mode:        ModeBuilder,
		sqlExpanded: true,
		views:       []model.SavedView{},
		copied:      flag{after: realAfterFunc},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = idgen.NewSequence("cond", 1)
	}
	return c
}

// AddCondition appends a blank condition on the first picker field.
func (c *Controller) AddCondition() model.FilterCondition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(c.domain.Fields()[0], model.OpEqual, "")
}

// AddFromTemplate appends a condition pre-filled from t.
func (c *Controller) AddFromTemplate(t Template) model.FilterCondition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(t.Field, t.Operator, t.Value)
}

func (c *Controller) add(field model.Field, op model.Operator, value string) model.FilterCondition {
	cond := model.FilterCondition{
		ID:       c.ids.Next(),
		Field:    field,
		Operator: op,
		Value:    value,
		Logic:    model.LogicAnd,
	}
	c.draft = append(c.draft, cond)
	return cond
}

// UpdateCondition merges patch into the draft condition with id. It reports false when
// there is no such condition.
func (c *Controller) UpdateCondition(id string, patch model.ConditionPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.draft {
		if c.draft[i].ID == id {
			c.draft[i] = patch.Apply(c.draft[i])
			return true
		}
	}
	return false
}

func (c *Controller) RemoveCondition(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.draft {
		if c.draft[i].ID == id {
			c.draft = append(c.draft[:i], c.draft[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAll empties the draft and clears the applied filters.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	c.draft = nil
	c.mu.Unlock()
	c.applier.Clear()
}

// EmptyValueIDs lists the draft conditions whose value is blank.
func (c *Controller) EmptyValueIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emptyValueIDs()
}

func (c *Controller) emptyValueIDs() []string {
	ids := []string{}
	for _, cond := range c.draft {
		if !cond.HasValue() {
			ids = append(ids, cond.ID)
		}
	}
	return ids
}

func (c *Controller) CanApply() bool {
	return len(c.EmptyValueIDs()) == 0
}

// ApplyQuery hands a copy of the draft to the applier. Nothing happens while any condition
// has a blank value.
func (c *Controller) ApplyQuery() bool {
	c.mu.Lock()
	if len(c.emptyValueIDs()) > 0 {
		c.mu.Unlock()
		return false
	}
	conditions := model.CloneConditions(c.draft)
	c.mu.Unlock()

	c.applier.Apply(conditions)
	return true
}

func (c *Controller) OpenSaveDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveDialog = SaveDialog{Open: true}
}

func (c *Controller) SetViewName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveDialog.Name = name
}

func (c *Controller) CloseSaveDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveDialog = SaveDialog{}
}

// CanSave reports whether SaveView(name) would reach the store.
func (c *Controller) CanSave(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(name) != "" && len(c.draft) > 0
}

// SaveView stores the draft under name. On success the new view is shown first in the
// library, the builder switches to Library mode and the save dialog is reset.
func (c *Controller) SaveView(ctx context.Context, name string) (model.SavedView, error) {
	c.mu.Lock()
	if strings.TrimSpace(name) == "" || len(c.draft) == 0 {
		c.mu.Unlock()
		return model.SavedView{}, apierror.NewValidationError("a view needs a name and at least one condition", nil)
	}
	draft := model.CloneConditions(c.draft)
	c.mu.Unlock()

	view, err := c.store.Create(ctx, name, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.libraryError = err.Error()
		logrus.WithError(err).Warn("failed to save view")
		return model.SavedView{}, err
	}
	c.libraryError = ""
	c.views = append([]model.SavedView{view.Clone()}, c.views...)
	c.mode = ModeLibrary
	c.saveDialog = SaveDialog{}
	return view, nil
}

// LoadView replaces the draft with a copy of the view's conditions under fresh ids and
// switches to Builder mode.
func (c *Controller) LoadView(view model.SavedView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = model.RemintConditions(view.Conditions, idgen.Func(c.ids))
	c.mode = ModeBuilder
}

// DeleteView removes the view from the library and deletes it from the store. The draft is
// never touched. When the store fails the view is put back where it was; views added in the
// meantime are kept.
func (c *Controller) DeleteView(ctx context.Context, id string) error {
	c.mu.Lock()
	var (
		removed   model.SavedView
		found     bool
		successor string
	)
	kept := make([]model.SavedView, 0, len(c.views))
	for i, v := range c.views {
		if v.ID != id {
			kept = append(kept, v)
			continue
		}
		removed, found = v, true
		if i+1 < len(c.views) {
			successor = c.views[i+1].ID
		}
	}
	c.views = kept
	c.mu.Unlock()

	err := c.store.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if found {
			c.views = reinsertView(c.views, removed, successor)
		}
		c.libraryError = err.Error()
		logrus.WithError(err).WithField("view_id", id).Warn("failed to delete view")
		return err
	}
	c.libraryError = ""
	return nil
}

// reinsertView puts view back before successor, or last when successor is gone. A view that
// is already listed again, after a refresh, is left alone.
func reinsertView(views []model.SavedView, view model.SavedView, successor string) []model.SavedView {
	at := len(views)
	for i, v := range views {
		if v.ID == view.ID {
			return views
		}
		if successor != "" && v.ID == successor {
			at = i
		}
	}
	out := make([]model.SavedView, 0, len(views)+1)
	out = append(out, views[:at]...)
	out = append(out, view)
	return append(out, views[at:]...)
}

func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// OpenLibrary switches to Library mode and refreshes the saved views.
func (c *Controller) OpenLibrary(ctx context.Context) error {
	c.SetMode(ModeLibrary)
	return c.RefreshLibrary(ctx)
}

// RefreshLibrary reloads the saved views. A failure keeps the displayed list.
func (c *Controller) RefreshLibrary(ctx context.Context) error {
	c.mu.Lock()
	c.libraryLoading = true
	c.mu.Unlock()

	views, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.libraryLoading = false
	if err != nil {
		c.libraryError = err.Error()
		logrus.WithError(err).Warn("failed to load saved views")
		return err
	}
	c.libraryError = ""
	c.views = model.CloneSavedViews(views)
	return nil
}

// Preview renders the draft as SQL.
func (c *Controller) Preview() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.Preview(c.domain.Table(), c.draft)
}

func (c *Controller) ToggleSQL() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sqlExpanded = !c.sqlExpanded
	return c.sqlExpanded
}

// CopySQL returns the preview for the clipboard and shows the copied confirmation.
func (c *Controller) CopySQL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copied.raise(c.mu.Lock, c.mu.Unlock)
	return filter.Preview(c.domain.Table(), c.draft)
}

func (c *Controller) Draft() []model.FilterCondition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.CloneConditions(c.draft)
}

func (c *Controller) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	empty := c.emptyValueIDs()
	return ControllerState{
		Draft:          model.CloneConditions(c.draft),
		Mode:           c.mode,
		Views:          model.CloneSavedViews(c.views),
		LibraryLoading: c.libraryLoading,
		LibraryError:   c.libraryError,
		SQLExpanded:    c.sqlExpanded,
		SQL:            filter.Preview(c.domain.Table(), c.draft),
		SaveDialog:     c.saveDialog,
		Copied:         c.copied.on,
		EmptyValueIDs:  empty,
		CanApply:       len(empty) == 0,
	}
}
