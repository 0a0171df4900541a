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

package savedview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jerry-enebeli/runboard/internal/idgen"
	"github.com/jerry-enebeli/runboard/model"
	"github.com/sirupsen/logrus"
)

// MemoryStore is the mock-mode library. It is seeded with the sample views, never fails
// except on invalid input, and is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	views   []model.SavedView
	viewIDs idgen.Generator
	condIDs idgen.Generator
	latency time.Duration
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithLatency delays every List call.
func WithLatency(d time.Duration) MemoryOption {
	return func(m *MemoryStore) { m.latency = d }
}

func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// WithIDs replaces the view and condition id generators.
func WithIDs(views, conditions idgen.Generator) MemoryOption {
	return func(m *MemoryStore) {
		m.viewIDs = views
		m.condIDs = conditions
	}
}

// WithViews replaces the seeded views.
func WithViews(views []model.SavedView) MemoryOption {
	return func(m *MemoryStore) { m.views = model.CloneSavedViews(views) }
}

// NewMemoryStore returns a store holding the sample views. New views are numbered after
// the seeded ones. Stored conditions are numbered viewcond-N, a namespace the builder
// never draws draft ids from.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	if m.views == nil {
		m.views = Fixtures(m.now())
	}
	if m.viewIDs == nil {
		m.viewIDs = idgen.NewSequence("view", int64(len(m.views)+1))
	}
	if m.condIDs == nil {
		m.condIDs = idgen.NewSequence("viewcond", 1)
	}
	return m
}

func (m *MemoryStore) List(ctx context.Context) ([]model.SavedView, error) {
	if err := sleep(ctx, m.latency); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CloneSavedViews(m.views), nil
}

func (m *MemoryStore) Create(_ context.Context, name string, conditions []model.FilterCondition) (model.SavedView, error) {
	if err := Validate(name, conditions); err != nil {
		return model.SavedView{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	view := model.SavedView{
		ID:         m.viewIDs.Next(),
		Name:       strings.TrimSpace(name),
		Conditions: model.RemintConditions(conditions, idgen.Func(m.condIDs)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.views = append(m.views, view)
	logrus.WithFields(logrus.Fields{"view_id": view.ID, "conditions": len(view.Conditions)}).Debug("saved view created")
	return view.Clone(), nil
}

// Delete is idempotent.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.views[:0]
	for _, v := range m.views {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	m.views = kept
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
