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
	"time"

	"github.com/jerry-enebeli/runboard/internal/idgen"
	"github.com/jerry-enebeli/runboard/model"
)

// Repository is the persistence the Postgres store needs. database.Datasource implements it.
type Repository interface {
	ListSavedViews(ctx context.Context) ([]model.SavedView, error)
	CreateSavedView(ctx context.Context, view model.SavedView) (model.SavedView, error)
	DeleteSavedView(ctx context.Context, id string) error
}

// PostgresStore is the server side library. Views and conditions get prefixed uuids.
type PostgresStore struct {
	repo    Repository
	viewIDs idgen.Generator
	condIDs idgen.Generator
	now     func() time.Time
}

func NewPostgresStore(repo Repository) *PostgresStore {
	return &PostgresStore{
		repo:    repo,
		viewIDs: idgen.UUID{Prefix: "view_"},
		condIDs: idgen.UUID{Prefix: "cond_"},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (p *PostgresStore) List(ctx context.Context) ([]model.SavedView, error) {
	return p.repo.ListSavedViews(ctx)
}

func (p *PostgresStore) Create(ctx context.Context, name string, conditions []model.FilterCondition) (model.SavedView, error) {
	if err := Validate(name, conditions); err != nil {
		return model.SavedView{}, err
	}

	now := p.now()
	return p.repo.CreateSavedView(ctx, model.SavedView{
		ID:         p.viewIDs.Next(),
		Name:       strings.TrimSpace(name),
		Conditions: model.RemintConditions(conditions, idgen.Func(p.condIDs)),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	return p.repo.DeleteSavedView(ctx, id)
}
