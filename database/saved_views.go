package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/model"
)

const savedViewsCacheKey = "saved_views:all"

// ListSavedViews returns the library oldest first. The list is served from the cache when one is attached.
func (d Datasource) ListSavedViews(ctx context.Context) ([]model.SavedView, error) {
	if d.Cache != nil {
		var cached []model.SavedView
		if err := d.Cache.Get(ctx, savedViewsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, name, conditions, created_at, updated_at
		FROM runboard.saved_views
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve saved views", err)
	}
	defer rows.Close()

	views := []model.SavedView{}
	for rows.Next() {
		view := model.SavedView{}
		var conditionsJSON []byte
		err = rows.Scan(&view.ID, &view.Name, &conditionsJSON, &view.CreatedAt, &view.UpdatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan saved view data", err)
		}
		if err = json.Unmarshal(conditionsJSON, &view.Conditions); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal conditions", err)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over saved views", err)
	}

	if d.Cache != nil {
		if err := d.Cache.Set(ctx, savedViewsCacheKey, views, viewsCacheTTL()); err != nil {
			// Log the error, but don't return it as the main operation succeeded
			log.Printf("Failed to cache saved views: %v", err)
		}
	}
	return views, nil
}

// CreateSavedView stores view as given; the caller assigns ids and timestamps.
func (d Datasource) CreateSavedView(ctx context.Context, view model.SavedView) (model.SavedView, error) {
	conditionsJSON, err := json.Marshal(view.Conditions)
	if err != nil {
		return model.SavedView{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal conditions", err)
	}

	_, err = d.Conn.ExecContext(ctx, `
		INSERT INTO runboard.saved_views (id, name, conditions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, view.ID, view.Name, conditionsJSON, view.CreatedAt, view.UpdatedAt)
	if err != nil {
		return model.SavedView{}, mapError(err, "Saved view with this ID already exists", "Failed to create saved view")
	}

	d.invalidateSavedViews(ctx)
	return view, nil
}

// DeleteSavedView removes a view. Deleting an unknown id is not an error.
func (d Datasource) DeleteSavedView(ctx context.Context, id string) error {
	_, err := d.Conn.ExecContext(ctx, `DELETE FROM runboard.saved_views WHERE id = $1`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete saved view", err)
	}

	d.invalidateSavedViews(ctx)
	return nil
}

func (d Datasource) invalidateSavedViews(ctx context.Context) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Delete(ctx, savedViewsCacheKey); err != nil {
		log.Printf("Failed to invalidate saved views cache: %v", err)
	}
}

func viewsCacheTTL() time.Duration {
	cfg, err := config.Fetch()
	if err != nil || cfg.Redis.CacheTTLSec <= 0 {
		return config.DEFAULT_VIEWS_CACHE_TTL_SEC * time.Second
	}
	return cfg.ViewsCacheTTL()
}
