package savedview

import (
	"context"
	"net/url"

	"github.com/jerry-enebeli/runboard/internal/request"
	"github.com/jerry-enebeli/runboard/model"
)

// RemoteStore keeps the library behind the dashboard API. Ids are assigned by the server.
type RemoteStore struct {
	client *request.Client
}

func NewRemoteStore(client *request.Client) *RemoteStore {
	return &RemoteStore{client: client}
}

func (r *RemoteStore) List(ctx context.Context) ([]model.SavedView, error) {
	views := []model.SavedView{}
	if err := r.client.Get(ctx, "/saved-views", nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *RemoteStore) Create(ctx context.Context, name string, conditions []model.FilterCondition) (model.SavedView, error) {
	if err := Validate(name, conditions); err != nil {
		return model.SavedView{}, err
	}

	var view model.SavedView
	body := model.CreateSavedView{Name: name, Conditions: conditions}
	if err := r.client.Post(ctx, "/saved-views", body, &view); err != nil {
		return model.SavedView{}, err
	}
	return view, nil
}

// Delete surfaces any non-2xx status, including 404.
func (r *RemoteStore) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/saved-views/"+url.PathEscape(id))
}
