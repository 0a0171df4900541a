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

// Package savedview keeps the library of named condition lists.
//
// Every Store validates its input before doing any I/O and stores its own copies of the
// conditions, each under a freshly generated id, so a stored view never shares ids with the
// draft it was saved from.
package savedview

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/jerry-enebeli/runboard/model"
)

type Store interface {
	// List returns the library in insertion order.
	List(ctx context.Context) ([]model.SavedView, error)

	// Create stores a copy of conditions under name and returns the stored view.
	Create(ctx context.Context, name string, conditions []model.FilterCondition) (model.SavedView, error)

	// Delete removes the view with id.
	Delete(ctx context.Context, id string) error
}

// Validate reports a ValidationError when the trimmed name is empty or there are no conditions.
func Validate(name string, conditions []model.FilterCondition) error {
	req := model.CreateSavedView{Name: name, Conditions: conditions}
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.By(notBlank)),
		validation.Field(&req.Conditions, validation.Required.Error("must contain at least one condition")),
	)
	if err != nil {
		return apierror.NewValidationError("invalid saved view: "+err.Error(), err)
	}
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
