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

import "time"

// SavedView is a named, persisted condition list.
type SavedView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Conditions []FilterCondition `json:"conditions"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy of the view.
func (v SavedView) Clone() SavedView {
	v.Conditions = CloneConditions(v.Conditions)
	return v
}

// CloneSavedViews deep-copies a list of views.
func CloneSavedViews(views []SavedView) []SavedView {
	out := make([]SavedView, len(views))
	for i, v := range views {
		out[i] = v.Clone()
	}
	return out
}

// CreateSavedView is the body of a save-view request.
type CreateSavedView struct {
	Name       string            `json:"name"`
	Conditions []FilterCondition `json:"conditions"`
}
