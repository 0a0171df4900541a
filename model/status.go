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
	"strings"
	"time"
)

// DisplayStatus is the normalized status shown in the table badge.
type DisplayStatus string

const (
	StatusSuccess DisplayStatus = "success"
	StatusFailed  DisplayStatus = "failed"
	StatusRunning DisplayStatus = "running"
	StatusPending DisplayStatus = "pending"
)

// TableRow is a record as rendered by the table view.
type TableRow struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Status    DisplayStatus          `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
	Data      map[string]interface{} `json:"data"`
}

// NormalizePipelineStatus maps a pipeline status onto the display set. Unknown values are pending.
func NormalizePipelineStatus(status string) DisplayStatus {
	switch DisplayStatus(strings.ToLower(strings.TrimSpace(status))) {
	case StatusSuccess:
		return StatusSuccess
	case StatusFailed:
		return StatusFailed
	case StatusRunning:
		return StatusRunning
	default:
		return StatusPending
	}
}

// NormalizeProjectStatus maps a project lifecycle status onto the display set.
func NormalizeProjectStatus(status string) DisplayStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "deploying", "processing", "configuring":
		return StatusRunning
	case "error":
		return StatusFailed
	case "success":
		return StatusSuccess
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}

// BadgeClass returns the css class of the status badge.
func (s DisplayStatus) BadgeClass() string {
	switch s {
	case StatusSuccess:
		return "badge-success"
	case StatusFailed:
		return "badge-error"
	case StatusRunning:
		return "badge-info"
	case StatusPending:
		return "badge-warning"
	default:
		return "badge-neutral"
	}
}
