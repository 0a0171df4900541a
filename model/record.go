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
	"encoding/json"
	"time"
)

// Pipeline is one pipeline execution record.
// Attributes holds the open bag of extra keys; it is flattened into the record's JSON.
type Pipeline struct {
	ID          string                 `json:"id"`
	PipelineID  string                 `json:"pipelineId"`
	Name        string                 `json:"name"`
	ProjectType string                 `json:"projectType"`
	Status      string                 `json:"status"`
	Executor    string                 `json:"executor"`
	CreatedAt   time.Time              `json:"createdAt"`
	Duration    float64                `json:"duration"`
	Attributes  map[string]interface{} `json:"-"`
}

// Project is one project record.
type Project struct {
	ID          string                 `json:"id"`
	ProjectID   string                 `json:"projectId"`
	Name        string                 `json:"name"`
	ProjectType string                 `json:"projectType"`
	Status      string                 `json:"status"`
	Repository  string                 `json:"repository"`
	Language    string                 `json:"language"`
	CreatedAt   time.Time              `json:"createdAt"`
	Attributes  map[string]interface{} `json:"-"`
}

// PipelineQuery is the structured query sent to the pipelines endpoint.
type PipelineQuery struct {
	Status      string   `json:"status,omitempty"`
	ProjectType string   `json:"projectType,omitempty"`
	Executor    string   `json:"executor,omitempty"`
	DurationGte *float64 `json:"durationGte,omitempty"`
	DurationLte *float64 `json:"durationLte,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}

// ProjectQuery is the structured query sent to the projects endpoint.
type ProjectQuery struct {
	Status      string `json:"status,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
	Language    string `json:"language,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

type pipelineAlias Pipeline
type projectAlias Project

func (p Pipeline) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(pipelineAlias(p))
	if err != nil {
		return nil, err
	}
	return mergeAttributes(known, p.Attributes)
}

func (p *Pipeline) UnmarshalJSON(data []byte) error {
	var alias pipelineAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extras, err := splitAttributes(data, alias)
	if err != nil {
		return err
	}
	*p = Pipeline(alias)
	p.Attributes = extras
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(projectAlias(p))
	if err != nil {
		return nil, err
	}
	return mergeAttributes(known, p.Attributes)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var alias projectAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extras, err := splitAttributes(data, alias)
	if err != nil {
		return err
	}
	*p = Project(alias)
	p.Attributes = extras
	return nil
}

// ToMap returns the flattened record, known fields taking precedence over attributes.
func (p Pipeline) ToMap() map[string]interface{} {
	return toMap(p)
}

// ToMap returns the flattened record, known fields taking precedence over attributes.
func (p Project) ToMap() map[string]interface{} {
	return toMap(p)
}

// ToRow adapts the record for the table view.
func (p Pipeline) ToRow() TableRow {
	return TableRow{
		ID:        p.ID,
		Name:      p.Name,
		Status:    NormalizePipelineStatus(p.Status),
		CreatedAt: p.CreatedAt,
		Data:      p.ToMap(),
	}
}

// ToRow adapts the record for the table view.
func (p Project) ToRow() TableRow {
	return TableRow{
		ID:        p.ID,
		Name:      p.Name,
		Status:    NormalizeProjectStatus(p.Status),
		CreatedAt: p.CreatedAt,
		Data:      p.ToMap(),
	}
}

func mergeAttributes(known []byte, attributes map[string]interface{}) ([]byte, error) {
	if len(attributes) == 0 {
		return known, nil
	}
	merged := make(map[string]interface{}, len(attributes)+8)
	for k, v := range attributes {
		merged[k] = v
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// splitAttributes returns every key of data that the typed alias does not own.
func splitAttributes(data []byte, alias interface{}) (map[string]interface{}, error) {
	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	known, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	var owned map[string]json.RawMessage
	if err := json.Unmarshal(known, &owned); err != nil {
		return nil, err
	}
	for k := range owned {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func toMap(record json.Marshaler) map[string]interface{} {
	data, err := record.MarshalJSON()
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}
