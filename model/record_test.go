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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineJSONFlattensAttributes(t *testing.T) {
	p := Pipeline{
		ID:          "pipe-001",
		PipelineID:  "pipe-001",
		Name:        "Data Ingestion Pipeline",
		ProjectType: "data-ingestion",
		Status:      "success",
		Executor:    "k8s-pod",
		CreatedAt:   time.Date(2024, 1, 24, 10, 30, 0, 0, time.UTC),
		Duration:    245.67,
		Attributes:  map[string]interface{}{"recordsProcessed": float64(1250000), "name": "shadowed"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, float64(1250000), flat["recordsProcessed"])
	assert.Equal(t, "Data Ingestion Pipeline", flat["name"], "known fields win over attributes")

	var decoded Pipeline
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p.Duration, decoded.Duration)
	assert.Equal(t, map[string]interface{}{"recordsProcessed": float64(1250000)}, decoded.Attributes)
}

func TestProjectUnmarshalWithoutExtras(t *testing.T) {
	var p Project
	err := json.Unmarshal([]byte(`{"id":"proj-002","name":"Payment Service","status":"deploying","language":"Go","createdAt":"2024-01-18T14:30:00Z"}`), &p)
	require.NoError(t, err)
	assert.Nil(t, p.Attributes)
	assert.Equal(t, "Go", p.Language)
}

func TestToRowNormalizesStatus(t *testing.T) {
	row := Project{ID: "proj-004", Name: "User Management API", Status: "error"}.ToRow()
	assert.Equal(t, StatusFailed, row.Status)
	assert.Equal(t, "error", row.Data["status"])

	assert.Equal(t, StatusRunning, Pipeline{Status: "running"}.ToRow().Status)
}

func TestNormalizeProjectStatus(t *testing.T) {
	tests := map[string]DisplayStatus{
		"active":      StatusRunning,
		"deploying":   StatusRunning,
		"processing":  StatusRunning,
		"configuring": StatusRunning,
		"error":       StatusFailed,
		"ERROR":       StatusFailed,
		"archived":    StatusPending,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeProjectStatus(in))
		})
	}
}

func TestBadgeClass(t *testing.T) {
	assert.Equal(t, "badge-success", StatusSuccess.BadgeClass())
	assert.Equal(t, "badge-error", StatusFailed.BadgeClass())
	assert.Equal(t, "badge-info", StatusRunning.BadgeClass())
	assert.Equal(t, "badge-warning", StatusPending.BadgeClass())
	assert.Equal(t, "badge-neutral", DisplayStatus("unknown").BadgeClass())
}

func TestConditionPatchAndRemint(t *testing.T) {
	value := "failed"
	op := OpNotEqual
	c := ConditionPatch{Value: &value, Operator: &op}.Apply(FilterCondition{ID: "c1", Field: FieldStatus, Operator: OpEqual, Logic: LogicAnd})
	assert.Equal(t, FilterCondition{ID: "c1", Field: FieldStatus, Operator: OpNotEqual, Value: "failed", Logic: LogicAnd}, c)

	n := 0
	next := func() string { n++; return "new-" + string(rune('0'+n)) }
	in := []FilterCondition{c}
	out := RemintConditions(in, next)
	assert.Equal(t, "new-1", out[0].ID)
	assert.Equal(t, "c1", in[0].ID)
	assert.True(t, out[0].SameClause(in[0]))
}
