package datasource

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/jerry-enebeli/runboard/model"
)

//go:embed fixtures/*.json
var fixtureFiles embed.FS

// FixturePipelines returns a fresh copy of the twelve sample pipelines.
func FixturePipelines() []model.Pipeline {
	var pipelines []model.Pipeline
	mustDecode("fixtures/pipelines.json", &pipelines)
	return pipelines
}

// FixtureProjects returns a fresh copy of the eight sample projects.
func FixtureProjects() []model.Project {
	var projects []model.Project
	mustDecode("fixtures/projects.json", &projects)
	return projects
}

func mustDecode(name string, out interface{}) {
	data, err := fixtureFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("datasource: missing fixture %s: %v", name, err))
	}
	if err := json.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("datasource: invalid fixture %s: %v", name, err))
	}
}
