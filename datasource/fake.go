package datasource

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jerry-enebeli/runboard/model"
)

var (
	fakePipelineStatuses = []string{"success", "failed", "running", "pending"}
	fakeProjectStatuses  = []string{"active", "deploying", "processing", "configuring", "error"}
	fakeExecutors        = []string{"k8s-pod", "k8s-job", "gpu-pod", "aws-lambda", "serverless", "cron-job", "batch-job", "spark-job"}
	fakeProjectTypes     = []string{"java-11", "java-17", "python-3.6", "node-22", "dotNet-18", "gitlab"}
)

// FakePipelines generates n random pipelines. The same seed yields the same rows.
func FakePipelines(n int, seed int64) []model.Pipeline {
	faker := gofakeit.New(seed)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Pipeline, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("fake-pipe-%04d", i)
		status := faker.RandomString(fakePipelineStatuses)
		duration := 0.0
		if status != "pending" {
			duration = math.Round(faker.Float64Range(1, 3600)*100) / 100
		}
		out = append(out, model.Pipeline{
			ID:          id,
			PipelineID:  id,
			Name:        faker.AppName() + " " + faker.HackerVerb(),
			ProjectType: strings.ToLower(faker.HackerNoun()),
			Status:      status,
			Executor:    faker.RandomString(fakeExecutors),
			CreatedAt:   faker.DateRange(base, base.AddDate(0, 3, 0)).UTC(),
			Duration:    duration,
			Attributes: map[string]interface{}{
				"triggeredBy": faker.Username(),
			},
		})
	}
	return out
}

// FakeProjects generates n random projects.
func FakeProjects(n int, seed int64) []model.Project {
	faker := gofakeit.New(seed)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Project, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("fake-proj-%04d", i)
		name := faker.AppName()
		out = append(out, model.Project{
			ID:          id,
			ProjectID:   id,
			Name:        name,
			ProjectType: faker.RandomString(fakeProjectTypes),
			Status:      faker.RandomString(fakeProjectStatuses),
			Repository:  "github.com/company/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Language:    faker.ProgrammingLanguage(),
			CreatedAt:   faker.DateRange(base, base.AddDate(0, 3, 0)).UTC(),
			Attributes: map[string]interface{}{
				"team": faker.JobDescriptor(),
			},
		})
	}
	return out
}
