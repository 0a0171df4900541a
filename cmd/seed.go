package main

import (
	"errors"
	"fmt"

	"github.com/jerry-enebeli/runboard/datasource"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// seedCommands loads the sample records, plus optional generated ones, into Postgres.
func seedCommands(r *runboardInstance) *cobra.Command {
	var (
		fake int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "load sample pipelines and projects into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := r.runboard.DB()
			if db == nil {
				return errors.New("seed needs data_source.dns to point at Postgres")
			}
			if fake < 0 {
				return errors.New("--fake cannot be negative")
			}

			pipelines := datasource.FixturePipelines()
			projects := datasource.FixtureProjects()
			if fake > 0 {
				pipelines = append(pipelines, datasource.FakePipelines(fake, seed)...)
				projects = append(projects, datasource.FakeProjects(fake, seed)...)
			}

			ctx := cmd.Context()
			for _, p := range pipelines {
				if err := db.InsertPipeline(ctx, p); err != nil {
					return fmt.Errorf("pipeline %s: %w", p.ID, err)
				}
			}
			for _, p := range projects {
				if err := db.InsertProject(ctx, p); err != nil {
					return fmt.Errorf("project %s: %w", p.ID, err)
				}
			}

			logrus.WithFields(logrus.Fields{"pipelines": len(pipelines), "projects": len(projects)}).Info("seeded records")
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d pipelines and %d projects\n", len(pipelines), len(projects))
			return nil
		},
	}

	cmd.Flags().IntVar(&fake, "fake", 0, "number of generated pipelines and projects to add")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for generated records")
	return cmd
}
