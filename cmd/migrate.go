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

package main

import (
	"fmt"
	"log"

	"github.com/jerry-enebeli/runboard"
	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/database"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

// migrationTable keeps runboard's migration history apart from other tools sharing the database.
const migrationTable = "runboard_migrations"

func migrateCommands(_ *runboardInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "start runboard migration",
	}

	cmd.AddCommand(migrateRunCommand("up", migrate.Up, "Applied %d migrations!\n"))
	cmd.AddCommand(migrateRunCommand("down", migrate.Down, "Rolled back %d migrations!\n"))

	return cmd
}

func migrateRunCommand(use string, direction migrate.MigrationDirection, done string) *cobra.Command {
	return &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, args []string) {
			migrations := migrate.EmbedFileSystemMigrationSource{
				FileSystem: runboard.SQLFiles,
				Root:       "sql",
			}

			cnf, err := config.Fetch()
			if err != nil {
				log.Printf("Error fetching config: %v", err)
				return
			}
			if cnf.DataSource.Dns == "" {
				log.Println("data_source.dns is not set, nothing to migrate")
				return
			}

			db, err := database.ConnectDB(cnf.DataSource.Dns)
			if err != nil {
				log.Printf("Error connecting to database: %v", err)
				return
			}
			defer db.Close()

			migrate.SetTable(migrationTable)

			n, err := migrate.Exec(db, "postgres", migrations, direction)
			if err != nil {
				log.Printf("Error migrating %s: %v", use, err)
				return
			}
			fmt.Printf(done, n)
		},
	}
}
