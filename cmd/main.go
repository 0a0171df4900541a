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
	"os"

	"github.com/jerry-enebeli/runboard"
	"github.com/jerry-enebeli/runboard/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Runboard represents the CLI application, encapsulating the root Cobra command.
type Runboard struct {
	cmd *cobra.Command
}

// runboardInstance holds the runtime instance and configuration shared by the commands.
type runboardInstance struct {
	runboard *runboard.Runboard
	cnf      *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and picks the data backing before any command runs.
func preRun(app *runboardInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		rb, err := runboard.NewRunboard(cnf)
		if err != nil {
			log.Fatal(err)
		}

		app.runboard = rb
		app.cnf = cnf
		return nil
	}
}

// NewCLI creates the command-line interface and registers every subcommand.
func NewCLI() *Runboard {
	var configFile string
	r := &runboardInstance{}

	var rootCmd = &cobra.Command{
		Use:   "runboard",
		Short: "Query builder and saved views for pipeline and project runs",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./runboard.json", "Configuration file for runboard")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug output")

	rootCmd.PersistentPreRunE = preRun(r, &configFile)

	rootCmd.AddCommand(serverCommands(r))
	rootCmd.AddCommand(migrateCommands(r))
	rootCmd.AddCommand(configCommands(r))
	rootCmd.AddCommand(seedCommands(r))
	rootCmd.AddCommand(queryCommands(r))
	rootCmd.AddCommand(previewCommands(r))
	rootCmd.AddCommand(viewCommands(r))

	return &Runboard{cmd: rootCmd}
}

func (w Runboard) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
