package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/spf13/cobra"
)

func configCommands(r *runboardInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "config outputs your instances computed configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := *r.cnf
			if cfg.DataSource.Dns != "" {
				cfg.DataSource.Dns = redactDSN(cfg.DataSource.Dns)
			}

			data, err := json.MarshalIndent(cfg, "", "    ")
			if err != nil {
				log.Fatalf("Error printing config: %v\n", err)
			}

			fmt.Println(string(data))
			fmt.Printf("backing: %s\n", r.runboard.Backing())
		},
	}
	return cmd
}

// redactDSN hides the password of a connection URL.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
