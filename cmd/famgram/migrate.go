package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/famgram/database"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "migrate",
		Short:       "Apply pending remote database migrations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(cmd.Context(), c.cfg.Database.DSN); err != nil {
				return err
			}
			c.logger.Info("migrations applied")
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}
