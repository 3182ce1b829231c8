package main

import (
	"github.com/spf13/cobra"

	"github.com/ekaya-inc/entropy/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				sqlDB, err := database.OpenSQL(d.Config.Database.ConnectionString())
				if err != nil {
					return err
				}
				defer sqlDB.Close()

				return database.RunMigrations(sqlDB, d.Logger)
			})
		},
	}
}
