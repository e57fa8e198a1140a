package main

import (
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/util"

	"github.com/spf13/cobra"
)

type migrateFlags struct {
	source      string
	databaseURL string
	steps       int
}

func newMigrateCmd() *cobra.Command {
	var flags migrateFlags

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.PersistentFlags().StringVar(&flags.source, "source", util.GetEnvString("MIGRATIONS_PATH", db.DefaultMigrationsPath), "Migration source URL")
	cmd.PersistentFlags().StringVar(&flags.databaseURL, "database-url", util.GetEnv("DATABASE_URL"), "PostgreSQL connection URL")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.databaseURL == "" {
				return errors.New("database url is required (--database-url or DATABASE_URL)")
			}
			if err := db.MigrateUp(flags.source, flags.databaseURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.databaseURL == "" {
				return errors.New("database url is required (--database-url or DATABASE_URL)")
			}
			if err := db.MigrateDown(flags.source, flags.databaseURL, flags.steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", flags.steps)
			return nil
		},
	}
	down.Flags().IntVar(&flags.steps, "steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
