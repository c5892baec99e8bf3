package main

import (
	"fmt"
	"strconv"

	"employee-records/internal/config"
	"employee-records/internal/db"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(fn func(cmd *cobra.Command, mg *db.Migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			mg, err := db.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer func() { _ = mg.Close() }()
			return fn(cmd, mg, args)
		}
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, mg *db.Migrator, _ []string) error {
			if err := mg.Up(); err != nil {
				return err
			}
			cmd.Println("Migrations complete")
			return nil
		}),
	}

	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default: 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withMigrator(func(cmd *cobra.Command, mg *db.Migrator, args []string) error {
			steps := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid steps %q: %w", args[0], err)
				}
				steps = n
			}
			if err := mg.Down(steps); err != nil {
				return err
			}
			cmd.Printf("Rolled back %d migration(s)\n", steps)
			return nil
		}),
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, mg *db.Migrator, _ []string) error {
			ver, dirty, ok, err := mg.Version()
			if err != nil {
				return err
			}
			if !ok {
				cmd.Println("No migrations have been applied yet")
				return nil
			}
			cmd.Printf("Current version: %d\n", ver)
			if dirty {
				cmd.Println("Warning: database is in a dirty state")
			}
			return nil
		}),
	}

	cmd.AddCommand(up, down, version)
	return cmd
}
