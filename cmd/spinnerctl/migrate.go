package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"seo-spinner/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long: `Manage database schema migrations.

Subcommands:
  up       Apply all pending migrations
  status   Show migration status
  rollback Roll back the last migration group`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *database.Migrator) error {
					return m.Up(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *database.Migrator) error {
					status, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "MIGRATION\tCOMMENT\tSTATUS")
					for _, s := range status {
						state := "pending"
						if s.Applied {
							state = fmt.Sprintf("applied (group %d)", s.GroupID)
						}
						fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Comment, state)
					}
					return tw.Flush()
				})
			},
		},
		newMigrateRollbackCmd(),
	)
	return cmd
}

func newMigrateRollbackCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last migration group",
		Long: `Roll back the last applied migration group by running its down migrations.

This drops tables and their data. Use --force to confirm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("rollback drops data; re-run with --force to confirm")
			}
			return withMigrator(func(m *database.Migrator) error {
				return m.Rollback(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "confirm the rollback")
	return cmd
}

func withMigrator(fn func(*database.Migrator) error) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := database.NewMigrator(env.db, env.logr.Logger)
	if err != nil {
		return err
	}
	return fn(m)
}
