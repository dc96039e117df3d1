package main

import (
	"fmt"
	"strings"

	"seo-spinner/internal/services"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage operator accounts for the API",
	}

	var (
		email, name, password, roles string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a local operator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			// token signing is not needed to create an account
			svc := services.NewAuthService(env.db, nil, env.cfg, env.logr.Logger)
			var roleList []string
			for _, r := range strings.Split(roles, ",") {
				if r = strings.TrimSpace(r); r != "" {
					roleList = append(roleList, r)
				}
			}
			u, err := svc.CreateLocalUser(cmd.Context(), email, name, password, roleList)
			if err != nil {
				return err
			}
			fmt.Printf("created user %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&email, "email", "", "login email (required)")
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&password, "password", "", "password, at least 8 characters (required)")
	add.Flags().StringVar(&roles, "roles", "editor", "comma-separated roles")
	_ = add.MarkFlagRequired("email")
	_ = add.MarkFlagRequired("password")

	cmd.AddCommand(add)
	return cmd
}
