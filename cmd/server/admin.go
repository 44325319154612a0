package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rahafha1/project-manager-api/internal/database"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := database.Migrate(a.db); err != nil {
				return err
			}
			a.log.Infow("migrations applied")
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	var in services.RegisterInput

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create an account, optionally with staff or superuser flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := database.Migrate(a.db); err != nil {
				return err
			}
			if in.Password == "" {
				in.Password = os.Getenv("PM_PASSWORD")
			}

			user, err := a.auth.Register(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", user.ID, user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "username")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (defaults to $PM_PASSWORD)")
	cmd.Flags().BoolVar(&in.IsSuperuser, "superuser", false, "grant superuser")
	cmd.Flags().BoolVar(&in.IsStaff, "staff", false, "grant staff")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			users, _, err := a.userRepo.List(context.Background(), utils.PaginationParams{})
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"ID", "Username", "Email", "Active", "Staff", "Superuser"})
			for _, u := range users {
				tw.AppendRow(table.Row{u.ID, u.Username, u.Email, u.IsActive, u.IsStaff, u.IsSuperuser})
			}
			tw.Render()
			return nil
		},
	}
}
