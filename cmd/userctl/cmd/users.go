package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/userbase/internal/app"
	"github.com/templui/userbase/internal/config"
)

func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and remove accounts",
	}

	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersDeleteCmd())
	return cmd
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), config.Load())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			users, err := a.UserService.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tUSERNAME\tCREATED\tLAST LOGIN")
			for _, u := range users {
				lastLogin := "-"
				if u.LastLoginAt != nil {
					lastLogin = u.LastLoginAt.Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Email, u.Username, u.CreatedAt.Format(time.RFC3339), lastLogin)
			}
			return tw.Flush()
		},
	}
}

func usersDeleteCmd() *cobra.Command {
	var withProfile bool

	cmd := &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), config.Load())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			email := args[0]
			deleted, err := a.UserService.Delete(cmd.Context(), email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d account(s) for %s\n", deleted, email)

			if withProfile {
				deleted, err = a.ProfileService.Delete(cmd.Context(), email)
				if err != nil {
					return fmt.Errorf("account deleted, profile not: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d profile(s) for %s\n", deleted, email)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withProfile, "with-profile", false, "also delete the profile")
	return cmd
}
