package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lioncurt/shopfront-cli/internal/adapters/render/storefront"
	"github.com/lioncurt/shopfront-cli/internal/domain"
)

func newUsersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage registered users (admin)",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersGetCmd(app),
		newUsersUpdateCmd(app),
		newUsersDeleteCmd(app),
	)

	return cmd
}

func newUsersListCmd(app *app) *cobra.Command {
	var limit int
	var sort string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := pageRequest(limit, sort)
			if err != nil {
				return err
			}

			err = storefront.Spin(cmd.Context(), cmd.ErrOrStderr(), "Loading users...", func(ctx context.Context) error {
				if err := app.users.RefreshUsers(ctx, req); err != nil {
					return err
				}
				if !all {
					return nil
				}
				for app.users.Users().HasMore() {
					if _, err := app.users.LoadMore(ctx); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			list := app.users.Users()
			rendered, err := storefront.RenderUsers(list.Items(), list.Total(), list.HasMore())
			if err != nil {
				return fmt.Errorf("render users: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	pageFlags(cmd, &limit, &sort)
	cmd.Flags().BoolVar(&all, "all", false, "follow the cursor until the listing is exhausted")

	return cmd
}

func newUsersGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.users.Get(cmd.Context(), domain.UserID(args[0]))
			if err != nil {
				return err
			}

			rendered, err := storefront.RenderUserDetail(user)
			if err != nil {
				return fmt.Errorf("render user: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newUsersUpdateCmd(app *app) *cobra.Command {
	var update domain.UserUpdate
	var role string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update.Role = domain.Role(role)
			updated, err := app.users.Update(cmd.Context(), domain.UserID(args[0]), update)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", updated.Name, updated.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&update.Name, "name", "", "display name")
	cmd.Flags().IntVar(&update.Age, "age", 0, "age")
	cmd.Flags().StringVar(&update.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&update.MobileNumber, "mobile", "", "mobile number")
	cmd.Flags().StringVar(&role, "role", "", "role (user|admin)")

	return cmd
}

func newUsersDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.users.Delete(cmd.Context(), domain.UserID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}
