package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lioncurt/shopfront-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.session.Login(cmd.Context(), domain.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Name, user.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	cmd.AddCommand(newLoginGoogleCmd(app))

	return cmd
}

func newLoginGoogleCmd(app *app) *cobra.Command {
	var idToken string

	cmd := &cobra.Command{
		Use:   "google",
		Short: "Sign in with a Google ID token",
		Long:  "Signs in with a Google ID token obtained from an OAuth flow. The account is created on first sign-in.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.google.SignIn(cmd.Context(), idToken)
			if err != nil {
				return err
			}
			if err := app.session.Adopt(cmd.Context(), result); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s) via Google\n", result.User.Name, result.User.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&idToken, "id-token", "", "Google ID token")
	_ = cmd.MarkFlagRequired("id-token")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var reg domain.Registration
	var age int

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg.Age = age
			reg.Role = domain.RoleUser
			user, err := app.session.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Account created, signed in as %s (%s)\n", user.Name, user.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&reg.Email, "email", "", "account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "account password")
	cmd.Flags().StringVar(&reg.Name, "name", "", "display name")
	cmd.Flags().IntVar(&age, "age", 0, "age")
	cmd.Flags().StringVar(&reg.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&reg.MobileNumber, "mobile", "", "mobile number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.session.Profile(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return err
		},
	}
}
