package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sf",
		Short:         "Shopfront CLI (sf): browse the catalog, manage your cart, check out",
		Long:          "sf (Shopfront CLI) talks to the storefront API: sign in (password or Google), browse and search the product catalog, manage your cart with live stock tracking, and hand off to hosted checkout. Admins can manage products and users.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := app.session.Initialize(cmd.Context()); err != nil {
			return err
		}
		if app.session.Authenticated() {
			// A rejected refresh clears the session; the command then
			// runs unauthenticated and reports what it is missing.
			if err := app.session.CheckAndRefresh(cmd.Context()); err != nil {
				app.log.Warn().Err(err).Msg("session refresh failed")
			}
		}
		return nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProductsCmd(app),
		newBrowseCmd(app),
		newCartCmd(app),
		newCheckoutCmd(app),
		newUsersCmd(app),
	)

	return rootCmd
}
