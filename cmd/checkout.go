package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lioncurt/shopfront-cli/internal/adapters/render/storefront"
	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

func newCheckoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Create a hosted checkout session for the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cart domain.Cart
			var session ports.CheckoutSession

			err := storefront.Spin(cmd.Context(), cmd.ErrOrStderr(), "Creating checkout session...", func(ctx context.Context) error {
				var err error
				if cart, err = app.cart.Refresh(ctx); err != nil {
					return err
				}
				session, err = app.cart.Checkout(ctx)
				return err
			})
			if err != nil {
				return err
			}

			rendered, err := storefront.RenderCheckout(cart, app.cart.CheckoutAmount(cart), session)
			if err != nil {
				return fmt.Errorf("render checkout: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}
