package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lioncurt/shopfront-cli/internal/adapters/render/storefront"
	"github.com/lioncurt/shopfront-cli/internal/domain"
)

func newCartCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and manage your cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showCart(cmd, app)
		},
	}

	cmd.AddCommand(
		newCartAddCmd(app),
		newCartUpdateCmd(app),
		newCartRemoveCmd(app),
		newCartClearCmd(app),
	)

	return cmd
}

func showCart(cmd *cobra.Command, app *app) error {
	var cart domain.Cart
	err := storefront.Spin(cmd.Context(), cmd.ErrOrStderr(), "Loading cart...", func(ctx context.Context) error {
		var fetchErr error
		cart, fetchErr = app.cart.Refresh(ctx)
		return fetchErr
	})
	if err != nil {
		return err
	}

	return writeCart(cmd, app, cart)
}

// writeCart prints the cart, preceded by any stock change the mutation
// produced.
func writeCart(cmd *cobra.Command, app *app, cart domain.Cart) error {
	if update, ok := app.stock.TakeLast(); ok {
		notice, err := storefront.RenderStockUpdate(update)
		if err != nil {
			return fmt.Errorf("render stock update: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), notice); err != nil {
			return err
		}
	}

	rendered, err := storefront.RenderCart(cart)
	if err != nil {
		return fmt.Errorf("render cart: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func newCartAddCmd(app *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := app.cart.Add(cmd.Context(), domain.ProductID(args[0]), quantity)
			if err != nil {
				return err
			}
			return writeCart(cmd, app, cart)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "units to add")

	return cmd
}

func newCartUpdateCmd(app *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Set a cart item's quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := app.cart.UpdateQuantity(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			return writeCart(cmd, app, cart)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "new quantity (minimum 1)")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func newCartRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := app.cart.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeCart(cmd, app, cart)
		},
	}
}

func newCartClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cart, err := app.cart.Clear(cmd.Context())
			if err != nil {
				return err
			}
			return writeCart(cmd, app, cart)
		},
	}
}
