package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lioncurt/shopfront-cli/internal/adapters/render/storefront"
	"github.com/lioncurt/shopfront-cli/internal/domain"
)

func newProductsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the product catalog",
	}

	cmd.AddCommand(
		newProductsListCmd(app),
		newProductsSearchCmd(app),
		newProductsGetCmd(app),
		newProductsCreateCmd(app),
		newProductsUpdateCmd(app),
		newProductsDeleteCmd(app),
	)

	return cmd
}

func pageFlags(cmd *cobra.Command, limit *int, sort *string) {
	cmd.Flags().IntVar(limit, "limit", 10, "page size")
	cmd.Flags().StringVar(sort, "sort", "desc", "sort order (asc|desc)")
}

func pageRequest(limit int, sort string) (domain.PageRequest, error) {
	order := domain.SortOrder(sort)
	if !order.Valid() {
		return domain.PageRequest{}, fmt.Errorf("invalid sort order %q, expected asc or desc", sort)
	}
	return domain.PageRequest{Limit: limit, SortOrder: order}, nil
}

func newProductsListCmd(app *app) *cobra.Command {
	var limit int
	var sort string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := pageRequest(limit, sort)
			if err != nil {
				return err
			}

			err = storefront.Spin(cmd.Context(), cmd.ErrOrStderr(), "Loading products...", func(ctx context.Context) error {
				if err := app.catalog.RefreshBrowse(ctx, req); err != nil {
					return err
				}
				if !all {
					return nil
				}
				for app.catalog.Browse().HasMore() {
					if _, err := app.catalog.Browse().LoadMore(ctx, domain.PageRequest{}); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			browse := app.catalog.Browse()
			rendered, err := storefront.RenderProducts(browse.Items(), storefront.ProductListOptions{
				Total:   browse.Total(),
				HasMore: browse.HasMore(),
			})
			if err != nil {
				return fmt.Errorf("render products: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	pageFlags(cmd, &limit, &sort)
	cmd.Flags().BoolVar(&all, "all", false, "follow the cursor until the listing is exhausted")

	return cmd
}

func newProductsSearchCmd(app *app) *cobra.Command {
	var limit int
	var sort string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := pageRequest(limit, sort)
			if err != nil {
				return err
			}

			err = storefront.Spin(cmd.Context(), cmd.ErrOrStderr(), "Searching...", func(ctx context.Context) error {
				return app.catalog.SubmitSearch(ctx, args[0], req)
			})
			if err != nil {
				return err
			}

			results := app.catalog.SearchResults()
			rendered, err := storefront.RenderProducts(results.Items(), storefront.ProductListOptions{
				Query:   args[0],
				Total:   results.Total(),
				HasMore: results.HasMore(),
			})
			if err != nil {
				return fmt.Errorf("render search results: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	pageFlags(cmd, &limit, &sort)

	return cmd
}

func newProductsGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show a product's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := app.catalog.SelectProduct(cmd.Context(), domain.ProductID(args[0]))
			if err != nil {
				return err
			}

			rendered, err := storefront.RenderProductDetail(product)
			if err != nil {
				return fmt.Errorf("render product: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func productInputFlags(cmd *cobra.Command, input *domain.ProductInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&input.Stock, "stock", 0, "stock level")
	cmd.Flags().StringVar(&input.Category, "category", "", "category")
	cmd.Flags().StringVar(&input.Brand, "brand", "", "brand")
	cmd.Flags().StringSliceVar(&input.Tags, "tags", nil, "tags")
	cmd.Flags().StringSliceVar(&input.Images, "images", nil, "image URLs")
}

func newProductsCreateCmd(app *app) *cobra.Command {
	var input domain.ProductInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := app.catalog.CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", created.Name, created.ID)
			return err
		},
	}

	productInputFlags(cmd, &input)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newProductsUpdateCmd(app *app) *cobra.Command {
	var input domain.ProductInput

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.catalog.UpdateProduct(cmd.Context(), domain.ProductID(args[0]), input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", updated.Name, updated.ID)
			return err
		},
	}

	productInputFlags(cmd, &input)

	return cmd
}

func newProductsDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.catalog.DeleteProduct(cmd.Context(), domain.ProductID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}
