package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stockpile/internal/model"
)

// NewProductCommand creates the product command group.
func NewProductCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	cmd.AddCommand(newProductAddCommand(opts))
	cmd.AddCommand(newProductListCommand(opts))
	cmd.AddCommand(newProductUpdateCommand(opts))
	cmd.AddCommand(newProductRemoveCommand(opts))

	return cmd
}

// productFlags registers the shared entity flags for add/update.
func productFlags(cmd *cobra.Command, p *model.Product) {
	cmd.Flags().StringVar(&p.Name, "name", "", "product name")
	cmd.Flags().StringVar(&p.Description, "description", "", "product description")
	cmd.Flags().StringVar(&p.SKU, "sku", "", "stock keeping unit")
	cmd.Flags().Int64Var(&p.Quantity, "quantity", 0, "stock quantity")
	cmd.Flags().StringVar(&p.Weight, "weight", "", "weight")
	cmd.Flags().StringVar(&p.Dimensions, "dimensions", "", "dimensions")
	cmd.Flags().StringArrayVar(&p.Images, "image", nil, "image URI (repeatable, stored opaquely)")
	cmd.Flags().StringVar(&p.Category, "category", "", "category id")
}

func newProductAddCommand(opts *RootOptions) *cobra.Command {
	var product model.Product

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			stored, warnings, err := app.Service.AddProduct(cmd.Context(), product)
			if err != nil {
				return operationError("adding product", err)
			}

			if opts.Format == "json" {
				return f.SuccessWithWarnings(stored, warnings)
			}
			for _, w := range warnings {
				fmt.Fprintf(f.Writer, "warning: %s\n", w)
			}
			return f.Success(fmt.Sprintf("Added product %q (id %s)", stored.Name, stored.ID))
		},
	}

	productFlags(cmd, &product)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("sku")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newProductListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			products, warnings, err := app.Service.ListProducts(cmd.Context())
			if err != nil {
				return operationError("listing products", err)
			}

			if opts.Format == "json" {
				return f.SuccessWithWarnings(products, warnings)
			}

			for _, w := range warnings {
				fmt.Fprintf(f.Writer, "warning: %s\n", w)
			}
			if len(products) == 0 {
				return f.Success("No products")
			}
			var b strings.Builder
			for _, p := range products {
				fmt.Fprintf(&b, "%s  %s  sku=%s  qty=%d  category=%s\n",
					p.ID, p.Name, p.SKU, p.Quantity, p.Category)
			}
			fmt.Fprint(f.Writer, b.String())
			return nil
		},
	}
}

func newProductUpdateCommand(opts *RootOptions) *cobra.Command {
	var product model.Product

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			stored, warnings, err := app.Service.UpdateProduct(cmd.Context(), args[0], product)
			if err != nil {
				return operationError("updating product", err)
			}

			if opts.Format == "json" {
				return f.SuccessWithWarnings(stored, warnings)
			}
			for _, w := range warnings {
				fmt.Fprintf(f.Writer, "warning: %s\n", w)
			}
			return f.Success(fmt.Sprintf("Updated product %q", stored.Name))
		},
	}

	productFlags(cmd, &product)
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProductRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			if err := app.Service.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return operationError("deleting product", err)
			}
			return f.Success(fmt.Sprintf("Deleted product %s", args[0]))
		},
	}
}
