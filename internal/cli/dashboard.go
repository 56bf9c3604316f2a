package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show collection counts and inventory status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			summary, err := app.Service.Dashboard(cmd.Context())
			if err != nil {
				return operationError("computing dashboard", err)
			}

			if opts.Format == "json" {
				return f.Success(summary)
			}

			fmt.Fprintf(f.Writer, "Categories: %d\n", summary.Categories)
			fmt.Fprintf(f.Writer, "Products:   %d\n", summary.Products)
			fmt.Fprintf(f.Writer, "Users:      %d\n", summary.Users)
			fmt.Fprintf(f.Writer, "Low stock:  %d\n", summary.LowStock)
			fmt.Fprintf(f.Writer, "Status:     %s\n", summary.InventoryStatus)
			return nil
		},
	}
}

// NewLowStockCommand creates the low-stock command.
func NewLowStockCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List products below the low-stock threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			products, err := app.Service.LowStock(cmd.Context())
			if err != nil {
				return operationError("scanning stock levels", err)
			}

			if opts.Format == "json" {
				return f.Success(products)
			}

			if len(products) == 0 {
				return f.Success("All products in stock")
			}
			for _, p := range products {
				fmt.Fprintf(f.Writer, "%s  %s  qty=%d\n", p.ID, p.Name, p.Quantity)
			}
			return nil
		},
	}
}
