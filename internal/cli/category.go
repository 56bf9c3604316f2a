package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stockpile/internal/model"
)

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(newCategoryAddCommand(opts))
	cmd.AddCommand(newCategoryListCommand(opts))
	cmd.AddCommand(newCategoryUpdateCommand(opts))
	cmd.AddCommand(newCategoryRemoveCommand(opts))

	return cmd
}

// categoryFlags registers the shared entity flags for add/update.
func categoryFlags(cmd *cobra.Command, c *model.Category) {
	cmd.Flags().StringVar(&c.Name, "name", "", "category name")
	cmd.Flags().StringVar(&c.Description, "description", "", "category description")
	cmd.Flags().StringVar(&c.Image, "image", "", "main image URI (stored opaquely)")
	cmd.Flags().StringArrayVar(&c.AdditionalImages, "additional-image", nil, "additional image URI (repeatable)")
}

func newCategoryAddCommand(opts *RootOptions) *cobra.Command {
	var category model.Category

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			stored, err := app.Service.AddCategory(cmd.Context(), category)
			if err != nil {
				return operationError("adding category", err)
			}

			if opts.Format == "json" {
				return f.Success(stored)
			}
			return f.Success(fmt.Sprintf("Added category %q (id %s)", stored.Name, stored.ID))
		},
	}

	categoryFlags(cmd, &category)
	cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoryListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			categories, warnings, err := app.Service.ListCategories(cmd.Context())
			if err != nil {
				return operationError("listing categories", err)
			}

			if opts.Format == "json" {
				return f.SuccessWithWarnings(categories, warnings)
			}

			for _, w := range warnings {
				f.VerboseLog("warning: %s", w)
			}
			if len(categories) == 0 {
				return f.Success("No categories")
			}
			var b strings.Builder
			for _, c := range categories {
				fmt.Fprintf(&b, "%s  %s  %s\n", c.ID, c.Name, c.Description)
			}
			fmt.Fprint(f.Writer, b.String())
			return nil
		},
	}
}

func newCategoryUpdateCommand(opts *RootOptions) *cobra.Command {
	var category model.Category

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			stored, err := app.Service.UpdateCategory(cmd.Context(), args[0], category)
			if err != nil {
				return operationError("updating category", err)
			}

			if opts.Format == "json" {
				return f.Success(stored)
			}
			return f.Success(fmt.Sprintf("Updated category %q", stored.Name))
		},
	}

	categoryFlags(cmd, &category)
	cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoryRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category",
		Long: "Delete a category. Products referencing it are kept; their dangling " +
			"references are reported as warnings on the next product listing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			if err := app.Service.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return operationError("deleting category", err)
			}
			return f.Success(fmt.Sprintf("Deleted category %s", args[0]))
		},
	}
}
