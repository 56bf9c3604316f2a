package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the action history",
		Long:  "Show every recorded action in append order, with the acting user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			entries, warnings, err := app.Service.History(cmd.Context())
			if err != nil {
				return operationError("reading history", err)
			}

			if opts.Format == "json" {
				return f.SuccessWithWarnings(entries, warnings)
			}

			for _, w := range warnings {
				f.VerboseLog("warning: %s", w)
			}
			if len(entries) == 0 {
				return f.Success("No history")
			}
			for _, e := range entries {
				fmt.Fprintf(f.Writer, "%s  %-20s  %s\n", e.Timestamp, e.UserName, e.Action)
			}
			return nil
		},
	}
}
