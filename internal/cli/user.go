package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand(opts *RootOptions) *cobra.Command {
	var name, email, phone, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			user, err := app.Service.Register(cmd.Context(), name, email, phone, password)
			if err != nil {
				return operationError("registration failed", err)
			}

			if opts.Format == "json" {
				// Never echo the password back
				user.Password = ""
				return f.Success(user)
			}
			return f.Success(fmt.Sprintf("Registered %s <%s> (id %s)", user.Name, user.Email, user.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address (unique)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and open a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			user, err := app.Service.Login(cmd.Context(), email, password)
			if err != nil {
				return operationError("login failed", err)
			}

			if opts.Format == "json" {
				user.Password = ""
				return f.Success(user)
			}
			return f.Success(fmt.Sprintf("Logged in as %s", user.Name))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(cmd, opts)
			if err := app.Service.Logout(cmd.Context()); err != nil {
				return operationError("logout failed", err)
			}
			return f.Success("Logged out")
		},
	}
}
