package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/stockpile/internal/audit"
	"github.com/roach88/stockpile/internal/config"
	"github.com/roach88/stockpile/internal/inventory"
	"github.com/roach88/stockpile/internal/repo"
	"github.com/roach88/stockpile/internal/session"
	"github.com/roach88/stockpile/internal/store"
)

// App bundles the wired data layer for one command invocation:
// store, session, audit log, and service, built from config + flags.
type App struct {
	Store   *store.Store
	Session *session.Manager
	Audit   *audit.Log
	Service *inventory.Service
	Config  config.Config
}

// openApp loads config, opens the store, and wires the service.
// The session is initialized from the persisted loggedInUser key here,
// once, and handed to the service - nothing else reads it ad hoc.
func openApp(ctx context.Context, opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	if opts.DB != "" {
		cfg.DB = opts.DB
	}

	st, err := store.Open(cfg.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("opening database %s", cfg.DB), err)
	}

	logger := zap.NewNop()
	if opts.Verbose || cfg.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}

	sess := session.NewManager(st)
	if err := sess.Init(ctx); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "loading session", err)
	}

	db := repo.NewDB(st)
	log := audit.New(db, audit.WithLogger(logger))
	svc := inventory.NewService(db, sess, log, inventory.Config{
		LowStockThreshold: cfg.LowStockThreshold,
		Logger:            logger,
	})

	return &App{
		Store:   st,
		Session: sess,
		Audit:   log,
		Service: svc,
		Config:  cfg,
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.Store.Close()
}

// newFormatter builds the output formatter for a command.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// operationError converts a data layer error into an ExitError with the
// right exit code: validation and not-found are operation failures (1),
// everything else is a command error (2).
func operationError(message string, err error) *ExitError {
	if repo.IsValidation(err) || repo.IsNotFound(err) {
		return WrapExitError(ExitFailure, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}
