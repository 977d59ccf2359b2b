package cli

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/celiakwan/bidhouse/internal/auction"
	"github.com/celiakwan/bidhouse/internal/store"
)

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openMachine opens the auction database and wraps it in a Machine.
// The returned close func must be called when the command finishes.
func openMachine(opts *RootOptions) (*auction.Machine, func() error, error) {
	kv, err := store.Open(opts.DB)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open database", err)
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	m := auction.New(kv, auction.WithLogger(logger))
	return m, kv.Close, nil
}

// renderError prints a rejection through the formatter and converts it
// into an exit code. Auction rejections exit 1; anything else exits 2.
func renderError(f *OutputFormatter, err error) error {
	var ae *auction.Error
	if errors.As(err, &ae) {
		_ = f.Error(string(ae.Code), ae.Message, ae.Details)
		// Already printed; empty message keeps main from printing twice.
		return NewExitError(ExitFailure, "")
	}
	return WrapExitError(ExitCommandError, "command failed", err)
}

// parseUint parses a numeric positional argument.
func parseUint(name, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "invalid "+name, err)
	}
	return v, nil
}
