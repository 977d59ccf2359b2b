package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celiakwan/bidhouse/internal/auction"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Height uint64
}

// statusResponse is the JSON payload for status.
type statusResponse struct {
	Phase string           `json:"phase"`
	Best  *bestBidResponse `json:"best,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the auction phase at a given height",
		Long: `Show the derived auction phase (open, closed-unsettled,
closed-settled) at the given height, plus the current best bid if any.
The phase is never stored; it is a comparison against the deadline.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Height, "height", 0, "current block height (required)")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	m, closeStore, err := openMachine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore()

	phase, err := m.Phase(cmd.Context(), opts.Height)
	if err != nil {
		return renderError(f, err)
	}

	data := statusResponse{Phase: string(phase)}
	bestLine := "Best bid: none"
	best, err := m.GetBestBid(cmd.Context())
	switch {
	case err == nil:
		data.Best = &bestBidResponse{
			ID:     best.ID,
			Bidder: string(best.Record.Bidder),
			Price:  best.Record.Price.String(),
			Sold:   best.Sold,
		}
		bestLine = fmt.Sprintf("Best bid: %s by %s (id %d)", best.Record.Price, best.Record.Bidder, best.ID)
	case auction.IsCode(err, auction.CodeNotFound):
		// No bids yet; phase alone is the answer.
	default:
		return renderError(f, err)
	}

	text := fmt.Sprintf("Phase: %s\n%s", phase, bestLine)
	return f.SuccessText(data, text)
}
