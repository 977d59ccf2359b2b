package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/celiakwan/bidhouse/internal/auction"
)

// SettleOptions holds flags for the settle command.
type SettleOptions struct {
	*RootOptions
	Payer  string
	Height uint64
}

// settleResponse is the JSON payload on success.
type settleResponse struct {
	BidID    uint64           `json:"bid_id"`
	Transfer transferResponse `json:"transfer"`
}

type transferResponse struct {
	Token     string `json:"token"`
	Source    string `json:"source"`
	Payer     string `json:"payer"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// NewSettleCommand creates the settle command.
func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "settle <amount>",
		Short: "Settle the auction with a payment notification",
		Long: `Settle the auction with a payment notification.

Only reachable after the deadline, only by the recorded winning bidder,
and only once. The amount must cover the winning bid price; overpayment
is accepted and forwarded in full. On success the command prints the
single transfer instruction for the payment executor.

Example:
  bidhouse settle 110 --payer buyer --height 200300`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Payer, "payer", "", "paying principal (required)")
	cmd.Flags().Uint64Var(&opts.Height, "height", 0, "current block height (required)")
	_ = cmd.MarkFlagRequired("payer")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func runSettle(opts *SettleOptions, amountArg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid amount", err)
	}

	m, closeStore, err := openMachine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := m.NotifyPayment(cmd.Context(), auction.Principal(opts.Payer), amount, opts.Height)
	if err != nil {
		return renderError(f, err)
	}

	t := res.Transfer
	data := settleResponse{
		BidID: res.BidID,
		Transfer: transferResponse{
			Token:     t.Token,
			Source:    string(t.Source),
			Payer:     string(t.Payer),
			Recipient: string(t.Recipient),
			Amount:    t.Amount.String(),
		},
	}
	text := fmt.Sprintf(
		"Auction settled\n  Bid ID: %d\n  Transfer: %s %s from %s to %s (%s)",
		res.BidID, t.Amount, t.Token, t.Payer, t.Recipient, t.Source)
	return f.SuccessText(data, text)
}
