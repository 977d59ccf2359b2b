package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/celiakwan/bidhouse/internal/auction"
)

// BidOptions holds flags for the bid command.
type BidOptions struct {
	*RootOptions
	Bidder string
	Height uint64
}

// bidResponse is the JSON payload on success.
type bidResponse struct {
	ID     uint64 `json:"id"`
	Bidder string `json:"bidder"`
	Price  string `json:"price"`
}

// NewBidCommand creates the bid command.
func NewBidCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BidOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bid <price>",
		Short: "Place a bid on the auction",
		Long: `Place a bid on the auction.

The bid must clear the reserve price and exceed the current best price
by at least the minimum increment; the first bid is measured against
the reserve price itself. Bids at or after the deadline are rejected.

Example:
  bidhouse bid 110 --bidder buyer --height 200000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBid(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Bidder, "bidder", "", "bidding principal (required)")
	cmd.Flags().Uint64Var(&opts.Height, "height", 0, "current block height (required)")
	_ = cmd.MarkFlagRequired("bidder")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func runBid(opts *BidOptions, priceArg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	price, err := decimal.NewFromString(priceArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid price", err)
	}

	m, closeStore, err := openMachine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := m.PlaceBid(cmd.Context(), auction.Principal(opts.Bidder), price, opts.Height)
	if err != nil {
		return renderError(f, err)
	}

	data := bidResponse{ID: res.ID, Bidder: opts.Bidder, Price: price.String()}
	text := fmt.Sprintf("Bid accepted\n  ID: %d\n  Bidder: %s\n  Price: %s", res.ID, opts.Bidder, price)
	return f.SuccessText(data, text)
}
