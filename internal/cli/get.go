package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configResponse is the JSON payload for `get config`.
type configResponse struct {
	Seller           string `json:"seller"`
	PaymentToken     string `json:"payment_token"`
	ReservePrice     string `json:"reserve_price"`
	MinimumIncrement string `json:"minimum_increment"`
	Deadline         uint64 `json:"deadline"`
}

// bidRecordResponse is the JSON payload for `get bid <id>`.
type bidRecordResponse struct {
	Bidder string `json:"bidder"`
	Price  string `json:"price"`
}

// bestBidResponse is the JSON payload for `get best`.
type bestBidResponse struct {
	ID     uint64 `json:"id"`
	Bidder string `json:"bidder"`
	Price  string `json:"price"`
	Sold   bool   `json:"sold"`
}

// NewGetCommand creates the get command with its read-only subcommands.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read auction state",
		Long:  "Read-only queries against the auction state. No query mutates state.",
	}

	cmd.AddCommand(newGetConfigCommand(rootOpts))
	cmd.AddCommand(newGetSeqCommand(rootOpts))
	cmd.AddCommand(newGetBidCommand(rootOpts))
	cmd.AddCommand(newGetBestCommand(rootOpts))

	return cmd
}

func newGetConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "config",
		Short:         "Show the auction configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			m, closeStore, err := openMachine(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			cfg, err := m.GetConfig(cmd.Context())
			if err != nil {
				return renderError(f, err)
			}

			data := configResponse{
				Seller:           string(cfg.Seller),
				PaymentToken:     cfg.PaymentToken,
				ReservePrice:     cfg.ReservePrice.String(),
				MinimumIncrement: cfg.MinIncrement.String(),
				Deadline:         cfg.Deadline,
			}
			text := fmt.Sprintf(
				"Seller: %s\nPayment token: %s\nReserve price: %s\nMinimum increment: %s\nDeadline: %d",
				cfg.Seller, cfg.PaymentToken, cfg.ReservePrice, cfg.MinIncrement, cfg.Deadline)
			return f.SuccessText(data, text)
		},
	}
}

func newGetSeqCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "seq",
		Short:         "Show the current bid sequence counter",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			m, closeStore, err := openMachine(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			seq, err := m.GetBidSequence(cmd.Context())
			if err != nil {
				return renderError(f, err)
			}
			return f.SuccessText(map[string]uint64{"seq": seq}, fmt.Sprintf("%d", seq))
		},
	}
}

func newGetBidCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "bid <id>",
		Short:         "Show a bid record by sequence id",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)

			id, err := parseUint("bid id", args[0])
			if err != nil {
				return err
			}

			m, closeStore, err := openMachine(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			rec, err := m.GetBidRecord(cmd.Context(), id)
			if err != nil {
				return renderError(f, err)
			}

			data := bidRecordResponse{Bidder: string(rec.Bidder), Price: rec.Price.String()}
			text := fmt.Sprintf("Bidder: %s\nPrice: %s", rec.Bidder, rec.Price)
			return f.SuccessText(data, text)
		},
	}
}

func newGetBestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "best",
		Short:         "Show the current best bid",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			m, closeStore, err := openMachine(rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			best, err := m.GetBestBid(cmd.Context())
			if err != nil {
				return renderError(f, err)
			}

			data := bestBidResponse{
				ID:     best.ID,
				Bidder: string(best.Record.Bidder),
				Price:  best.Record.Price.String(),
				Sold:   best.Sold,
			}
			text := fmt.Sprintf("ID: %d\nBidder: %s\nPrice: %s\nSold: %t",
				best.ID, best.Record.Bidder, best.Record.Price, best.Sold)
			return f.SuccessText(data, text)
		},
	}
}
