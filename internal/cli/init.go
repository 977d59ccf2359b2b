package cli

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/celiakwan/bidhouse/internal/auction"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	ConfigPath string
	Height     uint64
}

// paramsFile is the YAML document accepted by --config.
type paramsFile struct {
	Seller           string `yaml:"seller"`
	PaymentToken     string `yaml:"payment_token"`
	ReservePrice     string `yaml:"reserve_price"`
	MinimumIncrement string `yaml:"minimum_increment"`
	DurationBlocks   uint64 `yaml:"duration_blocks"`
}

// initResponse is the JSON payload on success.
type initResponse struct {
	Seller           string `json:"seller"`
	PaymentToken     string `json:"payment_token"`
	ReservePrice     string `json:"reserve_price"`
	MinimumIncrement string `json:"minimum_increment"`
	Deadline         uint64 `json:"deadline"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new auction instance",
		Long: `Initialize a new auction instance from a YAML parameter file.

The deadline is computed once as the given height plus the configured
duration and is never recomputed.

Example parameter file:
  seller: alice
  payment_token: cw20-token
  reserve_price: "100"
  minimum_increment: "10"
  duration_blocks: 200`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to the auction parameter file (required)")
	cmd.Flags().Uint64Var(&opts.Height, "height", 0, "current block height (required)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	params, err := loadParams(opts.ConfigPath)
	if err != nil {
		return err
	}
	params.Height = opts.Height

	m, closeStore, err := openMachine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := m.Initialize(cmd.Context(), *params)
	if err != nil {
		return renderError(f, err)
	}

	data := initResponse{
		Seller:           string(params.Seller),
		PaymentToken:     params.PaymentToken,
		ReservePrice:     params.ReservePrice.String(),
		MinimumIncrement: params.MinIncrement.String(),
		Deadline:         res.Deadline,
	}
	text := fmt.Sprintf(
		"Auction initialized\n  Seller: %s\n  Payment token: %s\n  Reserve price: %s\n  Minimum increment: %s\n  Deadline: %d",
		params.Seller, params.PaymentToken, params.ReservePrice, params.MinIncrement, res.Deadline)
	return f.SuccessText(data, text)
}

// loadParams reads and validates the YAML parameter file.
func loadParams(path string) (*auction.InitParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read parameter file", err)
	}

	var pf paramsFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, WrapExitError(ExitCommandError, "parse parameter file", err)
	}

	if pf.Seller == "" {
		return nil, NewExitError(ExitCommandError, "parameter file: seller is required")
	}
	if pf.DurationBlocks == 0 {
		return nil, NewExitError(ExitCommandError, "parameter file: duration_blocks must be positive")
	}

	reserve, err := decimal.NewFromString(pf.ReservePrice)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "parameter file: invalid reserve_price", err)
	}
	increment, err := decimal.NewFromString(pf.MinimumIncrement)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "parameter file: invalid minimum_increment", err)
	}
	if reserve.IsNegative() || increment.IsNegative() {
		return nil, NewExitError(ExitCommandError, "parameter file: prices must not be negative")
	}

	return &auction.InitParams{
		Seller:       auction.Principal(pf.Seller),
		PaymentToken: pf.PaymentToken,
		ReservePrice: reserve,
		MinIncrement: increment,
		Duration:     pf.DurationBlocks,
	}, nil
}
