package auction

import "github.com/shopspring/decimal"

// SettlementStrategy decides how settled funds reach the seller.
// Two variants exist in deployments: pulling the payment from the payer
// under a token allowance, or releasing funds the auction already holds
// in escrow. The machine is agnostic; it asks the strategy for the one
// TransferInstruction to return on successful settlement.
type SettlementStrategy interface {
	PlanTransfer(cfg Config, payer Principal, amount decimal.Decimal) TransferInstruction
}

// DirectTransfer pulls the payment from the payer with a transfer-from
// call under a pre-approved allowance. This is the default strategy.
type DirectTransfer struct{}

func (DirectTransfer) PlanTransfer(cfg Config, payer Principal, amount decimal.Decimal) TransferInstruction {
	return TransferInstruction{
		Token:     cfg.PaymentToken,
		Source:    SourceAllowance,
		Payer:     payer,
		Recipient: cfg.Seller,
		Amount:    amount,
	}
}

// EscrowRelease directs funds the auction already holds for the payer
// to the seller. Used by deployments where the payer pays in up front.
type EscrowRelease struct{}

func (EscrowRelease) PlanTransfer(cfg Config, payer Principal, amount decimal.Decimal) TransferInstruction {
	return TransferInstruction{
		Token:     cfg.PaymentToken,
		Source:    SourceEscrow,
		Payer:     payer,
		Recipient: cfg.Seller,
		Amount:    amount,
	}
}
