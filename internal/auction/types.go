package auction

import "github.com/shopspring/decimal"

// Principal is an opaque, pre-verified caller identity supplied by the
// host. The machine compares principals for equality and never inspects
// their contents.
type Principal string

// Config holds the immutable auction parameters. Created once by
// Initialize and never recomputed; in particular Deadline is fixed at
// creation height + duration.
type Config struct {
	// Seller owns the settlement proceeds.
	Seller Principal

	// PaymentToken names the fungible-token collaborator that executes
	// the settlement transfer. Carried opaquely; only used to label the
	// returned TransferInstruction.
	PaymentToken string

	// ReservePrice is the inclusive lower bound for the first bid.
	ReservePrice decimal.Decimal

	// MinIncrement is the minimum amount by which each accepted bid must
	// exceed the reference price.
	MinIncrement decimal.Decimal

	// Deadline is the height at which bidding closes and settlement
	// becomes possible. Bids at or after Deadline are rejected.
	Deadline uint64
}

// BidRecord is one accepted bid. Records are append-only: written once
// under their sequence id and never modified or deleted.
type BidRecord struct {
	Bidder Principal
	Price  decimal.Decimal
}

// BestBid tracks the current auction leadership. Record duplicates the
// winning BidRecord for read convenience rather than referencing it.
//
// Record.Price is strictly increasing across updates, and once Sold is
// true no further mutation happens.
type BestBid struct {
	ID     uint64
	Record BidRecord
	Sold   bool
}

// TransferSource says where the settled funds move from.
type TransferSource string

const (
	// SourceAllowance directs the token to pull the payment from the
	// payer under a pre-approved allowance (transfer-from).
	SourceAllowance TransferSource = "allowance"

	// SourceEscrow directs funds the auction already holds for the payer.
	SourceEscrow TransferSource = "escrow"
)

// TransferInstruction is the single deferred outbound effect of a
// successful settlement. The machine returns it; an external executor
// performs the actual token transfer.
type TransferInstruction struct {
	Token     string
	Source    TransferSource
	Payer     Principal
	Recipient Principal
	Amount    decimal.Decimal
}

// Phase is the derived lifecycle position of an auction instance.
// It is never stored: it is computed from the deadline, the supplied
// height, and the sold flag at query time.
type Phase string

const (
	PhaseOpen            Phase = "open"
	PhaseClosedUnsettled Phase = "closed-unsettled"
	PhaseClosedSettled   Phase = "closed-settled"
)

// Attr is one key-value pair on an emitted event.
type Attr struct {
	Key   string
	Value string
}

// Event is the structured record emitted on successful Initialize,
// PlaceBid, and NotifyPayment calls. Events exist for off-process
// observability; dropping them never changes state semantics.
type Event struct {
	ID     string
	Action string
	Attrs  []Attr
}

// InitParams are the inputs to Initialize.
type InitParams struct {
	Seller       Principal
	PaymentToken string
	ReservePrice decimal.Decimal
	MinIncrement decimal.Decimal

	// Duration is the number of heights the auction stays open from the
	// initialization height.
	Duration uint64

	// Height is the externally supplied current height.
	Height uint64
}

// InitResult reports a successful initialization.
type InitResult struct {
	Deadline uint64
	Event    Event
}

// BidResult reports an accepted bid.
type BidResult struct {
	// ID is the sequence id assigned to the accepted bid.
	ID    uint64
	Event Event
}

// SettleResult reports a successful settlement.
type SettleResult struct {
	// BidID is the sequence id of the winning bid.
	BidID uint64

	// Transfer is the one outbound instruction for the external executor.
	Transfer TransferInstruction

	Event Event
}
