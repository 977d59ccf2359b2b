package auction

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/celiakwan/bidhouse/internal/store"
)

// Machine is the single-writer auction state machine for one instance.
//
// The host serializes all mutating calls into a total order; the machine
// holds no locks and runs no background work. Each call samples time
// once from its height parameter, validates fully, and commits all of
// its writes in one atomic store batch — so a failed call leaves no
// partial state behind.
type Machine struct {
	kv       store.KV
	strategy SettlementStrategy
	eventIDs EventIDGenerator
	log      *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithStrategy selects the settlement strategy. Default: DirectTransfer.
func WithStrategy(s SettlementStrategy) Option {
	return func(m *Machine) { m.strategy = s }
}

// WithEventIDs sets the event id generator. Default: UUIDv7Generator.
// Tests use NewFixedGenerator for deterministic events.
func WithEventIDs(g EventIDGenerator) Option {
	return func(m *Machine) { m.eventIDs = g }
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// New creates a Machine over the given store.
func New(kv store.KV, opts ...Option) *Machine {
	m := &Machine{
		kv:       kv,
		strategy: DirectTransfer{},
		eventIDs: UUIDv7Generator{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize establishes the auction parameters and starts the clock.
// Must be called exactly once per instance, before any other operation.
//
// The deadline is computed once as p.Height + p.Duration and never
// recomputed; if that addition would overflow, the call fails with
// CodeArithmeticOverflow and nothing is persisted.
func (m *Machine) Initialize(ctx context.Context, p InitParams) (*InitResult, error) {
	if _, err := m.kv.Get(ctx, keyConfig); err == nil {
		return nil, newError(CodeAlreadyInitialized, "auction already initialized")
	} else if !store.IsNotFound(err) {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	if p.Duration > math.MaxUint64-p.Height {
		return nil, newError(CodeArithmeticOverflow,
			fmt.Sprintf("deadline %d + %d overflows", p.Height, p.Duration),
			"height", strconv.FormatUint(p.Height, 10),
			"duration", strconv.FormatUint(p.Duration, 10))
	}
	deadline := p.Height + p.Duration

	cfg := Config{
		Seller:       p.Seller,
		PaymentToken: p.PaymentToken,
		ReservePrice: p.ReservePrice,
		MinIncrement: p.MinIncrement,
		Deadline:     deadline,
	}

	cfgData, err := encodeConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	seqData, err := encodeSeq(0)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	batch := store.NewBatch().
		Put(keyConfig, cfgData).
		Put(keyBidSeq, seqData)
	if err := m.kv.Apply(ctx, batch); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	ev := newEvent(m.eventIDs.Generate(), "initialize",
		"seller", string(p.Seller),
		"payment_token", p.PaymentToken,
		"reserve_price", p.ReservePrice.String(),
		"min_increment", p.MinIncrement.String(),
		"deadline", strconv.FormatUint(deadline, 10),
	)
	m.log.Info("auction initialized",
		"event_id", ev.ID,
		"seller", string(p.Seller),
		"reserve_price", p.ReservePrice.String(),
		"min_increment", p.MinIncrement.String(),
		"deadline", deadline,
	)

	return &InitResult{Deadline: deadline, Event: ev}, nil
}

// PlaceBid validates and records a bid at the given height.
//
// The validation order is fixed and first-failure-wins: closed auction,
// then reserve price, then best-price comparison, then minimum
// increment. The first accepted bid is measured against the reserve
// price itself, so it must clear both the reserve and the minimum
// increment above the reserve; every later bid must strictly exceed the
// current best price.
func (m *Machine) PlaceBid(ctx context.Context, bidder Principal, price decimal.Decimal, height uint64) (*BidResult, error) {
	cfg, err := m.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	if height >= cfg.Deadline {
		return nil, newError(CodeAuctionClosed,
			fmt.Sprintf("auction closed at height %d, deadline %d", height, cfg.Deadline),
			"height", strconv.FormatUint(height, 10),
			"deadline", strconv.FormatUint(cfg.Deadline, 10))
	}

	if price.LessThan(cfg.ReservePrice) {
		return nil, newError(CodeBidBelowReserve,
			fmt.Sprintf("bid price %s lower than reserve price %s", price, cfg.ReservePrice),
			"price", price.String(),
			"reserve_price", cfg.ReservePrice.String())
	}

	seq, err := m.loadSeq(ctx)
	if err != nil {
		return nil, err
	}

	// First bid is measured from the reserve; later bids from the best.
	referencePrice := cfg.ReservePrice
	if seq != 0 {
		best, err := m.loadBestBid(ctx)
		if err != nil {
			return nil, err
		}
		if !price.GreaterThan(best.Record.Price) {
			return nil, newError(CodeBidNotHighEnough,
				fmt.Sprintf("bid price %s not greater than best price %s", price, best.Record.Price),
				"price", price.String(),
				"best_price", best.Record.Price.String())
		}
		referencePrice = best.Record.Price
	}

	// Non-negative by construction: price >= reserve on the first bid,
	// price > best on every later one.
	increment := price.Sub(referencePrice)
	if increment.LessThan(cfg.MinIncrement) {
		return nil, newError(CodeIncrementTooLow,
			fmt.Sprintf("bid increment %s below minimum increment %s", increment, cfg.MinIncrement),
			"increment", increment.String(),
			"min_increment", cfg.MinIncrement.String())
	}

	if seq == math.MaxUint64 {
		return nil, newError(CodeArithmeticOverflow, "bid sequence overflow")
	}
	id := seq + 1

	record := BidRecord{Bidder: bidder, Price: price}
	best := BestBid{ID: id, Record: record, Sold: false}

	seqData, err := encodeSeq(id)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	recordData, err := encodeBidRecord(record)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	bestData, err := encodeBestBid(best)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	batch := store.NewBatch().
		Put(keyBidSeq, seqData).
		Put(bidKey(id), recordData).
		Put(keyBestBid, bestData)
	if err := m.kv.Apply(ctx, batch); err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	ev := newEvent(m.eventIDs.Generate(), "place_bid",
		"id", strconv.FormatUint(id, 10),
		"bidder", string(bidder),
		"price", price.String(),
	)
	m.log.Info("bid accepted",
		"event_id", ev.ID,
		"id", id,
		"bidder", string(bidder),
		"price", price.String(),
	)

	return &BidResult{ID: id, Event: ev}, nil
}

// NotifyPayment settles the auction from an inbound payment notification.
//
// Settlement is reachable only after the deadline, is strictly one-shot,
// and only the recorded winning bidder may pay. Overpayment is accepted;
// the machine issues no change. On success the best bid flips to sold
// and exactly one TransferInstruction is returned for the external
// executor.
func (m *Machine) NotifyPayment(ctx context.Context, payer Principal, amount decimal.Decimal, height uint64) (*SettleResult, error) {
	cfg, err := m.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	if height < cfg.Deadline {
		return nil, newError(CodeAuctionNotYetClosed,
			fmt.Sprintf("auction not yet closed at height %d, deadline %d", height, cfg.Deadline),
			"height", strconv.FormatUint(height, 10),
			"deadline", strconv.FormatUint(cfg.Deadline, 10))
	}

	data, err := m.kv.Get(ctx, keyBestBid)
	if store.IsNotFound(err) {
		return nil, newError(CodeNothingToSettle, "no bid was ever placed")
	}
	if err != nil {
		return nil, fmt.Errorf("notify payment: %w", err)
	}
	best, err := decodeBestBid(data)
	if err != nil {
		return nil, fmt.Errorf("notify payment: %w", err)
	}

	if best.Sold {
		return nil, newError(CodeAlreadySold, "item already sold",
			"id", strconv.FormatUint(best.ID, 10))
	}

	if payer != best.Record.Bidder {
		return nil, newError(CodeUnauthorized,
			fmt.Sprintf("payer %s is not the winning bidder", payer),
			"payer", string(payer))
	}

	if amount.LessThan(best.Record.Price) {
		return nil, newError(CodeInsufficientPayment,
			fmt.Sprintf("amount %s lower than bid price %s", amount, best.Record.Price),
			"amount", amount.String(),
			"bid_price", best.Record.Price.String())
	}

	best.Sold = true
	bestData, err := encodeBestBid(best)
	if err != nil {
		return nil, fmt.Errorf("notify payment: %w", err)
	}
	if err := m.kv.Apply(ctx, store.NewBatch().Put(keyBestBid, bestData)); err != nil {
		return nil, fmt.Errorf("notify payment: %w", err)
	}

	transfer := m.strategy.PlanTransfer(cfg, payer, amount)

	ev := newEvent(m.eventIDs.Generate(), "notify_payment",
		"id", strconv.FormatUint(best.ID, 10),
		"payer", string(payer),
		"amount", amount.String(),
	)
	m.log.Info("auction settled",
		"event_id", ev.ID,
		"id", best.ID,
		"payer", string(payer),
		"amount", amount.String(),
		"recipient", string(transfer.Recipient),
	)

	return &SettleResult{BidID: best.ID, Transfer: transfer, Event: ev}, nil
}

// GetConfig returns the auction configuration.
func (m *Machine) GetConfig(ctx context.Context) (Config, error) {
	return m.loadConfig(ctx)
}

// GetBidSequence returns the current bid sequence counter.
func (m *Machine) GetBidSequence(ctx context.Context) (uint64, error) {
	return m.loadSeq(ctx)
}

// GetBidRecord returns the bid record stored under id.
func (m *Machine) GetBidRecord(ctx context.Context, id uint64) (BidRecord, error) {
	data, err := m.kv.Get(ctx, bidKey(id))
	if store.IsNotFound(err) {
		return BidRecord{}, newError(CodeNotFound,
			fmt.Sprintf("bid record %d not found", id),
			"id", strconv.FormatUint(id, 10))
	}
	if err != nil {
		return BidRecord{}, fmt.Errorf("get bid record: %w", err)
	}
	return decodeBidRecord(data)
}

// GetBestBid returns the current best bid. Fails with CodeNotFound
// before any bid has been placed.
func (m *Machine) GetBestBid(ctx context.Context) (BestBid, error) {
	return m.loadBestBid(ctx)
}

// Phase derives the lifecycle position at the given height. The
// open/closed boundary is never stored; it is a time comparison.
func (m *Machine) Phase(ctx context.Context, height uint64) (Phase, error) {
	cfg, err := m.loadConfig(ctx)
	if err != nil {
		return "", err
	}
	if height < cfg.Deadline {
		return PhaseOpen, nil
	}
	best, err := m.loadBestBid(ctx)
	if err != nil {
		if IsCode(err, CodeNotFound) {
			return PhaseClosedUnsettled, nil
		}
		return "", err
	}
	if best.Sold {
		return PhaseClosedSettled, nil
	}
	return PhaseClosedUnsettled, nil
}

func (m *Machine) loadConfig(ctx context.Context) (Config, error) {
	data, err := m.kv.Get(ctx, keyConfig)
	if store.IsNotFound(err) {
		return Config{}, newError(CodeNotFound, "auction not initialized")
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return decodeConfig(data)
}

func (m *Machine) loadSeq(ctx context.Context) (uint64, error) {
	data, err := m.kv.Get(ctx, keyBidSeq)
	if store.IsNotFound(err) {
		return 0, newError(CodeNotFound, "auction not initialized")
	}
	if err != nil {
		return 0, fmt.Errorf("load bid sequence: %w", err)
	}
	return decodeSeq(data)
}

func (m *Machine) loadBestBid(ctx context.Context) (BestBid, error) {
	data, err := m.kv.Get(ctx, keyBestBid)
	if store.IsNotFound(err) {
		return BestBid{}, newError(CodeNotFound, "no best bid: no bid has been placed")
	}
	if err != nil {
		return BestBid{}, fmt.Errorf("load best bid: %w", err)
	}
	return decodeBestBid(data)
}
