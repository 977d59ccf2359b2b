package auction

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"
)

// Store keys for one auction instance. Config, sequence, and best bid
// are singletons; bid records are keyed by zero-padded sequence id so a
// raw key scan lists them in order.
const (
	keyConfig  = "config"
	keyBidSeq  = "bid_seq"
	keyBestBid = "best_bid"
)

func bidKey(id uint64) string {
	return fmt.Sprintf("bid/%020d", id)
}

// Persisted record shapes. Decimals are carried as strings so the
// encoding round-trips exactly regardless of scale.

type configRecord struct {
	Seller       string `cbor:"seller"`
	PaymentToken string `cbor:"payment_token"`
	ReservePrice string `cbor:"reserve_price"`
	MinIncrement string `cbor:"min_increment"`
	Deadline     uint64 `cbor:"deadline"`
}

type bidRecordRecord struct {
	Bidder string `cbor:"bidder"`
	Price  string `cbor:"price"`
}

type bestBidRecord struct {
	ID     uint64          `cbor:"id"`
	Record bidRecordRecord `cbor:"record"`
	Sold   bool            `cbor:"sold"`
}

func encodeConfig(cfg Config) ([]byte, error) {
	data, err := cbor.Marshal(configRecord{
		Seller:       string(cfg.Seller),
		PaymentToken: cfg.PaymentToken,
		ReservePrice: cfg.ReservePrice.String(),
		MinIncrement: cfg.MinIncrement.String(),
		Deadline:     cfg.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func decodeConfig(data []byte) (Config, error) {
	var rec configRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	reserve, err := decimal.NewFromString(rec.ReservePrice)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: reserve price: %w", err)
	}
	increment, err := decimal.NewFromString(rec.MinIncrement)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: min increment: %w", err)
	}
	return Config{
		Seller:       Principal(rec.Seller),
		PaymentToken: rec.PaymentToken,
		ReservePrice: reserve,
		MinIncrement: increment,
		Deadline:     rec.Deadline,
	}, nil
}

func encodeBidRecord(rec BidRecord) ([]byte, error) {
	data, err := cbor.Marshal(bidRecordRecord{
		Bidder: string(rec.Bidder),
		Price:  rec.Price.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode bid record: %w", err)
	}
	return data, nil
}

func decodeBidRecord(data []byte) (BidRecord, error) {
	var rec bidRecordRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return BidRecord{}, fmt.Errorf("decode bid record: %w", err)
	}
	return bidRecordFrom(rec)
}

func bidRecordFrom(rec bidRecordRecord) (BidRecord, error) {
	price, err := decimal.NewFromString(rec.Price)
	if err != nil {
		return BidRecord{}, fmt.Errorf("decode bid record: price: %w", err)
	}
	return BidRecord{Bidder: Principal(rec.Bidder), Price: price}, nil
}

func encodeBestBid(best BestBid) ([]byte, error) {
	data, err := cbor.Marshal(bestBidRecord{
		ID: best.ID,
		Record: bidRecordRecord{
			Bidder: string(best.Record.Bidder),
			Price:  best.Record.Price.String(),
		},
		Sold: best.Sold,
	})
	if err != nil {
		return nil, fmt.Errorf("encode best bid: %w", err)
	}
	return data, nil
}

func decodeBestBid(data []byte) (BestBid, error) {
	var rec bestBidRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return BestBid{}, fmt.Errorf("decode best bid: %w", err)
	}
	inner, err := bidRecordFrom(rec.Record)
	if err != nil {
		return BestBid{}, fmt.Errorf("decode best bid: %w", err)
	}
	return BestBid{ID: rec.ID, Record: inner, Sold: rec.Sold}, nil
}

func encodeSeq(seq uint64) ([]byte, error) {
	data, err := cbor.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("encode bid sequence: %w", err)
	}
	return data, nil
}

func decodeSeq(data []byte) (uint64, error) {
	var seq uint64
	if err := cbor.Unmarshal(data, &seq); err != nil {
		return 0, fmt.Errorf("decode bid sequence: %w", err)
	}
	return seq, nil
}
