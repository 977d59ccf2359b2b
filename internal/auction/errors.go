package auction

import (
	"errors"
	"fmt"
)

// Code categorizes call rejections. Every failed call leaves state
// unchanged; the caller may correct inputs and resubmit.
type Code string

const (
	// CodeArithmeticOverflow indicates deadline or sequence computation
	// would overflow; the whole call fails.
	CodeArithmeticOverflow Code = "ARITHMETIC_OVERFLOW"

	// CodeAlreadyInitialized indicates a second Initialize call.
	CodeAlreadyInitialized Code = "ALREADY_INITIALIZED"

	// CodeAuctionClosed indicates a bid at or after the deadline.
	CodeAuctionClosed Code = "AUCTION_CLOSED"

	// CodeBidBelowReserve indicates a bid price under the reserve price.
	CodeBidBelowReserve Code = "BID_BELOW_RESERVE"

	// CodeBidNotHighEnough indicates a bid that does not strictly exceed
	// the current best price.
	CodeBidNotHighEnough Code = "BID_NOT_HIGH_ENOUGH"

	// CodeIncrementTooLow indicates a bid that clears the reference price
	// but not by the minimum increment.
	CodeIncrementTooLow Code = "INCREMENT_TOO_LOW"

	// CodeAuctionNotYetClosed indicates settlement before the deadline.
	CodeAuctionNotYetClosed Code = "AUCTION_NOT_YET_CLOSED"

	// CodeNothingToSettle indicates settlement with no bids ever placed.
	CodeNothingToSettle Code = "NOTHING_TO_SETTLE"

	// CodeAlreadySold indicates a second settlement attempt.
	CodeAlreadySold Code = "ALREADY_SOLD"

	// CodeUnauthorized indicates settlement by a principal other than the
	// recorded winning bidder.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeInsufficientPayment indicates a settlement amount below the
	// winning bid price.
	CodeInsufficientPayment Code = "INSUFFICIENT_PAYMENT"

	// CodeNotFound indicates a query for a record that does not exist.
	CodeNotFound Code = "NOT_FOUND"
)

// Error is the structured rejection returned by every failing call.
// Details carries the offending values as strings for diagnostics.
type Error struct {
	Code    Code
	Message string
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newError builds an Error with optional key-value detail pairs.
// kv must have even length; values are stringified by the caller.
func newError(code Code, message string, kv ...string) *Error {
	e := &Error{Code: code, Message: message}
	if len(kv) > 0 {
		e.Details = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Details[kv[i]] = kv[i+1]
		}
	}
	return e
}

// CodeOf extracts the rejection code from err, unwrapping as needed.
// Returns the empty code when err is not an auction Error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsCode reports whether err is an auction Error with the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
