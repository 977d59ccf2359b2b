// Package auction implements a single-item ascending-price auction with
// deferred settlement.
//
// The Machine is the single-writer state machine for one auction instance:
// Initialize establishes the parameters and deadline, PlaceBid accepts
// strictly increasing price commitments until the deadline, and
// NotifyPayment settles the auction after the deadline by flipping the
// best bid to sold and returning a transfer instruction for an external
// executor.
//
// Time is a block height passed explicitly to every call; the machine
// never reads a clock. State lives behind the store.KV contract, and all
// writes for one call commit in a single atomic batch, so every call is
// fully applied or fully rejected.
package auction
