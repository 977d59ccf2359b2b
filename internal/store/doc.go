// Package store provides the key-value storage contract consumed by the
// auction state machine, plus two implementations: an in-memory map for
// tests and a SQLite-backed store for durable deployments.
//
// The contract is deliberately small: point reads that distinguish
// "missing" from failure, and batch writes that commit atomically. The
// auction machine validates first and writes last, so atomic batches are
// what makes each mutating call all-or-nothing.
package store
