package store

import "context"

// KV is the storage capability handed to the auction machine.
//
// Implementations must guarantee:
//   - Get returns ErrNotFound (possibly wrapped) for missing keys.
//   - Apply commits every operation in the batch or none of them.
//   - Writes are durable before Apply returns nil.
//
// Single-writer access is assumed; the machine serializes all mutating
// calls, so implementations do not need multi-writer conflict handling.
type KV interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Apply atomically commits all operations in the batch.
	Apply(ctx context.Context, b *Batch) error

	// Close releases any resources held by the store.
	Close() error
}

// opKind distinguishes batch operation types.
type opKind int

const (
	opPut opKind = iota
	opDelete
)

type op struct {
	kind  opKind
	key   string
	value []byte
}

// Batch accumulates writes for a single atomic commit.
// Operations are applied in the order they were added.
type Batch struct {
	ops []op
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Put stages a write of value under key.
func (b *Batch) Put(key string, value []byte) *Batch {
	b.ops = append(b.ops, op{kind: opPut, key: key, value: value})
	return b
}

// Delete stages removal of key. Deleting a missing key is not an error.
func (b *Batch) Delete(key string) *Batch {
	b.ops = append(b.ops, op{kind: opDelete, key: key})
	return b
}

// Len returns the number of staged operations.
func (b *Batch) Len() int {
	return len(b.ops)
}
