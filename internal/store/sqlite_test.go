package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "auction.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_OpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auction.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSQLite_GetMissing(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	_, err := s.Get(ctx, "absent")
	assert.True(t, IsNotFound(err))
}

func TestSQLite_ApplyAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	b := NewBatch().
		Put("config", []byte{0x01, 0x02}).
		Put("bid_seq", []byte{0x00})
	require.NoError(t, s.Apply(ctx, b))

	v, err := s.Get(ctx, "config")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, v)
}

func TestSQLite_Upsert(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	require.NoError(t, s.Apply(ctx, NewBatch().Put("k", []byte("first"))))
	require.NoError(t, s.Apply(ctx, NewBatch().Put("k", []byte("second"))))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), v)
}

func TestSQLite_Delete(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	require.NoError(t, s.Apply(ctx, NewBatch().Put("k", []byte("v"))))
	require.NoError(t, s.Apply(ctx, NewBatch().Delete("k")))

	_, err := s.Get(ctx, "k")
	assert.True(t, IsNotFound(err))
}

func TestSQLite_EmptyBatch(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	require.NoError(t, s.Apply(ctx, NewBatch()))
}

// Values written in one batch survive a close/reopen cycle.
func TestSQLite_Durable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auction.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Apply(ctx, NewBatch().
		Put("config", []byte("cfg")).
		Put("bid/00000000000000000001", []byte("rec"))))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "config")
	require.NoError(t, err)
	assert.Equal(t, []byte("cfg"), v)

	v, err = s.Get(ctx, "bid/00000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, []byte("rec"), v)
}
