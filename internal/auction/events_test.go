package auction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.Generate()
	b := gen.Generate()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestFixedGenerator_InOrder(t *testing.T) {
	gen := NewFixedGenerator("ev-1", "ev-2")

	assert.Equal(t, "ev-1", gen.Generate())
	assert.Equal(t, "ev-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestNewEvent_Attrs(t *testing.T) {
	ev := newEvent("ev-1", "place_bid", "id", "1", "bidder", "buyer")

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "place_bid", ev.Action)
	require.Len(t, ev.Attrs, 2)
	assert.Equal(t, Attr{Key: "id", Value: "1"}, ev.Attrs[0])
	assert.Equal(t, Attr{Key: "bidder", Value: "buyer"}, ev.Attrs[1])
}
