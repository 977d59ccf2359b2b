package auction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func settlementConfig() Config {
	return Config{
		Seller:       "creator",
		PaymentToken: "cw20-token",
		ReservePrice: dec("100"),
		MinIncrement: dec("10"),
		Deadline:     200_200,
	}
}

func TestDirectTransfer_PlanTransfer(t *testing.T) {
	ti := DirectTransfer{}.PlanTransfer(settlementConfig(), "buyer", dec("110"))

	assert.Equal(t, "cw20-token", ti.Token)
	assert.Equal(t, SourceAllowance, ti.Source)
	assert.Equal(t, Principal("buyer"), ti.Payer)
	assert.Equal(t, Principal("creator"), ti.Recipient)
	assert.True(t, ti.Amount.Equal(dec("110")))
}

func TestEscrowRelease_PlanTransfer(t *testing.T) {
	ti := EscrowRelease{}.PlanTransfer(settlementConfig(), "buyer", dec("110"))

	assert.Equal(t, SourceEscrow, ti.Source)
	assert.Equal(t, Principal("buyer"), ti.Payer)
	assert.Equal(t, Principal("creator"), ti.Recipient)
	assert.True(t, ti.Amount.Equal(dec("110")))
}

// The strategy only changes the instruction's source; the settlement
// pipeline itself is identical under either variant.
func TestMachine_EscrowStrategy(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(WithStrategy(EscrowRelease{}))

	_, err := m.Initialize(ctx, standardParams())
	assert.NoError(t, err)
	_, err = m.PlaceBid(ctx, "buyer", dec("110"), 200_000)
	assert.NoError(t, err)

	res, err := m.NotifyPayment(ctx, "buyer", dec("110"), 200_200)
	assert.NoError(t, err)
	assert.Equal(t, SourceEscrow, res.Transfer.Source)
	assert.Equal(t, Principal("creator"), res.Transfer.Recipient)
}
