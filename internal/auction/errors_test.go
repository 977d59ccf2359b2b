package auction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := newError(CodeBidBelowReserve, "bid price 80 lower than reserve price 100",
		"price", "80", "reserve_price", "100")

	assert.Equal(t, "BID_BELOW_RESERVE: bid price 80 lower than reserve price 100", err.Error())
	assert.Equal(t, "80", err.Details["price"])
	assert.Equal(t, "100", err.Details["reserve_price"])
}

func TestCodeOf_Wrapped(t *testing.T) {
	err := newError(CodeAlreadySold, "item already sold")
	wrapped := fmt.Errorf("settle call: %w", err)

	assert.Equal(t, CodeAlreadySold, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeAlreadySold))
	assert.False(t, IsCode(wrapped, CodeUnauthorized))
}

func TestCodeOf_ForeignError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("plain error")))
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.False(t, IsCode(errors.New("plain error"), CodeNotFound))
}

func TestNewError_NoDetails(t *testing.T) {
	err := newError(CodeNothingToSettle, "no bid was ever placed")
	assert.Nil(t, err.Details)
}
