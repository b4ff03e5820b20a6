package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryBatch(t *testing.T) {
	itemID := uuid.New()

	t.Run("Creates open batch", func(t *testing.T) {
		b, err := NewInventoryBatch(itemID, dec("12.5"), dec("3.20"), time.Time{})
		require.NoError(t, err)
		assert.True(t, b.QuantityRemaining.Equal(b.QuantityInitial))
		assert.Equal(t, BatchStatusOpen, b.Status())
		assert.False(t, b.ReceivedAt.IsZero())
	})

	t.Run("Rejects bad input", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.Nil, dec("1"), dec("1"), time.Now())
		assert.Error(t, err)
		_, err = NewInventoryBatch(itemID, decimal.Zero, dec("1"), time.Now())
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		_, err = NewInventoryBatch(itemID, dec("1"), dec("-1"), time.Now())
		assert.ErrorIs(t, err, ErrInvalidCost)
	})

	t.Run("Rejects values finer than the stored scale", func(t *testing.T) {
		_, err := NewInventoryBatch(itemID, dec("10.00005"), dec("1"), time.Now())
		assert.ErrorIs(t, err, ErrQuantityPrecision)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = NewInventoryBatch(itemID, dec("10"), dec("0.12345"), time.Now())
		assert.ErrorIs(t, err, ErrInvalidCost)

		b, err := NewInventoryBatch(itemID, dec("10.50000"), dec("0.1234"), time.Now())
		require.NoError(t, err)
		assert.True(t, b.QuantityInitial.Equal(dec("10.5")))
	})
}

func TestInventoryBatch_TakeAndCredit(t *testing.T) {
	b, err := NewInventoryBatch(uuid.New(), dec("10"), dec("2"), time.Now())
	require.NoError(t, err)

	require.NoError(t, b.Take(dec("10")))
	assert.Equal(t, BatchStatusExhausted, b.Status())
	assert.True(t, b.RemainingValue().IsZero())

	err = b.Take(dec("0.01"))
	assert.True(t, errors.Is(err, ErrBatchUnderflow))
	assert.True(t, b.QuantityRemaining.IsZero())

	require.NoError(t, b.Credit(dec("4")))
	assert.Equal(t, BatchStatusOpen, b.Status())
	assert.True(t, b.RemainingValue().Equal(dec("8")))

	err = b.Credit(dec("7"))
	assert.True(t, errors.Is(err, ErrBatchOverflow))
	assert.True(t, b.QuantityRemaining.Equal(dec("4")))

	assert.ErrorIs(t, b.Take(decimal.Zero), ErrInvalidQuantity)
	assert.ErrorIs(t, b.Credit(dec("-1")), ErrInvalidQuantity)

	assert.ErrorIs(t, b.Take(dec("0.00005")), ErrQuantityPrecision)
	assert.ErrorIs(t, b.Credit(dec("0.00005")), ErrQuantityPrecision)
	assert.True(t, b.QuantityRemaining.Equal(dec("4")))
}

func TestBatchErrors_AreDistinct(t *testing.T) {
	b, err := NewInventoryBatch(uuid.New(), dec("1"), dec("1"), time.Now())
	require.NoError(t, err)

	underflow := b.Take(dec("2"))
	overflow := b.Credit(dec("1"))

	assert.ErrorIs(t, underflow, ErrBatchUnderflow)
	assert.NotErrorIs(t, underflow, ErrBatchOverflow)
	assert.ErrorIs(t, overflow, ErrBatchOverflow)
	assert.NotErrorIs(t, overflow, ErrBatchUnderflow)
}

func TestNewInventoryItem(t *testing.T) {
	tenantID := uuid.New()

	item, err := NewInventoryItem(tenantID, "  Tomatoes ", UnitMass)
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", item.Name)
	assert.True(t, item.BelongsTo(tenantID))
	assert.False(t, item.BelongsTo(uuid.New()))

	_, err = NewInventoryItem(uuid.Nil, "Tomatoes", UnitMass)
	assert.Error(t, err)
	_, err = NewInventoryItem(tenantID, "", UnitMass)
	assert.Error(t, err)
	_, err = NewInventoryItem(tenantID, "Tomatoes", UnitOfMeasure("CRATE"))
	assert.Error(t, err)
}
