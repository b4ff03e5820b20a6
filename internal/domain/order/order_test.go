package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()
	burger := uuid.New()
	fries := uuid.New()

	t.Run("Computes total from lines", func(t *testing.T) {
		o, err := NewOrder(tenantID, []LineInput{
			{MenuItemID: burger, Quantity: 2, Price: decimal.RequireFromString("8.50")},
			{MenuItemID: fries, Quantity: 1, Price: decimal.RequireFromString("3.00")},
		}, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20.00")))
		require.Len(t, o.Lines, 2)
		assert.Equal(t, o.ID, o.Lines[0].OrderID)
	})

	t.Run("Keeps explicit total", func(t *testing.T) {
		o, err := NewOrder(tenantID, []LineInput{{MenuItemID: burger, Quantity: 1, Price: decimal.NewFromInt(10)}}, decimal.NewFromInt(9))
		require.NoError(t, err)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(9)))
	})

	t.Run("Rejects invalid input", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, []LineInput{{MenuItemID: burger, Quantity: 1}}, decimal.Zero)
		assert.Error(t, err)
		_, err = NewOrder(tenantID, nil, decimal.Zero)
		assert.Error(t, err)
		_, err = NewOrder(tenantID, []LineInput{{MenuItemID: burger, Quantity: 0}}, decimal.Zero)
		assert.Error(t, err)
		_, err = NewOrder(tenantID, []LineInput{{MenuItemID: uuid.Nil, Quantity: 1}}, decimal.Zero)
		assert.Error(t, err)
		_, err = NewOrder(tenantID, []LineInput{{MenuItemID: burger, Quantity: 1, Price: decimal.RequireFromString("1.00001")}}, decimal.Zero)
		assert.Error(t, err)
		_, err = NewOrder(tenantID, []LineInput{{MenuItemID: burger, Quantity: 1}}, decimal.RequireFromString("0.00001"))
		assert.Error(t, err)
	})
}

func TestOrder_MarkRefunded(t *testing.T) {
	o, err := NewOrder(uuid.New(), []LineInput{{MenuItemID: uuid.New(), Quantity: 3, Price: decimal.NewFromInt(4)}}, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid())

	refund, err := o.MarkRefunded("")
	require.NoError(t, err)
	assert.True(t, o.IsRefunded())
	assert.Equal(t, o.ID, refund.OrderID)
	assert.Equal(t, DefaultRefundReason, refund.Reason)
	assert.True(t, refund.Amount.Equal(decimal.NewFromInt(12)))

	_, err = o.MarkRefunded("again")
	assert.ErrorIs(t, err, ErrAlreadyRefunded)
	assert.Error(t, o.MarkPaid())
}

func TestRecipe_QuantityFor(t *testing.T) {
	r, err := NewRecipe(uuid.New(), uuid.New(), uuid.New(), decimal.RequireFromString("0.25"))
	require.NoError(t, err)
	assert.True(t, r.QuantityFor(6).Equal(decimal.RequireFromString("1.5")))

	_, err = NewRecipe(uuid.New(), uuid.New(), uuid.New(), decimal.Zero)
	assert.Error(t, err)
	_, err = NewRecipe(uuid.New(), uuid.New(), uuid.New(), decimal.RequireFromString("0.12345"))
	assert.Error(t, err)
}
