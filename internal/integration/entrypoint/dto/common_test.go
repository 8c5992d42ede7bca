package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountDecoding(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"amount":"1000.00"}`, "1000.00"},
		{"number", `{"amount":12.5}`, "12.50"},
		{"integer", `{"amount":7}`, "7.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ApplyPaymentRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, Money(req.Amount))
		})
	}

	var edit EditPaymentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes":"late"}`), &edit))
	assert.Nil(t, edit.Amount)
	require.NotNil(t, edit.Notes)
	assert.Equal(t, "late", *edit.Notes)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0.00", Money(decimal.Zero))
	assert.Equal(t, "33.34", Money(decimal.RequireFromString("33.335")))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("payment_date", "2026-04-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2026-04-15", Date(got))

	empty, err := ParseDate("payment_date", "")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("payment_date", "15/04/2026")
	assert.EqualError(t, err, "payment_date must be a date in YYYY-MM-DD format")

	none, err := ParseOptionalDate("due_date", nil)
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Nil(t, OptionalDate(nil))
}
