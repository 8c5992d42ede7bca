package document_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// scriptedNumbers hands out a fixed sequence of candidates.
type scriptedNumbers struct {
	numbers  []string
	attempts int
	calls    int
}

func (s *scriptedNumbers) Candidate(prefix string, _ uuid.UUID) string {
	n := s.numbers[s.calls%len(s.numbers)]
	s.calls++
	return prefix + "-" + n
}

func (s *scriptedNumbers) MaxAttempts() int {
	return s.attempts
}

func TestCreateNumbered(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	noLookup := func(context.Context, uuid.UUID, string) (bool, error) { return false, nil }
	lookupIn := func(taken map[string]bool) adapter.NumberLookup {
		return func(_ context.Context, _ uuid.UUID, number string) (bool, error) {
			return taken[number], nil
		}
	}

	t.Run("retries when the insert loses a race", func(t *testing.T) {
		numbers := &scriptedNumbers{numbers: []string{"000001", "000002"}, attempts: 5}
		taken := map[string]bool{"RCT-000001": true}

		number, err := document.CreateNumbered(ctx, numbers, "RCT", userID, noLookup, func(_ context.Context, number string) error {
			if taken[number] {
				return fmt.Errorf("insert: %w", domainerror.ErrDuplicateNumber)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "RCT-000002", number)
		assert.Equal(t, 2, numbers.calls)
	})

	t.Run("lookup collisions and insert races share one budget", func(t *testing.T) {
		numbers := &scriptedNumbers{numbers: []string{"000001", "000002", "000003"}, attempts: 3}
		inserts := 0

		number, err := document.CreateNumbered(ctx, numbers, "LN", userID, lookupIn(map[string]bool{"LN-000001": true}),
			func(_ context.Context, number string) error {
				inserts++
				if number == "LN-000002" {
					return domainerror.ErrDuplicateNumber
				}
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, "LN-000003", number)
		assert.Equal(t, 3, numbers.calls)
		assert.Equal(t, 2, inserts)
	})

	t.Run("gives up once the budget is spent", func(t *testing.T) {
		numbers := &scriptedNumbers{numbers: []string{"000001", "000002"}, attempts: 4}

		_, err := document.CreateNumbered(ctx, numbers, "INV", userID, lookupIn(map[string]bool{"INV-000001": true}),
			func(context.Context, string) error {
				return domainerror.ErrDuplicateNumber
			})
		assert.Equal(t, domainerror.KindNumberGenerationExhausted, domainerror.KindOf(err))
		assert.ErrorIs(t, err, domainerror.ErrNumberGenerationExhausted)
		assert.Equal(t, 4, numbers.calls)
	})

	t.Run("non-positive budget uses the default", func(t *testing.T) {
		numbers := &scriptedNumbers{numbers: []string{"000001"}}

		_, err := document.CreateNumbered(ctx, numbers, "PUR", userID, lookupIn(map[string]bool{"PUR-000001": true}),
			func(context.Context, string) error { return nil })
		assert.Equal(t, domainerror.KindNumberGenerationExhausted, domainerror.KindOf(err))
		assert.Equal(t, numbering.DefaultMaxAttempts, numbers.calls)
	})

	t.Run("lookup failures are transaction failures", func(t *testing.T) {
		numbers := &scriptedNumbers{numbers: []string{"000001"}, attempts: 5}

		_, err := document.CreateNumbered(ctx, numbers, "RCT", userID,
			func(context.Context, uuid.UUID, string) (bool, error) { return false, errors.New("connection reset") },
			func(context.Context, string) error { return nil })
		assert.Equal(t, domainerror.KindTransactionFailure, domainerror.KindOf(err))
		assert.Equal(t, 1, numbers.calls)
	})

	t.Run("other insert failures are not retried", func(t *testing.T) {
		numbers := &scriptedNumbers{numbers: []string{"000001"}, attempts: 5}

		_, err := document.CreateNumbered(ctx, numbers, "PUR", userID, noLookup, func(context.Context, string) error {
			return errors.New("disk full")
		})
		assert.Equal(t, domainerror.KindTransactionFailure, domainerror.KindOf(err))
		assert.Equal(t, 1, numbers.calls)
	})

	t.Run("ledger errors and version conflicts pass through", func(t *testing.T) {
		settled := domainerror.NewLedgerError(domainerror.KindStateConflict, domainerror.ErrCodeAlreadySettled, "settled", nil)

		_, err := document.CreateNumbered(ctx, &scriptedNumbers{numbers: []string{"000001"}, attempts: 5}, "RCT", userID, noLookup,
			func(context.Context, string) error { return settled })
		assert.Same(t, settled, err)

		_, err = document.CreateNumbered(ctx, &scriptedNumbers{numbers: []string{"000001"}, attempts: 5}, "RCT", userID, noLookup,
			func(context.Context, string) error { return fmt.Errorf("update invoice: %w", domainerror.ErrVersionConflict) })
		assert.ErrorIs(t, err, domainerror.ErrVersionConflict)
		assert.Empty(t, domainerror.KindOf(err))
	})
}

func TestBuildLineItems(t *testing.T) {
	items, err := document.BuildLineItems([]document.LineItemInput{
		{Description: "Bolts", Quantity: decimal.RequireFromString("3"), UnitPrice: decimal.RequireFromString("0.33")},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Total.Equal(decimal.RequireFromString("0.99")))

	tests := []struct {
		name  string
		input document.LineItemInput
	}{
		{"missing description", document.LineItemInput{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}},
		{"zero quantity", document.LineItemInput{Description: "x", UnitPrice: decimal.NewFromInt(1)}},
		{"negative price", document.LineItemInput{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-1)}},
		{"sub-cent price", document.LineItemInput{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("0.001")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.BuildLineItems([]document.LineItemInput{tt.input})
			var ledgerErr *domainerror.LedgerError
			require.ErrorAs(t, err, &ledgerErr)
			assert.Equal(t, "items", ledgerErr.Field)
		})
	}

	_, err = document.BuildLineItems(make([]document.LineItemInput, document.MaxLineItems+1))
	assert.Equal(t, domainerror.KindValidationFailed, domainerror.KindOf(err))
}

func TestStoreFailure(t *testing.T) {
	err := document.StoreFailure(fmt.Errorf("update: %w", domainerror.ErrVersionConflict))
	assert.Equal(t, domainerror.KindStateConflict, domainerror.KindOf(err))

	settled := domainerror.NewLedgerError(domainerror.KindStateConflict, domainerror.ErrCodeAlreadySettled, "settled", nil)
	assert.Same(t, settled, document.StoreFailure(settled))

	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(document.LookupFailure(domainerror.ErrDocumentNotFound)))
	assert.Equal(t, domainerror.KindTransactionFailure, domainerror.KindOf(document.LookupFailure(errors.New("timeout"))))
}
