// Package audit contains ledger consistency checks.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/document"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// Drift describes a document whose stored paid amount disagrees with its payments.
type Drift struct {
	Kind           valueobject.PayableKind
	ID             uuid.UUID
	Number         string
	StoredPaid     decimal.Decimal
	RecomputedPaid decimal.Decimal
	Fixed          bool
	Error          string
}

// RecomputeBalancesInput represents the input for a balance audit.
type RecomputeBalancesInput struct {
	UserID uuid.UUID
	Fix    bool
}

// RecomputeBalancesOutput represents the result of a balance audit.
type RecomputeBalancesOutput struct {
	Checked int
	Drifts  []Drift
}

// RecomputeBalancesUseCase recomputes every document of a user from its payments.
type RecomputeBalancesUseCase struct {
	store adapter.LedgerStore
}

// NewRecomputeBalancesUseCase creates a new RecomputeBalancesUseCase instance.
func NewRecomputeBalancesUseCase(store adapter.LedgerStore) *RecomputeBalancesUseCase {
	return &RecomputeBalancesUseCase{
		store: store,
	}
}

// Execute reports, and optionally repairs, documents that drifted from their payments.
func (uc *RecomputeBalancesUseCase) Execute(ctx context.Context, input RecomputeBalancesInput) (*RecomputeBalancesOutput, error) {
	output := &RecomputeBalancesOutput{}

	if err := uc.auditSales(ctx, input, output); err != nil {
		return nil, err
	}
	if err := uc.auditPurchases(ctx, input, output); err != nil {
		return nil, err
	}
	if err := uc.auditLoans(ctx, input, output); err != nil {
		return nil, err
	}

	slog.Info("Balance audit completed",
		"user_id", input.UserID,
		"checked", output.Checked,
		"drifts", len(output.Drifts),
		"fix", input.Fix,
	)
	return output, nil
}

func (uc *RecomputeBalancesUseCase) auditSales(ctx context.Context, input RecomputeBalancesInput, output *RecomputeBalancesOutput) error {
	repos := uc.store.Repositories()

	sales, err := repos.Sales.FindByUser(ctx, input.UserID)
	if err != nil {
		return domainerror.NewTransactionFailure(fmt.Errorf("failed to list sales: %w", err))
	}

	for _, sale := range sales {
		output.Checked++
		payments, err := repos.Payments.FindByPayable(ctx, sale.Ref())
		if err != nil {
			return domainerror.NewTransactionFailure(err)
		}
		paid := valueobject.SumMoney(entity.PaymentAmounts(payments, uuid.Nil)...)
		if paid.Equal(sale.AmountPaid) {
			continue
		}

		drift := Drift{Kind: valueobject.PayableSale, ID: sale.ID, Number: sale.Number, StoredPaid: sale.AmountPaid, RecomputedPaid: paid}
		if input.Fix {
			drift.record(uc.fixSale(ctx, sale, payments))
		}
		output.Drifts = append(output.Drifts, drift)
	}
	return nil
}

func (uc *RecomputeBalancesUseCase) fixSale(ctx context.Context, sale *entity.Sale, payments []*entity.PaymentRecord) error {
	if err := sale.Resettle(entity.PaymentAmounts(payments, uuid.Nil)); err != nil {
		return err
	}
	return uc.store.WithinTransaction(ctx, func(ctx context.Context, tx adapter.LedgerRepositories) error {
		if err := tx.Sales.UpdateSettlement(ctx, sale); err != nil {
			return err
		}
		if sale.InvoiceID == nil {
			return nil
		}
		invoice, err := tx.Invoices.FindByID(ctx, *sale.InvoiceID)
		if err != nil {
			return err
		}
		invoice.SyncWithSale(sale)
		return tx.Invoices.UpdateSettlement(ctx, invoice)
	})
}

func (uc *RecomputeBalancesUseCase) auditPurchases(ctx context.Context, input RecomputeBalancesInput, output *RecomputeBalancesOutput) error {
	repos := uc.store.Repositories()

	purchases, err := repos.Purchases.FindByUser(ctx, input.UserID)
	if err != nil {
		return domainerror.NewTransactionFailure(fmt.Errorf("failed to list purchases: %w", err))
	}

	for _, purchase := range purchases {
		output.Checked++
		payments, err := repos.Payments.FindByPayable(ctx, purchase.Ref())
		if err != nil {
			return domainerror.NewTransactionFailure(err)
		}
		amounts := entity.PaymentAmounts(payments, uuid.Nil)
		paid := valueobject.SumMoney(amounts...)
		if paid.Equal(purchase.AmountPaid) {
			continue
		}

		drift := Drift{Kind: valueobject.PayablePurchase, ID: purchase.ID, Number: purchase.Number, StoredPaid: purchase.AmountPaid, RecomputedPaid: paid}
		if input.Fix {
			err := purchase.Resettle(amounts)
			if err == nil {
				err = repos.Purchases.UpdateSettlement(ctx, purchase)
			}
			drift.record(err)
		}
		output.Drifts = append(output.Drifts, drift)
	}
	return nil
}

func (uc *RecomputeBalancesUseCase) auditLoans(ctx context.Context, input RecomputeBalancesInput, output *RecomputeBalancesOutput) error {
	repos := uc.store.Repositories()

	loans, err := repos.Loans.FindByUser(ctx, input.UserID)
	if err != nil {
		return domainerror.NewTransactionFailure(fmt.Errorf("failed to list loans: %w", err))
	}

	for _, loan := range loans {
		output.Checked++
		principal, err := repos.Payments.FindByPayable(ctx, loan.Ref())
		if err != nil {
			return domainerror.NewTransactionFailure(err)
		}
		principalAmounts := entity.PaymentAmounts(principal, uuid.Nil)

		var interestAmounts []decimal.Decimal
		interest, err := document.FindInterestRecord(ctx, repos, loan)
		if err != nil {
			return domainerror.NewTransactionFailure(err)
		}
		if interest != nil {
			interestPayments, err := repos.Payments.FindByPayable(ctx, interest.Ref())
			if err != nil {
				return domainerror.NewTransactionFailure(err)
			}
			interestAmounts = entity.PaymentAmounts(interestPayments, uuid.Nil)
		}

		paid := valueobject.SumMoney(principalAmounts...)
		interestPaid := valueobject.SumMoney(interestAmounts...)
		if paid.Equal(loan.TotalPaid) && interestPaid.Equal(loan.TotalInterestPaid) {
			continue
		}

		drift := Drift{Kind: valueobject.PayableLoan, ID: loan.ID, Number: loan.Number, StoredPaid: loan.TotalPaid, RecomputedPaid: paid}
		if input.Fix {
			err := loan.Resettle(principalAmounts, interestAmounts)
			if err == nil {
				err = repos.Loans.UpdateBalance(ctx, loan)
			}
			drift.record(err)
		}
		output.Drifts = append(output.Drifts, drift)
	}
	return nil
}

func (d *Drift) record(err error) {
	if err != nil {
		d.Error = err.Error()
		return
	}
	d.Fixed = true
}
