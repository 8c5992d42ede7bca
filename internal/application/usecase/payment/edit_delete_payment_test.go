package payment_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

func ptr[T any](v T) *T {
	return &v
}

func applyTo(t *testing.T, f *fixture, kind valueobject.PayableKind, id uuid.UUID, amount string) *payment.ApplyPaymentOutput {
	t.Helper()
	out, err := payment.NewApplyPaymentUseCase(f.store, 3).Execute(f.ctx, payment.ApplyPaymentInput{
		UserID: f.userID, DocumentKind: kind, DocumentID: id, PaymentFields: fields(amount),
	})
	require.NoError(t, err)
	return out
}

func TestEditPayment_Sale(t *testing.T) {
	f := newFixture(t)
	uc := payment.NewEditPaymentUseCase(f.store, 3)

	t.Run("lowering the amount reopens the sale", func(t *testing.T) {
		sale := f.sale(t, "500.00")
		first := applyTo(t, f, valueobject.PayableSale, sale.ID, "300.00").Payments[0]
		applyTo(t, f, valueobject.PayableSale, sale.ID, "200.00")

		out, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: first.ID, Amount: ptr(dec("100.00")),
		})
		require.NoError(t, err)
		assertAmount(t, "100.00", out.Payment.Amount)
		assertAmount(t, "300.00", out.Document.AmountPaid)
		assert.Equal(t, string(valueobject.PaymentStatusPartiallyPaid), out.Document.Status)

		stored := f.reloadSale(t, sale.ID)
		assertAmount(t, "200.00", stored.Balance)
	})

	t.Run("raising past the other payments is rejected", func(t *testing.T) {
		sale := f.sale(t, "500.00")
		first := applyTo(t, f, valueobject.PayableSale, sale.ID, "300.00").Payments[0]
		applyTo(t, f, valueobject.PayableSale, sale.ID, "100.00")

		_, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: first.ID, Amount: ptr(dec("400.01")),
		})
		assertKind(t, err, domainerror.KindStateConflict)
		assert.Contains(t, err.Error(), "amount exceeds the remaining 400.00")

		stored, err := f.repos.Payments.FindByID(f.ctx, first.ID)
		require.NoError(t, err)
		assertAmount(t, "300.00", stored.Amount)
	})

	t.Run("metadata changes keep the settlement", func(t *testing.T) {
		sale := f.sale(t, "80.00")
		first := applyTo(t, f, valueobject.PayableSale, sale.ID, "80.00").Payments[0]

		out, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID:    f.userID,
			PaymentID: first.ID,
			Method:    ptr(entity.PaymentMethodCheque),
			Reference: ptr("CHQ-0042"),
		})
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentMethodCheque, out.Payment.Method)
		assert.Equal(t, string(valueobject.PaymentStatusPaid), out.Document.Status)

		stored, err := f.repos.Payments.FindByID(f.ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "CHQ-0042", stored.Reference)
	})

	t.Run("another user's payment is not found", func(t *testing.T) {
		sale := f.sale(t, "80.00")
		first := applyTo(t, f, valueobject.PayableSale, sale.ID, "10.00").Payments[0]

		_, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: uuid.New(), PaymentID: first.ID, Amount: ptr(dec("5.00")),
		})
		assertKind(t, err, domainerror.KindNotFound)
		assert.ErrorIs(t, err, domainerror.ErrPaymentNotFound)
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: uuid.New(), Amount: ptr(decimal.Zero),
		})
		assertKind(t, err, domainerror.KindValidationFailed)
	})
}

func TestEditPayment_Loan(t *testing.T) {
	f := newFixture(t)
	uc := payment.NewEditPaymentUseCase(f.store, 3)

	t.Run("interest leg edit moves the interest record", func(t *testing.T) {
		loan := f.loan(t, entity.LoanTypeReceivable, "100.00")
		applied := applyTo(t, f, valueobject.PayableLoan, loan.ID, "150.00")
		interestLeg := applied.Payments[1]

		out, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: interestLeg.ID, Amount: ptr(dec("20.00")),
		})
		require.NoError(t, err)
		require.NotNil(t, out.InterestRecord)
		assertAmount(t, "20.00", out.InterestRecord.Amount)
		require.NotNil(t, out.Document.TotalInterestPaid)
		assertAmount(t, "20.00", *out.Document.TotalInterestPaid)

		income, err := f.repos.Incomes.FindByLoan(f.ctx, f.userID, loan.ID, entity.LoanInterestCategory)
		require.NoError(t, err)
		assertAmount(t, "20.00", income.GrossAmount)
	})

	t.Run("principal leg edit reopens the loan", func(t *testing.T) {
		loan := f.loan(t, entity.LoanTypeReceivable, "100.00")
		principalLeg := applyTo(t, f, valueobject.PayableLoan, loan.ID, "100.00").Payments[0]

		out, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: principalLeg.ID, Amount: ptr(dec("60.00")),
		})
		require.NoError(t, err)
		assertAmount(t, "40.00", out.Document.Balance)
		assert.Equal(t, string(entity.LoanStatusActive), out.Document.Status)
	})

	t.Run("principal leg cannot exceed the principal", func(t *testing.T) {
		loan := f.loan(t, entity.LoanTypeReceivable, "100.00")
		principalLeg := applyTo(t, f, valueobject.PayableLoan, loan.ID, "70.00").Payments[0]

		_, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: principalLeg.ID, Amount: ptr(dec("120.00")),
		})
		assertKind(t, err, domainerror.KindStateConflict)
		assert.ErrorIs(t, err, domainerror.ErrAmountExceedsBalance)
	})

	t.Run("closed loan payments are frozen", func(t *testing.T) {
		loan := f.loan(t, entity.LoanTypePayable, "100.00")
		principalLeg := applyTo(t, f, valueobject.PayableLoan, loan.ID, "40.00").Payments[0]

		stored := f.reloadLoan(t, loan.ID)
		require.NoError(t, stored.ChangeStatus(entity.LoanStatusDefaulted))
		require.NoError(t, f.repos.Loans.UpdateBalance(f.ctx, stored))

		_, err := uc.Execute(f.ctx, payment.EditPaymentInput{
			UserID: f.userID, PaymentID: principalLeg.ID, Amount: ptr(dec("30.00")),
		})
		assertKind(t, err, domainerror.KindStateConflict)
		assert.ErrorIs(t, err, domainerror.ErrTerminalState)
	})
}

func TestDeletePayment(t *testing.T) {
	f := newFixture(t)
	uc := payment.NewDeletePaymentUseCase(f.store, 3)

	t.Run("removing the only sale payment makes it unpaid", func(t *testing.T) {
		sale := f.sale(t, "90.00")
		only := applyTo(t, f, valueobject.PayableSale, sale.ID, "90.00").Payments[0]

		out, err := uc.Execute(f.ctx, payment.DeletePaymentInput{UserID: f.userID, PaymentID: only.ID})
		require.NoError(t, err)
		assert.Equal(t, string(valueobject.PaymentStatusUnpaid), out.Document.Status)
		assertAmount(t, "90.00", out.Document.Balance)

		_, err = f.repos.Payments.FindByID(f.ctx, only.ID)
		assert.ErrorIs(t, err, domainerror.ErrPaymentNotFound)
	})

	t.Run("purchase payment", func(t *testing.T) {
		purchase := f.purchase(t, "60.00")
		applyTo(t, f, valueobject.PayablePurchase, purchase.ID, "20.00")
		second := applyTo(t, f, valueobject.PayablePurchase, purchase.ID, "40.00").Payments[0]

		out, err := uc.Execute(f.ctx, payment.DeletePaymentInput{UserID: f.userID, PaymentID: second.ID})
		require.NoError(t, err)
		assertAmount(t, "20.00", out.Document.AmountPaid)
		assert.Equal(t, string(valueobject.PaymentStatusPartiallyPaid), out.Document.Status)
	})

	t.Run("last interest payment removes the interest record", func(t *testing.T) {
		loan := f.loan(t, entity.LoanTypePayable, "100.00")
		applied := applyTo(t, f, valueobject.PayableLoan, loan.ID, "130.00")
		interestLeg := applied.Payments[1]

		out, err := uc.Execute(f.ctx, payment.DeletePaymentInput{UserID: f.userID, PaymentID: interestLeg.ID})
		require.NoError(t, err)
		assert.Nil(t, out.InterestRecord)
		require.NotNil(t, out.Document.TotalInterestPaid)
		assert.True(t, out.Document.TotalInterestPaid.IsZero())

		_, err = f.repos.Expenses.FindByLoan(f.ctx, f.userID, loan.ID, entity.LoanInterestCategory)
		assert.ErrorIs(t, err, domainerror.ErrInterestRecordNotFound)
		assert.Equal(t, entity.LoanStatusPaidOff, f.reloadLoan(t, loan.ID).Status)
	})

	t.Run("principal payment restores the balance", func(t *testing.T) {
		loan := f.loan(t, entity.LoanTypeReceivable, "100.00")
		applied := applyTo(t, f, valueobject.PayableLoan, loan.ID, "110.00")

		out, err := uc.Execute(f.ctx, payment.DeletePaymentInput{UserID: f.userID, PaymentID: applied.Payments[0].ID})
		require.NoError(t, err)
		assertAmount(t, "100.00", out.Document.Balance)
		assert.Equal(t, string(entity.LoanStatusActive), out.Document.Status)
		require.NotNil(t, out.InterestRecord)
		assertAmount(t, "10.00", out.InterestRecord.Amount)
	})

	t.Run("missing payment", func(t *testing.T) {
		_, err := uc.Execute(f.ctx, payment.DeletePaymentInput{UserID: f.userID, PaymentID: uuid.New()})
		assertKind(t, err, domainerror.KindNotFound)
	})
}
