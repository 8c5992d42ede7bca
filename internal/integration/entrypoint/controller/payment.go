package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	applyUseCase  *payment.ApplyPaymentUseCase
	listUseCase   *payment.ListPaymentsUseCase
	editUseCase   *payment.EditPaymentUseCase
	deleteUseCase *payment.DeletePaymentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	applyUseCase *payment.ApplyPaymentUseCase,
	listUseCase *payment.ListPaymentsUseCase,
	editUseCase *payment.EditPaymentUseCase,
	deleteUseCase *payment.DeletePaymentUseCase,
) *PaymentController {
	return &PaymentController{
		applyUseCase:  applyUseCase,
		listUseCase:   listUseCase,
		editUseCase:   editUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Apply handles POST /payments requests.
func (c *PaymentController) Apply(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.ApplyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	kind, err := valueobject.ParsePayableKind(req.DocumentType)
	if err != nil {
		badRequest(ctx, "document_type must be one of sale, purchase, loan")
		return
	}
	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		badRequest(ctx, "Invalid document ID format")
		return
	}
	paymentDate, err := dto.ParseDate("payment_date", req.PaymentDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), payment.ApplyPaymentInput{
		UserID:       userID,
		DocumentKind: kind,
		DocumentID:   documentID,
		PaymentFields: payment.PaymentFields{
			Amount:      req.Amount,
			Method:      entity.PaymentMethod(req.PaymentMethod),
			PaymentDate: paymentDate,
			Reference:   req.Reference,
			Notes:       req.Notes,
		},
	})
	if err != nil {
		handleLedgerError(ctx, "apply_payment", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToApplyPaymentResponse(output))
}

// List handles GET /payments?document_type=&document_id= requests.
func (c *PaymentController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	kind, err := valueobject.ParsePayableKind(ctx.Query("document_type"))
	if err != nil {
		badRequest(ctx, "document_type must be one of sale, purchase, loan")
		return
	}
	documentID, err := uuid.Parse(ctx.Query("document_id"))
	if err != nil {
		badRequest(ctx, "Invalid document ID format")
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), payment.ListPaymentsInput{
		UserID:       userID,
		DocumentKind: kind,
		DocumentID:   documentID,
	})
	if err != nil {
		handleLedgerError(ctx, "list_payments", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaymentListResponse{
		Document: dto.ToDocumentSummary(output.Document),
		Payments: dto.ToPaymentResponses(output.Payments),
	})
}

// Edit handles PUT /payments/:id requests.
func (c *PaymentController) Edit(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "id", "payment")
	if !ok {
		return
	}

	var req dto.EditPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	input := payment.EditPaymentInput{
		UserID:    userID,
		PaymentID: paymentID,
		Amount:    req.Amount,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.Method = &method
	}
	if req.PaymentDate != nil {
		date, err := time.Parse(dto.DateLayout, *req.PaymentDate)
		if err != nil {
			badRequest(ctx, "payment_date must be a date in YYYY-MM-DD format")
			return
		}
		input.PaymentDate = &date
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, "edit_payment", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EditPaymentResponse{
		Document:       dto.ToDocumentSummary(output.Document),
		Payment:        dto.ToPaymentResponse(output.Payment),
		InterestRecord: dto.ToInterestRecordResponse(output.InterestRecord),
	})
}

// Delete handles DELETE /payments/:id requests.
func (c *PaymentController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "id", "payment")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), payment.DeletePaymentInput{
		UserID:    userID,
		PaymentID: paymentID,
	})
	if err != nil {
		handleLedgerError(ctx, "delete_payment", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeletePaymentResponse{
		Document:       dto.ToDocumentSummary(output.Document),
		InterestRecord: dto.ToInterestRecordResponse(output.InterestRecord),
	})
}
