package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/invoice"
	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	createUseCase  *invoice.CreateInvoiceUseCase
	getUseCase     *invoice.GetInvoiceUseCase
	listUseCase    *invoice.ListInvoicesUseCase
	deleteUseCase  *invoice.DeleteInvoiceUseCase
	convertUseCase *payment.ConvertInvoiceUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	createUseCase *invoice.CreateInvoiceUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	listUseCase *invoice.ListInvoicesUseCase,
	deleteUseCase *invoice.DeleteInvoiceUseCase,
	convertUseCase *payment.ConvertInvoiceUseCase,
) *InvoiceController {
	return &InvoiceController{
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		listUseCase:    listUseCase,
		deleteUseCase:  deleteUseCase,
		convertUseCase: convertUseCase,
	}
}

// Create handles POST /invoices requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	issueDate, err := dto.ParseDate("issue_date", req.IssueDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}
	dueDate, err := dto.ParseOptionalDate("due_date", req.DueDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), invoice.CreateInvoiceInput{
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Items:         dto.ToLineItemInputs(req.Items),
		Discount:      req.Discount,
		Tax:           req.Tax,
		Notes:         req.Notes,
	})
	if err != nil {
		handleLedgerError(ctx, "create_invoice", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// List handles GET /invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	invoices, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleLedgerError(ctx, "list_invoices", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices))
}

// Get handles GET /invoices/:id requests.
func (c *InvoiceController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(ctx, "id", "invoice")
	if !ok {
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceInput{
		UserID:    userID,
		InvoiceID: invoiceID,
	})
	if err != nil {
		handleLedgerError(ctx, "get_invoice", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(result))
}

// Delete handles DELETE /invoices/:id requests.
func (c *InvoiceController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(ctx, "id", "invoice")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), invoice.DeleteInvoiceInput{
		UserID:    userID,
		InvoiceID: invoiceID,
	})
	if err != nil {
		handleLedgerError(ctx, "delete_invoice", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Convert handles POST /invoices/:id/convert requests.
func (c *InvoiceController) Convert(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(ctx, "id", "invoice")
	if !ok {
		return
	}

	var req dto.ConvertInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}
	paymentDate, err := dto.ParseDate("payment_date", req.PaymentDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	output, err := c.convertUseCase.Execute(ctx.Request.Context(), payment.ConvertInvoiceInput{
		UserID:    userID,
		InvoiceID: invoiceID,
		PaymentFields: payment.PaymentFields{
			Amount:      req.Amount,
			Method:      entity.PaymentMethod(req.PaymentMethod),
			PaymentDate: paymentDate,
			Reference:   req.Reference,
			Notes:       req.Notes,
		},
	})
	if err != nil {
		handleLedgerError(ctx, "convert_invoice", err)
		return
	}

	response := dto.ConvertInvoiceResponse{
		Invoice: dto.ToInvoiceResponse(output.Invoice),
		Sale:    dto.ToSaleResponse(output.Sale),
		Created: output.Created,
	}
	if output.Payment != nil {
		p := dto.ToPaymentResponse(output.Payment)
		response.Payment = &p
	}

	statusCode := http.StatusOK
	if output.Created {
		statusCode = http.StatusCreated
	}
	ctx.JSON(statusCode, response)
}
