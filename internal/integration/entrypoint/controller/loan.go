package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/loan"
	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// LoanController handles loan endpoints.
type LoanController struct {
	createUseCase       *loan.CreateLoanUseCase
	getUseCase          *loan.GetLoanUseCase
	listUseCase         *loan.ListLoansUseCase
	deleteUseCase       *loan.DeleteLoanUseCase
	changeStatusUseCase *loan.ChangeStatusUseCase
}

// NewLoanController creates a new loan controller instance.
func NewLoanController(
	createUseCase *loan.CreateLoanUseCase,
	getUseCase *loan.GetLoanUseCase,
	listUseCase *loan.ListLoansUseCase,
	deleteUseCase *loan.DeleteLoanUseCase,
	changeStatusUseCase *loan.ChangeStatusUseCase,
) *LoanController {
	return &LoanController{
		createUseCase:       createUseCase,
		getUseCase:          getUseCase,
		listUseCase:         listUseCase,
		deleteUseCase:       deleteUseCase,
		changeStatusUseCase: changeStatusUseCase,
	}
}

// Create handles POST /loans requests.
func (c *LoanController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}
	startDate, err := dto.ParseDate("start_date", req.StartDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}
	dueDate, err := dto.ParseOptionalDate("due_date", req.DueDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), loan.CreateLoanInput{
		UserID:           userID,
		Type:             entity.LoanType(req.Type),
		CounterpartyName: req.CounterpartyName,
		PrincipalAmount:  req.PrincipalAmount,
		InterestRate:     req.InterestRate,
		Charges:          req.Charges,
		StartDate:        startDate,
		DueDate:          dueDate,
		Notes:            req.Notes,
	})
	if err != nil {
		handleLedgerError(ctx, "create_loan", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLoanResponse(output.Loan))
}

// List handles GET /loans requests.
func (c *LoanController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	loans, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleLedgerError(ctx, "list_loans", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanListResponse(loans))
}

// Get handles GET /loans/:id requests.
func (c *LoanController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	loanID, ok := parseIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), loan.GetLoanInput{
		UserID: userID,
		LoanID: loanID,
	})
	if err != nil {
		handleLedgerError(ctx, "get_loan", err)
		return
	}

	response := dto.ToLoanResponse(output.Loan)
	response.InterestRecord = dto.ToInterestRecordResponse(output.InterestRecord)
	ctx.JSON(http.StatusOK, response)
}

// Delete handles DELETE /loans/:id requests.
func (c *LoanController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	loanID, ok := parseIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), loan.DeleteLoanInput{
		UserID: userID,
		LoanID: loanID,
	})
	if err != nil {
		handleLedgerError(ctx, "delete_loan", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ChangeStatus handles PATCH /loans/:id/status requests.
func (c *LoanController) ChangeStatus(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	loanID, ok := parseIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	var req dto.ChangeLoanStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	updated, err := c.changeStatusUseCase.Execute(ctx.Request.Context(), loan.ChangeStatusInput{
		UserID: userID,
		LoanID: loanID,
		Status: entity.LoanStatus(req.Status),
	})
	if err != nil {
		handleLedgerError(ctx, "change_loan_status", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanResponse(updated))
}
