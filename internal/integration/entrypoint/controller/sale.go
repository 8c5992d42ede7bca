package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/sale"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// SaleController handles sale endpoints.
type SaleController struct {
	createUseCase *sale.CreateSaleUseCase
	getUseCase    *sale.GetSaleUseCase
	listUseCase   *sale.ListSalesUseCase
	deleteUseCase *sale.DeleteSaleUseCase
}

// NewSaleController creates a new sale controller instance.
func NewSaleController(
	createUseCase *sale.CreateSaleUseCase,
	getUseCase *sale.GetSaleUseCase,
	listUseCase *sale.ListSalesUseCase,
	deleteUseCase *sale.DeleteSaleUseCase,
) *SaleController {
	return &SaleController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /sales requests.
func (c *SaleController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}
	saleDate, err := dto.ParseDate("sale_date", req.SaleDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), sale.CreateSaleInput{
		UserID:       userID,
		CustomerName: req.CustomerName,
		SaleDate:     saleDate,
		Items:        dto.ToLineItemInputs(req.Items),
		Discount:     req.Discount,
		Tax:          req.Tax,
		Notes:        req.Notes,
	})
	if err != nil {
		handleLedgerError(ctx, "create_sale", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(output.Sale))
}

// List handles GET /sales requests.
func (c *SaleController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	sales, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleLedgerError(ctx, "list_sales", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales))
}

// Get handles GET /sales/:id requests.
func (c *SaleController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	saleID, ok := parseIDParam(ctx, "id", "sale")
	if !ok {
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), sale.GetSaleInput{
		UserID: userID,
		SaleID: saleID,
	})
	if err != nil {
		handleLedgerError(ctx, "get_sale", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(result))
}

// Delete handles DELETE /sales/:id requests.
func (c *SaleController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	saleID, ok := parseIDParam(ctx, "id", "sale")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), sale.DeleteSaleInput{
		UserID: userID,
		SaleID: saleID,
	})
	if err != nil {
		handleLedgerError(ctx, "delete_sale", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
