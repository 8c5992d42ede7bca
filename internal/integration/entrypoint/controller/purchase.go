package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/purchase"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// PurchaseController handles purchase endpoints.
type PurchaseController struct {
	createUseCase *purchase.CreatePurchaseUseCase
	getUseCase    *purchase.GetPurchaseUseCase
	listUseCase   *purchase.ListPurchasesUseCase
	deleteUseCase *purchase.DeletePurchaseUseCase
}

// NewPurchaseController creates a new purchase controller instance.
func NewPurchaseController(
	createUseCase *purchase.CreatePurchaseUseCase,
	getUseCase *purchase.GetPurchaseUseCase,
	listUseCase *purchase.ListPurchasesUseCase,
	deleteUseCase *purchase.DeletePurchaseUseCase,
) *PurchaseController {
	return &PurchaseController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /purchases requests.
func (c *PurchaseController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}
	purchaseDate, err := dto.ParseDate("purchase_date", req.PurchaseDate)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), purchase.CreatePurchaseInput{
		UserID:       userID,
		SupplierName: req.SupplierName,
		PurchaseDate: purchaseDate,
		Items:        dto.ToLineItemInputs(req.Items),
		Discount:     req.Discount,
		Tax:          req.Tax,
		Notes:        req.Notes,
	})
	if err != nil {
		handleLedgerError(ctx, "create_purchase", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPurchaseResponse(output.Purchase))
}

// List handles GET /purchases requests.
func (c *PurchaseController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	purchases, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleLedgerError(ctx, "list_purchases", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseListResponse(purchases))
}

// Get handles GET /purchases/:id requests.
func (c *PurchaseController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	purchaseID, ok := parseIDParam(ctx, "id", "purchase")
	if !ok {
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), purchase.GetPurchaseInput{
		UserID:     userID,
		PurchaseID: purchaseID,
	})
	if err != nil {
		handleLedgerError(ctx, "get_purchase", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseResponse(result))
}

// Delete handles DELETE /purchases/:id requests.
func (c *PurchaseController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	purchaseID, ok := parseIDParam(ctx, "id", "purchase")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), purchase.DeletePurchaseInput{
		UserID:     userID,
		PurchaseID: purchaseID,
	})
	if err != nil {
		handleLedgerError(ctx, "delete_purchase", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
