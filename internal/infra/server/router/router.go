// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/integration/entrypoint/controller"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	invoiceController  *controller.InvoiceController
	saleController     *controller.SaleController
	purchaseController *controller.PurchaseController
	loanController     *controller.LoanController
	paymentController  *controller.PaymentController
	authMiddleware     *middleware.AuthMiddleware
	idempotency        *middleware.Idempotency
	rateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	invoiceController *controller.InvoiceController,
	saleController *controller.SaleController,
	purchaseController *controller.PurchaseController,
	loanController *controller.LoanController,
	paymentController *controller.PaymentController,
	authMiddleware *middleware.AuthMiddleware,
	idempotency *middleware.Idempotency,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:   healthController,
		invoiceController:  invoiceController,
		saleController:     saleController,
		purchaseController: purchaseController,
		loanController:     loanController,
		paymentController:  paymentController,
		authMiddleware:     authMiddleware,
		idempotency:        idempotency,
		rateLimiter:        rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/health/live", r.healthController.Live)
}

// idempotent returns the replay middleware, or a pass-through when none is configured.
func (r *Router) idempotent() gin.HandlerFunc {
	if r.idempotency == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.idempotency.Middleware()
}

// limited returns the payment write limiter, or a pass-through when disabled.
func (r *Router) limited() gin.HandlerFunc {
	if r.rateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.rateLimiter.Middleware()
}

// setupAPIRoutes configures the ledger API. Every route requires authentication.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	if r.invoiceController != nil {
		invoices := v1.Group("/invoices")
		{
			invoices.POST("", r.invoiceController.Create)
			invoices.GET("", r.invoiceController.List)
			invoices.GET("/:id", r.invoiceController.Get)
			invoices.DELETE("/:id", r.invoiceController.Delete)
			invoices.POST("/:id/convert", r.limited(), r.idempotent(), r.invoiceController.Convert)
		}
	}

	if r.saleController != nil {
		sales := v1.Group("/sales")
		{
			sales.POST("", r.saleController.Create)
			sales.GET("", r.saleController.List)
			sales.GET("/:id", r.saleController.Get)
			sales.DELETE("/:id", r.saleController.Delete)
		}
	}

	if r.purchaseController != nil {
		purchases := v1.Group("/purchases")
		{
			purchases.POST("", r.purchaseController.Create)
			purchases.GET("", r.purchaseController.List)
			purchases.GET("/:id", r.purchaseController.Get)
			purchases.DELETE("/:id", r.purchaseController.Delete)
		}
	}

	if r.loanController != nil {
		loans := v1.Group("/loans")
		{
			loans.POST("", r.loanController.Create)
			loans.GET("", r.loanController.List)
			loans.GET("/:id", r.loanController.Get)
			loans.DELETE("/:id", r.loanController.Delete)
			loans.PATCH("/:id/status", r.loanController.ChangeStatus)
		}
	}

	if r.paymentController != nil {
		payments := v1.Group("/payments")
		{
			payments.POST("", r.limited(), r.idempotent(), r.paymentController.Apply)
			payments.GET("", r.paymentController.List)
			payments.PUT("/:id", r.limited(), r.paymentController.Edit)
			payments.DELETE("/:id", r.limited(), r.paymentController.Delete)
		}
	}
}
