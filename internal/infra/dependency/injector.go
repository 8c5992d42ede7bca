// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/invoice"
	"github.com/bizledger/backend/internal/application/usecase/loan"
	"github.com/bizledger/backend/internal/application/usecase/numbering"
	"github.com/bizledger/backend/internal/application/usecase/payment"
	"github.com/bizledger/backend/internal/application/usecase/purchase"
	"github.com/bizledger/backend/internal/application/usecase/sale"
	"github.com/bizledger/backend/internal/infra/cache"
	database "github.com/bizledger/backend/internal/infra/db"
	"github.com/bizledger/backend/internal/infra/server/router"
	"github.com/bizledger/backend/internal/integration/adapters"
	idempotencycache "github.com/bizledger/backend/internal/integration/cache"
	"github.com/bizledger/backend/internal/integration/entrypoint/controller"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
	"github.com/bizledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  redis.UniversalClient
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redis client disables idempotent replay.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *Injector {
	// Create repositories
	store := persistence.NewLedgerStore(db, cfg.Ledger.TxTimeout)
	repos := store.Repositories()

	// Create adapters/services
	numbers := numbering.NewGenerator(cfg.Ledger.NumberMaxAttempts)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var idempotencyStore adapter.IdempotencyStore
	if redisClient != nil && cfg.Idempotency.Enabled {
		idempotencyStore = idempotencycache.NewIdempotencyStore(redisClient)
	}

	retries := cfg.Ledger.ConflictRetries

	// Create invoice use cases
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(store, numbers)
	getInvoiceUseCase := invoice.NewGetInvoiceUseCase(repos.Invoices)
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(repos.Invoices)
	deleteInvoiceUseCase := invoice.NewDeleteInvoiceUseCase(store)

	// Create sale use cases
	createSaleUseCase := sale.NewCreateSaleUseCase(store, numbers)
	getSaleUseCase := sale.NewGetSaleUseCase(repos.Sales)
	listSalesUseCase := sale.NewListSalesUseCase(repos.Sales)
	deleteSaleUseCase := sale.NewDeleteSaleUseCase(store)

	// Create purchase use cases
	createPurchaseUseCase := purchase.NewCreatePurchaseUseCase(store, numbers)
	getPurchaseUseCase := purchase.NewGetPurchaseUseCase(repos.Purchases)
	listPurchasesUseCase := purchase.NewListPurchasesUseCase(repos.Purchases)
	deletePurchaseUseCase := purchase.NewDeletePurchaseUseCase(store)

	// Create loan use cases
	createLoanUseCase := loan.NewCreateLoanUseCase(store, numbers)
	getLoanUseCase := loan.NewGetLoanUseCase(store)
	listLoansUseCase := loan.NewListLoansUseCase(repos.Loans)
	deleteLoanUseCase := loan.NewDeleteLoanUseCase(store)
	changeStatusUseCase := loan.NewChangeStatusUseCase(repos.Loans)

	// Create payment use cases
	applyPaymentUseCase := payment.NewApplyPaymentUseCase(store, retries)
	listPaymentsUseCase := payment.NewListPaymentsUseCase(store)
	editPaymentUseCase := payment.NewEditPaymentUseCase(store, retries)
	deletePaymentUseCase := payment.NewDeletePaymentUseCase(store, retries)
	convertInvoiceUseCase := payment.NewConvertInvoiceUseCase(store, numbers, retries)

	// Create controllers
	probes := []controller.HealthProbe{
		{Name: "database", Critical: true, Check: database.HealthChecker(db)},
	}
	if redisClient != nil {
		probes = append(probes, controller.HealthProbe{Name: "cache", Check: cache.HealthChecker(redisClient)})
	}
	healthController := controller.NewHealthController(probes...)

	invoiceController := controller.NewInvoiceController(
		createInvoiceUseCase,
		getInvoiceUseCase,
		listInvoicesUseCase,
		deleteInvoiceUseCase,
		convertInvoiceUseCase,
	)

	saleController := controller.NewSaleController(
		createSaleUseCase,
		getSaleUseCase,
		listSalesUseCase,
		deleteSaleUseCase,
	)

	purchaseController := controller.NewPurchaseController(
		createPurchaseUseCase,
		getPurchaseUseCase,
		listPurchasesUseCase,
		deletePurchaseUseCase,
	)

	loanController := controller.NewLoanController(
		createLoanUseCase,
		getLoanUseCase,
		listLoansUseCase,
		deleteLoanUseCase,
		changeStatusUseCase,
	)

	paymentController := controller.NewPaymentController(
		applyPaymentUseCase,
		listPaymentsUseCase,
		editPaymentUseCase,
		deletePaymentUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	idempotency := middleware.NewIdempotency(idempotencyStore, cfg.Idempotency.TTL, cfg.Idempotency.PendingTTL)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	// Create router
	r := router.NewRouter(
		healthController,
		invoiceController,
		saleController,
		purchaseController,
		loanController,
		paymentController,
		authMiddleware,
		idempotency,
		rateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}
}
