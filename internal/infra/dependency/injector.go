// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/coach/config"
	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/application/usecase/category"
	"github.com/finance-tracker/coach/internal/application/usecase/goal"
	"github.com/finance-tracker/coach/internal/application/usecase/progression"
	"github.com/finance-tracker/coach/internal/application/usecase/receipt"
	"github.com/finance-tracker/coach/internal/application/usecase/transaction"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
	"github.com/finance-tracker/coach/internal/infra/server/router"
	"github.com/finance-tracker/coach/internal/integration/adapters"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/coach/internal/integration/events"
	"github.com/finance-tracker/coach/internal/integration/persistence"
)

// Collaborators are the external systems the core talks to. Nil fields get
// defaults: log publisher, system clock and a Gemini extractor built from config.
type Collaborators struct {
	Publisher   adapter.EventPublisher
	Extractor   adapter.ReceiptExtractor
	Clock       adapter.Clock
	EventHealth func() bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	SeedCategories *category.SeedCategoriesUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, collaborators Collaborators) (*Injector, error) {
	strategy, err := valueobject.NewLevelStrategy(cfg.Progression.LevelStrategy)
	if err != nil {
		return nil, fmt.Errorf("invalid progression config: %w", err)
	}
	catalog := valueobject.DefaultActionCatalog().With(cfg.Progression.ActionXP)

	publisher := collaborators.Publisher
	if publisher == nil {
		publisher = events.NewLogPublisher(slog.Default())
	}
	clock := collaborators.Clock
	if clock == nil {
		clock = adapters.SystemClock{}
	}
	extractor := collaborators.Extractor
	if extractor == nil {
		extractor = adapters.NewGeminiReceiptExtractor(cfg.AI.GeminiAPIKey, cfg.AI.Model)
	}

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	profileRepo := persistence.NewProfileRepository(db)

	// Create category use cases
	suggestionEngine := category.NewSuggestionEngine(nil)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	suggestCategoryUseCase := category.NewSuggestCategoryUseCase(categoryRepo, suggestionEngine)
	seedCategoriesUseCase := category.NewSeedCategoriesUseCase(categoryRepo)

	// Create progression use cases
	awardXPUseCase := progression.NewAwardXPUseCase(profileRepo, strategy, catalog, publisher)
	onboardProfileUseCase := progression.NewOnboardProfileUseCase(profileRepo, strategy)
	getProgressUseCase := progression.NewGetProgressUseCase(profileRepo, strategy)

	// Create goal use cases
	contributeToGoalUseCase := goal.NewContributeToGoalUseCase(goalRepo, publisher)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	cancelGoalUseCase := goal.NewCancelGoalUseCase(goalRepo)
	forecastGoalUseCase := goal.NewForecastGoalUseCase(goalRepo, transactionRepo, clock)
	goalOverviewUseCase := goal.NewGoalOverviewUseCase(goalRepo, transactionRepo, clock)
	retryContributionUseCase := goal.NewRetryContributionUseCase(transactionRepo, contributeToGoalUseCase)

	// Create transaction use cases
	categoryResolver := transaction.NewCategoryResolver(categoryRepo, suggestionEngine)
	commitTransactionUseCase := transaction.NewCommitTransactionUseCase(
		transactionRepo,
		goalRepo,
		categoryResolver,
		contributeToGoalUseCase,
		awardXPUseCase,
	)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, categoryRepo)
	getTotalsUseCase := transaction.NewGetTotalsUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryResolver)
	removeTransactionUseCase := transaction.NewRemoveTransactionUseCase(transactionRepo)

	// Create receipt use cases
	previewReceiptUseCase := receipt.NewPreviewReceiptUseCase(extractor, cfg.AI.MaxUploadBytes, cfg.AI.Timeout)
	importReceiptUseCase := receipt.NewImportReceiptUseCase(commitTransactionUseCase, categoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, collaborators.EventHealth)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		suggestCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		commitTransactionUseCase,
		listTransactionsUseCase,
		getTotalsUseCase,
		updateTransactionUseCase,
		removeTransactionUseCase,
		retryContributionUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		getGoalUseCase,
		cancelGoalUseCase,
		contributeToGoalUseCase,
		forecastGoalUseCase,
		goalOverviewUseCase,
	)

	profileController := controller.NewProfileController(
		onboardProfileUseCase,
		getProgressUseCase,
		awardXPUseCase,
	)

	receiptController := controller.NewReceiptController(
		previewReceiptUseCase,
		importReceiptUseCase,
		cfg.AI.MaxUploadBytes,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var receiptRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		receiptRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		receiptRateLimiter = middleware.NewRateLimiterWithConfig(cfg.AI.RateLimit, cfg.AI.RateLimitWindow)
	}

	// Create router
	r := router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		goalController,
		profileController,
		receiptController,
		receiptRateLimiter,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		SeedCategories: seedCategoriesUseCase,
	}, nil
}
