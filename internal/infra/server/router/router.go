// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/coach/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	goalController        *controller.GoalController
	profileController     *controller.ProfileController
	receiptController     *controller.ReceiptController
	receiptRateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	goalController *controller.GoalController,
	profileController *controller.ProfileController,
	receiptController *controller.ReceiptController,
	receiptRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		transactionController: transactionController,
		goalController:        goalController,
		profileController:     profileController,
		receiptController:     receiptController,
		receiptRateLimiter:    receiptRateLimiter,
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

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route requires the
// caller identity header.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.RequireUser())
	{
		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.GET("/suggest", r.categoryController.Suggest)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/totals", r.transactionController.Totals)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/:id/contribution", r.transactionController.RetryContribution)
			}
		}

		if r.goalController != nil {
			goals := v1.Group("/goals")
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/overview", r.goalController.Overview)
				goals.GET("/:id", r.goalController.Get)
				goals.DELETE("/:id", r.goalController.Cancel)
				goals.POST("/:id/contributions", r.goalController.Contribute)
				goals.GET("/:id/forecast", r.goalController.Forecast)
			}
		}

		if r.profileController != nil {
			profile := v1.Group("/profile")
			{
				profile.POST("", r.profileController.Onboard)
				profile.GET("", r.profileController.Progress)
				profile.POST("/awards", r.profileController.Award)
			}
		}

		if r.receiptController != nil {
			receipts := v1.Group("/receipts")
			if r.receiptRateLimiter != nil {
				receipts.Use(r.receiptRateLimiter.Middleware())
			}
			{
				receipts.POST("/preview", r.receiptController.Preview)
				receipts.POST("/import", r.receiptController.Import)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
