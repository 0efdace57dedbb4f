// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/middleware"
)

// Controllers groups every controller served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Budget      *controller.BudgetController
	Recurring   *controller.RecurringController
	Goal        *controller.GoalController
	Summary     *controller.SummaryController
	Forecast    *controller.ForecastController
	HealthScore *controller.HealthScoreController
	Advice      *controller.AdviceController
	Analytics   *controller.AnalyticsController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	controllers        Controllers
	refreshRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(controllers Controllers, refreshRateLimiter *middleware.RateLimiter) *Router {
	return &Router{
		controllers:        controllers,
		refreshRateLimiter: refreshRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
}

func (r *Router) setupAPIRoutes() {
	c := r.controllers

	v1 := r.engine.Group("/api/v1")
	v1.Use(middleware.RequireProfile())

	if c.Category != nil {
		categories := v1.Group("/categories")
		{
			categories.GET("", c.Category.List)
			categories.POST("", c.Category.Create)
		}
	}

	if c.Transaction != nil {
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", c.Transaction.List)
			transactions.POST("", c.Transaction.Create)
			transactions.PATCH("/:id/category", c.Transaction.Reassign)
		}
	}

	if c.Budget != nil {
		budgets := v1.Group("/budgets")
		{
			budgets.GET("", c.Budget.List)
			budgets.POST("", c.Budget.Create)
			budgets.PUT("", c.Budget.Replace)
			budgets.GET("/status", c.Budget.Status)
			budgets.PATCH("/:id", c.Budget.Update)
			budgets.DELETE("/:id", c.Budget.Disable)
		}
	}

	if c.Recurring != nil {
		recurring := v1.Group("/recurring")
		{
			recurring.GET("", c.Recurring.List)
			recurring.POST("", c.Recurring.Create)
			recurring.GET("/:id", c.Recurring.Get)
		}
		v1.GET("/emi/summary", c.Recurring.EMISummary)
	}

	if c.Goal != nil {
		goals := v1.Group("/goals")
		{
			goals.GET("", c.Goal.List)
			goals.POST("", c.Goal.Create)
			goals.GET("/:id", c.Goal.Get)
		}
	}

	if c.Summary != nil {
		v1.GET("/summary", c.Summary.Get)
	}

	if c.Forecast != nil {
		predictions := v1.Group("/predictions")
		{
			predictions.GET("", c.Forecast.Get)
			predictions.POST("", c.Forecast.Generate)
		}
	}

	if c.HealthScore != nil {
		healthScore := v1.Group("/health-score")
		{
			healthScore.GET("", c.HealthScore.Get)
			healthScore.POST("", c.HealthScore.Calculate)
		}
	}

	if c.Advice != nil {
		adviceRoutes := v1.Group("/advice")
		{
			adviceRoutes.GET("", c.Advice.List)
			if r.refreshRateLimiter != nil {
				adviceRoutes.POST("/refresh", r.refreshRateLimiter.Middleware(), c.Advice.Refresh)
			} else {
				adviceRoutes.POST("/refresh", c.Advice.Refresh)
			}
			adviceRoutes.POST("/:id/read", c.Advice.MarkRead)
			adviceRoutes.POST("/:id/dismiss", c.Advice.Dismiss)
		}
	}

	if c.Analytics != nil {
		v1.POST("/analytics/recompute", c.Analytics.Recompute)
	}
}
