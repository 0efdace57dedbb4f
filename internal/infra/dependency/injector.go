// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/analytics/config"
	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/advice"
	"github.com/finance-tracker/analytics/internal/application/usecase/alert"
	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
	"github.com/finance-tracker/analytics/internal/application/usecase/budget"
	"github.com/finance-tracker/analytics/internal/application/usecase/category"
	"github.com/finance-tracker/analytics/internal/application/usecase/forecast"
	"github.com/finance-tracker/analytics/internal/application/usecase/goal"
	"github.com/finance-tracker/analytics/internal/application/usecase/health"
	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/application/usecase/recurring"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
	"github.com/finance-tracker/analytics/internal/application/usecase/transaction"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
	"github.com/finance-tracker/analytics/internal/infra/cache"
	"github.com/finance-tracker/analytics/internal/infra/scheduler"
	"github.com/finance-tracker/analytics/internal/infra/server/router"
	"github.com/finance-tracker/analytics/internal/integration/adapters"
	"github.com/finance-tracker/analytics/internal/integration/email"
	"github.com/finance-tracker/analytics/internal/integration/email/templates"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/analytics/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Router    *router.Router
	Scheduler *scheduler.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case refresh sequences are issued in memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) (*Injector, error) {
	return NewInjectorWithClock(cfg, db, redisClient, dbHealthChecker, adapter.SystemClock{})
}

// NewInjectorWithClock wires the application against the given clock.
func NewInjectorWithClock(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	dbHealthChecker func() bool,
	clock adapter.Clock,
) (*Injector, error) {
	// Create repositories
	ledgerRepo := persistence.NewTransactionRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	recurringRepo := persistence.NewRecurringRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	predictionRepo := persistence.NewPredictionRepository(db)
	healthRepo := persistence.NewHealthScoreRepository(db)
	adviceRepo := persistence.NewAdviceRepository(db)

	loader := snapshot.NewLoader(ledgerRepo, budgetRepo, recurringRepo, goalRepo, categoryRepo)

	// Create engines
	engine := forecast.NewEngine(valueobject.ForecastConfig{
		HistoryWindows:     cfg.Analytics.ForecastHistoryWindows,
		MaterialityMargin:  cfg.Analytics.ForecastMargin,
		TrendAdjustment:    cfg.Analytics.ForecastAdjustment,
		HighConfidenceCV:   cfg.Analytics.HighConfidenceCV,
		MediumConfidenceCV: cfg.Analytics.MediumConfidenceCV,
	}.Normalize())
	scorer := health.NewScorer(valueobject.DefaultHealthWeights())
	tracker := amortization.NewTracker(cfg.Analytics.DueSoonDays)
	computer := analytics.NewComputer(engine, scorer, tracker)

	// Create advisory providers
	gemini := adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	openai := adapters.NewOpenAIService(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIBaseURL, cfg.AI.OpenAIModel,
		&http.Client{Timeout: cfg.AI.ProviderTimeout + 5*time.Second})
	aggregator := advice.NewAggregator(
		[]adapter.AdvisoryProvider{gemini, openai},
		advice.DefaultFallbacks(),
		clock,
		advice.AggregatorConfig{ProviderTimeout: cfg.AI.ProviderTimeout, Dedup: cfg.AI.Dedup},
	)

	var issuer adapter.SequenceIssuer
	var redisHealthChecker func() bool
	if redisClient != nil {
		issuer = adapters.NewRedisSequenceIssuer(redisClient)
		redisHealthChecker = func() bool { return cache.HealthCheck(context.Background(), redisClient) }
		slog.Info("Advice refresh sequences issued by Redis")
	} else {
		issuer = advice.NewInMemorySequenceIssuer()
		slog.Info("Advice refresh sequences issued in memory")
	}
	refreshTracker := advice.NewInMemoryRefreshTracker()

	// Create alert digest sender
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	var sender adapter.EmailSender
	if cfg.Alerts.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Alerts.ResendAPIKey, cfg.Alerts.FromName, cfg.Alerts.FromEmail)
	} else {
		sender = email.NewRecordingSender()
		slog.Warn("RESEND_API_KEY not set, alert digests are recorded but not delivered")
	}

	// Create use cases
	recomputeUseCase := analytics.NewRecomputeUseCase(
		loader, predictionRepo, healthRepo, clock, computer, gemini, cfg.AI.DefaultLocale, cfg.AI.ElaborateTimeout,
	)
	sendDigestUseCase := alert.NewSendDigestUseCase(sender, renderer, cfg.Alerts.Recipient)

	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealthChecker, redisHealthChecker),
		Category: controller.NewCategoryController(
			category.NewListCategoriesUseCase(categoryRepo),
			category.NewCreateCategoryUseCase(categoryRepo),
		),
		Transaction: controller.NewTransactionController(
			transaction.NewListTransactionsUseCase(ledgerRepo),
			transaction.NewCreateTransactionUseCase(ledgerRepo, categoryRepo),
			transaction.NewReassignCategoryUseCase(ledgerRepo, categoryRepo),
		),
		Budget: controller.NewBudgetController(
			budget.NewListBudgetsUseCase(budgetRepo),
			budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo),
			budget.NewUpdateBudgetUseCase(budgetRepo),
			budget.NewDisableBudgetUseCase(budgetRepo),
			budget.NewReplaceBudgetsUseCase(budgetRepo),
			budget.NewGetStatusUseCase(budgetRepo, ledgerRepo, categoryRepo, clock),
		),
		Recurring: controller.NewRecurringController(
			recurring.NewListRecurringUseCase(recurringRepo),
			recurring.NewGetRecurringUseCase(recurringRepo),
			recurring.NewCreateRecurringUseCase(recurringRepo),
			amortization.NewGetEMISummaryUseCase(recurringRepo, clock, tracker),
		),
		Goal: controller.NewGoalController(
			goal.NewListGoalsUseCase(goalRepo),
			goal.NewGetGoalUseCase(goalRepo),
			goal.NewCreateGoalUseCase(goalRepo),
		),
		Summary: controller.NewSummaryController(
			ledger.NewGetSummaryUseCase(ledgerRepo, recurringRepo, categoryRepo, clock),
		),
		Forecast: controller.NewForecastController(
			forecast.NewGenerateForecastUseCase(ledgerRepo, predictionRepo, clock, engine),
			forecast.NewGetPredictionsUseCase(predictionRepo),
		),
		HealthScore: controller.NewHealthScoreController(
			health.NewCalculateHealthScoreUseCase(loader, healthRepo, clock, scorer, gemini, cfg.AI.DefaultLocale, cfg.AI.ElaborateTimeout),
			health.NewGetHealthScoreUseCase(healthRepo),
		),
		Advice: controller.NewAdviceController(
			advice.NewRefreshAdviceUseCase(loader, adviceRepo, aggregator, issuer, refreshTracker, clock, cfg.AI.DefaultLocale),
			advice.NewListAdviceUseCase(adviceRepo, refreshTracker),
			advice.NewMarkReadUseCase(adviceRepo),
			advice.NewDismissUseCase(adviceRepo, clock),
		),
		Analytics: controller.NewAnalyticsController(recomputeUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	refreshLimit := cfg.AI.RefreshPerMin
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		refreshLimit = 1000
	}
	refreshRateLimiter := middleware.NewRateLimiterWithConfig(refreshLimit, time.Minute)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(ledgerRepo, recomputeUseCase, sendDigestUseCase, scheduler.Config{
			Spec:       cfg.Scheduler.Spec,
			RunTimeout: cfg.AI.ProviderTimeout + cfg.AI.ElaborateTimeout,
		})
	}

	return &Injector{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Router:    router.NewRouter(controllers, refreshRateLimiter),
		Scheduler: sched,
	}, nil
}
