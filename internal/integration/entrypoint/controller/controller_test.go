package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/advice"
	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/application/usecase/budget"
	"github.com/finance-tracker/analytics/internal/application/usecase/category"
	"github.com/finance-tracker/analytics/internal/application/usecase/goal"
	"github.com/finance-tracker/analytics/internal/application/usecase/health"
	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/application/usecase/recurring"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
	"github.com/finance-tracker/analytics/internal/application/usecase/transaction"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/analytics/internal/integration/persistence"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
)

type stubProvider struct{}

func (stubProvider) ID() string        { return "stub" }
func (stubProvider) IsAvailable() bool { return true }
func (stubProvider) Advise(context.Context, *adapter.AdviceContext) ([]*entity.AdviceItem, error) {
	return []*entity.AdviceItem{
		{Title: "Trim dining out", Content: "Food spend is up.", Priority: entity.AdvicePriorityHigh, Confidence: 0.9},
		{Title: "Automate savings", Content: "Move 10% on payday.", Priority: entity.AdvicePriorityLow, Confidence: 0.5},
	}, nil
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	clock := adapter.FixedClock{At: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
	ledgerRepo := persistence.NewTransactionRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	recurringRepo := persistence.NewRecurringRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	healthRepo := persistence.NewHealthScoreRepository(db)
	adviceRepo := persistence.NewAdviceRepository(db)
	loader := snapshot.NewLoader(ledgerRepo, budgetRepo, recurringRepo, goalRepo, categoryRepo)

	tracker := advice.NewInMemoryRefreshTracker()
	aggregator := advice.NewAggregator([]adapter.AdvisoryProvider{stubProvider{}}, nil, clock, advice.AggregatorConfig{})

	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
	)
	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(ledgerRepo),
		transaction.NewCreateTransactionUseCase(ledgerRepo, categoryRepo),
		transaction.NewReassignCategoryUseCase(ledgerRepo, categoryRepo),
	)
	budgetController := controller.NewBudgetController(
		budget.NewListBudgetsUseCase(budgetRepo),
		budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo),
		budget.NewUpdateBudgetUseCase(budgetRepo),
		budget.NewDisableBudgetUseCase(budgetRepo),
		budget.NewReplaceBudgetsUseCase(budgetRepo),
		budget.NewGetStatusUseCase(budgetRepo, ledgerRepo, categoryRepo, clock),
	)
	summaryController := controller.NewSummaryController(
		ledger.NewGetSummaryUseCase(ledgerRepo, recurringRepo, categoryRepo, clock),
	)
	healthScoreController := controller.NewHealthScoreController(
		health.NewCalculateHealthScoreUseCase(loader, healthRepo, clock, health.NewScorer(nil), nil, "en", time.Second),
		health.NewGetHealthScoreUseCase(healthRepo),
	)
	adviceController := controller.NewAdviceController(
		advice.NewRefreshAdviceUseCase(loader, adviceRepo, aggregator, advice.NewInMemorySequenceIssuer(), tracker, clock, "en"),
		advice.NewListAdviceUseCase(adviceRepo, tracker),
		advice.NewMarkReadUseCase(adviceRepo),
		advice.NewDismissUseCase(adviceRepo, clock),
	)

	recurringController := controller.NewRecurringController(
		recurring.NewListRecurringUseCase(recurringRepo),
		recurring.NewGetRecurringUseCase(recurringRepo),
		recurring.NewCreateRecurringUseCase(recurringRepo),
		amortization.NewGetEMISummaryUseCase(recurringRepo, clock, amortization.NewTracker(7)),
	)
	goalController := controller.NewGoalController(
		goal.NewListGoalsUseCase(goalRepo),
		goal.NewGetGoalUseCase(goalRepo),
		goal.NewCreateGoalUseCase(goalRepo),
	)

	r := gin.New()
	api := r.Group("/api/v1", middleware.RequireProfile())
	api.GET("/categories", categoryController.List)
	api.POST("/categories", categoryController.Create)
	api.GET("/transactions", transactionController.List)
	api.POST("/transactions", transactionController.Create)
	api.PATCH("/transactions/:id/category", transactionController.Reassign)
	api.POST("/budgets", budgetController.Create)
	api.GET("/budgets/status", budgetController.Status)
	api.GET("/summary", summaryController.Get)
	api.POST("/recurring", recurringController.Create)
	api.GET("/recurring/:id", recurringController.Get)
	api.POST("/goals", goalController.Create)
	api.GET("/goals/:id", goalController.Get)
	api.GET("/health-score", healthScoreController.Get)
	api.POST("/health-score", healthScoreController.Calculate)
	api.GET("/advice", adviceController.List)
	api.POST("/advice/refresh", adviceController.Refresh)
	api.POST("/advice/:id/read", adviceController.MarkRead)
	api.POST("/advice/:id/dismiss", adviceController.Dismiss)
	return r
}

type client struct {
	t       *testing.T
	router  *gin.Engine
	profile string
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.profile != "" {
		req.Header.Set(middleware.ProfileIDHeader, c.profile)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			c.t.Fatalf("failed to decode %s %s response: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w.Code
}

func TestLedgerEndpoints(t *testing.T) {
	c := &client{t: t, router: newTestServer(t), profile: uuid.New().String()}

	var food dto.CategoryResponse
	if code := c.do(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Food", "type": "expense"}, &food); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	var salary dto.CategoryResponse
	c.do(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Salary", "type": "income"}, &salary)

	var dup dto.ErrorResponse
	if code := c.do(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Food", "type": "expense"}, &dup); code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate category, got %d", code)
	}

	requests := []map[string]any{
		{"date": "2024-03-01", "amount": "85000", "type": "income", "category_id": salary.ID, "description": "salary"},
		{"date": "2024-03-05", "amount": "12500", "type": "expense", "category_id": food.ID, "description": "groceries"},
	}
	for _, req := range requests {
		if code := c.do(http.MethodPost, "/api/v1/transactions", req, nil); code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", code)
		}
	}

	t.Run("unknown category", func(t *testing.T) {
		var errResp dto.ErrorResponse
		code := c.do(http.MethodPost, "/api/v1/transactions", map[string]any{
			"date": "2024-03-05", "amount": "10", "type": "expense", "category_id": uuid.New().String(),
		}, &errResp)
		if code != http.StatusNotFound || errResp.Code != string(domainerror.ErrCodeTransactionCategoryNotFound) {
			t.Errorf("expected 404 %s, got %d %s", domainerror.ErrCodeTransactionCategoryNotFound, code, errResp.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		var errResp dto.ErrorResponse
		code := c.do(http.MethodPost, "/api/v1/transactions", map[string]any{"type": "transfer"}, &errResp)
		if code != http.StatusBadRequest || errResp.Code != string(domainerror.ErrCodeInvalidBody) {
			t.Errorf("expected 400 %s, got %d %s", domainerror.ErrCodeInvalidBody, code, errResp.Code)
		}
	})

	t.Run("summary", func(t *testing.T) {
		var summary dto.SummaryResponse
		if code := c.do(http.MethodGet, "/api/v1/summary", nil, &summary); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if summary.TotalIncome != "85000.00" || summary.TotalExpense != "12500.00" || summary.NetIncome != "72500.00" {
			t.Errorf("unexpected totals %+v", summary)
		}
		if summary.SavingsRate < 85.29 || summary.SavingsRate > 85.30 {
			t.Errorf("expected savings rate ~85.29, got %f", summary.SavingsRate)
		}
	})

	t.Run("list and reassign", func(t *testing.T) {
		var list dto.TransactionListResponse
		c.do(http.MethodGet, "/api/v1/transactions?type=expense", nil, &list)
		if len(list.Transactions) != 1 {
			t.Fatalf("expected one expense, got %d", len(list.Transactions))
		}

		var moved dto.TransactionResponse
		code := c.do(http.MethodPatch, "/api/v1/transactions/"+list.Transactions[0].ID+"/category",
			map[string]any{"category_id": salary.ID}, &moved)
		if code != http.StatusOK || moved.CategoryID != salary.ID {
			t.Errorf("expected reassignment, got %d %+v", code, moved)
		}
	})

	t.Run("budget status", func(t *testing.T) {
		body := map[string]any{"category_id": food.ID, "amount": "15000"}
		if code := c.do(http.MethodPost, "/api/v1/budgets", body, nil); code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", code)
		}
		if code := c.do(http.MethodPost, "/api/v1/budgets", body, nil); code != http.StatusConflict {
			t.Errorf("expected 409 for a second active budget, got %d", code)
		}

		var status dto.BudgetStatusListResponse
		c.do(http.MethodGet, "/api/v1/budgets/status", nil, &status)
		if len(status.Statuses) != 1 {
			t.Fatalf("expected one status, got %d", len(status.Statuses))
		}
		if status.Statuses[0].IsOverBudget {
			t.Error("expected budget within limit")
		}
	})
}

func TestHealthScoreEndpoints(t *testing.T) {
	c := &client{t: t, router: newTestServer(t), profile: uuid.New().String()}

	var errResp dto.ErrorResponse
	if code := c.do(http.MethodGet, "/api/v1/health-score", nil, &errResp); code != http.StatusNotFound {
		t.Fatalf("expected 404 before first calculation, got %d", code)
	}

	var score dto.HealthScoreResponse
	if code := c.do(http.MethodPost, "/api/v1/health-score", nil, &score); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(score.Breakdown) != len(entity.HealthCategories) {
		t.Errorf("expected a full breakdown, got %v", score.Breakdown)
	}

	var stored dto.HealthScoreResponse
	if code := c.do(http.MethodGet, "/api/v1/health-score", nil, &stored); code != http.StatusOK || stored.Overall != score.Overall {
		t.Errorf("expected stored score %f, got %d %f", score.Overall, code, stored.Overall)
	}
}

func TestAdviceEndpoints(t *testing.T) {
	c := &client{t: t, router: newTestServer(t), profile: uuid.New().String()}

	var refreshed dto.RefreshAdviceResponse
	if code := c.do(http.MethodPost, "/api/v1/advice/refresh", nil, &refreshed); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if refreshed.Sequence != 1 || len(refreshed.Items) != 2 {
		t.Fatalf("unexpected refresh %+v", refreshed)
	}
	if refreshed.Items[0].Priority != "high" {
		t.Errorf("expected high priority first, got %s", refreshed.Items[0].Priority)
	}

	first := refreshed.Items[0].ID

	var read dto.AdviceResponse
	if code := c.do(http.MethodPost, "/api/v1/advice/"+first+"/read", nil, &read); code != http.StatusOK || !read.IsRead {
		t.Errorf("expected read item, got %d %+v", code, read)
	}

	var feed dto.AdviceListResponse
	c.do(http.MethodGet, "/api/v1/advice", nil, &feed)
	if feed.UnreadCount != 1 || len(feed.Items) != 2 {
		t.Errorf("expected 2 items with 1 unread, got %+v", feed)
	}

	if code := c.do(http.MethodPost, "/api/v1/advice/"+first+"/dismiss", nil, nil); code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", code)
	}

	var errResp dto.ErrorResponse
	if code := c.do(http.MethodPost, "/api/v1/advice/"+first+"/dismiss", nil, &errResp); code != http.StatusConflict {
		t.Errorf("expected 409 for a second dismissal, got %d", code)
	}
	if code := c.do(http.MethodPost, "/api/v1/advice/"+uuid.New().String()+"/read", nil, &errResp); code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown advice, got %d", code)
	}
	errResp = dto.ErrorResponse{}
	if code := c.do(http.MethodPost, "/api/v1/advice/not-a-uuid/read", nil, &errResp); code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", code)
	}
	if errResp.Code != string(domainerror.ErrCodeInvalidAdviceID) {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidAdviceID, errResp.Code)
	}

	c.do(http.MethodGet, "/api/v1/advice", nil, &feed)
	if len(feed.Items) != 1 {
		t.Errorf("expected dismissed item hidden, got %d items", len(feed.Items))
	}
}

func TestGoalAndRecurringLookup(t *testing.T) {
	router := newTestServer(t)
	owner := &client{t: t, router: router, profile: uuid.New().String()}
	stranger := &client{t: t, router: router, profile: uuid.New().String()}

	var created dto.GoalResponse
	if code := owner.do(http.MethodPost, "/api/v1/goals", map[string]any{
		"name": "Emergency fund", "target_amount": "1000", "current_amount": "250",
	}, &created); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	var payment dto.RecurringResponse
	if code := owner.do(http.MethodPost, "/api/v1/recurring", map[string]any{
		"description": "Rent", "amount": "1200", "frequency": "monthly", "next_due": "2024-04-01",
	}, &payment); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	tests := []struct {
		name       string
		c          *client
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "own goal", c: owner, path: "/api/v1/goals/" + created.ID, wantStatus: http.StatusOK},
		{name: "unknown goal", c: owner, path: "/api/v1/goals/" + uuid.New().String(),
			wantStatus: http.StatusNotFound, wantCode: string(domainerror.ErrCodeGoalNotFound)},
		{name: "goal of another profile", c: stranger, path: "/api/v1/goals/" + created.ID,
			wantStatus: http.StatusNotFound, wantCode: string(domainerror.ErrCodeGoalNotFound)},
		{name: "own recurring payment", c: owner, path: "/api/v1/recurring/" + payment.ID, wantStatus: http.StatusOK},
		{name: "unknown recurring payment", c: owner, path: "/api/v1/recurring/" + uuid.New().String(),
			wantStatus: http.StatusNotFound, wantCode: string(domainerror.ErrCodeRecurringNotFound)},
		{name: "recurring payment of another profile", c: stranger, path: "/api/v1/recurring/" + payment.ID,
			wantStatus: http.StatusNotFound, wantCode: string(domainerror.ErrCodeRecurringNotFound)},
		{name: "malformed goal id", c: owner, path: "/api/v1/goals/nope",
			wantStatus: http.StatusBadRequest, wantCode: string(domainerror.ErrCodeInvalidQuery)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			code := tt.c.do(http.MethodGet, tt.path, nil, &errResp)
			if code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, code)
			}
			if errResp.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, errResp.Code)
			}
		})
	}

	var fetched dto.GoalResponse
	owner.do(http.MethodGet, "/api/v1/goals/"+created.ID, nil, &fetched)
	if fetched.CompletionPercent != 25 {
		t.Errorf("expected 25%% completion, got %f", fetched.CompletionPercent)
	}
}

func TestMissingProfile(t *testing.T) {
	c := &client{t: t, router: newTestServer(t)}

	var errResp dto.ErrorResponse
	if code := c.do(http.MethodGet, "/api/v1/categories", nil, &errResp); code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
	if errResp.Code != string(domainerror.ErrCodeMissingProfile) {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeMissingProfile, errResp.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name       string
		db         func() bool
		redis      func() bool
		wantStatus int
		wantRedis  string
	}{
		{name: "all up", db: func() bool { return true }, redis: func() bool { return true }, wantStatus: http.StatusOK, wantRedis: "connected"},
		{name: "redis disabled", db: func() bool { return true }, wantStatus: http.StatusOK, wantRedis: "disabled"},
		{name: "database down", db: func() bool { return false }, wantStatus: http.StatusServiceUnavailable, wantRedis: "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", controller.NewHealthController(tt.db, tt.redis).Check)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			var resp controller.HealthResponse
			_ = json.Unmarshal(w.Body.Bytes(), &resp)
			if w.Code != tt.wantStatus || resp.Redis != tt.wantRedis {
				t.Errorf("expected %d/%s, got %d/%s", tt.wantStatus, tt.wantRedis, w.Code, resp.Redis)
			}
		})
	}
}
