package analytics

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/application/usecase/forecast"
	"github.com/finance-tracker/analytics/internal/application/usecase/health"
	"github.com/finance-tracker/analytics/internal/application/usecase/snapshot"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

var now = time.Date(2024, time.April, 18, 12, 0, 0, 0, time.UTC)

func newComputer() *Computer {
	return NewComputer(
		forecast.NewEngine(valueobject.DefaultForecastConfig()),
		health.NewScorer(valueobject.DefaultHealthWeights()),
		amortization.NewTracker(amortization.DefaultDueSoonDays),
	)
}

func fixture() *snapshot.Snapshot {
	profileID := uuid.New()
	food := entity.NewCategory(profileID, "Food", "#FF0000", "", entity.CategoryTypeExpense)
	salary := entity.NewCategory(profileID, "Salary", "#00FF00", "", entity.CategoryTypeIncome)

	var txs []*entity.Transaction
	for m := 0; m < 4; m++ {
		date := now.AddDate(0, -m, 0)
		txs = append(txs,
			entity.NewTransaction(profileID, entity.TransactionTypeIncome, decimal.NewFromInt(85000), salary.ID, date, "salary", nil),
			entity.NewTransaction(profileID, entity.TransactionTypeExpense, decimal.NewFromInt(12500), food.ID, date, "groceries", nil),
		)
	}

	loan := entity.NewRecurringTransaction(profileID, "car loan", decimal.NewFromInt(1000), nil,
		entity.FrequencyMonthly, now.AddDate(0, 0, 2), &entity.EmiDetail{
			LoanAmount:         decimal.NewFromInt(12000),
			Principal:          decimal.NewFromInt(900),
			Interest:           decimal.NewFromInt(100),
			CurrentInstallment: 4,
			TotalInstallments:  12,
		})

	target := decimal.NewFromInt(10000)
	goal := entity.NewSavingGoal(profileID, "Trip", target, decimal.NewFromInt(5000), nil)

	return &snapshot.Snapshot{
		ProfileID:    profileID,
		Transactions: txs,
		Budgets: []*entity.Budget{
			entity.NewBudget(profileID, food.ID, decimal.NewFromInt(15000), entity.BudgetPeriodMonthly, 80),
		},
		Recurring:  []*entity.RecurringTransaction{loan},
		Goals:      []*entity.SavingGoal{goal},
		Categories: entity.NewCategoryIndex([]*entity.Category{food, salary}),
	}
}

func TestComputer_Recompute(t *testing.T) {
	s := fixture()
	state := newComputer().Recompute(s, now)

	if !state.MonthTotals.TotalIncome.Equal(decimal.NewFromInt(85000)) {
		t.Errorf("expected month income 85000, got %s", state.MonthTotals.TotalIncome)
	}
	if !state.EMIInFlight.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected EMI in flight 1000, got %s", state.EMIInFlight)
	}
	if len(state.BudgetStatuses) != 1 || state.BudgetStatuses[0].Percentage < 83 {
		t.Errorf("expected one near-limit budget status, got %+v", state.BudgetStatuses)
	}
	if state.Loans.TotalEMIs != 1 || state.Loans.DueSoonCount != 1 {
		t.Errorf("expected one due-soon loan, got %+v", state.Loans)
	}
	for _, period := range ForecastPeriods {
		if len(state.Predictions[period]) != 1 {
			t.Errorf("expected one %s prediction, got %d", period, len(state.Predictions[period]))
		}
	}
	if state.Health == nil || state.Health.ProfileID != s.ProfileID {
		t.Fatalf("expected health score for profile, got %+v", state.Health)
	}
	if len(state.Violations) != 0 {
		t.Errorf("expected no violations, got %v", state.Violations)
	}
}

func TestComputer_RecomputeIsDeterministic(t *testing.T) {
	s := fixture()
	c := newComputer()

	first := c.Recompute(s, now)
	second := c.Recompute(s, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical derived state for the same snapshot and instant")
	}
}

func TestComputer_CollectsViolations(t *testing.T) {
	s := fixture()
	s.Budgets = append(s.Budgets, entity.NewBudget(s.ProfileID, uuid.New(), decimal.NewFromInt(10), entity.BudgetPeriodMonthly, 80))
	s.Recurring[0].EMI.Principal = decimal.NewFromInt(10)

	state := newComputer().Recompute(s, now)

	if len(state.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(state.Violations))
	}
	if len(state.BudgetStatuses) != 1 {
		t.Errorf("expected the valid budget to survive, got %d statuses", len(state.BudgetStatuses))
	}
	if state.Loans.TotalEMIs != 0 {
		t.Errorf("expected the inconsistent loan to be skipped")
	}
	for _, v := range state.Violations {
		if !v.IsInputInvariantViolation() {
			t.Errorf("expected input invariant violation, got %v", v)
		}
	}
}

// Recompute use case wiring

type staticLedger struct {
	txs []*entity.Transaction
}

func (staticLedger) Append(context.Context, *entity.Transaction) error { return nil }
func (staticLedger) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}
func (l staticLedger) Snapshot(context.Context, uuid.UUID) ([]*entity.Transaction, error) {
	return l.txs, nil
}
func (l staticLedger) FindByFilter(context.Context, adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return l.txs, nil
}
func (staticLedger) UpdateCategory(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (staticLedger) ListProfiles(context.Context) ([]uuid.UUID, error)          { return nil, nil }

type staticBudgets struct {
	budgets []*entity.Budget
}

func (staticBudgets) Create(context.Context, *entity.Budget) error { return nil }
func (staticBudgets) FindByID(context.Context, uuid.UUID) (*entity.Budget, error) {
	return nil, domainerror.ErrBudgetNotFound
}
func (b staticBudgets) FindByProfile(context.Context, uuid.UUID) ([]*entity.Budget, error) {
	return b.budgets, nil
}
func (b staticBudgets) FindActiveByProfile(context.Context, uuid.UUID) ([]*entity.Budget, error) {
	return b.budgets, nil
}
func (staticBudgets) ExistsActiveByCategory(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (staticBudgets) Update(context.Context, *entity.Budget) error                  { return nil }
func (staticBudgets) ReplaceAll(context.Context, uuid.UUID, []*entity.Budget) error { return nil }

type staticRecurring struct {
	items []*entity.RecurringTransaction
}

func (staticRecurring) Create(context.Context, *entity.RecurringTransaction) error { return nil }
func (staticRecurring) FindByID(context.Context, uuid.UUID) (*entity.RecurringTransaction, error) {
	return nil, domainerror.ErrRecurringNotFound
}
func (r staticRecurring) FindByProfile(context.Context, uuid.UUID) ([]*entity.RecurringTransaction, error) {
	return r.items, nil
}

type staticGoals struct {
	goals []*entity.SavingGoal
}

func (staticGoals) Create(context.Context, *entity.SavingGoal) error { return nil }
func (staticGoals) FindByID(context.Context, uuid.UUID) (*entity.SavingGoal, error) {
	return nil, domainerror.ErrGoalNotFound
}
func (g staticGoals) FindByProfile(context.Context, uuid.UUID) ([]*entity.SavingGoal, error) {
	return g.goals, nil
}

type staticCategories struct {
	categories []*entity.Category
}

func (staticCategories) Create(context.Context, *entity.Category) error { return nil }
func (staticCategories) FindByID(context.Context, uuid.UUID) (*entity.Category, error) {
	return nil, domainerror.ErrCategoryNotFound
}
func (c staticCategories) FindByProfile(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return c.categories, nil
}
func (staticCategories) ExistsByNameAndProfile(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

type recordingPredictions struct {
	stored map[entity.PredictionPeriod][]*entity.Prediction
	err    error
}

func (r *recordingPredictions) ReplaceForPeriod(_ context.Context, _ uuid.UUID, period entity.PredictionPeriod, predictions []*entity.Prediction) error {
	if r.err != nil {
		return r.err
	}
	if r.stored == nil {
		r.stored = make(map[entity.PredictionPeriod][]*entity.Prediction)
	}
	r.stored[period] = predictions
	return nil
}

func (r *recordingPredictions) FindByPeriod(_ context.Context, _ uuid.UUID, period entity.PredictionPeriod) ([]*entity.Prediction, error) {
	return r.stored[period], nil
}

type recordingHealth struct {
	score *entity.HealthScore
}

func (r *recordingHealth) Replace(_ context.Context, score *entity.HealthScore) error {
	r.score = score
	return nil
}

func (r *recordingHealth) FindByProfile(context.Context, uuid.UUID) (*entity.HealthScore, error) {
	return r.score, nil
}

type upperElaborator struct{}

func (upperElaborator) IsAvailable() bool { return true }
func (upperElaborator) Elaborate(_ context.Context, texts []string, _ string) ([]string, error) {
	out := make([]string, len(texts))
	for i := range texts {
		out[i] = "elaborated"
	}
	return out, nil
}

func loaderFor(s *snapshot.Snapshot) *snapshot.Loader {
	categories := make([]*entity.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		categories = append(categories, c)
	}
	return snapshot.NewLoader(
		staticLedger{txs: s.Transactions},
		staticBudgets{budgets: s.Budgets},
		staticRecurring{items: s.Recurring},
		staticGoals{goals: s.Goals},
		staticCategories{categories: categories},
	)
}

func TestRecomputeUseCase_Execute(t *testing.T) {
	s := fixture()
	predictions := &recordingPredictions{}
	scores := &recordingHealth{}

	uc := NewRecomputeUseCase(loaderFor(s), predictions, scores, adapter.FixedClock{At: now},
		newComputer(), upperElaborator{}, "en", time.Second)

	out, err := uc.Execute(context.Background(), RecomputeInput{ProfileID: s.ProfileID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, period := range ForecastPeriods {
		if len(predictions.stored[period]) != 1 {
			t.Errorf("expected stored %s predictions", period)
		}
	}
	if scores.score != out.State.Health {
		t.Error("expected the computed score to be stored")
	}
	for _, r := range scores.score.Recommendations {
		if r != "elaborated" {
			t.Errorf("expected elaborated recommendation, got %q", r)
		}
	}
}

func TestRecomputeUseCase_StoreFailure(t *testing.T) {
	s := fixture()
	storeErr := errors.New("disk full")
	scores := &recordingHealth{}

	uc := NewRecomputeUseCase(loaderFor(s), &recordingPredictions{err: storeErr}, scores,
		adapter.FixedClock{At: now}, newComputer(), nil, "en", time.Second)

	_, err := uc.Execute(context.Background(), RecomputeInput{ProfileID: s.ProfileID})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if scores.score != nil {
		t.Error("expected health score not to be stored after a failed prediction write")
	}
}
