// Package ledger folds the transaction ledger into income, expense and category totals.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
)

// DefaultTopCategories is the number of categories listed in a summary when none is requested.
const DefaultTopCategories = 5

// GetSummaryInput represents the input for getting a ledger summary.
// Without dates the current calendar month is used.
type GetSummaryInput struct {
	ProfileID     uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time // Inclusive
	TopCategories int
}

// CategorySpend is a ranked category with its name resolved.
type CategorySpend struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
}

// GetSummaryOutput represents the output of getting a ledger summary.
type GetSummaryOutput struct {
	StartDate        time.Time
	EndDate          time.Time
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetIncome        decimal.Decimal
	SavingsRate      float64
	EMIInFlight      decimal.Decimal
	TransactionCount int
	TopCategories    []CategorySpend
}

// GetSummaryUseCase handles building the dashboard summary of a profile.
type GetSummaryUseCase struct {
	ledgerRepo    adapter.LedgerRepository
	recurringRepo adapter.RecurringRepository
	categoryRepo  adapter.CategoryRepository
	clock         adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	ledgerRepo adapter.LedgerRepository,
	recurringRepo adapter.RecurringRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		ledgerRepo:    ledgerRepo,
		recurringRepo: recurringRepo,
		categoryRepo:  categoryRepo,
		clock:         clock,
	}
}

// Execute aggregates the profile's ledger over the requested window.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	window, err := uc.resolveWindow(input)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.ledgerRepo.Snapshot(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	recurring, err := uc.recurringRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring payments: %w", err)
	}

	categories, err := uc.categoryRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	limit := input.TopCategories
	if limit <= 0 {
		limit = DefaultTopCategories
	}

	totals := Aggregate(transactions, InWindow(window))
	index := entity.NewCategoryIndex(categories)

	ranked := RankCategories(totals.ByCategory, limit)
	top := make([]CategorySpend, len(ranked))
	for i, r := range ranked {
		top[i] = CategorySpend{
			CategoryID:   r.CategoryID,
			CategoryName: index.Name(r.CategoryID, "Uncategorized"),
			Amount:       r.Amount,
		}
	}

	return &GetSummaryOutput{
		StartDate:        window.Start,
		EndDate:          window.LastDay(),
		TotalIncome:      totals.TotalIncome,
		TotalExpense:     totals.TotalExpense,
		NetIncome:        totals.NetIncome,
		SavingsRate:      SavingsRate(totals),
		EMIInFlight:      TotalEMIInFlight(recurring),
		TransactionCount: totals.TransactionCount,
		TopCategories:    top,
	}, nil
}

// resolveWindow turns the optional inclusive dates into a half-open window.
func (uc *GetSummaryUseCase) resolveWindow(input GetSummaryInput) (valueobject.Window, error) {
	if input.StartDate == nil && input.EndDate == nil {
		return valueobject.CalendarMonth(uc.clock.Now()), nil
	}

	if input.StartDate == nil || input.EndDate == nil {
		return valueobject.Window{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"start_date and end_date must be provided together",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if input.EndDate.Before(*input.StartDate) {
		return valueobject.Window{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"end_date must be after start_date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	return valueobject.Window{
		Start: valueobject.StartOfDay(*input.StartDate),
		End:   valueobject.StartOfDay(*input.EndDate).AddDate(0, 0, 1),
	}, nil
}
