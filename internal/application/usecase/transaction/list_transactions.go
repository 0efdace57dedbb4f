// Package transaction contains ledger write use cases: appending entries and reassigning categories.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

const (
	// DefaultListLimit is the default number of transactions returned.
	DefaultListLimit = 100
	// MaxListLimit is the maximum number of transactions returned.
	MaxListLimit = 1000
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	ProfileID  uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Limit      int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles listing ledger entries.
type ListTransactionsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledgerRepo adapter.LedgerRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute lists transactions matching the input filters, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"end_date must be after start_date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	transactions, err := uc.ledgerRepo.FindByFilter(ctx, adapter.TransactionFilter{
		ProfileID:  input.ProfileID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CategoryID: input.CategoryID,
		Type:       input.Type,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Transactions: transactions}, nil
}
