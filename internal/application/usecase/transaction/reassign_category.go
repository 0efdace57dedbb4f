// Package transaction contains ledger write use cases: appending entries and reassigning categories.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// ReassignCategoryInput represents the input for moving a transaction to another category.
type ReassignCategoryInput struct {
	ProfileID     uuid.UUID
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
}

// ReassignCategoryOutput represents the output of a category reassignment.
type ReassignCategoryOutput struct {
	Transaction *entity.Transaction
}

// ReassignCategoryUseCase handles the only mutation allowed on a transaction.
type ReassignCategoryUseCase struct {
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
}

// NewReassignCategoryUseCase creates a new ReassignCategoryUseCase instance.
func NewReassignCategoryUseCase(
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
) *ReassignCategoryUseCase {
	return &ReassignCategoryUseCase{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute reassigns the transaction's category.
func (uc *ReassignCategoryUseCase) Execute(ctx context.Context, input ReassignCategoryInput) (*ReassignCategoryOutput, error) {
	transaction, err := uc.ledgerRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.ProfileID != input.ProfileID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if err := ensureCategory(ctx, uc.categoryRepo, input.ProfileID, input.CategoryID); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.UpdateCategory(ctx, transaction.ID, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to reassign category: %w", err)
	}
	transaction.Reassign(input.CategoryID)

	return &ReassignCategoryOutput{Transaction: transaction}, nil
}
