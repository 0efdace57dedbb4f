// Package transaction contains ledger write use cases: appending entries and reassigning categories.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	ProfileID   uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
	EMI         *entity.EmiDetail
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles appending a transaction to the ledger.
type CreateTransactionUseCase struct {
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute validates and appends the transaction.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if input.EMI != nil {
		if err := input.EMI.Validate(input.Amount); err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionEmi,
				err.Error(),
				domainerror.ErrInvalidEmiDetail,
			)
		}
	}

	if err := ensureCategory(ctx, uc.categoryRepo, input.ProfileID, input.CategoryID); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.ProfileID,
		input.Type,
		input.Amount,
		input.CategoryID,
		input.Date,
		input.Description,
		input.EMI,
	)

	if err := uc.ledgerRepo.Append(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	slog.Debug("Transaction appended",
		"profileID", input.ProfileID.String(),
		"transactionID", transaction.ID.String(),
		"type", string(transaction.Type),
	)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// ensureCategory checks that the category exists and belongs to the profile.
func ensureCategory(ctx context.Context, repo adapter.CategoryRepository, profileID, categoryID uuid.UUID) error {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if category.ProfileID != profileID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}

	return nil
}
