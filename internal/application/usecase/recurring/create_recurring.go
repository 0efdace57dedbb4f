// Package recurring contains recurring payment use cases.
package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for recurring payment descriptions.
const MaxDescriptionLength = 255

// CreateRecurringInput represents the input for recurring payment creation.
type CreateRecurringInput struct {
	ProfileID   uuid.UUID
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Frequency   entity.Frequency
	NextDue     time.Time
	EMI         *entity.EmiDetail
}

// CreateRecurringOutput represents the output of recurring payment creation.
type CreateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// CreateRecurringUseCase handles recurring payment creation.
type CreateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewCreateRecurringUseCase creates a new CreateRecurringUseCase instance.
func NewCreateRecurringUseCase(recurringRepo adapter.RecurringRepository) *CreateRecurringUseCase {
	return &CreateRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute performs the creation.
func (uc *CreateRecurringUseCase) Execute(ctx context.Context, input CreateRecurringInput) (*CreateRecurringOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" || len(description) > MaxDescriptionLength {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			fmt.Sprintf("description is required and must not exceed %d characters", MaxDescriptionLength),
			nil,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must not be negative",
			domainerror.ErrInvalidRecurringAmount,
		)
	}

	if !input.Frequency.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			domainerror.ErrInvalidFrequency.Error(),
			domainerror.ErrInvalidFrequency,
		)
	}

	if input.NextDue.IsZero() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingNextDue,
			"next due date is required",
			domainerror.ErrMissingNextDue,
		)
	}

	if input.EMI != nil {
		if err := input.EMI.Validate(input.Amount); err != nil {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidRecurringEmi,
				err.Error(),
				domainerror.ErrInvalidEmiDetail,
			)
		}
	}

	recurring := entity.NewRecurringTransaction(
		input.ProfileID,
		description,
		input.Amount,
		input.CategoryID,
		input.Frequency,
		input.NextDue,
		input.EMI,
	)

	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring payment: %w", err)
	}

	return &CreateRecurringOutput{Recurring: recurring}, nil
}
