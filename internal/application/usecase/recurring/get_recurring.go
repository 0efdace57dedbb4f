package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// GetRecurringInput represents the input for loading one recurring payment.
type GetRecurringInput struct {
	ProfileID   uuid.UUID
	RecurringID uuid.UUID
}

// GetRecurringUseCase loads one recurring payment of a profile.
type GetRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewGetRecurringUseCase creates a new GetRecurringUseCase instance.
func NewGetRecurringUseCase(recurringRepo adapter.RecurringRepository) *GetRecurringUseCase {
	return &GetRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute loads the recurring payment. Payments of other profiles are reported as not found.
func (uc *GetRecurringUseCase) Execute(ctx context.Context, input GetRecurringInput) (*entity.RecurringTransaction, error) {
	item, err := uc.recurringRepo.FindByID(ctx, input.RecurringID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return nil, domainerror.NewRecurringError(domainerror.ErrCodeRecurringNotFound, "recurring payment not found", err)
		}
		return nil, fmt.Errorf("failed to find recurring payment: %w", err)
	}

	if item.ProfileID != input.ProfileID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringNotFound,
			"recurring payment not found",
			domainerror.ErrRecurringNotFound,
		)
	}

	return item, nil
}
