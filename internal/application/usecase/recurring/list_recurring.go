// Package recurring contains recurring payment use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// ListRecurringInput represents the input for listing recurring payments.
type ListRecurringInput struct {
	ProfileID uuid.UUID
	EMIOnly   bool
}

// ListRecurringOutput represents the output of listing recurring payments.
type ListRecurringOutput struct {
	Recurring []*entity.RecurringTransaction
}

// ListRecurringUseCase lists the recurring payments of a profile.
type ListRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewListRecurringUseCase creates a new ListRecurringUseCase instance.
func NewListRecurringUseCase(recurringRepo adapter.RecurringRepository) *ListRecurringUseCase {
	return &ListRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute performs the listing.
func (uc *ListRecurringUseCase) Execute(ctx context.Context, input ListRecurringInput) (*ListRecurringOutput, error) {
	items, err := uc.recurringRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}

	if input.EMIOnly {
		filtered := make([]*entity.RecurringTransaction, 0, len(items))
		for _, r := range items {
			if r.IsEMI {
				filtered = append(filtered, r)
			}
		}
		items = filtered
	}

	return &ListRecurringOutput{Recurring: items}, nil
}
