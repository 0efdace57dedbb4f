// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// AdviceActionInput identifies one advice item of a profile.
type AdviceActionInput struct {
	ProfileID uuid.UUID
	AdviceID  uuid.UUID
}

// MarkReadUseCase acknowledges an advice item. Marking twice is a no-op.
type MarkReadUseCase struct {
	adviceRepo adapter.AdviceRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(adviceRepo adapter.AdviceRepository) *MarkReadUseCase {
	return &MarkReadUseCase{adviceRepo: adviceRepo}
}

// Execute marks the item read.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input AdviceActionInput) (*entity.AdviceItem, error) {
	item, err := findItem(ctx, uc.adviceRepo, input)
	if err != nil {
		return nil, err
	}

	if item.IsDismissed() {
		return nil, dismissedError()
	}
	if item.IsRead {
		return item, nil
	}

	if err := item.MarkRead(); err != nil {
		return nil, dismissedError()
	}

	if err := uc.adviceRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to mark advice read: %w", err)
	}

	return item, nil
}

// DismissUseCase removes an advice item from the active set for good.
type DismissUseCase struct {
	adviceRepo adapter.AdviceRepository
	clock      adapter.Clock
}

// NewDismissUseCase creates a new DismissUseCase instance.
func NewDismissUseCase(adviceRepo adapter.AdviceRepository, clock adapter.Clock) *DismissUseCase {
	return &DismissUseCase{adviceRepo: adviceRepo, clock: clock}
}

// Execute dismisses the item.
func (uc *DismissUseCase) Execute(ctx context.Context, input AdviceActionInput) error {
	item, err := findItem(ctx, uc.adviceRepo, input)
	if err != nil {
		return err
	}

	if err := item.Dismiss(uc.clock.Now()); err != nil {
		return dismissedError()
	}

	if err := uc.adviceRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to dismiss advice: %w", err)
	}

	return nil
}

func findItem(ctx context.Context, repo adapter.AdviceRepository, input AdviceActionInput) (*entity.AdviceItem, error) {
	item, err := repo.FindByID(ctx, input.ProfileID, input.AdviceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAdviceNotFound) {
			return nil, domainerror.NewAdviceError(
				domainerror.ErrCodeAdviceNotFound,
				"advice not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find advice: %w", err)
	}
	return item, nil
}

func dismissedError() error {
	return domainerror.NewAdviceError(
		domainerror.ErrCodeAdviceDismissed,
		"advice was dismissed",
		domainerror.ErrAdviceDismissed,
	)
}
