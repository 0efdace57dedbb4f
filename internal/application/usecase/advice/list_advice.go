// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// ListAdviceInput represents the input for listing the active feed.
type ListAdviceInput struct {
	ProfileID  uuid.UUID
	UnreadOnly bool
}

// ListAdviceOutput represents the active feed.
type ListAdviceOutput struct {
	Items        []*entity.AdviceItem
	UnreadCount  int
	IsRefreshing bool
	Failures     []*domainerror.AnalyticsError
}

// ListAdviceUseCase lists non-dismissed advice in ranked order.
type ListAdviceUseCase struct {
	adviceRepo adapter.AdviceRepository
	tracker    RefreshTracker
}

// NewListAdviceUseCase creates a new ListAdviceUseCase instance.
func NewListAdviceUseCase(adviceRepo adapter.AdviceRepository, tracker RefreshTracker) *ListAdviceUseCase {
	return &ListAdviceUseCase{
		adviceRepo: adviceRepo,
		tracker:    tracker,
	}
}

// Execute performs the listing.
func (uc *ListAdviceUseCase) Execute(ctx context.Context, input ListAdviceInput) (*ListAdviceOutput, error) {
	items, err := uc.adviceRepo.FindActive(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advice: %w", err)
	}

	Rank(items)

	unread := 0
	filtered := make([]*entity.AdviceItem, 0, len(items))
	for _, item := range items {
		if !item.IsRead {
			unread++
		}
		if input.UnreadOnly && item.IsRead {
			continue
		}
		filtered = append(filtered, item)
	}

	return &ListAdviceOutput{
		Items:        filtered,
		UnreadCount:  unread,
		IsRefreshing: uc.tracker.IsRefreshing(input.ProfileID),
		Failures:     uc.tracker.GetFailures(input.ProfileID),
	}, nil
}
