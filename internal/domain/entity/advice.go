// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AdvicePriority represents how urgent a piece of advice is.
type AdvicePriority string

const (
	AdvicePriorityHigh   AdvicePriority = "high"
	AdvicePriorityMedium AdvicePriority = "medium"
	AdvicePriorityLow    AdvicePriority = "low"
)

// Rank returns the sort rank of the priority (high first). Unknown priorities sort last.
func (p AdvicePriority) Rank() int {
	switch p {
	case AdvicePriorityHigh:
		return 0
	case AdvicePriorityMedium:
		return 1
	case AdvicePriorityLow:
		return 2
	}
	return 3
}

// IsValid reports whether the priority is known.
func (p AdvicePriority) IsValid() bool {
	return p.Rank() < 3
}

// ErrAdviceAlreadyDismissed is returned when mutating an advice item that was dismissed.
var ErrAdviceAlreadyDismissed = errors.New("advice item was dismissed")

// AdviceItem is a single recommendation produced by an advisory provider.
// Read and dismiss are the only mutations after creation.
type AdviceItem struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	ProviderID  string
	Title       string
	Content     string
	Category    string
	Priority    AdvicePriority
	Confidence  float64 // 0.0-1.0
	ActionItems []string
	Tags        []string
	IsRead      bool
	IsFallback  bool // Produced from the provider's static fallback set
	DismissedAt *time.Time
	CreatedAt   time.Time
}

// IsDismissed reports whether the item has left the active set.
func (a *AdviceItem) IsDismissed() bool {
	return a.DismissedAt != nil
}

// MarkRead transitions unread -> read. Marking an already read item is a no-op.
func (a *AdviceItem) MarkRead() error {
	if a.IsDismissed() {
		return ErrAdviceAlreadyDismissed
	}
	a.IsRead = true
	return nil
}

// Dismiss removes the item from the active set. Dismissal is terminal.
func (a *AdviceItem) Dismiss(at time.Time) error {
	if a.IsDismissed() {
		return ErrAdviceAlreadyDismissed
	}
	a.DismissedAt = &at
	return nil
}
