package dto

import (
	"time"

	"github.com/finance-tracker/analytics/internal/application/usecase/advice"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// RefreshAdviceRequest represents the optional body of an advice refresh.
type RefreshAdviceRequest struct {
	Locale string `json:"locale,omitempty" binding:"omitempty,max=16"`
}

// AdviceResponse represents a single advice item in API responses.
type AdviceResponse struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Confidence  float64   `json:"confidence"`
	ActionItems []string  `json:"action_items"`
	Tags        []string  `json:"tags"`
	IsRead      bool      `json:"is_read"`
	IsFallback  bool      `json:"is_fallback"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdviceListResponse represents the active advice feed.
type AdviceListResponse struct {
	Items        []AdviceResponse    `json:"items"`
	UnreadCount  int                 `json:"unread_count"`
	IsRefreshing bool                `json:"is_refreshing"`
	Failures     []ViolationResponse `json:"failures"`
}

// RefreshAdviceResponse represents the result of an advice refresh.
type RefreshAdviceResponse struct {
	Sequence int64               `json:"sequence"`
	Items    []AdviceResponse    `json:"items"`
	Failures []ViolationResponse `json:"failures"`
}

// ToAdviceResponse converts a domain AdviceItem entity to an AdviceResponse DTO.
func ToAdviceResponse(a *entity.AdviceItem) AdviceResponse {
	return AdviceResponse{
		ID:          a.ID.String(),
		ProviderID:  a.ProviderID,
		Title:       a.Title,
		Content:     a.Content,
		Category:    a.Category,
		Priority:    string(a.Priority),
		Confidence:  a.Confidence,
		ActionItems: nonNil(a.ActionItems),
		Tags:        nonNil(a.Tags),
		IsRead:      a.IsRead,
		IsFallback:  a.IsFallback,
		CreatedAt:   a.CreatedAt,
	}
}

func toAdviceResponses(items []*entity.AdviceItem) []AdviceResponse {
	responses := make([]AdviceResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToAdviceResponse(item))
	}
	return responses
}

// ToAdviceListResponse converts the list output to an AdviceListResponse DTO.
func ToAdviceListResponse(output *advice.ListAdviceOutput) AdviceListResponse {
	return AdviceListResponse{
		Items:        toAdviceResponses(output.Items),
		UnreadCount:  output.UnreadCount,
		IsRefreshing: output.IsRefreshing,
		Failures:     ToViolationResponses(output.Failures),
	}
}

// ToRefreshAdviceResponse converts the refresh output to a RefreshAdviceResponse DTO.
func ToRefreshAdviceResponse(output *advice.RefreshAdviceOutput) RefreshAdviceResponse {
	return RefreshAdviceResponse{
		Sequence: output.Sequence,
		Items:    toAdviceResponses(output.Items),
		Failures: ToViolationResponses(output.Failures),
	}
}
