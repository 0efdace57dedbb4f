package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// AdviceItemModel represents the advice_items table in the database.
type AdviceItemModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position    int            `gorm:"not null"` // Rank within the feed
	ProviderID  string         `gorm:"type:varchar(50);not null"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Content     string         `gorm:"type:text;not null"`
	Category    string         `gorm:"type:varchar(50)"`
	Priority    string         `gorm:"type:varchar(10);not null"`
	Confidence  float64        `gorm:"not null"`
	ActionItems pq.StringArray `gorm:"type:text[]"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	IsRead      bool           `gorm:"not null;default:false"`
	IsFallback  bool           `gorm:"not null;default:false"`
	DismissedAt *time.Time
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the AdviceItemModel.
func (AdviceItemModel) TableName() string {
	return "advice_items"
}

// ToEntity converts an AdviceItemModel to a domain AdviceItem entity.
func (m *AdviceItemModel) ToEntity() *entity.AdviceItem {
	return &entity.AdviceItem{
		ID:          m.ID,
		ProfileID:   m.ProfileID,
		ProviderID:  m.ProviderID,
		Title:       m.Title,
		Content:     m.Content,
		Category:    m.Category,
		Priority:    entity.AdvicePriority(m.Priority),
		Confidence:  m.Confidence,
		ActionItems: []string(m.ActionItems),
		Tags:        []string(m.Tags),
		IsRead:      m.IsRead,
		IsFallback:  m.IsFallback,
		DismissedAt: m.DismissedAt,
		CreatedAt:   m.CreatedAt,
	}
}

// AdviceItemFromEntity creates an AdviceItemModel from a domain AdviceItem entity.
func AdviceItemFromEntity(a *entity.AdviceItem, position int) *AdviceItemModel {
	return &AdviceItemModel{
		ID:          a.ID,
		ProfileID:   a.ProfileID,
		Position:    position,
		ProviderID:  a.ProviderID,
		Title:       a.Title,
		Content:     a.Content,
		Category:    a.Category,
		Priority:    string(a.Priority),
		Confidence:  a.Confidence,
		ActionItems: pq.StringArray(a.ActionItems),
		Tags:        pq.StringArray(a.Tags),
		IsRead:      a.IsRead,
		IsFallback:  a.IsFallback,
		DismissedAt: a.DismissedAt,
		CreatedAt:   a.CreatedAt,
	}
}

// AdviceFeedModel represents the advice_feeds table: the sequence of the refresh that last replaced a feed.
type AdviceFeedModel struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence  int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the AdviceFeedModel.
func (AdviceFeedModel) TableName() string {
	return "advice_feeds"
}
