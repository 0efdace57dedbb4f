package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
)

// adviceRepository implements the adapter.AdviceRepository interface.
type adviceRepository struct {
	db *gorm.DB
}

// NewAdviceRepository creates a new advice repository instance.
func NewAdviceRepository(db *gorm.DB) adapter.AdviceRepository {
	return &adviceRepository{
		db: db,
	}
}

// ReplaceIfNewer replaces the feed when sequence is greater than the stored one.
// The feed row is locked for the duration of the transaction so concurrent refreshes serialize.
func (r *adviceRepository) ReplaceIfNewer(ctx context.Context, profileID uuid.UUID, sequence int64, items []*entity.AdviceItem) (bool, error) {
	replaced := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Make sure the row exists so it can be locked.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.AdviceFeedModel{ProfileID: profileID, Sequence: 0, UpdatedAt: time.Now().UTC()}).Error; err != nil {
			return err
		}

		var feed model.AdviceFeedModel
		if err := lockForUpdate(tx).Where("profile_id = ?", profileID).First(&feed).Error; err != nil {
			return err
		}
		if sequence <= feed.Sequence {
			return nil
		}

		if err := tx.Where("profile_id = ?", profileID).Delete(&model.AdviceItemModel{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			models := make([]*model.AdviceItemModel, len(items))
			for i, item := range items {
				models[i] = model.AdviceItemFromEntity(item, i)
			}
			if err := tx.Create(&models).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.AdviceFeedModel{}).
			Where("profile_id = ?", profileID).
			Updates(map[string]any{"sequence": sequence, "updated_at": time.Now().UTC()}).Error; err != nil {
			return err
		}

		replaced = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return replaced, nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// FindActive retrieves the non-dismissed items of a profile in feed order.
func (r *adviceRepository) FindActive(ctx context.Context, profileID uuid.UUID) ([]*entity.AdviceItem, error) {
	var itemModels []model.AdviceItemModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND dismissed_at IS NULL", profileID).
		Order("position ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.AdviceItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToEntity()
	}
	return items, nil
}

// FindByID retrieves a single item of the profile.
func (r *adviceRepository) FindByID(ctx context.Context, profileID, id uuid.UUID) (*entity.AdviceItem, error) {
	var itemModel model.AdviceItemModel
	result := r.db.WithContext(ctx).Where("id = ? AND profile_id = ?", id, profileID).First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAdviceNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntity(), nil
}

// Update persists the read and dismissed state of an item.
func (r *adviceRepository) Update(ctx context.Context, item *entity.AdviceItem) error {
	result := r.db.WithContext(ctx).
		Model(&model.AdviceItemModel{}).
		Where("id = ? AND profile_id = ?", item.ID, item.ProfileID).
		Updates(map[string]any{
			"is_read":      item.IsRead,
			"dismissed_at": item.DismissedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAdviceNotFound
	}
	return nil
}
