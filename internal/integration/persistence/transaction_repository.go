// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/domain/valueobject"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.LedgerRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new ledger repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.LedgerRepository {
	return &transactionRepository{
		db: db,
	}
}

// Append creates a new transaction in the database.
func (r *transactionRepository) Append(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Snapshot retrieves every transaction of a profile ordered by date, then ID.
func (r *transactionRepository) Snapshot(ctx context.Context, profileID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("date ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactions(transactionModels), nil
}

// FindByFilter retrieves transactions based on filter criteria, newest first.
// EndDate is inclusive of the whole day.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("profile_id = ?", filter.ProfileID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", valueobject.StartOfDay(*filter.EndDate).AddDate(0, 0, 1))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date DESC, id DESC").Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return toTransactions(transactionModels), nil
}

// UpdateCategory reassigns a transaction to another category.
func (r *transactionRepository) UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"category_id": categoryID,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// ListProfiles returns every profile that owns at least one transaction.
func (r *transactionRepository) ListProfiles(ctx context.Context) ([]uuid.UUID, error) {
	var profileIDs []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Distinct("profile_id").
		Order("profile_id").
		Pluck("profile_id", &profileIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return profileIDs, nil
}

func toTransactions(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
