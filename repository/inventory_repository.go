package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// InventoryRepository defines data-access operations for inventory items.
type InventoryRepository interface {
	UpsertBatch(ctx context.Context, items []models.InventoryItem) (int64, error)
	FindByUser(ctx context.Context, userID string, page, limit int) ([]models.InventoryItem, int64, error)
}

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository.
func NewGormInventoryRepository(db *gorm.DB) InventoryRepository {
	return &GormInventoryRepository{db: db}
}

// UpsertBatch writes one batch of items, updating rather than skipping rows
// that collide on (user_id, merchant_id, sku). It returns the number of
// rows the store reports as written.
func (r *GormInventoryRepository) UpsertBatch(ctx context.Context, items []models.InventoryItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "merchant_id"}, {Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"upload_id", "title", "brand", "category", "condition",
			"original_price", "currency", "quantity", "status", "updated_at",
		}),
	}).Create(&items)

	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *GormInventoryRepository) FindByUser(ctx context.Context, userID string, page, limit int) ([]models.InventoryItem, int64, error) {
	var items []models.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
