package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// PricingRepository defines read access to the pricing multiplier tables.
type PricingRepository interface {
	GetConditionMultipliers(ctx context.Context) ([]models.ConditionMultiplier, error)
	GetCategoryMultipliers(ctx context.Context) ([]models.CategoryMultiplier, error)
}

// GormPricingRepository implements PricingRepository using GORM.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a new GormPricingRepository.
func NewGormPricingRepository(db *gorm.DB) PricingRepository {
	return &GormPricingRepository{db: db}
}

func (r *GormPricingRepository) GetConditionMultipliers(ctx context.Context) ([]models.ConditionMultiplier, error) {
	var multipliers []models.ConditionMultiplier
	if err := r.db.WithContext(ctx).
		Order("multiplier DESC").
		Find(&multipliers).Error; err != nil {
		return nil, err
	}
	return multipliers, nil
}

func (r *GormPricingRepository) GetCategoryMultipliers(ctx context.Context) ([]models.CategoryMultiplier, error) {
	var multipliers []models.CategoryMultiplier
	if err := r.db.WithContext(ctx).
		Order("multiplier DESC").
		Find(&multipliers).Error; err != nil {
		return nil, err
	}
	return multipliers, nil
}
