package models

import "time"

// ConditionMultiplier scales an item's original price by its wear condition.
type ConditionMultiplier struct {
	Condition   string    `json:"condition" gorm:"primaryKey"`
	Multiplier  float64   `json:"multiplier"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryMultiplier scales an item's original price by its category.
type CategoryMultiplier struct {
	Category    string    `json:"category" gorm:"primaryKey"`
	Multiplier  float64   `json:"multiplier"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PricingConfig bundles both multiplier tables for clients that render the
// pricing rules.
type PricingConfig struct {
	ConditionMultipliers []ConditionMultiplier `json:"condition_multipliers"`
	CategoryMultipliers  []CategoryMultiplier  `json:"category_multipliers"`
}

// CalculatePriceRequest is the payload for a resale price calculation.
type CalculatePriceRequest struct {
	OriginalPrice float64 `json:"original_price" binding:"required,gt=0"`
	Condition     string  `json:"condition" binding:"required"`
	Category      string  `json:"category" binding:"required"`
}

// CalculatedPrice is the result of a resale price calculation.
type CalculatedPrice struct {
	OriginalPrice       float64 `json:"original_price"`
	ResalePrice         float64 `json:"resale_price"`
	ConditionMultiplier float64 `json:"condition_multiplier"`
	CategoryMultiplier  float64 `json:"category_multiplier"`
	DiscountPercentage  float64 `json:"discount_percentage"`
}
