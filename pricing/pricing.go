// Package pricing computes suggested resale prices from condition and
// category multipliers.
package pricing

import (
	"math"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// Fallback multipliers used when a condition or category has no configured
// entry.
const (
	FallbackConditionMultiplier = 0.5
	FallbackCategoryMultiplier  = 1.0
)

// DefaultConditionMultipliers seed the condition_multipliers table.
var DefaultConditionMultipliers = map[string]float64{
	"new":      0.7,
	"like_new": 0.6,
	"good":     0.5,
	"fair":     0.35,
}

// DefaultCategoryMultipliers seed the category_multipliers table.
var DefaultCategoryMultipliers = map[string]float64{
	"Outerwear":   1.1,
	"Jackets":     1.05,
	"Dresses":     1.0,
	"Shoes":       0.95,
	"Knitwear":    0.9,
	"Bottoms":     0.85,
	"Tops":        0.8,
	"Activewear":  0.8,
	"Accessories": 0.75,
}

// Calculate applies both multipliers to the original price. The resale
// price rounds to two decimals and the discount percentage to one.
func Calculate(req models.CalculatePriceRequest, cfg models.PricingConfig) models.CalculatedPrice {
	conditionMult := FallbackConditionMultiplier
	for _, c := range cfg.ConditionMultipliers {
		if c.Condition == req.Condition {
			conditionMult = c.Multiplier
			break
		}
	}

	categoryMult := FallbackCategoryMultiplier
	for _, c := range cfg.CategoryMultipliers {
		if c.Category == req.Category {
			categoryMult = c.Multiplier
			break
		}
	}

	resale := math.Round(req.OriginalPrice*conditionMult*categoryMult*100) / 100
	discount := math.Round((req.OriginalPrice-resale)/req.OriginalPrice*100*10) / 10

	return models.CalculatedPrice{
		OriginalPrice:       req.OriginalPrice,
		ResalePrice:         resale,
		ConditionMultiplier: conditionMult,
		CategoryMultiplier:  categoryMult,
		DiscountPercentage:  discount,
	}
}

// DefaultConfig builds a PricingConfig from the built-in multiplier tables.
func DefaultConfig() models.PricingConfig {
	cfg := models.PricingConfig{}
	for condition, mult := range DefaultConditionMultipliers {
		cfg.ConditionMultipliers = append(cfg.ConditionMultipliers, models.ConditionMultiplier{
			Condition:  condition,
			Multiplier: mult,
		})
	}
	for category, mult := range DefaultCategoryMultipliers {
		cfg.CategoryMultipliers = append(cfg.CategoryMultipliers, models.CategoryMultiplier{
			Category:   category,
			Multiplier: mult,
		})
	}
	return cfg
}
