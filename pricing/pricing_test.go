package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odhiambo-ed/ReUbuntu/models"
	"github.com/odhiambo-ed/ReUbuntu/pricing"
)

func configWith(condition string, condMult float64, category string, catMult float64) models.PricingConfig {
	return models.PricingConfig{
		ConditionMultipliers: []models.ConditionMultiplier{{Condition: condition, Multiplier: condMult}},
		CategoryMultipliers:  []models.CategoryMultiplier{{Category: category, Multiplier: catMult}},
	}
}

func TestCalculate_RoundsToTwoDecimals(t *testing.T) {
	// 99.99 * 0.5 * 0.8 = 39.996, which rounds (not truncates) to 40.00.
	result := pricing.Calculate(models.CalculatePriceRequest{
		OriginalPrice: 99.99,
		Condition:     "good",
		Category:      "Tops",
	}, configWith("good", 0.5, "Tops", 0.8))

	assert.Equal(t, 40.00, result.ResalePrice)
	assert.Equal(t, 0.5, result.ConditionMultiplier)
	assert.Equal(t, 0.8, result.CategoryMultiplier)
	assert.Equal(t, 60.0, result.DiscountPercentage)
}

func TestCalculate_FallbackMultipliers(t *testing.T) {
	result := pricing.Calculate(models.CalculatePriceRequest{
		OriginalPrice: 200,
		Condition:     "unheard_of",
		Category:      "Unknown",
	}, models.PricingConfig{})

	assert.Equal(t, pricing.FallbackConditionMultiplier, result.ConditionMultiplier)
	assert.Equal(t, pricing.FallbackCategoryMultiplier, result.CategoryMultiplier)
	assert.Equal(t, 100.0, result.ResalePrice)
	assert.Equal(t, 50.0, result.DiscountPercentage)
}

func TestCalculate_DiscountRoundsToOneDecimal(t *testing.T) {
	result := pricing.Calculate(models.CalculatePriceRequest{
		OriginalPrice: 150,
		Condition:     "new",
		Category:      "Dresses",
	}, configWith("new", 0.7, "Dresses", 1.0))

	assert.Equal(t, 105.0, result.ResalePrice)
	assert.Equal(t, 30.0, result.DiscountPercentage)
}

func TestDefaultConfig_CoversVocabularies(t *testing.T) {
	cfg := pricing.DefaultConfig()

	assert.Len(t, cfg.ConditionMultipliers, 4)
	assert.Len(t, cfg.CategoryMultipliers, 9)

	result := pricing.Calculate(models.CalculatePriceRequest{
		OriginalPrice: 100,
		Condition:     "fair",
		Category:      "Accessories",
	}, cfg)
	assert.Equal(t, 26.25, result.ResalePrice)
}
