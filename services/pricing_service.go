package services

import (
	"context"
	"fmt"

	"github.com/odhiambo-ed/ReUbuntu/models"
	"github.com/odhiambo-ed/ReUbuntu/pricing"
	"github.com/odhiambo-ed/ReUbuntu/repository"
)

// PricingService computes suggested resale prices from the configured
// multiplier tables.
type PricingService struct {
	repo repository.PricingRepository
}

// NewPricingService creates a PricingService.
func NewPricingService(repo repository.PricingRepository) *PricingService {
	return &PricingService{repo: repo}
}

// GetConfig loads both multiplier tables.
func (s *PricingService) GetConfig(ctx context.Context) (models.PricingConfig, error) {
	conditions, err := s.repo.GetConditionMultipliers(ctx)
	if err != nil {
		return models.PricingConfig{}, fmt.Errorf("failed to load condition multipliers: %w", err)
	}
	categories, err := s.repo.GetCategoryMultipliers(ctx)
	if err != nil {
		return models.PricingConfig{}, fmt.Errorf("failed to load category multipliers: %w", err)
	}
	return models.PricingConfig{
		ConditionMultipliers: conditions,
		CategoryMultipliers:  categories,
	}, nil
}

// Calculate prices one item against the current multiplier config.
func (s *PricingService) Calculate(ctx context.Context, req models.CalculatePriceRequest) (models.CalculatedPrice, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return models.CalculatedPrice{}, err
	}
	return pricing.Calculate(req, cfg), nil
}
