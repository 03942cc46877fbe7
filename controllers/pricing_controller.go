package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// PricingController exposes resale price calculation over HTTP.
type PricingController struct {
	pricing PricingAPI
	logger  *zap.Logger
}

// NewPricingController creates a PricingController.
func NewPricingController(pricing PricingAPI, logger *zap.Logger) *PricingController {
	return &PricingController{pricing: pricing, logger: logger}
}

// GetConfig returns both multiplier tables.
func (ctl *PricingController) GetConfig(c *gin.Context) {
	cfg, err := ctl.pricing.GetConfig(c.Request.Context())
	if err != nil {
		ctl.logger.Error("failed to load pricing config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pricing config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Calculate returns the suggested resale price for one item.
func (ctl *PricingController) Calculate(c *gin.Context) {
	var req models.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctl.pricing.Calculate(c.Request.Context(), req)
	if err != nil {
		ctl.logger.Error("price calculation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate price"})
		return
	}

	c.JSON(http.StatusOK, result)
}
