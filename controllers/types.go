package controllers

import (
	"context"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// IngestionAPI is the service surface the upload controller depends on.
type IngestionAPI interface {
	Run(ctx context.Context, uploadID int64, userID string) (*models.IngestionSummary, error)
	GetUpload(ctx context.Context, uploadID int64) (*models.Upload, error)
	ListErrors(ctx context.Context, uploadID int64, page, limit int) ([]models.UploadError, int64, error)
}

// PricingAPI is the service surface the pricing controller depends on.
type PricingAPI interface {
	GetConfig(ctx context.Context) (models.PricingConfig, error)
	Calculate(ctx context.Context, req models.CalculatePriceRequest) (models.CalculatedPrice, error)
}

// ProcessUploadRequest is the body for triggering ingestion of an upload.
type ProcessUploadRequest struct {
	UploadID string `json:"upload_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
}
