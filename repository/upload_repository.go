package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// UploadRepository defines data-access operations for uploads and their
// per-row error records.
type UploadRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Upload, error)
	MarkProcessing(ctx context.Context, id int64, startedAt time.Time) error
	SetTotalRows(ctx context.Context, id int64, totalRows int) error
	Finalize(ctx context.Context, id int64, status models.UploadStatus, successCount, errorCount int, completedAt time.Time) error
	InsertErrors(ctx context.Context, errors []models.UploadError) error
	ListErrors(ctx context.Context, uploadID int64, page, limit int) ([]models.UploadError, int64, error)
}

// GormUploadRepository implements UploadRepository using GORM.
type GormUploadRepository struct {
	db *gorm.DB
}

// NewGormUploadRepository creates a new GormUploadRepository.
func NewGormUploadRepository(db *gorm.DB) UploadRepository {
	return &GormUploadRepository{db: db}
}

func (r *GormUploadRepository) FindByID(ctx context.Context, id int64) (*models.Upload, error) {
	var upload models.Upload
	if err := r.db.WithContext(ctx).First(&upload, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *GormUploadRepository) MarkProcessing(ctx context.Context, id int64, startedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Upload{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                models.UploadStatusProcessing,
			"processing_started_at": startedAt,
		}).Error
}

func (r *GormUploadRepository) SetTotalRows(ctx context.Context, id int64, totalRows int) error {
	return r.db.WithContext(ctx).
		Model(&models.Upload{}).
		Where("id = ?", id).
		Update("total_rows", totalRows).Error
}

func (r *GormUploadRepository) Finalize(ctx context.Context, id int64, status models.UploadStatus, successCount, errorCount int, completedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Upload{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                  status,
			"success_count":           successCount,
			"error_count":             errorCount,
			"processing_completed_at": completedAt,
		}).Error
}

func (r *GormUploadRepository) InsertErrors(ctx context.Context, errors []models.UploadError) error {
	if len(errors) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&errors).Error
}

func (r *GormUploadRepository) ListErrors(ctx context.Context, uploadID int64, page, limit int) ([]models.UploadError, int64, error) {
	var records []models.UploadError
	var total int64

	query := r.db.WithContext(ctx).Model(&models.UploadError{}).Where("upload_id = ?", uploadID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("row_number ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
