package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/odhiambo-ed/ReUbuntu/models"
	"github.com/odhiambo-ed/ReUbuntu/parser"
	"github.com/odhiambo-ed/ReUbuntu/realtime"
	"github.com/odhiambo-ed/ReUbuntu/repository"
	"github.com/odhiambo-ed/ReUbuntu/storage"
	"github.com/odhiambo-ed/ReUbuntu/validation"
)

// batchSize bounds every write to the item and error tables.
const batchSize = 100

// defaultCurrency is applied when a row carries no currency value.
const defaultCurrency = "ZAR"

var (
	// ErrUploadNotFound indicates the upload record or its file path is missing.
	ErrUploadNotFound = errors.New("upload record not found or missing file path")
	// ErrEmptyDownload indicates the blob store returned no bytes for the file.
	ErrEmptyDownload = errors.New("storage download returned no data")
)

// IngestionService drives one upload through download, parse, validation,
// batched persistence, and finalization, broadcasting progress as it goes.
type IngestionService struct {
	uploads   repository.UploadRepository
	inventory repository.InventoryRepository
	blobs     storage.BlobStore
	publisher realtime.Publisher
	logger    *zap.Logger
}

// NewIngestionService creates an IngestionService.
func NewIngestionService(
	uploads repository.UploadRepository,
	inventory repository.InventoryRepository,
	blobs storage.BlobStore,
	publisher realtime.Publisher,
	logger *zap.Logger,
) *IngestionService {
	return &IngestionService{
		uploads:   uploads,
		inventory: inventory,
		blobs:     blobs,
		publisher: publisher,
		logger:    logger,
	}
}

// Run processes one uploaded CSV end to end and returns the terminal
// summary. Row-level validation failures are recorded as data and never
// abort the pipeline; any error returned here is a fatal pipeline error
// and leaves the upload in whatever phase it last reached.
func (s *IngestionService) Run(ctx context.Context, uploadID int64, userID string) (*models.IngestionSummary, error) {
	if err := s.uploads.MarkProcessing(ctx, uploadID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to mark upload %d processing: %w", uploadID, err)
	}
	s.publisher.Broadcast(ctx, uploadID, models.ProgressEvent{
		Status:   string(models.UploadStatusProcessing),
		Message:  "Starting CSV processing...",
		Progress: 0,
	})

	upload, err := s.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, fmt.Errorf("%w: upload_id=%d: %v", ErrUploadNotFound, uploadID, err)
	}
	if upload.FilePath == nil || *upload.FilePath == "" {
		return nil, fmt.Errorf("%w: upload_id=%d", ErrUploadNotFound, uploadID)
	}

	data, err := s.blobs.Download(ctx, *upload.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", *upload.FilePath, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file_path=%s", ErrEmptyDownload, *upload.FilePath)
	}

	rows, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	totalRows := len(rows)

	if err := s.uploads.SetTotalRows(ctx, uploadID, totalRows); err != nil {
		return nil, fmt.Errorf("failed to record total rows for upload %d: %w", uploadID, err)
	}
	s.publisher.Broadcast(ctx, uploadID, models.ProgressEvent{
		Status:    string(models.UploadStatusProcessing),
		Message:   fmt.Sprintf("Parsed %d rows. Validating...", totalRows),
		Progress:  10,
		TotalRows: intPtr(totalRows),
	})

	validItems, errorRecords := s.classifyRows(rows, uploadID, userID, func(done, validCount, errorCount int) {
		progress := 10 + done*60/totalRows
		s.publisher.Broadcast(ctx, uploadID, models.ProgressEvent{
			Status:     string(models.UploadStatusProcessing),
			Message:    fmt.Sprintf("Validated %d/%d rows...", done, totalRows),
			Progress:   progress,
			Validated:  intPtr(done),
			ValidCount: intPtr(validCount),
			ErrorCount: intPtr(errorCount),
		})
	})

	insertedCount, failedBatches := s.persistItems(ctx, uploadID, validItems)
	s.persistErrors(ctx, uploadID, errorRecords)

	errorCount := len(errorRecords)
	finalStatus := models.UploadStatusCompleted
	if errorCount == totalRows {
		finalStatus = models.UploadStatusFailed
	}

	if err := s.uploads.Finalize(ctx, uploadID, finalStatus, insertedCount, errorCount, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to finalize upload %d: %w", uploadID, err)
	}

	message := fmt.Sprintf("Processing complete! %d items added.", insertedCount)
	if finalStatus == models.UploadStatusFailed {
		message = "Processing failed. All rows had errors."
	}
	if failedBatches > 0 {
		message += fmt.Sprintf(" %d item batch(es) could not be persisted.", failedBatches)
	}

	s.publisher.Broadcast(ctx, uploadID, models.ProgressEvent{
		Status:       string(finalStatus),
		Message:      message,
		Progress:     100,
		TotalRows:    intPtr(totalRows),
		SuccessCount: intPtr(insertedCount),
		ErrorCount:   intPtr(errorCount),
	})

	s.logger.Info("upload processed",
		zap.Int64("upload_id", uploadID),
		zap.String("status", string(finalStatus)),
		zap.Int("total_rows", totalRows),
		zap.Int("success_count", insertedCount),
		zap.Int("error_count", errorCount),
	)

	return &models.IngestionSummary{
		Success:      true,
		UploadID:     uploadID,
		Status:       finalStatus,
		TotalRows:    totalRows,
		SuccessCount: insertedCount,
		ErrorCount:   errorCount,
		Message:      message,
	}, nil
}

// classifyRows validates each row in file order, building insertable items
// from valid rows and fanning every field error of an invalid row out into
// its own error record carrying the raw, unnormalized row snapshot.
func (s *IngestionService) classifyRows(
	rows []models.RawRow,
	uploadID int64,
	userID string,
	onProgress func(done, validCount, errorCount int),
) ([]models.InventoryItem, []models.UploadError) {
	var validItems []models.InventoryItem
	var errorRecords []models.UploadError

	totalRows := len(rows)
	progressInterval := totalRows / 10
	if progressInterval < 1 {
		progressInterval = 1
	}

	for i, row := range rows {
		rowNumber := i + 2 // header line is row 1

		result := validation.ValidateRow(row, rowNumber)
		if result.IsValid {
			validItems = append(validItems, buildItem(row, uploadID, userID))
		} else {
			for _, fieldErr := range result.Errors {
				errorRecords = append(errorRecords, models.UploadError{
					UploadID:     uploadID,
					RowNumber:    rowNumber,
					FieldName:    fieldErr.Field,
					ErrorType:    fieldErr.Type,
					ErrorMessage: fieldErr.Message,
					RawData:      models.JSONMap(row),
				})
			}
		}

		if (i+1)%progressInterval == 0 || i == totalRows-1 {
			onProgress(i+1, len(validItems), len(errorRecords))
		}
	}

	return validItems, errorRecords
}

// persistItems upserts valid items in fixed-size batches. A failed batch is
// logged and counted as not inserted but later batches still run.
func (s *IngestionService) persistItems(ctx context.Context, uploadID int64, items []models.InventoryItem) (int, int) {
	s.publisher.Broadcast(ctx, uploadID, models.ProgressEvent{
		Status:   string(models.UploadStatusProcessing),
		Message:  fmt.Sprintf("Inserting %d valid items...", len(items)),
		Progress: 75,
	})

	insertedCount := 0
	failedBatches := 0

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		written, err := s.inventory.UpsertBatch(ctx, batch)
		if err != nil {
			failedBatches++
			s.logger.Error("item batch write failed",
				zap.Int64("upload_id", uploadID),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
		} else {
			insertedCount += int(written)
		}

		progress := 75 + end*15/len(items)
		s.publisher.Broadcast(ctx, uploadID, models.ProgressEvent{
			Status:   string(models.UploadStatusProcessing),
			Message:  fmt.Sprintf("Inserted %d/%d items...", insertedCount, len(items)),
			Progress: progress,
		})
	}

	return insertedCount, failedBatches
}

// persistErrors appends error records in fixed-size batches.
func (s *IngestionService) persistErrors(ctx context.Context, uploadID int64, records []models.UploadError) {
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.uploads.InsertErrors(ctx, records[start:end]); err != nil {
			s.logger.Error("error batch write failed",
				zap.Int64("upload_id", uploadID),
				zap.Int("batch_start", start),
				zap.Error(err),
			)
		}
	}
}

// GetUpload returns one upload with its lifecycle status and counts.
func (s *IngestionService) GetUpload(ctx context.Context, uploadID int64) (*models.Upload, error) {
	return s.uploads.FindByID(ctx, uploadID)
}

// ListErrors returns one page of an upload's row-error records.
func (s *IngestionService) ListErrors(ctx context.Context, uploadID int64, page, limit int) ([]models.UploadError, int64, error) {
	return s.uploads.ListErrors(ctx, uploadID, page, limit)
}

// buildItem projects one valid raw row into the typed insert record.
func buildItem(row models.RawRow, uploadID int64, userID string) models.InventoryItem {
	price, _ := strconv.ParseFloat(strings.TrimSpace(row.Get("original_price")), 64)

	quantity, err := strconv.Atoi(strings.TrimSpace(row.Get("quantity")))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	var brand *string
	if b := strings.TrimSpace(row.Get("brand")); b != "" {
		brand = &b
	}

	currency := strings.ToUpper(strings.TrimSpace(row.Get("currency")))
	if currency == "" {
		currency = defaultCurrency
	}

	return models.InventoryItem{
		UserID:        userID,
		UploadID:      &uploadID,
		MerchantID:    strings.TrimSpace(row.Get("merchant_id")),
		SKU:           strings.TrimSpace(row.Get("sku")),
		Title:         strings.TrimSpace(row.Get("title")),
		Brand:         brand,
		Category:      validation.NormalizeCategory(row.Get("category")),
		Condition:     validation.NormalizeCondition(row.Get("condition")),
		OriginalPrice: price,
		Currency:      currency,
		Quantity:      quantity,
		Status:        models.ItemStatusPending,
	}
}

func intPtr(v int) *int { return &v }
