package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UploadStatus is the lifecycle state of a CSV upload.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
)

// ErrorType classifies a row-level validation error.
type ErrorType string

const (
	ErrorTypeMissingRequired ErrorType = "missing_required"
	ErrorTypeInvalidValue    ErrorType = "invalid_value"
	ErrorTypeInvalidFormat   ErrorType = "invalid_format"
)

// Upload is one user-initiated CSV submission tracked through its lifecycle.
type Upload struct {
	ID                    int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID                string       `json:"user_id" gorm:"index;not null"`
	Filename              string       `json:"filename"`
	FilePath              *string      `json:"file_path"`
	FileSizeBytes         *int64       `json:"file_size_bytes"`
	Status                UploadStatus `json:"status" gorm:"default:pending"`
	TotalRows             int          `json:"total_rows"`
	SuccessCount          int          `json:"success_count"`
	ErrorCount            int          `json:"error_count"`
	ProcessingStartedAt   *time.Time   `json:"processing_started_at"`
	ProcessingCompletedAt *time.Time   `json:"processing_completed_at"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// UploadError is one append-only record of a single field-level failure on
// one CSV row. A row with three bad fields produces three records.
type UploadError struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UploadID     int64     `json:"upload_id" gorm:"index;not null"`
	RowNumber    int       `json:"row_number"`
	FieldName    string    `json:"field_name"`
	ErrorType    ErrorType `json:"error_type"`
	ErrorMessage string    `json:"error_message"`
	RawData      JSONMap   `json:"raw_data" gorm:"type:jsonb"`
	CreatedAt    time.Time `json:"created_at"`
}

// JSONMap stores a raw CSV row snapshot as a jsonb column.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}
}
