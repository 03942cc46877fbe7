package models

// RawRow is one data line of an uploaded CSV keyed by normalized column
// headers. It only exists while the row is being processed.
type RawRow map[string]string

// Get returns the raw value for a normalized header, or "" when the column
// is absent.
func (r RawRow) Get(key string) string {
	return r[key]
}

// ProgressEvent is an ephemeral status payload broadcast to live clients
// while an upload is being processed. It is never persisted.
type ProgressEvent struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Progress     int    `json:"progress"`
	TotalRows    *int   `json:"total_rows,omitempty"`
	Validated    *int   `json:"validated,omitempty"`
	ValidCount   *int   `json:"valid_count,omitempty"`
	SuccessCount *int   `json:"success_count,omitempty"`
	ErrorCount   *int   `json:"error_count,omitempty"`
}

// IngestionSummary is the terminal result returned to the caller after a
// CSV has been fully processed.
type IngestionSummary struct {
	Success      bool         `json:"success"`
	UploadID     int64        `json:"upload_id"`
	Status       UploadStatus `json:"status"`
	TotalRows    int          `json:"total_rows"`
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Message      string       `json:"message,omitempty"`
}
