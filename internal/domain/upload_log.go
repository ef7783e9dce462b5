package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadStatus tracks the lifecycle of one ingestion attempt.
type UploadStatus string

const (
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusSuccess    UploadStatus = "success"
	UploadStatusError      UploadStatus = "error"
)

// UploadLog is the provenance record for one uploaded file. It is created
// before any canonical rows are inserted and updated exactly once afterwards,
// to success (with the row count) or to error.
type UploadLog struct {
	ID        uuid.UUID    `json:"id"`
	FileName  string       `json:"file_name"`
	Dimension string       `json:"dimension"`
	Status    UploadStatus `json:"status"`
	TotalRows *int         `json:"total_rows,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// UploadIssue captures one per-row degradation observed while mapping a file.
// Issues are diagnostics only; they never fail the row they belong to.
type UploadIssue struct {
	ID        uuid.UUID `json:"id"`
	UploadID  uuid.UUID `json:"upload_id"`
	RowNumber int       `json:"row_number"`
	Field     string    `json:"field"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
