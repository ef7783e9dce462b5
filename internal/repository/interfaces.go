package repository

import (
	"context"

	"github.com/jvaldes/tablero/internal/domain"

	"github.com/google/uuid"
)

// UploadLogRepository persists the provenance record for each ingestion
// attempt. The ingestion service owns all writes; everything else reads.
type UploadLogRepository interface {
	Create(ctx context.Context, fileName, dimension string) (domain.UploadLog, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadStatus, totalRows *int) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.UploadLog, error)
	ListByDimension(ctx context.Context, dimension string, limit, offset int) ([]domain.UploadLog, error)
	// DeleteCascade removes the log row together with every canonical record
	// and issue tagged with its id. Administrative action, not part of the
	// ingestion pipeline.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// UploadIssueRepository stores per-row mapping degradations for observability.
type UploadIssueRepository interface {
	Record(ctx context.Context, issues []domain.UploadIssue) error
	ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]domain.UploadIssue, error)
}

// RecordRepository performs bulk writes and reads against the per-dimension
// canonical tables.
type RecordRepository interface {
	InsertBatch(ctx context.Context, table string, columns []string, records []domain.Record) (int, error)
	ListByDimension(ctx context.Context, table string, limit, offset int) ([]domain.Record, error)
}
