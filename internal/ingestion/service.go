package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jvaldes/tablero/internal/dimension"
	"github.com/jvaldes/tablero/internal/domain"
	"github.com/jvaldes/tablero/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrUnknownDimension is returned before any provenance row is created
	// when the requested dimension has no registered mapper.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrEmptyFile is returned when the uploaded payload has no bytes.
	ErrEmptyFile = errors.New("file is empty")

	// ErrUnsupportedFormat is returned when an uploaded file is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// maxReportedIssues caps the per-row diagnostics echoed back in the summary.
// The full list is persisted regardless.
const maxReportedIssues = 20

// Service coordinates the ingestion pipeline: provenance, parse, map, insert.
type Service struct {
	logs    repository.UploadLogRepository
	issues  repository.UploadIssueRepository
	records repository.RecordRepository
}

// NewService creates a new ingestion service.
func NewService(
	logs repository.UploadLogRepository,
	issues repository.UploadIssueRepository,
	records repository.RecordRepository,
) *Service {
	return &Service{logs: logs, issues: issues, records: records}
}

// Summary reports the outcome of one ingestion.
type Summary struct {
	UploadID  uuid.UUID         `json:"uploadId"`
	Dimension string            `json:"dimension"`
	TotalRows int               `json:"totalRows"`
	Issues    []dimension.Issue `json:"issues,omitempty"`
}

// Ingest runs the pipeline for one uploaded file. The upload log row is
// created before any canonical rows exist and is always driven to a terminal
// status once it exists, success or error.
func (s *Service) Ingest(ctx context.Context, fileName string, payload []byte, dimensionLabel string) (Summary, error) {
	dim, ok := dimension.Lookup(dimensionLabel)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownDimension, dimensionLabel)
	}
	if len(payload) == 0 {
		return Summary{}, ErrEmptyFile
	}

	uploadLog, err := s.logs.Create(ctx, fileName, dimensionLabel)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create upload log: %w", err)
	}

	rows, err := parseRows(fileName, payload)
	if err != nil {
		s.markError(ctx, uploadLog.ID)
		return Summary{}, fmt.Errorf("failed to parse %s: %w", fileName, err)
	}

	records, issues := dimension.MapRows(dim, rows, uploadLog.ID)

	table := dimension.TableName(dimensionLabel)
	count, err := s.records.InsertBatch(ctx, table, dim.Columns(), records)
	if err != nil {
		s.markError(ctx, uploadLog.ID)
		return Summary{}, fmt.Errorf("failed to insert rows: %w", err)
	}

	s.recordIssues(ctx, uploadLog.ID, issues)

	if err := s.logs.UpdateStatus(ctx, uploadLog.ID, domain.UploadStatusSuccess, &count); err != nil {
		return Summary{}, fmt.Errorf("failed to finalize upload log: %w", err)
	}

	summary := Summary{
		UploadID:  uploadLog.ID,
		Dimension: dimensionLabel,
		TotalRows: count,
		Issues:    issues,
	}
	if len(summary.Issues) > maxReportedIssues {
		summary.Issues = summary.Issues[:maxReportedIssues]
	}
	return summary, nil
}

func (s *Service) markError(ctx context.Context, id uuid.UUID) {
	if err := s.logs.UpdateStatus(ctx, id, domain.UploadStatusError, nil); err != nil {
		log.Printf("[INGEST] failed to mark upload %s as error: %v", id, err)
	}
}

// recordIssues persists diagnostics best-effort; ingestion outcome never
// depends on it.
func (s *Service) recordIssues(ctx context.Context, uploadID uuid.UUID, issues []dimension.Issue) {
	if s.issues == nil || len(issues) == 0 {
		return
	}
	entries := make([]domain.UploadIssue, len(issues))
	for i, issue := range issues {
		entries[i] = domain.UploadIssue{
			UploadID:  uploadID,
			RowNumber: issue.Row,
			Field:     issue.Field,
			Message:   issue.Message,
		}
	}
	if err := s.issues.Record(ctx, entries); err != nil {
		log.Printf("[INGEST] failed to record %d issues for upload %s: %v", len(entries), uploadID, err)
	}
}
