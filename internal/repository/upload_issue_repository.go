package repository

import (
	"context"
	"fmt"

	"github.com/jvaldes/tablero/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type uploadIssueRepository struct {
	pool *pgxpool.Pool
}

// NewUploadIssueRepository wires a repository backed by pgxpool.
func NewUploadIssueRepository(pool *pgxpool.Pool) UploadIssueRepository {
	return &uploadIssueRepository{pool: pool}
}

func (r *uploadIssueRepository) Record(ctx context.Context, issues []domain.UploadIssue) error {
	if len(issues) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, issue := range issues {
		batch.Queue(
			`INSERT INTO upload_issues (upload_id, row_number, field, message)
			 VALUES ($1, $2, $3, $4)`,
			issue.UploadID,
			issue.RowNumber,
			issue.Field,
			issue.Message,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range issues {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to record upload issue: %w", err)
		}
	}

	return nil
}

func (r *uploadIssueRepository) ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]domain.UploadIssue, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, upload_id, row_number, field, message, created_at
		 FROM upload_issues
		 WHERE upload_id = $1
		 ORDER BY row_number, field`,
		uploadID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload issues: %w", err)
	}
	defer rows.Close()

	issues := []domain.UploadIssue{}
	for rows.Next() {
		var (
			issue     domain.UploadIssue
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(&issue.ID, &issue.UploadID, &issue.RowNumber, &issue.Field, &issue.Message, &createdAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan upload issue: %w", scanErr)
		}
		if createdAt.Valid {
			issue.CreatedAt = createdAt.Time
		}
		issues = append(issues, issue)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate upload issues: %w", rowsErr)
	}

	return issues, nil
}
