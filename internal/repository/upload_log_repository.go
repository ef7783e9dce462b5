package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jvaldes/tablero/internal/dimension"
	"github.com/jvaldes/tablero/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUploadNotFound is returned when no upload log row matches the given id.
var ErrUploadNotFound = errors.New("upload log not found")

type uploadLogRepository struct {
	pool *pgxpool.Pool
}

// NewUploadLogRepository wires a repository backed by pgxpool.
func NewUploadLogRepository(pool *pgxpool.Pool) UploadLogRepository {
	return &uploadLogRepository{pool: pool}
}

func (r *uploadLogRepository) Create(ctx context.Context, fileName, dimensionLabel string) (domain.UploadLog, error) {
	log := domain.UploadLog{
		ID:        uuid.New(),
		FileName:  fileName,
		Dimension: dimensionLabel,
		Status:    domain.UploadStatusProcessing,
	}

	var createdAt pgtype.Timestamptz
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO upload_logs (id, file_name, dimension, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		log.ID,
		log.FileName,
		log.Dimension,
		log.Status,
	).Scan(&createdAt)
	if err != nil {
		return domain.UploadLog{}, fmt.Errorf("failed to create upload log: %w", err)
	}
	if createdAt.Valid {
		log.CreatedAt = createdAt.Time
	}

	return log, nil
}

func (r *uploadLogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadStatus, totalRows *int) error {
	var rows any
	if totalRows != nil {
		rows = *totalRows
	}

	tag, err := r.pool.Exec(
		ctx,
		`UPDATE upload_logs SET status = $2, total_rows = $3 WHERE id = $1`,
		id,
		status,
		rows,
	)
	if err != nil {
		return fmt.Errorf("failed to update upload log %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUploadNotFound
	}

	return nil
}

func (r *uploadLogRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.UploadLog, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, file_name, dimension, status, total_rows, created_at
		 FROM upload_logs
		 WHERE id = $1`,
		id,
	)

	log, err := scanUploadLog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UploadLog{}, ErrUploadNotFound
		}
		return domain.UploadLog{}, fmt.Errorf("failed to get upload log: %w", err)
	}

	return log, nil
}

func (r *uploadLogRepository) ListByDimension(ctx context.Context, dimensionLabel string, limit, offset int) ([]domain.UploadLog, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, file_name, dimension, status, total_rows, created_at
		 FROM upload_logs
		 WHERE dimension = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		dimensionLabel,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.UploadLog{}
	for rows.Next() {
		log, scanErr := scanUploadLog(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", scanErr)
		}
		logs = append(logs, log)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate upload logs: %w", rowsErr)
	}

	return logs, nil
}

func (r *uploadLogRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	log, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	table := dimension.TableName(log.Dimension)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	deleteRecords := fmt.Sprintf(`DELETE FROM %s WHERE upload_id = $1`, pgx.Identifier{table}.Sanitize())
	if _, err := tx.Exec(ctx, deleteRecords, id); err != nil {
		return fmt.Errorf("failed to delete records for upload %s: %w", id, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM upload_issues WHERE upload_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete issues for upload %s: %w", id, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM upload_logs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete upload log %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cascade delete: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUploadLog(row rowScanner) (domain.UploadLog, error) {
	var (
		log       domain.UploadLog
		totalRows pgtype.Int4
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&log.ID, &log.FileName, &log.Dimension, &log.Status, &totalRows, &createdAt); err != nil {
		return domain.UploadLog{}, err
	}
	if totalRows.Valid {
		value := int(totalRows.Int32)
		log.TotalRows = &value
	}
	if createdAt.Valid {
		log.CreatedAt = createdAt.Time
	}
	return log, nil
}
