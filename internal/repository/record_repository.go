package repository

import (
	"context"
	"fmt"

	"github.com/jvaldes/tablero/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository wires a repository backed by pgxpool.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

// InsertBatch copies the mapped records into the target table inside a single
// transaction, so one file's rows land atomically.
func (r *recordRepository) InsertBatch(ctx context.Context, table string, columns []string, records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin insert batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return records[i].Values(columns), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit insert batch: %w", err)
	}

	return int(copied), nil
}

func (r *recordRepository) ListByDimension(ctx context.Context, table string, limit, offset int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(
		`SELECT * FROM %s ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		pgx.Identifier{table}.Sanitize(),
	)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list records from %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := []domain.Record{}
	for rows.Next() {
		values, scanErr := rows.Values()
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan record from %s: %w", table, scanErr)
		}
		record := make(domain.Record, len(fields))
		for i, field := range fields {
			record[field.Name] = values[i]
		}
		records = append(records, record)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate records from %s: %w", table, rowsErr)
	}

	return records, nil
}
