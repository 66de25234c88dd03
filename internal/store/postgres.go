package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/hotdog-classifier/backend/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS classifications (
	id           UUID PRIMARY KEY,
	label        TEXT NOT NULL,
	model_reply  TEXT NOT NULL DEFAULT '',
	file_name    TEXT NOT NULL DEFAULT '',
	content_type TEXT NOT NULL DEFAULT '',
	size_bytes   BIGINT NOT NULL DEFAULT 0,
	storage_key  TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS classifications_created_at_idx
	ON classifications (created_at DESC);
`

// PostgresStore implements RecordStore on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, url string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	if poolSize > 0 {
		cfg.MaxConns = int32(poolSize)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Insert(ctx context.Context, rec *models.ClassificationRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO classifications
			(id, label, model_reply, file_name, content_type, size_bytes, storage_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, string(rec.Label), rec.ModelReply, rec.FileName,
		rec.ContentType, rec.Size, rec.StorageKey, rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.ClassificationRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, label, model_reply, file_name, content_type, size_bytes, storage_key, created_at
		 FROM classifications WHERE id = $1`,
		id,
	)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]models.ClassificationRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, label, model_reply, file_name, content_type, size_bytes, storage_key, created_at
		 FROM classifications
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []models.ClassificationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	return records, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM classifications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM classifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*models.ClassificationRecord, error) {
	var rec models.ClassificationRecord
	var label string
	if err := row.Scan(
		&rec.ID, &label, &rec.ModelReply, &rec.FileName,
		&rec.ContentType, &rec.Size, &rec.StorageKey, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.Label = models.Label(label)
	return &rec, nil
}

// Ensure PostgresStore implements RecordStore.
var _ RecordStore = (*PostgresStore)(nil)
