package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS letterforge_records (
	id         UUID PRIMARY KEY,
	owner      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	content    TEXT NOT NULL,
	metadata   JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS letterforge_records_owner_kind_idx
	ON letterforge_records (owner, kind, created_at);
CREATE UNIQUE INDEX IF NOT EXISTS letterforge_records_analysis_idx
	ON letterforge_records (owner) WHERE kind = 'sample-analysis';
`

const recordColumns = `id, owner, kind, content, metadata, created_at`

// Store is the PostgreSQL backend.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Migrate creates the records table and its indexes if missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Put(ctx context.Context, rec Record) (Record, error) {
	rec = prepare(rec, time.Now())
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return Record{}, fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO letterforge_records (id, owner, kind, content, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)`,
		rec.ID, rec.Owner, string(rec.Kind), rec.Content, string(meta), rec.CreatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM letterforge_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM letterforge_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetAll(ctx context.Context) ([]Record, error) {
	return s.query(ctx, `SELECT `+recordColumns+` FROM letterforge_records ORDER BY created_at, id`)
}

func (s *Store) GetByOwner(ctx context.Context, owner string) ([]Record, error) {
	return s.query(ctx, `
		SELECT `+recordColumns+` FROM letterforge_records
		WHERE owner = $1 ORDER BY created_at, id`, owner)
}

func (s *Store) GetByOwnerAndKind(ctx context.Context, owner string, kind Kind) ([]Record, error) {
	return s.query(ctx, `
		SELECT `+recordColumns+` FROM letterforge_records
		WHERE owner = $1 AND kind = $2 ORDER BY created_at, id`, owner, string(kind))
}

func (s *Store) PatchMetadata(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal metadata patch: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE letterforge_records SET metadata = metadata || $2::jsonb
		WHERE id = $1`, id, string(raw))
	if err != nil {
		return fmt.Errorf("patch metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]Record, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec  Record
		kind string
		meta []byte
	)
	if err := row.Scan(&rec.ID, &rec.Owner, &kind, &rec.Content, &meta, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	rec.Kind = Kind(kind)
	rec.Metadata = map[string]any{}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &rec.Metadata); err != nil {
			return Record{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return rec, nil
}
