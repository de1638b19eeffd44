package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

// MergeCategories serializes writers per owner with a transaction-scoped
// advisory lock, then reads the analysis row FOR UPDATE, merges and
// upserts it before committing.
func (s *Store) MergeCategories(ctx context.Context, owner string, incoming category.Analysis) (category.Analysis, error) {
	key := category.OwnerKey(owner)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return category.Analysis{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return category.Analysis{}, fmt.Errorf("lock owner: %w", err)
	}

	existing, err := readAnalysis(ctx, tx, key, true)
	if err != nil {
		return category.Analysis{}, err
	}

	merged := category.Merge(existing, incoming)
	now := time.Now().UTC()
	raw, err := json.Marshal(merged)
	if err != nil {
		return category.Analysis{}, fmt.Errorf("marshal analysis: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO letterforge_records (id, owner, kind, content, metadata, created_at)
		VALUES ($1, $2, $3, $4, jsonb_build_object('updated_at', $5::text), $6)
		ON CONFLICT (owner) WHERE kind = 'sample-analysis'
		DO UPDATE SET content = EXCLUDED.content,
			metadata = letterforge_records.metadata || EXCLUDED.metadata`,
		uuid.New(), key, string(KindSampleAnalysis), string(raw), now.Format(time.RFC3339Nano), now,
	)
	if err != nil {
		return category.Analysis{}, fmt.Errorf("upsert analysis: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return category.Analysis{}, fmt.Errorf("commit: %w", err)
	}
	return merged, nil
}

func (s *Store) Categories(ctx context.Context, owner string) (category.Analysis, error) {
	return readAnalysis(ctx, s.pool, category.OwnerKey(owner), false)
}

func (s *Store) ClearOwner(ctx context.Context, owner string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM letterforge_records
		WHERE owner = $1 AND kind IN ($2, $3)`,
		category.OwnerKey(owner), string(KindSampleAnalysis), string(KindWritingSample),
	)
	if err != nil {
		return fmt.Errorf("clear owner: %w", err)
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func readAnalysis(ctx context.Context, q querier, key string, forUpdate bool) (category.Analysis, error) {
	sql := `SELECT content FROM letterforge_records WHERE owner = $1 AND kind = $2`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	var content string
	err := q.QueryRow(ctx, sql, key, string(KindSampleAnalysis)).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return category.Analysis{}, nil
	}
	if err != nil {
		return category.Analysis{}, fmt.Errorf("read analysis: %w", err)
	}

	var a category.Analysis
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return category.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	return a, nil
}
