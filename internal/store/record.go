package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

var ErrNotFound = errors.New("record not found")

type Kind string

const (
	KindWritingSample    Kind = "writing-sample"
	KindSampleAnalysis   Kind = "sample-analysis"
	KindGeneratedContent Kind = "generated-content"
)

// Record is the storage shape shared by samples, analyses and letters.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Owner     string         `json:"owner"`
	Kind      Kind           `json:"kind"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Bool reads a boolean metadata value, false when absent.
func (r Record) Bool(key string) bool {
	v, _ := r.Metadata[key].(bool)
	return v
}

// Records is the generic record boundary. Listings are ordered by
// creation time, oldest first, and include each owner's sample-analysis
// record.
type Records interface {
	// Put stores rec, assigning an ID and CreatedAt when they are zero.
	Put(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]Record, error)
	GetByOwner(ctx context.Context, owner string) ([]Record, error)
	GetByOwnerAndKind(ctx context.Context, owner string, kind Kind) ([]Record, error)
	// PatchMetadata merges patch into the record's metadata.
	PatchMetadata(ctx context.Context, id uuid.UUID, patch map[string]any) error
}

// Categories is the cumulative per-owner category store. Owners are
// compared by category.OwnerKey.
type Categories interface {
	// MergeCategories folds incoming into the owner's analysis as one
	// atomic read-merge-write and returns the merged result.
	MergeCategories(ctx context.Context, owner string, incoming category.Analysis) (category.Analysis, error)
	// Categories returns an empty analysis for an owner never analyzed.
	Categories(ctx context.Context, owner string) (category.Analysis, error)
	// ClearOwner removes the owner's analysis and every writing sample.
	ClearOwner(ctx context.Context, owner string) error
}

type Backend interface {
	Records
	Categories
}

func prepare(rec Record, now time.Time) Record {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC()
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	return rec
}
