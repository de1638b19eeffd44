package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

// Memory is an in-process Backend used when no database is configured
// and in tests. A single mutex covers every read-merge-write. Analyses
// are kept as sample-analysis records, as in PostgreSQL.
type Memory struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Put(_ context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec = prepare(rec, m.now())
	rec.Metadata = maps.Clone(rec.Metadata)
	m.records = append(m.records, rec)
	return clone(rec), nil
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return Record{}, ErrNotFound
	}
	return clone(m.records[i]), nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

func (m *Memory) GetAll(_ context.Context) ([]Record, error) {
	return m.filter(func(Record) bool { return true }), nil
}

func (m *Memory) GetByOwner(_ context.Context, owner string) ([]Record, error) {
	return m.filter(func(r Record) bool { return r.Owner == owner }), nil
}

func (m *Memory) GetByOwnerAndKind(_ context.Context, owner string, kind Kind) ([]Record, error) {
	return m.filter(func(r Record) bool { return r.Owner == owner && r.Kind == kind }), nil
}

func (m *Memory) PatchMetadata(_ context.Context, id uuid.UUID, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	maps.Copy(m.records[i].Metadata, patch)
	return nil
}

func (m *Memory) MergeCategories(_ context.Context, owner string, incoming category.Analysis) (category.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := category.OwnerKey(owner)
	i := m.analysisIndex(key)
	existing, err := m.analysisAt(i)
	if err != nil {
		return category.Analysis{}, err
	}

	merged := category.Merge(existing, incoming)
	raw, err := json.Marshal(merged)
	if err != nil {
		return category.Analysis{}, fmt.Errorf("marshal analysis: %w", err)
	}

	now := m.now().UTC()
	if i < 0 {
		rec := prepare(Record{Owner: key, Kind: KindSampleAnalysis}, now)
		m.records = append(m.records, rec)
		i = len(m.records) - 1
	}
	m.records[i].Content = string(raw)
	m.records[i].Metadata = map[string]any{"updated_at": now.Format(time.RFC3339Nano)}
	return merged.Clone(), nil
}

func (m *Memory) Categories(_ context.Context, owner string) (category.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.analysisAt(m.analysisIndex(category.OwnerKey(owner)))
}

func (m *Memory) ClearOwner(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := category.OwnerKey(owner)
	kept := m.records[:0]
	for _, r := range m.records {
		if r.Owner == key && (r.Kind == KindWritingSample || r.Kind == KindSampleAnalysis) {
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return nil
}

func (m *Memory) analysisIndex(key string) int {
	for i, r := range m.records {
		if r.Owner == key && r.Kind == KindSampleAnalysis {
			return i
		}
	}
	return -1
}

func (m *Memory) analysisAt(i int) (category.Analysis, error) {
	if i < 0 {
		return category.Analysis{}, nil
	}
	var a category.Analysis
	if err := json.Unmarshal([]byte(m.records[i].Content), &a); err != nil {
		return category.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	return a, nil
}

func (m *Memory) index(id uuid.UUID) int {
	for i, r := range m.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) filter(keep func(Record) bool) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	for _, r := range m.records {
		if keep(r) {
			out = append(out, clone(r))
		}
	}
	return out
}

func clone(r Record) Record {
	r.Metadata = maps.Clone(r.Metadata)
	return r
}
