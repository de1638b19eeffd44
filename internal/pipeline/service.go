// Package pipeline runs the letter workflow end to end: sample intake
// and analysis at save time, then patterns, template, assembly and
// personalization at generation time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/letterforge/internal/assembler"
	"github.com/MikeSquared-Agency/letterforge/internal/categorizer"
	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/hermes"
	"github.com/MikeSquared-Agency/letterforge/internal/llm"
	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
	"github.com/MikeSquared-Agency/letterforge/internal/personalizer"
	"github.com/MikeSquared-Agency/letterforge/internal/store"
	"github.com/MikeSquared-Agency/letterforge/internal/template"
)

// ErrInsufficientData matches any error caused by an owner having no
// writing samples.
var ErrInsufficientData = template.ErrNoTemplate

const (
	metaAnalyzed   = "analyzed"
	metaAnalyzedAt = "analyzed_at"
)

type Analyzer interface {
	Categorize(ctx context.Context, text string) (category.Analysis, error)
}

type TemplateBuilder interface {
	Build(ctx context.Context, samples []string) ([]template.Item, error)
}

type Personalizer interface {
	Personalize(ctx context.Context, draft string, info personalizer.StudentInfo, owner string) string
}

type PatternCache interface {
	Get(ctx context.Context, owner, fingerprint string) (patterns.Set, bool, error)
	Set(ctx context.Context, owner, fingerprint string, set patterns.Set) error
	Invalidate(ctx context.Context, owner string) error
}

type Sample struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Analyzed  bool      `json:"analyzed"`
}

type Letter struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Degraded  bool      `json:"degraded"`
}

type Service struct {
	store        store.Backend
	analyzer     Analyzer
	builder      TemplateBuilder
	assembler    *assembler.Assembler
	personalizer Personalizer
	cache        PatternCache
	events       hermes.Publisher
	fingerprint  func(ids []string) string
	logger       *slog.Logger
	now          func() time.Time
}

// New wires the default components around g.
func New(st store.Backend, g llm.Generator, logger *slog.Logger) *Service {
	return &Service{
		store:        st,
		analyzer:     categorizer.New(g, logger),
		builder:      template.NewBuilder(categorizer.New(g, logger), logger),
		assembler:    assembler.New(),
		personalizer: personalizer.New(g, logger),
		logger:       logger,
		now:          time.Now,
	}
}

// WithCache enables pattern caching. fingerprint derives the cache key
// from an owner's sample ids.
func (s *Service) WithCache(c PatternCache, fingerprint func(ids []string) string) *Service {
	s.cache = c
	s.fingerprint = fingerprint
	return s
}

func (s *Service) WithEvents(p hermes.Publisher) *Service {
	s.events = p
	return s
}

// WithPicker makes template and sentence choice deterministic.
func (s *Service) WithPicker(pick func(n int) int) *Service {
	if b, ok := s.builder.(*template.Builder); ok {
		b.WithPicker(pick)
	}
	s.assembler.WithPicker(pick)
	return s
}

// SaveSample stores a writing sample and folds its sentences into the
// owner's category store. When categorization fails the sample stays
// saved but unanalyzed and the *categorizer.AnalysisError is returned.
func (s *Service) SaveSample(ctx context.Context, owner, content string) (Sample, error) {
	key := category.OwnerKey(owner)
	content = strings.TrimSpace(content)
	if err := validateSample(key, content); err != nil {
		return Sample{}, err
	}

	rec, err := s.store.Put(ctx, store.Record{
		Owner:    key,
		Kind:     store.KindWritingSample,
		Content:  content,
		Metadata: map[string]any{metaAnalyzed: false},
	})
	if err != nil {
		return Sample{}, fmt.Errorf("save sample: %w", err)
	}
	s.logger.Info("sample saved", "owner", key, "sample_id", rec.ID)

	sample := toSample(rec)
	if err := s.analyze(ctx, rec); err != nil {
		return sample, err
	}
	sample.Analyzed = true
	return sample, nil
}

func (s *Service) analyze(ctx context.Context, rec store.Record) error {
	analysis, err := s.analyzer.Categorize(ctx, rec.Content)
	if err != nil {
		s.logger.Error("sample analysis failed", "owner", rec.Owner, "sample_id", rec.ID, "error", err)
		return err
	}

	if _, err := s.store.MergeCategories(ctx, rec.Owner, analysis); err != nil {
		return fmt.Errorf("merge categories: %w", err)
	}

	err = s.store.PatchMetadata(ctx, rec.ID, map[string]any{
		metaAnalyzed:   true,
		metaAnalyzedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("mark sample analyzed: %w", err)
	}

	s.logger.Info("sample analyzed", "owner", rec.Owner, "sample_id", rec.ID, "sentences", analysis.Total())
	hermes.Emit(s.events, s.logger, hermes.SampleAnalyzed{
		SampleID:  rec.ID.String(),
		Owner:     rec.Owner,
		Sentences: analysis.Total(),
	})
	return nil
}

// Reanalyze retries categorization for every sample of owner still
// marked unanalyzed and returns how many succeeded.
func (s *Service) Reanalyze(ctx context.Context, owner string) (int, error) {
	recs, err := s.store.GetByOwnerAndKind(ctx, category.OwnerKey(owner), store.KindWritingSample)
	if err != nil {
		return 0, fmt.Errorf("list samples: %w", err)
	}

	var (
		done int
		errs []error
	)
	for _, rec := range recs {
		if rec.Bool(metaAnalyzed) {
			continue
		}
		if err := s.analyze(ctx, rec); err != nil {
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func (s *Service) ListSamples(ctx context.Context, owner string) ([]Sample, error) {
	recs, err := s.store.GetByOwnerAndKind(ctx, category.OwnerKey(owner), store.KindWritingSample)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	out := make([]Sample, len(recs))
	for i, rec := range recs {
		out[i] = toSample(rec)
	}
	return out, nil
}

// DeleteSample removes one sample. Sentences it contributed stay in the
// category store, which only ever grows until cleared.
func (s *Service) DeleteSample(ctx context.Context, owner string, id uuid.UUID) error {
	key := category.OwnerKey(owner)
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.Owner != key || rec.Kind != store.KindWritingSample {
		return store.ErrNotFound
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidatePatterns(ctx, key)
	s.logger.Info("sample deleted", "owner", key, "sample_id", id)
	return nil
}

func (s *Service) Categories(ctx context.Context, owner string) (category.Analysis, error) {
	return s.store.Categories(ctx, category.OwnerKey(owner))
}

// ClearOwner deletes the owner's category store and writing samples.
// Generated letters are kept.
func (s *Service) ClearOwner(ctx context.Context, owner string) error {
	key := category.OwnerKey(owner)
	if err := s.store.ClearOwner(ctx, key); err != nil {
		return err
	}
	s.InvalidatePatterns(ctx, key)
	s.logger.Info("owner cleared", "owner", key)
	return nil
}

func (s *Service) ListLetters(ctx context.Context, owner string) ([]Letter, error) {
	recs, err := s.store.GetByOwnerAndKind(ctx, category.OwnerKey(owner), store.KindGeneratedContent)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	out := make([]Letter, len(recs))
	for i, rec := range recs {
		out[i] = Letter{
			ID:        rec.ID,
			Owner:     rec.Owner,
			Content:   rec.Content,
			CreatedAt: rec.CreatedAt,
			Degraded:  rec.Bool("degraded"),
		}
	}
	return out, nil
}

func validateSample(owner, content string) error {
	fields := map[string]string{}
	if owner == "" {
		fields["owner"] = "is required"
	}
	if content == "" {
		fields["content"] = "is required"
	}
	if len(fields) > 0 {
		return &personalizer.ValidationError{Fields: fields}
	}
	return nil
}

func toSample(rec store.Record) Sample {
	return Sample{
		ID:        rec.ID,
		Owner:     rec.Owner,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		Analyzed:  rec.Bool(metaAnalyzed),
	}
}
