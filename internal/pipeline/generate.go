package pipeline

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/letterforge/internal/assembler"
	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/hermes"
	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
	"github.com/MikeSquared-Agency/letterforge/internal/personalizer"
	"github.com/MikeSquared-Agency/letterforge/internal/store"
)

// Generate writes a letter for info from owner's corpus. When there is
// nothing to build a template from, either because the owner has no
// samples or because the chosen sample has no complete sentence, the
// assembler's apology comes back as an unsaved, degraded letter and it
// is never personalized.
func (s *Service) Generate(ctx context.Context, owner string, info personalizer.StudentInfo) (Letter, error) {
	key := category.OwnerKey(owner)
	if err := info.Validate(); err != nil {
		return Letter{}, err
	}

	recs, err := s.store.GetByOwnerAndKind(ctx, key, store.KindWritingSample)
	if err != nil {
		return Letter{}, fmt.Errorf("load samples: %w", err)
	}
	if len(recs) == 0 {
		s.logger.Warn("no writing samples, returning apology", "owner", key)
		return s.apology(key), nil
	}

	contents := make([]string, len(recs))
	for i, rec := range recs {
		contents[i] = rec.Content
	}

	set := s.patternsFor(ctx, key, recs)

	items, err := s.builder.Build(ctx, contents)
	if err != nil {
		return Letter{}, fmt.Errorf("build template: %w", err)
	}
	if len(items) == 0 {
		s.logger.Warn("chosen sample has no sentences, returning apology", "owner", key)
		return s.apology(key), nil
	}

	cats, err := s.store.Categories(ctx, key)
	if err != nil {
		return Letter{}, fmt.Errorf("load categories: %w", err)
	}

	draft := s.assembler.Assemble(items, cats, set)
	final := s.personalizer.Personalize(ctx, draft, info, key)
	degraded := final == personalizer.FallbackMessage

	rec, err := s.store.Put(ctx, store.Record{
		Owner:   key,
		Kind:    store.KindGeneratedContent,
		Content: final,
		Metadata: map[string]any{
			"student":        info.Name,
			"target_program": info.TargetProgram,
			"draft":          draft,
			"degraded":       degraded,
		},
	})
	if err != nil {
		return Letter{}, fmt.Errorf("save letter: %w", err)
	}

	s.logger.Info("letter generated",
		"owner", key,
		"letter_id", rec.ID,
		"template_items", len(items),
		"opening_patterns", len(set.Opening),
		"closing_patterns", len(set.Closing),
		"degraded", degraded,
	)
	hermes.Emit(s.events, s.logger, hermes.LetterGenerated{
		LetterID: rec.ID.String(),
		Owner:    key,
		Degraded: degraded,
	})

	return Letter{
		ID:        rec.ID,
		Owner:     key,
		Content:   final,
		CreatedAt: rec.CreatedAt,
		Degraded:  degraded,
	}, nil
}

func (s *Service) apology(owner string) Letter {
	return Letter{
		Owner:     owner,
		Content:   assembler.NoTemplateMessage,
		CreatedAt: s.now().UTC(),
		Degraded:  true,
	}
}

// Patterns returns the owner's current opening and closing boilerplate.
func (s *Service) Patterns(ctx context.Context, owner string) (patterns.Set, error) {
	key := category.OwnerKey(owner)
	recs, err := s.store.GetByOwnerAndKind(ctx, key, store.KindWritingSample)
	if err != nil {
		return patterns.Set{}, fmt.Errorf("load samples: %w", err)
	}
	return s.patternsFor(ctx, key, recs), nil
}

// patternsFor consults the cache first. Cache failures only cost a
// recomputation.
func (s *Service) patternsFor(ctx context.Context, owner string, recs []store.Record) patterns.Set {
	contents := make([]string, len(recs))
	ids := make([]string, len(recs))
	for i, rec := range recs {
		contents[i] = rec.Content
		ids[i] = rec.ID.String()
	}

	if s.cache == nil {
		return patterns.Extract(contents)
	}

	fp := s.fingerprint(ids)
	if set, ok, err := s.cache.Get(ctx, owner, fp); err != nil {
		s.logger.Warn("pattern cache read failed", "owner", owner, "error", err)
	} else if ok {
		return set
	}

	set := patterns.Extract(contents)
	if err := s.cache.Set(ctx, owner, fp, set); err != nil {
		s.logger.Warn("pattern cache write failed", "owner", owner, "error", err)
	}
	return set
}

// InvalidatePatterns drops cached pattern sets for owner. Failures are
// logged only.
func (s *Service) InvalidatePatterns(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, owner); err != nil {
		s.logger.Warn("pattern cache invalidation failed", "owner", owner, "error", err)
	}
}
