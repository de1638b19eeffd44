//go:build integration

package store

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func testOwner(t *testing.T, s *Store) string {
	t.Helper()
	owner := "integration-test-" + uuid.New().String()[:8]
	t.Cleanup(func() {
		s.pool.Exec(context.Background(), "DELETE FROM letterforge_records WHERE owner = $1", owner)
	})
	return owner
}

func TestIntegration_PutGetPatch(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := testOwner(t, s)

	rec, err := s.Put(ctx, Record{
		Owner:    owner,
		Kind:     KindWritingSample,
		Content:  "I am writing to recommend Jane Doe.",
		Metadata: map[string]any{"analyzed": false},
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content != rec.Content {
		t.Errorf("expected content %q, got %q", rec.Content, got.Content)
	}
	if got.Bool("analyzed") {
		t.Error("expected analyzed=false before patch")
	}

	if err := s.PatchMetadata(ctx, rec.ID, map[string]any{"analyzed": true}); err != nil {
		t.Fatalf("PatchMetadata failed: %v", err)
	}
	got, err = s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get after patch failed: %v", err)
	}
	if !got.Bool("analyzed") {
		t.Error("expected analyzed=true after patch")
	}

	samples, err := s.GetByOwnerAndKind(ctx, owner, KindWritingSample)
	if err != nil {
		t.Fatalf("GetByOwnerAndKind failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestIntegration_ConcurrentMerge(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := testOwner(t, s)

	sentences := []string{"One.", "Two.", "Three.", "Four.", "Five.", "Six."}
	var wg sync.WaitGroup
	for _, sentence := range sentences {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.MergeCategories(ctx, owner, category.Analysis{Commentary: []string{sentence}}); err != nil {
				t.Errorf("MergeCategories failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Categories(ctx, owner)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(got.Commentary) != len(sentences) {
		t.Errorf("expected %d merged sentences, got %d", len(sentences), len(got.Commentary))
	}
}

func TestIntegration_ClearOwner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := testOwner(t, s)

	if _, err := s.Put(ctx, Record{Owner: owner, Kind: KindWritingSample, Content: "Sample."}); err != nil {
		t.Fatalf("Put sample failed: %v", err)
	}
	letter, err := s.Put(ctx, Record{Owner: owner, Kind: KindGeneratedContent, Content: "Letter."})
	if err != nil {
		t.Fatalf("Put letter failed: %v", err)
	}
	if _, err := s.MergeCategories(ctx, owner, category.Analysis{Qualities: []string{"Kind."}}); err != nil {
		t.Fatalf("MergeCategories failed: %v", err)
	}

	if err := s.ClearOwner(ctx, owner); err != nil {
		t.Fatalf("ClearOwner failed: %v", err)
	}

	remaining, err := s.GetByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("GetByOwner failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != letter.ID {
		t.Errorf("expected only the letter to remain, got %d records", len(remaining))
	}

	cats, err := s.Categories(ctx, owner)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if !cats.Empty() {
		t.Error("expected empty categories after clear")
	}
}
