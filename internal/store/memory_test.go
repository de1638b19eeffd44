package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

var _ Backend = (*Memory)(nil)
var _ Backend = (*Store)(nil)

func TestMemory_PutAssignsIDAndTime(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rec, err := m.Put(ctx, Record{Owner: "Ms. Smith", Kind: KindWritingSample, Content: "Hello."})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.NotNil(t, rec.Metadata)

	got, err := m.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestMemory_GetDeleteNotFound(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, uuid.New()), ErrNotFound)
	assert.ErrorIs(t, m.PatchMetadata(ctx, uuid.New(), map[string]any{"a": true}), ErrNotFound)
}

func TestMemory_ListingsFilterAndKeepOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.Put(ctx, Record{Owner: "smith", Kind: KindWritingSample, Content: "one"})
	_, _ = m.Put(ctx, Record{Owner: "olsen", Kind: KindWritingSample, Content: "two"})
	c, _ := m.Put(ctx, Record{Owner: "smith", Kind: KindGeneratedContent, Content: "three"})
	d, _ := m.Put(ctx, Record{Owner: "smith", Kind: KindWritingSample, Content: "four"})

	all, err := m.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	owned, err := m.GetByOwner(ctx, "smith")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID, d.ID}, ids(owned))

	samples, err := m.GetByOwnerAndKind(ctx, "smith", KindWritingSample)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID, d.ID}, ids(samples))

	require.NoError(t, m.Delete(ctx, a.ID))
	samples, _ = m.GetByOwnerAndKind(ctx, "smith", KindWritingSample)
	assert.Equal(t, []uuid.UUID{d.ID}, ids(samples))
}

func TestMemory_PatchMetadata(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rec, _ := m.Put(ctx, Record{Owner: "smith", Kind: KindWritingSample, Metadata: map[string]any{"analyzed": false, "source": "upload"}})
	require.NoError(t, m.PatchMetadata(ctx, rec.ID, map[string]any{"analyzed": true}))

	got, _ := m.Get(ctx, rec.ID)
	assert.True(t, got.Bool("analyzed"))
	assert.Equal(t, "upload", got.Metadata["source"])
}

func TestMemory_ReturnedRecordsAreCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rec, _ := m.Put(ctx, Record{Owner: "smith", Kind: KindWritingSample})
	rec.Metadata["analyzed"] = true

	got, _ := m.Get(ctx, rec.ID)
	assert.False(t, got.Bool("analyzed"))
}

func TestMemory_CategoriesEmptyOwner(t *testing.T) {
	got, err := NewMemory().Categories(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestMemory_MergeIsCumulativeAndKeyed(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.MergeCategories(ctx, "Ms.  Smith", category.Analysis{Endorsement: []string{"I recommend Jane."}})
	require.NoError(t, err)
	merged, err := m.MergeCategories(ctx, " Ms. Smith ", category.Analysis{
		Endorsement: []string{"I recommend Jane."},
		Qualities:   []string{"She is kind."},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"I recommend Jane."}, merged.Endorsement)
	assert.Equal(t, []string{"She is kind."}, merged.Qualities)

	got, _ := m.Categories(ctx, "Ms. Smith")
	assert.Equal(t, merged, got)
}

func TestMemory_AnalysisIsListedAsRecord(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.MergeCategories(ctx, "smith", category.Analysis{Qualities: []string{"She is kind."}})
	require.NoError(t, err)
	_, err = m.MergeCategories(ctx, "smith", category.Analysis{Endorsement: []string{"I recommend Jane."}})
	require.NoError(t, err)

	recs, err := m.GetByOwnerAndKind(ctx, "smith", KindSampleAnalysis)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.JSONEq(t,
		`{"introduction_context":[],"endorsement":["I recommend Jane."],"commentary":[],"qualities":["She is kind."],"further_discussion":[]}`,
		recs[0].Content)
	assert.Contains(t, recs[0].Metadata, "updated_at")

	owned, _ := m.GetByOwner(ctx, "smith")
	assert.Len(t, owned, 1)
}

func TestMemory_ConcurrentMergesLoseNothing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.MergeCategories(ctx, "smith", category.Analysis{
				Commentary: []string{fmt.Sprintf("Sentence %d.", i)},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := m.Categories(ctx, "smith")
	assert.Len(t, got.Commentary, 20)
}

func TestMemory_ClearOwner(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, _ = m.Put(ctx, Record{Owner: "smith", Kind: KindWritingSample})
	letter, _ := m.Put(ctx, Record{Owner: "smith", Kind: KindGeneratedContent})
	other, _ := m.Put(ctx, Record{Owner: "olsen", Kind: KindWritingSample})
	_, _ = m.MergeCategories(ctx, "smith", category.Analysis{Commentary: []string{"x."}})
	_, _ = m.MergeCategories(ctx, "olsen", category.Analysis{Commentary: []string{"y."}})

	require.NoError(t, m.ClearOwner(ctx, "smith"))

	smith, _ := m.GetByOwner(ctx, "smith")
	assert.Equal(t, []uuid.UUID{letter.ID}, ids(smith))
	olsen, _ := m.GetByOwnerAndKind(ctx, "olsen", KindWritingSample)
	assert.Equal(t, []uuid.UUID{other.ID}, ids(olsen))

	cleared, _ := m.Categories(ctx, "smith")
	assert.True(t, cleared.Empty())
	kept, _ := m.Categories(ctx, "olsen")
	assert.Equal(t, []string{"y."}, kept.Commentary)
}

func ids(recs []Record) []uuid.UUID {
	out := make([]uuid.UUID, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
