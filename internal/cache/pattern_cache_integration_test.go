//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
)

func TestIntegration_PatternCache(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}
	ctx := context.Background()

	client, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	c := NewPatternCache(client, time.Minute)
	owner := "integration-" + uuid.NewString()
	fp := Fingerprint([]string{"1", "2"})

	_, ok, err := c.Get(ctx, owner, fp)
	require.NoError(t, err)
	assert.False(t, ok)

	want := patterns.Set{Opening: []string{"Hello."}, Closing: []string{"Sincerely."}}
	require.NoError(t, c.Set(ctx, owner, fp, want))

	got, ok, err := c.Get(ctx, owner, fp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx, owner))
	_, ok, err = c.Get(ctx, owner, fp)
	require.NoError(t, err)
	assert.False(t, ok)
}
