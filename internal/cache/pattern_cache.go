// Package cache keeps derived pattern sets in Redis so repeated
// generations over an unchanged corpus skip re-extraction.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
)

const keyPrefix = "letterforge:patterns:"

type PatternCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPatternCache(client *redis.Client, ttl time.Duration) *PatternCache {
	return &PatternCache{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get reports ok=false on a miss.
func (c *PatternCache) Get(ctx context.Context, owner, fingerprint string) (patterns.Set, bool, error) {
	data, err := c.client.Get(ctx, Key(owner, fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return patterns.Set{}, false, nil
	}
	if err != nil {
		return patterns.Set{}, false, fmt.Errorf("get cached patterns: %w", err)
	}

	var set patterns.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return patterns.Set{}, false, fmt.Errorf("decode cached patterns: %w", err)
	}
	return set, true, nil
}

func (c *PatternCache) Set(ctx context.Context, owner, fingerprint string, set patterns.Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(owner, fingerprint), data, c.ttl).Err()
}

// Invalidate drops every cached set of owner regardless of fingerprint.
func (c *PatternCache) Invalidate(ctx context.Context, owner string) error {
	iter := c.client.Scan(ctx, 0, ownerPrefix(owner)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached patterns: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Fingerprint identifies a sample corpus by its sorted sample ids.
func Fingerprint(ids []string) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:])
}

// Key hashes the owner so glob characters in owner names cannot widen
// an Invalidate scan.
func Key(owner, fingerprint string) string {
	return ownerPrefix(owner) + fingerprint
}

func ownerPrefix(owner string) string {
	sum := sha256.Sum256([]byte(owner))
	return keyPrefix + hex.EncodeToString(sum[:8]) + ":"
}
