package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortify/internal/shortener"
)

// RedisCacheDirectory wraps a Directory with Redis caching for slug
// lookups on the redirect hot path. Writes go through to the inner
// directory and refresh the cache, so lifecycle changes (disable,
// expiry) are visible immediately.
type RedisCacheDirectory struct {
	inner  shortener.Directory
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheDirectory creates a new Redis-cached directory decorator.
func NewRedisCacheDirectory(
	inner shortener.Directory, client *redis.Client, ttl time.Duration,
) *RedisCacheDirectory {
	return &RedisCacheDirectory{
		inner:  inner,
		client: client,
		prefix: "url:",
		ttl:    ttl,
	}
}

// Save stores the URL in the underlying directory and updates the cache.
func (r *RedisCacheDirectory) Save(ctx context.Context, url *shortener.URL) error {
	if err := r.inner.Save(ctx, url); err != nil {
		return err
	}

	r.cacheURL(ctx, url)

	return nil
}

// FindBySlug resolves a slug, checking the cache first.
func (r *RedisCacheDirectory) FindBySlug(ctx context.Context, slug string) (*shortener.URL, error) {
	if url, err := r.getFromCache(ctx, slug); err == nil {
		return url, nil
	}

	url, err := r.inner.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	r.cacheURL(ctx, url)

	return url, nil
}

// FindByCreator is not cached; listing is not on the hot path.
func (r *RedisCacheDirectory) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*shortener.URL, error) {
	return r.inner.FindByCreator(ctx, creatorID)
}

// Update persists lifecycle changes and refreshes the cache.
func (r *RedisCacheDirectory) Update(ctx context.Context, url *shortener.URL) error {
	if err := r.inner.Update(ctx, url); err != nil {
		return err
	}

	r.cacheURL(ctx, url)

	return nil
}

func (r *RedisCacheDirectory) getFromCache(ctx context.Context, slug string) (*shortener.URL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+slug).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	id, err := uuid.Parse(result["id"])
	if err != nil {
		return nil, shortener.ErrNotFound
	}

	url := &shortener.URL{
		ID:        id,
		Slug:      result["slug"],
		LongURL:   result["long_url"],
		Title:     result["title"],
		Disabled:  result["disabled"] == "1",
		CreatedAt: parseNanos(result["created_at"]),
	}

	if raw := result["expires_at"]; raw != "" {
		expiresAt := parseNanos(raw)
		url.ExpiresAt = &expiresAt
	}

	if raw := result["creator_id"]; raw != "" {
		if creatorID, err := uuid.Parse(raw); err == nil {
			url.CreatorID = &creatorID
		}
	}

	return url, nil
}

func (r *RedisCacheDirectory) cacheURL(ctx context.Context, url *shortener.URL) {
	fields := map[string]interface{}{
		"id":         url.ID.String(),
		"slug":       url.Slug,
		"long_url":   url.LongURL,
		"title":      url.Title,
		"created_at": url.CreatedAt.UnixNano(),
		"expires_at": "",
		"creator_id": "",
	}

	if url.ExpiresAt != nil {
		fields["expires_at"] = url.ExpiresAt.UnixNano()
	}

	if url.CreatorID != nil {
		fields["creator_id"] = url.CreatorID.String()
	}

	if url.Disabled {
		fields["disabled"] = "1"
	} else {
		fields["disabled"] = "0"
	}

	key := r.prefix + url.Slug

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, fields)

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	// Cache failures are invisible to callers; the store stays authoritative.
	_, _ = pipe.Exec(ctx)
}

func parseNanos(raw string) time.Time {
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(0, nanos)
}

// Compile-time check.
var _ shortener.Directory = (*RedisCacheDirectory)(nil)
