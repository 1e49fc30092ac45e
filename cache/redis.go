// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/rankfeed/models"
)

// DefaultTTL bounds how long a post record may be served from Redis.
const DefaultTTL = 5 * time.Minute

// PostCache stores post records in Redis. Every failure degrades to a
// miss; the database stays authoritative.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

func postKey(id string) string {
	return "post:" + id
}

func (c *PostCache) Get(ctx context.Context, id string) (models.Post, bool) {
	data, err := c.client.Get(ctx, postKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Post{}, false
	}
	if err != nil {
		slog.Warn("post cache read failed", "post_id", id, "error", err)
		return models.Post{}, false
	}

	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		slog.Warn("post cache entry unreadable", "post_id", id, "error", err)
		return models.Post{}, false
	}
	return post, true
}

func (c *PostCache) Set(ctx context.Context, post models.Post) {
	data, err := json.Marshal(post)
	if err != nil {
		slog.Warn("failed to encode post for cache", "post_id", post.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, postKey(post.ID), data, c.ttl).Err(); err != nil {
		slog.Warn("post cache write failed", "post_id", post.ID, "error", err)
	}
}

func (c *PostCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, postKey(id)).Err(); err != nil {
		slog.Warn("post cache invalidation failed", "post_id", id, "error", err)
	}
}
