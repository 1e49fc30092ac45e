// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/rankfeed/models"
)

// PostCache holds plain post records. Misses and cache failures look the
// same to the repository.
type PostCache interface {
	Get(ctx context.Context, id string) (models.Post, bool)
	Set(ctx context.Context, post models.Post)
	Delete(ctx context.Context, id string)
}

type noCache struct{}

func (noCache) Get(context.Context, string) (models.Post, bool) { return models.Post{}, false }
func (noCache) Set(context.Context, models.Post)                {}
func (noCache) Delete(context.Context, string)                  {}

type Repository struct {
	db    querier
	cache PostCache
	now   func() time.Time
}

func NewRepository(db querier, cache PostCache, now func() time.Time) *Repository {
	if cache == nil {
		cache = noCache{}
	}
	return &Repository{db: db, cache: cache, now: now}
}

func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// Get returns the stored post or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (models.Post, error) {
	if post, ok := r.cache.Get(ctx, id); ok {
		return post, nil
	}

	var post models.Post
	var created, updated int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, body, creator_id, created_at, updated_at
		FROM post
		WHERE id = $1
	`, id).Scan(&post.ID, &post.Title, &post.Text, &post.CreatorID, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	post.CreatedAt = fromMicros(created)
	post.UpdatedAt = fromMicros(updated)

	r.cache.Set(ctx, post)
	return post, nil
}

// Create validates the input and stores a new post owned by creatorID.
func (r *Repository) Create(ctx context.Context, in models.PostInput, creatorID string) (models.Post, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return models.Post{}, err
	}

	now := r.timestamp()
	post := models.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Text:      in.Text,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO post (id, title, body, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, post.ID, post.Title, post.Text, post.CreatorID, now.UnixMicro(), now.UnixMicro())
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// Update replaces title and text. Validation runs first, then the
// existence check, then the ownership check.
func (r *Repository) Update(ctx context.Context, id, actorID string, in models.PostInput) (models.Post, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return models.Post{}, err
	}

	post, err := r.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if err := Authorize(actorID, post); err != nil {
		return models.Post{}, err
	}

	post.Title = in.Title
	post.Text = in.Text
	post.UpdatedAt = r.timestamp()

	// creator_id in the filter keeps the write gated even if the row
	// changed hands between the read and here
	res, err := r.db.ExecContext(ctx, `
		UPDATE post
		SET title = $1, body = $2, updated_at = $3
		WHERE id = $4 AND creator_id = $5
	`, post.Title, post.Text, post.UpdatedAt.UnixMicro(), id, actorID)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	r.cache.Delete(ctx, id)

	n, err := res.RowsAffected()
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	if n == 0 {
		return models.Post{}, ErrNotFound
	}
	return post, nil
}

// Delete removes the post and, through the foreign key, its votes.
func (r *Repository) Delete(ctx context.Context, id, actorID string) error {
	post, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, post); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM post WHERE id = $1 AND creator_id = $2
	`, id, actorID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	r.cache.Delete(ctx, id)

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
