// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/danielhkuo/rankfeed/events"
	"github.com/danielhkuo/rankfeed/models"
)

// Service is the entry point for the transport layer. The acting user is
// always an explicit argument; an empty viewerID means anonymous.
type Service struct {
	repo    *Repository
	planner *Planner
	ledger  *Ledger
	tally   *Tally
	events  events.Publisher
	now     func() time.Time
}

type Option func(*options)

type options struct {
	cache     PostCache
	publisher events.Publisher
	now       func() time.Time
}

// WithCache enables read-through caching of post records.
func WithCache(c PostCache) Option {
	return func(o *options) { o.cache = c }
}

// WithPublisher sends change events after successful writes.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	o := options{publisher: events.Nop{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	tally := NewTally(db)
	return &Service{
		repo:    NewRepository(db, o.cache, o.now),
		planner: NewPlanner(db, o.now),
		ledger:  NewLedger(db, tally),
		tally:   tally,
		events:  o.publisher,
		now:     o.now,
	}
}

func (s *Service) ListFeed(ctx context.Context, o Ordering, cursor string, pageSize int, viewerID string) (Page, error) {
	return s.planner.ListFeed(ctx, o, cursor, pageSize, viewerID)
}

// GetPost reads the post and its tally in one statement.
func (s *Service) GetPost(ctx context.Context, id, viewerID string) (models.PostView, error) {
	views, err := FeedQuery{PostID: id, ViewerID: viewerID}.run(ctx, s.tally.db)
	if err != nil {
		return models.PostView{}, err
	}
	if len(views) == 0 {
		return models.PostView{}, ErrNotFound
	}
	return views[0], nil
}

// Annotate attaches the current tally to a post the caller already holds.
// It does not check that the post still exists; a deleted post has no
// votes left and reads as rating 0.
func (s *Service) Annotate(ctx context.Context, post models.Post, viewerID string) (models.PostView, error) {
	rating, own, err := s.tally.AggregateWithViewer(ctx, post.ID, viewerID)
	if err != nil {
		return models.PostView{}, err
	}
	return models.PostView{Post: post, Rating: rating, ViewerVote: own}, nil
}

func (s *Service) CreatePost(ctx context.Context, creatorID string, in models.PostInput) (models.Post, error) {
	post, err := s.repo.Create(ctx, in, creatorID)
	if err != nil {
		return models.Post{}, err
	}
	slog.Info("post created", "post_id", post.ID, "creator_id", creatorID)
	s.publish(ctx, events.Event{Type: events.PostCreated, PostID: post.ID, ActorID: creatorID})
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id, actorID string, in models.PostInput) (models.Post, error) {
	post, err := s.repo.Update(ctx, id, actorID, in)
	if err != nil {
		return models.Post{}, err
	}
	slog.Info("post updated", "post_id", id, "actor_id", actorID)
	s.publish(ctx, events.Event{Type: events.PostUpdated, PostID: id, ActorID: actorID})
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, id, actorID string) error {
	if err := s.repo.Delete(ctx, id, actorID); err != nil {
		return err
	}
	slog.Info("post deleted", "post_id", id, "actor_id", actorID)
	s.publish(ctx, events.Event{Type: events.PostDeleted, PostID: id, ActorID: actorID})
	return nil
}

// CastVote records userID's vote and returns the post's new rating.
// Voting is open to any user, including the creator.
func (s *Service) CastVote(ctx context.Context, postID, userID string, value int) (int64, error) {
	value = NormalizeVote(value)
	rating, err := s.ledger.Upsert(ctx, userID, postID, value)
	if err != nil {
		return 0, err
	}
	slog.Info("vote cast", "post_id", postID, "user_id", userID, "value", value, "rating", rating)
	s.publish(ctx, events.Event{Type: events.PostVoted, PostID: postID, ActorID: userID, Value: value, Rating: &rating})
	return rating, nil
}

// GetTally returns the rating of an existing post and viewerID's vote.
func (s *Service) GetTally(ctx context.Context, postID, viewerID string) (int64, *int, error) {
	if _, err := s.repo.Get(ctx, postID); err != nil {
		return 0, nil, err
	}
	return s.tally.AggregateWithViewer(ctx, postID, viewerID)
}

// publish never fails the caller; the write has already committed.
func (s *Service) publish(ctx context.Context, e events.Event) {
	e.At = s.now().UTC()
	if err := s.events.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish event", "type", e.Type, "post_id", e.PostID, "error", err)
	}
}
