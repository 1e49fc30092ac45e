// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/rankfeed/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Page is one slice of a feed.
type Page struct {
	Items   []models.PostView
	HasMore bool
	// NextCursor resumes after the last item. Set only when HasMore.
	NextCursor string
}

type Planner struct {
	db  querier
	now func() time.Time
}

func NewPlanner(db querier, now func() time.Time) *Planner {
	return &Planner{db: db, now: now}
}

// ClampPageSize applies the default and the upper bound.
func ClampPageSize(n int) int {
	if n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// ListFeed returns the page after cursor. A cursor that cannot be decoded
// restarts the listing from the top.
func (pl *Planner) ListFeed(ctx context.Context, o Ordering, cursor string, pageSize int, viewerID string) (Page, error) {
	limit := ClampPageSize(pageSize)

	after, err := DecodeCursor(o, cursor, pl.now())
	if errors.Is(err, ErrMalformedCursor) {
		slog.Warn("malformed feed cursor, starting over", "ordering", o, "cursor", cursor)
		after = Head(pl.now())
	}

	// One extra row tells us whether another page exists.
	views, err := FeedQuery{
		Ordering: o,
		After:    after,
		Limit:    limit + 1,
		ViewerID: viewerID,
	}.run(ctx, pl.db)
	if err != nil {
		return Page{}, err
	}

	page := Page{Items: views}
	if len(views) > limit {
		page.Items = views[:limit]
		page.HasMore = true
		last := page.Items[limit-1]
		page.NextCursor = EncodeCursor(o, positionAfter(o, after.AsOf, last))
	}
	if page.Items == nil {
		page.Items = []models.PostView{}
	}
	return page, nil
}

func positionAfter(o Ordering, asOf time.Time, v models.PostView) Position {
	p := Position{AsOf: v.CreatedAt, CreatedAt: v.CreatedAt, ID: v.ID}
	if o == Popularity {
		p.AsOf = asOf
		p.Rating = v.Rating
	}
	return p
}
