// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/rankfeed/models"
)

// FeedQuery describes one annotated read of posts. Build turns it into
// SQL; only constant fragments reach the query text and every value is
// passed as an argument.
type FeedQuery struct {
	Ordering Ordering
	// After bounds the rows to those strictly past it. Zero means
	// unbounded.
	After Position
	// Limit of 0 means no limit.
	Limit    int
	ViewerID string
	// PostID restricts the read to a single post.
	PostID string
}

type placeholders struct {
	args []any
}

func (p *placeholders) next(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// Build returns the statement and its arguments.
func (q FeedQuery) Build() (string, []any) {
	var ph placeholders
	var b strings.Builder

	viewer := viewerVoteColumn(&ph, q.ViewerID)

	b.WriteString(`SELECT f.id, f.title, f.body, f.creator_id, f.created_at, f.updated_at, f.rating, f.viewer_vote
FROM (
	SELECT p.id, p.title, p.body, p.creator_id, p.created_at, p.updated_at,
	       ` + ratingColumn + ` AS rating,
	       ` + viewer + ` AS viewer_vote
	FROM post p
	LEFT JOIN vote v ON v.post_id = p.id`)
	if q.PostID != "" {
		b.WriteString("\n\tWHERE p.id = " + ph.next(q.PostID))
	}
	b.WriteString(`
	GROUP BY p.id, p.title, p.body, p.creator_id, p.created_at, p.updated_at
) f`)

	if conds := q.cursorPredicates(&ph); len(conds) > 0 {
		b.WriteString("\nWHERE " + strings.Join(conds, " AND "))
	}

	if q.Ordering == Popularity {
		b.WriteString("\nORDER BY f.rating DESC, f.created_at DESC, f.id DESC")
	} else {
		b.WriteString("\nORDER BY f.created_at DESC, f.id DESC")
	}

	if q.Limit > 0 {
		b.WriteString("\nLIMIT " + ph.next(q.Limit))
	}

	return b.String(), ph.args
}

func (q FeedQuery) cursorPredicates(ph *placeholders) []string {
	a := q.After
	if a.CreatedAt.IsZero() {
		return nil
	}

	// (created_at, id) strictly below the position
	below := func() string {
		t := a.CreatedAt.UnixMicro()
		if a.Start() {
			return "f.created_at < " + ph.next(t)
		}
		return "(f.created_at < " + ph.next(t) +
			" OR (f.created_at = " + ph.next(t) + " AND f.id < " + ph.next(a.ID) + "))"
	}

	if q.Ordering != Popularity {
		return []string{below()}
	}

	conds := []string{"f.created_at < " + ph.next(a.AsOf.UnixMicro())}
	if !a.Start() {
		conds = append(conds, "(f.rating < "+ph.next(a.Rating)+
			" OR (f.rating = "+ph.next(a.Rating)+" AND "+below()+"))")
	}
	return conds
}

// run executes q and scans the annotated rows.
func (q FeedQuery) run(ctx context.Context, db querier) ([]models.PostView, error) {
	query, args := q.Build()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var views []models.PostView
	for rows.Next() {
		var v models.PostView
		var created, updated int64
		var own sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Title, &v.Text, &v.CreatorID, &created, &updated, &v.Rating, &own); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		v.CreatedAt = fromMicros(created)
		v.UpdatedAt = fromMicros(updated)
		v.ViewerVote = nullableVote(own)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return views, nil
}

func fromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}
