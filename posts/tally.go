// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tally reads vote sums. It never writes.
type Tally struct {
	db querier
}

func NewTally(db querier) *Tally {
	return &Tally{db: db}
}

// Aggregate returns the sum of all votes on postID (0 when there are none).
func (t *Tally) Aggregate(ctx context.Context, postID string) (int64, error) {
	var sum int64
	err := t.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(value), 0) FROM vote WHERE post_id = $1
	`, postID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum votes: %w", err)
	}
	return sum, nil
}

// AggregateWithViewer returns the sum and viewerID's own vote, which is
// nil when the viewer has not voted or viewerID is empty.
func (t *Tally) AggregateWithViewer(ctx context.Context, postID, viewerID string) (int64, *int, error) {
	if viewerID == "" {
		sum, err := t.Aggregate(ctx, postID)
		return sum, nil, err
	}

	var sum int64
	var own sql.NullInt64
	err := t.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(value), 0),
		       MAX(CASE WHEN user_id = $2 THEN value END)
		FROM vote
		WHERE post_id = $1
	`, postID, viewerID).Scan(&sum, &own)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to sum votes: %w", err)
	}
	return sum, nullableVote(own), nil
}

// ratingColumn and viewerVoteColumn are the same aggregation expressed
// over a "LEFT JOIN vote v", for reads that annotate many posts at once.
const ratingColumn = "COALESCE(SUM(v.value), 0)"

func viewerVoteColumn(ph *placeholders, viewerID string) string {
	if viewerID == "" {
		return "CAST(NULL AS INTEGER)"
	}
	return "MAX(CASE WHEN v.user_id = " + ph.next(viewerID) + " THEN v.value END)"
}

func nullableVote(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
