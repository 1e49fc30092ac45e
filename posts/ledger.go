// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"fmt"

	"github.com/danielhkuo/rankfeed/models"
)

// Ledger stores one signed vote per (user, post).
type Ledger struct {
	db    querier
	tally *Tally
}

func NewLedger(db querier, tally *Tally) *Ledger {
	return &Ledger{db: db, tally: tally}
}

// NormalizeVote maps any negative value to a downvote and everything else
// to an upvote.
func NormalizeVote(value int) int {
	if value < 0 {
		return models.VoteDown
	}
	return models.VoteUp
}

// Upsert sets userID's vote on postID, replacing any earlier one, and
// returns the post's new sum. The existence check and the write are one
// statement, so a missing post writes nothing and concurrent voters on
// the same key are serialized by the primary key. A delete committing
// between the existence check and the foreign key check is reported as
// ErrNotFound too.
func (l *Ledger) Upsert(ctx context.Context, userID, postID string, value int) (int64, error) {
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO vote (user_id, post_id, value)
		SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), CAST($3 AS INTEGER)
		WHERE EXISTS (SELECT 1 FROM post WHERE id = $2)
		ON CONFLICT (user_id, post_id) DO UPDATE SET value = excluded.value
	`, userID, postID, NormalizeVote(value))
	if isForeignKeyViolation(err) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to upsert vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to upsert vote: %w", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}

	return l.tally.Aggregate(ctx, postID)
}
