// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ordering selects the sort of a feed.
type Ordering string

const (
	Chronological Ordering = "new"
	Popularity    Ordering = "top"
)

// ParseOrdering maps a query value to an Ordering. Empty means
// chronological; "rating" is accepted as an alias of top.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(s) {
	case "", "new", "chronological":
		return Chronological, nil
	case "top", "popularity", "rating":
		return Popularity, nil
	}
	return "", fmt.Errorf("unknown ordering %q", s)
}

// Position is the point a feed resumes from. Rows strictly after it in
// the ordering are eligible.
type Position struct {
	// AsOf bounds a popularity listing to posts created before its
	// first page was served.
	AsOf      time.Time
	Rating    int64
	CreatedAt time.Time
	// ID is empty at the start of a listing.
	ID string
}

// Start reports whether p is the head of a listing rather than a
// position after a served row.
func (p Position) Start() bool { return p.ID == "" }

// StartAt is the head of a listing that only sees posts created before t.
func StartAt(t time.Time) Position {
	t = t.UTC().Truncate(time.Microsecond)
	return Position{AsOf: t, CreatedAt: t}
}

// EncodeCursor produces the opaque token for p.
func EncodeCursor(o Ordering, p Position) string {
	var raw string
	switch o {
	case Popularity:
		raw = fmt.Sprintf("t:%d:%d:%d:%s", p.AsOf.UnixMicro(), p.Rating, p.CreatedAt.UnixMicro(), p.ID)
	default:
		raw = fmt.Sprintf("n:%d:%s", p.CreatedAt.UnixMicro(), p.ID)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Head is the start of a fresh listing at now. Posts created at now are
// included.
func Head(now time.Time) Position {
	return StartAt(now.Add(time.Microsecond))
}

// DecodeCursor parses a token from EncodeCursor. An empty token is the
// Head at now. A bare timestamp is rejected: it cannot order posts
// created within the same instant.
func DecodeCursor(o Ordering, token string, now time.Time) (Position, error) {
	if token == "" {
		return Head(now), nil
	}
	if _, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Position{}, ErrMalformedCursor
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Position{}, ErrMalformedCursor
	}
	raw := string(b)

	switch o {
	case Popularity:
		parts := strings.SplitN(raw, ":", 5)
		if len(parts) != 5 || parts[0] != "t" {
			return Position{}, ErrMalformedCursor
		}
		asOf, err1 := parseMicros(parts[1])
		rating, err2 := strconv.ParseInt(parts[2], 10, 64)
		created, err3 := parseMicros(parts[3])
		if err1 != nil || err2 != nil || err3 != nil || parts[4] == "" {
			return Position{}, ErrMalformedCursor
		}
		return Position{AsOf: asOf, Rating: rating, CreatedAt: created, ID: parts[4]}, nil
	default:
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 || parts[0] != "n" {
			return Position{}, ErrMalformedCursor
		}
		created, err := parseMicros(parts[1])
		if err != nil || parts[2] == "" {
			return Position{}, ErrMalformedCursor
		}
		return Position{AsOf: created, CreatedAt: created, ID: parts[2]}, nil
	}
}

func parseMicros(s string) (time.Time, error) {
	us, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMicro(us).UTC(), nil
}
