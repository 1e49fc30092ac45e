// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package posts implements the ranked feed: post storage, the vote ledger,
tallies and cursor pagination.

# Posts and Views

A models.Post is a plain record. Ratings and the viewer's own vote are
never stored on it; feed and single-post reads return models.PostView,
which carries both alongside the post.

# Votes

Each user holds at most one vote per post, +1 or -1. CastVote replaces
any earlier vote in a single statement that also checks the post exists,
so a vote on a missing post writes nothing. The rating is the sum of all
votes.

# Feeds

Two orderings are supported:

	new  created_at DESC, id DESC
	top  rating DESC, created_at DESC, id DESC

Cursors are opaque tokens naming the last row served. A "top" cursor also
pins the time the listing began, so posts created mid-listing do not
shift later pages. A bare timestamp is not a cursor: posts created in
the same millisecond would be skipped. Unreadable cursors restart the
listing.

# Errors

Callers switch on ErrNotFound, ErrForbidden and *ValidationError. Anything
else is an infrastructure failure.
*/
package posts
