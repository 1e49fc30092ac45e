// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the rankfeed API.

# Handler Types

Each handler is a struct holding the posts service and config:

  - PostHandler: create, read, update and delete posts
  - FeedHandler: cursor-paginated feed in "new" or "top" order
  - VoteHandler: vote casting and tallies

Handlers are created via constructor functions:

	postHandler := handlers.NewPostHandler(svc, cfg)

# Identity

The acting user comes from an "Authorization: Bearer" JWT (see package
auth). Reads accept anonymous callers and include viewer_vote only when a
valid token is sent. Writes answer 401 without one.

# Status Codes

Domain errors from package posts map to:

	*posts.ValidationError → 422 with per-field messages
	posts.ErrNotFound      → 404
	posts.ErrForbidden     → 403

Malformed JSON or query parameters answer 400. Anything else is logged
and answers 500 without detail.

# Feed

	GET /posts?sort=top&limit=20&cursor=<next_cursor>

limit defaults to 20 and is capped at 50. Pass next_cursor from the
previous page to continue; it is omitted on the last page. An unreadable
cursor restarts from the first page.
*/
package handlers
