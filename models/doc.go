// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - PostInput: title, text (also carries the validation tags)
  - VoteRequest: value (any negative number is a downvote, anything else an upvote)

# Response Types

Types for JSON responses:

  - PostResponse: post fields plus text_snippet, created_ago, rating, viewer_vote
  - FeedResponse: items, has_more, next_cursor
  - VoteResponse: post_id, rating
  - TallyResponse: post_id, rating, viewer_vote
  - ErrorResponse: error, message, fields

# Domain Types

  - Post: the stored record, immutable once read
  - Vote: one signed value per (user, post)
  - PostView: a Post with its rating and the viewer's vote, computed at read time
  - FieldError: one failed field check

# Constants

Vote values:

	VoteUp   = 1
	VoteDown = -1
*/
package models
