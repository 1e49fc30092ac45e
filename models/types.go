package models

import "time"

// Vote values
const (
	VoteUp   = 1
	VoteDown = -1
)

// Request types

type PostInput struct {
	Title string `json:"title" validate:"required,max=300"`
	Text  string `json:"text" validate:"required,max=10000"`
}

type VoteRequest struct {
	Value int `json:"value"`
}

// Response types

type PostResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	TextSnippet string    `json:"text_snippet"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedAgo  string    `json:"created_ago"`
	Rating      int64     `json:"rating"`
	ViewerVote  *int      `json:"viewer_vote,omitempty"`
}

type FeedResponse struct {
	Items      []PostResponse `json:"items"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

type VoteResponse struct {
	PostID string `json:"post_id"`
	Rating int64  `json:"rating"`
}

type TallyResponse struct {
	PostID     string `json:"post_id"`
	Rating     int64  `json:"rating"`
	ViewerVote *int   `json:"viewer_vote,omitempty"`
}

// Domain types

// Post is the stored record. Rating and viewer vote never live here.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Vote struct {
	UserID string `json:"user_id"`
	PostID string `json:"post_id"`
	Value  int    `json:"value"`
}

// PostView is the read model produced by feed and single-post reads
type PostView struct {
	Post
	Rating     int64
	ViewerVote *int // nil when the viewer has not voted or is anonymous
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}
