// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/rankfeed/cliparse"
	"github.com/danielhkuo/rankfeed/middleware"
	"github.com/danielhkuo/rankfeed/models"
	"github.com/danielhkuo/rankfeed/posts"
)

type VoteHandler struct {
	svc *posts.Service
	cfg cliparse.Config
}

func NewVoteHandler(svc *posts.Service, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{svc: svc, cfg: cfg}
}

// CastVote handles POST /posts/{id}/votes
// Any negative value is a downvote, anything else an upvote.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if postID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "post id is required")
		return
	}

	userID, ok := requireActor(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rating, err := h.svc.CastVote(r.Context(), postID, userID, req.Value)
	if err != nil {
		writeServiceError(w, err, "cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		PostID: postID,
		Rating: rating,
	})
}

// GetTally handles GET /posts/{id}/votes
func (h *VoteHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if postID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "post id is required")
		return
	}

	rating, own, err := h.svc.GetTally(r.Context(), postID, optionalActor(r, h.cfg))
	if err != nil {
		writeServiceError(w, err, "get tally")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		PostID:     postID,
		Rating:     rating,
		ViewerVote: own,
	})
}
