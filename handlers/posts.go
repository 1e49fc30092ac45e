// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/rankfeed/auth"
	"github.com/danielhkuo/rankfeed/cliparse"
	"github.com/danielhkuo/rankfeed/middleware"
	"github.com/danielhkuo/rankfeed/models"
	"github.com/danielhkuo/rankfeed/posts"
)

type PostHandler struct {
	svc *posts.Service
	cfg cliparse.Config
}

func NewPostHandler(svc *posts.Service, cfg cliparse.Config) *PostHandler {
	return &PostHandler{svc: svc, cfg: cfg}
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.PostInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := h.svc.CreatePost(r.Context(), actorID, req)
	if err != nil {
		writeServiceError(w, err, "create post")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, toPostResponse(models.PostView{Post: post}))
}

// GetPost handles GET /posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if postID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "post id is required")
		return
	}

	view, err := h.svc.GetPost(r.Context(), postID, optionalActor(r, h.cfg))
	if err != nil {
		writeServiceError(w, err, "get post")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toPostResponse(view))
}

// UpdatePost handles PUT /posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if postID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "post id is required")
		return
	}

	actorID, ok := requireActor(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.PostInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), postID, actorID, req)
	if err != nil {
		writeServiceError(w, err, "update post")
		return
	}

	view, err := h.svc.Annotate(r.Context(), post, actorID)
	if err != nil {
		writeServiceError(w, err, "tally post")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toPostResponse(view))
}

// DeletePost handles DELETE /posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if postID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "post id is required")
		return
	}

	actorID, ok := requireActor(w, r, h.cfg)
	if !ok {
		return
	}

	if err := h.svc.DeletePost(r.Context(), postID, actorID); err != nil {
		writeServiceError(w, err, "delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// optionalActor returns the bearer token's user, or "" for anonymous
// readers. A bad token on a read is treated as no token.
func optionalActor(r *http.Request, cfg cliparse.Config) string {
	actorID, err := auth.ActorFromRequest(r, cfg.JWTSecret)
	if err != nil {
		if !errors.Is(err, auth.ErrNoToken) {
			slog.Debug("ignoring invalid bearer token on read", "error", err)
		}
		return ""
	}
	return actorID
}

// requireActor writes 401 and reports false when the request carries no
// usable bearer token.
func requireActor(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (string, bool) {
	actorID, err := auth.ActorFromRequest(r, cfg.JWTSecret)
	if errors.Is(err, auth.ErrNoToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
		return "", false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid bearer token")
		return "", false
	}
	return actorID, true
}

// writeServiceError maps the posts error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	var verr *posts.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ValidationErrorResponse(w, verr.Fields)
	case errors.Is(err, posts.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, posts.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the creator may modify this post")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func toPostResponse(v models.PostView) models.PostResponse {
	return models.PostResponse{
		ID:          v.ID,
		Title:       v.Title,
		Text:        v.Text,
		TextSnippet: posts.Snippet(v.Text),
		CreatorID:   v.CreatorID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		CreatedAgo:  humanize.Time(v.CreatedAt),
		Rating:      v.Rating,
		ViewerVote:  v.ViewerVote,
	}
}
