// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/rankfeed/cliparse"
	"github.com/danielhkuo/rankfeed/middleware"
	"github.com/danielhkuo/rankfeed/models"
	"github.com/danielhkuo/rankfeed/posts"
)

type FeedHandler struct {
	svc *posts.Service
	cfg cliparse.Config
}

func NewFeedHandler(svc *posts.Service, cfg cliparse.Config) *FeedHandler {
	return &FeedHandler{svc: svc, cfg: cfg}
}

// ListFeed handles GET /posts?sort=new|top&cursor=&limit=
func (h *FeedHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ordering, err := posts.ParseOrdering(q.Get("sort"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sort must be 'new' or 'top'")
		return
	}

	// Out-of-range limits are clamped by the planner
	limit := 0
	if s := q.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}

	page, err := h.svc.ListFeed(r.Context(), ordering, q.Get("cursor"), limit, optionalActor(r, h.cfg))
	if err != nil {
		writeServiceError(w, err, "list feed")
		return
	}

	items := make([]models.PostResponse, 0, len(page.Items))
	for _, v := range page.Items {
		items = append(items, toPostResponse(v))
	}

	middleware.JSONResponse(w, http.StatusOK, models.FeedResponse{
		Items:      items,
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
	})
}
