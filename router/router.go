// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rankfeed/cliparse"
	"github.com/danielhkuo/rankfeed/handlers"
	"github.com/danielhkuo/rankfeed/middleware"
	"github.com/danielhkuo/rankfeed/posts"
)

func NewRouter(db *sql.DB, svc *posts.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	postHandler := handlers.NewPostHandler(svc, cfg)
	feedHandler := handlers.NewFeedHandler(svc, cfg)
	voteHandler := handlers.NewVoteHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Feed (public, viewer vote when authenticated)
	mux.HandleFunc("GET /posts", middleware.WithLogging(feedHandler.ListFeed))

	// Posts (writes require a bearer token)
	mux.HandleFunc("POST /posts", middleware.WithLogging(postHandler.CreatePost))
	mux.HandleFunc("GET /posts/{id}", middleware.WithLogging(postHandler.GetPost))
	mux.HandleFunc("PUT /posts/{id}", middleware.WithLogging(postHandler.UpdatePost))
	mux.HandleFunc("DELETE /posts/{id}", middleware.WithLogging(postHandler.DeletePost))

	// Votes
	mux.HandleFunc("POST /posts/{id}/votes", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("GET /posts/{id}/votes", middleware.WithLogging(voteHandler.GetTally))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rankfeed API v1"))
	})

	return mux
}
