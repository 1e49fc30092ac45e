// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the rankfeed API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, svc, cfg)

# Endpoints

Health (pings the database):

	GET /health

Feed (public; the viewer's own vote is included when a bearer token is sent):

	GET /posts?sort=new|top&cursor=&limit=

Posts (writes require a bearer token; update and delete only by the creator):

	POST   /posts      - Create post
	GET    /posts/{id} - Post with rating
	PUT    /posts/{id} - Replace title and text
	DELETE /posts/{id} - Delete post and its votes

Votes:

	POST /posts/{id}/votes - Cast or replace a vote ({"value": 1 | -1})
	GET  /posts/{id}/votes - Rating and the viewer's vote
*/
package router
