// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the rankfeed API server.

rankfeed is a ranked-content feed: users publish posts, vote them up or
down, and page through them newest-first or highest-rated-first.

# Starting the Server

The server reads flags, environment variables and an optional .env file:

	DATABASE_URL=rankfeed.db JWT_SECRET=dev go run .

Or with flags:

	go run . -p 4000 -t postgres -d "postgres://..." -jwt-secret dev

# Configuration

Required settings:

  - DATABASE_URL (-d): DSN, or a file path for SQLite
  - JWT_SECRET (-jwt-secret): HS256 secret for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - REDIS_URL (-redis): enables the post cache
  - NATS_URL (-nats): enables change events on post.* subjects
  - CLIENT_HOSTS (-clients): CORS allow-list
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - posts: feed pagination, vote ledger, tallies, ownership checks
  - handlers: HTTP request handlers (posts, feed, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Records, read model, request/response types
  - auth: Bearer token issue and verification
  - cache: Redis post cache
  - events: NATS change events
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
