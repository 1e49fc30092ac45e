// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the driver from cfg.DatabaseType and pings the database:

	conn, err := db.Open(ctx, cfg)

  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib
  - sqlite: modernc.org/sqlite, with foreign keys, a busy timeout and WAL
    turned on, and a single open connection

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - post: title, body, creator and timestamps (Unix microseconds)
  - vote: one signed value per (user_id, post_id)

# Relationships

	post 1──* vote

vote.post_id uses ON DELETE CASCADE.

# Indexes

  - post.created_at
  - post.creator_id
  - vote.post_id
*/
package db
