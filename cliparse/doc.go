// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: DSN, or a file path for sqlite (required)
  - DatabaseType: postgres, pgx or sqlite (default: sqlite)
  - JWTSecret: Secret for bearer token signatures (required)
  - RedisURL: Post cache; caching is off when empty
  - NATSURL: Change events; publishing is off when empty
  - ClientHosts: CORS allow-list; the request origin is reflected when empty
  - LogLevel: slog level (default: info)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-jwt-secret  Bearer token secret
	-redis       Redis URL
	-nats        NATS URL
	-clients     Allowed origins
	-log-level   Log level

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → -jwt-secret
	REDIS_URL     → -redis
	NATS_URL      → -nats
	CLIENT_HOSTS  → -clients
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - JWT_SECRET is missing
  - PORT, DATABASE_TYPE or LOG_LEVEL hold an unknown value
*/
package cliparse
