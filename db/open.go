// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/rankfeed/cliparse"
)

// sqlitePragmas are appended to sqlite DSNs. Foreign keys must be on for
// votes to follow their post on delete.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := driverAndDSN(cfg)

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		// SQLite has a single writer; one connection keeps writers queued
		// in the pool instead of failing with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(50)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DatabaseType, err)
	}

	return conn, nil
}

func driverAndDSN(cfg cliparse.Config) (string, string) {
	switch cfg.DatabaseType {
	case cliparse.DatabasePGX:
		return "pgx", cfg.DatabaseURL
	case cliparse.DatabasePostgres:
		return "postgres", cfg.DatabaseURL
	default:
		return "sqlite", sqliteDSN(cfg.DatabaseURL)
	}
}

func sqliteDSN(url string) string {
	dsn := url
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(sqlitePragmas, "&")
}
