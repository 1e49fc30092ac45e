// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/rankfeed/auth"
	"github.com/danielhkuo/rankfeed/cliparse"
	"github.com/danielhkuo/rankfeed/db"
)

// TestJWTSecret signs tokens issued by the helpers below
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB opens a fresh SQLite database with the full schema. It is
// removed with the test's temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "rankfeed.db")

	conn, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  ":memory:",
		JWTSecret:    TestJWTSecret,
	}
}

// CreateTestPost inserts a post created at the given time and returns its ID
func CreateTestPost(t *testing.T, conn *sql.DB, creatorID, title string, createdAt time.Time) string {
	t.Helper()

	postID := uuid.NewString()
	us := createdAt.UTC().UnixMicro()
	_, err := conn.Exec(`
		INSERT INTO post (id, title, body, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, postID, title, "Body of "+title, creatorID, us, us)
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return postID
}

// CastTestVote writes a vote row directly
func CastTestVote(t *testing.T, conn *sql.DB, userID, postID string, value int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (user_id, post_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO UPDATE SET value = excluded.value
	`, userID, postID, value)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// CountVotes returns the number of vote rows for a post
func CountVotes(t *testing.T, conn *sql.DB, postID string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE post_id = $1`, postID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// BearerHeader returns request headers authenticating as userID
func BearerHeader(t *testing.T, userID string) map[string]string {
	t.Helper()

	token, err := auth.IssueToken(TestJWTSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
