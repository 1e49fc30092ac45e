// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-jwt-secret"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-1")
	}
}

func TestIssueToken_EmptyUser(t *testing.T) {
	if _, err := IssueToken(testSecret, "", time.Hour); err == nil {
		t.Error("IssueToken() should reject an empty user id")
	}
}

func TestParseToken_Rejects(t *testing.T) {
	valid, _ := IssueToken(testSecret, "user-1", time.Hour)
	expired, _ := IssueToken(testSecret, "user-1", -time.Minute)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other-secret", valid},
		{"expired", testSecret, expired},
		{"alg none", testSecret, unsigned},
		{"garbage", testSecret, "not.a.token"},
		{"empty", testSecret, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.secret, tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestActorFromRequest(t *testing.T) {
	valid, _ := IssueToken(testSecret, "user-42", time.Hour)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid bearer", "Bearer " + valid, "user-42", nil},
		{"lowercase scheme", "bearer " + valid, "user-42", nil},
		{"missing header", "", "", ErrNoToken},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", ErrInvalidToken},
		{"no token", "Bearer ", "", ErrInvalidToken},
		{"tampered", "Bearer " + valid + "x", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := ActorFromRequest(req, testSecret)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ActorFromRequest() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ActorFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}
