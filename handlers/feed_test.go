// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/danielhkuo/rankfeed/models"
	"github.com/danielhkuo/rankfeed/testutil"
)

func TestListFeed_QueryParameters(t *testing.T) {
	db, svc, cfg := setupHandlers(t)
	handler := NewFeedHandler(svc, cfg)

	for i := 0; i < 3; i++ {
		testutil.CreateTestPost(t, db, "alice", fmt.Sprintf("Post %d", i), time.Now().Add(-time.Duration(i+1)*time.Minute))
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedItems  int
	}{
		{"defaults", "", http.StatusOK, 3},
		{"new", "?sort=new", http.StatusOK, 3},
		{"top", "?sort=top", http.StatusOK, 3},
		{"limit", "?limit=2", http.StatusOK, 2},
		{"zero limit uses default", "?limit=0", http.StatusOK, 3},
		{"unknown sort", "?sort=hot", http.StatusBadRequest, 0},
		{"non-numeric limit", "?limit=ten", http.StatusBadRequest, 0},
		{"garbage cursor restarts", "?cursor=" + url.QueryEscape("???"), http.StatusOK, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/posts"+tt.query, nil, nil)
			w := httptest.NewRecorder()

			handler.ListFeed(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.FeedResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Items) != tt.expectedItems {
				t.Errorf("Expected %d items, got %d", tt.expectedItems, len(resp.Items))
			}
		})
	}
}

func TestListFeed_Pagination(t *testing.T) {
	db, svc, cfg := setupHandlers(t)
	handler := NewFeedHandler(svc, cfg)

	for i := 0; i < 51; i++ {
		testutil.CreateTestPost(t, db, "alice", fmt.Sprintf("Post %d", i), time.Now().Add(-time.Duration(i+1)*time.Minute))
	}

	seen := make(map[string]bool)
	cursor := ""
	pages := 0
	for {
		path := "/posts?limit=20"
		if cursor != "" {
			path += "&cursor=" + url.QueryEscape(cursor)
		}
		req := testutil.MakeRequest("GET", path, nil, nil)
		w := httptest.NewRecorder()

		handler.ListFeed(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.FeedResponse
		testutil.AssertJSON(t, w, &resp)
		pages++

		for _, item := range resp.Items {
			if seen[item.ID] {
				t.Errorf("Post %s returned on more than one page", item.ID)
			}
			seen[item.ID] = true
		}

		if pages == 1 && (len(resp.Items) != 20 || !resp.HasMore) {
			t.Fatalf("Expected first page of 20 with has_more, got %d items, has_more=%v", len(resp.Items), resp.HasMore)
		}
		if !resp.HasMore {
			if resp.NextCursor != "" {
				t.Error("Expected no next_cursor on the last page")
			}
			break
		}
		cursor = resp.NextCursor
		if pages > 5 {
			t.Fatal("Pagination did not terminate")
		}
	}

	if pages != 3 {
		t.Errorf("Expected 3 pages, got %d", pages)
	}
	if len(seen) != 51 {
		t.Errorf("Expected 51 distinct posts, got %d", len(seen))
	}
}

func TestListFeed_TopOrdering(t *testing.T) {
	db, svc, cfg := setupHandlers(t)
	handler := NewFeedHandler(svc, cfg)

	older := testutil.CreateTestPost(t, db, "alice", "Older favourite", time.Now().Add(-2*time.Hour))
	newer := testutil.CreateTestPost(t, db, "alice", "Newer", time.Now().Add(-time.Hour))
	disliked := testutil.CreateTestPost(t, db, "alice", "Disliked", time.Now().Add(-30*time.Minute))
	testutil.CastTestVote(t, db, "bob", older, 1)
	testutil.CastTestVote(t, db, "carol", older, 1)
	testutil.CastTestVote(t, db, "bob", disliked, -1)

	req := testutil.MakeRequest("GET", "/posts?sort=top", nil, testutil.BearerHeader(t, "bob"))
	w := httptest.NewRecorder()
	handler.ListFeed(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.FeedResponse
	testutil.AssertJSON(t, w, &resp)

	expected := []string{older, newer, disliked}
	if len(resp.Items) != len(expected) {
		t.Fatalf("Expected %d items, got %d", len(expected), len(resp.Items))
	}
	for i, id := range expected {
		if resp.Items[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, resp.Items[i].ID)
		}
	}

	if v := resp.Items[0].ViewerVote; v == nil || *v != 1 {
		t.Errorf("Expected viewer_vote 1 on the first item, got %v", v)
	}
	if resp.Items[1].ViewerVote != nil {
		t.Error("Expected no viewer_vote on a post bob did not vote on")
	}
	if resp.Items[2].Rating != -1 {
		t.Errorf("Expected rating -1, got %d", resp.Items[2].Rating)
	}
}

func TestListFeed_EmptyItemsIsArray(t *testing.T) {
	_, svc, cfg := setupHandlers(t)
	handler := NewFeedHandler(svc, cfg)

	req := testutil.MakeRequest("GET", "/posts", nil, nil)
	w := httptest.NewRecorder()
	handler.ListFeed(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	expected := `{"items":[],"has_more":false}` + "\n"
	if w.Body.String() != expected {
		t.Errorf("Expected body %s, got %s", expected, w.Body.String())
	}
}
