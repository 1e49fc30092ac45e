// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/rankfeed/events"
	"github.com/danielhkuo/rankfeed/models"
	"github.com/danielhkuo/rankfeed/testutil"
)

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "author", models.PostInput{Title: "  Hello  ", Text: "World\n"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Text)
	assert.Equal(t, "author", post.CreatorID)
	assert.True(t, post.CreatedAt.Equal(testNow))

	view, err := svc.GetPost(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, post, view.Post)
	assert.Equal(t, int64(0), view.Rating)
	assert.Nil(t, view.ViewerVote)
}

func TestCreatePost_Validation(t *testing.T) {
	svc, db := newTestService(t)

	tests := []struct {
		name   string
		input  models.PostInput
		fields []string
	}{
		{"empty title", models.PostInput{Title: "", Text: "body"}, []string{"title"}},
		{"blank title", models.PostInput{Title: "   ", Text: "body"}, []string{"title"}},
		{"empty text", models.PostInput{Title: "t", Text: ""}, []string{"text"}},
		{"both empty", models.PostInput{}, []string{"title", "text"}},
		{"title too long", models.PostInput{Title: strings.Repeat("a", 301), Text: "body"}, []string{"title"}},
		{"text too long", models.PostInput{Title: "t", Text: strings.Repeat("é", 10001)}, []string{"text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), "author", tt.input)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want *ValidationError, got %v", err)
			var got []string
			for _, f := range verr.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tt.fields, got)
		})
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM post`).Scan(&n))
	assert.Zero(t, n)
}

func TestCreatePost_MaxLengthsAccepted(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreatePost(context.Background(), "author", models.PostInput{
		Title: strings.Repeat("ü", 300),
		Text:  strings.Repeat("x", 10000),
	})
	assert.NoError(t, err)
}

func TestGetPost_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetPost(context.Background(), "missing", "viewer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePost(t *testing.T) {
	later := testNow.Add(time.Hour)
	svc, db := newTestService(t, WithClock(func() time.Time { return later }))
	postID := testutil.CreateTestPost(t, db, "author", "Original", testNow.Add(-time.Hour))

	updated, err := svc.UpdatePost(context.Background(), postID, "author", models.PostInput{Title: "New", Text: "New body"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.UpdatedAt.Equal(later))
	assert.True(t, updated.CreatedAt.Equal(testNow.Add(-time.Hour)))

	view, err := svc.GetPost(context.Background(), postID, "")
	require.NoError(t, err)
	assert.Equal(t, "New", view.Title)
	assert.Equal(t, "New body", view.Text)
}

func TestUpdatePost_Errors(t *testing.T) {
	svc, db := newTestService(t)
	postID := testutil.CreateTestPost(t, db, "author", "Original", testNow.Add(-time.Hour))
	valid := models.PostInput{Title: "New", Text: "New body"}

	tests := []struct {
		name    string
		postID  string
		actorID string
		input   models.PostInput
		check   func(t *testing.T, err error)
	}{
		{"other user", postID, "intruder", valid, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrForbidden) }},
		{"anonymous", postID, "", valid, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrForbidden) }},
		{"missing post before ownership", "missing", "intruder", valid, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotFound) }},
		{"invalid input", postID, "author", models.PostInput{Title: "", Text: "x"}, func(t *testing.T, err error) {
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdatePost(context.Background(), tt.postID, tt.actorID, tt.input)
			tt.check(t, err)
		})
	}

	view, err := svc.GetPost(context.Background(), postID, "")
	require.NoError(t, err)
	assert.Equal(t, "Original", view.Title)
}

func TestDeletePost(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	postID := testutil.CreateTestPost(t, db, "author", "Doomed", testNow.Add(-time.Hour))
	testutil.CastTestVote(t, db, "a", postID, 1)
	testutil.CastTestVote(t, db, "b", postID, -1)

	require.NoError(t, svc.DeletePost(ctx, postID, "author"))

	_, err := svc.GetPost(ctx, postID, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, testutil.CountVotes(t, db, postID))

	assert.ErrorIs(t, svc.DeletePost(ctx, postID, "author"), ErrNotFound)
}

func TestDeletePost_Forbidden(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	postID := testutil.CreateTestPost(t, db, "author", "Kept", testNow.Add(-time.Hour))
	testutil.CastTestVote(t, db, "a", postID, 1)

	assert.ErrorIs(t, svc.DeletePost(ctx, postID, "intruder"), ErrForbidden)
	assert.ErrorIs(t, svc.DeletePost(ctx, "missing", "intruder"), ErrNotFound)

	view, err := svc.GetPost(ctx, postID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Rating)
}

func TestAnnotate(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	postID := testutil.CreateTestPost(t, db, "author", "Edited", testNow.Add(-time.Hour))
	testutil.CastTestVote(t, db, "author", postID, -1)
	testutil.CastTestVote(t, db, "a", postID, -1)

	post, err := svc.UpdatePost(ctx, postID, "author", models.PostInput{Title: "New title", Text: "New body"})
	require.NoError(t, err)

	view, err := svc.Annotate(ctx, post, "author")
	require.NoError(t, err)
	assert.Equal(t, "New title", view.Title)
	assert.Equal(t, int64(-2), view.Rating)
	require.NotNil(t, view.ViewerVote)
	assert.Equal(t, -1, *view.ViewerVote)

	// A delete landing after the update must not turn it into a failure.
	require.NoError(t, svc.DeletePost(ctx, postID, "author"))
	view, err = svc.Annotate(ctx, post, "author")
	require.NoError(t, err)
	assert.Equal(t, postID, view.ID)
	assert.Equal(t, int64(0), view.Rating)
	assert.Nil(t, view.ViewerVote)
}

func TestAuthorize(t *testing.T) {
	post := models.Post{ID: "p", CreatorID: "owner"}

	assert.NoError(t, Authorize("owner", post))
	assert.ErrorIs(t, Authorize("other", post), ErrForbidden)
	assert.ErrorIs(t, Authorize("", post), ErrForbidden)
	assert.ErrorIs(t, Authorize("", models.Post{}), ErrForbidden)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet("short"))

	long := strings.Repeat("ß", 600)
	got := Snippet(long)
	assert.Equal(t, strings.Repeat("ß", 500), got)
}

func TestService_PublishesEvents(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newTestService(t, WithPublisher(pub))
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "author", models.PostInput{Title: "t", Text: "x"})
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, post.ID, "voter", 1)
	require.NoError(t, err)
	_, err = svc.UpdatePost(ctx, post.ID, "author", models.PostInput{Title: "t2", Text: "x"})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePost(ctx, post.ID, "author"))

	// Failed operations publish nothing.
	_, err = svc.CastVote(ctx, post.ID, "voter", 1)
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []events.Type{events.PostCreated, events.PostVoted, events.PostUpdated, events.PostDeleted}, pub.types())

	voted := pub.events[1]
	assert.Equal(t, post.ID, voted.PostID)
	assert.Equal(t, "voter", voted.ActorID)
	assert.Equal(t, 1, voted.Value)
	require.NotNil(t, voted.Rating)
	assert.Equal(t, int64(1), *voted.Rating)
	assert.True(t, voted.At.Equal(testNow))
}

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errPublish}
	svc, _ := newTestService(t, WithPublisher(pub))

	post, err := svc.CreatePost(context.Background(), "author", models.PostInput{Title: "t", Text: "x"})
	require.NoError(t, err)

	_, err = svc.GetPost(context.Background(), post.ID, "")
	assert.NoError(t, err)
}

func TestService_CacheInvalidation(t *testing.T) {
	cache := newMapCache()
	svc, db := newTestService(t, WithCache(cache))
	ctx := context.Background()
	postID := testutil.CreateTestPost(t, db, "author", "Cached", testNow.Add(-time.Hour))

	// GetTally checks existence through the cache-backed repository.
	_, _, err := svc.GetTally(ctx, postID, "")
	require.NoError(t, err)
	_, ok := cache.Get(ctx, postID)
	require.True(t, ok)

	_, err = svc.UpdatePost(ctx, postID, "author", models.PostInput{Title: "Fresh", Text: "x"})
	require.NoError(t, err)
	_, ok = cache.Get(ctx, postID)
	assert.False(t, ok)

	_, _, err = svc.GetTally(ctx, postID, "")
	require.NoError(t, err)
	require.NoError(t, svc.DeletePost(ctx, postID, "author"))
	_, ok = cache.Get(ctx, postID)
	assert.False(t, ok)

	_, _, err = svc.GetTally(ctx, postID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
