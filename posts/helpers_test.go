// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package posts

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/rankfeed/events"
	"github.com/danielhkuo/rankfeed/models"
	"github.com/danielhkuo/rankfeed/testutil"
)

// testNow is the fixed clock for every service under test. Fixture posts
// are created before it.
var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestService(t *testing.T, opts ...Option) (*Service, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return NewService(db, opts...), db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mapCache struct {
	mu    sync.Mutex
	posts map[string]models.Post
}

func newMapCache() *mapCache {
	return &mapCache{posts: make(map[string]models.Post)}
}

func (c *mapCache) Get(_ context.Context, id string) (models.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.posts[id]
	return p, ok
}

func (c *mapCache) Set(_ context.Context, p models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[p.ID] = p
}

func (c *mapCache) Delete(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.posts, id)
}

var errPublish = errors.New("broker unavailable")
