// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Type doubles as the NATS subject.
type Type string

const (
	PostCreated Type = "post.created"
	PostUpdated Type = "post.updated"
	PostDeleted Type = "post.deleted"
	PostVoted   Type = "post.voted"
)

// AllPosts matches every subject above.
const AllPosts = "post.*"

type Event struct {
	Type    Type      `json:"type"`
	PostID  string    `json:"post_id"`
	ActorID string    `json:"actor_id"`
	Value   int       `json:"value,omitempty"`
	Rating  *int64    `json:"rating,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher delivers change events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event. Used when NATS is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

type NATSPublisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server at url.
func Connect(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("rankfeed"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewNATSPublisher(conn), nil
}

func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", e.Type, err)
	}
	return p.conn.Publish(string(e.Type), data)
}

// Subscribe calls handler for every post event. Undecodable messages are
// skipped.
func (p *NATSPublisher) Subscribe(handler func(Event)) (*nats.Subscription, error) {
	return p.conn.Subscribe(AllPosts, func(msg *nats.Msg) {
		var e Event
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return
		}
		handler(e)
	})
}

// LogEvent writes e to the debug log. main subscribes it when running at
// debug level so published changes can be watched locally.
func LogEvent(e Event) {
	attrs := []any{"type", e.Type, "post_id", e.PostID, "actor_id", e.ActorID, "at", e.At}
	if e.Rating != nil {
		attrs = append(attrs, "value", e.Value, "rating", *e.Rating)
	}
	slog.Debug("post event", attrs...)
}

// Close flushes pending events and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
