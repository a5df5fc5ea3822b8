// Package notify publishes index change events to interested consumers
// outside the process. Publication is best effort: a failed publish is the
// caller's to log, never a reason to fail the synchronization itself.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// ChangeEvent describes one completed synchronization.
type ChangeEvent struct {
	EventID  string    `json:"event_id"`
	Kind     string    `json:"kind"`
	Slug     string    `json:"slug,omitempty"`
	Revision uint64    `json:"revision"`
	At       time.Time `json:"at"`
}

// Notifier publishes change events.
type Notifier interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
	Close() error
}

// Noop is the default Notifier when no broker is configured.
type Noop struct{}

func (Noop) PublishChange(context.Context, ChangeEvent) error { return nil }
func (Noop) Close() error                                     { return nil }

// NATSNotifier publishes change events to a NATS subject.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

// NewNATSNotifier connects to the NATS server at url.
func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url, nats.Name("public-notes"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	slog.Info("NATS notifier connected", "url", url, "subject", subject)

	return &NATSNotifier{
		conn:    conn,
		subject: subject,
	}, nil
}

// PublishChange publishes the event as JSON.
func (n *NATSNotifier) PublishChange(_ context.Context, event ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Close closes the NATS connection.
func (n *NATSNotifier) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
