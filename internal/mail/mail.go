// Package mail delivers operational notifications raised by the catalog,
// such as a point of interest being deleted. Delivery is fire-and-forget:
// a failed or missing sink never fails the request that raised the
// notification.
package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is a single notification.
type Message struct {
	// ID uniquely identifies the notification for correlation in logs.
	ID uuid.UUID

	Subject string
	Body    string

	// OccurredAt is when the notification was raised.
	OccurredAt time.Time
}

// Notifier is the interface the service layer uses to raise notifications.
type Notifier interface {
	Notify(ctx context.Context, subject, body string)
}

// Sink delivers a message to one destination, e.g. a log or a mail provider.
type Sink interface {
	Deliver(ctx context.Context, msg Message)
}

// Dispatcher fans each notification out to every registered sink.
type Dispatcher struct {
	mu     sync.RWMutex
	sinks  []Sink
	logger *slog.Logger
}

// Ensure Dispatcher implements Notifier interface
var _ Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with no sinks. If logger is nil, the
// default logger is used.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logger.With(slog.String("component", "mail_dispatcher")),
	}
}

// Register adds a sink. Safe to call concurrently with Notify.
func (d *Dispatcher) Register(sink Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, sink)
}

// Notify implements Notifier.Notify
func (d *Dispatcher) Notify(ctx context.Context, subject, body string) {
	msg := Message{
		ID:         uuid.New(),
		Subject:    subject,
		Body:       body,
		OccurredAt: time.Now().UTC(),
	}

	d.mu.RLock()
	sinks := make([]Sink, len(d.sinks))
	copy(sinks, d.sinks)
	d.mu.RUnlock()

	if len(sinks) == 0 {
		d.logger.DebugContext(ctx, "notification raised with no sinks registered",
			slog.String("notification_id", msg.ID.String()),
			slog.String("subject", msg.Subject))
		return
	}

	for _, sink := range sinks {
		sink.Deliver(ctx, msg)
	}
}

// LocalSink writes notifications to the log, standing in for a real mail
// provider during development.
type LocalSink struct {
	from   string
	to     string
	logger *slog.Logger
}

// Ensure LocalSink implements Sink interface
var _ Sink = (*LocalSink)(nil)

// NewLocalSink creates a LocalSink addressed from and to the given
// addresses. If logger is nil, the default logger is used.
func NewLocalSink(from, to string, logger *slog.Logger) *LocalSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalSink{
		from:   from,
		to:     to,
		logger: logger.With(slog.String("component", "mail_local_sink")),
	}
}

// Deliver implements Sink.Deliver
func (s *LocalSink) Deliver(ctx context.Context, msg Message) {
	s.logger.InfoContext(ctx, "mail notification",
		slog.String("notification_id", msg.ID.String()),
		slog.String("from", s.from),
		slog.String("to", s.to),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body))
}
