package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event types published on completion of an import run
const (
	EventImportPreviewed = "previewed"
	EventImportCommitted = "committed"
	EventCatalogExported = "exported"
)

// DefaultSubjectPrefix is used when NATS_SUBJECT_PREFIX is not set
const DefaultSubjectPrefix = "catalog.import"

// ImportEvent describes one finished run
type ImportEvent struct {
	EventType string    `json:"eventType"`
	TenantID  string    `json:"tenantId"`
	JobID     string    `json:"jobId,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes import lifecycle events to NATS
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        *logrus.Entry
}

// NewPublisher connects to NATS
func NewPublisher(natsURL, subjectPrefix string, logger *logrus.Logger) (*Publisher, error) {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	entry := logger.WithField("component", "events_publisher")

	nc, err := nats.Connect(natsURL,
		nats.Name("catalog-import-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			entry.Infof("[NATS] Reconnected to %s", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			entry.Warnf("[NATS] Disconnected: %v", err)
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			entry.Info("[NATS] Connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: nc, subjectPrefix: subjectPrefix, logger: entry}, nil
}

// Subject returns the subject an event type is published on
func (p *Publisher) Subject(eventType string) string {
	return p.subjectPrefix + "." + eventType
}

// PublishImportEvent publishes a run summary. A nil publisher is a no-op.
func (p *Publisher) PublishImportEvent(ctx context.Context, event ImportEvent) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(event.EventType), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"eventType": event.EventType,
		"tenantId":  event.TenantID,
		"jobId":     event.JobID,
	}).Debug("Published import event")
	return nil
}

// Close drains and closes the connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
