// Package events publishes session lifecycle events over NATS so training
// dashboards and analytics can follow along. Publishing is fire-and-forget;
// the simulator never blocks on it.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects for session lifecycle events.
const (
	SubjectSessionStarted      = "trellis.session.started"
	SubjectSessionEnded        = "trellis.session.ended"
	SubjectSessionTimeout      = "trellis.session.timeout"
	SubjectEvaluationCompleted = "trellis.evaluation.completed"
)

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// Connect dials NATS with retry-friendly options.
func Connect(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
