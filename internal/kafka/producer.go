// Package kafka emits ticket lifecycle events (ticket.submitted,
// ticket.status_changed, ticket.reset) to a topic, best-effort.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// TicketEventProducer lets handlers emit events without caring whether a
// broker is configured (and lets tests pass a no-op).
type TicketEventProducer interface {
	ProduceTicketEvent(ctx context.Context, event string, payload map[string]interface{})
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer builds a producer. Without brokers or a topic all methods are
// no-ops.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// ProduceTicketEvent writes one event. Payload keys: ticket_id, section,
// status, request_type, date_submitted. Errors are logged, never returned:
// event delivery must not fail a mutation that already persisted.
func (p *Producer) ProduceTicketEvent(ctx context.Context, event string, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	msg := map[string]interface{}{"event": event}
	for k, v := range payload {
		msg[k] = v
	}
	body, err := json.Marshal(msg)
	if err != nil {
		logrus.Warnf("kafka: marshal ticket event: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		logrus.Warnf("kafka: write ticket event: %v", err)
	}
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
