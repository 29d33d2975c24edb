package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/application/metric"
	"github.com/moviemate/watchparty/internal/domain/events"
)

const (
	writeTimeout   = 5 * time.Second
	restartBackoff = time.Second
)

// Writer is satisfied by *kafka.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Emitter appends domain events to the event stream without blocking
// the caller. Delivery is best effort, at most once.
type Emitter interface {
	Emit(topic string, event events.DomainEvent)
}

func NewWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

type queued struct {
	topic string
	event events.DomainEvent
}

// StreamEmitter buffers events in a bounded queue drained by a single
// background consumer. A full queue drops the event: bursts must not
// exhaust outbound resources, and analytics loss under overload is
// acceptable.
type StreamEmitter struct {
	writer Writer
	queue  chan queued
}

var _ Emitter = (*StreamEmitter)(nil)

func NewStreamEmitter(writer Writer, queueSize int) *StreamEmitter {
	return &StreamEmitter{
		writer: writer,
		queue:  make(chan queued, queueSize),
	}
}

func (e *StreamEmitter) Emit(topic string, event events.DomainEvent) {
	select {
	case e.queue <- queued{topic: topic, event: event}:
	default:
		metric.RecordEventDropped()
		slog.Warn("event queue full, dropping event",
			slog.String(constant.Topic, topic),
			slog.String("event_type", event.EventType),
		)
	}
}

// Run drains the queue until ctx is canceled. A crashed consumer is
// restarted after a backoff; events queued meanwhile stay buffered.
func (e *StreamEmitter) Run(ctx context.Context) {
	for {
		if err := e.consume(ctx); err != nil {
			return
		}

		slog.Warn("event consumer restarting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(restartBackoff):
		}
	}
}

func (e *StreamEmitter) consume(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event consumer panic", slog.Any(constant.Error, r))
			err = nil
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case q := <-e.queue:
			e.write(ctx, q)
		}
	}
}

func (e *StreamEmitter) write(ctx context.Context, q queued) {
	payload, err := json.Marshal(q.event)
	if err != nil {
		slog.Error("marshal domain event", slog.Any(constant.Error, err))
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = e.writer.WriteMessages(writeCtx, kafkago.Message{
		Topic: q.topic,
		Value: payload,
	})
	if err != nil {
		// Never retried, never surfaced to the triggering request.
		slog.Error("emit domain event",
			slog.Any(constant.Error, err),
			slog.String(constant.Topic, q.topic),
		)
		return
	}

	metric.RecordEventEmitted(q.topic)
}
