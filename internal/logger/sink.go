package logger

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event is a structured ingestion event
type Event struct {
	Name   string
	Level  zapcore.Level
	Fields map[string]any
}

// EventSink receives structured events emitted by the ingestion pipeline
//
//go:generate mockgen -source=sink.go -destination=../mocks/event_sink.go -package=mocks -mock_names=EventSink=MockEventSink
type EventSink interface {
	// Record delivers an event to the sink
	Record(ctx context.Context, event Event)
}

type zapEventSink struct{}

// NewZapEventSink returns a sink that writes events to the global logger
func NewZapEventSink() EventSink {
	return &zapEventSink{}
}

// Record writes the event as a log line at the event level
func (s *zapEventSink) Record(ctx context.Context, event Event) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("event", event.Name))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, event.Fields[k]))
	}

	l := FromContext(ctx)
	if ce := l.Check(event.Level, event.Name); ce != nil {
		ce.Write(fields...)
	}
}

// NopEventSink discards every event
type NopEventSink struct{}

// Record discards the event
func (NopEventSink) Record(context.Context, Event) {}

// String returns a compact representation of the event, used in tests and debugging
func (e Event) String() string {
	return fmt.Sprintf("%s %v", e.Name, e.Fields)
}
