package observability

import (
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ChatMetrics holds the instruments for the realtime messaging layer.
type ChatMetrics struct {
	MessagesStored    metric.Int64Counter
	DuplicateMessages metric.Int64Counter
	LivePushes        metric.Int64Counter
	OpenConnections   metric.Int64UpDownCounter
}

// NewChatMetrics registers the chat instruments on the global meter
// provider.
func NewChatMetrics() *ChatMetrics {
	meter := otel.Meter("edunet/chat")

	stored, err := meter.Int64Counter("chat_messages_stored_total",
		metric.WithDescription("Messages durably persisted"))
	if err != nil {
		log.Fatalf("failed to create chat metrics: %v", err)
	}
	duplicates, err := meter.Int64Counter("chat_messages_duplicate_total",
		metric.WithDescription("Sends rejected by the (sender, recipient, timestamp) dedupe guard"))
	if err != nil {
		log.Fatalf("failed to create chat metrics: %v", err)
	}
	pushes, err := meter.Int64Counter("chat_live_pushes_total",
		metric.WithDescription("Live receive events pushed to online recipients"))
	if err != nil {
		log.Fatalf("failed to create chat metrics: %v", err)
	}
	connections, err := meter.Int64UpDownCounter("chat_open_connections",
		metric.WithDescription("Currently open websocket connections"))
	if err != nil {
		log.Fatalf("failed to create chat metrics: %v", err)
	}

	return &ChatMetrics{
		MessagesStored:    stored,
		DuplicateMessages: duplicates,
		LivePushes:        pushes,
		OpenConnections:   connections,
	}
}
