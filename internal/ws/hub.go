package ws

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/shared/observability"
)

// MessageStore is the durable half of the dual delivery path.
type MessageStore interface {
	Record(senderID, recipientID uint, content string, timestamp time.Time, chatID string) (*models.Message, error)
}

// Hub coordinates the realtime layer: it owns the presence registry,
// fans presence transitions out to connected clients, and runs the
// dual-path send pipeline (live push plus unconditional persistence).
type Hub struct {
	presence *Presence
	store    MessageStore
	metrics  *observability.ChatMetrics
	log      *logger.Logger

	clients    map[*Client]bool
	connCount  atomic.Int64
	register   chan *Client
	unregister chan *Client
}

func NewHub(presence *Presence, store MessageStore, metrics *observability.ChatMetrics, log *logger.Logger) *Hub {
	return &Hub{
		presence:   presence,
		store:      store,
		metrics:    metrics,
		log:        log,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run serializes connect and disconnect transitions. Presence
// broadcasts therefore go out in the order the transitions happened.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.presence.MarkOnline(client.UserID, client)
			h.broadcastPresence(client, "online")
			h.countConnections(1)
			h.log.Info("Client connected", "userID", client.UserID)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Offline first so no send resolves this client once
				// its channel starts shutting down.
				h.presence.MarkOffline(client.UserID)
				client.closeSend()
				h.broadcastPresence(client, "offline")
				h.countConnections(-1)
				h.log.Info("Client disconnected", "userID", client.UserID)
			}
		}
	}
}

// broadcastPresence notifies every other connected client of a status
// transition. Delivery is best-effort: a client with a full send
// buffer simply misses the event.
func (h *Hub) broadcastPresence(subject *Client, status string) {
	event := newPresenceEvent(subject.UserID, status)
	for client := range h.clients {
		if client == subject {
			continue
		}
		client.enqueue(event)
	}
}

// HandleSend runs the per-send pipeline, invoked synchronously from
// the sender's read pump so one client's sends stay ordered:
//
//  1. validate, rejecting before any side effect
//  2. resolve the recipient and push the live event if online
//  3. persist unconditionally, swallowing duplicates
//
// The push is deliberately not gated on persistence: latency wins, and
// the sender is told via an error event when the store write fails, so
// the inconsistency window is visible rather than silent.
func (h *Hub) HandleSend(sender *Client, event SendEvent) {
	content := strings.TrimSpace(event.Message)
	if content == "" || event.To == 0 {
		sender.enqueue(newErrorEvent("message requires a recipient and non-empty content"))
		return
	}

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if recipient, online := h.presence.Resolve(event.To); online {
		recipient.enqueue(newReceiveEvent(sender.UserID, content, timestamp))
		if h.metrics != nil {
			h.metrics.LivePushes.Add(context.Background(), 1)
		}
	}

	_, err := h.store.Record(sender.UserID, event.To, content, timestamp, event.ChatID)
	switch {
	case err == nil:
		if h.metrics != nil {
			h.metrics.MessagesStored.Add(context.Background(), 1)
		}
	case errors.Is(err, service.ErrDuplicateMessage):
		// Retransmission of an already-recorded message; success from
		// the sender's perspective.
		if h.metrics != nil {
			h.metrics.DuplicateMessages.Add(context.Background(), 1)
		}
	case errors.Is(err, service.ErrUnknownRecipient):
		sender.enqueue(newErrorEvent("recipient does not exist"))
	default:
		h.log.LogError(err, "Failed to store message",
			"sender", sender.UserID,
			"recipient", event.To,
		)
		sender.enqueue(newErrorEvent("message could not be stored"))
	}
}

// ActiveConnections reports the number of open websocket connections.
func (h *Hub) ActiveConnections() int64 {
	return h.connCount.Load()
}

func (h *Hub) countConnections(delta int64) {
	h.connCount.Add(delta)
	if h.metrics != nil {
		h.metrics.OpenConnections.Add(context.Background(), delta)
	}
}
