package ws

import (
	"encoding/json"
	"time"
)

// Event type tags on the websocket wire.
const (
	EventSend     = "send"
	EventReceive  = "receive"
	EventPresence = "presence"
	EventError    = "error"
)

// SendEvent is the single inbound event: a client asks to deliver a
// message to another user. Timestamp is optional; the chatId tags
// group-thread messages.
type SendEvent struct {
	Type      string    `json:"type"`
	To        uint      `json:"to"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	ChatID    string    `json:"chatId,omitempty"`
}

// ReceiveEvent is the live push delivered to an online recipient.
type ReceiveEvent struct {
	Type      string    `json:"type"`
	From      uint      `json:"from"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// PresenceEvent announces a user's online/offline transition to every
// other connected client. Best-effort, unacknowledged.
type PresenceEvent struct {
	Type   string `json:"type"`
	UserID uint   `json:"userId"`
	Status string `json:"status"` // online or offline
}

// ErrorEvent tells the sender a send could not be stored.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newReceiveEvent(from uint, message string, timestamp time.Time) []byte {
	data, _ := json.Marshal(ReceiveEvent{Type: EventReceive, From: from, Message: message, Timestamp: timestamp})
	return data
}

func newPresenceEvent(userID uint, status string) []byte {
	data, _ := json.Marshal(PresenceEvent{Type: EventPresence, UserID: userID, Status: status})
	return data
}

func newErrorEvent(message string) []byte {
	data, _ := json.Marshal(ErrorEvent{Type: EventError, Message: message})
	return data
}
