package models

import (
	"time"
)

// Message represents a single point-to-point message. Group chats are
// stored as one row per (sender, recipient) pair sharing a ChatID.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender" gorm:"not null;uniqueIndex:idx_messages_dedupe,priority:1;index:idx_messages_pair"`
	RecipientID uint      `json:"recipient" gorm:"not null;uniqueIndex:idx_messages_dedupe,priority:2;index:idx_messages_pair"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Timestamp   time.Time `json:"timestamp" gorm:"uniqueIndex:idx_messages_dedupe,priority:3;index"`
	IsRead      bool      `json:"isRead" gorm:"default:false"`
	ChatID      string    `json:"chatId,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChannelMessage is a channel-history entry hydrated with the sender's
// display name for rendering group threads.
type ChannelMessage struct {
	Message
	SenderName string `json:"senderName"`
}

// UnreadCount is one entry of the unread summary: how many unread
// messages the requester has from a given sender.
type UnreadCount struct {
	SenderID uint  `json:"userId"`
	Count    int64 `json:"count"`
}

// CreateMessageRequest is the request body for the durable-only send
// endpoint (no live push).
type CreateMessageRequest struct {
	Recipient uint   `json:"recipient" binding:"required"`
	Content   string `json:"content" binding:"required"`
	ChatID    string `json:"chatId,omitempty"`
}

// MarkReadRequest asks to flip all unread messages from the listed
// senders to the requester.
type MarkReadRequest struct {
	SenderIDs []uint `json:"senderIds" binding:"required"`
}
