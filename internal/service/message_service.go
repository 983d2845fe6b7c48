package service

import (
	"errors"
	"strings"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/repository"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrEmptyContent      = errors.New("message content is empty")
	ErrRecipientRequired = errors.New("message recipient is required")
	ErrUnknownRecipient  = errors.New("recipient is not a known user")
	ErrDuplicateMessage  = errors.New("message already recorded")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotMessageOwner   = errors.New("only the sender may delete a message")
)

// DefaultHistoryLimit caps history queries when no limit is
// configured; matches the badge/history window the web client renders.
const DefaultHistoryLimit = 100

// UserDirectory is the slice of the user domain the messaging core
// depends on: existence checks for recipients and display names for
// group-history hydration.
type UserDirectory interface {
	Exists(id uint) (bool, error)
	DisplayName(id uint) (string, error)
}

// MessageService owns the durable message store semantics: composite
// (sender, recipient, timestamp) uniqueness, trim-then-validate
// content, monotonic read flags and sender-only deletion.
type MessageService struct {
	repo         repository.MessageRepository
	users        UserDirectory
	historyLimit int
	log          *logger.Logger
}

// NewMessageService builds the store service. historyLimit zero or
// negative falls back to DefaultHistoryLimit; log may be nil.
func NewMessageService(repo repository.MessageRepository, users UserDirectory, historyLimit int, log *logger.Logger) *MessageService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &MessageService{repo: repo, users: users, historyLimit: historyLimit, log: log}
}

// Record persists a message. A zero timestamp defaults to now. A
// uniqueness violation is returned as ErrDuplicateMessage so callers
// can treat the send as already recorded; no retry with an adjusted
// timestamp is attempted.
func (s *MessageService) Record(senderID, recipientID uint, content string, timestamp time.Time, chatID string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if recipientID == 0 {
		return nil, ErrRecipientRequired
	}

	exists, err := s.users.Exists(recipientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownRecipient
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Timestamp:   timestamp,
		ChatID:      chatID,
	}

	if err := s.repo.Create(message); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateMessage
		}
		return nil, err
	}

	return message, nil
}

// HistoryBetween returns the conversation between two users in either
// direction, ascending by timestamp. The result is identical whichever
// way the pair is passed.
func (s *MessageService) HistoryBetween(userA, userB uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return s.repo.HistoryBetween(userA, userB, limit)
}

// ChannelHistory returns a group thread's messages hydrated with
// sender display names.
func (s *MessageService) ChannelHistory(chatID string, limit int) ([]models.ChannelMessage, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	messages, err := s.repo.ChannelHistory(chatID, limit)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(messages))
	hydrated := make([]models.ChannelMessage, 0, len(messages))
	for _, msg := range messages {
		name, ok := names[msg.SenderID]
		if !ok {
			name, err = s.users.DisplayName(msg.SenderID)
			if err != nil {
				name = ""
				if s.log != nil {
					s.log.Warn("Sender name lookup failed",
						"chatId", chatID,
						"sender", msg.SenderID,
						"error", err.Error(),
					)
				}
			}
			names[msg.SenderID] = name
		}
		hydrated = append(hydrated, models.ChannelMessage{Message: msg, SenderName: name})
	}
	return hydrated, nil
}

// MarkRead flips unread messages from the given senders to the
// recipient; the read flag never transitions back. Returns the number
// of rows changed, zero when everything was already read.
func (s *MessageService) MarkRead(recipientID uint, senderIDs []uint) (int64, error) {
	if len(senderIDs) == 0 {
		return 0, nil
	}
	return s.repo.MarkRead(recipientID, senderIDs)
}

// UnreadCounts rebuilds the notification badges for a user: unread
// message count grouped by the other party, computed on demand.
func (s *MessageService) UnreadCounts(recipientID uint) ([]models.UnreadCount, error) {
	return s.repo.UnreadCounts(recipientID)
}

// Delete removes a single message. Only the original sender may
// delete; there is no cascade.
func (s *MessageService) Delete(messageID, requesterID uint) error {
	message, err := s.repo.GetByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if message.SenderID != requesterID {
		return ErrNotMessageOwner
	}
	return s.repo.Delete(messageID)
}
