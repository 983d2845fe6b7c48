package repository

import (
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"

	"gorm.io/gorm"
)

// MessageRepository is the persistence boundary for messages. The
// GORM implementation relies on the composite unique index over
// (sender_id, recipient_id, timestamp) and surfaces violations as
// gorm.ErrDuplicatedKey (connection opened with TranslateError).
type MessageRepository interface {
	Create(message *models.Message) error
	GetByID(id uint) (*models.Message, error)
	HistoryBetween(userA, userB uint, limit int) ([]models.Message, error)
	ChannelHistory(chatID string, limit int) ([]models.Message, error)
	MarkRead(recipientID uint, senderIDs []uint) (int64, error)
	UnreadCounts(recipientID uint) ([]models.UnreadCount, error)
	Delete(id uint) error
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *GormMessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// HistoryBetween returns messages exchanged between two users in
// either direction, oldest first.
func (r *GormMessageRepository) HistoryBetween(userA, userB uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *GormMessageRepository) ChannelHistory(chatID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("timestamp ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// MarkRead flips unread messages from the given senders to the
// recipient and reports how many rows changed. Already-read rows are
// excluded from the update, so repeat calls return zero.
func (r *GormMessageRepository) MarkRead(recipientID uint, senderIDs []uint) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id IN ? AND is_read = ?", recipientID, senderIDs, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// UnreadCounts aggregates unread rows per sender on demand; there is
// no incrementally maintained counter to drift out of sync.
func (r *GormMessageRepository) UnreadCounts(recipientID uint) ([]models.UnreadCount, error) {
	var counts []models.UnreadCount
	err := r.db.Model(&models.Message{}).
		Select("sender_id, COUNT(*) AS count").
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Group("sender_id").
		Scan(&counts).Error
	return counts, err
}

func (r *GormMessageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}
