package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMessageRepo is an in-memory MessageRepository that mirrors the
// database semantics the service relies on, including the composite
// (sender, recipient, timestamp) uniqueness guard.
type fakeMessageRepo struct {
	messages []models.Message
	nextID   uint
	err      error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (r *fakeMessageRepo) Create(message *models.Message) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.messages {
		if existing.SenderID == message.SenderID &&
			existing.RecipientID == message.RecipientID &&
			existing.Timestamp.Equal(message.Timestamp) {
			return gorm.ErrDuplicatedKey
		}
	}
	message.ID = r.nextID
	r.nextID++
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) GetByID(id uint) (*models.Message, error) {
	for _, m := range r.messages {
		if m.ID == id {
			msg := m
			return &msg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMessageRepo) HistoryBetween(userA, userB uint, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) ChannelHistory(chatID string, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(recipientID uint, senderIDs []uint) (int64, error) {
	senders := make(map[uint]bool, len(senderIDs))
	for _, id := range senderIDs {
		senders[id] = true
	}
	var changed int64
	for i, m := range r.messages {
		if m.RecipientID == recipientID && senders[m.SenderID] && !m.IsRead {
			r.messages[i].IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (r *fakeMessageRepo) UnreadCounts(recipientID uint) ([]models.UnreadCount, error) {
	counts := make(map[uint]int64)
	for _, m := range r.messages {
		if m.RecipientID == recipientID && !m.IsRead {
			counts[m.SenderID]++
		}
	}
	var out []models.UnreadCount
	for sender, count := range counts {
		out = append(out, models.UnreadCount{SenderID: sender, Count: count})
	}
	return out, nil
}

func (r *fakeMessageRepo) Delete(id uint) error {
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeDirectory resolves users from a fixed set.
type fakeDirectory struct {
	users map[uint]string
}

func (d *fakeDirectory) Exists(id uint) (bool, error) {
	_, ok := d.users[id]
	return ok, nil
}

func (d *fakeDirectory) DisplayName(id uint) (string, error) {
	name, ok := d.users[id]
	if !ok {
		return "", ErrUserNotFound
	}
	return name, nil
}

func newTestMessageService() (*MessageService, *fakeMessageRepo) {
	repo := newFakeMessageRepo()
	dir := &fakeDirectory{users: map[uint]string{1: "Asha", 2: "Ben", 3: "Carol"}}
	return NewMessageService(repo, dir, 0, nil), repo
}

func TestRecordTrimsAndStores(t *testing.T) {
	svc, repo := newTestMessageService()

	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	msg, err := svc.Record(1, 2, "  hello there  ", ts, "")
	require.NoError(t, err)

	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, uint(1), msg.SenderID)
	assert.Equal(t, uint(2), msg.RecipientID)
	assert.False(t, msg.IsRead)
	assert.Len(t, repo.messages, 1)
}

func TestRecordRejectsEmptyContent(t *testing.T) {
	svc, repo := newTestMessageService()

	_, err := svc.Record(1, 2, "   \t  ", time.Now(), "")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, repo.messages)
}

func TestRecordRejectsMissingRecipient(t *testing.T) {
	svc, _ := newTestMessageService()

	_, err := svc.Record(1, 0, "hello", time.Now(), "")
	assert.ErrorIs(t, err, ErrRecipientRequired)
}

func TestRecordRejectsUnknownRecipient(t *testing.T) {
	svc, _ := newTestMessageService()

	_, err := svc.Record(1, 99, "hello", time.Now(), "")
	assert.ErrorIs(t, err, ErrUnknownRecipient)
}

func TestRecordDefaultsZeroTimestamp(t *testing.T) {
	svc, _ := newTestMessageService()

	before := time.Now()
	msg, err := svc.Record(1, 2, "hello", time.Time{}, "")
	require.NoError(t, err)

	assert.False(t, msg.Timestamp.Before(before))
}

func TestRecordDuplicateIsRejectedNotRetried(t *testing.T) {
	svc, repo := newTestMessageService()

	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := svc.Record(1, 2, "first", ts, "")
	require.NoError(t, err)

	_, err = svc.Record(1, 2, "second", ts, "")
	assert.ErrorIs(t, err, ErrDuplicateMessage)
	assert.Len(t, repo.messages, 1, "duplicate must not be stored under an adjusted timestamp")
}

func TestHistoryBetweenIsSymmetric(t *testing.T) {
	svc, _ := newTestMessageService()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := svc.Record(1, 2, "from one", base, "")
	require.NoError(t, err)
	_, err = svc.Record(2, 1, "from two", base.Add(time.Second), "")
	require.NoError(t, err)

	forward, err := svc.HistoryBetween(1, 2, 0)
	require.NoError(t, err)
	backward, err := svc.HistoryBetween(2, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
	assert.Len(t, forward, 2)
}

func TestChannelHistoryHydratesSenderNames(t *testing.T) {
	svc, _ := newTestMessageService()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := svc.Record(1, 2, "hi group", base, "room-7")
	require.NoError(t, err)
	_, err = svc.Record(3, 2, "hello", base.Add(time.Second), "room-7")
	require.NoError(t, err)

	history, err := svc.ChannelHistory("room-7", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "Asha", history[0].SenderName)
	assert.Equal(t, "Carol", history[1].SenderName)
}

func TestMarkReadIsMonotonic(t *testing.T) {
	svc, _ := newTestMessageService()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := svc.Record(1, 2, "one", base, "")
	require.NoError(t, err)
	_, err = svc.Record(1, 2, "two", base.Add(time.Second), "")
	require.NoError(t, err)

	changed, err := svc.MarkRead(2, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	// Second pass finds nothing left to flip.
	changed, err = svc.MarkRead(2, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)
}

func TestMarkReadEmptySenderListIsNoop(t *testing.T) {
	svc, _ := newTestMessageService()

	changed, err := svc.MarkRead(2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)
}

func TestUnreadCountsGroupBySender(t *testing.T) {
	svc, _ := newTestMessageService()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := svc.Record(1, 2, "one", base, "")
	require.NoError(t, err)
	_, err = svc.Record(1, 2, "two", base.Add(time.Second), "")
	require.NoError(t, err)
	_, err = svc.Record(3, 2, "three", base.Add(2*time.Second), "")
	require.NoError(t, err)

	counts, err := svc.UnreadCounts(2)
	require.NoError(t, err)

	bySender := make(map[uint]int64, len(counts))
	for _, c := range counts {
		bySender[c.SenderID] = c.Count
	}
	assert.Equal(t, int64(2), bySender[1])
	assert.Equal(t, int64(1), bySender[3])
}

func TestDeleteRequiresSender(t *testing.T) {
	svc, repo := newTestMessageService()

	msg, err := svc.Record(1, 2, "hello", time.Now(), "")
	require.NoError(t, err)

	err = svc.Delete(msg.ID, 2)
	assert.ErrorIs(t, err, ErrNotMessageOwner)
	assert.Len(t, repo.messages, 1)

	err = svc.Delete(msg.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, repo.messages)
}

func TestDeleteMissingMessage(t *testing.T) {
	svc, _ := newTestMessageService()

	err := svc.Delete(42, 1)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestConfiguredHistoryLimitClampsRequests(t *testing.T) {
	repo := newFakeMessageRepo()
	dir := &fakeDirectory{users: map[uint]string{1: "Asha", 2: "Ben"}}
	svc := NewMessageService(repo, dir, 2, nil)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.Record(1, 2, "hello", base.Add(time.Duration(i)*time.Second), "room-7")
		require.NoError(t, err)
	}

	// Zero and over-limit requests both fall back to the configured cap.
	direct, err := svc.HistoryBetween(1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, direct, 2)

	direct, err = svc.HistoryBetween(1, 2, 500)
	require.NoError(t, err)
	assert.Len(t, direct, 2)

	channel, err := svc.ChannelHistory("room-7", 0)
	require.NoError(t, err)
	assert.Len(t, channel, 2)
}

func TestChannelHistoryLogsFailedNameLookup(t *testing.T) {
	repo := newFakeMessageRepo()
	dir := &fakeDirectory{users: map[uint]string{2: "Ben"}}

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", JSON: true, Output: &buf})
	svc := NewMessageService(repo, dir, 0, log)

	// Sender 99 has no directory entry, so hydration cannot name it.
	_, err := svc.Record(99, 2, "hello", time.Now(), "room-7")
	require.NoError(t, err)

	history, err := svc.ChannelHistory("room-7", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)

	assert.Empty(t, history[0].SenderName)
	assert.Contains(t, buf.String(), "Sender name lookup failed")
	assert.Contains(t, buf.String(), "room-7")
}
