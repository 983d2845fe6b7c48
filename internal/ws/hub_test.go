package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records calls to the persistence half of delivery and
// returns a scripted error.
type fakeStore struct {
	err   error
	calls []storeCall
}

type storeCall struct {
	senderID    uint
	recipientID uint
	content     string
	timestamp   time.Time
	chatID      string
}

func (s *fakeStore) Record(senderID, recipientID uint, content string, timestamp time.Time, chatID string) (*models.Message, error) {
	s.calls = append(s.calls, storeCall{senderID, recipientID, content, timestamp, chatID})
	if s.err != nil {
		return nil, s.err
	}
	return &models.Message{SenderID: senderID, RecipientID: recipientID, Content: content, Timestamp: timestamp}, nil
}

func newTestHub(store *fakeStore) *Hub {
	log := logger.New(logger.Config{Level: "error", JSON: false})
	return NewHub(NewPresence(), store, nil, log)
}

func testClient(userID uint) *Client {
	return &Client{UserID: userID, send: make(chan []byte, sendBufferSize)}
}

// drain returns the next queued event decoded into a generic map, or
// nil when the client's buffer is empty.
func drain(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case data := <-c.send:
		var event map[string]any
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	default:
		return nil
	}
}

func TestHandleSendPushesToOnlineRecipient(t *testing.T) {
	store := &fakeStore{}
	hub := newTestHub(store)

	sender := testClient(1)
	recipient := testClient(2)
	hub.presence.MarkOnline(2, recipient)

	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 2, Message: "hello", Timestamp: ts})

	event := drain(t, recipient)
	require.NotNil(t, event, "online recipient gets a live push")
	assert.Equal(t, EventReceive, event["type"])
	assert.Equal(t, float64(1), event["from"])
	assert.Equal(t, "hello", event["message"])

	require.Len(t, store.calls, 1)
	assert.Equal(t, "hello", store.calls[0].content)

	assert.Nil(t, drain(t, sender), "no error event on success")
}

func TestHandleSendPersistsWhenRecipientOffline(t *testing.T) {
	store := &fakeStore{}
	hub := newTestHub(store)

	sender := testClient(1)
	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 2, Message: "hello"})

	require.Len(t, store.calls, 1, "persistence does not depend on recipient presence")
	assert.Nil(t, drain(t, sender))
}

func TestHandleSendRejectsInvalidEventBeforeSideEffects(t *testing.T) {
	store := &fakeStore{}
	hub := newTestHub(store)

	sender := testClient(1)
	recipient := testClient(2)
	hub.presence.MarkOnline(2, recipient)

	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 2, Message: "   "})
	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 0, Message: "hello"})

	assert.Empty(t, store.calls, "invalid sends never reach the store")
	assert.Nil(t, drain(t, recipient), "invalid sends never reach the recipient")

	for i := 0; i < 2; i++ {
		event := drain(t, sender)
		require.NotNil(t, event)
		assert.Equal(t, EventError, event["type"])
	}
}

func TestHandleSendSwallowsDuplicate(t *testing.T) {
	store := &fakeStore{err: service.ErrDuplicateMessage}
	hub := newTestHub(store)

	sender := testClient(1)
	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 2, Message: "hello"})

	assert.Nil(t, drain(t, sender), "a retransmission is success from the sender's perspective")
}

func TestHandleSendReportsUnknownRecipient(t *testing.T) {
	store := &fakeStore{err: service.ErrUnknownRecipient}
	hub := newTestHub(store)

	sender := testClient(1)
	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 99, Message: "hello"})

	event := drain(t, sender)
	require.NotNil(t, event)
	assert.Equal(t, EventError, event["type"])
	assert.Equal(t, "recipient does not exist", event["message"])
}

func TestHandleSendReportsStoreFailureAfterPush(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	hub := newTestHub(store)

	sender := testClient(1)
	recipient := testClient(2)
	hub.presence.MarkOnline(2, recipient)

	hub.HandleSend(sender, SendEvent{Type: EventSend, To: 2, Message: "hello"})

	// The live push went out before the store write failed; the sender
	// is told so the inconsistency is visible.
	pushed := drain(t, recipient)
	require.NotNil(t, pushed)
	assert.Equal(t, EventReceive, pushed["type"])

	failure := drain(t, sender)
	require.NotNil(t, failure)
	assert.Equal(t, EventError, failure["type"])
	assert.Equal(t, "message could not be stored", failure["message"])
}

func TestHandleSendDefaultsTimestamp(t *testing.T) {
	store := &fakeStore{}
	hub := newTestHub(store)

	before := time.Now()
	hub.HandleSend(testClient(1), SendEvent{Type: EventSend, To: 2, Message: "hello"})

	require.Len(t, store.calls, 1)
	assert.False(t, store.calls[0].timestamp.Before(before))
}

func TestRunBroadcastsPresenceTransitions(t *testing.T) {
	hub := newTestHub(&fakeStore{})
	go hub.Run()

	observer := testClient(1)
	joiner := testClient(2)

	hub.register <- observer
	hub.register <- joiner

	assert.Eventually(t, func() bool {
		_, online := hub.presence.Resolve(2)
		return online && hub.ActiveConnections() == 2
	}, time.Second, 5*time.Millisecond)

	event := drain(t, observer)
	require.NotNil(t, event, "existing clients hear about the new connection")
	assert.Equal(t, EventPresence, event["type"])
	assert.Equal(t, float64(2), event["userId"])
	assert.Equal(t, "online", event["status"])

	assert.Nil(t, drain(t, joiner), "the subject is not notified about itself")

	hub.unregister <- joiner
	assert.Eventually(t, func() bool {
		_, online := hub.presence.Resolve(2)
		return !online && hub.ActiveConnections() == 1
	}, time.Second, 5*time.Millisecond)

	event = drain(t, observer)
	require.NotNil(t, event)
	assert.Equal(t, "offline", event["status"])
}

func TestEnqueueAfterCloseSendIsSafe(t *testing.T) {
	client := testClient(2)
	client.closeSend()
	client.closeSend()

	assert.NotPanics(t, func() {
		client.enqueue([]byte(`{"type":"receive"}`))
	})
}

func TestLivePushSurvivesConnectionChurn(t *testing.T) {
	hub := newTestHub(&fakeStore{})
	go hub.Run()

	sender := testClient(1)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				hub.HandleSend(sender, SendEvent{Type: EventSend, To: 2, Message: "hello"})
			}
		}
	}()

	// Churn the recipient's connection while pushes are in flight. A
	// push that resolved the client just before the hub closed its
	// channel would panic the pushing goroutine.
	for i := 0; i < 1000; i++ {
		recipient := testClient(2)
		hub.register <- recipient
		hub.unregister <- recipient
	}

	close(done)
	wg.Wait()
}
