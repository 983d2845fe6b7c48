package ws

import (
	"sync"
)

// Presence maps a user to their active websocket client. It is owned
// by the Hub, built empty at process start and maintained purely by
// connect/disconnect events; nothing is ever persisted.
//
// A second connection from the same user overwrites the first:
// delivery targets the most recent session only, and the last writer
// also controls the offline transition.
type Presence struct {
	mu     sync.RWMutex
	online map[uint]*Client
}

func NewPresence() *Presence {
	return &Presence{online: make(map[uint]*Client)}
}

// MarkOnline registers the client as the delivery target for the user,
// replacing any previous entry.
func (p *Presence) MarkOnline(userID uint, client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID] = client
}

// MarkOffline removes the user's entry unconditionally, regardless of
// which connection is currently registered.
func (p *Presence) MarkOffline(userID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.online, userID)
}

// Resolve returns the user's active client, if any.
func (p *Presence) Resolve(userID uint) (*Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	client, ok := p.online[userID]
	return client, ok
}
