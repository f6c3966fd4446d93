// Package notify provides an in-process notification center and a bridge
// that exposes matching notifications as an event stream.
package notify

import (
	"sync"
	"sync/atomic"
)

// Notification is a named broadcast with an arbitrary payload.
type Notification struct {
	Name    string
	Payload any
}

// Token identifies one observer registered with a Center.
type Token uint64

// tokenCounter is the source of observer tokens across all Centers.
var tokenCounter uint64

// Center is a notification source: observers register interest in a name and
// receive every matching Post. An empty name observes all posts.
// All methods are safe for concurrent use.
type Center struct {
	mu        sync.Mutex
	observers []centerObserver
}

type centerObserver struct {
	token Token
	name  string
	fn    func(Notification)
}

// NewCenter returns an empty notification center.
func NewCenter() *Center {
	return &Center{}
}

// AddObserver registers fn for notifications named name.
// An empty name matches every notification.
func (c *Center) AddObserver(name string, fn func(Notification)) Token {
	token := Token(atomic.AddUint64(&tokenCounter, 1))

	c.mu.Lock()
	c.observers = append(c.observers, centerObserver{token: token, name: name, fn: fn})
	c.mu.Unlock()

	return token
}

// RemoveObserver unregisters the observer identified by token.
// Removing an unknown or already-removed token is a no-op.
func (c *Center) RemoveObserver(token Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, obs := range c.observers {
		if obs.token == token {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// Post delivers n to every observer whose name matches.
// Observers are invoked outside the Center's lock, in registration order.
func (c *Center) Post(n Notification) {
	c.mu.Lock()
	matched := make([]func(Notification), 0, len(c.observers))
	for _, obs := range c.observers {
		if obs.name == "" || obs.name == n.Name {
			matched = append(matched, obs.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range matched {
		fn(n)
	}
}
