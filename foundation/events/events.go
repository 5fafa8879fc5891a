// Package events fans node diagnostics out to websocket subscribers.
package events

import (
	"fmt"
	"sync"
)

// bufferSize is the number of events a subscriber can fall behind by before
// it starts missing them. Writing to a websocket can be slow.
const bufferSize = 100

// Events keeps a channel per subscriber id.
type Events struct {
	mu   sync.RWMutex
	subs map[string]chan string
	shut bool
}

// New constructs an Events with no subscribers.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Acquire registers a subscriber under the id and returns the channel its
// events arrive on. Acquiring an id twice returns the same channel. Once
// Shutdown has been called the returned channel is already closed.
func (evt *Events) Acquire(id string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.subs[id]; exists {
		return ch
	}

	ch := make(chan string, bufferSize)
	if evt.shut {
		close(ch)
		return ch
	}

	evt.subs[id] = ch
	return ch
}

// Release removes the subscriber and closes its channel.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("subscriber %q not found", id)
	}

	delete(evt.subs, id)
	close(ch)

	return nil
}

// Send delivers the event to every subscriber with room in its buffer and
// returns how many received it. A slow subscriber misses the event instead
// of holding up the node.
func (evt *Events) Send(s string) int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	var sent int
	for _, ch := range evt.subs {
		select {
		case ch <- s:
			sent++
		default:
		}
	}

	return sent
}

// Shutdown closes every subscriber channel and refuses new subscribers.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
	evt.shut = true
}
