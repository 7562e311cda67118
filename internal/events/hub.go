// Package events pushes catalog invalidation notices to websocket clients.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"portfolio/internal/contextutil"
)

// TypePhotosChanged is sent whenever an uploaded photo is created or deleted.
const TypePhotosChanged = "photos.changed"

// Message is a single event sent to every connected client.
type Message struct {
	Type      string    `json:"type"`
	Action    string    `json:"action,omitempty"`
	PhotoID   int64     `json:"photoId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan Message
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	now        func() time.Time
}

// NewHub creates a new hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan Message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		now:        time.Now,
	}
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to marshal event", "error", err)
				continue
			}
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Slow client, drop it.
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues msg for broadcast without blocking. It reports false when
// the queue is full.
func (h *Hub) Publish(msg Message) bool {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = h.now().UTC()
	}
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// PhotosChanged implements service.Notifier.
func (h *Hub) PhotosChanged(ctx context.Context, action string, photoID int64) {
	if !h.Publish(Message{Type: TypePhotosChanged, Action: action, PhotoID: photoID}) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "event queue full, dropping photos.changed", "action", action, "photo_id", photoID)
	}
}
