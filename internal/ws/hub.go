package ws

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/playmo/smartdns-api/internal/models"
)

type Hub struct {
	subscribers map[string]*Subscriber

	register chan *Subscriber

	unregister chan *Subscriber

	broadcast chan models.Event

	done chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan models.Event, 64),
		done:        make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.ID] = sub
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub.ID]; ok {
				delete(h.subscribers, sub.ID)
				close(sub.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, sub := range h.subscribers {
				if !sub.Wants(event.Type) {
					continue
				}
				select {
				case sub.Send <- event:
				default:
					log.Warn("Subscriber buffer full, skipping event", "subscriber", sub.ID, "type", event.Type)
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for id, sub := range h.subscribers {
				delete(h.subscribers, id)
				close(sub.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) RegisterSubscriber(conn *websocket.Conn) *Subscriber {
	sub := NewSubscriber(uuid.New().String(), conn)
	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.Send)
	}
	return sub
}

func (h *Hub) UnregisterSubscriber(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Publish never blocks; events are dropped when the hub is saturated.
func (h *Hub) Publish(event models.Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Warn("Event hub saturated, dropping event", "type", event.Type)
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
