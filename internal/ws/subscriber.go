package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/playmo/smartdns-api/internal/models"
)

// Subscriber is one dashboard connection. With no subscriptions it receives
// every event type.
type Subscriber struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan models.Event
	types  map[string]bool
	typeMu sync.RWMutex

	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func NewSubscriber(id string, conn *websocket.Conn) *Subscriber {
	return &Subscriber{
		ID:    id,
		Conn:  conn,
		Send:  make(chan models.Event, 256),
		types: make(map[string]bool),
	}
}

func (s *Subscriber) Subscribe(eventType string) {
	s.typeMu.Lock()
	s.types[eventType] = true
	s.typeMu.Unlock()
}

func (s *Subscriber) Unsubscribe(eventType string) {
	s.typeMu.Lock()
	delete(s.types, eventType)
	s.typeMu.Unlock()
}

func (s *Subscriber) Wants(eventType string) bool {
	s.typeMu.RLock()
	defer s.typeMu.RUnlock()
	return len(s.types) == 0 || s.types[eventType]
}

func (s *Subscriber) Types() []string {
	s.typeMu.RLock()
	defer s.typeMu.RUnlock()
	types := make([]string, 0, len(s.types))
	for t := range s.types {
		types = append(types, t)
	}
	return types
}

type socketMessage struct {
	Action string `json:"action"`
	Type   string `json:"type"`
}

type subscriptionResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Types   []string `json:"types"`
}

type errorResponse struct {
	Error string `json:"error"`
}
