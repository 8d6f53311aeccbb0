package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

const (
	EventCodesGenerated = "codes_generated"
	EventCodeClaimed    = "code_claimed"
	EventMarkRecorded   = "mark_recorded"
)

// Event is pushed to admin dashboards. It never carries student identity or
// code values.
type Event struct {
	Type   string    `json:"type"`
	ExamID uuid.UUID `json:"examId"`
	Count  int       `json:"count,omitempty"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Hub struct {
	clients    map[Conn]struct{}
	mu         sync.RWMutex
	register   chan Conn
	unregister chan Conn
	broadcast  chan Event
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Conn]struct{}),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		broadcast:  make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(c Conn)   { h.register <- c }
func (h *Hub) Unregister(c Conn) { h.unregister <- c }

// Publish drops the event when the hub is backed up; dashboards refresh on
// the next one.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("Dashboard hub busy, dropping %s event for exam %s", ev.Type, ev.ExamID)
	}
}

func (h *Hub) Stop() { close(h.done) }

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			log.Printf("Dashboard client registered (%d connected)", h.ClientCount())
		case c := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
		case ev := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				if err := c.WriteJSON(ev); err != nil {
					log.Printf("Error sending %s event to dashboard client: %v", ev.Type, err)
					c.Close()
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}
