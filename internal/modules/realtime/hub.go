package realtime

import (
	"sync"
	"time"
)

// subscriber is the connection surface the hub writes to. Satisfied by
// *websocket.Conn.
type subscriber interface {
	WriteJSON(v interface{}) error
	Close() error
}

type envelope struct {
	Topic   string    `json:"topic"`
	Event   string    `json:"event"`
	Payload any       `json:"payload,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// Hub fans change events out to subscribed connections, keyed by topic
// ("room:{id}", "employee:{id}", "calendar"). Writes are fire-and-forget:
// a failed write drops the connection, it never propagates to publishers.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[subscriber]bool
	conns  map[subscriber]map[string]bool
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[subscriber]bool),
		conns:  make(map[subscriber]map[string]bool),
	}
}

func (h *Hub) Subscribe(conn subscriber, topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[conn]
	if !ok {
		set = make(map[string]bool)
		h.conns[conn] = set
	}

	for _, topic := range topics {
		if topic == "" {
			continue
		}
		set[topic] = true
		if h.topics[topic] == nil {
			h.topics[topic] = make(map[subscriber]bool)
		}
		h.topics[topic][conn] = true
	}
}

func (h *Hub) Unregister(conn subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(conn)
}

func (h *Hub) unregisterLocked(conn subscriber) {
	topics, ok := h.conns[conn]
	if !ok {
		return
	}

	for topic := range topics {
		delete(h.topics[topic], conn)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(h.conns, conn)
	_ = conn.Close()
}

// Publish sends the event to every subscriber of the topic. Connections
// whose write fails are dropped. Always returns nil; there is no
// delivery acknowledgement.
func (h *Hub) Publish(topic string, event string, payload any) error {
	msg := envelope{Topic: topic, Event: event, Payload: payload, SentAt: time.Now().UTC()}

	h.mu.RLock()
	targets := make([]subscriber, 0, len(h.topics[topic]))
	for conn := range h.topics[topic] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	var dead []subscriber
	for _, conn := range targets {
		if err := conn.WriteJSON(msg); err != nil {
			dead = append(dead, conn)
		}
	}

	if len(dead) > 0 {
		h.mu.Lock()
		for _, conn := range dead {
			h.unregisterLocked(conn)
		}
		h.mu.Unlock()
	}
	return nil
}

func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		h.unregisterLocked(conn)
	}
}
