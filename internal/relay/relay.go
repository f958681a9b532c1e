// Package relay fans selected room events out across server instances.
// It is pure fan-out: room state is never merged through it, and exactly
// one process stays authoritative for any room.
package relay

import (
	"encoding/json"
	"sync"
)

// ChannelGameEvents is the shared pub/sub topic for cross-instance
// chat fan-out.
const ChannelGameEvents = "GAME_EVENTS"

type Handler func(payload []byte)

type Relay interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, h Handler) error
	Close() error
}

// Envelope is the wire shape on the relay. Origin carries the publishing
// instance id so an instance can skip its own messages instead of
// double-delivering them locally.
type Envelope struct {
	Origin  string          `json:"origin"`
	RoomID  string          `json:"roomId"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Memory is an in-process relay, used in tests and wherever a real bus is
// not configured but relay-dependent code paths should still run.
type Memory struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]Handler)}
}

func (m *Memory) Publish(topic string, payload []byte) error {
	m.mu.RLock()
	handlers := make([]Handler, len(m.subs[topic]))
	copy(handlers, m.subs[topic])
	m.mu.RUnlock()
	for _, h := range handlers {
		h(payload)
	}
	return nil
}

func (m *Memory) Subscribe(topic string, h Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[topic] = append(m.subs[topic], h)
	return nil
}

func (m *Memory) Close() error { return nil }
