package events

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	SessionStarted Kind = "session.started"
	SessionEnded   Kind = "session.ended"
)

type SessionEvent struct {
	Kind     Kind
	SID      string
	UserID   int64
	Username string
	Reason   string
	At       time.Time
}

// Publisher fans session events out to every subscriber.
type Publisher interface {
	PublishSession(ctx context.Context, evt SessionEvent)
	// SubscribeSession returns a channel of events and a func that detaches it.
	SubscribeSession() (<-chan SessionEvent, func())
}

type inMemory struct {
	mu     sync.RWMutex
	buffer int
	next   int
	subs   map[int]chan SessionEvent
}

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{buffer: buffer, subs: map[int]chan SessionEvent{}}
}

// PublishSession never blocks; a subscriber whose buffer is full misses the event.
func (m *inMemory) PublishSession(_ context.Context, evt SessionEvent) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (m *inMemory) SubscribeSession() (<-chan SessionEvent, func()) {
	ch := make(chan SessionEvent, m.buffer)

	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}
