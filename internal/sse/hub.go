// Package sse implements the fan-out hub behind the post event stream.
// Delivery is best-effort: a subscriber either accepts a pushed event or
// is dropped; nothing is buffered for redelivery.
package sse

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pulsefeed-dev/pulsefeed/internal/logger"
)

var (
	eventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sse_events_delivered_total",
			Help: "Events successfully handed to a subscriber",
		},
		[]string{"event"},
	)

	eventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sse_events_dropped_total",
			Help: "Events dropped because a subscriber could not accept them",
		},
		[]string{"event"},
	)

	subscriberCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_subscribers",
			Help: "Currently registered stream subscribers",
		},
	)
)

// subscriberBuffer bounds how far a subscriber may lag before a push
// fails and the hub prunes it.
const subscriberBuffer = 16

type Event struct {
	Name string
	Data any
}

// Subscriber is one open streaming connection. It is owned by the hub
// from Subscribe until removal and must not be reused afterwards.
type Subscriber struct {
	id     int64
	mu     sync.Mutex
	closed bool
	events chan Event
}

// Events is the stream the connection handler drains. The channel closes
// when the subscriber is removed.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// push hands an event to the subscriber without blocking. Returns false
// if the subscriber is closed or its buffer is full.
func (s *Subscriber) push(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}

// Hub multiplexes mutation events to every registered subscriber.
// The registry is a concurrent map keyed by a monotonically increasing
// id, so subscribe, broadcast and unsubscribe interleave freely without
// external locking.
type Hub struct {
	subs sync.Map // id -> *Subscriber
	ids  atomic.Int64
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers a new subscriber and immediately pushes a greeting
// event. A subscriber whose greeting cannot be delivered is removed
// before being returned, so a dead connection is never left registered.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id:     h.ids.Add(1),
		events: make(chan Event, subscriberBuffer),
	}
	h.subs.Store(sub.id, sub)
	subscriberCount.Inc()

	if !sub.push(Event{Name: "hello", Data: "ok " + time.Now().UTC().Format(time.RFC3339)}) {
		h.remove(sub)
	}
	return sub
}

// Unsubscribe removes a subscriber after its connection ended.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	h.remove(sub)
}

func (h *Hub) remove(sub *Subscriber) {
	if _, loaded := h.subs.LoadAndDelete(sub.id); loaded {
		subscriberCount.Dec()
	}
	sub.close()
}

// Broadcast delivers one event to every registered subscriber. A failed
// delivery unregisters that subscriber only; the rest still receive the
// event. There is no ordering guarantee across subscribers.
func (h *Hub) Broadcast(name string, payload any) {
	ev := Event{Name: name, Data: payload}
	h.subs.Range(func(_, v any) bool {
		sub := v.(*Subscriber)
		if sub.push(ev) {
			eventsDelivered.WithLabelValues(name).Inc()
			return true
		}
		eventsDropped.WithLabelValues(name).Inc()
		logger.Log.Debug("dropping slow sse subscriber", "id", sub.id)
		h.remove(sub)
		return true
	})
}

// BroadcastPost announces a created or mutated post snapshot.
func (h *Hub) BroadcastPost(post any) {
	h.Broadcast("post", post)
}

// BroadcastPostDeleted announces a deleted post by id.
func (h *Hub) BroadcastPostDeleted(postId uuid.UUID) {
	h.Broadcast("postDeleted", postId)
}

// Len reports how many subscribers are currently registered.
func (h *Hub) Len() int {
	n := 0
	h.subs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
