package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
)

// DefaultBuffer is the per-subscriber queue length used when none is given.
const DefaultBuffer = 256

// Event is one emitted chunk.
type Event struct {
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}

// Hub routes events to the subscribers of their topic.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
	buffer int

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHub creates a hub whose subscribers queue up to buffer events.
func NewHub(buffer int, logger *logging.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger.Component("events"),
	}
}

// WithMetrics attaches a metrics collector.
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// Emit delivers payload to every subscriber of topic without blocking.
// Events for topics nobody listens to are discarded.
func (h *Hub) Emit(topic, payload string) {
	ev := Event{Topic: topic, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.metrics != nil {
		h.metrics.IncEventsEmitted()
	}

	for sub := range h.topics[topic] {
		select {
		case sub.ch <- ev:
		default:
			if h.metrics != nil {
				h.metrics.IncEventsDropped()
			}
			h.logger.Debug("Subscriber queue full, dropping event",
				zap.String("topic", topic),
				zap.Int("bytes", len(payload)),
			)
		}
	}
}

// Subscribe registers a listener for topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan Event, h.buffer),
		hub:   h,
	}

	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Subscribers returns the number of listeners on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
	// Emit holds the read lock while sending, so closing here is safe.
	close(sub.ch)
}

// Subscription is one listener on one topic.
type Subscription struct {
	topic string
	ch    chan Event
	hub   *Hub
	once  sync.Once
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string {
	return s.topic
}

// Events returns the delivery channel. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close unsubscribes. Calling it more than once is harmless.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
