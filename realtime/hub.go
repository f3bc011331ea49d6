package realtime

import (
	"sync"

	"github.com/formbuilder-api/logger"
	"go.uber.org/zap"
)

// Event types broadcast to template subscribers
const (
	EventNewComment     = "newComment"
	EventCommentDeleted = "commentDeleted"
	EventLikeUpdated    = "likeUpdated"
)

// Event is one notification fanned out to the subscribers of a template
type Event struct {
	Type       string      `json:"type"`
	TemplateID string      `json:"templateId"`
	Payload    interface{} `json:"payload,omitempty"`
}

// Subscriber receives a template's events. The channel is buffered; a
// subscriber that stops draining loses events rather than slowing others.
type Subscriber chan Event

// Hub decouples event producers from delivery: Publish enqueues onto an
// outbox queue and returns immediately, a single drain goroutine fans the
// queue out to per-template subscriber sets. A slow HTTP response path can
// therefore never be blocked by a slow or disconnected subscriber.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[Subscriber]struct{}
	queue       chan Event
	done        chan struct{}
	closeOnce   sync.Once
}

// NewHub creates a hub and starts its drain goroutine
func NewHub() *Hub {
	h := &Hub{
		subscribers: make(map[string]map[Subscriber]struct{}),
		queue:       make(chan Event, 256),
		done:        make(chan struct{}),
	}
	go h.run()
	return h
}

var defaultHub = NewHub()

// Default returns the process-wide hub
func Default() *Hub {
	return defaultHub
}

func (h *Hub) run() {
	for {
		select {
		case evt := <-h.queue:
			h.fanOut(evt)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) fanOut(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[evt.TemplateID] {
		select {
		case sub <- evt:
		default:
			// Subscriber buffer full, drop for this subscriber
		}
	}
}

// Publish enqueues an event. Fire-and-forget: when the outbox itself is
// full the event is dropped and logged, never blocking the caller.
func (h *Hub) Publish(evt Event) {
	select {
	case h.queue <- evt:
	case <-h.done:
	default:
		logger.Log.Warn("realtime outbox full, dropping event",
			zap.String("type", evt.Type),
			zap.String("templateId", evt.TemplateID))
	}
}

// Subscribe registers a new subscriber for a template's events
func (h *Hub) Subscribe(templateID string) Subscriber {
	sub := make(Subscriber, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[templateID] == nil {
		h.subscribers[templateID] = make(map[Subscriber]struct{})
	}
	h.subscribers[templateID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(templateID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subscribers[templateID]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub)
		}
		if len(set) == 0 {
			delete(h.subscribers, templateID)
		}
	}
}

// SubscriberCount reports how many subscribers a template currently has
func (h *Hub) SubscriberCount(templateID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[templateID])
}

// Close stops the drain goroutine. Pending queue entries are discarded.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}
