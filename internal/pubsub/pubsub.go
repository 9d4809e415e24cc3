// Package pubsub fans pipeline mutation events out to live views. Every
// store mutation publishes one event; the SSE endpoint subscribes and
// pushes them to the browser so detail views and board stay in sync.
package pubsub

import (
	"sync"

	"github.com/bertagmachine/recruit-funnel/internal/logger"
)

// Event types published by the pipeline handlers.
const (
	EventStageChanged    = "pipeline:stage"
	EventInterestChanged = "pipeline:interest"
	EventInteractionAdd  = "interactions:add"
	EventCollegeAdd      = "colleges:add"
	EventCollegeRemove   = "colleges:remove"
	EventAthleteUpdate   = "athlete:update"
)

// Event is one pipeline mutation notification.
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// CollegeEvent builds an event scoped to one college.
func CollegeEvent(eventType, collegeID string) Event {
	return Event{
		Type:    eventType,
		Payload: map[string]interface{}{"collegeId": collegeID},
	}
}

// Upstream is an interface for upstream publishers (e.g., NATS)
type Upstream interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub implements a simple publish-subscribe system
type PubSub struct {
	mu          sync.RWMutex
	subscribers []chan Event
	upstream    Upstream
}

// New creates a new PubSub instance with no upstream.
func New() *PubSub {
	return &PubSub{
		subscribers: []chan Event{},
	}
}

// NewWithUpstream creates a PubSub that bridges to an upstream publisher
// such as NATS. Published events go up to the upstream, which broadcasts
// to every instance; events arriving from the upstream are forwarded to
// local subscribers.
func NewWithUpstream(upstream Upstream) *PubSub {
	ps := &PubSub{
		subscribers: []chan Event{},
		upstream:    upstream,
	}

	go func() {
		ch := upstream.Subscribe()
		for event := range ch {
			ps.publishLocal(event)
		}
		logger.Debug("PubSub: upstream channel closed")
	}()

	return ps
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (ps *PubSub) Subscribe() chan Event {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Event, 10)
	ps.subscribers = append(ps.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i, sub := range ps.subscribers {
		if sub == ch {
			close(ch)
			ps.subscribers = append(ps.subscribers[:i], ps.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers. With an upstream
// configured, the event goes there first and comes back through the
// upstream subscription.
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		ps.upstream.Publish(event)
		return
	}
	ps.publishLocal(event)
}

func (ps *PubSub) publishLocal(event Event) {
	ps.mu.RLock()
	subs := make([]chan Event, len(ps.subscribers))
	copy(subs, ps.subscribers)
	ps.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
			// Skip if channel is full
		}
	}
}
