package event

import (
	"sync"

	"github.com/lanpobre/rghstore/internal/logger"
)

type listener struct {
	id        int
	eventType EventType
	channel   chan Event
}

// EventManager implements Manager. Delivery never blocks the sender: an
// event is dropped for a listener whose channel is full.
type EventManager struct {
	listeners []*listener
	nextID    int
	mux       sync.RWMutex
	log       logger.Logger
}

// NewEventManager returns a new instance of EventManager
func NewEventManager() *EventManager {
	return &EventManager{
		listeners: []*listener{},
		nextID:    1,
		log:       logger.New().With("event"),
	}
}

// RegisterListener registers channel for events of eventType and returns
// an id that can be used to remove it
func (m *EventManager) RegisterListener(eventType EventType, channel chan Event) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	l := &listener{
		id:        m.nextID,
		eventType: eventType,
		channel:   channel,
	}

	m.listeners = append(m.listeners, l)
	m.nextID++

	return l.id
}

// RemoveListener removes a listener and returns its id, or 0 if unknown
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	removed := 0
	listeners := []*listener{}

	for _, l := range m.listeners {
		if l.id == id {
			removed = id
			continue
		}
		listeners = append(listeners, l)
	}

	m.listeners = listeners

	return removed
}

// Send delivers event to every listener registered for its type
func (m *EventManager) Send(evt Event) {
	m.mux.RLock()
	defer m.mux.RUnlock()

	for _, l := range m.listeners {
		if l.eventType != evt.Type {
			continue
		}

		select {
		case l.channel <- evt:
		default:
			m.log.Debug().
				Int("listener", l.id).
				Str("type", string(evt.Type)).
				Msg("listener busy, dropping event")
		}
	}
}

// ReportError sends err as an ErrorEventType event
func (m *EventManager) ReportError(err error) {
	m.Send(Event{Type: ErrorEventType, Payload: err})
}
