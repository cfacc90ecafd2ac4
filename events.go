package navigation

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	MESH_CHANGED EventType = iota
	PATH_UPDATED
	PATH_UNREACHABLE
	PATH_RESTORED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// MeshChangedEvent is sent on every step whose sources changed the mesh
type MeshChangedEvent struct {
	Generation uint64
	Vertices   int
	Triangles  int
}

func (e MeshChangedEvent) Type() EventType { return MESH_CHANGED }

// PathUpdatedEvent is sent each time a path is planned for an agent
type PathUpdatedEvent struct {
	Agent *Agent
	Path  []mgl64.Vec3
}

func (e PathUpdatedEvent) Type() EventType { return PATH_UPDATED }

// PathUnreachableEvent is sent when the destination of an agent becomes
// unreachable
type PathUnreachableEvent struct {
	Agent       *Agent
	Destination mgl64.Vec3
}

func (e PathUnreachableEvent) Type() EventType { return PATH_UNREACHABLE }

// PathRestoredEvent is sent when the destination reported unreachable is
// reachable again. Giving the agent another destination drops the report.
type PathRestoredEvent struct {
	Agent *Agent
}

func (e PathRestoredEvent) Type() EventType { return PATH_RESTORED }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Destination of every agent left unreachable by the previous step
	unreachable map[*Agent]mgl64.Vec3
}

func NewEvents() Events {
	return Events{
		listeners:   make(map[EventType][]EventListener),
		buffer:      make([]Event, 0, 64),
		unreachable: make(map[*Agent]mgl64.Vec3),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// processReachabilityEvents compares the status of every agent with the one
// tracked at the previous step to detect unreachable/restored transitions.
// A destination is restored only if it is the one reported unreachable.
func (e *Events) processReachabilityEvents(agents []*Agent) {
	for _, agent := range agents {
		if agent.status == StatusPending {
			continue
		}

		destination, wasUnreachable := e.unreachable[agent]
		sameDestination := wasUnreachable && destination == agent.destination

		switch agent.status {
		case StatusUnreachable:
			if !sameDestination {
				e.emit(PathUnreachableEvent{Agent: agent, Destination: agent.destination})
			}
			e.unreachable[agent] = agent.destination
		case StatusFollowing, StatusArrived:
			if sameDestination {
				e.emit(PathRestoredEvent{Agent: agent})
			}
			delete(e.unreachable, agent)
		default:
			delete(e.unreachable, agent)
		}
	}
}

func (e *Events) forget(agent *Agent) {
	delete(e.unreachable, agent)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
