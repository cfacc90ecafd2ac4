package navigation

import "github.com/go-gl/mathgl/mgl64"

type Status uint8

const (
	// StatusIdle agents have no destination.
	StatusIdle Status = iota
	// StatusPending agents wait for the next step to plan their path.
	StatusPending
	StatusFollowing
	// StatusArrived agents stand on their destination.
	StatusArrived
	// StatusUnreachable agents have a destination no walk leads to.
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusFollowing:
		return "following"
	case StatusArrived:
		return "arrived"
	case StatusUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// Agent is a point moving over the navigation mesh. The host moves it with
// SetPosition and reads the planned route with Path or Next.
type Agent struct {
	Id interface{}

	position       mgl64.Vec3
	destination    mgl64.Vec3
	hasDestination bool
	path           []mgl64.Vec3
	status         Status

	// moved is set when the position changed since the last step
	moved bool

	// Result of the query phase
	result []mgl64.Vec3
	found  bool
}

func NewAgent(id interface{}, position mgl64.Vec3) *Agent {
	return &Agent{Id: id, position: position}
}

func (a *Agent) Position() mgl64.Vec3 {
	return a.position
}

func (a *Agent) SetPosition(position mgl64.Vec3) {
	if position == a.position {
		return
	}
	a.position = position
	a.moved = true
}

// Destination returns the current destination, or false for idle agents.
func (a *Agent) Destination() (mgl64.Vec3, bool) {
	return a.destination, a.hasDestination
}

func (a *Agent) SetDestination(destination mgl64.Vec3) {
	if a.hasDestination && destination == a.destination {
		return
	}
	a.destination = destination
	a.hasDestination = true
	a.status = StatusPending
}

// ClearDestination stops the agent and drops its path.
func (a *Agent) ClearDestination() {
	a.destination = mgl64.Vec3{}
	a.hasDestination = false
	a.path = nil
	a.status = StatusIdle
}

// Path returns the planned waypoints, nearest first. The current position of
// the agent is not part of it.
func (a *Agent) Path() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), a.path...)
}

// Next returns the first waypoint of the path.
func (a *Agent) Next() (mgl64.Vec3, bool) {
	if len(a.path) == 0 {
		return mgl64.Vec3{}, false
	}
	return a.path[0], true
}

func (a *Agent) Status() Status {
	return a.status
}

// needsPath applies the recomputation policy: a path is planned again when
// the mesh changed, when the agent moved, or when its destination changed.
func (a *Agent) needsPath(meshChanged bool) bool {
	if !a.hasDestination {
		return false
	}
	return meshChanged || a.moved || a.status == StatusPending
}
