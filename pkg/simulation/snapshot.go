package simulation

import "github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"

// DroneView is the read-only picture of a drone handed to renderers.
type DroneView struct {
	Position geometry.Vector2D
	Velocity geometry.Vector2D
	// State is the motion state the drone was in during the last frame.
	// No target is known before the first Update, so every drone reports Flight.
	State MotionState
}

// Heading is the orientation in radians used to draw the drone.
func (v DroneView) Heading() float64 {
	return v.Velocity.Angle()
}

// Snapshot is everything a presentation layer needs to draw one frame.
type Snapshot struct {
	Frame            uint64
	Drones           []DroneView
	ShowVisionRadius bool
	NeighborRadius   float64

	Flying  int
	Parked  int
	Stopped int
}

// Drones returns a view of every drone, in stable index order.
// Before the first Update every view is in Flight.
func (e *Engine) Drones() []DroneView {
	views := make([]DroneView, len(e.drones))
	for i, d := range e.drones {
		views[i] = DroneView{
			Position: d.Pos,
			Velocity: d.Vel,
			State:    e.plans[i].state,
		}
	}
	return views
}

// Snapshot builds the state of the swarm after the last Update.
func (e *Engine) Snapshot() Snapshot {
	flying, parked, stopped := e.counts()
	return Snapshot{
		Frame:            e.frame,
		Drones:           e.Drones(),
		ShowVisionRadius: e.showVisionRadius,
		NeighborRadius:   e.cfg.NeighborRadius,
		Flying:           flying,
		Parked:           parked,
		Stopped:          stopped,
	}
}

func (e *Engine) counts() (flying, parked, stopped int) {
	for _, p := range e.plans {
		switch p.state {
		case Parking:
			parked++
		case Stopped:
			stopped++
		default:
			flying++
		}
	}
	return flying, parked, stopped
}
