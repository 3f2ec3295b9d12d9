package behavior

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"
)

// State is a by-value snapshot of a drone's kinematics.
// Steering rules only ever read States, so a frame can be computed
// against a stable picture of the swarm while the drones themselves move later.
type State struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// Drone represents a single agent of the swarm.
// We export Pos and Vel so the renderer and the tests can read them,
// the pending acceleration stays private and is only reachable through
// ApplyForce / SetAcceleration.
type Drone struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D

	acc geometry.Vector2D
}

// New creates a drone at pos moving with vel.
func New(pos, vel geometry.Vector2D) *Drone {
	return &Drone{Pos: pos, Vel: vel}
}

// Spawn creates a drone with random position inside the world
// and a random velocity in [-1,1] on each axis.
func Spawn(rng *rand.Rand, width, height float64) *Drone {
	return &Drone{
		Pos: geometry.Vector2D{X: rng.Float64() * width, Y: rng.Float64() * height},
		Vel: geometry.Vector2D{X: (rng.Float64() * 2) - 1, Y: (rng.Float64() * 2) - 1},
	}
}

// ApplyForce accumulates f into the pending acceleration of this frame.
func (d *Drone) ApplyForce(f geometry.Vector2D) {
	d.acc = d.acc.Add(f)
}

// Acceleration returns the force accumulated since the last Integrate.
func (d *Drone) Acceleration() geometry.Vector2D {
	return d.acc
}

// SetAcceleration overwrites the pending acceleration.
func (d *Drone) SetAcceleration(a geometry.Vector2D) {
	d.acc = a
}

// SetVelocity overwrites the velocity.
func (d *Drone) SetVelocity(v geometry.Vector2D) {
	d.Vel = v
}

// Integrate consumes the pending acceleration: Vel += acc (capped at maxSpeed),
// Pos += Vel, then wraps the position around the world edges.
// The wrap corrects a single crossing, which is enough because |Vel| <= maxSpeed.
func (d *Drone) Integrate(width, height, maxSpeed float64) {
	d.Vel = d.Vel.Add(d.acc).Limit(maxSpeed)
	d.Pos = d.Pos.Add(d.Vel)
	d.acc = geometry.Zero

	if d.Pos.X > width {
		d.Pos.X = 0
	} else if d.Pos.X < 0 {
		d.Pos.X = width
	}
	if d.Pos.Y > height {
		d.Pos.Y = 0
	} else if d.Pos.Y < 0 {
		d.Pos.Y = height
	}
}

// State returns a copy of the drone kinematics.
func (d *Drone) State() State {
	return State{Pos: d.Pos, Vel: d.Vel}
}

// Heading is the orientation of the drone in radians, derived from its velocity.
func (d *Drone) Heading() float64 {
	return d.Vel.Angle()
}
