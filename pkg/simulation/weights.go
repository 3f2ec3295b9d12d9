package simulation

import "github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"

// crowdedThreshold is the neighbor count above which a drone is considered crowded.
const crowdedThreshold = 3

// Weights scale the four steering components before they are summed.
type Weights struct {
	Separation float64
	Alignment  float64
	Cohesion   float64
	Target     float64
}

// Adapt returns the weights a drone with n neighbors should fly with.
// The receiver is never modified.
func (w Weights) Adapt(n int) Weights {
	switch {
	case n > crowdedThreshold:
		// avoid collisions and follow the flow before reaching the goal
		w.Separation *= 2.5
		w.Alignment *= 1.5
		w.Target *= 0.5
	case n == 0:
		w.Cohesion = 0
		w.Target *= 1.2
	}
	return w
}

// Steering holds the raw output of the four rules for one drone.
type Steering struct {
	Separation geometry.Vector2D
	Alignment  geometry.Vector2D
	Cohesion   geometry.Vector2D
	Seek       geometry.Vector2D
}

// Blend returns the weighted sum of the steering components.
func (s Steering) Blend(w Weights) geometry.Vector2D {
	return s.Separation.Mul(w.Separation).
		Add(s.Alignment.Mul(w.Alignment)).
		Add(s.Cohesion.Mul(w.Cohesion)).
		Add(s.Seek.Mul(w.Target))
}
