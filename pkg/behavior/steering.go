package behavior

import "github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"

// Settings controls the physics constants shared by every steering rule.
type Settings struct {
	MaxSpeed      float64 // cruise speed a steering rule aims for
	MaxForce      float64 // cap on each returned steering force
	SlowingRadius float64 // distance under which Seek starts braking
}

// Seek steers toward target with arrival: inside SlowingRadius the desired
// speed ramps down linearly with the remaining distance.
func Seek(self State, target geometry.Vector2D, s Settings) geometry.Vector2D {
	desired := target.Sub(self.Pos)
	distance := desired.Len()
	desired = desired.Normalize()

	if distance < s.SlowingRadius {
		desired = desired.Mul((distance / s.SlowingRadius) * s.MaxSpeed)
	} else {
		desired = desired.Mul(s.MaxSpeed)
	}

	return desired.Sub(self.Vel).Limit(s.MaxForce)
}

// Separation pushes away from neighbors, weighted by inverse distance.
// Coincident neighbors have no direction and are skipped.
func Separation(self State, neighbors []State, s Settings) geometry.Vector2D {
	steering := geometry.Zero
	count := 0
	for _, other := range neighbors {
		diff := self.Pos.Sub(other.Pos)
		d := diff.Len()
		if d == 0 {
			continue
		}
		steering = steering.Add(diff.Normalize().Div(d))
		count++
	}
	if count == 0 {
		return geometry.Zero
	}

	steering = steering.Div(float64(count))
	return steering.Normalize().Mul(s.MaxSpeed).Sub(self.Vel).Limit(s.MaxForce)
}

// Alignment steers toward the average heading of the neighbors.
func Alignment(self State, neighbors []State, s Settings) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Zero
	}

	avg := geometry.Zero
	for _, other := range neighbors {
		avg = avg.Add(other.Vel)
	}
	avg = avg.Div(float64(len(neighbors)))

	return avg.Normalize().Mul(s.MaxSpeed).Sub(self.Vel).Limit(s.MaxForce)
}

// Cohesion seeks the center of mass of the neighbors.
func Cohesion(self State, neighbors []State, s Settings) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Zero
	}

	center := geometry.Zero
	for _, other := range neighbors {
		center = center.Add(other.Pos)
	}
	return Seek(self, center.Div(float64(len(neighbors))), s)
}
