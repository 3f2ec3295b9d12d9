package simulation

// MotionState is the per-frame mode of a drone, derived only from its
// distance to the target. Nothing carries over from one frame to the next.
type MotionState uint8

const (
	Flight MotionState = iota
	Parking
	Stopped
)

func (s MotionState) String() string {
	switch s {
	case Flight:
		return "flight"
	case Parking:
		return "parking"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// parkingDamping is the velocity factor applied after integration while parking.
const parkingDamping = 0.85

// classify picks the motion state for a drone at distance d from the target.
// Only the radius of the configured near-target mode is consulted.
func (c *Config) classify(d float64) MotionState {
	switch c.NearTarget {
	case NearTargetStop:
		if d < c.StopRadius {
			return Stopped
		}
	default:
		if d < c.ParkingRadius {
			return Parking
		}
	}
	return Flight
}
