package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// spatialGrid is a uniform spatial hash of drone indices.
// With a cell as wide as the neighbor radius, every neighbor of a drone
// lives in the 3x3 block of cells around it.
type spatialGrid struct {
	cellSize float64
	cells    map[gridKey][]int
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	return &spatialGrid{
		// Clamp to a minimum of 1 to avoid tiny grids or div by zero
		cellSize: math.Max(cellSize, 1),
		cells:    make(map[gridKey][]int),
	}
}

func (g *spatialGrid) keyOf(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// rebuild re-buckets every drone of the frame snapshot.
func (g *spatialGrid) rebuild(states []behavior.State) {
	// Reset slices to length 0 but keep capacity, so a steady swarm
	// reuses the same backing arrays frame after frame.
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i, s := range states {
		key := g.keyOf(s.Pos)
		g.cells[key] = append(g.cells[key], i)
	}
}

// neighbors appends to dst the index of every drone strictly closer than
// radius to drone self. self is excluded by index, not by distance.
func (g *spatialGrid) neighbors(states []behavior.State, self int, radius float64, dst []int) []int {
	radiusSq := radius * radius
	me := states[self].Pos
	k := g.keyOf(me)
	for i := k.x - 1; i <= k.x+1; i++ {
		for j := k.y - 1; j <= k.y+1; j++ {
			for _, other := range g.cells[gridKey{x: i, y: j}] {
				if other == self {
					continue
				}
				if me.DistanceSquaredTo(states[other].Pos) < radiusSq {
					dst = append(dst, other)
				}
			}
		}
	}
	return dst
}
