package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"
)

// Engine owns a swarm and advances it one frame per Update call.
//
// A frame runs in three passes: capture a by-value snapshot of every drone,
// plan each drone against that snapshot, then apply the plans. No drone
// moves before every plan of the frame is known, so the result does not
// depend on the order of the drones and the planning pass can be spread
// over several goroutines.
type Engine struct {
	cfg      Config
	settings behavior.Settings
	weights  Weights
	drones   []*behavior.Drone
	grid     *spatialGrid
	logger   *zap.Logger

	showVisionRadius bool
	frame            uint64

	// per-frame scratch, index-aligned with drones
	snapshot []behavior.State
	plans    []plan
}

// plan is what a drone will do this frame.
type plan struct {
	state     MotionState
	neighbors int
	force     geometry.Vector2D
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithLogger sets the logger used by the engine. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDrones replaces the random placement by the given drones.
// They are copied, so the caller keeps no handle on the swarm.
func WithDrones(drones ...*behavior.Drone) Option {
	return func(e *Engine) {
		e.drones = make([]*behavior.Drone, 0, len(drones))
		for _, d := range drones {
			clone := *d
			e.drones = append(e.drones, &clone)
		}
	}
}

// NewEngine validates cfg and spawns the swarm.
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      *cfg,
		settings: cfg.Settings(),
		weights:  cfg.BaseWeights(),
		grid:     newSpatialGrid(cfg.NeighborRadius),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	seed := cfg.Seed
	if e.drones == nil {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng := rand.New(rand.NewPCG(seed, seed))
		e.drones = make([]*behavior.Drone, cfg.NumDrones)
		for i := range e.drones {
			e.drones[i] = behavior.Spawn(rng, cfg.WorldWidth, cfg.WorldHeight)
		}
	} else if len(e.drones) != cfg.NumDrones {
		return nil, fmt.Errorf("%w: got %d drones for numDrones=%d", ErrInvalidConfig, len(e.drones), cfg.NumDrones)
	}

	e.snapshot = make([]behavior.State, len(e.drones))
	e.plans = make([]plan, len(e.drones))

	e.logger.Info("swarm spawned",
		zap.Int("drones", len(e.drones)),
		zap.Uint64("seed", seed),
		zap.String("nearTarget", string(cfg.NearTarget)),
		zap.Bool("adaptiveWeights", cfg.AdaptiveWeights),
		zap.Int("workers", cfg.Workers),
	)
	return e, nil
}

// Update advances the swarm by one frame toward target.
func (e *Engine) Update(target geometry.Vector2D) {
	e.capture()
	if err := e.planAll(target); err != nil {
		e.logger.Error("planning failed", zap.Error(err))
	}
	e.apply()
	e.frame++

	if ce := e.logger.Check(zapcore.DebugLevel, "frame"); ce != nil {
		flying, parked, stopped := e.counts()
		ce.Write(
			zap.Uint64("frame", e.frame),
			zap.Stringer("target", target),
			zap.Int("flying", flying),
			zap.Int("parked", parked),
			zap.Int("stopped", stopped),
		)
	}
}

// capture copies the kinematics of every drone and re-buckets the grid.
func (e *Engine) capture() {
	for i, d := range e.drones {
		e.snapshot[i] = d.State()
	}
	e.grid.rebuild(e.snapshot)
}

func (e *Engine) planAll(target geometry.Vector2D) error {
	n := len(e.drones)
	if e.cfg.Workers <= 1 || n < 2 {
		for i := range n {
			e.plans[i] = e.plan(i, target)
		}
		return nil
	}

	// each goroutine owns a contiguous range of plan slots and only reads the snapshot
	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	chunk := (n + e.cfg.Workers - 1) / e.cfg.Workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				e.plans[i] = e.plan(i, target)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("parallel planning: %w", err)
	}
	return nil
}

// plan decides the motion state and force of drone i for this frame.
func (e *Engine) plan(i int, target geometry.Vector2D) plan {
	self := e.snapshot[i]
	p := plan{state: e.cfg.classify(self.Pos.DistanceTo(target))}
	if p.state == Stopped {
		return p
	}

	neighbors := e.neighborStates(i)
	p.neighbors = len(neighbors)

	switch p.state {
	case Parking:
		// amplified separation only: make room around the target
		p.force = behavior.Separation(self, neighbors, e.settings).Mul(2 * e.weights.Separation)
	default:
		w := e.weights
		if e.cfg.AdaptiveWeights {
			w = w.Adapt(len(neighbors))
		}
		p.force = e.steer(self, neighbors, target).Blend(w)
	}

	if !p.force.IsFinite() {
		e.logger.Warn("discarding non finite force",
			zap.Int("drone", i),
			zap.Stringer("pos", self.Pos),
			zap.Stringer("state", p.state),
		)
		p.force = geometry.Zero
	}
	return p
}

func (e *Engine) steer(self behavior.State, neighbors []behavior.State, target geometry.Vector2D) Steering {
	return Steering{
		Separation: behavior.Separation(self, neighbors, e.settings),
		Alignment:  behavior.Alignment(self, neighbors, e.settings),
		Cohesion:   behavior.Cohesion(self, neighbors, e.settings),
		Seek:       behavior.Seek(self, target, e.settings),
	}
}

func (e *Engine) neighborStates(i int) []behavior.State {
	idx := e.grid.neighbors(e.snapshot, i, e.cfg.NeighborRadius, nil)
	if len(idx) == 0 {
		return nil
	}
	states := make([]behavior.State, len(idx))
	for k, j := range idx {
		states[k] = e.snapshot[j]
	}
	return states
}

// apply is the only pass that mutates drones.
func (e *Engine) apply() {
	for i, d := range e.drones {
		p := e.plans[i]
		switch p.state {
		case Stopped:
			d.SetVelocity(geometry.Zero)
			d.SetAcceleration(geometry.Zero)
		case Parking:
			d.ApplyForce(p.force)
			d.Integrate(e.cfg.WorldWidth, e.cfg.WorldHeight, e.cfg.MaxSpeed)
			// brakes: settle instead of orbiting the target
			d.SetVelocity(d.Vel.Mul(parkingDamping))
		default:
			d.ApplyForce(p.force)
			d.Integrate(e.cfg.WorldWidth, e.cfg.WorldHeight, e.cfg.MaxSpeed)
		}
	}
}

// Neighbors returns the indices of the drones closer than NeighborRadius to drone i,
// using the current positions. The frame scratch is left untouched.
func (e *Engine) Neighbors(i int) []int {
	if i < 0 || i >= len(e.drones) {
		return nil
	}
	states := make([]behavior.State, len(e.drones))
	for k, d := range e.drones {
		states[k] = d.State()
	}
	g := newSpatialGrid(e.cfg.NeighborRadius)
	g.rebuild(states)
	return g.neighbors(states, i, e.cfg.NeighborRadius, nil)
}

// ToggleVisionDisplay flips the debug overlay flag.
func (e *Engine) ToggleVisionDisplay() {
	e.showVisionRadius = !e.showVisionRadius
	e.logger.Debug("vision display toggled", zap.Bool("show", e.showVisionRadius))
}

// ShowVisionRadius reports whether the vision circles should be drawn.
func (e *Engine) ShowVisionRadius() bool {
	return e.showVisionRadius
}

// NeighborRadius is the radius of the vision circle.
func (e *Engine) NeighborRadius() float64 {
	return e.cfg.NeighborRadius
}

// Frame is the number of completed Update calls.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// Config returns a copy of the configuration the engine runs with.
func (e *Engine) Config() Config {
	return e.cfg
}
