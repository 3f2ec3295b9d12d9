package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/behavior"
)

//go:embed config.schema.json
var configSchema string

// ErrInvalidConfig is wrapped by every configuration precondition failure.
var ErrInvalidConfig = errors.New("invalid swarm configuration")

// NearTargetMode selects what happens to a drone very close to the target.
type NearTargetMode string

const (
	// NearTargetPark brakes drones inside ParkingRadius, keeping only separation.
	NearTargetPark NearTargetMode = "park"
	// NearTargetStop freezes drones inside StopRadius.
	NearTargetStop NearTargetMode = "stop"
)

// Config holds every tunable of a swarm. It is fixed once the Engine is built.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumDrones int `json:"numDrones"`

	// Physics
	MaxSpeed float64 `json:"maxSpeed"`
	MaxForce float64 `json:"maxForce"`

	// Interaction Radii
	NeighborRadius float64 `json:"neighborRadius"`
	ParkingRadius  float64 `json:"parkingRadius"`
	SlowingRadius  float64 `json:"slowingRadius"`
	StopRadius     float64 `json:"stopRadius"`

	NearTarget      NearTargetMode `json:"nearTarget"`
	AdaptiveWeights bool           `json:"adaptiveWeights"`

	// Base behavior weights
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`
	TargetWeight     float64 `json:"targetWeight"`

	// Workers > 1 computes the steering of a frame on that many goroutines.
	Workers int `json:"workers"`
	// Seed feeds the random placement of the drones, 0 picks a time based seed.
	Seed uint64 `json:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:       800,
		WorldHeight:      600,
		NumDrones:        50,
		MaxSpeed:         4,
		MaxForce:         0.1,
		NeighborRadius:   50,
		ParkingRadius:    60,
		SlowingRadius:    100,
		StopRadius:       20,
		NearTarget:       NearTargetPark,
		AdaptiveWeights:  true,
		SeparationWeight: 1.5,
		AlignmentWeight:  1.0,
		CohesionWeight:   1.0,
		TargetWeight:     1.0,
		Workers:          1,
	}
}

// Validate checks the preconditions the engine relies on.
func (c *Config) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"worldWidth", c.WorldWidth},
		{"worldHeight", c.WorldHeight},
		{"maxSpeed", c.MaxSpeed},
		{"maxForce", c.MaxForce},
		{"neighborRadius", c.NeighborRadius},
		{"slowingRadius", c.SlowingRadius},
	}
	for _, p := range positives {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.NumDrones <= 0 {
		return fmt.Errorf("%w: numDrones must be > 0, got %d", ErrInvalidConfig, c.NumDrones)
	}

	switch c.NearTarget {
	case NearTargetPark:
		if !(c.ParkingRadius > 0) {
			return fmt.Errorf("%w: parkingRadius must be > 0, got %v", ErrInvalidConfig, c.ParkingRadius)
		}
	case NearTargetStop:
		if !(c.StopRadius > 0) {
			return fmt.Errorf("%w: stopRadius must be > 0, got %v", ErrInvalidConfig, c.StopRadius)
		}
	default:
		return fmt.Errorf("%w: unknown nearTarget mode %q", ErrInvalidConfig, c.NearTarget)
	}

	for name, w := range map[string]float64{
		"separationWeight": c.SeparationWeight,
		"alignmentWeight":  c.AlignmentWeight,
		"cohesionWeight":   c.CohesionWeight,
		"targetWeight":     c.TargetWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, w)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Settings extracts the constants shared by the steering rules.
func (c *Config) Settings() behavior.Settings {
	return behavior.Settings{
		MaxSpeed:      c.MaxSpeed,
		MaxForce:      c.MaxForce,
		SlowingRadius: c.SlowingRadius,
	}
}

// BaseWeights returns the configured weights, before any adaptation.
func (c *Config) BaseWeights() Weights {
	return Weights{
		Separation: c.SeparationWeight,
		Alignment:  c.AlignmentWeight,
		Cohesion:   c.CohesionWeight,
		Target:     c.TargetWeight,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, validates it against
// the embedded schema and overlays it on DefaultConfig.
// If the file doesn't exist, returns defaults.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	// 1. Read Config File
	raw, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	// 2. YAML documents are converted to JSON so a single schema covers both
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config yaml: %w", err)
		}
	}

	// 3. Validate against the schema
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	// 4. Unmarshal into Struct
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateDocument(raw []byte) error {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
