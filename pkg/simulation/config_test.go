package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"negative height", func(c *Config) { c.WorldHeight = -1 }},
		{"empty swarm", func(c *Config) { c.NumDrones = 0 }},
		{"zero max speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"zero max force", func(c *Config) { c.MaxForce = 0 }},
		{"negative neighbor radius", func(c *Config) { c.NeighborRadius = -5 }},
		{"zero slowing radius", func(c *Config) { c.SlowingRadius = 0 }},
		{"park mode without parking radius", func(c *Config) { c.ParkingRadius = 0 }},
		{"stop mode without stop radius", func(c *Config) {
			c.NearTarget = NearTargetStop
			c.StopRadius = 0
		}},
		{"unknown mode", func(c *Config) { c.NearTarget = "hover" }},
		{"negative weight", func(c *Config) { c.CohesionWeight = -0.1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestConfig_StopModeIgnoresParkingRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NearTarget = NearTargetStop
	cfg.ParkingRadius = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_JSONOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "swarm.json", `{"numDrones": 12, "nearTarget": "stop", "stopRadius": 15, "seed": 99}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.NumDrones)
	assert.Equal(t, NearTargetStop, cfg.NearTarget)
	assert.Equal(t, 15.0, cfg.StopRadius)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, DefaultConfig().MaxSpeed, cfg.MaxSpeed, "unset fields keep their default")
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "swarm.yaml", `
worldWidth: 1024
worldHeight: 768
numDrones: 7
adaptiveWeights: false
targetWeight: 2.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1024.0, cfg.WorldWidth)
	assert.Equal(t, 768.0, cfg.WorldHeight)
	assert.Equal(t, 7, cfg.NumDrones)
	assert.False(t, cfg.AdaptiveWeights)
	assert.Equal(t, 2.5, cfg.TargetWeight)
}

func TestLoadConfig_SchemaRejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero population", `{"numDrones": 0}`},
		{"unknown property", `{"numDrone": 10}`},
		{"unknown mode", `{"nearTarget": "hover"}`},
		{"wrong type", `{"maxSpeed": "fast"}`},
		{"fractional population", `{"numDrones": 2.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "swarm.json", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoadConfig_SemanticRejection(t *testing.T) {
	// accepted by the schema, refused by Validate
	_, err := LoadConfig(writeFile(t, "swarm.json", `{"parkingRadius": 0}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "swarm.json", `{"numDrones": `))
	require.Error(t, err)

	_, err = LoadConfig(writeFile(t, "swarm.yml", "numDrones: [1,"))
	require.Error(t, err)
}

func TestLoadConfig_ShippedFiles(t *testing.T) {
	for _, name := range []string{"swarm.json", "swarm-stop.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(filepath.Join("..", "..", "configs", name))
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
		})
	}
}
