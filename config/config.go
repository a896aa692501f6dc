// Package config defines the constraint configuration for one generation
// run. The configuration is an explicit value set passed into the
// generator, never ambient globals, and is validated before any carving
// begins.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Zone selects which terrain carver runs.
type Zone string

const (
	ZoneUnderground Zone = "underground"
	ZoneSuburbs     Zone = "suburbs"
)

// InvalidError reports a self-contradictory configuration. Generation
// fails fast with it before touching the grid.
type InvalidError struct {
	Field  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Config holds every knob for one generation run.
type Config struct {
	Zone   Zone `yaml:"zone"`
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`

	// Underground surface line
	SurfaceYMin    int `yaml:"surface_y_min"`
	SurfaceYMax    int `yaml:"surface_y_max"`
	SurfaceStepMax int `yaml:"surface_step_max"`

	// Underground tunnels
	NumTunnels         int     `yaml:"num_tunnels"`
	TunnelMinWidth     int     `yaml:"tunnel_min_width"`
	TunnelClearance    int     `yaml:"tunnel_clearance"`
	TunnelBranchChance float64 `yaml:"tunnel_branch_chance"`

	// Underground caves
	NumCaves          int     `yaml:"num_caves"`
	CaveRadiusMin     int     `yaml:"cave_radius_min"`
	CaveRadiusMax     int     `yaml:"cave_radius_max"`
	CaveNoiseStrength float64 `yaml:"cave_noise_strength"`

	// Suburb layout
	GroundY          int     `yaml:"ground_y"`
	NumRoads         int     `yaml:"num_roads"`
	NumHouses        int     `yaml:"num_houses"`
	NumRubblePiles   int     `yaml:"num_rubble_piles"`
	NumBalloonCrates int     `yaml:"num_balloon_crates"`
	RuinChance       float64 `yaml:"ruin_chance"`

	// Structure placement
	NumContainers    int `yaml:"num_containers"`
	ContainerSpacing int `yaml:"container_spacing"`
	NumEnemyZones    int `yaml:"num_enemy_zones"`
	NumGroundLoot    int `yaml:"num_ground_loot"`

	// Traversal model and acceptance criteria
	MaxJumpHeight int `yaml:"max_jump_height"`
	MinRegionSize int `yaml:"min_region_size"`

	// Validation retry budget
	MaxPatches  int `yaml:"max_patches"`
	MaxAttempts int `yaml:"max_attempts"`
}

// Defaults returns the standard configuration for a zone type.
func Defaults(zone Zone) Config {
	cfg := Config{
		Zone:   zone,
		Width:  200,
		Height: 120,

		SurfaceYMin:    8,
		SurfaceYMax:    18,
		SurfaceStepMax: 2,

		NumTunnels:         5,
		TunnelMinWidth:     3,
		TunnelClearance:    3,
		TunnelBranchChance: 0.15,

		NumCaves:          12,
		CaveRadiusMin:     5,
		CaveRadiusMax:     18,
		CaveNoiseStrength: 0.35,

		GroundY:          45,
		NumRoads:         3,
		NumHouses:        10,
		NumRubblePiles:   12,
		NumBalloonCrates: 2,
		RuinChance:       0.35,

		NumContainers:    15,
		ContainerSpacing: 4,
		NumEnemyZones:    4,
		NumGroundLoot:    8,

		MaxJumpHeight: 3,
		MinRegionSize: 50,

		MaxPatches:  8,
		MaxAttempts: 5,
	}
	if zone == ZoneSuburbs {
		cfg.Width = 160
		cfg.Height = 60
	}
	return cfg
}

// Load reads a YAML config file over the zone defaults. An empty path
// returns the defaults unchanged.
func Load(path string, zone Zone) (Config, error) {
	cfg := Defaults(zone)
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Zone == "" {
		cfg.Zone = zone
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions. It returns an
// *InvalidError describing the first problem found.
func (c Config) Validate() error {
	if c.Zone != ZoneUnderground && c.Zone != ZoneSuburbs {
		return &InvalidError{Field: "zone", Reason: fmt.Sprintf("unknown zone %q", c.Zone)}
	}
	if c.Width < 1 || c.Height < 1 {
		return &InvalidError{Field: "width/height", Reason: "grid dimensions must be at least 1x1"}
	}
	if c.MinRegionSize > c.Width*c.Height {
		return &InvalidError{Field: "min_region_size",
			Reason: fmt.Sprintf("minimum region size %d exceeds total grid area %d", c.MinRegionSize, c.Width*c.Height)}
	}
	if c.MaxJumpHeight < 1 {
		return &InvalidError{Field: "max_jump_height", Reason: "must be at least 1"}
	}
	if c.MaxAttempts < 1 {
		return &InvalidError{Field: "max_attempts", Reason: "must be at least 1"}
	}
	if c.MaxPatches < 0 {
		return &InvalidError{Field: "max_patches", Reason: "must not be negative"}
	}
	switch c.Zone {
	case ZoneUnderground:
		if c.SurfaceYMin < 0 || c.SurfaceYMax >= c.Height || c.SurfaceYMin > c.SurfaceYMax {
			return &InvalidError{Field: "surface_y_min/surface_y_max",
				Reason: fmt.Sprintf("surface band [%d,%d] does not fit height %d", c.SurfaceYMin, c.SurfaceYMax, c.Height)}
		}
		if c.TunnelMinWidth < 1 || c.TunnelClearance < 1 {
			return &InvalidError{Field: "tunnel_min_width/tunnel_clearance", Reason: "must be at least 1"}
		}
		if c.CaveRadiusMin > c.CaveRadiusMax {
			return &InvalidError{Field: "cave_radius_min",
				Reason: fmt.Sprintf("minimum radius %d exceeds maximum %d", c.CaveRadiusMin, c.CaveRadiusMax)}
		}
	case ZoneSuburbs:
		if c.GroundY < 1 || c.GroundY >= c.Height {
			return &InvalidError{Field: "ground_y",
				Reason: fmt.Sprintf("ground line %d does not fit height %d", c.GroundY, c.Height)}
		}
	}
	return nil
}
