// Package generation carves, populates and validates tile grids for one
// dive zone. The pipeline is strictly ordered and single-threaded: carve,
// place, validate, patch or retry, done. One seed always produces the
// same accepted grid.
package generation

import (
	"fmt"

	"ash-diver/config"
	"ash-diver/grid"
	"ash-diver/rng"
	"ash-diver/tiles"
)

// Marker is a discrete placed structure: a container, a piece of ground
// loot, or an enemy-spawn zone tag consumed later by the runtime.
type Marker struct {
	X, Y int
	Kind string
}

// Result is the only artifact that outlives a generation call: the
// accepted grid plus the marker lists the runtime needs.
type Result struct {
	Grid    *grid.Grid
	Zone    config.Zone
	Seed    int64
	Attempt int // which retry attempt produced the accepted grid

	Spawn      [2]int
	Goal       [2]int
	Containers []Marker
	Crates     [][2]int
	EnemyZones [][2]int
	GroundLoot []Marker

	// Surface holds the surface line per column (underground zone only).
	Surface []int
}

// UnplayableError reports that the validator rejected every layout the
// retry budget allowed. It carries the seed and the specific criterion
// that failed last, so the caller never receives a silently broken map.
type UnplayableError struct {
	Seed      int64
	Attempts  int
	Criterion string
}

func (e *UnplayableError) Error() string {
	return fmt.Sprintf("unplayable layout for seed %d after %d attempts: %s", e.Seed, e.Attempts, e.Criterion)
}

// Generator produces validated tile grids from seeds under one fixed
// configuration.
type Generator struct {
	cfg     config.Config
	tileset *tiles.Set
}

// NewGenerator validates the configuration and returns a generator.
// Configuration errors fail fast here, before any carving.
func NewGenerator(cfg config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, tileset: tiles.Default()}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Tileset returns the tile table the generator stamps into grids.
func (g *Generator) Tileset() *tiles.Set {
	return g.tileset
}

// Generate runs the full pipeline for one seed. On validation failure it
// first patches the specific defect deterministically and revalidates; if
// the patch budget runs out it re-carves with a derived sub-seed, up to
// the configured attempt budget, then returns an UnplayableError.
func (g *Generator) Generate(seed int64) (*Result, error) {
	lastCriterion := "unknown"

	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		streamSeed := seed
		if attempt > 0 {
			streamSeed = rng.SubSeed(seed, attempt)
		}
		stream := rng.NewStream(streamSeed)

		result, features := g.carveAndPlace(stream)
		result.Seed = seed
		result.Attempt = attempt

		verdict := g.validate(result, features)
		for patches := 0; !verdict.ok() && patches < g.cfg.MaxPatches; patches++ {
			if !g.patch(result, verdict) {
				break // defect has no deterministic local fix
			}
			g.detectTops(result.Grid)
			verdict = g.validate(result, features)
		}

		if verdict.ok() {
			return result, nil
		}
		lastCriterion = verdict.criterion
	}

	return nil, &UnplayableError{Seed: seed, Attempts: g.cfg.MaxAttempts, Criterion: lastCriterion}
}

// carveAndPlace runs the zone's carver and the structure placer and
// finishes with surface-top detection.
func (g *Generator) carveAndPlace(stream *rng.Stream) (*Result, []Feature) {
	gr := grid.New(g.cfg.Width, g.cfg.Height)
	result := &Result{Grid: gr, Zone: g.cfg.Zone}

	var features []Feature
	switch g.cfg.Zone {
	case config.ZoneSuburbs:
		features = g.carveSuburbs(gr, stream)
		g.placeSuburbStructures(result, features, stream)
	default:
		result.Surface, features = g.carveUnderground(gr, stream)
		g.placeUndergroundStructures(result, stream)
	}

	g.detectTops(gr)
	return result, features
}

// detectTops converts every fill cell with a passable cell directly above
// into a top (walkable surface) cell. Safe to re-run after patching.
func (g *Generator) detectTops(gr *grid.Grid) {
	for y := 1; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if gr.Tiles[y][x] == tiles.Fill && g.tileset.IsPassable(gr.Tiles[y-1][x]) {
				gr.Tiles[y][x] = tiles.Top
			}
		}
	}
}
