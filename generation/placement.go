package generation

import (
	"ash-diver/grid"
	"ash-diver/rng"
	"ash-diver/tiles"
)

// placeUndergroundStructures drops the spawn on the flattest stretch of
// surface near the center, the extraction goal at the deepest far point,
// and containers, loot and enemy zones through the open caves. Placement
// order is fixed; every tie breaks by scan order.
func (g *Generator) placeUndergroundStructures(result *Result, stream *rng.Stream) {
	gr := result.Grid
	surface := result.Surface

	// Spawn: flattest surface window near the horizontal center.
	centerX := gr.Width / 2
	spawnX := centerX
	bestScore := int(^uint(0) >> 1)
	for x := maxInt(5, centerX-gr.Width/4); x < minInt(gr.Width-5, centerX+gr.Width/4); x++ {
		lo, hi := surface[x], surface[x]
		for wx := maxInt(0, x-2); wx <= minInt(gr.Width-1, x+2); wx++ {
			lo = minInt(lo, surface[wx])
			hi = maxInt(hi, surface[wx])
		}
		score := (hi-lo)*10 + absInt(x-centerX)
		if score < bestScore {
			bestScore = score
			spawnX = x
		}
	}
	spawnY := surface[spawnX] - 1
	gr.Tiles[spawnY][spawnX] = tiles.Spawn
	result.Spawn = [2]int{spawnX, spawnY}

	// Goal: open cell maximizing depth and distance from spawn. Scanning
	// bottom-up row-major and keeping the first strict maximum makes the
	// tie-break lexicographic in (depth, x).
	bestGoal := [2]int{-1, -1}
	bestGoalScore := -1
	for y := gr.Height - 1; y >= 0; y-- {
		for x := 0; x < gr.Width; x++ {
			if gr.Tiles[y][x] != tiles.Air {
				continue
			}
			score := y*2 + absInt(x-spawnX) + absInt(y-spawnY)
			if score > bestGoalScore {
				bestGoalScore = score
				bestGoal = [2]int{x, y}
			}
		}
	}
	if bestGoal[0] >= 0 {
		gr.Tiles[bestGoal[1]][bestGoal[0]] = tiles.Goal
		result.Goal = bestGoal
	}

	undergroundStart := maxIntSlice(surface) + 2
	result.Containers = g.placeContainers(gr, stream, undergroundStart, gr.Height-2)
	result.GroundLoot = g.placeGroundLoot(gr, stream, undergroundStart, gr.Height-2)
	result.EnemyZones = g.placeEnemyZones(gr, stream, undergroundStart, gr.Height-2)
}

// placeSuburbStructures drops the spawn at the canonical left-edge entry,
// extraction balloon crates under clear sky, then containers, loot and
// enemy-zone tags.
func (g *Generator) placeSuburbStructures(result *Result, features []Feature, stream *rng.Stream) {
	gr := result.Grid
	gy := g.cfg.GroundY

	// Spawn: first open supported cell scanning right from the left edge.
	result.Spawn = [2]int{5, gy - 1}
	for x := 5; x < minInt(20, gr.Width); x++ {
		y := gy - 1
		if !gr.InBounds(x, y) || gr.Tiles[y][x] != tiles.Air {
			continue
		}
		if y+1 < gr.Height && isSupport(gr.Tiles[y+1][x]) {
			result.Spawn = [2]int{x, y}
			break
		}
	}
	gr.Tiles[result.Spawn[1]][result.Spawn[0]] = tiles.Spawn

	// Extraction balloon crates need a completely clear sky column.
	result.Crates = g.placeBalloonCrates(gr, stream)
	if len(result.Crates) > 0 {
		result.Goal = result.Crates[0]
	} else {
		result.Goal = [2]int{-1, -1} // validator rejects the layout
	}

	result.Containers = g.placeContainers(gr, stream, maxInt(0, gy-12), gy-1)
	result.GroundLoot = g.placeGroundLoot(gr, stream, maxInt(0, gy-10), gy-1)
	result.EnemyZones = g.placeEnemyZones(gr, stream, gy-2, gy-2)
}

// isSupport reports whether a tile can hold a structure placed on top of it.
func isSupport(id tiles.ID) bool {
	switch id {
	case tiles.Fill, tiles.Top, tiles.Road, tiles.Floor, tiles.Roof, tiles.Wall:
		return true
	}
	return false
}

// placeContainers drops loot containers on open supported cells within
// the given row band, keeping the configured minimum spacing between any
// two so they never cluster.
func (g *Generator) placeContainers(gr *grid.Grid, stream *rng.Stream, yMin, yMax int) []Marker {
	var out []Marker
	attempts := g.cfg.NumContainers * 10
	for i := 0; i < attempts && len(out) < g.cfg.NumContainers; i++ {
		cx := stream.Between(3, maxInt(3, gr.Width-4))
		cy := stream.Between(maxInt(0, yMin), maxInt(0, yMax))
		if !gr.InBounds(cx, cy) || gr.Tiles[cy][cx] != tiles.Air {
			continue
		}
		if cy+1 >= gr.Height || !isSupport(gr.Tiles[cy+1][cx]) {
			continue
		}
		tooClose := false
		for _, m := range out {
			if absInt(m.X-cx)+absInt(m.Y-cy) < g.cfg.ContainerSpacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		gr.Tiles[cy][cx] = tiles.Container
		kind := rng.Choice(stream, []string{"crate", "crate", "locker", "rubble_pile"})
		out = append(out, Marker{X: cx, Y: cy, Kind: kind})
	}
	return out
}

// placeBalloonCrates drops extraction crates on open ground cells with a
// clear column of sky above, falling back to a deterministic scan if the
// stream never finds one.
func (g *Generator) placeBalloonCrates(gr *grid.Grid, stream *rng.Stream) [][2]int {
	gy := g.cfg.GroundY
	var out [][2]int
	for i := 0; i < 100 && len(out) < g.cfg.NumBalloonCrates; i++ {
		bx := stream.Between(10, maxInt(10, gr.Width-10))
		if g.tryBalloonCrate(gr, bx, gy-1) {
			out = append(out, [2]int{bx, gy - 1})
		}
	}
	if len(out) == 0 {
		// Deterministic fallback: first eligible column left to right.
		for bx := 1; bx < gr.Width-1; bx++ {
			if g.tryBalloonCrate(gr, bx, gy-1) {
				out = append(out, [2]int{bx, gy - 1})
				break
			}
		}
	}
	return out
}

// tryBalloonCrate stamps a crate at (x, y) if the cell is open, supported
// and under clear sky.
func (g *Generator) tryBalloonCrate(gr *grid.Grid, x, y int) bool {
	if !gr.InBounds(x, y) || gr.Tiles[y][x] != tiles.Air {
		return false
	}
	for sy := 0; sy < y; sy++ {
		if gr.Tiles[sy][x] != tiles.Air {
			return false
		}
	}
	if y+1 >= gr.Height {
		return false
	}
	switch gr.Tiles[y+1][x] {
	case tiles.Fill, tiles.Road, tiles.Floor:
		gr.Tiles[y][x] = tiles.BalloonCrate
		return true
	}
	return false
}

// placeGroundLoot records loose scrap pickups on open supported cells.
// Loot is marker metadata only; it never changes the grid.
func (g *Generator) placeGroundLoot(gr *grid.Grid, stream *rng.Stream, yMin, yMax int) []Marker {
	lootKinds := []string{"scrap_wood", "scrap_metal", "scrap_wood", "scrap_electronics"}
	var out []Marker
	for i := 0; i < 200 && len(out) < g.cfg.NumGroundLoot; i++ {
		lx := stream.Between(5, maxInt(5, gr.Width-5))
		ly := stream.Between(maxInt(0, yMin), maxInt(0, yMax))
		if !gr.InBounds(lx, ly) || gr.Tiles[ly][lx] != tiles.Air {
			continue
		}
		if ly+1 >= gr.Height || !isSupport(gr.Tiles[ly+1][lx]) {
			continue
		}
		out = append(out, Marker{X: lx, Y: ly, Kind: rng.Choice(stream, lootKinds)})
	}
	return out
}

// placeEnemyZones tags regions for runtime enemy spawning, kept away from
// the spawn side of the map. Tags only; no live entities.
func (g *Generator) placeEnemyZones(gr *grid.Grid, stream *rng.Stream, yMin, yMax int) [][2]int {
	var out [][2]int
	for i := 0; i < g.cfg.NumEnemyZones; i++ {
		zx := stream.Between(gr.Width/3, maxInt(gr.Width/3, gr.Width-10))
		zy := clampInt(stream.Between(maxInt(0, yMin), maxInt(0, yMax)), 0, gr.Height-1)
		out = append(out, [2]int{zx, zy})
	}
	return out
}
