package generation

import (
	"ash-diver/grid"
	"ash-diver/rng"
	"ash-diver/tiles"
)

// carveSuburbs lays down the ruined-suburb zone: a ground line, road
// strips, house footprints with interior rooms, exterior ladders and
// scattered rubble. Returns the house and road features; house entry
// cells are their doorway interiors.
func (g *Generator) carveSuburbs(gr *grid.Grid, stream *rng.Stream) []Feature {
	g.carveGround(gr, stream)
	features := g.carveRoads(gr, stream)
	houses := g.carveHouses(gr, stream)

	// Houses may be stamped over part of a road; drop road entry cells
	// that are no longer open so the validator never demands a path into
	// the inside of a wall.
	for i := range features {
		kept := features[i].Entry[:0]
		for _, e := range features[i].Entry {
			if gr.Tiles[e[1]][e[0]] == tiles.Air {
				kept = append(kept, e)
			}
		}
		features[i].Entry = kept
	}

	features = append(features, houses...)
	g.placeExteriorLadders(gr, stream, houses)
	g.scatterRubble(gr, stream)
	return features
}

// carveGround opens everything above the ground line to air and keeps a
// slight per-column elevation variation below it.
func (g *Generator) carveGround(gr *grid.Grid, stream *rng.Stream) {
	baseY := g.cfg.GroundY
	for x := 0; x < gr.Width; x++ {
		gy := clampInt(baseY+stream.Between(-1, 1), baseY-2, gr.Height-1)
		for y := 0; y < gy; y++ {
			gr.Tiles[y][x] = tiles.Air
		}
		for y := gy; y < gr.Height; y++ {
			gr.Tiles[y][x] = tiles.Fill
		}
	}
}

// carveRoads lays horizontal road strips at ground level with three
// tiles of walkable clearance above each.
func (g *Generator) carveRoads(gr *grid.Grid, stream *rng.Stream) []Feature {
	gy := g.cfg.GroundY
	var features []Feature

	// Pick sorted segment anchors, then pair them off into strips.
	count := minInt(g.cfg.NumRoads*2, gr.Width-10)
	if count < 2 || gr.Width <= 10 {
		return nil
	}
	anchors := sampleSorted(stream, 5, gr.Width-6, count)

	for i := 0; i+1 < len(anchors); i += 2 {
		xStart := anchors[i]
		xEnd := minInt(xStart+stream.Between(20, 50), anchors[i+1])
		xEnd = minInt(xEnd, gr.Width-1)
		for x := xStart; x < xEnd; x++ {
			if gy-1 >= 0 {
				gr.Tiles[gy-1][x] = tiles.Air
			}
			gr.Tiles[gy][x] = tiles.Road
			for dy := 1; dy <= 3; dy++ {
				if gy-dy >= 0 {
					gr.Tiles[gy-dy][x] = tiles.Air
				}
			}
		}
		if xEnd > xStart {
			features = append(features, Feature{
				Kind: FeatureRoad, X: xStart, Y: gy, Width: xEnd - xStart, Height: 1,
				Entry: [][2]int{{xStart, gy - 1}},
			})
		}
	}
	return features
}

// sampleSorted draws count distinct ints from [lo, hi] and returns them
// sorted ascending. Selection order consults the stream; the sort keeps
// the result canonical.
func sampleSorted(stream *rng.Stream, lo, hi, count int) []int {
	span := hi - lo + 1
	if count > span {
		count = span
	}
	picked := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		v := stream.Between(lo, hi)
		if !picked[v] {
			picked[v] = true
			out = append(out, v)
		}
	}
	// insertion sort; count is small
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// carveHouses places non-overlapping house footprints on the ground line
// and builds each one.
func (g *Generator) carveHouses(gr *grid.Grid, stream *rng.Stream) []Feature {
	gy := g.cfg.GroundY
	var placed []Feature

	attempts := g.cfg.NumHouses * 3
	for i := 0; i < attempts && len(placed) < g.cfg.NumHouses; i++ {
		hw := stream.Between(8, 15)
		hh := stream.Between(5, 8)
		if gr.Width < hw+4 {
			continue
		}
		hx := stream.Between(2, gr.Width-hw-2)
		hy := gy - hh // house sits on the ground line

		overlap := false
		for _, p := range placed {
			if hx < p.X+p.Width+3 && hx+hw+3 > p.X && hy < p.Y+p.Height+2 && hy+hh+2 > p.Y {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		entry := g.buildHouse(gr, stream, hx, hy, hw, hh)
		placed = append(placed, Feature{
			Kind: FeatureHouse, X: hx, Y: hy, Width: hw, Height: hh,
			Entry: entry,
		})
	}
	return placed
}

// buildHouse stamps one house: roof row, wall ring, floor row, exactly
// one doorway on a stream-chosen side, an interior ladder to the roof and
// a divider wall in wide houses. Ruined houses get collapsed roof
// sections and interior rubble, but the wall ring stays intact so the
// doorway remains the only ground-level opening. Returns the doorway's
// interior entry cells.
func (g *Generator) buildHouse(gr *grid.Grid, stream *rng.Stream, hx, hy, hw, hh int) [][2]int {
	ruined := stream.Chance(g.cfg.RuinChance)

	for y := hy; y < hy+hh; y++ {
		for x := hx; x < hx+hw; x++ {
			if !gr.InBounds(x, y) {
				continue
			}
			switch {
			case y == hy: // roof row
				if ruined && stream.Chance(0.3) {
					gr.Tiles[y][x] = tiles.Air // collapsed roof section
				} else {
					gr.Tiles[y][x] = tiles.Roof
				}
			case x == hx || x == hx+hw-1: // wall ring
				gr.Tiles[y][x] = tiles.Wall
			case y == hy+hh-1: // floor row
				gr.Tiles[y][x] = tiles.Floor
			default:
				gr.Tiles[y][x] = tiles.Air
			}
		}
	}

	// Exactly one doorway: two rows of clearance punched in one side wall.
	doorX := hx
	insideX := hx + 1
	if stream.Chance(0.5) {
		doorX = hx + hw - 1
		insideX = hx + hw - 2
	}
	var entry [][2]int
	for y := hy + hh - 3; y < hy+hh-1; y++ {
		if gr.InBounds(doorX, y) {
			gr.Tiles[y][doorX] = tiles.Air
			if gr.InBounds(insideX, y) {
				entry = append(entry, [2]int{insideX, y})
			}
		}
	}

	// Interior ladder near one side wall, floor to roof, with one ladder
	// tile in the roof row for roof access.
	ladderX := hx + 2
	if stream.Chance(0.5) {
		ladderX = hx + hw - 3
	}
	if gr.InBounds(ladderX, hy) {
		for y := hy + 1; y < hy+hh-1; y++ {
			if gr.Tiles[y][ladderX] == tiles.Air {
				gr.Tiles[y][ladderX] = tiles.Ladder
			}
		}
		gr.Tiles[hy][ladderX] = tiles.Ladder
	}

	// Divider wall for multi-room houses, with its own internal gap
	if hw >= 12 {
		divX := hx + hw/2
		for y := hy + 1; y < hy+hh-1; y++ {
			if !gr.InBounds(divX, y) {
				continue
			}
			if y >= hy+hh-3 {
				gr.Tiles[y][divX] = tiles.Air
			} else {
				gr.Tiles[y][divX] = tiles.Wall
			}
		}
	}

	// Ruined interiors get rubble on the cells just above the floor
	if ruined {
		for x := hx + 1; x < hx+hw-1; x++ {
			y := hy + hh - 2
			if gr.InBounds(x, y) && gr.Tiles[y][x] == tiles.Air && stream.Chance(0.2) {
				gr.Tiles[y][x] = tiles.Rubble
			}
		}
	}

	return entry
}

// placeExteriorLadders keeps the ground segments between houses mutually
// traversable. Houses have a single doorway, so crossing one means going
// over its roof; every gap between neighboring houses (and the map edges)
// gets one tall ladder that clears the tallest roof, plus shorter
// jittered ladders at a rough fixed spacing for general mobility.
func (g *Generator) placeExteriorLadders(gr *grid.Grid, stream *rng.Stream, houses []Feature) {
	gy := g.cfg.GroundY
	const tallLadder = 12 // above the highest roof-walk row

	stamp := func(lx, height int) {
		for dy := 0; dy < height; dy++ {
			ly := gy - 1 - dy
			if gr.InBounds(lx, ly) && gr.Tiles[ly][lx] == tiles.Air {
				gr.Tiles[ly][lx] = tiles.Ladder
			}
		}
	}

	// House footprints sorted by x partition the ground line into gaps.
	sorted := append([]Feature(nil), houses...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].X < sorted[j-1].X; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	prev := 1
	for _, h := range sorted {
		if h.X-prev >= 2 {
			stamp(prev+(h.X-prev)/2, tallLadder)
		}
		prev = maxInt(prev, h.X+h.Width)
	}
	if gr.Width-1-prev >= 2 {
		stamp(prev+(gr.Width-1-prev)/2, tallLadder)
	}

	spacing := maxInt(gr.Width/8, 1)
	for xBase := 10; xBase < gr.Width-10; xBase += spacing {
		stamp(clampInt(xBase+stream.Between(-3, 3), 1, gr.Width-2), 4)
	}
}

// scatterRubble drops rubble piles on open ground cells.
func (g *Generator) scatterRubble(gr *grid.Grid, stream *rng.Stream) {
	gy := g.cfg.GroundY
	for i := 0; i < g.cfg.NumRubblePiles; i++ {
		rx := stream.Between(2, gr.Width-3)
		ry := gy - 1
		if gr.InBounds(rx, ry) && gr.Tiles[ry][rx] == tiles.Air {
			gr.Tiles[ry][rx] = tiles.Rubble
		}
	}
}
