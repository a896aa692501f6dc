package generation

import (
	"math"

	"ash-diver/grid"
	"ash-diver/rng"
	"ash-diver/tiles"
)

// carveUnderground lays down the underground zone: a rolling surface
// line, biased-random-walk tunnels with branches, organically shaped cave
// chambers, small-region refill and a guaranteed surface entry shaft.
// Returns the surface line per column and the surviving cave features.
func (g *Generator) carveUnderground(gr *grid.Grid, stream *rng.Stream) ([]int, []Feature) {
	surface := g.carveSurface(gr, stream)
	g.carveTunnels(gr, stream, surface)
	caves := g.carveCaves(gr, stream, surface)
	g.refillSmallRegions(gr)
	g.connectRegions(gr, stream)
	g.ensureSurfaceEntry(gr, surface)

	// Small-region refill may have erased a cave entirely; drop those
	// features, and settle each survivor's entry cell onto the chamber
	// floor (the lowest open cell in the center column) so it is a
	// standing position rather than a point in mid-air.
	features := make([]Feature, 0, len(caves))
	for _, f := range caves {
		cx, cy := f.Entry[0][0], f.Entry[0][1]
		if gr.Tiles[cy][cx] != tiles.Air {
			continue
		}
		for cy+1 < gr.Height && gr.Tiles[cy+1][cx] == tiles.Air {
			cy++
		}
		f.Entry = [][2]int{{cx, cy}}
		features = append(features, f)
	}
	return surface, features
}

// carveSurface generates the surface line as a bounded random walk and
// opens everything above it to air.
func (g *Generator) carveSurface(gr *grid.Grid, stream *rng.Stream) []int {
	surface := make([]int, gr.Width)
	y := stream.Between(g.cfg.SurfaceYMin, g.cfg.SurfaceYMax)
	for x := 0; x < gr.Width; x++ {
		y += stream.Between(-g.cfg.SurfaceStepMax, g.cfg.SurfaceStepMax)
		if y < g.cfg.SurfaceYMin {
			y = g.cfg.SurfaceYMin
		}
		if y > g.cfg.SurfaceYMax {
			y = g.cfg.SurfaceYMax
		}
		surface[x] = y
		for sy := 0; sy < y; sy++ {
			gr.Tiles[sy][x] = tiles.Air
		}
	}
	return surface
}

// carveTunnels digs the configured number of tunnels downward from evenly
// spaced surface points.
func (g *Generator) carveTunnels(gr *grid.Grid, stream *rng.Stream, surface []int) {
	n := g.cfg.NumTunnels
	if n < 1 {
		return
	}
	// Start points evenly spaced across the middle 80% of the map
	lo := float64(gr.Width) * 0.1
	hi := float64(gr.Width) * 0.9
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		startX := int(lo + (hi-lo)*frac)
		g.carveTunnel(gr, stream, startX, surface[startX])
	}
}

// carveTunnel digs one tunnel: a biased random walk that mostly descends,
// carving a cross-section wide and tall enough for the traversal model,
// with occasional sideways branches.
func (g *Generator) carveTunnel(gr *grid.Grid, stream *rng.Stream, startX, startY int) {
	half := g.cfg.TunnelMinWidth / 2
	clearance := g.cfg.TunnelClearance
	x, y := startX, startY
	maxDepth := gr.Height - 5

	for y < maxDepth {
		g.carveSection(gr, x, y, half, clearance)

		// Mostly down, sometimes sideways
		switch dir := stream.Float64(); {
		case dir < 0.6:
			y++
		case dir < 0.8:
			x = clampInt(x-1, half, gr.Width-1-half)
		default:
			x = clampInt(x+1, half, gr.Width-1-half)
		}
		if stream.Chance(0.3) {
			y++
		}

		if stream.Chance(g.cfg.TunnelBranchChance) && y < gr.Height-20 {
			g.carveBranch(gr, stream, x, y, half, clearance)
		}
	}
}

// carveBranch digs a short sideways offshoot from a tunnel.
func (g *Generator) carveBranch(gr *grid.Grid, stream *rng.Stream, x, y, half, clearance int) {
	length := stream.Between(10, 29)
	dir := 1
	if stream.Chance(0.5) {
		dir = -1
	}
	bx, by := x, y
	for i := 0; i < length; i++ {
		g.carveSection(gr, bx, by, half, clearance)
		bx = clampInt(bx+dir, half, gr.Width-1-half)
		if stream.Chance(0.4) {
			by++
		}
		if by >= gr.Height-2 {
			break
		}
	}
}

// carveSection opens one tunnel cross-section: min-width across, the
// configured vertical clearance down.
func (g *Generator) carveSection(gr *grid.Grid, x, y, half, clearance int) {
	for dx := -half; dx <= half; dx++ {
		for dy := 0; dy < clearance; dy++ {
			if gr.InBounds(x+dx, y+dy) {
				gr.Tiles[y+dy][x+dx] = tiles.Air
			}
		}
	}
}

// carveCaves opens the configured number of cave chambers below the
// surface. Deeper chambers tend larger; per-angle radius noise keeps the
// outlines organic. Each chamber is recorded as a feature whose entry is
// its center cell.
func (g *Generator) carveCaves(gr *grid.Grid, stream *rng.Stream, surface []int) []Feature {
	rMin, rMax := g.cfg.CaveRadiusMin, g.cfg.CaveRadiusMax
	surfaceMax := maxIntSlice(surface) + 10

	var features []Feature
	for i := 0; i < g.cfg.NumCaves; i++ {
		if rMax+2 >= gr.Width-rMax-2 || surfaceMax >= gr.Height-rMax-2 {
			break // grid too small for a chamber of this radius
		}
		cx := stream.Between(rMax+2, gr.Width-rMax-3)
		cy := stream.Between(surfaceMax, gr.Height-rMax-3)

		depthRatio := float64(cy-surfaceMax) / math.Max(1, float64(gr.Height-surfaceMax-rMax))
		baseR := float64(rMin) + float64(rMax-rMin)*depthRatio
		baseR = math.Max(float64(rMin), math.Min(baseR, float64(rMax)))

		// Sampled per-angle radii, interpolated when carving
		const numAngles = 36
		radii := make([]float64, numAngles)
		for a := 0; a < numAngles; a++ {
			radii[a] = baseR * (1.0 + g.cfg.CaveNoiseStrength*(stream.Float64()*2-1))
		}

		for y := cy - rMax - 2; y <= cy+rMax+2; y++ {
			for x := cx - rMax - 2; x <= cx+rMax+2; x++ {
				if !gr.InBounds(x, y) {
					continue
				}
				dx, dy := float64(x-cx), float64(y-cy)
				angle := math.Mod(math.Atan2(dy, dx)+2*math.Pi, 2*math.Pi)
				idx := angle / (2 * math.Pi) * numAngles
				i0 := int(idx) % numAngles
				i1 := (i0 + 1) % numAngles
				frac := idx - math.Floor(idx)
				r := radii[i0]*(1-frac) + radii[i1]*frac
				if dx*dx+dy*dy < r*r {
					gr.Tiles[y][x] = tiles.Air
				}
			}
		}

		features = append(features, Feature{
			Kind:   FeatureCave,
			X:      cx - rMax,
			Y:      cy - rMax,
			Width:  2 * rMax,
			Height: 2 * rMax,
			Entry:  [][2]int{{cx, cy}},
		})
	}
	return features
}

// refillSmallRegions flood-fills every open region and fills back the
// ones below the configured minimum cell count, removing degenerate
// single-cell chambers before validation ever sees them.
func (g *Generator) refillSmallRegions(gr *grid.Grid) {
	visited := newVisited(gr.Width, gr.Height)
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if gr.Tiles[y][x] == tiles.Air && !visited[y][x] {
				region := floodAir(gr, x, y, visited)
				if len(region) < g.cfg.MinRegionSize {
					for _, c := range region {
						gr.Tiles[c[1]][c[0]] = tiles.Fill
					}
				}
			}
		}
	}
}

// connectRegions joins every isolated open region to the surface region
// with an L-shaped tunnel between the closest pair of cells, iterating
// regions in discovery order so the stream stays deterministic.
func (g *Generator) connectRegions(gr *grid.Grid, stream *rng.Stream) {
	regions := airRegions(gr)
	if len(regions) <= 1 {
		return
	}

	// The surface region contains the topmost open cell.
	surfaceIdx, minY := 0, gr.Height
	for i, region := range regions {
		for _, c := range region {
			if c[1] < minY {
				minY = c[1]
				surfaceIdx = i
			}
		}
	}

	surfaceCells := regions[surfaceIdx]
	for i, region := range regions {
		if i == surfaceIdx {
			continue
		}
		a, b := closestPair(region, surfaceCells)
		g.carveLTunnel(gr, a, b)
		surfaceCells = append(surfaceCells, region...)
	}
}

// closestPair returns the Manhattan-closest pair of cells between two
// regions. Large regions are strided down to a bounded sample; the stride
// is a pure function of the region size, so ties resolve the same way
// every run.
func closestPair(region, target [][2]int) ([2]int, [2]int) {
	region = strideSample(region, 200)
	target = strideSample(target, 200)
	bestDist := int(^uint(0) >> 1)
	var bestA, bestB [2]int
	for _, a := range region {
		for _, b := range target {
			d := absInt(a[0]-b[0]) + absInt(a[1]-b[1])
			if d < bestDist {
				bestDist = d
				bestA, bestB = a, b
			}
		}
	}
	return bestA, bestB
}

// strideSample returns at most limit cells taken at a fixed stride.
func strideSample(cells [][2]int, limit int) [][2]int {
	if len(cells) <= limit {
		return cells
	}
	stride := (len(cells) + limit - 1) / limit
	out := make([][2]int, 0, limit)
	for i := 0; i < len(cells); i += stride {
		out = append(out, cells[i])
	}
	return out
}

// carveLTunnel opens an L-shaped tunnel from a to b: horizontal leg
// first, then vertical.
func (g *Generator) carveLTunnel(gr *grid.Grid, a, b [2]int) {
	half := g.cfg.TunnelMinWidth / 2
	for x := minInt(a[0], b[0]); x <= maxInt(a[0], b[0]); x++ {
		for dy := -half; dy <= half; dy++ {
			if gr.InBounds(x, a[1]+dy) {
				gr.Tiles[a[1]+dy][x] = tiles.Air
			}
		}
	}
	for y := minInt(a[1], b[1]); y <= maxInt(a[1], b[1]); y++ {
		for dx := -half; dx <= half; dx++ {
			if gr.InBounds(b[0]+dx, y) {
				gr.Tiles[y][b[0]+dx] = tiles.Air
			}
		}
	}
}

// ensureSurfaceEntry guarantees at least one continuous air column from
// the sky into the underground. If none survived carving, a shaft is
// opened at the horizontal center.
func (g *Generator) ensureSurfaceEntry(gr *grid.Grid, surface []int) {
	undergroundStart := maxIntSlice(surface) + 2
	for x := 0; x < gr.Width; x++ {
		connected := true
		for y := surface[x]; y < minInt(undergroundStart+5, gr.Height); y++ {
			if gr.Tiles[y][x] != tiles.Air {
				connected = false
				break
			}
		}
		if connected {
			return
		}
	}

	cx := gr.Width / 2
	half := g.cfg.TunnelMinWidth / 2
	for y := surface[cx]; y < minInt(undergroundStart+10, gr.Height); y++ {
		for dx := -half; dx <= half; dx++ {
			if gr.InBounds(cx+dx, y) {
				gr.Tiles[y][cx+dx] = tiles.Air
			}
		}
	}
}

// ── flood fill helpers ──

func newVisited(w, h int) [][]bool {
	v := make([][]bool, h)
	for i := range v {
		v[i] = make([]bool, w)
	}
	return v
}

// floodAir collects the 4-connected air region containing (x, y).
func floodAir(gr *grid.Grid, x, y int, visited [][]bool) [][2]int {
	queue := [][2]int{{x, y}}
	visited[y][x] = true
	var region [][2]int
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		region = append(region, c)
		for _, n := range gr.Neighbors4(c[0], c[1]) {
			if !visited[n[1]][n[0]] && gr.Tiles[n[1]][n[0]] == tiles.Air {
				visited[n[1]][n[0]] = true
				queue = append(queue, n)
			}
		}
	}
	return region
}

// airRegions returns every 4-connected air region in row-major discovery
// order.
func airRegions(gr *grid.Grid) [][][2]int {
	visited := newVisited(gr.Width, gr.Height)
	var regions [][][2]int
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if gr.Tiles[y][x] == tiles.Air && !visited[y][x] {
				regions = append(regions, floodAir(gr, x, y, visited))
			}
		}
	}
	return regions
}

// ── small int helpers ──

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func maxIntSlice(xs []int) int {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
