package generation

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"ash-diver/grid"
	"ash-diver/tiles"
)

// defectKind classifies a validation failure by how it can be repaired.
type defectKind int

const (
	defectNone        defectKind = iota
	defectGap                    // open path exists but exceeds jump height: bridge with a ladder
	defectUnreachable            // no open path at all: carve a connecting tunnel
	defectRegion                 // largest open region below minimum size: re-carve
	defectNoGoal                 // no extraction point was placed: re-carve
)

// verdict is the outcome of one validation pass: accepted, or the first
// defect found in fixed scan order.
type verdict struct {
	kind      defectKind
	criterion string
	cell      [2]int
}

func (v verdict) ok() bool {
	return v.kind == defectNone
}

// validate checks every acceptance criterion against the grid. Criteria
// run in a fixed order and the first failure wins, so the patch/retry
// path is a pure function of the layout.
func (g *Generator) validate(result *Result, features []Feature) verdict {
	gr := result.Grid

	if result.Goal[0] < 0 {
		return verdict{kind: defectNoGoal, criterion: "no extraction point placed"}
	}

	reach := g.Reachable(gr, result.Spawn)
	open := g.openReachable(gr, result.Spawn)

	// Required cells, in fixed order: the goal, then every feature entry,
	// then containers, then extraction crates.
	check := func(cell [2]int, what string) (verdict, bool) {
		if reach.Has(cell) {
			return verdict{}, false
		}
		if open.Has(cell) {
			return verdict{
				kind:      defectGap,
				criterion: fmt.Sprintf("%s at (%d,%d) behind an unbridged vertical gap", what, cell[0], cell[1]),
				cell:      cell,
			}, true
		}
		return verdict{
			kind:      defectUnreachable,
			criterion: fmt.Sprintf("%s at (%d,%d) unreachable from spawn", what, cell[0], cell[1]),
			cell:      cell,
		}, true
	}

	if v, bad := check(result.Goal, "extraction goal"); bad {
		return v
	}
	for _, f := range features {
		for _, entry := range f.Entry {
			if v, bad := check(entry, string(f.Kind)+" entry"); bad {
				return v
			}
		}
	}
	for _, m := range result.Containers {
		if v, bad := check([2]int{m.X, m.Y}, "container"); bad {
			return v
		}
	}
	for _, c := range result.Crates {
		if v, bad := check(c, "extraction crate"); bad {
			return v
		}
	}

	if size := g.largestOpenRegion(gr); size < g.cfg.MinRegionSize {
		return verdict{
			kind:      defectRegion,
			criterion: fmt.Sprintf("largest open region has %d cells, minimum is %d", size, g.cfg.MinRegionSize),
		}
	}

	return verdict{}
}

// Reachable computes the Reachability Set: every cell reachable from
// start under the traversal model. Moves between passable cells are
// legal sideways and downward (falls of any height); upward only within
// the configured jump height of the column's support, or along climbable
// tiles. Exported so consumers can audit accepted grids.
func (g *Generator) Reachable(gr *grid.Grid, start [2]int) mapset.Set[[2]int] {
	reach := mapset.New[[2]int]()
	if !gr.InBounds(start[0], start[1]) || !g.tileset.IsPassable(gr.Tiles[start[1]][start[0]]) {
		return reach
	}

	support := g.supportDistances(gr)
	queue := [][2]int{start}
	reach.Put(start)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		x, y := c[0], c[1]
		climbingFrom := g.tileset.IsClimbable(gr.Tiles[y][x])

		for _, n := range [][2]int{{x - 1, y}, {x + 1, y}, {x, y + 1}, {x, y - 1}} {
			if !gr.InBounds(n[0], n[1]) || reach.Has(n) {
				continue
			}
			id := gr.Tiles[n[1]][n[0]]
			if !g.tileset.IsPassable(id) {
				continue
			}
			if n[1] < y { // upward step
				withinJump := support[n[1]][n[0]] <= g.cfg.MaxJumpHeight
				if !withinJump && !climbingFrom && !g.tileset.IsClimbable(id) {
					continue
				}
			}
			reach.Put(n)
			queue = append(queue, n)
		}
	}
	return reach
}

// supportDistances returns, per cell, how many cells separate it from the
// nearest solid tile below in its column (1 = standing directly on
// support). The grid bottom counts as solid.
func (g *Generator) supportDistances(gr *grid.Grid) [][]int {
	support := make([][]int, gr.Height)
	for y := range support {
		support[y] = make([]int, gr.Width)
	}
	for x := 0; x < gr.Width; x++ {
		dist := 1
		for y := gr.Height - 1; y >= 0; y-- {
			if g.tileset.IsSolid(gr.Tiles[y][x]) {
				dist = 1
				support[y][x] = 0
				continue
			}
			support[y][x] = dist
			dist++
		}
	}
	return support
}

// openReachable computes plain 4-connected reachability over passable
// tiles, ignoring gravity. The difference between this set and the
// traversal-model set distinguishes an unbridged vertical gap from a true
// disconnection.
func (g *Generator) openReachable(gr *grid.Grid, start [2]int) mapset.Set[[2]int] {
	reach := mapset.New[[2]int]()
	if !gr.InBounds(start[0], start[1]) || !g.tileset.IsPassable(gr.Tiles[start[1]][start[0]]) {
		return reach
	}
	queue := [][2]int{start}
	reach.Put(start)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range gr.Neighbors4(c[0], c[1]) {
			if !reach.Has(n) && g.tileset.IsPassable(gr.Tiles[n[1]][n[0]]) {
				reach.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return reach
}

// largestOpenRegion returns the cell count of the largest 4-connected
// passable region.
func (g *Generator) largestOpenRegion(gr *grid.Grid) int {
	visited := newVisited(gr.Width, gr.Height)
	largest := 0
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if visited[y][x] || !g.tileset.IsPassable(gr.Tiles[y][x]) {
				continue
			}
			size := 0
			queue := [][2]int{{x, y}}
			visited[y][x] = true
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				size++
				for _, n := range gr.Neighbors4(c[0], c[1]) {
					if !visited[n[1]][n[0]] && g.tileset.IsPassable(gr.Tiles[n[1]][n[0]]) {
						visited[n[1]][n[0]] = true
						queue = append(queue, n)
					}
				}
			}
			if size > largest {
				largest = size
			}
		}
	}
	return largest
}

// patch applies the deterministic local fix for a defect, if one exists.
// Gap defects get a ladder run inserted down the defect cell's column;
// unreachable defects get a connecting tunnel carved from the nearest
// reachable cell. Region and goal defects have no local fix and force a
// re-carve with the next sub-seed.
func (g *Generator) patch(result *Result, v verdict) bool {
	gr := result.Grid
	switch v.kind {
	case defectGap:
		return g.patchLadder(gr, v.cell)
	case defectUnreachable:
		return g.patchTunnel(result, v.cell)
	default:
		return false
	}
}

// patchLadder converts the run of air cells below (and including) the
// defect cell into a ladder, bridging the vertical gap. The lowest cell
// of the run sits within jump height of its support, so the run becomes
// climbable end to end.
func (g *Generator) patchLadder(gr *grid.Grid, cell [2]int) bool {
	x := cell[0]
	converted := false
	for y := cell[1]; y < gr.Height; y++ {
		id := gr.Tiles[y][x]
		if id == tiles.Air {
			gr.Tiles[y][x] = tiles.Ladder
			converted = true
			continue
		}
		if g.tileset.IsSolid(id) {
			break
		}
		// marker or existing ladder: leave it, keep descending
	}
	return converted
}

// patchTunnel carves an L-shaped opening from the nearest reachable cell
// to the defect cell. Only plain solid tiles are opened; markers and
// ladders are never overwritten. The nearest cell is chosen by Manhattan
// distance with ties resolved by the reach set's fixed scan order.
func (g *Generator) patchTunnel(result *Result, cell [2]int) bool {
	gr := result.Grid
	reach := g.Reachable(gr, result.Spawn)
	if reach.Size() == 0 {
		return false
	}

	best := [2]int{-1, -1}
	bestDist := int(^uint(0) >> 1)
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if !reach.Has([2]int{x, y}) {
				continue
			}
			d := absInt(x-cell[0]) + absInt(y-cell[1])
			if d < bestDist {
				bestDist = d
				best = [2]int{x, y}
			}
		}
	}
	if best[0] < 0 {
		return false
	}

	opened := false
	openCell := func(x, y int) {
		if !gr.InBounds(x, y) {
			return
		}
		switch gr.Tiles[y][x] {
		case tiles.Fill, tiles.Top, tiles.Wall, tiles.Roof:
			gr.Tiles[y][x] = tiles.Air
			opened = true
		}
	}
	for x := minInt(best[0], cell[0]); x <= maxInt(best[0], cell[0]); x++ {
		openCell(x, best[1])
		openCell(x, best[1]-1)
	}
	for y := minInt(best[1], cell[1]); y <= maxInt(best[1], cell[1]); y++ {
		openCell(cell[0], y)
		openCell(cell[0]-1, y)
	}
	return opened
}
