package generation

import "fmt"

// Report is the outcome of re-checking an accepted grid.
type Report struct {
	OK    bool
	Lines []string
}

// Verify re-runs the playability checks against an accepted result and
// returns a line-per-check report. It works from the result alone, so a
// grid loaded from a snapshot can be audited the same way as a freshly
// generated one.
func (g *Generator) Verify(result *Result) Report {
	gr := result.Grid
	report := Report{OK: true}
	fail := func(format string, args ...any) {
		report.OK = false
		report.Lines = append(report.Lines, "FAIL: "+fmt.Sprintf(format, args...))
	}
	pass := func(format string, args ...any) {
		report.Lines = append(report.Lines, "ok:   "+fmt.Sprintf(format, args...))
	}

	sx, sy := result.Spawn[0], result.Spawn[1]
	if !gr.InBounds(sx, sy) || !g.tileset.IsPassable(gr.Tiles[sy][sx]) {
		fail("spawn (%d,%d) is not on a passable tile", sx, sy)
		return report
	}
	pass("spawn (%d,%d) passable", sx, sy)

	reach := g.Reachable(gr, result.Spawn)
	pass("reachability set has %d cells", reach.Size())

	if result.Goal[0] < 0 {
		fail("no extraction point recorded")
	} else if !reach.Has(result.Goal) {
		fail("extraction goal (%d,%d) not reachable", result.Goal[0], result.Goal[1])
	} else {
		pass("extraction goal (%d,%d) reachable", result.Goal[0], result.Goal[1])
	}

	badContainers := 0
	for _, m := range result.Containers {
		if !reach.Has([2]int{m.X, m.Y}) {
			badContainers++
			fail("container %s at (%d,%d) not reachable", m.Kind, m.X, m.Y)
		}
	}
	if badContainers == 0 {
		pass("all %d containers reachable", len(result.Containers))
	}

	badCrates := 0
	for _, c := range result.Crates {
		if !reach.Has(c) {
			badCrates++
			fail("extraction crate at (%d,%d) not reachable", c[0], c[1])
		}
	}
	if badCrates == 0 && len(result.Crates) > 0 {
		pass("all %d extraction crates reachable", len(result.Crates))
	}

	if size := g.largestOpenRegion(gr); size < g.cfg.MinRegionSize {
		fail("largest open region has %d cells, minimum is %d", size, g.cfg.MinRegionSize)
	} else {
		pass("largest open region has %d cells", size)
	}

	return report
}
