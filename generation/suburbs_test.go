package generation

import (
	"testing"

	"ash-diver/config"
	"ash-diver/grid"
	"ash-diver/rng"
	"ash-diver/tiles"
)

func newSuburbGenerator(t *testing.T) *Generator {
	t.Helper()
	gen, err := NewGenerator(config.Defaults(config.ZoneSuburbs))
	if err != nil {
		t.Fatal(err)
	}
	return gen
}

func TestBuildHouseSingleDoorway(t *testing.T) {
	gen := newSuburbGenerator(t)

	// The doorway invariant must hold whatever the stream decides about
	// ruin, door side, ladder side or divider gaps.
	for seed := int64(0); seed < 20; seed++ {
		gr := grid.New(40, 30)
		stream := rng.NewStream(seed)
		hx, hy, hw, hh := 10, 12, 13, 7
		entry := gen.buildHouse(gr, stream, hx, hy, hw, hh)

		if len(entry) != 2 {
			t.Fatalf("seed %d: %d entry cells, want 2", seed, len(entry))
		}

		// Count openings in the two side walls below the roof row.
		openings := map[int]int{}
		for _, wx := range []int{hx, hx + hw - 1} {
			for y := hy + 1; y < hy+hh; y++ {
				if !gen.tileset.IsSolid(gr.Tiles[y][wx]) {
					openings[wx]++
				}
			}
		}
		total := openings[hx] + openings[hx+hw-1]
		if total != 2 {
			t.Errorf("seed %d: %d wall openings, want exactly the one doorway", seed, total)
		}
		if openings[hx] != 0 && openings[hx+hw-1] != 0 {
			t.Errorf("seed %d: openings on both sides", seed)
		}

		// Entry cells sit just inside the doorway and are passable.
		for _, e := range entry {
			if !gen.tileset.IsPassable(gr.Tiles[e[1]][e[0]]) {
				t.Errorf("seed %d: entry cell (%d,%d) holds %d", seed, e[0], e[1], gr.Tiles[e[1]][e[0]])
			}
		}

		// The interior ladder reaches the roof row.
		ladders := 0
		for x := hx + 1; x < hx+hw-1; x++ {
			if gr.Tiles[hy][x] == tiles.Ladder {
				ladders++
			}
		}
		if ladders != 1 {
			t.Errorf("seed %d: %d roof ladder tiles, want 1", seed, ladders)
		}

		// Wide houses get a divider with its own internal gap.
		divX := hx + hw/2
		if gr.Tiles[hy+1][divX] != tiles.Wall {
			t.Errorf("seed %d: divider missing at x=%d", seed, divX)
		}
		if gr.Tiles[hy+hh-2][divX] != tiles.Air && gr.Tiles[hy+hh-2][divX] != tiles.Rubble {
			t.Errorf("seed %d: divider gap blocked by %d", seed, gr.Tiles[hy+hh-2][divX])
		}
	}
}

func TestHousesDoNotOverlap(t *testing.T) {
	gen := newSuburbGenerator(t)
	gr := grid.New(gen.cfg.Width, gen.cfg.Height)
	stream := rng.NewStream(7)
	gen.carveGround(gr, stream)

	houses := gen.carveHouses(gr, stream)
	if len(houses) == 0 {
		t.Fatal("no houses placed")
	}
	for i, a := range houses {
		for _, b := range houses[i+1:] {
			if a.X < b.X+b.Width && a.X+a.Width > b.X &&
				a.Y < b.Y+b.Height && a.Y+a.Height > b.Y {
				t.Errorf("houses at (%d,%d) and (%d,%d) overlap", a.X, a.Y, b.X, b.Y)
			}
		}
	}
	for _, h := range houses {
		if h.Kind != FeatureHouse {
			t.Errorf("house feature tagged %q", h.Kind)
		}
		if len(h.Entry) == 0 {
			t.Errorf("house at (%d,%d) has no entry cells", h.X, h.Y)
		}
	}
}

func TestRoadsClearedAbove(t *testing.T) {
	gen := newSuburbGenerator(t)
	gr := grid.New(gen.cfg.Width, gen.cfg.Height)
	stream := rng.NewStream(3)
	gen.carveGround(gr, stream)

	roads := gen.carveRoads(gr, stream)
	if len(roads) == 0 {
		t.Fatal("no roads placed")
	}
	for _, r := range roads {
		for x := r.X; x < r.X+r.Width; x++ {
			if gr.Tiles[r.Y][x] != tiles.Road {
				t.Fatalf("road cell (%d,%d) holds %d", x, r.Y, gr.Tiles[r.Y][x])
			}
			for dy := 1; dy <= 3; dy++ {
				if gr.Tiles[r.Y-dy][x] != tiles.Air {
					t.Fatalf("road at x=%d blocked %d above", x, dy)
				}
			}
		}
	}
}

func TestBalloonCrateNeedsClearSky(t *testing.T) {
	cfg := config.Defaults(config.ZoneSuburbs)
	cfg.Width, cfg.Height = 20, 10
	cfg.GroundY = 8
	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	gr := grid.New(20, 10)
	// Column 5: clear sky down to the ground. Column 9: one roof tile in
	// the way.
	for y := 0; y < 8; y++ {
		gr.Tiles[y][5] = tiles.Air
		gr.Tiles[y][9] = tiles.Air
	}
	gr.Tiles[0][9] = tiles.Roof

	if !gen.tryBalloonCrate(gr, 5, 7) {
		t.Error("clear-sky column rejected")
	}
	if gr.Tiles[7][5] != tiles.BalloonCrate {
		t.Error("crate tile not stamped")
	}
	if gen.tryBalloonCrate(gr, 9, 7) {
		t.Error("blocked-sky column accepted")
	}
}

func TestSampleSortedIsSortedAndDistinct(t *testing.T) {
	stream := rng.NewStream(5)
	out := sampleSorted(stream, 5, 50, 10)
	if len(out) != 10 {
		t.Fatalf("got %d samples, want 10", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i] <= out[i-1] {
			t.Fatalf("samples not strictly ascending: %v", out)
		}
	}
	for _, v := range out {
		if v < 5 || v > 50 {
			t.Fatalf("sample %d outside [5,50]", v)
		}
	}

	// Asking for more samples than the span holds caps at the span.
	if got := sampleSorted(rng.NewStream(5), 1, 3, 10); len(got) != 3 {
		t.Errorf("span-capped sample returned %d values, want 3", len(got))
	}
}
