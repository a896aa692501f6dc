package catalog

import (
	"path/filepath"
	"testing"

	"ash-diver/config"
	"ash-diver/generation"
	"ash-diver/grid"
	"ash-diver/tiles"
)

func testResult(seed int64) *generation.Result {
	gr := grid.New(8, 5)
	gr.Tiles[1][1] = tiles.Air
	return &generation.Result{
		Grid:    gr,
		Zone:    config.ZoneUnderground,
		Seed:    seed,
		Attempt: 0,
		Spawn:   [2]int{1, 1},
		Goal:    [2]int{1, 1},
	}
}

func TestRecordAndRecent(t *testing.T) {
	cat, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	if _, err := cat.Record(testResult(1), "a.csv"); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Record(testResult(2), "b.csv"); err != nil {
		t.Fatal(err)
	}

	runs, err := cat.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("%d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].Seed != 2 || runs[1].Seed != 1 {
		t.Errorf("order = %d,%d, want 2,1", runs[0].Seed, runs[1].Seed)
	}
	r := runs[0]
	if r.Zone != "underground" || r.Width != 8 || r.Height != 5 || r.ExportPath != "b.csv" {
		t.Errorf("run = %+v", r)
	}
	if r.Digest == "" || r.RecordedAt == "" {
		t.Error("digest or timestamp missing")
	}

	if short, err := cat.Recent(1); err != nil || len(short) != 1 {
		t.Errorf("Recent(1) = %v, %v", short, err)
	}
}

func TestDigestTracksLayout(t *testing.T) {
	a := testResult(1)
	b := testResult(99) // different seed, same layout
	if Digest(a) != Digest(b) {
		t.Error("identical layouts should share a digest")
	}

	b.Grid.Tiles[2][2] = tiles.Air
	if Digest(a) == Digest(b) {
		t.Error("different layouts should not share a digest")
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("empty path should fail")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	cat, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Record(testResult(7), "c.csv"); err != nil {
		t.Fatal(err)
	}
	if err := cat.Close(); err != nil {
		t.Fatal(err)
	}

	cat, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()
	runs, err := cat.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Seed != 7 {
		t.Errorf("reopened catalog = %v", runs)
	}
}
