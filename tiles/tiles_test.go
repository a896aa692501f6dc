package tiles

import "testing"

func TestDefaultTraversalClasses(t *testing.T) {
	set := Default()

	solids := []ID{Top, Fill, Road, Wall, Floor, Roof}
	for _, id := range solids {
		if !set.IsSolid(id) {
			t.Errorf("%s should be solid", set.Name(id))
		}
		if set.IsPassable(id) {
			t.Errorf("%s should not be passable", set.Name(id))
		}
	}

	passables := []ID{Air, Goal, Spawn, Rubble, Container, BalloonCrate, Ladder}
	for _, id := range passables {
		if !set.IsPassable(id) {
			t.Errorf("%s should be passable", set.Name(id))
		}
		if set.IsSolid(id) {
			t.Errorf("%s should not be solid", set.Name(id))
		}
	}

	if !set.IsClimbable(Ladder) {
		t.Error("ladder should be climbable")
	}
	if set.IsClimbable(Air) {
		t.Error("air should not be climbable")
	}
}

func TestUnknownCodeIsImpassable(t *testing.T) {
	set := Default()
	unknown := ID(99)

	if set.IsPassable(unknown) {
		t.Error("unknown tile code should be impassable")
	}
	if set.IsSolid(unknown) {
		t.Error("unknown tile code should not count as solid support")
	}
	if set.IsClimbable(unknown) {
		t.Error("unknown tile code should not be climbable")
	}
	if got := set.Name(unknown); got != "unknown" {
		t.Errorf("unknown tile name = %q, want %q", got, "unknown")
	}
}

func TestCodesAreStable(t *testing.T) {
	// The numeric codes are part of the export format.
	want := map[ID]int{
		Air: 0, Top: 1, Fill: 2, Goal: 8, Spawn: 9,
		Road: 10, Wall: 11, Floor: 12, Roof: 13,
		Rubble: 14, Container: 15, BalloonCrate: 16, Ladder: 17,
	}
	for id, code := range want {
		if int(id) != code {
			t.Errorf("tile code %d, want %d", int(id), code)
		}
	}
}
