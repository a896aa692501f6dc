package tiles

import (
	"image/color"
)

// ID is a tile-type code. Codes 0-9 are reserved for the base terrain
// set, codes 10 and above for zone-specific features. The numbering is
// part of the export format and must never be reordered.
type ID int

// Base terrain tiles
const (
	Air   ID = 0 // open space
	Top   ID = 1 // solid fill with air directly above (walkable surface)
	Fill  ID = 2 // solid underground fill
	Goal  ID = 8 // extraction goal marker
	Spawn ID = 9 // player spawn marker
)

// Zone-specific feature tiles
const (
	Road         ID = 10
	Wall         ID = 11
	Floor        ID = 12
	Roof         ID = 13
	Rubble       ID = 14
	Container    ID = 15
	BalloonCrate ID = 16
	Ladder       ID = 17
)

// Version identifies the tile code table. Exports embed it so consumers
// can detect a mismatched enumeration.
const Version = 1

// Set is the versioned tile-type table shared between the generator and
// its consumers. Components take a *Set rather than consulting globals so
// two generation runs can never disagree about tile semantics.
type Set struct {
	Version int
	defs    map[ID]Definition
}

// Definition describes one tile type: its name for diagnostics, how the
// traversal model treats it, and the color used for raster export.
type Definition struct {
	Name      string
	Solid     bool // blocks movement and supports standing
	Climbable bool // ladder-like: permits vertical movement of any length
	Walkable  bool // a marker or decoration the player can occupy
	Color     color.RGBA
}

// Default returns the version-1 tile table.
func Default() *Set {
	return &Set{
		Version: Version,
		defs: map[ID]Definition{
			Air:          {Name: "air", Walkable: true, Color: color.RGBA{135, 206, 235, 255}},
			Top:          {Name: "top", Solid: true, Color: color.RGBA{34, 139, 34, 255}},
			Fill:         {Name: "fill", Solid: true, Color: color.RGBA{139, 90, 43, 255}},
			Goal:         {Name: "goal", Walkable: true, Color: color.RGBA{255, 0, 0, 255}},
			Spawn:        {Name: "spawn", Walkable: true, Color: color.RGBA{255, 255, 0, 255}},
			Road:         {Name: "road", Solid: true, Color: color.RGBA{60, 60, 60, 255}},
			Wall:         {Name: "wall", Solid: true, Color: color.RGBA{180, 170, 150, 255}},
			Floor:        {Name: "floor", Solid: true, Color: color.RGBA{160, 140, 110, 255}},
			Roof:         {Name: "roof", Solid: true, Color: color.RGBA{140, 60, 60, 255}},
			Rubble:       {Name: "rubble", Walkable: true, Color: color.RGBA{150, 140, 120, 255}},
			Container:    {Name: "container", Walkable: true, Color: color.RGBA{200, 160, 40, 255}},
			BalloonCrate: {Name: "balloon_crate", Walkable: true, Color: color.RGBA{220, 100, 180, 255}},
			Ladder:       {Name: "ladder", Climbable: true, Walkable: true, Color: color.RGBA{180, 140, 60, 255}},
		},
	}
}

// Definition returns the definition for a tile code. Unknown codes come
// back as an impassable placeholder so consumers degrade safely when fed
// a grid from a newer table version.
func (s *Set) Definition(id ID) Definition {
	if def, ok := s.defs[id]; ok {
		return def
	}
	return Definition{Name: "unknown", Color: color.RGBA{255, 0, 255, 255}}
}

// IsSolid reports whether a tile blocks movement and can be stood on.
func (s *Set) IsSolid(id ID) bool {
	return s.Definition(id).Solid
}

// IsClimbable reports whether a tile permits ladder-style climbing.
func (s *Set) IsClimbable(id ID) bool {
	return s.Definition(id).Climbable
}

// IsPassable reports whether the traversal model may occupy a tile.
// Unknown codes are impassable by default.
func (s *Set) IsPassable(id ID) bool {
	def, ok := s.defs[id]
	if !ok {
		return false
	}
	return def.Walkable || def.Climbable
}

// Color returns the raster-export color for a tile code.
func (s *Set) Color(id ID) color.RGBA {
	return s.Definition(id).Color
}

// Name returns the diagnostic name for a tile code.
func (s *Set) Name(id ID) string {
	return s.Definition(id).Name
}
