// Package grid holds the fixed-size 2D tile array produced by one
// generation run and its bounds-checked accessors.
package grid

import (
	"fmt"

	"ash-diver/tiles"
)

// OutOfBoundsError reports a grid access outside [0,W)x[0,H). It is a
// programmer error and is always surfaced, never clamped.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("grid access (%d,%d) out of bounds %dx%d", e.X, e.Y, e.Width, e.Height)
}

// Grid is a W x H array of tile-type codes. Dimensions are fixed for the
// lifetime of one generation run; there is no implicit growth.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]tiles.ID
}

// New creates a grid of the given dimensions with every cell set to fill.
func New(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([][]tiles.ID, height),
	}
	for y := 0; y < height; y++ {
		g.Tiles[y] = make([]tiles.ID, width)
		for x := 0; x < width; x++ {
			g.Tiles[y][x] = tiles.Fill
		}
	}
	return g
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y), or an OutOfBoundsError.
func (g *Grid) At(x, y int) (tiles.ID, error) {
	if !g.InBounds(x, y) {
		return 0, &OutOfBoundsError{X: x, Y: y, Width: g.Width, Height: g.Height}
	}
	return g.Tiles[y][x], nil
}

// Set writes the tile at (x, y), or returns an OutOfBoundsError.
func (g *Grid) Set(x, y int, id tiles.ID) error {
	if !g.InBounds(x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: g.Width, Height: g.Height}
	}
	g.Tiles[y][x] = id
	return nil
}

// Neighbors4 returns the in-bounds cardinal neighbors of (x, y) in fixed
// left, right, up, down order.
func (g *Grid) Neighbors4(x, y int) [][2]int {
	candidates := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
	out := make([][2]int, 0, 4)
	for _, c := range candidates {
		if g.InBounds(c[0], c[1]) {
			out = append(out, c)
		}
	}
	return out
}

// Neighbors8 returns the in-bounds neighbors of (x, y) including
// diagonals, in row-major order.
func (g *Grid) Neighbors8(x, y int) [][2]int {
	out := make([][2]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.InBounds(x+dx, y+dy) {
				out = append(out, [2]int{x + dx, y + dy})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Width:  g.Width,
		Height: g.Height,
		Tiles:  make([][]tiles.ID, g.Height),
	}
	for y := 0; y < g.Height; y++ {
		c.Tiles[y] = make([]tiles.ID, g.Width)
		copy(c.Tiles[y], g.Tiles[y])
	}
	return c
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] != other.Tiles[y][x] {
				return false
			}
		}
	}
	return true
}

// CountTile returns how many cells hold the given tile code.
func (g *Grid) CountTile(id tiles.ID) int {
	count := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == id {
				count++
			}
		}
	}
	return count
}

// Find returns the coordinates of every cell holding the given tile code,
// in row-major scan order.
func (g *Grid) Find(id tiles.ID) [][2]int {
	var out [][2]int
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == id {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}
