// Package export turns an accepted tile grid into the formats the
// runtime and authoring tools consume: a delimited text grid, a Tiled
// map, a color-coded raster and a compressed blueprint snapshot. Export
// happens only after a grid is accepted, outside the generation hot path.
package export

import (
	"bufio"
	"fmt"
	"os"

	"ash-diver/grid"
)

// WriteCSV writes the grid as row-major comma-delimited text, one
// integer tile code per cell, one row per line.
func WriteCSV(gr *grid.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if x > 0 {
				if err := w.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%d", int(gr.Tiles[y][x])); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
