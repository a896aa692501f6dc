package export

import (
	"image"
	"image/png"
	"os"

	"ash-diver/grid"
	"ash-diver/tiles"
)

// RenderImage rasterizes the grid with one fixed color per tile code,
// upscaled by the given integer factor with hard pixel edges.
func RenderImage(gr *grid.Grid, set *tiles.Set, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, gr.Width*scale, gr.Height*scale))
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			c := set.Color(gr.Tiles[y][x])
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// WritePNG renders the grid and writes it as a PNG file for visual
// inspection.
func WritePNG(gr *grid.Grid, set *tiles.Set, path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, RenderImage(gr, set, scale))
}
