package export

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"ash-diver/generation"
	"ash-diver/grid"
	"ash-diver/tiles"
)

// TMX document structure for the Tiled map editor. Tile layer data is
// CSV-encoded with 1-based gids (Tiled reserves 0 for "empty"), so every
// cell is written as its tile code plus one.

type tmxMap struct {
	XMLName     xml.Name `xml:"map"`
	Version     string   `xml:"version,attr"`
	Orientation string   `xml:"orientation,attr"`
	RenderOrder string   `xml:"renderorder,attr"`
	Width       int      `xml:"width,attr"`
	Height      int      `xml:"height,attr"`
	TileWidth   int      `xml:"tilewidth,attr"`
	TileHeight  int      `xml:"tileheight,attr"`
	Infinite    int      `xml:"infinite,attr"`

	Tileset     tmxTileset      `xml:"tileset"`
	Layer       tmxLayer        `xml:"layer"`
	ObjectGroup tmxObjectGroup  `xml:"objectgroup"`
}

type tmxTileset struct {
	FirstGID   int    `xml:"firstgid,attr"`
	Name       string `xml:"name,attr"`
	TileWidth  int    `xml:"tilewidth,attr"`
	TileHeight int    `xml:"tileheight,attr"`
	TileCount  int    `xml:"tilecount,attr"`
}

type tmxLayer struct {
	ID     int     `xml:"id,attr"`
	Name   string  `xml:"name,attr"`
	Width  int     `xml:"width,attr"`
	Height int     `xml:"height,attr"`
	Data   tmxData `xml:"data"`
}

type tmxData struct {
	Encoding string `xml:"encoding,attr"`
	Text     string `xml:",chardata"`
}

type tmxObjectGroup struct {
	ID      int         `xml:"id,attr"`
	Name    string      `xml:"name,attr"`
	Objects []tmxObject `xml:"object"`
}

type tmxObject struct {
	ID     int    `xml:"id,attr"`
	Name   string `xml:"name,attr"`
	Type   string `xml:"type,attr"`
	X      int    `xml:"x,attr"`
	Y      int    `xml:"y,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// tmxTileSize is the tile edge in pixels written into the map metadata.
const tmxTileSize = 16

// WriteTMX writes the grid as a Tiled-compatible map: one terrain tile
// layer plus an object layer carrying the spawn and goal markers.
func WriteTMX(result *generation.Result, path string) error {
	gr := result.Grid

	doc := tmxMap{
		Version:     "1.10",
		Orientation: "orthogonal",
		RenderOrder: "right-down",
		Width:       gr.Width,
		Height:      gr.Height,
		TileWidth:   tmxTileSize,
		TileHeight:  tmxTileSize,
		Infinite:    0,
		Tileset: tmxTileset{
			FirstGID:   1,
			Name:       "ash_diver_tiles",
			TileWidth:  tmxTileSize,
			TileHeight: tmxTileSize,
			TileCount:  int(tiles.Ladder) + 1,
		},
		Layer: tmxLayer{
			ID:     1,
			Name:   "terrain",
			Width:  gr.Width,
			Height: gr.Height,
			Data:   tmxData{Encoding: "csv", Text: tileCSV(gr)},
		},
		ObjectGroup: tmxObjectGroup{
			ID:      2,
			Name:    "markers",
			Objects: markerObjects(result),
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

// tileCSV renders the tile layer data with 1-based gids.
func tileCSV(gr *grid.Grid) string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if x > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", int(gr.Tiles[y][x])+1)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// markerObjects lists the spawn and every extraction point as TMX
// objects in pixel coordinates.
func markerObjects(result *generation.Result) []tmxObject {
	objID := 1
	add := func(objs []tmxObject, name string, x, y int) []tmxObject {
		objs = append(objs, tmxObject{
			ID: objID, Name: name, Type: name,
			X: x * tmxTileSize, Y: y * tmxTileSize,
			Width: tmxTileSize, Height: tmxTileSize,
		})
		objID++
		return objs
	}

	var objs []tmxObject
	objs = add(objs, "spawn", result.Spawn[0], result.Spawn[1])
	if result.Goal[0] >= 0 {
		objs = add(objs, "goal", result.Goal[0], result.Goal[1])
	}
	for _, c := range result.Crates {
		objs = add(objs, "extraction_crate", c[0], c[1])
	}
	return objs
}
