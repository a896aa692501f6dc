package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ash-diver/export"
	"ash-diver/generation"
	"ash-diver/tiles"
)

// inspector implements ebiten.Game for scrolling around a generated
// grid. It renders the whole grid to one image up front and only moves
// a camera over it, so Update does no per-tile work.
type inspector struct {
	result *generation.Result
	world  *ebiten.Image
	scale  int

	camX, camY int
}

// viewerScale is the tile edge in screen pixels inside the inspector.
const viewerScale = 6

func newInspector(result *generation.Result, set *tiles.Set) *inspector {
	rendered := export.RenderImage(result.Grid, set, viewerScale)
	return &inspector{
		result: result,
		world:  ebiten.NewImageFromImage(rendered),
		scale:  viewerScale,
		camX:   result.Spawn[0] * viewerScale,
		camY:   result.Spawn[1] * viewerScale,
	}
}

// Update handles camera movement with the arrow keys.
func (v *inspector) Update() error {
	moveSpeed := 2 * v.scale

	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camY -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camY += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camX -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camX += moveSpeed
	}

	// Keep the camera within the rendered world.
	maxX := v.world.Bounds().Dx() - 1
	maxY := v.world.Bounds().Dy() - 1
	if v.camX < 0 {
		v.camX = 0
	}
	if v.camX > maxX {
		v.camX = maxX
	}
	if v.camY < 0 {
		v.camY = 0
	}
	if v.camY > maxY {
		v.camY = maxY
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw blits the camera window of the world image and overlays a
// one-line status with the seed and camera tile position.
func (v *inspector) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(w/2-v.camX), float64(h/2-v.camY))
	screen.DrawImage(v.world, op)

	status := fmt.Sprintf("%s seed=%d tile=(%d,%d) arrows=move F=fullscreen esc=quit",
		v.result.Zone, v.result.Seed, v.camX/v.scale, v.camY/v.scale)
	ebitenutil.DebugPrint(screen, status)
}

// Layout implements ebiten.Game's Layout.
func (v *inspector) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// runViewer opens the inspector window for an accepted result.
func runViewer(result *generation.Result, set *tiles.Set) error {
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle(fmt.Sprintf("Ash Diver - %s seed %d", result.Zone, result.Seed))
	if err := ebiten.RunGame(newInspector(result, set)); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
