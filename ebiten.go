package collision

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenGraphics draws World debug output onto an ebiten image. Translate
// offsets every coordinate, e.g. by a camera scroll.
type EbitenGraphics struct {
	Target    *ebiten.Image
	Translate Vec2
	AntiAlias bool
}

// DrawRect implements Graphics.
func (g *EbitenGraphics) DrawRect(r Rect, c Color, lineWidth float64) {
	x := float32(r.X + g.Translate.X)
	y := float32(r.Y + g.Translate.Y)
	if lineWidth <= 0 {
		vector.FillRect(g.Target, x, y, float32(r.Width), float32(r.Height), c.toRGBA(), g.AntiAlias)
		return
	}
	vector.StrokeRect(g.Target, x, y, float32(r.Width), float32(r.Height), float32(lineWidth), c.toRGBA(), g.AntiAlias)
}

// DrawLine implements Graphics.
func (g *EbitenGraphics) DrawLine(x0, y0, x1, y1 float64, c Color, lineWidth float64) {
	vector.StrokeLine(g.Target,
		float32(x0+g.Translate.X), float32(y0+g.Translate.Y),
		float32(x1+g.Translate.X), float32(y1+g.Translate.Y),
		float32(lineWidth), c.toRGBA(), g.AntiAlias)
}

// DrawStats prints the world's last-step statistics at (x, y) on dst.
func DrawStats(dst *ebiten.Image, w *World, x, y int) {
	ebitenutil.DebugPrintAt(dst, w.Stats().String(), x, y)
}

// String formats the stats for overlays and logs.
func (s StepStats) String() string {
	return fmt.Sprintf("bodies: %d (%d active, %d in world)\nnodes: %d  candidates: %d\nseparations: %d  events: %d",
		s.Bodies, s.Active, s.Inserted, s.TreeNodes, s.Candidates, s.Separations, s.Events)
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// RGBA implements color.Color, so a Color can be passed to ebiten.Image.Fill.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}
