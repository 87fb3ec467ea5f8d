package collision

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSOverlay shows the current FPS and TPS. The text refreshes about every
// half second.
type FPSOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

// Update advances the refresh timer by dt seconds.
func (o *FPSOverlay) Update(dt float64) {
	o.elapsed += dt
	if o.elapsed < 0.5 && o.text != "" {
		return
	}
	o.elapsed = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Draw renders the overlay with its top-left corner at (x, y).
func (o *FPSOverlay) Draw(dst *ebiten.Image, x, y int) {
	if o.img == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		o.img = ebiten.NewImage(100, 32)
	}
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(o.img, op)
}
