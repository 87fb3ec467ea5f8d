// physics spawns random boxes with gravity, collisions, and click-to-explode.
// The world's debug draw renders the bodies and the quadtree. S saves a
// screenshot.
package main

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/collision"
)

const (
	screenW  = 1280
	screenH  = 720
	boxCount = 100
	gravity  = 12.0
	bounce   = 0.25
	maxVel   = 720.0

	// Explosion settings
	blastRadius = 350.0
	blastForce  = 1800.0

	// Flash animation
	flashFrames = 12
)

type shape struct {
	body       *collision.Body
	baseColor  collision.Color
	flashTimer int
}

type demo struct {
	world  *collision.World
	shapes []*shape
	hits   []*collision.Body
	gfx    collision.EbitenGraphics
	fps    collision.FPSOverlay

	screenshot bool
}

func newDemo() *demo {
	d := &demo{
		world: collision.NewWorld(collision.WorldOptions{
			Size:       collision.Size{Width: screenW, Height: screenH},
			Iterations: 3,
			Gravity:    collision.Vec2{Y: gravity},
		}),
	}
	d.world.ShowQuadTree = true

	// Walls, floor and ceiling.
	walls := []collision.Rect{
		{X: 0, Y: screenH - 10, Width: screenW, Height: 10},
		{X: 0, Y: 0, Width: screenW, Height: 10},
		{X: 0, Y: 0, Width: 10, Height: screenH},
		{X: screenW - 10, Y: 0, Width: 10, Height: screenH},
	}
	for _, r := range walls {
		c := r.Center()
		d.world.AddBody(collision.NewBody(collision.BodyOptions{
			Type:     collision.BodyStatic,
			Position: &c,
			Size:     collision.Size{Width: r.Width, Height: r.Height},
		}))
	}

	for range boxCount {
		size := 25.0 + rand.Float64()*30.0
		s := &shape{
			baseColor: collision.Color{
				R: 0.3 + rand.Float64()*0.7,
				G: 0.3 + rand.Float64()*0.7,
				B: 0.3 + rand.Float64()*0.7,
				A: 1,
			},
		}
		s.body = collision.NewBody(collision.BodyOptions{
			Position: &collision.Vec2{
				X: size + rand.Float64()*(screenW-2*size),
				Y: size + rand.Float64()*(screenH-2*size),
			},
			Size:        collision.Size{Width: size, Height: size},
			Mass:        size / 20.0,
			Bounce:      bounce,
			Drag:        collision.Vec2{X: 1},
			MaxVelocity: collision.Vec2{X: maxVel, Y: maxVel},
			Velocity:    collision.Vec2{X: (rand.Float64() - 0.5) * 120},
			UserData:    s,
		})
		d.world.AddBody(s.body)
		d.shapes = append(d.shapes, s)
	}
	return d
}

func (d *demo) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		d.hits = d.world.QueryRect(collision.Rect{X: float64(mx), Y: float64(my), Width: 1, Height: 1}, d.hits[:0])
		for _, b := range d.hits {
			if s, ok := b.UserData.(*shape); ok {
				d.explode(s)
				break
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		d.screenshot = true
	}

	d.world.Update(1.0 / 60)
	d.fps.Update(1.0 / 60)

	for _, s := range d.shapes {
		if s.flashTimer > 0 {
			s.flashTimer--
		}
	}
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	screen.Fill(collision.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}.RGBA())

	d.gfx.Target = screen
	d.world.Draw(&d.gfx)

	for _, s := range d.shapes {
		t := float64(s.flashTimer) / flashFrames
		c := collision.Color{
			R: s.baseColor.R + (1-s.baseColor.R)*t,
			G: s.baseColor.G + (1-s.baseColor.G)*t,
			B: s.baseColor.B + (1-s.baseColor.B)*t,
			A: 1,
		}
		d.gfx.DrawRect(s.body.Bounds, c, 0)
	}

	collision.DrawStats(screen, d.world, 16, 16)
	d.fps.Draw(screen, screenW-116, 16)

	if d.screenshot {
		d.screenshot = false
		path, err := collision.SaveScreenshot(screen, "screenshots", "physics")
		if err != nil {
			log.Print(err)
			return
		}
		log.Printf("saved %s", path)
	}
}

func (d *demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// explode applies a radial blast from the clicked shape, flinging nearby
// shapes outward with force that falls off with distance. Lighter shapes fly
// further.
func (d *demo) explode(src *shape) {
	center := src.body.Position()

	src.body.Velocity.Y = -blastForce / src.body.Mass
	src.body.Velocity.X += (rand.Float64() - 0.5) * 600
	src.flashTimer = flashFrames

	for _, s := range d.shapes {
		if s == src {
			continue
		}
		p := s.body.Position()
		dist := p.Distance(center)
		if dist > blastRadius || dist < 0.1 {
			continue
		}

		strength := blastForce * (1.0 - dist/blastRadius) / s.body.Mass
		nx := (p.X - center.X) / dist
		ny := (p.Y - center.Y) / dist

		s.body.Velocity.X += nx * strength
		s.body.Velocity.Y += (ny - 0.5) * strength
		s.flashTimer = int(math.Round(flashFrames * (1.0 - dist/blastRadius)))
	}
}

func main() {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Collision — Physics Boxes")
	if err := ebiten.RunGame(newDemo()); err != nil {
		log.Fatal(err)
	}
}
