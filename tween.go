package collision

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup moves a body's center along an eased path by driving its
// velocity. Create one with TweenBody and call Update(dt) each frame before
// World.Update with the same dt. It is intended for kinematic bodies: on a
// dynamic body gravity and drag still apply on top of the tween.
//
// If the body becomes inactive the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	body   *Body
	to     Vec2
	Done   bool
}

// Update advances the tweens by dt seconds and sets the body velocity so the
// next World.Update moves the body onto the tweened position. When the
// tweens finish, the body is placed on the target and its velocity zeroed.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.body == nil || !g.body.Active {
		g.Done = true
		return
	}

	x, doneX := g.tweens[0].Update(dt)
	y, doneY := g.tweens[1].Update(dt)

	if doneX && doneY {
		g.body.UpdatePosition(g.to.X, g.to.Y)
		g.body.Velocity = Vec2{}
		g.Done = true
		return
	}
	if dt <= 0 {
		return
	}
	pos := g.body.Position()
	g.body.Velocity = Vec2{
		X: (float64(x) - pos.X) / float64(dt),
		Y: (float64(y) - pos.Y) / float64(dt),
	}
}

// TweenBody creates a TweenGroup that moves body's center to (toX, toY)
// over duration seconds using the easing function.
func TweenBody(body *Body, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	pos := body.Position()
	g := &TweenGroup{body: body, to: Vec2{X: toX, Y: toY}}
	g.tweens[0] = gween.New(float32(pos.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(pos.Y), float32(toY), duration, fn)
	return g
}
