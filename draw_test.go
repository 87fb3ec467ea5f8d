package collision

import (
	"image/color"
	"testing"
)

type drawnRect struct {
	r         Rect
	c         Color
	lineWidth float64
}

type recordingGraphics struct {
	rects []drawnRect
	lines int
}

func (g *recordingGraphics) DrawRect(r Rect, c Color, lineWidth float64) {
	g.rects = append(g.rects, drawnRect{r, c, lineWidth})
}

func (g *recordingGraphics) DrawLine(_, _, _, _ float64, _ Color, _ float64) {
	g.lines++
}

func TestWorldDrawBodies(t *testing.T) {
	w, box, wall := wallScene()
	hidden := NewBody(BodyOptions{Inactive: true})
	w.AddBody(hidden)

	g := &recordingGraphics{}
	w.Draw(g)

	if len(g.rects) != 2 {
		t.Fatalf("drew %d rects, want 2 active bodies", len(g.rects))
	}
	if g.rects[0].r != box.Bounds || g.rects[0].c != BodyColor || g.rects[0].lineWidth != 0 {
		t.Errorf("box drawn as %+v", g.rects[0])
	}
	if g.rects[1].r != wall.Bounds || g.rects[1].c != StaticBodyColor {
		t.Errorf("wall drawn as %+v", g.rects[1])
	}
}

func TestWorldDrawQuadTree(t *testing.T) {
	w, _, _ := wallScene()
	w.ShowQuadTree = true
	w.Update(1)

	g := &recordingGraphics{}
	w.Draw(g)

	// world bounds + one tree node + two bodies
	if len(g.rects) != 4 {
		t.Fatalf("drew %d rects, want 4", len(g.rects))
	}
	if g.rects[0].r != w.Bounds() || g.rects[0].lineWidth <= 0 {
		t.Errorf("first rect should outline the world, got %+v", g.rects[0])
	}
}

func TestWorldDrawRays(t *testing.T) {
	w, _, _ := wallScene()
	w.DrawRays = true
	w.Update(1)
	w.Raycast(Vec2{X: 0, Y: 100}, Vec2{X: 400, Y: 100}, nil, nil)
	w.Raycast(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 0}, nil, nil)

	g := &recordingGraphics{}
	w.Draw(g)
	if g.lines != 2 {
		t.Fatalf("drew %d lines, want 2", g.lines)
	}

	g = &recordingGraphics{}
	w.Draw(g)
	if g.lines != 0 {
		t.Errorf("rays should be cleared after Draw, drew %d", g.lines)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.RGBA
	}{
		{"opaque white", Color{R: 1, G: 1, B: 1, A: 1}, color.RGBA{255, 255, 255, 255}},
		{"half red", Color{R: 1, A: 0.5}, color.RGBA{127, 0, 0, 127}},
		{"clamped", Color{R: 2, G: -1, B: 0, A: 1}, color.RGBA{255, 0, 0, 255}},
		{"transparent", Color{R: 1, G: 1, B: 1}, color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.toRGBA(); got != tt.want {
				t.Errorf("toRGBA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorImplementsColor(t *testing.T) {
	var c color.Color = Color{R: 1, A: 1}
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
}
