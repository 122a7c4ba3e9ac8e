package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Point is a screen-space vertex.
type Point struct {
	X, Y float32
}

// Surface is the immediate-mode sink the renderer paints into.
type Surface interface {
	Clear(c color.RGBA)
	FillPolygon(pts []Point, c color.RGBA)
	StrokePolygon(pts []Point, width float32, c color.RGBA)
}

// ImageSurface paints onto an ebiten image.
type ImageSurface struct {
	dst *ebiten.Image
}

// NewImageSurface wraps dst.
func NewImageSurface(dst *ebiten.Image) *ImageSurface {
	return &ImageSurface{dst: dst}
}

func (s *ImageSurface) Clear(c color.RGBA) {
	s.dst.Fill(c)
}

func (s *ImageSurface) FillPolygon(pts []Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(c)
	vector.FillPath(s.dst, &path, &vector.FillOptions{}, opts)
}

func (s *ImageSurface) StrokePolygon(pts []Point, width float32, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(s.dst, a.X, a.Y, b.X, b.Y, width, c, false)
	}
}

// DrawCall is one primitive captured by a RecordingSurface.
type DrawCall struct {
	Fill   bool
	Points []Point
	Width  float32
	Color  color.RGBA
}

// RecordingSurface keeps every call instead of painting. Headless runs and
// tests use it to inspect paint order.
type RecordingSurface struct {
	Cleared int
	Calls   []DrawCall
}

func (s *RecordingSurface) Clear(color.RGBA) {
	s.Cleared++
	s.Calls = s.Calls[:0]
}

func (s *RecordingSurface) FillPolygon(pts []Point, c color.RGBA) {
	s.Calls = append(s.Calls, DrawCall{Fill: true, Points: append([]Point(nil), pts...), Color: c})
}

func (s *RecordingSurface) StrokePolygon(pts []Point, width float32, c color.RGBA) {
	s.Calls = append(s.Calls, DrawCall{Points: append([]Point(nil), pts...), Width: width, Color: c})
}

// Fills returns only the fill calls, in paint order.
func (s *RecordingSurface) Fills() []DrawCall {
	var out []DrawCall
	for _, c := range s.Calls {
		if c.Fill {
			out = append(out, c)
		}
	}
	return out
}
