package patternlock

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments is the number of polygon edges used to approximate a circle.
const circleSegments = 64

// RasterSurface is a headless single-buffer Surface backed by an *image.RGBA.
// All layers share the one buffer: Clear erases everything and rubber-band
// previews are undone with Snapshot and Restore. It needs no graphics context,
// which makes it suitable for scripted runs and screenshots.
type RasterSurface struct {
	img        *image.RGBA
	background Color
	z          vector.Rasterizer
}

// NewRasterSurface creates a w x h surface filled with background.
func NewRasterSurface(w, h int, background Color) *RasterSurface {
	s := &RasterSurface{img: image.NewRGBA(image.Rect(0, 0, w, h)), background: background}
	s.fill()
	return s
}

func (s *RasterSurface) fill() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background.RGBA()), image.Point{}, draw.Src)
}

// Size implements Surface.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Layered implements Surface. It always returns false.
func (s *RasterSurface) Layered() bool {
	return false
}

// Image returns the backing buffer. It must not be retained across draws.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// DrawCircle implements Surface. The layer is ignored.
func (s *RasterSurface) DrawCircle(_ Layer, cx, cy, r float64, st Stroke) {
	s.begin()
	if st.Fill {
		s.circlePath(cx, cy, r, false)
	} else {
		half := st.Width / 2
		s.circlePath(cx, cy, r+half, false)
		if r-half > 0 {
			// Opposite winding punches out the interior.
			s.circlePath(cx, cy, r-half, true)
		}
	}
	s.paint(st.Color)
}

// DrawLine implements Surface as a butt-capped quad. The layer is ignored.
func (s *RasterSurface) DrawLine(_ Layer, x0, y0, x1, y1 float64, st Stroke) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || st.Width <= 0 {
		return
	}
	nx, ny := -dy/length*st.Width/2, dx/length*st.Width/2
	s.begin()
	s.z.MoveTo(float32(x0+nx), float32(y0+ny))
	s.z.LineTo(float32(x1+nx), float32(y1+ny))
	s.z.LineTo(float32(x1-nx), float32(y1-ny))
	s.z.LineTo(float32(x0-nx), float32(y0-ny))
	s.z.ClosePath()
	s.paint(st.Color)
}

// Clear implements Surface by refilling the whole buffer with the background.
func (s *RasterSurface) Clear(Layer) {
	s.fill()
}

// Snapshot implements Surface by copying the buffer.
func (s *RasterSurface) Snapshot() Snapshot {
	cp := make([]byte, len(s.img.Pix))
	copy(cp, s.img.Pix)
	return rasterSnapshot(cp)
}

type rasterSnapshot []byte

// Restore implements Surface. Snapshots of a different size are ignored.
func (s *RasterSurface) Restore(snap Snapshot) {
	pix, ok := snap.(rasterSnapshot)
	if !ok || len(pix) != len(s.img.Pix) {
		return
	}
	copy(s.img.Pix, pix)
}

func (s *RasterSurface) begin() {
	w, h := s.Size()
	s.z.Reset(w, h)
	s.z.DrawOp = draw.Over
}

func (s *RasterSurface) paint(c Color) {
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c.RGBA()), image.Point{})
}

func (s *RasterSurface) circlePath(cx, cy, r float64, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		if reverse {
			a = -a
		}
		x, y := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
		if i == 0 {
			s.z.MoveTo(x, y)
		} else {
			s.z.LineTo(x, y)
		}
	}
	s.z.ClosePath()
}
