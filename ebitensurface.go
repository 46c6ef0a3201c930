package patternlock

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a layered Surface backed by one persistent offscreen
// *ebiten.Image per Layer. Unlike the single-buffer RasterSurface, every layer
// can be cleared on its own, so rubber-band previews never need a snapshot.
type EbitenSurface struct {
	layers    [layerCount]*ebiten.Image
	drawn     [layerCount]bool
	w, h      int
	Antialias bool
}

// NewEbitenSurface creates a layered surface of the given backing size.
func NewEbitenSurface(w, h int) *EbitenSurface {
	s := &EbitenSurface{w: w, h: h, Antialias: true}
	for i := range s.layers {
		s.layers[i] = ebiten.NewImage(w, h)
	}
	return s
}

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	return s.w, s.h
}

// Layered implements Surface. It always returns true.
func (s *EbitenSurface) Layered() bool {
	return true
}

// Layer returns the offscreen image backing layer for direct manipulation.
func (s *EbitenSurface) Layer(layer Layer) *ebiten.Image {
	return s.layers[layer]
}

// DrawCircle implements Surface.
func (s *EbitenSurface) DrawCircle(layer Layer, cx, cy, r float64, st Stroke) {
	dst := s.layers[layer]
	s.drawn[layer] = true
	if st.Fill {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), st.Color.RGBA(), s.Antialias)
		return
	}
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), float32(st.Width), st.Color.RGBA(), s.Antialias)
}

// DrawLine implements Surface.
func (s *EbitenSurface) DrawLine(layer Layer, x0, y0, x1, y1 float64, st Stroke) {
	if st.Width <= 0 || (x0 == x1 && y0 == y1) {
		return
	}
	s.drawn[layer] = true
	vector.StrokeLine(s.layers[layer], float32(x0), float32(y0), float32(x1), float32(y1),
		float32(st.Width), st.Color.RGBA(), s.Antialias)
}

// Clear implements Surface by filling layer with transparent black.
func (s *EbitenSurface) Clear(layer Layer) {
	s.layers[layer].Clear()
	s.drawn[layer] = false
}

// Drawn reports whether anything has been drawn on layer since it was last
// cleared.
func (s *EbitenSurface) Drawn(layer Layer) bool {
	return s.drawn[layer]
}

type ebitenSnapshot struct {
	layers [layerCount]*ebiten.Image
	drawn  [layerCount]bool
}

// Snapshot implements Surface by copying every layer.
func (s *EbitenSurface) Snapshot() Snapshot {
	snap := &ebitenSnapshot{drawn: s.drawn}
	for i, img := range s.layers {
		cp := ebiten.NewImage(s.w, s.h)
		cp.DrawImage(img, nil)
		snap.layers[i] = cp
	}
	return snap
}

// Restore implements Surface. Snapshots from other surfaces are ignored.
func (s *EbitenSurface) Restore(snap Snapshot) {
	es, ok := snap.(*ebitenSnapshot)
	if !ok {
		return
	}
	for i, img := range es.layers {
		var op ebiten.DrawImageOptions
		op.Blend = ebiten.BlendCopy
		s.layers[i].DrawImage(img, &op)
	}
	s.drawn = es.drawn
}

// compositeOrder stacks the rubber band and path below the target outlines and
// markers, so circles cover the lines running into them.
var compositeOrder = [layerCount]Layer{LayerPath, LayerPreview, LayerGrid, LayerMarks}

// Composite draws all layers onto dst at the viewport position, scaling the
// backing store down by the viewport scale. alpha fades the committed path
// and markers, typically Lock.Alpha(). Empty layers are skipped.
func (s *EbitenSurface) Composite(dst *ebiten.Image, vp Viewport, alpha float64) {
	for _, layer := range compositeOrder {
		if !s.drawn[layer] {
			continue
		}
		dst.DrawImage(s.layers[layer], compositeOptions(layer, vp, alpha))
	}
}

func compositeOptions(layer Layer, vp Viewport, alpha float64) *ebiten.DrawImageOptions {
	inv := 1 / vp.scale()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(inv, inv)
	op.GeoM.Translate(vp.X, vp.Y)
	if layer == LayerPath || layer == LayerMarks {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	op.Filter = ebiten.FilterLinear
	return op
}

// Dispose deallocates every layer. The surface must not be used afterwards.
func (s *EbitenSurface) Dispose() {
	for i, img := range s.layers {
		if img != nil {
			img.Deallocate()
			s.layers[i] = nil
		}
		s.drawn[i] = false
	}
}
