package patternlock

// Stroke describes how a circle or line is painted. Width is in backing pixels
// and ignored when Fill is set.
type Stroke struct {
	Color Color
	Width float64
	Fill  bool
}

// Snapshot is an opaque raster state captured by Surface.Snapshot.
type Snapshot any

// Surface is the drawing capability a Lock renders into. All coordinates are in
// backing-store pixels with the origin at the top-left of the surface.
//
// A layered surface keeps every Layer in its own buffer so each can be cleared
// independently. A surface that reports Layered() == false draws every layer
// into one buffer; Clear then erases everything, and rubber-band previews are
// removed by restoring a snapshot instead.
type Surface interface {
	Size() (width, height int)
	Layered() bool
	DrawCircle(layer Layer, cx, cy, r float64, s Stroke)
	DrawLine(layer Layer, x0, y0, x1, y1 float64, s Stroke)
	Clear(layer Layer)
	Snapshot() Snapshot
	Restore(snap Snapshot)
}
