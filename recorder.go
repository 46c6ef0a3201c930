package patternlock

import "fmt"

// Op is the kind of a recorded Surface call.
type Op uint8

const (
	OpCircle Op = iota
	OpLine
	OpClear
	OpSnapshot
	OpRestore
)

// Call is one recorded Surface call.
type Call struct {
	Op     Op
	Layer  Layer
	X0, Y0 float64 // circle center or line start
	X1, Y1 float64 // line end
	R      float64
	Stroke Stroke
}

func (c Call) String() string {
	switch c.Op {
	case OpCircle:
		return fmt.Sprintf("circle(layer=%d, %.1f,%.1f r=%.1f fill=%v)", c.Layer, c.X0, c.Y0, c.R, c.Stroke.Fill)
	case OpLine:
		return fmt.Sprintf("line(layer=%d, %.1f,%.1f -> %.1f,%.1f)", c.Layer, c.X0, c.Y0, c.X1, c.Y1)
	case OpClear:
		return fmt.Sprintf("clear(layer=%d)", c.Layer)
	case OpSnapshot:
		return "snapshot"
	default:
		return "restore"
	}
}

// Recorder is a headless Surface that records every call and keeps a
// per-layer model of what is currently drawn. It is meant for tests of code
// that renders through a Lock.
type Recorder struct {
	W, H  int
	Flat  bool // report Layered() == false
	Calls []Call

	live [layerCount][]Call
}

// NewRecorder returns a layered recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Size implements Surface.
func (r *Recorder) Size() (int, int) {
	return r.W, r.H
}

// Layered implements Surface.
func (r *Recorder) Layered() bool {
	return !r.Flat
}

// DrawCircle implements Surface.
func (r *Recorder) DrawCircle(layer Layer, cx, cy, radius float64, s Stroke) {
	c := Call{Op: OpCircle, Layer: layer, X0: cx, Y0: cy, R: radius, Stroke: s}
	r.Calls = append(r.Calls, c)
	r.live[r.slot(layer)] = append(r.live[r.slot(layer)], c)
}

// DrawLine implements Surface.
func (r *Recorder) DrawLine(layer Layer, x0, y0, x1, y1 float64, s Stroke) {
	c := Call{Op: OpLine, Layer: layer, X0: x0, Y0: y0, X1: x1, Y1: y1, Stroke: s}
	r.Calls = append(r.Calls, c)
	r.live[r.slot(layer)] = append(r.live[r.slot(layer)], c)
}

// Clear implements Surface. On a flat recorder every layer is cleared.
func (r *Recorder) Clear(layer Layer) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Layer: layer})
	if r.Flat {
		r.live = [layerCount][]Call{}
		return
	}
	r.live[layer] = nil
}

type recorderSnapshot [layerCount][]Call

// Snapshot implements Surface.
func (r *Recorder) Snapshot() Snapshot {
	r.Calls = append(r.Calls, Call{Op: OpSnapshot})
	var snap recorderSnapshot
	for i, calls := range r.live {
		snap[i] = append([]Call(nil), calls...)
	}
	return snap
}

// Restore implements Surface.
func (r *Recorder) Restore(snap Snapshot) {
	r.Calls = append(r.Calls, Call{Op: OpRestore})
	if s, ok := snap.(recorderSnapshot); ok {
		for i, calls := range s {
			r.live[i] = append([]Call(nil), calls...)
		}
	}
}

// Live returns the calls whose output is currently visible on layer. A flat
// recorder keeps everything under LayerGrid.
func (r *Recorder) Live(layer Layer) []Call {
	return r.live[r.slot(layer)]
}

// Count returns how many recorded calls match op on layer.
func (r *Recorder) Count(op Op, layer Layer) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op && c.Layer == layer {
			n++
		}
	}
	return n
}

// Reset forgets the recorded call log, keeping the live model.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

func (r *Recorder) slot(layer Layer) Layer {
	if r.Flat {
		return LayerGrid
	}
	return layer
}
