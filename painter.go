package patternlock

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultClearDelay is how long a finished pattern stays visible before it is
// wiped.
const DefaultClearDelay = 500 * time.Millisecond

// Painter renders the grid, committed path, activated targets and rubber-band
// preview onto a Surface, translating normalized layout coordinates into
// backing pixels.
//
// On layered surfaces the preview lives on LayerPreview and is cleared every
// move. On single-buffer surfaces the painter keeps a snapshot of the committed
// state and restores it before each preview draw.
type Painter struct {
	surface Surface
	layout  *Layout
	style   Style
	w, h    float64

	base       Snapshot
	previewing bool

	// trail is the activated targets currently on screen, in draw order.
	trail []int

	// gen counts gestures. A pending clear only runs while gen still equals
	// fadeGen, so it can never erase a newer gesture.
	gen     uint64
	fade    *gween.Tween
	fadeGen uint64
	alpha   float64
}

// NewPainter creates a painter for the given surface and layout. It does not
// draw anything until DrawGrid is called.
func NewPainter(s Surface, l *Layout, st Style) *Painter {
	w, h := s.Size()
	return &Painter{
		surface: s,
		layout:  l,
		style:   st,
		w:       float64(w),
		h:       float64(h),
		alpha:   1,
	}
}

func (p *Painter) px(n Vec2) (float64, float64) {
	return n.X * p.w, n.Y * p.h
}

// DrawGrid draws every target in its default state.
func (p *Painter) DrawGrid() {
	for i := range p.layout.Targets {
		p.drawTarget(i, TargetDefault)
	}
	p.committed()
}

// DrawTarget draws target i. Default targets go to LayerGrid; activated ones to
// LayerMarks as a filled marker inside a highlighted outline.
func (p *Painter) DrawTarget(i int, state TargetState) {
	p.drawTarget(i, state)
	if state == TargetActivated {
		p.trail = append(p.trail, i)
	}
	p.committed()
}

func (p *Painter) drawTarget(i int, state TargetState) {
	t := p.layout.Target(i)
	cx, cy := p.px(t.Center)
	r := t.Radius * p.w
	switch state {
	case TargetActivated:
		p.surface.DrawCircle(LayerMarks, cx, cy, p.layout.MarkerRadius*p.w,
			Stroke{Color: p.style.PointColor, Fill: true})
		p.surface.DrawCircle(LayerMarks, cx, cy, r,
			Stroke{Color: p.style.ActivatedCircleColor, Width: p.style.CircleWidth})
	default:
		p.surface.DrawCircle(LayerGrid, cx, cy, r,
			Stroke{Color: p.style.DefaultCircleColor, Width: p.style.CircleWidth})
	}
}

// DrawSegment draws a committed line between the centers of two targets.
func (p *Painter) DrawSegment(from, to int) {
	p.drawSegment(from, to)
	p.committed()
}

func (p *Painter) drawSegment(from, to int) {
	x0, y0 := p.px(p.layout.Target(from).Center)
	x1, y1 := p.px(p.layout.Target(to).Center)
	p.surface.DrawLine(LayerPath, x0, y0, x1, y1, p.lineStroke())
}

// Preview draws the rubber band from target from to the normalized pointer
// position, replacing any previous preview.
func (p *Painter) Preview(from int, pointer Vec2) {
	if p.surface.Layered() {
		p.surface.Clear(LayerPreview)
	} else if p.base == nil {
		p.base = p.surface.Snapshot()
	} else if p.previewing {
		p.surface.Restore(p.base)
	}
	x0, y0 := p.px(p.layout.Target(from).Center)
	x1, y1 := p.px(pointer)
	p.surface.DrawLine(LayerPreview, x0, y0, x1, y1, p.lineStroke())
	p.previewing = true
}

// ClearPreview removes the rubber band, leaving committed drawing intact.
func (p *Painter) ClearPreview() {
	if !p.previewing {
		return
	}
	if p.surface.Layered() {
		p.surface.Clear(LayerPreview)
	} else if p.base != nil {
		p.surface.Restore(p.base)
	}
	p.previewing = false
}

// committed invalidates the single-buffer base snapshot after a committed draw.
func (p *Painter) committed() {
	if !p.surface.Layered() {
		p.base = nil
	}
}

func (p *Painter) lineStroke() Stroke {
	return Stroke{Color: p.style.LineColor, Width: p.style.LineWidth}
}

// Begin marks the start of a new gesture. A clear still pending from the
// previous gesture is carried out immediately and cancelled.
func (p *Painter) Begin() {
	p.gen++
	if p.fade != nil {
		p.fade = nil
		p.wipe()
	}
	p.alpha = 1
}

// ClearAfterDelay schedules erasure of the committed path and highlights once
// delay has elapsed on the Update clock. During the delay Alpha eases from 1
// towards 0 so hosts can fade the committed layers out. A non-positive delay
// wipes immediately.
func (p *Painter) ClearAfterDelay(delay time.Duration) {
	if delay <= 0 {
		p.fade = nil
		p.wipe()
		return
	}
	p.fade = gween.New(1, 0, float32(delay.Seconds()), ease.InQuint)
	p.fadeGen = p.gen
}

// Update advances a pending clear by dt seconds.
func (p *Painter) Update(dt float32) {
	if p.fade == nil {
		return
	}
	if p.fadeGen != p.gen {
		p.fade = nil
		p.alpha = 1
		return
	}
	v, done := p.fade.Update(dt)
	p.alpha = float64(v)
	if done {
		p.fade = nil
		p.wipe()
	}
}

// Pending reports whether a deferred clear is scheduled.
func (p *Painter) Pending() bool {
	return p.fade != nil
}

// Alpha is the opacity hosts should apply to LayerPath and LayerMarks.
func (p *Painter) Alpha() float64 {
	return p.alpha
}

// Generation returns the number of gestures begun so far.
func (p *Painter) Generation() uint64 {
	return p.gen
}

// Trail returns the activated targets currently drawn, oldest first.
func (p *Painter) Trail() []int {
	return append([]int(nil), p.trail...)
}

// SetStyle replaces the cosmetic style and redraws the grid and the trail
// still on screen in the new style. The rubber band is dropped and reappears
// on the next Preview. A pending clear keeps running.
func (p *Painter) SetStyle(st Style) {
	p.style = st
	p.previewing = false
	p.base = nil
	if p.surface.Layered() {
		for l := LayerGrid; l < layerCount; l++ {
			p.surface.Clear(l)
		}
	} else {
		p.surface.Clear(LayerGrid)
	}
	p.DrawGrid()
	p.replay()
}

// replay redraws the trail without recording it again.
func (p *Painter) replay() {
	for k, i := range p.trail {
		if k > 0 {
			p.drawSegment(p.trail[k-1], i)
		}
		p.drawTarget(i, TargetActivated)
	}
}

// wipe erases the committed path, highlights and preview.
func (p *Painter) wipe() {
	p.alpha = 1
	p.previewing = false
	p.trail = p.trail[:0]
	if p.surface.Layered() {
		p.surface.Clear(LayerPath)
		p.surface.Clear(LayerMarks)
		p.surface.Clear(LayerPreview)
		return
	}
	p.surface.Clear(LayerGrid)
	p.base = nil
	p.DrawGrid()
}
