package patternlock

// pointerPhase is the kind of a synthetic pointer event.
type pointerPhase uint8

const (
	phasePress pointerPhase = iota
	phaseMove
	phaseRelease
)

// syntheticPointerEvent is one queued pointer event in screen coordinates.
type syntheticPointerEvent struct {
	screenX, screenY float64
	phase            pointerPhase
}

// InjectPress queues a pointer press at the given screen coordinates. Injected
// events are consumed one per Update call.
func (l *Lock) InjectPress(x, y float64) {
	l.injectQueue = append(l.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, phase: phasePress})
}

// InjectMove queues a pointer move with the contact held down.
func (l *Lock) InjectMove(x, y float64) {
	l.injectQueue = append(l.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, phase: phaseMove})
}

// InjectRelease queues a pointer release.
func (l *Lock) InjectRelease(x, y float64) {
	l.injectQueue = append(l.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, phase: phaseRelease})
}

// InjectGesture queues a complete gesture through the centers of the given
// targets: a press on the first, steps interpolated moves between consecutive
// centers (the last one landing on the center) and a release on the last.
// Indices outside the layout are ignored. steps below 1 is treated as 1.
//
// Interpolated moves pass over whatever lies between two centers, exactly as a
// real finger would, so a straight line from 0 to 2 also selects 1.
func (l *Lock) InjectGesture(indices []int, steps int) {
	if steps < 1 {
		steps = 1
	}
	var pts []Vec2
	for _, i := range indices {
		if i < 0 || i >= l.layout.Len() {
			continue
		}
		pts = append(pts, l.viewport.ToScreen(l.layout.Target(i).Center))
	}
	if len(pts) == 0 {
		return
	}
	l.InjectPress(pts[0].X, pts[0].Y)
	for k := 1; k < len(pts); k++ {
		from, to := pts[k-1], pts[k]
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			l.InjectMove(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
		}
	}
	last := pts[len(pts)-1]
	l.InjectRelease(last.X, last.Y)
}

// Injecting reports whether synthetic events are still queued. Real device
// input should be skipped while this is true.
func (l *Lock) Injecting() bool {
	return len(l.injectQueue) > 0
}

// processInjectedInput pops one queued event and feeds it through the regular
// pointer path. It reports whether an event was consumed.
func (l *Lock) processInjectedInput() (bool, error) {
	if len(l.injectQueue) == 0 {
		return false, nil
	}
	evt := l.injectQueue[0]
	copy(l.injectQueue, l.injectQueue[1:])
	l.injectQueue = l.injectQueue[:len(l.injectQueue)-1]

	switch evt.phase {
	case phasePress:
		l.Press(evt.screenX, evt.screenY)
	case phaseMove:
		l.Move(evt.screenX, evt.screenY)
	case phaseRelease:
		return true, l.Release()
	}
	return true, nil
}
