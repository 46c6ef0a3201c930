package patternlock

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput polls ebiten mouse and touch state once per frame and feeds a
// single contact into a Lock. Only one contact is tracked: while a touch (or the
// left mouse button) is down, every other touch is ignored.
type PointerInput struct {
	down    bool
	touch   bool
	touchID ebiten.TouchID
	lastX   float64
	lastY   float64
	buf     []ebiten.TouchID
}

// Update reads the current pointer state and forwards press, move and release
// transitions to l. Real input is skipped while injected events are queued.
// It returns the error from Lock.Release, if any.
func (in *PointerInput) Update(l *Lock) error {
	if l.Injecting() {
		return nil
	}
	x, y, pressed := in.read()
	return in.apply(l, x, y, pressed)
}

// apply runs the per-frame pointer state machine.
func (in *PointerInput) apply(l *Lock, x, y float64, pressed bool) error {
	switch {
	case pressed && !in.down:
		in.down = true
		in.lastX, in.lastY = x, y
		l.Press(x, y)
	case pressed && in.down:
		if x != in.lastX || y != in.lastY {
			in.lastX, in.lastY = x, y
			l.Move(x, y)
		}
	case !pressed && in.down:
		in.down = false
		in.touch = false
		return l.Release()
	}
	return nil
}

// read returns the position of the tracked contact and whether it is down.
func (in *PointerInput) read() (x, y float64, pressed bool) {
	if in.down && in.touch {
		in.buf = ebiten.AppendTouchIDs(in.buf[:0])
		for _, id := range in.buf {
			if id == in.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true
			}
		}
		// Lifted or cancelled: release where it was last seen.
		return in.lastX, in.lastY, false
	}

	if !in.down {
		in.buf = inpututil.AppendJustPressedTouchIDs(in.buf[:0])
		if len(in.buf) > 0 {
			in.touch = true
			in.touchID = in.buf[0]
			tx, ty := ebiten.TouchPosition(in.touchID)
			return float64(tx), float64(ty), true
		}
	}

	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
