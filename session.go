package patternlock

import "time"

// MoveResult describes what a pointer move did to the session.
type MoveResult uint8

const (
	MoveIgnored   MoveResult = iota // no gesture in progress
	MovePreview                     // rubber band updated, no new target
	MoveCommitted                   // a new target was appended to the path
)

// Session tracks a single drag gesture over the layout: Idle until a press
// lands on a target, then Tracking until release. It keeps the path
// duplicate-free by excluding already selected targets from hit testing.
type Session struct {
	layout  *Layout
	painter *Painter

	path     Path
	active   int
	tracking bool
}

// NewSession creates an idle session that renders through painter.
func NewSession(l *Layout, painter *Painter) *Session {
	return &Session{layout: l, painter: painter, active: -1}
}

// Tracking reports whether a gesture is in progress.
func (s *Session) Tracking() bool {
	return s.tracking
}

// Active returns the most recently selected target.
func (s *Session) Active() (int, bool) {
	return s.active, s.active >= 0
}

// Path returns the current path. The returned value is owned by the session.
func (s *Session) Path() *Path {
	return &s.path
}

func (s *Session) hit(p Vec2) (int, bool) {
	return s.layout.Hit(p, s.path.Contains)
}

// Press starts a gesture if the normalized point p hits a target. It returns
// false when the press missed every target or a gesture is already tracking.
func (s *Session) Press(p Vec2) bool {
	if s.tracking {
		return false
	}
	idx, ok := s.hit(p)
	if !ok {
		return false
	}
	s.painter.Begin()
	s.tracking = true
	s.active = idx
	s.path.Add(idx)
	s.painter.DrawTarget(idx, TargetActivated)
	return true
}

// Move processes a pointer move to the normalized point p. Points off the
// surface are accepted; they simply miss every target.
func (s *Session) Move(p Vec2) MoveResult {
	if !s.tracking {
		return MoveIgnored
	}
	idx, ok := s.hit(p)
	if !ok {
		s.painter.Preview(s.active, p)
		return MovePreview
	}
	s.painter.ClearPreview()
	s.painter.DrawSegment(s.active, idx)
	s.path.Add(idx)
	s.active = idx
	s.painter.DrawTarget(idx, TargetActivated)
	return MoveCommitted
}

// Release ends the gesture and returns the path as a password. ok is false
// when no gesture was tracking. The caller must call Reset once the password
// has been classified.
func (s *Session) Release() (password string, ok bool) {
	if !s.tracking {
		return "", false
	}
	s.tracking = false
	return s.path.Password(), true
}

// Reset clears the preview, empties the path and schedules the deferred visual
// clear after delay.
func (s *Session) Reset(delay time.Duration) {
	s.tracking = false
	s.active = -1
	s.path.Reset()
	s.painter.ClearPreview()
	s.painter.ClearAfterDelay(delay)
}
