package patternlock

import (
	"errors"
	"fmt"
	"math"
)

// HitShape selects the hit-test predicate applied to every target of a Layout.
type HitShape uint8

const (
	// HitCircle hits when the squared distance to the target center is strictly
	// less than the squared radius.
	HitCircle HitShape = iota
	// HitSquare hits inside the axis-aligned square of half-width radius.
	HitSquare
)

// String returns the config name of the shape.
func (h HitShape) String() string {
	switch h {
	case HitCircle:
		return "circle"
	case HitSquare:
		return "square"
	default:
		return fmt.Sprintf("shape(%d)", uint8(h))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h HitShape) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HitShape) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "circle":
		*h = HitCircle
	case "square":
		*h = HitSquare
	default:
		return fmt.Errorf("unknown hit shape %q (want circle or square)", text)
	}
	return nil
}

// contains reports whether the offset (dx, dy) from a target center lies inside
// a target of radius r.
func (h HitShape) contains(dx, dy, r float64) bool {
	if h == HitSquare {
		return math.Abs(dx) < r && math.Abs(dy) < r
	}
	return dx*dx+dy*dy < r*r
}

// Target is one selectable grid point. Center and Radius are in normalized
// surface units, where (0,0) is the top-left and (1,1) the bottom-right corner.
type Target struct {
	Index  int
	Center Vec2
	Radius float64
}

// Layout is the immutable set of targets a gesture is hit-tested against.
type Layout struct {
	Targets []Target
	Shape   HitShape
	// MarkerRadius is the radius of the filled dot drawn on activated targets.
	MarkerRadius float64
}

// Default geometry of the classic 3x3 pattern grid.
const (
	DefaultTargetRadius = 0.07
	DefaultMarkerRadius = 0.05
	defaultGridMargin   = 0.15
)

// DefaultLayout returns the 3x3 grid with targets at 0.15, 0.5 and 0.85 on each
// axis, indexed row-major from the top-left.
func DefaultLayout() Layout {
	return GridLayout(3, defaultGridMargin, DefaultTargetRadius)
}

// GridLayout returns an n x n grid whose outer targets sit margin units from the
// surface edges. Targets are indexed row-major.
func GridLayout(n int, margin, radius float64) Layout {
	l := Layout{MarkerRadius: radius * DefaultMarkerRadius / DefaultTargetRadius}
	if n <= 0 {
		return l
	}
	step := 0.0
	if n > 1 {
		step = (1 - 2*margin) / float64(n-1)
	}
	l.Targets = make([]Target, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Vec2{X: margin + step*float64(col), Y: margin + step*float64(row)}
			if n == 1 {
				c = Vec2{X: 0.5, Y: 0.5}
			}
			l.Targets = append(l.Targets, Target{Index: len(l.Targets), Center: c, Radius: radius})
		}
	}
	return l
}

// LayoutFromCenters builds a layout from explicit normalized centers, all
// sharing the same hit radius.
func LayoutFromCenters(centers []Vec2, radius, markerRadius float64) Layout {
	l := Layout{Targets: make([]Target, len(centers)), MarkerRadius: markerRadius}
	for i, c := range centers {
		l.Targets[i] = Target{Index: i, Center: c, Radius: radius}
	}
	return l
}

// Len returns the number of targets.
func (l *Layout) Len() int {
	return len(l.Targets)
}

// Target returns the target with the given index.
func (l *Layout) Target(i int) Target {
	return l.Targets[i]
}

// Hit returns the index of the first target containing the normalized point p,
// skipping every target for which exclude returns true. exclude may be nil.
func (l *Layout) Hit(p Vec2, exclude func(int) bool) (int, bool) {
	for i := range l.Targets {
		t := &l.Targets[i]
		if exclude != nil && exclude(t.Index) {
			continue
		}
		if l.Shape.contains(p.X-t.Center.X, p.Y-t.Center.Y, t.Radius) {
			return t.Index, true
		}
	}
	return -1, false
}

var errEmptyLayout = errors.New("layout has no targets")

// Validate checks that the layout is usable: at least one target, indices equal
// to positions, positive radii.
func (l *Layout) Validate() error {
	if len(l.Targets) == 0 {
		return errEmptyLayout
	}
	for i, t := range l.Targets {
		if t.Index != i {
			return fmt.Errorf("target %d has index %d", i, t.Index)
		}
		if t.Radius <= 0 {
			return fmt.Errorf("target %d: radius must be positive, got %v", i, t.Radius)
		}
	}
	if l.MarkerRadius < 0 {
		return fmt.Errorf("marker radius must not be negative, got %v", l.MarkerRadius)
	}
	return nil
}
