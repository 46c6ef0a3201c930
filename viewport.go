package patternlock

import "math"

// Viewport places a surface on screen. X and Y are the surface origin in screen
// pixels, Width and Height its logical (CSS-like) size, and Scale the number of
// backing-store pixels per logical pixel. A zero Scale is treated as 1.
type Viewport struct {
	X      float64 `toml:"x" json:"x" yaml:"x"`
	Y      float64 `toml:"y" json:"y" yaml:"y"`
	Width  float64 `toml:"width" json:"width" yaml:"width"`
	Height float64 `toml:"height" json:"height" yaml:"height"`
	Scale  float64 `toml:"scale" json:"scale" yaml:"scale"`
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// BackingSize returns the raster size a surface needs for this viewport.
func (v Viewport) BackingSize() (w, h int) {
	s := v.scale()
	return int(math.Round(v.Width * s)), int(math.Round(v.Height * s))
}

// ToSurface converts a screen coordinate into backing-store pixels relative to
// the surface origin.
func (v Viewport) ToSurface(sx, sy float64) Vec2 {
	s := v.scale()
	return Vec2{X: (sx - v.X) * s, Y: (sy - v.Y) * s}
}

// Normalize converts a screen coordinate into normalized surface units. Each
// axis is divided independently since the surface need not be square. The
// result is not clamped: points off the surface fall outside [0,1].
func (v Viewport) Normalize(sx, sy float64) Vec2 {
	p := v.ToSurface(sx, sy)
	s := v.scale()
	bw, bh := v.Width*s, v.Height*s
	if bw == 0 || bh == 0 {
		return Vec2{X: math.Inf(1), Y: math.Inf(1)}
	}
	return Vec2{X: p.X / bw, Y: p.Y / bh}
}

// ToScreen is the inverse of Normalize.
func (v Viewport) ToScreen(n Vec2) Vec2 {
	return Vec2{X: v.X + n.X*v.Width, Y: v.Y + n.Y*v.Height}
}
