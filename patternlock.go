package patternlock

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a surface.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is an opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ParseHexColor parses CSS-style hex colors: #rgb, #rrggbb or #rrggbbaa.
// The leading '#' is optional.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("parse color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustParseHexColor is like ParseHexColor but panics on malformed input.
// Intended for package-level defaults.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	r, g, b, a := to8(c.R), to8(c.G), to8(c.B), to8(c.A)
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// MarshalText implements encoding.TextMarshaler so colors round-trip through
// TOML, YAML and JSON config files as hex strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RGBA returns the premultiplied color.Color for this color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: to8(c.R * c.A),
		G: to8(c.G * c.A),
		B: to8(c.B * c.A),
		A: to8(c.A),
	}
}

// WithAlpha returns a copy of c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D point or vector. Depending on context it is expressed in screen
// pixels, backing-store pixels or normalized surface units.
type Vec2 struct {
	X, Y float64
}

// Mode is the operating mode of the lock state machine.
type Mode uint8

const (
	ModeSet      Mode = iota // recording a new pattern
	ModeConfirm              // waiting for the pattern to be repeated
	ModeValidate             // checking gestures against the stored pattern
)

// String returns the lowercase mode name. Confirm is reported as "again".
func (m Mode) String() string {
	switch m {
	case ModeSet:
		return "set"
	case ModeConfirm:
		return "again"
	case ModeValidate:
		return "validate"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode converts a config or script mode name into a Mode. Only the modes a
// caller may select directly are accepted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "set":
		return ModeSet, nil
	case "validate":
		return ModeValidate, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want set or validate)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Layer identifies an independently clearable drawing region of a Surface.
type Layer uint8

const (
	LayerGrid    Layer = iota // target outlines in their default state
	LayerPath                 // committed segments between selected targets
	LayerMarks                // activated target highlights, drawn above the path
	LayerPreview              // rubber-band line to the live pointer
	layerCount
)

// TargetState selects how a target is drawn.
type TargetState uint8

const (
	TargetDefault   TargetState = iota // unselected outline
	TargetActivated                    // selected: filled marker plus highlighted outline
)
