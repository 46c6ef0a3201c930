package patternlock

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Style holds the purely cosmetic drawing parameters. Widths are in backing
// pixels.
type Style struct {
	LineColor            Color   `toml:"line_color" json:"lineColor" yaml:"line_color"`
	LineWidth            float64 `toml:"line_width" json:"lineWidth" yaml:"line_width"`
	DefaultCircleColor   Color   `toml:"default_circle_color" json:"defaultCircleColor" yaml:"default_circle_color"`
	ActivatedCircleColor Color   `toml:"activated_circle_color" json:"activatedCircleColor" yaml:"activated_circle_color"`
	PointColor           Color   `toml:"point_color" json:"pointColor" yaml:"point_color"`
	CircleWidth          float64 `toml:"circle_width" json:"circleWidth" yaml:"circle_width"`
}

// DefaultStyle returns the stock blue-on-grey look.
func DefaultStyle() Style {
	return Style{
		LineColor:            MustParseHexColor("#8ac7fd"),
		LineWidth:            5,
		DefaultCircleColor:   MustParseHexColor("#aaa"),
		ActivatedCircleColor: MustParseHexColor("#38a6fd"),
		PointColor:           MustParseHexColor("#38a6fd"),
		CircleWidth:          2,
	}
}

// LayoutConfig is the serializable form of a Layout. An empty Centers list
// selects the default 3x3 grid.
type LayoutConfig struct {
	Centers      [][2]float64 `toml:"centers" json:"centers" yaml:"centers"`
	CircleRadius float64      `toml:"circle_radius" json:"circleRadius" yaml:"circle_radius"`
	PointRadius  float64      `toml:"point_radius" json:"pointRadius" yaml:"point_radius"`
	HitShape     HitShape     `toml:"hit_shape" json:"hitShape" yaml:"hit_shape"`
}

// Build converts the config into a Layout.
func (lc LayoutConfig) Build() Layout {
	var l Layout
	if len(lc.Centers) == 0 {
		l = GridLayout(3, defaultGridMargin, lc.CircleRadius)
	} else {
		centers := make([]Vec2, len(lc.Centers))
		for i, c := range lc.Centers {
			centers[i] = Vec2{X: c[0], Y: c[1]}
		}
		l = LayoutFromCenters(centers, lc.CircleRadius, lc.PointRadius)
	}
	l.MarkerRadius = lc.PointRadius
	l.Shape = lc.HitShape
	return l
}

// Duration is a time.Duration that reads and writes as a Go duration string
// ("500ms") in every config format.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Config configures a Lock.
type Config struct {
	Mode      Mode `toml:"mode" json:"mode" yaml:"mode"`
	MinLength int  `toml:"min_length" json:"minLength" yaml:"min_length"`

	// CorrectPassword pre-seeds the stored password, typically for validate
	// mode. When empty the password is read from Store.
	CorrectPassword string `toml:"correct_password" json:"correctPassword" yaml:"correct_password"`

	Layout   LayoutConfig `toml:"layout" json:"layout" yaml:"layout"`
	Style    Style        `toml:"style" json:"style" yaml:"style"`
	Viewport Viewport     `toml:"viewport" json:"viewport" yaml:"viewport"`

	// ClearDelay is how long a finished pattern stays on screen.
	ClearDelay Duration `toml:"clear_delay" json:"clearDelay" yaml:"clear_delay"`

	StoreKey string `toml:"store_key" json:"storeKey" yaml:"store_key"`

	// Store persists the password. Nil keeps it in memory only.
	Store Store `toml:"-" json:"-" yaml:"-"`
	// Notifier receives every outcome in addition to OnOutcome callbacks.
	Notifier Notifier `toml:"-" json:"-" yaml:"-"`
	// Logger receives structured diagnostics. Nil discards them.
	Logger *slog.Logger `toml:"-" json:"-" yaml:"-"`
}

// Default sizing of the demo surface.
const (
	DefaultSurfaceSize  = 300
	DefaultSurfaceScale = 2
	DefaultMinLength    = 5
)

// DefaultConfig returns the stock configuration: set mode, five-target minimum,
// 3x3 circular grid.
func DefaultConfig() *Config {
	return &Config{
		Mode:      ModeSet,
		MinLength: DefaultMinLength,
		Layout: LayoutConfig{
			CircleRadius: DefaultTargetRadius,
			PointRadius:  DefaultMarkerRadius,
			HitShape:     HitCircle,
		},
		Style: DefaultStyle(),
		Viewport: Viewport{
			Width:  DefaultSurfaceSize,
			Height: DefaultSurfaceSize,
			Scale:  DefaultSurfaceScale,
		},
		ClearDelay: Duration(DefaultClearDelay),
		StoreKey:   DefaultStoreKey,
	}
}

// Validate checks the configuration. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if c.Mode != ModeSet && c.Mode != ModeValidate {
		errs = append(errs, fmt.Errorf("mode must be set or validate, got %s", c.Mode))
	}
	if c.MinLength < 1 {
		errs = append(errs, fmt.Errorf("min_length must be at least 1, got %d", c.MinLength))
	}
	l := c.Layout.Build()
	if err := l.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("layout: %w", err))
	} else if l.Len() <= 10 && c.MinLength > l.Len() {
		errs = append(errs, fmt.Errorf("min_length %d exceeds the %d available targets", c.MinLength, l.Len()))
	}
	if c.Style.LineWidth < 0 || c.Style.CircleWidth < 0 {
		errs = append(errs, errors.New("style widths must not be negative"))
	}
	if c.ClearDelay < 0 {
		errs = append(errs, fmt.Errorf("clear_delay must not be negative, got %s", time.Duration(c.ClearDelay)))
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 || c.Viewport.Scale < 0 {
		errs = append(errs, errors.New("viewport dimensions must not be negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// LoadConfig reads a TOML, JSON or YAML file, chosen by extension, on top of
// DefaultConfig and validates the result. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := parseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseConfig(data []byte, ext string) (*Config, error) {
	cfg := DefaultConfig()
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		// TOML is the documented format; fall back to JSON.
		if _, err := toml.Decode(string(data), cfg); err != nil {
			cfg = DefaultConfig()
			if jerr := json.Unmarshal(data, cfg); jerr != nil {
				return nil, fmt.Errorf("parse config: not TOML (%v) or JSON (%v)", err, jerr)
			}
		}
	}
	return cfg, nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (c *Config) storeKey() string {
	if c.StoreKey == "" {
		return DefaultStoreKey
	}
	return c.StoreKey
}
