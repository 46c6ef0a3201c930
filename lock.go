package patternlock

import (
	"fmt"
	"log/slog"
	"time"
)

// Lock is a pattern-lock widget: a grid of targets the user drags across to
// set or validate a gesture password.
//
// Lock is not safe for concurrent use. All methods must be called from the
// goroutine that owns the drawing surface, normally the ebiten Update loop.
type Lock struct {
	layout   Layout
	viewport Viewport
	surface  Surface
	painter  *Painter
	session  *Session
	machine  *Machine

	outcomes   outcomeRegistry
	notifier   Notifier
	store      Store
	storeKey   string
	log        *slog.Logger
	clearDelay time.Duration
	enabled    bool

	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner
	shots       []string
}

// New creates a Lock that draws into surface. A nil cfg selects
// DefaultConfig. New fails with ErrNoSurface before drawing anything when
// surface is nil, and with an error wrapping ErrInvalidConfig when cfg does not
// validate. When cfg.CorrectPassword is empty the stored password is loaded
// from cfg.Store.
func New(surface Surface, cfg *Config) (*Lock, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Lock{
		layout:     cfg.Layout.Build(),
		viewport:   cfg.Viewport,
		surface:    surface,
		notifier:   cfg.Notifier,
		store:      cfg.Store,
		storeKey:   cfg.storeKey(),
		log:        cfg.logger(),
		clearDelay: time.Duration(cfg.ClearDelay),
		enabled:    true,
	}
	if l.viewport.Width == 0 || l.viewport.Height == 0 {
		w, h := surface.Size()
		s := l.viewport.scale()
		l.viewport.Width, l.viewport.Height = float64(w)/s, float64(h)/s
	}

	stored := cfg.CorrectPassword
	if stored == "" && l.store != nil {
		v, ok, err := l.store.Get(l.storeKey)
		if err != nil {
			return nil, fmt.Errorf("load password: %w", err)
		}
		if ok {
			stored = v
		}
	}

	l.machine = NewMachine(cfg.Mode, cfg.MinLength, stored)
	l.painter = NewPainter(surface, &l.layout, cfg.Style)
	l.session = NewSession(&l.layout, l.painter)
	l.painter.DrawGrid()

	l.log.Debug("pattern lock ready",
		"mode", l.machine.Mode().String(),
		"targets", l.layout.Len(),
		"min_length", cfg.MinLength,
		"stored", stored != "")
	return l, nil
}

// OnOutcome registers a callback invoked synchronously for every classified
// gesture.
func (l *Lock) OnOutcome(fn func(Outcome)) CallbackHandle {
	return l.outcomes.add(fn)
}

// SetMode switches to set mode, discarding a half-finished confirmation.
func (l *Lock) SetMode() {
	_ = l.machine.Force(ModeSet)
	l.log.Debug("mode forced", "mode", ModeSet.String())
}

// ValidateMode switches to validate mode.
func (l *Lock) ValidateMode() {
	_ = l.machine.Force(ModeValidate)
	l.log.Debug("mode forced", "mode", ModeValidate.String())
}

// Mode returns the current state machine mode.
func (l *Lock) Mode() Mode {
	return l.machine.Mode()
}

// Enable starts accepting pointer presses. It is a no-op when already enabled.
func (l *Lock) Enable() {
	l.enabled = true
}

// Disable stops accepting new pointer presses. A gesture already in progress
// runs to completion. It is a no-op when already disabled.
func (l *Lock) Disable() {
	l.enabled = false
}

// Enabled reports whether presses are accepted.
func (l *Lock) Enabled() bool {
	return l.enabled
}

// Press handles a pointer press at screen coordinates (x, y). It returns true
// when a gesture started.
func (l *Lock) Press(x, y float64) bool {
	if !l.enabled {
		return false
	}
	if !l.session.Press(l.viewport.Normalize(x, y)) {
		return false
	}
	idx, _ := l.session.Active()
	l.log.Debug("gesture started", "target", idx, "generation", l.painter.Generation())
	return true
}

// Move handles a pointer move at screen coordinates (x, y).
func (l *Lock) Move(x, y float64) MoveResult {
	r := l.session.Move(l.viewport.Normalize(x, y))
	if r == MoveCommitted {
		idx, _ := l.session.Active()
		l.log.Debug("target selected", "target", idx, "length", l.session.Path().Len())
	}
	return r
}

// Release ends the current gesture, classifies it and notifies outcome
// callbacks. Afterwards the path is reset and the drawing is scheduled to
// clear whatever the classification returned.
//
// Release returns ErrNoPassword when validating without a stored password, and
// a wrapped Store error when a confirmed password could not be persisted.
// Releasing without an active gesture does nothing.
func (l *Lock) Release() error {
	password, ok := l.session.Release()
	if !ok {
		return nil
	}
	defer l.session.Reset(l.clearDelay)

	mode := l.machine.Mode()
	out, err := l.machine.Submit(password)
	if err != nil {
		l.log.Error("gesture rejected", "mode", mode.String(), "err", err)
		return err
	}
	l.log.Info("gesture classified",
		"mode", mode.String(),
		"outcome", out.Kind.String(),
		"length", len(password))

	l.outcomes.emit(out)
	if l.notifier != nil {
		l.notifier.Notify(out)
	}

	if out.Kind == Confirmed && l.store != nil {
		if err := l.store.Set(l.storeKey, out.Password); err != nil {
			l.log.Warn("persist password failed", "key", l.storeKey, "err", err)
			return fmt.Errorf("persist password: %w", err)
		}
	}
	return nil
}

// Cancel ends the current gesture exactly like Release. It exists for touch
// cancellation, which pattern locks treat as lifting the finger.
func (l *Lock) Cancel() error {
	return l.Release()
}

// Update advances the lock by dt seconds: it steps an attached TestRunner,
// consumes at most one injected pointer event and advances the deferred clear.
func (l *Lock) Update(dt float32) error {
	if l.testRunner != nil {
		if err := l.testRunner.step(l); err != nil {
			return err
		}
	}
	if _, err := l.processInjectedInput(); err != nil {
		return err
	}
	l.painter.Update(dt)
	return nil
}

// Tracking reports whether a gesture is in progress.
func (l *Lock) Tracking() bool {
	return l.session.Tracking()
}

// Path returns the targets selected so far in the current gesture.
func (l *Lock) Path() []int {
	return l.session.Path().Indices()
}

// Stored returns the committed password, if any.
func (l *Lock) Stored() (string, bool) {
	return l.machine.Stored()
}

// Alpha is the opacity to composite the committed layers with while a
// finished pattern fades out.
func (l *Lock) Alpha() float64 {
	return l.painter.Alpha()
}

// Layout returns the target layout.
func (l *Lock) Layout() *Layout {
	return &l.layout
}

// Viewport returns where the surface sits on screen.
func (l *Lock) Viewport() Viewport {
	return l.viewport
}

// Surface returns the surface the lock draws into.
func (l *Lock) Surface() Surface {
	return l.surface
}

// ApplyConfig applies the hot-reloadable parts of cfg: style, minimum length
// and clear delay. Mode, layout and storage are fixed at construction.
func (l *Lock) ApplyConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.machine.SetMinLength(cfg.MinLength)
	l.clearDelay = time.Duration(cfg.ClearDelay)
	l.ApplyStyle(cfg.Style)
	l.log.Info("config applied", "min_length", cfg.MinLength)
	return nil
}

// ApplyStyle replaces the cosmetic style and redraws the grid together with
// any pattern still on screen. A gesture in progress is not interrupted.
func (l *Lock) ApplyStyle(st Style) {
	l.painter.SetStyle(st)
}
