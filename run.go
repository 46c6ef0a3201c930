package patternlock

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    Color
	// ScreenshotDir receives screenshots queued with Lock.Screenshot.
	ScreenshotDir string
	// Update, if set, runs after the lock each tick.
	Update func() error
	// Overlay, if set, draws on top of the lock each frame.
	Overlay func(screen *ebiten.Image)
	// ExitWhenScriptDone ends the game once an attached TestRunner finishes.
	ExitWhenScriptDone bool
}

// Run opens a window and drives lock from real mouse and touch input until the
// window is closed. surface must be the EbitenSurface the lock draws into.
func Run(lock *Lock, surface *EbitenSurface, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		vp := lock.Viewport()
		cfg.Width = int(vp.X*2 + vp.Width)
		cfg.Height = int(vp.Y*2 + vp.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{lock: lock, surface: surface, cfg: cfg})
}

type game struct {
	lock    *Lock
	surface *EbitenSurface
	input   PointerInput
	cfg     RunConfig
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if err := g.lock.Update(dt); err != nil {
		return err
	}
	if err := g.input.Update(g.lock); err != nil {
		return err
	}
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	if g.cfg.ExitWhenScriptDone && g.lock.testRunner != nil && g.lock.testRunner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.RGBA())
	g.surface.Composite(screen, g.lock.Viewport(), g.lock.Alpha())
	if g.cfg.Overlay != nil {
		g.cfg.Overlay(screen)
	}
	// Failures are logged by the lock and do not stop the frame.
	_ = g.lock.SaveScreenshots(g.cfg.ScreenshotDir, func() image.Image {
		return readScreen(screen)
	})
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// readScreen copies the rendered frame into a straight-alpha image.
func readScreen(screen *ebiten.Image) image.Image {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	for i := 0; i < len(pixels); i += 4 {
		r, gr, bl, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			gr = uint8(min(int(gr)*255/int(a), 255))
			bl = uint8(min(int(bl)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, gr, bl, a
	}
	return img
}
