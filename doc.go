// Package patternlock is a gesture-password ("pattern lock") widget for
// [Ebitengine] and headless hosts.
//
// A Lock shows a grid of targets. The user presses on one target and drags
// across others; every target touched joins the pattern at most once, and the
// pattern becomes a digit string such as "0124" when the pointer is released.
//
// # Quick start
//
//	surface := patternlock.NewEbitenSurface(600, 600)
//	cfg := patternlock.DefaultConfig()
//	lock, err := patternlock.New(surface, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	lock.OnOutcome(func(o patternlock.Outcome) {
//		fmt.Println(o.Kind, o.Password)
//	})
//	log.Fatal(patternlock.Run(lock, surface, patternlock.RunConfig{Title: "Unlock"}))
//
// # Modes
//
// In set mode the first pattern of at least Config.MinLength targets is held
// and AwaitingConfirmation is reported; repeating it yields Confirmed and the
// pattern is stored (and written to Config.Store), a different pattern yields
// Mismatch. Both return the lock to set mode. In validate mode every pattern
// is compared with the stored one, yielding ValidationSucceeded or
// ValidationFailed. Validating with nothing stored is a setup error reported
// as ErrNoPassword.
//
// # Surfaces
//
// Rendering goes through the [Surface] capability. [EbitenSurface] keeps one
// offscreen image per layer; [RasterSurface] draws into a single image.RGBA
// without a graphics context; [Recorder] records calls for tests.
//
// [Ebitengine]: https://ebitengine.org
package patternlock
