// Command patternlock-script plays a JSON gesture script against a pattern
// lock without opening a window. Screenshots requested by the script are
// rendered with the software rasterizer, and every classified gesture is
// logged.
//
// Usage:
//
//	patternlock-script [-c config.toml] [-db lock.db] [-o screenshots] script.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/phanxgames/patternlock"
	"github.com/phanxgames/patternlock/sqlitestore"
)

// maxFrames bounds a script that never finishes, for example one that waits
// forever on a disabled lock.
const maxFrames = 100_000

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("c", "", "config file (TOML, JSON or YAML)")
	dbPath := flag.String("db", "", "SQLite file holding the password (default: in memory)")
	outDir := flag.String("o", patternlock.DefaultScreenshotDir, "screenshot directory")
	tps := flag.Int("tps", 60, "simulated ticks per second")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] script.json\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "patternlock-script: %v\n", err)
		return 1
	}
	runner, err := patternlock.LoadTestScript(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "patternlock-script: %v\n", err)
		return 1
	}

	cfg := patternlock.DefaultConfig()
	if *configPath != "" {
		if cfg, err = patternlock.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "patternlock-script: %v\n", err)
			return 1
		}
	}

	dsn := *dbPath
	if dsn == "" {
		dsn = ":memory:"
	}
	store, err := sqlitestore.Open(dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "patternlock-script: %v\n", err)
		return 1
	}
	defer store.Close()

	cfg.Store = store
	cfg.Logger = logger

	bw, bh := cfg.Viewport.BackingSize()
	surface := patternlock.NewRasterSurface(bw, bh, patternlock.ColorWhite)
	lock, err := patternlock.New(surface, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "patternlock-script: %v\n", err)
		return 1
	}

	counts := make(map[patternlock.OutcomeKind]int)
	lock.OnOutcome(func(o patternlock.Outcome) {
		counts[o.Kind]++
	})
	lock.SetTestRunner(runner)

	if *tps <= 0 {
		*tps = 60
	}
	dt := float32(1.0 / float64(*tps))

	frames := 0
	for ; !runner.Done(); frames++ {
		if frames >= maxFrames {
			fmt.Fprintf(os.Stderr, "patternlock-script: script did not finish after %d frames\n", maxFrames)
			return 1
		}
		if err := lock.Update(dt); err != nil {
			if errors.Is(err, patternlock.ErrNoPassword) {
				fmt.Fprintln(os.Stderr, "patternlock-script: validate step reached with no password set")
			} else {
				fmt.Fprintf(os.Stderr, "patternlock-script: %v\n", err)
			}
			return 1
		}
		shot := func() image.Image { return surface.Image() }
		if err := lock.SaveScreenshots(*outDir, shot); err != nil {
			return 1
		}
	}

	logger.Info("script finished",
		"frames", frames,
		"confirmed", counts[patternlock.Confirmed],
		"correct", counts[patternlock.ValidationSucceeded],
		"wrong", counts[patternlock.ValidationFailed],
		"mismatch", counts[patternlock.Mismatch],
		"short", counts[patternlock.TooShort])
	return 0
}
