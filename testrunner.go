package patternlock

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a gesture script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Targets []int   `json:"targets,omitempty"`
	Steps   int     `json:"steps,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Mode    string  `json:"mode,omitempty"`
}

// testScript is the top-level JSON structure for a gesture script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted sequence of gestures, mode switches and
// screenshots against a Lock, one step per frame. Attach it with
// Lock.SetTestRunner.
//
// Supported actions: press, move, release (x, y in screen pixels), gesture
// (targets, optional steps), wait (frames), mode (set or validate), enable,
// disable and screenshot (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON gesture script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "gesture", "wait", "enable", "disable", "screenshot":
		case "mode":
			if _, err := ParseMode(st.Mode); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. It is stepped at the start of every
// Lock.Update.
func (l *Lock) SetTestRunner(runner *TestRunner) {
	l.testRunner = runner
}

// Done reports whether all steps have been executed and their injected input
// consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(l *Lock) error {
	if r.done {
		return nil
	}
	// Wait for pending injections to drain before advancing.
	if l.Injecting() {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		l.InjectPress(st.X, st.Y)
	case "move":
		l.InjectMove(st.X, st.Y)
	case "release":
		l.InjectRelease(st.X, st.Y)
	case "gesture":
		l.InjectGesture(st.Targets, st.Steps)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mode":
		mode, err := ParseMode(st.Mode)
		if err != nil {
			return err
		}
		if mode == ModeValidate {
			l.ValidateMode()
		} else {
			l.SetMode()
		}
	case "enable":
		l.Enable()
	case "disable":
		l.Disable()
	case "screenshot":
		l.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !l.Injecting() {
		r.done = true
	}
	return nil
}
