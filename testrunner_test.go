package patternlock

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "gesture", "targets": [0, 1, 2, 4], "steps": 3},
			{"action": "wait", "frames": 3},
			{"action": "mode", "mode": "validate"},
			{"action": "press", "x": 45, "y": 45}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if st := runner.steps[1]; st.Action != "gesture" || len(st.Targets) != 4 || st.Steps != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[4].X != 45 || runner.steps[4].Y != 45 {
		t.Error("step 4 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"bad mode", `{"steps": [{"action": "mode", "mode": "again"}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadTestScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func runScript(t *testing.T, l *Lock, script string) {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	l.SetTestRunner(runner)
	for i := 0; !runner.Done(); i++ {
		if i > 1000 {
			t.Fatal("script did not finish")
		}
		if err := l.Update(1.0 / 60); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
}

func TestRunnerSetAndValidate(t *testing.T) {
	l, _ := newTestLock(t, nil)
	got := recordOutcomes(l)
	runScript(t, l, `{"steps": [
		{"action": "gesture", "targets": [0, 1, 2, 4]},
		{"action": "gesture", "targets": [0, 1, 2, 4]},
		{"action": "mode", "mode": "validate"},
		{"action": "gesture", "targets": [0, 1, 2, 4]},
		{"action": "gesture", "targets": [6, 7, 8, 5]}
	]}`)

	want := []OutcomeKind{AwaitingConfirmation, Confirmed, ValidationSucceeded, ValidationFailed}
	if ks := kinds(*got); len(ks) != len(want) {
		t.Fatalf("outcomes = %v, want %v", ks, want)
	}
	for i, k := range want {
		if (*got)[i].Kind != k {
			t.Errorf("outcome %d = %v, want %v", i, (*got)[i].Kind, k)
		}
	}
}

func TestRunnerWaitAndScreenshot(t *testing.T) {
	l, _ := newTestLock(t, nil)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after-wait"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	l.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		l.Update(0)
		if len(l.shots) != 0 {
			t.Fatalf("screenshot queued on frame %d, before the wait ended", i)
		}
	}
	l.Update(0)
	if shots := l.TakeScreenshots(); len(shots) != 1 || shots[0] != "after-wait" {
		t.Errorf("shots = %v, want [after-wait]", shots)
	}
	if !runner.Done() {
		t.Error("runner should be done after its last step")
	}
}

func TestRunnerDisable(t *testing.T) {
	l, _ := newTestLock(t, nil)
	got := recordOutcomes(l)
	runScript(t, l, `{"steps": [
		{"action": "disable"},
		{"action": "gesture", "targets": [0, 1, 2, 4]},
		{"action": "enable"},
		{"action": "gesture", "targets": [0, 1, 2, 4]}
	]}`)
	if len(*got) != 1 {
		t.Errorf("outcomes = %v, want only the gesture made while enabled", kinds(*got))
	}
}
