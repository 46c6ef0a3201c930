package patternlock

import (
	"errors"
	"testing"
)

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		stored    string
		pending   string
		password  string
		wantKind  OutcomeKind
		wantMode  Mode
		wantStore string
	}{
		{"set too short", ModeSet, "", "", "012", TooShort, ModeSet, ""},
		{"set accepted", ModeSet, "", "", "0124", AwaitingConfirmation, ModeConfirm, ""},
		{"set exact minimum", ModeSet, "", "", "0123", AwaitingConfirmation, ModeConfirm, ""},
		{"confirm match", ModeConfirm, "", "0124", "0124", Confirmed, ModeSet, "0124"},
		{"confirm mismatch", ModeConfirm, "", "0124", "0125", Mismatch, ModeSet, ""},
		{"confirm short mismatch", ModeConfirm, "", "0124", "01", Mismatch, ModeSet, ""},
		{"set too short keeps stored", ModeSet, "8401", "", "01", TooShort, ModeSet, "8401"},
		{"set accepted keeps stored", ModeSet, "8401", "", "0124", AwaitingConfirmation, ModeConfirm, "8401"},
		{"confirm mismatch keeps stored", ModeConfirm, "8401", "0124", "0125", Mismatch, ModeSet, "8401"},
		{"confirm match replaces stored", ModeConfirm, "8401", "0124", "0124", Confirmed, ModeSet, "0124"},
		{"validate ok", ModeValidate, "0124", "", "0124", ValidationSucceeded, ModeValidate, "0124"},
		{"validate wrong", ModeValidate, "0124", "", "0125", ValidationFailed, ModeValidate, "0124"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(tt.mode, 4, tt.stored)
			m.pending = tt.pending
			out, err := m.Submit(tt.password)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if out.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", out.Kind, tt.wantKind)
			}
			if m.Mode() != tt.wantMode {
				t.Errorf("mode = %v, want %v", m.Mode(), tt.wantMode)
			}
			if got, _ := m.Stored(); got != tt.wantStore {
				t.Errorf("stored = %q, want %q", got, tt.wantStore)
			}
		})
	}
}

func TestMachineOutcomePassword(t *testing.T) {
	m := NewMachine(ModeValidate, 4, "0124")
	out, _ := m.Submit("0125")
	if out.Password != "0125" {
		t.Errorf("failed validation should carry the attempt, got %q", out.Password)
	}
	out, _ = m.Submit("0124")
	if out.Password != "" {
		t.Errorf("successful validation should not carry a password, got %q", out.Password)
	}
}

func TestMachineFullFlow(t *testing.T) {
	m := NewMachine(ModeSet, 4, "")
	steps := []struct {
		password string
		want     OutcomeKind
	}{
		{"012", TooShort},
		{"0124", AwaitingConfirmation},
		{"0124", Confirmed},
	}
	for _, s := range steps {
		out, err := m.Submit(s.password)
		if err != nil || out.Kind != s.want {
			t.Fatalf("Submit(%q) = (%v, %v), want %v", s.password, out.Kind, err, s.want)
		}
	}
	if err := m.Force(ModeValidate); err != nil {
		t.Fatal(err)
	}
	if out, _ := m.Submit("0124"); out.Kind != ValidationSucceeded {
		t.Errorf("validate stored = %v", out.Kind)
	}
	if out, _ := m.Submit("0125"); out.Kind != ValidationFailed {
		t.Errorf("validate other = %v", out.Kind)
	}
}

func TestMachineNoPassword(t *testing.T) {
	m := NewMachine(ModeValidate, 4, "")
	_, err := m.Submit("0124")
	if !errors.Is(err, ErrNoPassword) {
		t.Fatalf("err = %v, want ErrNoPassword", err)
	}
	if m.Mode() != ModeValidate {
		t.Errorf("mode changed to %v", m.Mode())
	}
}

func TestMachineForce(t *testing.T) {
	m := NewMachine(ModeSet, 4, "")
	m.Submit("01234")
	if m.Mode() != ModeConfirm {
		t.Fatalf("mode = %v, want again", m.Mode())
	}
	if err := m.Force(ModeSet); err != nil {
		t.Fatal(err)
	}
	// The discarded first entry must not count as a confirmation.
	if out, _ := m.Submit("01234"); out.Kind != AwaitingConfirmation {
		t.Errorf("after Force(set) kind = %v, want init", out.Kind)
	}
	if err := m.Force(ModeConfirm); err == nil {
		t.Error("forcing confirm mode should fail")
	}
}

func TestMachineMinLengthFloor(t *testing.T) {
	m := NewMachine(ModeSet, 0, "")
	if m.MinLength() != 1 {
		t.Errorf("MinLength = %d, want 1", m.MinLength())
	}
	m.SetMinLength(-3)
	if m.MinLength() != 1 {
		t.Errorf("SetMinLength(-3) left %d", m.MinLength())
	}
	if out, _ := m.Submit("7"); out.Kind != AwaitingConfirmation {
		t.Errorf("single target = %v, want init", out.Kind)
	}
}

func TestOutcomeKindString(t *testing.T) {
	want := map[OutcomeKind]string{
		TooShort:             "short",
		AwaitingConfirmation: "init",
		Mismatch:             "diff",
		Confirmed:            "set",
		ValidationFailed:     "wrong",
		ValidationSucceeded:  "correct",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}
