package patternlock

import "fmt"

// Machine is the set / confirm / validate state machine. It classifies each
// completed password and tracks the pending first entry and the stored
// password.
type Machine struct {
	mode      Mode
	minLength int
	pending   string
	stored    string
}

// NewMachine returns a machine starting in mode. stored may be empty.
func NewMachine(mode Mode, minLength int, stored string) *Machine {
	if minLength < 1 {
		minLength = 1
	}
	return &Machine{mode: mode, minLength: minLength, stored: stored}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// MinLength returns the minimum accepted pattern length in set mode.
func (m *Machine) MinLength() int {
	return m.minLength
}

// SetMinLength changes the minimum pattern length. Values below 1 become 1.
func (m *Machine) SetMinLength(n int) {
	if n < 1 {
		n = 1
	}
	m.minLength = n
}

// Stored returns the committed password and whether one exists.
func (m *Machine) Stored() (string, bool) {
	return m.stored, m.stored != ""
}

// SetStored replaces the committed password, e.g. from persistent storage.
func (m *Machine) SetStored(password string) {
	m.stored = password
}

// Force switches to ModeSet or ModeValidate regardless of the current state.
// Forcing set mode discards a pending first entry.
func (m *Machine) Force(mode Mode) error {
	switch mode {
	case ModeSet:
		m.pending = ""
	case ModeValidate:
	default:
		return fmt.Errorf("cannot force mode %s", mode)
	}
	m.mode = mode
	return nil
}

// Submit classifies a completed password against the current mode and
// performs the resulting transition. It returns ErrNoPassword in validate mode
// when nothing has been stored; the mode is left unchanged.
func (m *Machine) Submit(password string) (Outcome, error) {
	switch m.mode {
	case ModeSet:
		if len(password) < m.minLength {
			return Outcome{Kind: TooShort, Password: password}, nil
		}
		m.pending = password
		m.mode = ModeConfirm
		return Outcome{Kind: AwaitingConfirmation, Password: password}, nil

	case ModeConfirm:
		first := m.pending
		m.pending = ""
		m.mode = ModeSet
		if password != first {
			return Outcome{Kind: Mismatch, Password: password}, nil
		}
		m.stored = password
		return Outcome{Kind: Confirmed, Password: password}, nil

	case ModeValidate:
		if m.stored == "" {
			return Outcome{}, ErrNoPassword
		}
		if password != m.stored {
			return Outcome{Kind: ValidationFailed, Password: password}, nil
		}
		return Outcome{Kind: ValidationSucceeded}, nil
	}
	return Outcome{}, fmt.Errorf("unknown mode %s", m.mode)
}
