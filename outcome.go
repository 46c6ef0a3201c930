package patternlock

import "strconv"

// OutcomeKind tags the result of one completed gesture.
type OutcomeKind uint8

const (
	TooShort             OutcomeKind = iota // set mode, fewer targets than MinLength
	AwaitingConfirmation                    // first pattern accepted, repeat it to confirm
	Mismatch                                // confirmation differs from the first pattern
	Confirmed                               // pattern confirmed and stored
	ValidationFailed                        // pattern differs from the stored one
	ValidationSucceeded                     // pattern matches the stored one
)

// String returns the short event name used by hosts and scripts.
func (k OutcomeKind) String() string {
	switch k {
	case TooShort:
		return "short"
	case AwaitingConfirmation:
		return "init"
	case Mismatch:
		return "diff"
	case Confirmed:
		return "set"
	case ValidationFailed:
		return "wrong"
	case ValidationSucceeded:
		return "correct"
	default:
		return "outcome(" + strconv.Itoa(int(k)) + ")"
	}
}

// Outcome is the immutable classification of one gesture. Password holds the
// attempted pattern for every kind except ValidationSucceeded; for
// AwaitingConfirmation and Confirmed it is also the pattern being set.
type Outcome struct {
	Kind     OutcomeKind
	Password string
}

// Notifier receives outcomes. Implementations must not draw or store
// passwords themselves.
type Notifier interface {
	Notify(Outcome)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Outcome)

// Notify calls f(o).
func (f NotifierFunc) Notify(o Outcome) { f(o) }

type outcomeHandler struct {
	id uint32
	fn func(Outcome)
}

type outcomeRegistry struct {
	handlers []outcomeHandler
	nextID   uint32
}

func (r *outcomeRegistry) add(fn func(Outcome)) CallbackHandle {
	r.nextID++
	r.handlers = append(r.handlers, outcomeHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

// emit delivers o synchronously to every handler in registration order.
func (r *outcomeRegistry) emit(o Outcome) {
	for _, h := range r.handlers {
		h.fn(o)
	}
}

// CallbackHandle allows removing a registered outcome callback.
type CallbackHandle struct {
	id  uint32
	reg *outcomeRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = outcomeHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}
