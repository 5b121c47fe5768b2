package core

// Action represents a semantic host action, abstracted from physical devices.
type Action int

const (
	ActionNone     Action = iota
	ActionActivate        // Space/Up/W, primary mouse button, first touch - flap, start, continue
	ActionQuit            // Q, Esc, Ctrl+C - leave the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionActivate:
		return "Activate"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Source identifies a physical input device that can raise an activation.
type Source uint8

const (
	SourceKeyboard Source = 1 << iota
	SourceMouse
	SourceTouch
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "Keyboard"
	case SourceMouse:
		return "Mouse"
	case SourceTouch:
		return "Touch"
	default:
		return "Unknown"
	}
}

// InputFrame is the normalized input for one simulation tick.
// Any number of device presses within a tick collapse into a single activation edge.
type InputFrame struct {
	activated bool
	quit      bool
	sources   Source // devices that produced a press edge this frame
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	switch a {
	case ActionActivate:
		f.activated = true
	case ActionQuit:
		f.quit = true
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	switch a {
	case ActionActivate:
		return f.activated
	case ActionQuit:
		return f.quit
	default:
		return false
	}
}

// Activated reports whether an activation edge happened this frame.
func (f InputFrame) Activated() bool {
	return f.activated
}

// From reports whether the given device contributed to this frame's activation.
func (f InputFrame) From(s Source) bool {
	return f.sources&s != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// Normalizer turns raw device state into per-frame activation edges.
// Hosts that report press and release (mouse buttons, touches) use Press/Release;
// hosts that only report key presses use Tap.
type Normalizer struct {
	down    Source // devices currently held
	pressed Source // press edges since the last Frame call
	quit    bool
}

// NewNormalizer creates a normalizer with no devices held.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Press records that a device went down. Repeats while held are not edges.
func (n *Normalizer) Press(s Source) {
	if n.down&s == 0 {
		n.pressed |= s
	}
	n.down |= s
}

// Release records that a device went up.
func (n *Normalizer) Release(s Source) {
	n.down &^= s
}

// Tap records a press immediately followed by a release.
func (n *Normalizer) Tap(s Source) {
	n.Press(s)
	n.Release(s)
}

// Quit records a quit request for the next frame.
func (n *Normalizer) Quit() {
	n.quit = true
}

// Frame returns the input for the frame that just ended and starts a new one.
func (n *Normalizer) Frame() InputFrame {
	f := InputFrame{
		activated: n.pressed != 0,
		quit:      n.quit,
		sources:   n.pressed,
	}
	n.pressed = 0
	n.quit = false
	return f
}
