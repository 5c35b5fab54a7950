// Package input implements InputSynthesizer: mouse, keyboard
// and wheel event synthesis against fw.EventDispatcher.
package input

import (
	"fmt"
	"strings"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// Synthesizer drives an fw.EventDispatcher.
type Synthesizer struct {
	dispatcher fw.EventDispatcher
}

// New creates a Synthesizer bound to dispatcher.
func New(dispatcher fw.EventDispatcher) *Synthesizer {
	return &Synthesizer{dispatcher: dispatcher}
}

// ClickKind enumerates the supported click variants.
type ClickKind int

const (
	ClickSingle ClickKind = iota
	ClickDouble
	ClickRight
	ClickMiddle
)

func buttonFor(kind ClickKind) fw.MouseButton {
	switch kind {
	case ClickRight:
		return fw.ButtonRight
	case ClickMiddle:
		return fw.ButtonMiddle
	default:
		return fw.ButtonLeft
	}
}

// Click performs a single/double/right/middle click at local coordinates
// relative to target.
func (s *Synthesizer) Click(target fw.Object, local fw.Point, kind ClickKind) error {
	return s.dispatcher.SimulateClick(target, local, buttonFor(kind), kind == ClickDouble)
}

// Press posts a button-down event without a matching release, for
// multi-step press/move/release sequences.
func (s *Synthesizer) Press(target fw.Object, local fw.Point, button fw.MouseButton) error {
	return s.dispatcher.PostMouseEvent(target, fw.MouseEvent{Kind: fw.MousePress, Button: button, Local: local})
}

// Release posts a button-up event.
func (s *Synthesizer) Release(target fw.Object, local fw.Point, button fw.MouseButton) error {
	return s.dispatcher.PostMouseEvent(target, fw.MouseEvent{Kind: fw.MouseRelease, Button: button, Local: local})
}

// Move posts a pointer-move event.
func (s *Synthesizer) Move(target fw.Object, local fw.Point) error {
	return s.dispatcher.PostMouseEvent(target, fw.MouseEvent{Kind: fw.MouseMove, Local: local})
}

// Drag performs press at from, a sequence of intermediate moves, then
// release at to, pumping the event loop between steps so the application
// observes each intermediate position.
func (s *Synthesizer) Drag(target fw.Object, from, to fw.Point, steps int) error {
	if steps < 1 {
		steps = 1
	}
	if err := s.Press(target, from, fw.ButtonLeft); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mid := fw.Point{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t}
		if err := s.Move(target, mid); err != nil {
			return err
		}
		s.dispatcher.ProcessEvents()
	}
	return s.Release(target, to, fw.ButtonLeft)
}

// wheelUnitsPerTick matches the framework's conventional scroll-wheel
// delta.
const wheelUnitsPerTick = 120

// Scroll synthesizes a wheel event of ticks notches (positive = up/away
// from user, negative = down/toward user, matching the framework's sign
// convention) at local.
func (s *Synthesizer) Scroll(target fw.Object, local fw.Point, ticksX, ticksY int) error {
	return s.dispatcher.PostMouseEvent(target, fw.MouseEvent{
		Kind: fw.MouseWheel, Local: local,
		WheelDX: ticksX * wheelUnitsPerTick,
		WheelDY: ticksY * wheelUnitsPerTick,
	})
}

// TypeText sends text as a sequence of character-input events to the
// currently focused widget.
func (s *Synthesizer) TypeText(text string) error {
	return s.dispatcher.SendText(text)
}

// keyAliases maps the 51-entry accepted alias vocabulary to the
// framework's canonical key names.
var keyAliases = map[string]string{
	"enter": "Return", "return": "Return",
	"esc": "Escape", "escape": "Escape",
	"up": "Up", "arrowup": "Up",
	"down": "Down", "arrowdown": "Down",
	"left": "Left", "arrowleft": "Left",
	"right": "Right", "arrowright": "Right",
	"backspace": "Backspace", "bs": "Backspace",
	"delete": "Delete", "del": "Delete",
	"tab": "Tab",
	"space": "Space", "spacebar": "Space",
	"home": "Home", "end": "End",
	"pageup": "PageUp", "pgup": "PageUp",
	"pagedown": "PageDown", "pgdn": "PageDown",
	"insert": "Insert", "ins": "Insert",
	"f1": "F1", "f2": "F2", "f3": "F3", "f4": "F4", "f5": "F5", "f6": "F6",
	"f7": "F7", "f8": "F8", "f9": "F9", "f10": "F10", "f11": "F11", "f12": "F12",
	"ctrl": "Control", "control": "Control",
	"alt": "Alt", "option": "Alt",
	"shift": "Shift",
	"meta": "Meta", "cmd": "Meta", "command": "Meta", "super": "Meta", "win": "Meta",
	"plus": "Plus", "minus": "Minus",
}

// modifierNames recognizes modifier tokens within a combo string
// (e.g. "Ctrl+Shift+A"), canonicalized to the framework's modifier names.
var modifierNames = map[string]string{
	"ctrl": "Control", "control": "Control",
	"alt": "Alt", "option": "Alt",
	"shift": "Shift",
	"meta": "Meta", "cmd": "Meta", "command": "Meta", "super": "Meta", "win": "Meta",
}

// ParseKeyCombo parses a combo string like "Ctrl+Shift+A" or a single
// alias like "Enter" into a canonical key name plus modifier list.
func ParseKeyCombo(combo string) (key string, mods []string, err error) {
	parts := strings.Split(combo, "+")
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("InvalidKeyCombo: %q", combo)
	}
	for i, p := range parts {
		token := strings.ToLower(strings.TrimSpace(p))
		if token == "" {
			return "", nil, fmt.Errorf("InvalidKeyCombo: %q", combo)
		}
		if i == len(parts)-1 {
			if canon, ok := keyAliases[token]; ok {
				key = canon
			} else {
				// Single characters and unrecognized multi-char tokens pass
				// through as-is; the framework may still know a key by that
				// exact name.
				key = p
			}
			continue
		}
		m, ok := modifierNames[token]
		if !ok {
			return "", nil, fmt.Errorf("InvalidKeyCombo: unknown modifier %q in %q", p, combo)
		}
		mods = append(mods, m)
	}
	return key, mods, nil
}

// SendKeyCombo parses and posts a full key-down/key-up pair for combo to
// target (or the focused widget if target is nil).
func (s *Synthesizer) SendKeyCombo(target fw.Object, combo string) error {
	key, mods, err := ParseKeyCombo(combo)
	if err != nil {
		return err
	}
	if target == nil {
		target = s.dispatcher.FocusedWidget()
	}
	if err := s.dispatcher.PostKeyEvent(target, fw.KeyEvent{Key: key, Modifiers: mods, Press: true}); err != nil {
		return err
	}
	return s.dispatcher.PostKeyEvent(target, fw.KeyEvent{Key: key, Modifiers: mods, Press: false})
}
