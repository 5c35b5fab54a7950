package fw

import "time"

// MouseButton identifies which button a synthesized mouse event carries.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// MouseEventKind distinguishes the phases of a synthesized pointer action.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMove
	MouseWheel
)

// MouseEvent is delivered to EventDispatcher.PostMouseEvent. Local is
// widget-relative, Global is screen-absolute; the binding is responsible for
// routing by Global and reporting both back to callers that need geometry.
type MouseEvent struct {
	Kind    MouseEventKind
	Button  MouseButton
	Local   Point
	Global  Point
	WheelDX int // wheel delta in units (120 per discrete tick), horizontal
	WheelDY int // wheel delta in units (120 per discrete tick), vertical
}

// KeyEvent is delivered to EventDispatcher.PostKeyEvent.
type KeyEvent struct {
	Key       string // toolkit-native key name, already alias-resolved
	Modifiers []string
	Press     bool // true = press, false = release
	Text      string // printable text for character-input events, may be empty
}

// EventDispatcher is the framework's event delivery contract used by
// InputSynthesizer. A real binding posts these into its native event queue
// and processes events between synthesized steps.
type EventDispatcher interface {
	PostMouseEvent(target Object, ev MouseEvent) error
	PostKeyEvent(target Object, ev KeyEvent) error
	// SendText delivers a character sequence to the currently focused
	// widget, using the framework's native text-input helpers.
	SendText(text string) error
	// FocusedWidget returns the widget that currently has keyboard focus,
	// or nil.
	FocusedWidget() Object
	// ProcessEvents pumps the event loop once, used between synthesized
	// drag steps so intermediate moves are observed by the application.
	ProcessEvents()
	// Click/DoubleClick/etc. use the framework's own test-input helpers
	// for reliable focus and timing, rather than raw posted
	// events, when the binding offers them.
	SimulateClick(target Object, local Point, button MouseButton, double bool) error
	// Now returns the framework's notion of current time for event
	// timestamps; bindings without one may use time.Now.
	Now() time.Time
}

// ScreenBackend captures pixels for ScreenCapturer.
type ScreenBackend struct {
	// GrabWidget captures the given object's rendered contents.
	GrabWidget func(obj Object, physical bool) (png []byte, w, h int, err error)
	// GrabWindow captures a top-level window including decorations.
	GrabWindow func(window Object, physical bool) (png []byte, w, h int, err error)
	// GrabRegion captures an arbitrary screen-absolute rectangle.
	GrabRegion func(r Rect, physical bool) (png []byte, w, h int, err error)
	// GrabScreen captures the full primary screen.
	GrabScreen func(physical bool) (png []byte, w, h int, err error)
	// DevicePixelRatio reports the scale factor for an object's screen.
	DevicePixelRatio func(Object) float64
}

// HitBackend maps coordinates to widgets for HitTester.
type HitBackend struct {
	WidgetAt         func(global Point) Object
	ChildAt          func(parent Object, local Point) Object
	GlobalGeometry   func(Object) (Rect, error)
	DevicePixelRatio func(Object) float64
	// OSCursor reports the real OS pointer position, used by
	// cu.cursorPosition only before any CU action has simulated one. Nil on
	// bindings that can't query it.
	OSCursor func() (Point, bool)
}
