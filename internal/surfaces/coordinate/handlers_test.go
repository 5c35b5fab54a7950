package coordinate

import (
	"encoding/json"
	"testing"

	"github.com/ssss2art/qtmcp/internal/capture"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
	"github.com/ssss2art/qtmcp/internal/hittest"
	"github.com/ssss2art/qtmcp/internal/input"
)

func TestClickDispatchesSynthesizedEvent(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "go", "Go")
	_ = btn.SetProperty("geometry", fw.VRect(fw.Rect{X: 0, Y: 0, W: 100, H: 30}))

	registry := map[string]fw.Object{"btn": btn}
	deps := Deps{
		Resolve:  func(id string) (fw.Object, bool) { o, ok := registry[id]; return o, ok },
		Synth:    input.New(toykit.NewEventDispatcher()),
		Hit:      hittest.New(toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0)),
		Capturer: capture.New(toykit.NewScreenBackend(1.0)),
	}

	params, _ := json.Marshal(map[string]any{"id": "btn", "x": 5.0, "y": 5.0})
	out, err := Click(deps, params)
	if err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if out.(map[string]any)["ok"] != true {
		t.Errorf("Click() = %v, want ok true", out)
	}
}

func TestClickUnknownObject(t *testing.T) {
	deps := Deps{
		Resolve: func(string) (fw.Object, bool) { return nil, false },
		Synth:   input.New(toykit.NewEventDispatcher()),
	}
	params, _ := json.Marshal(map[string]any{"id": "nonexistent", "x": 1.0, "y": 1.0})
	if _, err := Click(deps, params); err == nil {
		t.Fatal("Click() error = nil, want ObjectNotFound")
	}
}

func TestWidgetAtHandler(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "go", "Go")
	_ = btn.SetProperty("geometry", fw.VRect(fw.Rect{X: 10, Y: 10, W: 50, H: 20}))

	deps := Deps{
		Hit: hittest.New(toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0)),
	}
	params, _ := json.Marshal(map[string]any{"x": 20.0, "y": 20.0})
	out, err := WidgetAt(deps, params)
	if err != nil {
		t.Fatalf("WidgetAt() error = %v", err)
	}
	if out.(map[string]any)["objectName"] != "go" {
		t.Errorf("WidgetAt() = %v, want objectName go", out)
	}
}

func TestSendKeyInvalidCombo(t *testing.T) {
	deps := Deps{Synth: input.New(toykit.NewEventDispatcher())}
	params, _ := json.Marshal(map[string]any{"combo": "Bogus+A"})
	if _, err := SendKey(deps, params); err == nil {
		t.Fatal("SendKey() error = nil, want InvalidKeyCombo")
	}
}

func TestCaptureScreenHandler(t *testing.T) {
	deps := Deps{Capturer: capture.New(toykit.NewScreenBackend(1.0))}
	params, _ := json.Marshal(map[string]any{"physical": false})
	if _, err := CaptureScreen(deps, params); err != nil {
		t.Fatalf("CaptureScreen() error = %v", err)
	}
}

func newBareCoordDeps(t *testing.T) (Deps, fw.Application, fw.Object) {
	t.Helper()
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "go", "Go")
	_ = btn.SetProperty("geometry", fw.VRect(fw.Rect{X: 10, Y: 10, W: 50, H: 20}))
	return Deps{
		Resolve: func(string) (fw.Object, bool) { return nil, false },
		App:     func() fw.Application { return app },
		Synth:   input.New(toykit.NewEventDispatcher()),
		Hit:     hittest.New(toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0)),
		Cursor:  &CursorState{},
	}, app, btn
}

func TestClickBareCoordinateHitTestsActiveWindow(t *testing.T) {
	deps, _, _ := newBareCoordDeps(t)
	params, _ := json.Marshal(map[string]any{"x": 20.0, "y": 20.0})
	out, err := Click(deps, params)
	if err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if out.(map[string]any)["ok"] != true {
		t.Errorf("Click() = %v, want ok true", out)
	}
	p, ok := deps.Cursor.Get()
	if !ok || p.X != 20 || p.Y != 20 {
		t.Errorf("Cursor.Get() = %v, %v, want (20,20), true", p, ok)
	}
}

func TestClickBareCoordinateOutOfBoundsErrors(t *testing.T) {
	deps, _, _ := newBareCoordDeps(t)
	params, _ := json.Marshal(map[string]any{"x": 9000.0, "y": 9000.0})
	if _, err := Click(deps, params); err == nil {
		t.Fatal("Click() error = nil, want CoordinateOutOfBounds")
	}
}

func TestClickBareCoordinateNoActiveWindowErrors(t *testing.T) {
	deps := Deps{
		App:    func() fw.Application { return nil },
		Synth:  input.New(toykit.NewEventDispatcher()),
		Cursor: &CursorState{},
	}
	params, _ := json.Marshal(map[string]any{"x": 1.0, "y": 1.0})
	if _, err := Click(deps, params); err == nil {
		t.Fatal("Click() error = nil, want NoActiveWindow")
	}
}

func TestCursorPositionReflectsLastAction(t *testing.T) {
	deps, _, _ := newBareCoordDeps(t)
	params, _ := json.Marshal(map[string]any{"x": 20.0, "y": 20.0})
	if _, err := Click(deps, params); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	out, err := CursorPosition(deps, nil)
	if err != nil {
		t.Fatalf("CursorPosition() error = %v", err)
	}
	m := out.(map[string]any)
	if m["x"] != 20.0 || m["y"] != 20.0 || m["virtual"] != true {
		t.Errorf("CursorPosition() = %v, want {20, 20, true}", m)
	}
}

func TestCursorPositionBeforeAnyActionFallsBackToOSCursor(t *testing.T) {
	deps, _, _ := newBareCoordDeps(t)
	if _, err := CursorPosition(deps, nil); err == nil {
		t.Fatal("CursorPosition() error = nil, want NoFocusedWidget (toykit reports no OS cursor)")
	}
}
