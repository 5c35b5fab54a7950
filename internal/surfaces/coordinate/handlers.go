package coordinate

import (
	"encoding/json"
	"fmt"

	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/input"
	"github.com/ssss2art/qtmcp/internal/rpc"
)

// Handler is the function signature every cu.* method is registered under.
type Handler func(deps Deps, params json.RawMessage) (any, error)

// Handlers maps cu.* method names to their implementation.
var Handlers = map[string]Handler{
	"cu.click":         Click,
	"cu.doubleClick":   DoubleClick,
	"cu.rightClick":    RightClick,
	"cu.middleClick":   MiddleClick,
	"cu.press":         Press,
	"cu.release":       Release,
	"cu.move":          Move,
	"cu.drag":          Drag,
	"cu.scroll":        Scroll,
	"cu.typeText":      TypeText,
	"cu.sendKey":       SendKey,
	"cu.cursorPosition": CursorPosition,

	"cu.widgetAt":       WidgetAt,
	"cu.childAt":        ChildAt,
	"cu.widgetGeometry": WidgetGeometry,

	"cu.captureWidget": CaptureWidget,
	"cu.captureWindow": CaptureWindow,
	"cu.captureRegion": CaptureRegion,
	"cu.captureScreen": CaptureScreen,
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, v)
}

// targetPoint addresses a cu.* action: either an explicit object id with a
// point local to it, or — with no id — bare pixel coordinates against the
// active window, window-relative by default and screen-absolute when
// ScreenAbsolute is set.
type targetPoint struct {
	ID             string  `json:"id"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	ScreenAbsolute bool    `json:"screenAbsolute"`
}

// resolve addresses the action and returns the target object, the point
// local to it (for InputSynthesizer), and the point in screen-absolute
// coordinates (for cursor tracking).
func (p targetPoint) resolve(deps Deps) (obj fw.Object, local, screen fw.Point, err error) {
	if p.ID != "" {
		obj, ok := deps.Resolve(p.ID)
		if !ok {
			return nil, fw.Point{}, fw.Point{}, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: p.ID}
		}
		local := fw.Point{X: p.X, Y: p.Y}
		screen := local
		if g, ok := obj.Geometry(); ok {
			screen = fw.Point{X: g.X + p.X, Y: g.Y + p.Y}
		}
		return obj, local, screen, nil
	}
	return resolveByCoordinate(deps, p.X, p.Y, p.ScreenAbsolute)
}

// resolveByCoordinate addresses a bare (x, y) — no object id — against the
// active window's bounds and resolves the concrete widget underneath via
// hit-testing, the behavior end-to-end scenario 5 exercises.
func resolveByCoordinate(deps Deps, x, y float64, screenAbsolute bool) (fw.Object, fw.Point, fw.Point, error) {
	if deps.App == nil {
		return nil, fw.Point{}, fw.Point{}, &rpc.Fault{Code: rpc.ErrNoActiveWindow, Message: "no application bound"}
	}
	app := deps.App()
	if app == nil {
		return nil, fw.Point{}, fw.Point{}, &rpc.Fault{Code: rpc.ErrNoActiveWindow, Message: "no application bound"}
	}
	tops := app.TopLevels()
	if len(tops) == 0 {
		return nil, fw.Point{}, fw.Point{}, &rpc.Fault{Code: rpc.ErrNoActiveWindow, Message: "no top-level window"}
	}
	window := tops[len(tops)-1]
	wg, _ := window.Geometry()

	screen := fw.Point{X: x, Y: y}
	if !screenAbsolute {
		screen = fw.Point{X: wg.X + x, Y: wg.Y + y}
	}
	if screen.X < wg.X || screen.X > wg.X+wg.W || screen.Y < wg.Y || screen.Y > wg.Y+wg.H {
		return nil, fw.Point{}, fw.Point{}, &rpc.Fault{
			Code:    rpc.ErrCoordinateOutOfBounds,
			Message: fmt.Sprintf("(%g, %g) outside window bounds", x, y),
			Data: map[string]any{
				"x": x, "y": y,
				"windowWidth": wg.W, "windowHeight": wg.H,
			},
		}
	}

	if deps.Hit == nil {
		return nil, fw.Point{}, fw.Point{}, &rpc.Fault{Code: rpc.ErrNoActiveWindow, Message: "hit-testing unavailable"}
	}
	obj, err := deps.Hit.WidgetAt(screen)
	if err != nil {
		return nil, fw.Point{}, fw.Point{}, rpc.WrapTagged(err, map[string]any{"x": x, "y": y})
	}
	local := screen
	if g, ok := obj.Geometry(); ok {
		local = fw.Point{X: screen.X - g.X, Y: screen.Y - g.Y}
	}
	return obj, local, screen, nil
}

// Click implements cu.click.
func Click(deps Deps, params json.RawMessage) (any, error) {
	return doClick(deps, params, input.ClickSingle)
}

// DoubleClick implements cu.doubleClick.
func DoubleClick(deps Deps, params json.RawMessage) (any, error) {
	return doClick(deps, params, input.ClickDouble)
}

// RightClick implements cu.rightClick.
func RightClick(deps Deps, params json.RawMessage) (any, error) {
	return doClick(deps, params, input.ClickRight)
}

// MiddleClick implements cu.middleClick.
func MiddleClick(deps Deps, params json.RawMessage) (any, error) {
	return doClick(deps, params, input.ClickMiddle)
}

func doClick(deps Deps, params json.RawMessage, kind input.ClickKind) (any, error) {
	var p targetPoint
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, local, screen, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := deps.Synth.Click(obj, local, kind); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"id": p.ID})
	}
	if deps.Cursor != nil {
		deps.Cursor.Set(screen)
	}
	return map[string]any{"ok": true}, nil
}

// Press implements cu.press (cu.mouseDown).
func Press(deps Deps, params json.RawMessage) (any, error) {
	var p targetPoint
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, local, screen, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := deps.Synth.Press(obj, local, fw.ButtonLeft); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	if deps.Cursor != nil {
		deps.Cursor.Set(screen)
	}
	return map[string]any{"ok": true}, nil
}

// Release implements cu.release (cu.mouseUp).
func Release(deps Deps, params json.RawMessage) (any, error) {
	var p targetPoint
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, local, screen, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := deps.Synth.Release(obj, local, fw.ButtonLeft); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	if deps.Cursor != nil {
		deps.Cursor.Set(screen)
	}
	return map[string]any{"ok": true}, nil
}

// Move implements cu.move (cu.mouseMove).
func Move(deps Deps, params json.RawMessage) (any, error) {
	var p targetPoint
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, local, screen, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := deps.Synth.Move(obj, local); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	if deps.Cursor != nil {
		deps.Cursor.Set(screen)
	}
	return map[string]any{"ok": true}, nil
}

// Drag implements cu.drag. With no id, both endpoints address the active
// window; the widget under fromX/fromY is the drag's target.
func Drag(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		ID             string  `json:"id"`
		FromX          float64 `json:"fromX"`
		FromY          float64 `json:"fromY"`
		ToX            float64 `json:"toX"`
		ToY            float64 `json:"toY"`
		Steps          int     `json:"steps"`
		ScreenAbsolute bool    `json:"screenAbsolute"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	from := targetPoint{ID: p.ID, X: p.FromX, Y: p.FromY, ScreenAbsolute: p.ScreenAbsolute}
	obj, fromLocal, _, err := from.resolve(deps)
	if err != nil {
		return nil, err
	}
	to := targetPoint{ID: p.ID, X: p.ToX, Y: p.ToY, ScreenAbsolute: p.ScreenAbsolute}
	_, toLocal, toScreen, err := to.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := deps.Synth.Drag(obj, fromLocal, toLocal, p.Steps); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	if deps.Cursor != nil {
		deps.Cursor.Set(toScreen)
	}
	return map[string]any{"ok": true}, nil
}

// Scroll implements cu.scroll.
func Scroll(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		targetPoint
		TicksX int `json:"ticksX"`
		TicksY int `json:"ticksY"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, local, screen, err := p.targetPoint.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := deps.Synth.Scroll(obj, local, p.TicksX, p.TicksY); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	if deps.Cursor != nil {
		deps.Cursor.Set(screen)
	}
	return map[string]any{"ok": true}, nil
}

// TypeText implements cu.typeText (cu.type).
func TypeText(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Text string `json:"text"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if err := deps.Synth.TypeText(p.Text); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return map[string]any{"ok": true}, nil
}

// SendKey implements cu.sendKey (cu.key).
func SendKey(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Combo string `json:"combo"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if err := deps.Synth.SendKeyCombo(nil, p.Combo); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"combo": p.Combo})
	}
	return map[string]any{"ok": true}, nil
}

// CursorPosition implements cu.cursorPosition: the virtual cursor tracked
// across CU actions, falling back to the OS cursor only if none has run
// yet.
func CursorPosition(deps Deps, _ json.RawMessage) (any, error) {
	if deps.Cursor != nil {
		if p, ok := deps.Cursor.Get(); ok {
			return map[string]any{"x": p.X, "y": p.Y, "virtual": true}, nil
		}
	}
	if deps.Hit != nil {
		if p, ok := deps.Hit.OSCursor(); ok {
			return map[string]any{"x": p.X, "y": p.Y, "virtual": false}, nil
		}
	}
	return nil, &rpc.Fault{Code: rpc.ErrNoFocusedWidget, Message: "no virtual or OS cursor position available"}
}

// WidgetAt implements cu.widgetAt.
func WidgetAt(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := deps.Hit.WidgetAt(fw.Point{X: p.X, Y: p.Y})
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return map[string]any{"className": obj.ClassName(), "objectName": obj.ObjectName()}, nil
}

// ChildAt implements cu.childAt.
func ChildAt(deps Deps, params json.RawMessage) (any, error) {
	var p targetPoint
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if p.ID == "" {
		return nil, rpc.InvalidParams("missing id")
	}
	parent, local, _, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	obj, err := deps.Hit.ChildAt(parent, local)
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return map[string]any{"className": obj.ClassName(), "objectName": obj.ObjectName()}, nil
}

// WidgetGeometry implements cu.widgetGeometry.
func WidgetGeometry(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		ID string `json:"id"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if p.ID == "" {
		return nil, rpc.InvalidParams("missing id")
	}
	obj, ok := deps.Resolve(p.ID)
	if !ok {
		return nil, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: p.ID}
	}
	r, dpr, err := deps.Hit.Geometry(obj)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": p.ID})
	}
	return map[string]any{"x": r.X, "y": r.Y, "width": r.W, "height": r.H, "devicePixelRatio": dpr}, nil
}

type captureParams struct {
	ID       string `json:"id"`
	Physical bool   `json:"physical"`
}

// CaptureWidget implements cu.captureWidget.
func CaptureWidget(deps Deps, params json.RawMessage) (any, error) {
	var p captureParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, ok := deps.Resolve(p.ID)
	if !ok {
		return nil, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: p.ID}
	}
	res, err := deps.Capturer.Widget(obj, p.Physical)
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return res, nil
}

// CaptureWindow implements cu.captureWindow.
func CaptureWindow(deps Deps, params json.RawMessage) (any, error) {
	var p captureParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, ok := deps.Resolve(p.ID)
	if !ok {
		return nil, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: p.ID}
	}
	res, err := deps.Capturer.Window(obj, p.Physical)
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return res, nil
}

// CaptureRegion implements cu.captureRegion.
func CaptureRegion(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		W        float64 `json:"width"`
		H        float64 `json:"height"`
		Physical bool    `json:"physical"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	res, err := deps.Capturer.Region(fw.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}, p.Physical)
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return res, nil
}

// CaptureScreen implements cu.captureScreen.
func CaptureScreen(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Physical bool `json:"physical"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	res, err := deps.Capturer.Screen(p.Physical)
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return res, nil
}
