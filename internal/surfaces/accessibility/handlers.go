package accessibility

import (
	"encoding/json"

	"github.com/ssss2art/qtmcp/internal/a11y"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/input"
	"github.com/ssss2art/qtmcp/internal/rpc"
)

// Handler is the function signature every chr.* method is registered under.
type Handler func(deps Deps, params json.RawMessage) (any, error)

// Handlers maps chr.* method names to their implementation.
var Handlers = map[string]Handler{
	"chr.readPage":            ReadPage,
	"chr.click":               Click,
	"chr.formInput":           FormInput,
	"chr.getPageText":         GetPageText,
	"chr.find":                Find,
	"chr.navigate":            Navigate,
	"chr.tabsContext":         TabsContext,
	"chr.invoke":              Invoke,
	"chr.readConsoleMessages": ReadConsoleMessages,
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, v)
}

func resolveWindow(deps Deps, windowID string) (fw.Object, error) {
	if windowID == "" {
		return nil, rpc.InvalidParams("missing windowId")
	}
	window, ok := deps.Resolve(windowID)
	if !ok {
		return nil, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: windowID}
	}
	return window, nil
}

// ReadPage implements chr.readPage: clears the ref map and rebuilds it from
// window's current accessibility tree.
func ReadPage(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		WindowID        string `json:"windowId"`
		InteractiveOnly bool   `json:"interactiveOnly"`
		MaxNodes        int    `json:"maxNodes"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	window, err := resolveWindow(deps, p.WindowID)
	if err != nil {
		return nil, err
	}
	result, err := deps.Walker.ReadPage(window, a11y.Options{InteractiveOnly: p.InteractiveOnly, MaxNodes: p.MaxNodes})
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"windowId": p.WindowID})
	}
	return result, nil
}

// Click implements chr.click: performs the "press" accessible action on
// ref, falling back to a synthesized coordinate click at the widget's
// center when the accessibility backend can't perform the action itself.
func Click(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Ref string `json:"ref"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if p.Ref == "" {
		return nil, rpc.InvalidParams("missing ref")
	}
	obj, ok := deps.Walker.Resolve(p.Ref)
	if !ok {
		return nil, &rpc.Fault{Code: rpc.ErrRefNotFound, Message: p.Ref}
	}
	pressErr := deps.Walker.Invoke(p.Ref, "press", fw.VInvalid())
	if pressErr == nil {
		return map[string]any{"ok": true}, nil
	}
	if deps.Synth == nil {
		return nil, rpc.WrapTagged(pressErr, map[string]any{"ref": p.Ref})
	}
	g, _ := obj.Geometry()
	center := fw.Point{X: g.W / 2, Y: g.H / 2}
	if err := deps.Synth.Click(obj, center, input.ClickSingle); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"ref": p.Ref})
	}
	return map[string]any{"ok": true}, nil
}

type formStrategy struct {
	action string
	arg    fw.Variant
}

// formInputStrategies orders the candidate accessible actions to try for a
// form-input value: combobox selection by index, combobox selection by
// text, boolean toggle, numeric value, then plain editable text — the
// first one the backend accepts wins.
func formInputStrategies(value any, index *int) []formStrategy {
	var out []formStrategy
	if index != nil {
		out = append(out, formStrategy{"selectIndex", fw.VInt(int64(*index))})
	}
	switch v := value.(type) {
	case bool:
		out = append(out, formStrategy{"toggle", fw.VBool(v)})
	case float64:
		out = append(out, formStrategy{"setValue", fw.VFloat(v)})
	case string:
		out = append(out, formStrategy{"selectText", fw.VString(v)})
		out = append(out, formStrategy{"setText", fw.VString(v)})
	}
	return out
}

// FormInput implements chr.formInput: tries each candidate strategy for
// ref's value in turn, stopping at the first the accessibility backend
// accepts.
func FormInput(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Ref   string `json:"ref"`
		Value any    `json:"value"`
		Index *int   `json:"index"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if p.Ref == "" {
		return nil, rpc.InvalidParams("missing ref")
	}
	strategies := formInputStrategies(p.Value, p.Index)
	if len(strategies) == 0 {
		return nil, &rpc.Fault{Code: rpc.ErrFormInputUnsupported, Message: "no usable value or index given"}
	}
	var lastErr error
	for _, s := range strategies {
		err := deps.Walker.Invoke(p.Ref, s.action, s.arg)
		if err == nil {
			return map[string]any{"ok": true, "strategy": s.action}, nil
		}
		lastErr = err
	}
	return nil, rpc.WrapTagged(lastErr, map[string]any{"ref": p.Ref})
}

// GetPageText implements chr.getPageText: all visible text on window.
func GetPageText(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		WindowID string `json:"windowId"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	window, err := resolveWindow(deps, p.WindowID)
	if err != nil {
		return nil, err
	}
	text, err := deps.Walker.PageText(window)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"windowId": p.WindowID})
	}
	return map[string]any{"text": text}, nil
}

// Find implements chr.find: natural-language substring match over name,
// role, and tooltip, appending matched refs to the current ref map.
func Find(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		WindowID string `json:"windowId"`
		Query    string `json:"query"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if p.Query == "" {
		return nil, rpc.InvalidParams("missing query")
	}
	window, err := resolveWindow(deps, p.WindowID)
	if err != nil {
		return nil, err
	}
	matches, err := deps.Walker.Find(window, p.Query)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"windowId": p.WindowID, "query": p.Query})
	}
	return map[string]any{"matches": matches}, nil
}

// Navigate implements chr.navigate: activate a tab or menu item by ref.
func Navigate(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Ref string `json:"ref"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if p.Ref == "" {
		return nil, rpc.InvalidParams("missing ref")
	}
	if err := deps.Walker.Navigate(p.Ref); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"ref": p.Ref})
	}
	return map[string]any{"ok": true}, nil
}

// TabsContext implements chr.tabsContext: lists top-level windows, flagging
// the most recently created one active.
func TabsContext(deps Deps, _ json.RawMessage) (any, error) {
	if deps.App == nil {
		return map[string]any{"tabs": []any{}}, nil
	}
	app := deps.App()
	if app == nil {
		return map[string]any{"tabs": []any{}}, nil
	}
	tops := app.TopLevels()
	tabs := make([]map[string]any, 0, len(tops))
	for i, w := range tops {
		title, _ := w.Text()
		if title == "" {
			title = w.ObjectName()
		}
		tab := map[string]any{
			"title":  title,
			"active": i == len(tops)-1,
		}
		if deps.IDOf != nil {
			if id, ok := deps.IDOf(w); ok {
				tab["objectId"] = id
			}
		}
		tabs = append(tabs, tab)
	}
	return map[string]any{"tabs": tabs}, nil
}

// Invoke implements chr.invoke: performs a named accessible action
// ("press", "toggle", "increment", "decrement", "setValue", "setText") on
// a ref from the most recent readPage or find.
func Invoke(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Ref    string `json:"ref"`
		Action string `json:"action"`
		Value  any    `json:"value"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	arg := fw.VInvalid()
	if p.Value != nil {
		if s, ok := p.Value.(string); ok {
			arg = fw.VString(s)
		} else if f, ok := p.Value.(float64); ok {
			arg = fw.VFloat(f)
		} else if b, ok := p.Value.(bool); ok {
			arg = fw.VBool(b)
		}
	}
	if err := deps.Walker.Invoke(p.Ref, p.Action, arg); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"ref": p.Ref, "action": p.Action})
	}
	return map[string]any{"ok": true}, nil
}

// ReadConsoleMessages implements chr.readConsoleMessages.
func ReadConsoleMessages(deps Deps, _ json.RawMessage) (any, error) {
	msgs := deps.Walker.ConsoleMessages()
	if msgs == nil {
		return nil, &rpc.Fault{Code: rpc.ErrConsoleNotAvailable, Message: "console log not available on this binding"}
	}
	return map[string]any{"messages": msgs}, nil
}
