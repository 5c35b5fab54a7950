package accessibility

import (
	"encoding/json"
	"testing"

	"github.com/ssss2art/qtmcp/internal/a11y"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
	"github.com/ssss2art/qtmcp/internal/input"
)

type fakeIDs struct{}

func (fakeIDs) IDOf(o fw.Object) (string, bool) { return "obj-" + o.ObjectName(), true }

func newTestDeps() (Deps, fw.Object) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	toykit.NewButton(window, "go", "Go")

	registry := map[string]fw.Object{"win": window}
	walker := a11y.New(toykit.NewAccessibilityBackend(nil), fakeIDs{})
	return Deps{
		Resolve: func(id string) (fw.Object, bool) { o, ok := registry[id]; return o, ok },
		Walker:  walker,
		App:     func() fw.Application { return app },
		IDOf:    func(o fw.Object) (string, bool) { return "obj-" + o.ObjectName(), true },
		Synth:   input.New(toykit.NewEventDispatcher()),
	}, window
}

func TestReadPageReturnsTree(t *testing.T) {
	deps, _ := newTestDeps()
	params, _ := json.Marshal(map[string]any{"windowId": "win"})

	out, err := ReadPage(deps, params)
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	result, ok := out.(a11y.SnapshotResult)
	if !ok {
		t.Fatalf("ReadPage() = %T, want a11y.SnapshotResult", out)
	}
	if result.TotalNodes == 0 {
		t.Error("TotalNodes = 0, want at least the window itself")
	}
}

func TestReadPageMissingWindowID(t *testing.T) {
	deps, _ := newTestDeps()
	params, _ := json.Marshal(map[string]any{})
	if _, err := ReadPage(deps, params); err == nil {
		t.Fatal("ReadPage() error = nil, want missing windowId rejection")
	}
}

func TestInvokePressOnButtonRef(t *testing.T) {
	deps, window := newTestDeps()
	snapParams, _ := json.Marshal(map[string]any{"windowId": "win"})
	out, err := ReadPage(deps, snapParams)
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	result := out.(a11y.SnapshotResult)
	var ref string
	for _, c := range result.Tree.Children {
		if c.Name == "Go" {
			ref = c.Ref
		}
	}
	if ref == "" {
		t.Fatal("button ref not found in snapshot")
	}
	_ = window

	invokeParams, _ := json.Marshal(map[string]any{"ref": ref, "action": "press"})
	if _, err := Invoke(deps, invokeParams); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
}

func TestReadConsoleMessagesUnavailable(t *testing.T) {
	deps, _ := newTestDeps()
	if _, err := ReadConsoleMessages(deps, nil); err == nil {
		t.Fatal("ReadConsoleMessages() error = nil, want ConsoleNotAvailable")
	}
}

func buttonRef(t *testing.T, deps Deps) string {
	t.Helper()
	snapParams, _ := json.Marshal(map[string]any{"windowId": "win"})
	out, err := ReadPage(deps, snapParams)
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	result := out.(a11y.SnapshotResult)
	for _, c := range result.Tree.Children {
		if c.Name == "Go" {
			return c.Ref
		}
	}
	t.Fatal("button ref not found in snapshot")
	return ""
}

func TestClickDrivesPressAction(t *testing.T) {
	deps, _ := newTestDeps()
	ref := buttonRef(t, deps)
	params, _ := json.Marshal(map[string]any{"ref": ref})
	if _, err := Click(deps, params); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
}

func TestFormInputSetsEditableText(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	toykit.NewLineEdit(window, "field")
	registry := map[string]fw.Object{"win": window}
	walker := a11y.New(toykit.NewAccessibilityBackend(nil), fakeIDs{})
	deps := Deps{
		Resolve: func(id string) (fw.Object, bool) { o, ok := registry[id]; return o, ok },
		Walker:  walker,
	}

	snapParams, _ := json.Marshal(map[string]any{"windowId": "win"})
	out, err := ReadPage(deps, snapParams)
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	result := out.(a11y.SnapshotResult)
	var ref string
	for _, c := range result.Tree.Children {
		ref = c.Ref
	}
	if ref == "" {
		t.Fatal("field ref not found")
	}

	params, _ := json.Marshal(map[string]any{"ref": ref, "value": "x"})
	if _, err := FormInput(deps, params); err != nil {
		t.Fatalf("FormInput() error = %v", err)
	}

	out, err = ReadPage(deps, snapParams)
	if err != nil {
		t.Fatalf("second ReadPage() error = %v", err)
	}
	result = out.(a11y.SnapshotResult)
	if len(result.Tree.Children) == 0 || result.Tree.Children[0].Name != "x" {
		t.Errorf("field name after FormInput = %q, want \"x\"", result.Tree.Children[0].Name)
	}
}

func TestFindAppendsRefFromPriorReadPage(t *testing.T) {
	deps, _ := newTestDeps()
	pageRef := buttonRef(t, deps)

	params, _ := json.Marshal(map[string]any{"windowId": "win", "query": "go"})
	out, err := Find(deps, params)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	matches := out.(map[string]any)["matches"]
	if matches == nil {
		t.Fatal("Find() returned no matches field")
	}

	invokeParams, _ := json.Marshal(map[string]any{"ref": pageRef, "action": "press"})
	if _, err := Invoke(deps, invokeParams); err != nil {
		t.Fatalf("ref from prior ReadPage no longer resolves after Find: %v", err)
	}
}

func TestNavigateUnknownRefIsRefNotFound(t *testing.T) {
	deps, _ := newTestDeps()
	params, _ := json.Marshal(map[string]any{"ref": "ref_999"})
	if _, err := Navigate(deps, params); err == nil {
		t.Fatal("Navigate() error = nil, want RefNotFound")
	}
}

func TestTabsContextFlagsLastWindowActive(t *testing.T) {
	deps, _ := newTestDeps()
	out, err := TabsContext(deps, nil)
	if err != nil {
		t.Fatalf("TabsContext() error = %v", err)
	}
	tabs := out.(map[string]any)["tabs"].([]map[string]any)
	if len(tabs) != 1 {
		t.Fatalf("tabs = %+v, want exactly one window", tabs)
	}
	if active, _ := tabs[0]["active"].(bool); !active {
		t.Error("the only window should be flagged active")
	}
}
