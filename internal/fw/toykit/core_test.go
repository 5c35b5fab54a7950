package toykit

import (
	"testing"

	"github.com/ssss2art/qtmcp/internal/fw"
)

func TestParentChildWiring(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	if btn.Parent() != fw.Object(window) {
		t.Error("btn.Parent() != window")
	}
	found := false
	for _, ch := range window.Children() {
		if ch == fw.Object(btn) {
			found = true
		}
	}
	if !found {
		t.Error("window.Children() does not contain btn")
	}
}

func TestCreationFiresHookBeforeNameSet(t *testing.T) {
	var seenName string
	restore := Hooks.InstallCreate(func(o fw.Object) { seenName = o.ObjectName() })
	defer restore()

	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "submit", "Go")
	_ = btn

	if seenName != "" {
		t.Errorf("creation hook observed name %q, want empty (fired before objectName assignment)", seenName)
	}
}

func TestSetDynamicPropertyOnUndeclaredName(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	if err := btn.SetDynamicProperty("flag", fw.VBool(true)); err != nil {
		t.Fatalf("SetDynamicProperty() error = %v", err)
	}
	v, err := btn.GetProperty("flag")
	if err != nil {
		t.Fatalf("GetProperty(flag) error = %v", err)
	}
	if !v.Bool {
		t.Error("flag value = false, want true")
	}
}

func TestSetDynamicPropertyRejectsDeclaredName(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	if err := btn.SetDynamicProperty("text", fw.VString("x")); err == nil {
		t.Fatal("SetDynamicProperty(text) error = nil, want rejection of a declared property name")
	}
}

func TestInvokeWrongArgCount(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	if _, err := btn.Invoke("click", []fw.Variant{fw.VInt(1)}); err == nil {
		t.Fatal("Invoke(click, 1 arg) error = nil, want arity mismatch")
	}
}

func TestConnectEmitDisconnect(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	count := 0
	h, err := btn.Connect("clicked", func([]fw.Variant) { count++ })
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	btn.Click()
	if count != 1 {
		t.Fatalf("count = %d after one Click, want 1", count)
	}
	if err := btn.Disconnect(h); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	btn.Click()
	if count != 1 {
		t.Fatalf("count = %d after Disconnect + Click, want still 1", count)
	}
}

func TestDestroyEmitsDestroyedAndDetachesFromParent(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	destroyed := false
	_, _ = btn.Connect("destroyed", func([]fw.Variant) { destroyed = true })

	btn.Destroy()
	if !destroyed {
		t.Error("destroyed signal did not fire")
	}
	for _, ch := range window.Children() {
		if ch == fw.Object(btn) {
			t.Error("window still lists destroyed btn as a child")
		}
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")
	btn := NewButton(window, "go", "Go")

	count := 0
	_, _ = btn.Connect("destroyed", func([]fw.Variant) { count++ })
	btn.Destroy()
	btn.Destroy()
	if count != 1 {
		t.Errorf("destroyed fired %d times, want exactly 1", count)
	}
}

func TestTopLevelsReportsOnlyWindows(t *testing.T) {
	app := NewApplication()
	window := NewWindow(app, "win", "Demo")

	tops := app.TopLevels()
	if len(tops) != 1 || tops[0] != fw.Object(window) {
		t.Errorf("TopLevels() = %v, want [window]", tops)
	}
}
