package hittest

import (
	"testing"

	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
)

func TestWidgetAtFindsButton(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "btn", "Go")
	_ = btn.SetProperty("geometry", fw.VRect(fw.Rect{X: 10, Y: 10, W: 100, H: 30}))

	tester := New(toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0))

	obj, err := tester.WidgetAt(fw.Point{X: 20, Y: 20})
	if err != nil {
		t.Fatalf("WidgetAt() error = %v", err)
	}
	if obj.ObjectName() != "btn" {
		t.Errorf("WidgetAt() = %q, want btn", obj.ObjectName())
	}
}

func TestWidgetAtOutOfBounds(t *testing.T) {
	app := toykit.NewApplication()
	toykit.NewWindow(app, "win", "Demo")

	tester := New(toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0))
	if _, err := tester.WidgetAt(fw.Point{X: 5000, Y: 5000}); err == nil {
		t.Fatal("WidgetAt() error = nil, want OutOfBounds")
	}
}

func TestGeometryReportsDPR(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")

	tester := New(toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 2.0))
	r, dpr, err := tester.Geometry(window)
	if err != nil {
		t.Fatalf("Geometry() error = %v", err)
	}
	if dpr != 2.0 {
		t.Errorf("dpr = %v, want 2.0", dpr)
	}
	if r.W != 800 || r.H != 600 {
		t.Errorf("geometry = %+v, want 800x600", r)
	}
}

func TestHitTestUnsupported(t *testing.T) {
	tester := New(fw.HitBackend{})
	if _, err := tester.WidgetAt(fw.Point{}); err == nil {
		t.Fatal("WidgetAt() error = nil, want HitTestUnsupported")
	}
}
