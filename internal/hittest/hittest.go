// Package hittest implements HitTester: coordinate-to-widget
// resolution and geometry queries against fw.HitBackend.
package hittest

import (
	"fmt"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// Tester drives an fw.HitBackend.
type Tester struct {
	backend fw.HitBackend
}

// New creates a Tester.
func New(backend fw.HitBackend) *Tester {
	return &Tester{backend: backend}
}

// WidgetAt resolves the topmost widget at a screen-absolute global point.
func (t *Tester) WidgetAt(global fw.Point) (fw.Object, error) {
	if t.backend.WidgetAt == nil {
		return nil, fmt.Errorf("HitTestUnsupported: widgetAt")
	}
	obj := t.backend.WidgetAt(global)
	if obj == nil {
		return nil, fmt.Errorf("OutOfBounds: no widget at (%g, %g)", global.X, global.Y)
	}
	return obj, nil
}

// ChildAt resolves the deepest descendant of parent at a point local to
// parent's own coordinate space.
func (t *Tester) ChildAt(parent fw.Object, local fw.Point) (fw.Object, error) {
	if t.backend.ChildAt == nil {
		return nil, fmt.Errorf("HitTestUnsupported: childAt")
	}
	obj := t.backend.ChildAt(parent, local)
	if obj == nil {
		return nil, fmt.Errorf("OutOfBounds: no child of the given parent at (%g, %g)", local.X, local.Y)
	}
	return obj, nil
}

// OSCursor reports the real OS pointer position, for cu.cursorPosition's
// fallback before any CU action has run. ok is false if the backend can't
// report one.
func (t *Tester) OSCursor() (fw.Point, bool) {
	if t.backend.OSCursor == nil {
		return fw.Point{}, false
	}
	return t.backend.OSCursor()
}

// Geometry reports obj's screen-absolute geometry and device pixel ratio.
func (t *Tester) Geometry(obj fw.Object) (fw.Rect, float64, error) {
	if t.backend.GlobalGeometry == nil {
		return fw.Rect{}, 0, fmt.Errorf("HitTestUnsupported: widgetGeometry")
	}
	r, err := t.backend.GlobalGeometry(obj)
	if err != nil {
		return fw.Rect{}, 0, fmt.Errorf("GeometryUnavailable: %w", err)
	}
	dpr := 1.0
	if t.backend.DevicePixelRatio != nil {
		dpr = t.backend.DevicePixelRatio(obj)
	}
	return r, dpr, nil
}
