// Package coordinate implements the cu.* surface:
// input synthesis, hit-testing, and screen capture, all addressed by
// screen/widget-local coordinates rather than the accessibility ref space.
package coordinate

import (
	"github.com/ssss2art/qtmcp/internal/capture"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/hittest"
	"github.com/ssss2art/qtmcp/internal/input"
)

// Deps bundles the coordinate-space subsystems. Built directly (not
// resolved dynamically per-request the way qt.* resolves an object id)
// since input/hit-test/capture operate against the framework's screens and
// focus rather than the object registry.
type Deps struct {
	Resolve func(mixedID string) (fw.Object, bool)
	// App resolves the application root so bare-coordinate actions (no
	// object id) can locate the active window.
	App func() fw.Application

	Synth    *input.Synthesizer
	Hit      *hittest.Tester
	Capturer *capture.Capturer

	// Cursor tracks the virtual cursor across cu.* actions for
	// cu.cursorPosition. Shared across every call against the same
	// connection's Deps value.
	Cursor *CursorState
}
