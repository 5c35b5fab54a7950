package bootstrap

import (
	"testing"

	"github.com/ssss2art/qtmcp/internal/binding"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
)

// Attach is a process-wide single-attachment point (sync.Once), so this
// package gets exactly one test function: every call to Attach in this
// binary shares the same guard.
func TestAttachStartsProbeAndIsReentrantSafe(t *testing.T) {
	t.Setenv("ENABLED", "true")
	t.Setenv("PORT", "0")

	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")

	backends := binding.Backends{
		Dispatcher:    toykit.NewEventDispatcher(),
		Screen:        toykit.NewScreenBackend(1.0),
		Hit:           toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0),
		Accessibility: toykit.NewAccessibilityBackend(nil),
	}

	b := Attach(app, toykit.Hooks, backends)
	if b == nil {
		t.Fatal("Attach() = nil, want a Bootstrapper when ENABLED=true")
	}
	defer b.Shutdown()

	if !b.Probe().Contains(window) {
		t.Error("probe did not track the pre-existing window on attach")
	}

	again := Attach(app, toykit.Hooks, backends)
	if again != b {
		t.Error("second Attach() call returned a different instance, want the same one (single-attachment guard)")
	}
}
