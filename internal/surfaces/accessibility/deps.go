// Package accessibility implements the chr.* surface: an
// accessibility-tree snapshot addressed by ephemeral refs, action
// invocation, and console message retrieval — named chr.* because it
// mirrors the browser-accessibility-tree vocabulary assistive clients
// already expect.
package accessibility

import (
	"github.com/ssss2art/qtmcp/internal/a11y"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/input"
)

// Deps bundles the accessibility-surface dependencies.
type Deps struct {
	Resolve func(mixedID string) (fw.Object, bool)
	Walker  *a11y.Walker

	// App lists top-level windows for chr.tabsContext. May be nil, in
	// which case tabsContext reports no tabs.
	App func() fw.Application
	// IDOf reports a window's hierarchical objectId for chr.tabsContext.
	IDOf func(fw.Object) (string, bool)

	// Synth backs chr.click's coordinate fallback when the accessibility
	// backend can't perform the "press" action directly. May be nil.
	Synth *input.Synthesizer
}
