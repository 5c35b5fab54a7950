// Package binding bundles the framework-specific contracts a host binding
// supplies, so bootstrap (composition) and transport (the consumer, for
// the coordinate/accessibility surfaces) can both depend on the bundle's
// shape without importing each other.
package binding

import "github.com/ssss2art/qtmcp/internal/fw"

// Backends bundles every fw contract outside the meta-object/registry
// pair (which attaches via hooks, not a backend struct). internal/fw/toykit
// builds one for the demo host; a real Qt (or other meta-object toolkit)
// binding supplies its own.
type Backends struct {
	Dispatcher    fw.EventDispatcher
	Screen        fw.ScreenBackend
	Hit           fw.HitBackend
	Accessibility fw.AccessibilityBackend
}
