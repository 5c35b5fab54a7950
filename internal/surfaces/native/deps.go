// Package native implements the qt.* surface: object
// tree/query/info, property/method/signal introspection, and subscription
// management, dispatched by method name through a handler map.
package native

import (
	"github.com/ssss2art/qtmcp/internal/capture"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/hittest"
	"github.com/ssss2art/qtmcp/internal/input"
	"github.com/ssss2art/qtmcp/internal/logsink"
	"github.com/ssss2art/qtmcp/internal/registry"
)

// Deps is every capability the qt.* handlers need. *probe.Probe satisfies
// most of it structurally via its embedded *registry.Registry and
// *signals.Monitor; the UI-group accessors are filled in by a thin adapter
// in transport, the same backend wrappers the cu.* surface uses.
type Deps interface {
	Resolve(mixedID string) (fw.Object, bool)
	FindByID(id string) (fw.Object, bool)
	FindByName(name string, root fw.Object) []fw.Object
	FindAllByClass(className string, root fw.Object) []fw.Object
	SerializeObjectTree(root fw.Object, maxDepth int) *registry.TreeNode
	Info(o fw.Object) registry.ObjectInfo
	IDOf(o fw.Object) (string, bool)
	Application() fw.Application
	AllObjects() []fw.Object

	RegisterAlias(name, hierarchicalID string)
	UnregisterAlias(name string) bool
	ListAliases() map[string]string
	LoadAliases(batch map[string]string)
	ValidateAlias(name string) bool

	Subscribe(obj fw.Object, signalName string) (string, error)
	Unsubscribe(subID string) error

	// SetLifecycleEnabled/LifecycleEnabled back qt.signals.setLifecycle,
	// toggling whether qtmcp.objectCreated/objectDestroyed are pushed.
	SetLifecycleEnabled(enabled bool)
	LifecycleEnabled() bool

	Logs() *logsink.Sink

	// UI-group backends for qt.ui.*, the same wrappers cu.* drives against
	// screen/widget-local coordinates rather than an object id.
	Synth() *input.Synthesizer
	Hit() *hittest.Tester
	Capturer() *capture.Capturer
}
