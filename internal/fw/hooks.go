package fw

import "sync/atomic"

// CreateHook and DestroyHook are the two function slots a framework binding
// must expose so external tooling can observe object lifecycle. A binding
// that cannot provide these as global callback slots can instead weave
// construction/destruction notification through a custom base class and
// call Install/fire the handlers itself — the rest of the probe does not
// care which.
type CreateHook func(Object)
type DestroyHook func(Object)

// HookSlots is the chain-of-responsibility registry for the two global
// callback slots. Installing a new callback preserves and daisy-chains the
// previous occupant so multiple tools can coexist in the same process.
type HookSlots struct {
	onCreate  CreateHook
	onDestroy DestroyHook

	// creating guards re-entry during singleton construction: hook calls
	// that fire while this is set chain to the previous handlers only and
	// never touch registry state.
	creating atomic.Bool
}

// NewHookSlots returns an empty slot pair.
func NewHookSlots() *HookSlots { return &HookSlots{} }

// InstallCreate daisy-chains a new create callback in front of any existing
// one, returning a restore func that puts the previous callback back.
func (h *HookSlots) InstallCreate(cb CreateHook) (restore func()) {
	prev := h.onCreate
	h.onCreate = func(o Object) {
		if h.creating.Load() {
			if prev != nil {
				prev(o)
			}
			return
		}
		cb(o)
		if prev != nil {
			prev(o)
		}
	}
	return func() { h.onCreate = prev }
}

// InstallDestroy daisy-chains a new destroy callback in front of any
// existing one.
func (h *HookSlots) InstallDestroy(cb DestroyHook) (restore func()) {
	prev := h.onDestroy
	h.onDestroy = func(o Object) {
		if h.creating.Load() {
			if prev != nil {
				prev(o)
			}
			return
		}
		cb(o)
		if prev != nil {
			prev(o)
		}
	}
	return func() { h.onDestroy = prev }
}

// FireCreate invokes the installed create chain, if any. Called by the
// binding whenever a new framework object is constructed.
func (h *HookSlots) FireCreate(o Object) {
	if h.onCreate != nil {
		h.onCreate(o)
	}
}

// FireDestroy invokes the installed destroy chain, if any.
func (h *HookSlots) FireDestroy(o Object) {
	if h.onDestroy != nil {
		h.onDestroy(o)
	}
}

// WithCreating runs fn with the re-entry guard set, for use by a binding
// while it constructs objects that are themselves part of the probe (the
// registry is a framework object; diagnostics during its own install can
// synthesize temporary objects).
func (h *HookSlots) WithCreating(fn func()) {
	h.creating.Store(true)
	defer h.creating.Store(false)
	fn()
}
