// Package registry implements ObjectRegistry and IdentifierEngine: a
// lifecycle-tracked index of every framework object, built by intercepting
// the framework's global creation/destruction hooks, keyed by a stable
// hierarchical identifier.
//
// Lock note: a recursive mutex would guard the registry's maps most
// directly, but Go's sync.Mutex is not reentrant; rather than hand-roll a
// goroutine-aware recursive lock (a common anti-pattern in Go), every
// method that needs to call another registry method while holding the
// lock does so through an unexported, lock-free helper — so a single
// non-recursive sync.Mutex still gives the "one lock guards all map
// mutations" invariant.
package registry

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ssss2art/qtmcp/internal/dispatch"
	"github.com/ssss2art/qtmcp/internal/fw"
)

// Registry tracks every live framework object.
type Registry struct {
	mu sync.Mutex

	app fw.Application

	byID  map[string]fw.Object
	byObj map[fw.Object]string

	numericByObj map[fw.Object]int
	objByNumeric map[int]fw.Object
	nextNumeric  int

	aliases map[string]string // symbolic name -> hierarchical id

	queue *dispatch.Queue

	addedListeners   []func(fw.Object)
	removedListeners []func(objectID string)

	restoreCreate  func()
	restoreDestroy func()
	hooks          *fw.HookSlots
	installed      bool
}

// New creates a registry bound to app's hook slots and an event queue used
// for deferred objectAdded/objectRemoved delivery.
func New(app fw.Application, hooks *fw.HookSlots, queue *dispatch.Queue) *Registry {
	return &Registry{
		app:          app,
		byID:         map[string]fw.Object{},
		byObj:        map[fw.Object]string{},
		numericByObj: map[fw.Object]int{},
		objByNumeric: map[int]fw.Object{},
		aliases:      map[string]string{},
		queue:        queue,
		hooks:        hooks,
	}
}

// Install hooks into the framework's global add/remove callback slots,
// daisy-chaining any previous occupant. Runs
// under the framework's re-entry guard while wiring itself up, since the
// registry's own construction can synthesize temporary objects.
func (r *Registry) Install() {
	r.hooks.WithCreating(func() {
		r.restoreCreate = r.hooks.InstallCreate(r.track)
		r.restoreDestroy = r.hooks.InstallDestroy(r.untrack)
		r.installed = true
		// Track whatever already exists (the application itself, and any
		// objects constructed before the probe attached).
		r.trackExisting(r.app)
	})
}

// Uninstall restores the prior hook occupants before destroying any
// registry state, so destruction-hook re-entry never touches a
// partially-destroyed registry.
func (r *Registry) Uninstall() {
	if !r.installed {
		return
	}
	if r.restoreDestroy != nil {
		r.restoreDestroy()
	}
	if r.restoreCreate != nil {
		r.restoreCreate()
	}
	r.installed = false

	r.mu.Lock()
	r.byID = map[string]fw.Object{}
	r.byObj = map[fw.Object]string{}
	r.numericByObj = map[fw.Object]int{}
	r.objByNumeric = map[int]fw.Object{}
	r.mu.Unlock()
}

func (r *Registry) trackExisting(o fw.Object) {
	r.track(o)
	for _, ch := range o.Children() {
		r.trackExisting(ch)
	}
}

// track is installed as the creation hook. IDs are computed here — before
// any subclass-specific state the caller sets afterward.
func (r *Registry) track(o fw.Object) {
	id := r.assignIDLocked(o)

	r.mu.Lock()
	r.byID[id] = o
	r.byObj[o] = id
	r.mu.Unlock()

	r.queue.Post(func() {
		for _, l := range r.addedListeners {
			l(o)
		}
	})
}

// assignIDLocked computes obj's path-form ID and resolves collisions against
// a different live object by appending "~N".
func (r *Registry) assignIDLocked(o fw.Object) string {
	base := pathFor(o)

	r.mu.Lock()
	defer r.mu.Unlock()

	id := base
	n := 1
	for {
		existing, ok := r.byID[id]
		if !ok || existing == o {
			break
		}
		id = fmt.Sprintf("%s~%d", base, n)
		n++
	}
	return id
}

// untrack is installed as the destruction hook. It clears caches and posts
// a deferred "removed" notification carrying the object's last-known ID.
func (r *Registry) untrack(o fw.Object) {
	r.mu.Lock()
	id, ok := r.byObj[o]
	if ok {
		delete(r.byObj, o)
		delete(r.byID, id)
	}
	if n, ok := r.numericByObj[o]; ok {
		delete(r.numericByObj, o)
		delete(r.objByNumeric, n)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	r.queue.Post(func() {
		for _, l := range r.removedListeners {
			l(id)
		}
	})
}

// OnObjectAdded registers a listener invoked (on the dispatch queue) for
// every newly tracked object.
func (r *Registry) OnObjectAdded(fn func(fw.Object)) { r.addedListeners = append(r.addedListeners, fn) }

// OnObjectRemoved registers a listener invoked (on the dispatch queue) with
// the last-known ID of every object as it is removed.
func (r *Registry) OnObjectRemoved(fn func(objectID string)) {
	r.removedListeners = append(r.removedListeners, fn)
}

// Contains reports whether obj is currently tracked.
func (r *Registry) Contains(o fw.Object) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byObj[o]
	return ok
}

// Count returns the number of tracked objects.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// AllObjects returns every tracked object, order unspecified.
func (r *Registry) AllObjects() []fw.Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fw.Object, 0, len(r.byObj))
	for o := range r.byObj {
		out = append(out, o)
	}
	return out
}

// IDOf returns the cached ID for a tracked object.
func (r *Registry) IDOf(o fw.Object) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byObj[o]
	return id, ok
}

// FindByID resolves a hierarchical ID. It first consults the cache; on a
// miss it walks the tree from the application root, matching segment by
// segment.
func (r *Registry) FindByID(id string) (fw.Object, bool) {
	r.mu.Lock()
	o, ok := r.byID[id]
	r.mu.Unlock()
	if ok {
		return o, true
	}
	return r.walkToID(id)
}

func (r *Registry) walkToID(id string) (fw.Object, bool) {
	segs := strings.Split(id, "/")
	if len(segs) == 0 {
		return nil, false
	}
	cur := fw.Object(r.app)
	if !segmentMatches(cur, segs[0]) {
		return nil, false
	}
	for _, seg := range segs[1:] {
		next := childMatching(cur, seg)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// segmentMatches reports whether obj's own computed segment (ignoring
// collision suffixes, which only apply at insertion time) equals seg, or
// whether seg is a "ClassName#N" form matching obj's current sibling index.
func segmentMatches(obj fw.Object, seg string) bool {
	idx, cnt := siblingsOfSameClass(obj)
	if segmentFor(obj, idx, cnt) == seg {
		return true
	}
	if cls, n, ok := parseClassIndex(seg); ok {
		return shortClassName(obj.ClassName()) == cls && idx == n
	}
	return false
}

func parseClassIndex(seg string) (cls string, n int, ok bool) {
	i := strings.LastIndex(seg, "#")
	if i < 0 {
		return "", 0, false
	}
	num, err := strconv.Atoi(seg[i+1:])
	if err != nil {
		return "", 0, false
	}
	return seg[:i], num, true
}

func childMatching(parent fw.Object, seg string) fw.Object {
	for _, ch := range parent.Children() {
		if segmentMatches(ch, seg) {
			return ch
		}
	}
	return nil
}

// FindByName returns every tracked object whose ObjectName equals name,
// optionally scoped under root (nil = whole tree).
func (r *Registry) FindByName(name string, root fw.Object) []fw.Object {
	scope := root
	if scope == nil {
		scope = r.app
	}
	var out []fw.Object
	var walk func(fw.Object)
	walk = func(o fw.Object) {
		if o.ObjectName() == name {
			out = append(out, o)
		}
		for _, ch := range o.Children() {
			walk(ch)
		}
	}
	walk(scope)
	return out
}

// FindAllByClass returns every tracked object whose ClassName equals
// className, optionally scoped under root.
func (r *Registry) FindAllByClass(className string, root fw.Object) []fw.Object {
	scope := root
	if scope == nil {
		scope = r.app
	}
	var out []fw.Object
	var walk func(fw.Object)
	walk = func(o fw.Object) {
		if o.ClassName() == className {
			out = append(out, o)
		}
		for _, ch := range o.Children() {
			walk(ch)
		}
	}
	walk(scope)
	return out
}

// NumericIDFor returns obj's session-scoped numeric ID, assigning the next
// one on first reference.
func (r *Registry) NumericIDFor(o fw.Object) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.numericByObj[o]; ok {
		return n
	}
	r.nextNumeric++
	n := r.nextNumeric
	r.numericByObj[o] = n
	r.objByNumeric[n] = o
	return n
}

// ClearNumericIDs clears the session-scoped numeric map, called on client
// disconnect.
func (r *Registry) ClearNumericIDs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.numericByObj = map[fw.Object]int{}
	r.objByNumeric = map[int]fw.Object{}
	r.nextNumeric = 0
}

// RegisterAlias adds a symbolic name mapping to a hierarchical ID. Purely
// additive; persists for the registry's lifetime unless removed.
func (r *Registry) RegisterAlias(name, hierarchicalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[name] = hierarchicalID
}

// UnregisterAlias removes a symbolic name, reporting whether it existed.
func (r *Registry) UnregisterAlias(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.aliases[name]
	delete(r.aliases, name)
	return ok
}

// ListAliases returns a snapshot of the alias table.
func (r *Registry) ListAliases() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// LoadAliases merges a batch of alias->id pairs for qt.names.load.
func (r *Registry) LoadAliases(batch map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range batch {
		r.aliases[k] = v
	}
}

// ValidateAlias reports whether name currently resolves to a live object.
func (r *Registry) ValidateAlias(name string) bool {
	r.mu.Lock()
	id, ok := r.aliases[name]
	r.mu.Unlock()
	if !ok {
		return false
	}
	_, found := r.FindByID(id)
	return found
}

// Resolve accepts a numeric ID ("#N" or digits), a symbolic alias, or a
// hierarchical path, tried in that order.
func (r *Registry) Resolve(mixedID string) (fw.Object, bool) {
	if n, ok := parseNumeric(mixedID); ok {
		r.mu.Lock()
		o, found := r.objByNumeric[n]
		r.mu.Unlock()
		if found {
			return o, true
		}
	}
	r.mu.Lock()
	aliasTarget, hasAlias := r.aliases[mixedID]
	r.mu.Unlock()
	if hasAlias {
		if o, ok := r.FindByID(aliasTarget); ok {
			return o, true
		}
	}
	return r.FindByID(mixedID)
}

func parseNumeric(s string) (int, bool) {
	s = strings.TrimPrefix(s, "#")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Application returns the registry's application root.
func (r *Registry) Application() fw.Application { return r.app }
