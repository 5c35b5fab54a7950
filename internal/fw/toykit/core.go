// Package toykit is a minimal, in-memory reference binding of the internal/fw
// contract: a small widget tree with a hand-rolled meta-object facility
// (property/method/signal tables instead of real reflection), used by the
// demo host and by every other package's tests in place of a real GUI
// toolkit. It is not a UI framework — it exists only to exercise the probe.
package toykit

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// Hooks is the process-wide hook slot pair every toykit constructor fires
// into. A real binding would expose the equivalent as the framework's own
// global callback slots.
var Hooks = fw.NewHookSlots()

var addrCounter uint64

func nextAddr() uintptr {
	return uintptr(atomic.AddUint64(&addrCounter, 1))
}

type propSlot struct {
	typeName string
	writable bool
	dynamic  bool
	get      func() fw.Variant
	set      func(fw.Variant) error
}

type methodSlot struct {
	desc fw.MethodDescriptor
	fn   func([]fw.Variant) (fw.Variant, error)
}

type signalSlot struct {
	desc     fw.SignalDescriptor
	handlers map[fw.ConnHandle]func([]fw.Variant)
	next     uint64
}

// core is the common implementation shared by every toykit object. It
// implements both fw.Object and fw.MetaObject; MetaObject() returns the
// core itself.
type core struct {
	addr       uintptr
	className  string
	superCls   []string
	parent     fw.Object
	children   []fw.Object
	objectName string

	isDecl    bool
	declID    string
	declFile  string
	declType  string

	hasText  bool
	textGet  func() string

	hasVisible bool
	visibleGet func() bool

	hasEnabled bool
	enabledGet func() bool

	hasGeom bool
	geomGet func() fw.Rect

	props   map[string]*propSlot
	propOrd []string
	methods map[string]*methodSlot
	methOrd []string
	signals map[string]*signalSlot
	sigOrd  []string

	destroyed bool
	topLevel  bool

	boundModel fw.DataModel
	modelProp  fw.DataModel
}

// BoundModel returns the data model this object is bound to as a view, or
// nil. Any *core can carry this, satisfying fw.ItemView when non-nil —
// there is no separate ListView/TableView Go type (see toykit/model.go).
func (c *core) BoundModel() fw.DataModel { return c.boundModel }

// ModelProperty returns the model bound through an object-valued "model"
// property, for QML Repeater/ListView-style items that expose their model
// that way instead of through a model()/BoundModel() accessor. Distinct
// field from boundModel so ModelNavigator's three resolution strategies
// stay independently exercised.
func (c *core) ModelProperty() (fw.DataModel, bool) { return c.modelProp, c.modelProp != nil }

// BindModelProperty sets the model ModelProperty reports, for constructing
// QML-style model-bound items in tests and the demo host.
func (c *core) BindModelProperty(m fw.DataModel) { c.modelProp = m }

// TopLevels returns the direct children flagged as top-level windows,
// satisfying fw.Application for any *core used as the application root.
func (c *core) TopLevels() []fw.Object {
	var out []fw.Object
	for _, ch := range c.children {
		if cc, ok := ch.(*core); ok && cc.topLevel {
			out = append(out, ch)
		}
	}
	return out
}

func newCore(className string, super []string, parent fw.Object) *core {
	c := &core{
		addr:      nextAddr(),
		className: className,
		superCls:  super,
		parent:    parent,
		props:     map[string]*propSlot{},
		methods:   map[string]*methodSlot{},
		signals:   map[string]*signalSlot{},
	}
	c.addSignal(fw.SignalDescriptor{Name: "destroyed"})
	if parent != nil {
		if pc, ok := parent.(*core); ok {
			pc.addChild(c)
		}
	}
	// Fire the creation hook now, before the concrete widget constructor
	// adds its type-specific properties/text/name: early IDs reflect only
	// the minimal known state at this instant. The registry assigns an ID
	// here, and a name or text set afterward by the caller will not appear
	// in the cached ID.
	Hooks.FireCreate(c)
	return c
}

func (c *core) addChild(o fw.Object) { c.children = append(c.children, o) }

// --- fw.Object ---

func (c *core) Addr() uintptr        { return c.addr }
func (c *core) ClassName() string    { return c.className }
func (c *core) Parent() fw.Object    { return c.parent }
func (c *core) Children() []fw.Object { return c.children }
func (c *core) ObjectName() string   { return c.objectName }

func (c *core) IsDeclarativeItem() bool   { return c.isDecl }
func (c *core) DeclarativeID() string     { return c.declID }
func (c *core) DeclarativeFile() string   { return c.declFile }
func (c *core) DeclarativeTypeName() string { return c.declType }

func (c *core) Text() (string, bool) {
	if !c.hasText {
		return "", false
	}
	return c.textGet(), true
}

func (c *core) Visible() (bool, bool) {
	if !c.hasVisible {
		return false, false
	}
	return c.visibleGet(), true
}

func (c *core) Enabled() (bool, bool) {
	if !c.hasEnabled {
		return false, false
	}
	return c.enabledGet(), true
}

func (c *core) Geometry() (fw.Rect, bool) {
	if !c.hasGeom {
		return fw.Rect{}, false
	}
	return c.geomGet(), true
}

func (c *core) MetaObject() fw.MetaObject { return c }

// --- fw.MetaObject ---

func (c *core) SuperClasses() []string { return c.superCls }

func (c *core) Properties() []fw.PropertyDescriptor {
	out := make([]fw.PropertyDescriptor, 0, len(c.propOrd))
	for _, name := range c.propOrd {
		p := c.props[name]
		out = append(out, fw.PropertyDescriptor{
			Name: name, TypeName: p.typeName, Readable: p.get != nil,
			Writable: p.writable, Dynamic: p.dynamic,
		})
	}
	return out
}

func (c *core) Property(name string) (fw.PropertyDescriptor, bool) {
	p, ok := c.props[name]
	if !ok {
		return fw.PropertyDescriptor{}, false
	}
	return fw.PropertyDescriptor{
		Name: name, TypeName: p.typeName, Readable: p.get != nil,
		Writable: p.writable, Dynamic: p.dynamic,
	}, true
}

func (c *core) GetProperty(name string) (fw.Variant, error) {
	p, ok := c.props[name]
	if !ok {
		return fw.Variant{}, fmt.Errorf("property %q not declared", name)
	}
	if p.get == nil {
		return fw.Variant{}, fmt.Errorf("property %q not readable", name)
	}
	return p.get(), nil
}

func (c *core) SetProperty(name string, v fw.Variant) error {
	p, ok := c.props[name]
	if !ok {
		return fmt.Errorf("property %q not declared", name)
	}
	if !p.writable || p.set == nil {
		return fmt.Errorf("property %q is read-only", name)
	}
	return p.set(v)
}

func (c *core) SetDynamicProperty(name string, v fw.Variant) error {
	if existing, ok := c.props[name]; ok && !existing.dynamic {
		return fmt.Errorf("property %q is declared, use SetProperty", name)
	}
	val := v
	c.props[name] = &propSlot{
		typeName: "QVariant", writable: true, dynamic: true,
		get: func() fw.Variant { return val },
		set: func(nv fw.Variant) error { val = nv; return nil },
	}
	if _, already := indexOf(c.propOrd, name); !already {
		c.propOrd = append(c.propOrd, name)
	}
	return nil
}

func (c *core) Methods() []fw.MethodDescriptor {
	out := make([]fw.MethodDescriptor, 0, len(c.methOrd))
	for _, name := range c.methOrd {
		out = append(out, c.methods[name].desc)
	}
	return out
}

func (c *core) Invoke(name string, args []fw.Variant) (fw.Variant, error) {
	m, ok := c.methods[name]
	if !ok {
		return fw.Variant{}, fmt.Errorf("method %q not found", name)
	}
	if len(m.desc.ParameterTypes) != len(args) {
		return fw.Variant{}, fmt.Errorf("method %q expects %d args, got %d", name, len(m.desc.ParameterTypes), len(args))
	}
	return m.fn(args)
}

func (c *core) Signals() []fw.SignalDescriptor {
	out := make([]fw.SignalDescriptor, 0, len(c.sigOrd))
	for _, name := range c.sigOrd {
		out = append(out, c.signals[name].desc)
	}
	return out
}

func (c *core) Connect(signal string, handler func(args []fw.Variant)) (fw.ConnHandle, error) {
	s, ok := c.signals[signal]
	if !ok {
		return 0, fmt.Errorf("signal %q not found", signal)
	}
	s.next++
	h := fw.ConnHandle(s.next)
	s.handlers[h] = handler
	return h, nil
}

func (c *core) Disconnect(h fw.ConnHandle) error {
	for _, s := range c.signals {
		if _, ok := s.handlers[h]; ok {
			delete(s.handlers, h)
			return nil
		}
	}
	return fmt.Errorf("connection handle %d not found", h)
}

func (c *core) emit(signal string, args ...fw.Variant) {
	s, ok := c.signals[signal]
	if !ok {
		return
	}
	for _, h := range s.handlers {
		h(args)
	}
}

// --- construction helpers used by widgets.go ---

func (c *core) addProp(name, typeName string, writable bool, get func() fw.Variant, set func(fw.Variant) error) {
	c.props[name] = &propSlot{typeName: typeName, writable: writable, get: get, set: set}
	c.propOrd = append(c.propOrd, name)
}

func (c *core) addMethod(desc fw.MethodDescriptor, fn func([]fw.Variant) (fw.Variant, error)) {
	c.methods[desc.Name] = &methodSlot{desc: desc, fn: fn}
	c.methOrd = append(c.methOrd, desc.Name)
}

func (c *core) addSignal(desc fw.SignalDescriptor) {
	c.signals[desc.Name] = &signalSlot{desc: desc, handlers: map[fw.ConnHandle]func([]fw.Variant){}}
	c.sigOrd = append(c.sigOrd, desc.Name)
}

// Destroy fires the destroyed signal, then the framework-wide destroy hook.
// Cache removal happens in the registry, which listens on the destroy
// hook; the signal fires first so SignalMonitor's direct-connected
// auto-unsubscribe handler (if any) observes it before the hook tears down
// registry state.
func (c *core) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.emit("destroyed")
	Hooks.FireDestroy(c)
	if c.parent != nil {
		if pc, ok := c.parent.(*core); ok {
			pc.removeChild(c)
		}
	}
}

func (c *core) removeChild(o fw.Object) {
	for i, ch := range c.children {
		if ch == o {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func indexOf(ss []string, v string) (int, bool) {
	for i, s := range ss {
		if s == v {
			return i, true
		}
	}
	return -1, false
}

// now is the toykit clock, overridable in tests.
var now = time.Now
