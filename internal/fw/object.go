// Package fw defines the contract a host GUI framework must satisfy for the
// probe to instrument it: a reflective object model, global lifecycle hooks,
// an event queue, and a variant value type. A real binding (Qt, or any
// widget/scene-graph toolkit with a meta-object facility) implements these
// interfaces; internal/fw/toykit supplies a reference implementation used by
// the demo host and by every package's tests.
package fw

// Object is any framework object that participates in the meta-object
// facility: a widget, a declarative (QML-like) item, or a plain object.
type Object interface {
	// Addr is the object's identity while alive (its memory address in a
	// real binding; toykit uses a monotonic counter). Never reused while
	// the object is alive, and never exposed to RPC clients directly.
	Addr() uintptr

	ClassName() string
	Parent() Object
	Children() []Object

	// ObjectName is the framework's "name" attribute (Qt's objectName).
	ObjectName() string

	// IsDeclarativeItem reports whether this object was constructed from a
	// declarative (QML-like) document.
	IsDeclarativeItem() bool
	// DeclarativeID is the document-local "id:" the item was declared with,
	// empty if none or not a declarative item.
	DeclarativeID() string
	DeclarativeFile() string
	DeclarativeTypeName() string

	// Text returns the type-specific "text-like" attribute (button label,
	// line-edit contents, label text) and whether the object has one at all.
	Text() (string, bool)

	// Widget-only attributes. ok is false for plain (non-widget) objects.
	Visible() (bool, bool)
	Enabled() (bool, bool)
	Geometry() (Rect, bool)

	// MetaObject exposes the reflective property/method/signal facility.
	MetaObject() MetaObject
}

// Rect is a widget-local or screen-absolute rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// Application is the framework's singleton application object — the root of
// every hierarchical ID.
type Application interface {
	Object
	// TopLevels returns the application's top-level windows, in creation
	// order, for accessibility tab enumeration and tree walking.
	TopLevels() []Object
}
