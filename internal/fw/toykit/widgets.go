package toykit

import "github.com/ssss2art/qtmcp/internal/fw"

// NewApplication creates the application singleton. In a real binding this
// object exists before the probe's Bootstrapper can do any work.
func NewApplication() fw.Application {
	c := newCore("QApplication", nil, nil)
	c.addProp("objectName", "QString", true,
		func() fw.Variant { return fw.VString(c.objectName) },
		func(v fw.Variant) error { c.objectName = v.Str; return nil })
	return c
}

// NewWindow creates a top-level window under app.
func NewWindow(app fw.Object, objectName, title string) *core {
	c := newCore("QMainWindow", []string{"QWidget", "QObject"}, app)
	c.topLevel = true
	c.objectName = objectName
	visible := true
	geom := fw.Rect{X: 0, Y: 0, W: 800, H: 600}
	titleVal := title
	c.hasVisible = true
	c.visibleGet = func() bool { return visible }
	c.hasEnabled = true
	c.enabledGet = func() bool { return true }
	c.hasGeom = true
	c.geomGet = func() fw.Rect { return geom }
	c.hasText = true
	c.textGet = func() string { return titleVal }
	c.addProp("objectName", "QString", true,
		func() fw.Variant { return fw.VString(c.objectName) },
		func(v fw.Variant) error { c.objectName = v.Str; return nil })
	c.addProp("visible", "bool", true,
		func() fw.Variant { return fw.VBool(visible) },
		func(v fw.Variant) error { visible = v.Bool; return nil })
	c.addProp("windowTitle", "QString", true,
		func() fw.Variant { return fw.VString(titleVal) },
		func(v fw.Variant) error { titleVal = v.Str; return nil })
	c.addProp("geometry", "QRect", true,
		func() fw.Variant { return fw.VRect(geom) },
		func(v fw.Variant) error { geom = v.Rc; return nil })
	c.addMethod(fw.MethodDescriptor{Name: "close", Signature: "close()", ReturnType: "bool", Access: "public"},
		func(args []fw.Variant) (fw.Variant, error) { visible = false; return fw.VBool(true), nil })
	return c
}

// NewButton creates a push button widget.
func NewButton(parent fw.Object, objectName, label string) *core {
	c := newCore("QPushButton", []string{"QAbstractButton", "QWidget", "QObject"}, parent)
	c.objectName = objectName
	text := label
	visible, enabled := true, true
	geom := fw.Rect{X: 0, Y: 0, W: 100, H: 30}
	c.hasText = true
	c.textGet = func() string { return text }
	c.hasVisible = true
	c.visibleGet = func() bool { return visible }
	c.hasEnabled = true
	c.enabledGet = func() bool { return enabled }
	c.hasGeom = true
	c.geomGet = func() fw.Rect { return geom }
	c.addSignal(fw.SignalDescriptor{Name: "clicked", ParameterTypes: nil})
	c.addProp("objectName", "QString", true,
		func() fw.Variant { return fw.VString(c.objectName) },
		func(v fw.Variant) error { c.objectName = v.Str; return nil })
	c.addProp("text", "QString", true,
		func() fw.Variant { return fw.VString(text) },
		func(v fw.Variant) error { text = v.Str; return nil })
	c.addProp("visible", "bool", true,
		func() fw.Variant { return fw.VBool(visible) },
		func(v fw.Variant) error { visible = v.Bool; return nil })
	c.addProp("enabled", "bool", true,
		func() fw.Variant { return fw.VBool(enabled) },
		func(v fw.Variant) error { enabled = v.Bool; return nil })
	c.addProp("geometry", "QRect", true,
		func() fw.Variant { return fw.VRect(geom) },
		func(v fw.Variant) error { geom = v.Rc; return nil })
	c.addMethod(fw.MethodDescriptor{Name: "click", Signature: "click()", ReturnType: "void", Access: "public"},
		func(args []fw.Variant) (fw.Variant, error) { c.emit("clicked"); return fw.Variant{}, nil })
	return c
}

// Click simulates a native click on the button: emits "clicked".
func (c *core) Click() { c.emit("clicked") }

// NewLineEdit creates a single-line text input widget.
func NewLineEdit(parent fw.Object, objectName string) *core {
	c := newCore("QLineEdit", []string{"QWidget", "QObject"}, parent)
	c.objectName = objectName
	text := ""
	visible, enabled := true, true
	geom := fw.Rect{X: 0, Y: 0, W: 200, H: 24}
	c.hasText = true
	c.textGet = func() string { return text }
	c.hasVisible = true
	c.visibleGet = func() bool { return visible }
	c.hasEnabled = true
	c.enabledGet = func() bool { return enabled }
	c.hasGeom = true
	c.geomGet = func() fw.Rect { return geom }
	c.addSignal(fw.SignalDescriptor{Name: "textChanged", ParameterTypes: []string{"QString"}, ParameterNames: []string{"text"}})
	c.addProp("objectName", "QString", true,
		func() fw.Variant { return fw.VString(c.objectName) },
		func(v fw.Variant) error { c.objectName = v.Str; return nil })
	c.addProp("text", "QString", true,
		func() fw.Variant { return fw.VString(text) },
		func(v fw.Variant) error { text = v.Str; c.emit("textChanged", fw.VString(text)); return nil })
	c.addProp("visible", "bool", true,
		func() fw.Variant { return fw.VBool(visible) },
		func(v fw.Variant) error { visible = v.Bool; return nil })
	c.addProp("enabled", "bool", true,
		func() fw.Variant { return fw.VBool(enabled) },
		func(v fw.Variant) error { enabled = v.Bool; return nil })
	c.addProp("geometry", "QRect", true,
		func() fw.Variant { return fw.VRect(geom) },
		func(v fw.Variant) error { geom = v.Rc; return nil })
	return c
}

// SetTextDirect writes the text property, emitting textChanged — a small
// test helper mirroring a key-sequence landing in the widget.
func (c *core) SetTextDirect(s string) { _ = c.SetProperty("text", fw.VString(s)) }

// NewLabel creates a read-only text label.
func NewLabel(parent fw.Object, objectName, text string) *core {
	c := newCore("QLabel", []string{"QWidget", "QObject"}, parent)
	c.objectName = objectName
	t := text
	visible := true
	geom := fw.Rect{X: 0, Y: 0, W: 150, H: 20}
	c.hasText = true
	c.textGet = func() string { return t }
	c.hasVisible = true
	c.visibleGet = func() bool { return visible }
	c.hasEnabled = true
	c.enabledGet = func() bool { return true }
	c.hasGeom = true
	c.geomGet = func() fw.Rect { return geom }
	c.addProp("objectName", "QString", true,
		func() fw.Variant { return fw.VString(c.objectName) },
		func(v fw.Variant) error { c.objectName = v.Str; return nil })
	c.addProp("text", "QString", true,
		func() fw.Variant { return fw.VString(t) },
		func(v fw.Variant) error { t = v.Str; return nil })
	return c
}

// NewQmlItem creates a declarative-document item, honoring ID-generation
// priority rule 1: a non-empty declarative id wins over name
// and text.
func NewQmlItem(parent fw.Object, typeName, declID, declFile string) *core {
	c := newCore(typeName, []string{"QQuickItem", "QObject"}, parent)
	c.isDecl = true
	c.declID = declID
	c.declFile = declFile
	c.declType = typeName
	visible := true
	geom := fw.Rect{}
	c.hasVisible = true
	c.visibleGet = func() bool { return visible }
	c.hasGeom = true
	c.geomGet = func() fw.Rect { return geom }
	return c
}
