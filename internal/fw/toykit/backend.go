package toykit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// solidPNG renders a minimal w×h PNG filled with a deterministic color, so
// ScreenCapturer has real (if synthetic) bytes and dimensions to report.
func solidPNG(w, h int, c color.RGBA) ([]byte, error) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewScreenBackend builds a fw.ScreenBackend over the toykit tree. dpr is
// the fixed device pixel ratio every object reports.
func NewScreenBackend(dpr float64) fw.ScreenBackend {
	scale := func(physical bool, w, h int) (int, int) {
		if physical {
			return int(float64(w) * dpr), int(float64(h) * dpr)
		}
		return w, h
	}
	return fw.ScreenBackend{
		GrabWidget: func(o fw.Object, physical bool) ([]byte, int, int, error) {
			g, ok := o.Geometry()
			w, h := 100, 30
			if ok {
				w, h = int(g.W), int(g.H)
			}
			w, h = scale(physical, w, h)
			png, err := solidPNG(w, h, color.RGBA{80, 140, 200, 255})
			return png, w, h, err
		},
		GrabWindow: func(o fw.Object, physical bool) ([]byte, int, int, error) {
			g, ok := o.Geometry()
			w, h := 800, 600
			if ok {
				w, h = int(g.W), int(g.H)
			}
			w, h = scale(physical, w, h)
			png, err := solidPNG(w, h, color.RGBA{240, 240, 240, 255})
			return png, w, h, err
		},
		GrabRegion: func(r fw.Rect, physical bool) ([]byte, int, int, error) {
			w, h := scale(physical, int(r.W), int(r.H))
			png, err := solidPNG(w, h, color.RGBA{200, 200, 80, 255})
			return png, w, h, err
		},
		GrabScreen: func(physical bool) ([]byte, int, int, error) {
			w, h := scale(physical, 1920, 1080)
			png, err := solidPNG(w, h, color.RGBA{20, 20, 20, 255})
			return png, w, h, err
		},
		DevicePixelRatio: func(fw.Object) float64 { return dpr },
	}
}

// NewHitBackend builds a fw.HitBackend over the toykit tree by walking from
// the given roots.
func NewHitBackend(roots func() []fw.Object, dpr float64) fw.HitBackend {
	var walk func(o fw.Object, global fw.Rect, pt fw.Point) fw.Object
	walk = func(o fw.Object, parentGlobal fw.Rect, pt fw.Point) fw.Object {
		g, ok := o.Geometry()
		if !ok {
			return nil
		}
		abs := fw.Rect{X: parentGlobal.X + g.X, Y: parentGlobal.Y + g.Y, W: g.W, H: g.H}
		if pt.X < abs.X || pt.X > abs.X+abs.W || pt.Y < abs.Y || pt.Y > abs.Y+abs.H {
			return nil
		}
		var hit fw.Object = o
		for _, ch := range o.Children() {
			if sub := walk(ch, abs, pt); sub != nil {
				hit = sub
			}
		}
		return hit
	}
	return fw.HitBackend{
		WidgetAt: func(global fw.Point) fw.Object {
			for _, r := range roots() {
				if h := walk(r, fw.Rect{}, global); h != nil {
					return h
				}
			}
			return nil
		},
		ChildAt: func(parent fw.Object, local fw.Point) fw.Object {
			pg, _ := parent.Geometry()
			global := fw.Point{X: pg.X + local.X, Y: pg.Y + local.Y}
			return walk(parent, fw.Rect{}, global)
		},
		GlobalGeometry: func(o fw.Object) (fw.Rect, error) {
			g, ok := o.Geometry()
			if !ok {
				g = fw.Rect{}
			}
			// toykit keeps geometry screen-absolute for simplicity (no
			// nested coordinate translation beyond parent offsets here).
			return g, nil
		},
		DevicePixelRatio: func(fw.Object) float64 { return dpr },
	}
}

// NewEventDispatcher builds a fw.EventDispatcher over the toykit tree.
func NewEventDispatcher() fw.EventDispatcher {
	return &dispatcher{}
}

type dispatcher struct {
	focused fw.Object
}

func (d *dispatcher) PostMouseEvent(target fw.Object, ev fw.MouseEvent) error {
	c, ok := target.(*core)
	if !ok {
		return nil
	}
	if ev.Kind == fw.MousePress {
		d.focused = target
		if c.className == "QPushButton" {
			// A press+release pair simulates the click that drives
			// "clicked"; toykit approximates both as one emission on
			// press for simplicity of the reference binding.
			c.emit("clicked")
		}
	}
	return nil
}

func (d *dispatcher) PostKeyEvent(target fw.Object, ev fw.KeyEvent) error {
	return nil
}

func (d *dispatcher) SendText(text string) error {
	if d.focused == nil {
		return nil
	}
	if c, ok := d.focused.(*core); ok && c.hasText {
		cur, _ := c.Text()
		_ = c.SetProperty("text", fw.VString(cur+text))
	}
	return nil
}

func (d *dispatcher) FocusedWidget() fw.Object { return d.focused }

func (d *dispatcher) ProcessEvents() {}

func (d *dispatcher) SimulateClick(target fw.Object, local fw.Point, button fw.MouseButton, double bool) error {
	d.focused = target
	if c, ok := target.(*core); ok {
		c.emit("clicked")
		if double {
			c.emit("clicked")
		}
	}
	return nil
}

func (d *dispatcher) Now() time.Time { return now() }

// NewAccessibilityBackend builds a fw.AccessibilityBackend over the toykit
// tree: every widget becomes a node, using its native role derived from
// ClassName.
func NewAccessibilityBackend(consoleLog func() []fw.ConsoleMessage) fw.AccessibilityBackend {
	var build func(o fw.Object) *fw.AccessibleNode
	build = func(o fw.Object) *fw.AccessibleNode {
		name, _ := o.Text()
		if name == "" {
			name = o.ObjectName()
		}
		visible, _ := o.Visible()
		enabled, hasEnabled := o.Enabled()
		geom, _ := o.Geometry()
		node := &fw.AccessibleNode{
			Role:       nativeRoleFor(o.ClassName()),
			Name:       name,
			Bounds:     geom,
			ObjectName: o.ObjectName(),
			ClassName:  o.ClassName(),
			Object:     o,
			States: fw.AccessibleState{
				Disabled: hasEnabled && !enabled,
			},
		}
		_ = visible
		for _, ch := range o.Children() {
			node.Children = append(node.Children, build(ch))
		}
		return node
	}
	return fw.AccessibilityBackend{
		Activate: func() {},
		Root: func(window fw.Object) *fw.AccessibleNode {
			return build(window)
		},
		Invoke: func(node *fw.AccessibleNode, action string, arg fw.Variant) error {
			c, ok := node.Object.(*core)
			if !ok {
				return fmt.Errorf("node does not back a live object")
			}
			switch action {
			case "press", "activate":
				if c.className != "QPushButton" {
					return fmt.Errorf("%q is not actionable", c.className)
				}
				c.emit("clicked")
			case "setText":
				if !c.hasText {
					return fmt.Errorf("%q has no editable text", c.className)
				}
				_ = c.SetProperty("text", arg)
			default:
				return fmt.Errorf("unsupported accessible action %q", action)
			}
			return nil
		},
		ConsoleMessages: consoleLog,
	}
}

// nativeRoleFor maps a toykit class name to a framework-native
// accessibility role name, the input side of internal/a11y's role table.
func nativeRoleFor(className string) string {
	switch className {
	case "QPushButton":
		return "Button"
	case "QLineEdit":
		return "EditableText"
	case "QLabel":
		return "StaticText"
	case "QMainWindow":
		return "Window"
	case "QListView":
		return "List"
	default:
		return "Client"
	}
}
