// Package a11y implements AccessibilityWalker: native
// accessibility tree traversal, web-style role normalization, and
// ephemeral numeric ref assignment.
package a11y

import (
	"fmt"
	"strings"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// maxFindResults bounds chr.find: more matches than this is reported as
// FindTooManyResults rather than silently truncated.
const maxFindResults = 20

// Node is the normalized, JSON-ready accessibility tree shape.
type Node struct {
	Ref        string          `json:"ref,omitempty"`
	Role       string          `json:"role"`
	Name       string          `json:"name,omitempty"`
	ObjectID   string          `json:"objectId,omitempty"`
	States     map[string]bool `json:"states,omitempty"`
	Children   []*Node         `json:"children,omitempty"`
}

// SnapshotResult is the aggregate result of a ReadPage.
type SnapshotResult struct {
	Tree       *Node  `json:"tree"`
	TotalNodes int    `json:"totalNodes"`
	Truncated  bool   `json:"truncated"`
}

// IDResolver maps a tracked object to its current hierarchical ID.
type IDResolver interface {
	IDOf(fw.Object) (string, bool)
}

// Options controls a ReadPage call.
type Options struct {
	// InteractiveOnly assigns refs only to nodes that support an
	// accessible action, instead of to every node.
	InteractiveOnly bool
	// MaxNodes bounds traversal; 0 means unlimited.
	MaxNodes int
}

// Walker drives an fw.AccessibilityBackend and assigns ephemeral refs.
type Walker struct {
	backend fw.AccessibilityBackend
	ids     IDResolver

	refs    map[string]fw.Object // ref -> backing object, reset by each ReadPage
	nextRef int
}

// New creates a Walker.
func New(backend fw.AccessibilityBackend, ids IDResolver) *Walker {
	return &Walker{backend: backend, ids: ids, refs: map[string]fw.Object{}}
}

// rootOf activates the backend and returns window's accessibility root, the
// shared first step of ReadPage and Find.
func (w *Walker) rootOf(window fw.Object) (*fw.AccessibleNode, error) {
	if w.backend.Activate != nil {
		w.backend.Activate()
	}
	if w.backend.Root == nil {
		return nil, fmt.Errorf("AccessibilityUnsupported: no root")
	}
	native := w.backend.Root(window)
	if native == nil {
		return nil, fmt.Errorf("AccessibleNodeNotFound: window has no accessibility root")
	}
	return native, nil
}

// ReadPage builds a normalized tree rooted at window's accessibility root.
// The ref map is reset at the start of every call — refs from a prior
// ReadPage or Find are not guaranteed stable.
func (w *Walker) ReadPage(window fw.Object, opts Options) (SnapshotResult, error) {
	native, err := w.rootOf(window)
	if err != nil {
		return SnapshotResult{}, err
	}

	w.refs = map[string]fw.Object{}
	w.nextRef = 0
	count := 0
	truncated := false

	var build func(n *fw.AccessibleNode) *Node
	build = func(n *fw.AccessibleNode) *Node {
		if opts.MaxNodes > 0 && count >= opts.MaxNodes {
			truncated = true
			return nil
		}
		count++

		out := &Node{
			Role: webRoleFor(n.Role),
			Name: resolveName(n),
		}
		if id, ok := w.ids.IDOf(n.Object); ok {
			out.ObjectID = id
		}
		if states := stateMap(n.States); len(states) > 0 {
			out.States = states
		}
		if !opts.InteractiveOnly || isInteractive(n.Role, n.States) {
			out.Ref = w.assignRef(n.Object)
		}
		for _, ch := range n.Children {
			if cn := build(ch); cn != nil {
				out.Children = append(out.Children, cn)
			}
		}
		return out
	}

	tree := build(native)
	return SnapshotResult{Tree: tree, TotalNodes: count, Truncated: truncated}, nil
}

func (w *Walker) assignRef(obj fw.Object) string {
	ref := fmt.Sprintf("ref_%d", w.nextRef)
	w.nextRef++
	w.refs[ref] = obj
	return ref
}

// Resolve looks up the object a ref was assigned to during the most recent
// ReadPage or Find. Refs do not survive a ReadPage rebuild.
func (w *Walker) Resolve(ref string) (fw.Object, bool) {
	obj, ok := w.refs[ref]
	return obj, ok
}

// Invoke performs a named accessible action on the node last assigned ref.
func (w *Walker) Invoke(ref, action string, arg fw.Variant) error {
	obj, ok := w.refs[ref]
	if !ok {
		return fmt.Errorf("RefNotFound: %s", ref)
	}
	if w.backend.Invoke == nil {
		return fmt.Errorf("AccessibilityUnsupported: invoke")
	}
	node := &fw.AccessibleNode{Object: obj}
	if err := w.backend.Invoke(node, action, arg); err != nil {
		return fmt.Errorf("ActionFailed: %w", err)
	}
	return nil
}

// Find searches window's accessibility tree for nodes whose name, role, or
// tooltip contains query (case-insensitive substring). Unlike ReadPage, it
// appends newly matched refs onto the existing map instead of resetting it,
// so refs from the page's last ReadPage keep resolving. More than
// maxFindResults matches is reported as FindTooManyResults instead of being
// silently truncated.
func (w *Walker) Find(window fw.Object, query string) ([]*Node, error) {
	native, err := w.rootOf(window)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []*fw.AccessibleNode
	var collect func(n *fw.AccessibleNode)
	collect = func(n *fw.AccessibleNode) {
		if strings.Contains(strings.ToLower(resolveName(n)), q) ||
			strings.Contains(strings.ToLower(webRoleFor(n.Role)), q) ||
			strings.Contains(strings.ToLower(n.ToolTip), q) {
			matches = append(matches, n)
		}
		for _, ch := range n.Children {
			collect(ch)
		}
	}
	collect(native)

	if len(matches) > maxFindResults {
		return nil, fmt.Errorf("FindTooManyResults: %d matches for %q exceeds the limit of %d", len(matches), query, maxFindResults)
	}

	out := make([]*Node, 0, len(matches))
	for _, n := range matches {
		node := &Node{
			Role: webRoleFor(n.Role),
			Name: resolveName(n),
			Ref:  w.assignRef(n.Object),
		}
		if id, ok := w.ids.IDOf(n.Object); ok {
			node.ObjectID = id
		}
		if states := stateMap(n.States); len(states) > 0 {
			node.States = states
		}
		out = append(out, node)
	}
	return out, nil
}

// PageText concatenates every node's resolved name in document order,
// backing chr.getPageText's "all visible text" contract.
func (w *Walker) PageText(window fw.Object) (string, error) {
	native, err := w.rootOf(window)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(n *fw.AccessibleNode)
	walk = func(n *fw.AccessibleNode) {
		if name := resolveName(n); name != "" {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(name)
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	walk(native)
	return sb.String(), nil
}

// Navigate activates a tab or menu item addressed by ref.
func (w *Walker) Navigate(ref string) error {
	obj, ok := w.refs[ref]
	if !ok {
		return fmt.Errorf("RefNotFound: %s", ref)
	}
	if w.backend.Invoke == nil {
		return fmt.Errorf("AccessibilityUnsupported: invoke")
	}
	node := &fw.AccessibleNode{Object: obj}
	if err := w.backend.Invoke(node, "activate", fw.VInvalid()); err != nil {
		return fmt.Errorf("NavigateInvalid: %w", err)
	}
	return nil
}

// ConsoleMessages returns recent console/framework log lines.
func (w *Walker) ConsoleMessages() []fw.ConsoleMessage {
	if w.backend.ConsoleMessages == nil {
		return nil
	}
	return w.backend.ConsoleMessages()
}

// resolveName follows the accessible-name fallback chain: accessible name,
// then object name, then class name.
func resolveName(n *fw.AccessibleNode) string {
	if n.Name != "" {
		return n.Name
	}
	if n.ObjectName != "" {
		return n.ObjectName
	}
	return n.ClassName
}

func stateMap(s fw.AccessibleState) map[string]bool {
	out := map[string]bool{}
	add := func(key string, v bool) {
		if v {
			out[key] = true
		}
	}
	add("focused", s.Focused)
	add("disabled", s.Disabled)
	add("checked", s.Checked)
	add("selected", s.Selected)
	add("readOnly", s.ReadOnly)
	add("pressed", s.Pressed)
	add("hasPopup", s.HasPopup)
	add("modal", s.Modal)
	add("editable", s.Editable)
	add("multiline", s.Multiline)
	add("password", s.Password)
	if s.Expanded != nil {
		out["expanded"] = *s.Expanded
	}
	return out
}

func isInteractive(nativeRole string, s fw.AccessibleState) bool {
	switch webRoleFor(nativeRole) {
	case "button", "link", "checkbox", "radio", "combobox", "textbox",
		"slider", "spinbutton", "switch", "tab", "menuitem":
		return true
	}
	return s.Editable || s.HasPopup
}

// nativeToWeb maps framework-native accessibility roles to the web-style
// role vocabulary the snapshot reports.
var nativeToWeb = map[string]string{
	"Button":         "button",
	"CheckBox":       "checkbox",
	"RadioButton":    "radio",
	"ComboBox":       "combobox",
	"EditableText":   "textbox",
	"StaticText":     "text",
	"Window":         "window",
	"Dialog":         "dialog",
	"MenuBar":        "menubar",
	"MenuItem":       "menuitem",
	"Menu":           "menu",
	"List":           "list",
	"ListItem":       "listitem",
	"Table":          "table",
	"Tree":           "tree",
	"TreeItem":       "treeitem",
	"Slider":         "slider",
	"SpinBox":        "spinbutton",
	"ProgressBar":    "progressbar",
	"ScrollBar":      "scrollbar",
	"TabBar":         "tablist",
	"PageTab":        "tab",
	"ToolBar":        "toolbar",
	"StatusBar":      "status",
	"Graphic":        "img",
	"Separator":      "separator",
	"Client":         "generic",
	"Grouping":       "group",
	"Link":           "link",
	"PopupMenu":      "menu",
	"Switch":         "switch",
	"Row":            "row",
	"Cell":           "cell",
	"ColumnHeader":   "columnheader",
	"RowHeader":      "rowheader",
	"Application":    "application",
	"Pane":           "region",
	"LayeredPane":    "region",
	"Animation":      "img",
	"Canvas":         "img",
	"Terminal":       "log",
	"Document":       "document",
	"Paragraph":      "paragraph",
	"Heading":        "heading",
	"Indicator":      "status",
	"SplitButton":    "button",
	"ToolTip":        "tooltip",
	"Alert":          "alert",
	"SpinButton":     "spinbutton",
}

// webRoleFor maps a native role to its web-style equivalent, defaulting to
// "generic" for anything the table doesn't recognize.
func webRoleFor(nativeRole string) string {
	if web, ok := nativeToWeb[nativeRole]; ok {
		return web
	}
	return "generic"
}
