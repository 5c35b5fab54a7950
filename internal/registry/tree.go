package registry

import "github.com/ssss2art/qtmcp/internal/fw"

// TreeNode is the serialized shape returned by SerializeObjectTree.
type TreeNode struct {
	ID           string      `json:"id"`
	ClassName    string      `json:"className"`
	ObjectName   string      `json:"objectName,omitempty"`
	Visible      *bool       `json:"visible,omitempty"`
	Geometry     *GeomJSON   `json:"geometry,omitempty"`
	Text         string      `json:"text,omitempty"`
	IsQmlItem    bool        `json:"isQmlItem,omitempty"`
	QmlID        string      `json:"qmlId,omitempty"`
	QmlFile      string      `json:"qmlFile,omitempty"`
	QmlTypeName  string      `json:"qmlTypeName,omitempty"`
	Children     []*TreeNode `json:"children,omitempty"`
}

// GeomJSON is the {x,y,w,h} geometry shape.
type GeomJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// SerializeObjectTree yields a nested JSON-ready node rooted at root (nil =
// application). maxDepth of -1 means unlimited.
func (r *Registry) SerializeObjectTree(root fw.Object, maxDepth int) *TreeNode {
	scope := root
	if scope == nil {
		scope = r.app
	}
	return r.serialize(scope, maxDepth)
}

func (r *Registry) serialize(o fw.Object, depthLeft int) *TreeNode {
	id, ok := r.IDOf(o)
	if !ok {
		id = pathFor(o)
	}
	node := &TreeNode{ID: id, ClassName: o.ClassName(), ObjectName: o.ObjectName()}
	if v, ok := o.Visible(); ok {
		node.Visible = &v
	}
	if g, ok := o.Geometry(); ok {
		node.Geometry = &GeomJSON{X: g.X, Y: g.Y, W: g.W, H: g.H}
	}
	if t, ok := o.Text(); ok {
		node.Text = t
	}
	if o.IsDeclarativeItem() {
		node.IsQmlItem = true
		node.QmlID = o.DeclarativeID()
		node.QmlFile = o.DeclarativeFile()
		node.QmlTypeName = o.DeclarativeTypeName()
	}
	if depthLeft == 0 {
		return node
	}
	next := depthLeft - 1
	if depthLeft < 0 {
		next = depthLeft // unlimited stays unlimited
	}
	for _, ch := range o.Children() {
		node.Children = append(node.Children, r.serialize(ch, next))
	}
	return node
}

// ObjectInfo is the per-object summary used by qt.objects.info /
// MetaInspector.objectInfo.
type ObjectInfo struct {
	ID           string   `json:"id"`
	ClassName    string   `json:"className"`
	ObjectName   string   `json:"objectName,omitempty"`
	SuperClasses []string `json:"superClasses,omitempty"`
	Visible      *bool    `json:"visible,omitempty"`
	Enabled      *bool    `json:"enabled,omitempty"`
}

// Info builds an ObjectInfo for o.
func (r *Registry) Info(o fw.Object) ObjectInfo {
	id, _ := r.IDOf(o)
	info := ObjectInfo{ID: id, ClassName: o.ClassName(), ObjectName: o.ObjectName()}
	if mo := o.MetaObject(); mo != nil {
		info.SuperClasses = mo.SuperClasses()
	}
	if v, ok := o.Visible(); ok {
		info.Visible = &v
	}
	if e, ok := o.Enabled(); ok {
		info.Enabled = &e
	}
	return info
}
