package toykit

import "github.com/ssss2art/qtmcp/internal/fw"

// roles used by TableModel, matching Qt's standard role names.
const (
	RoleDisplay = 0
	RoleEdit    = 1
)

// TableModel is a flat in-memory tabular model for ModelNavigator tests and
// the demo host.
type TableModel struct {
	className string
	cols      []string
	rows      [][]string
}

// NewTableModel builds a model with the given column names and row data.
func NewTableModel(className string, cols []string, rows [][]string) *TableModel {
	return &TableModel{className: className, cols: cols, rows: rows}
}

func (m *TableModel) ClassName() string { return m.className }

func (m *TableModel) RowCount(parentRow, parentCol int) int {
	if parentRow != -1 || parentCol != -1 {
		return 0 // flat model: no children under any row
	}
	return len(m.rows)
}

func (m *TableModel) ColumnCount(parentRow, parentCol int) int { return len(m.cols) }

func (m *TableModel) RoleNames() map[int]string {
	return map[int]string{RoleDisplay: "display", RoleEdit: "edit"}
}

func (m *TableModel) Data(row, col, roleID int, parentRow, parentCol int) (fw.Variant, bool) {
	if parentRow != -1 || parentCol != -1 {
		return fw.Variant{}, false
	}
	if row < 0 || row >= len(m.rows) || col < 0 || col >= len(m.cols) {
		return fw.Variant{}, false
	}
	if roleID != RoleDisplay && roleID != RoleEdit {
		return fw.Variant{}, false
	}
	return fw.VString(m.rows[row][col]), true
}

func (m *TableModel) HasChildren(row, col int) bool { return false }

// NewListView creates a list-view widget bound to model, for exercising
// ModelNavigator's view-to-model resolution chain.
func NewListView(parent fw.Object, objectName string, model fw.DataModel) *core {
	c := newCore("QListView", []string{"QAbstractItemView", "QWidget", "QObject"}, parent)
	c.objectName = objectName
	c.boundModel = model
	c.hasVisible = true
	c.visibleGet = func() bool { return true }
	c.hasGeom = true
	c.geomGet = func() fw.Rect { return fw.Rect{W: 300, H: 400} }
	c.addProp("objectName", "QString", true,
		func() fw.Variant { return fw.VString(c.objectName) },
		func(v fw.Variant) error { c.objectName = v.Str; return nil })
	return c
}
