// Package model implements ModelNavigator: enumeration and
// paginated reads of item-model-backed views (lists, tables, trees).
package model

import (
	"fmt"

	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/inspect"
)

// maxFullRows is the row count at or below which GetData returns every row
// when no limit is given; above it, only the first page is returned.
const maxFullRows = 100

// Info describes a model bound to a view, for qt.models.list/qt.models.info.
type Info struct {
	ObjectID    string         `json:"objectId"`
	ClassName   string         `json:"className"`
	RowCount    int            `json:"rowCount"`
	ColumnCount int            `json:"columnCount"`
	RoleNames   map[int]string `json:"roleNames"`
	HasChildren bool           `json:"hasChildren"`
}

// Page is the result of getModelData, shaped to match qt.models.data's wire
// response.
type Page struct {
	Rows         []map[string]any `json:"rows"`
	TotalRows    int              `json:"totalRows"`
	TotalColumns int              `json:"totalColumns"`
	Offset       int              `json:"offset"`
	Limit        int              `json:"limit"`
	HasMore      bool             `json:"hasMore"`
}

// ResolveModel finds the fw.DataModel backing view, trying in order: view
// itself cast directly to DataModel, its BoundModel() if it implements
// ItemView, then its ModelProperty() if it implements ModelPropertyHost
// (QML Repeater/ListView-style object-valued "model" property).
func ResolveModel(view fw.Object) (fw.DataModel, error) {
	if m, ok := view.(fw.DataModel); ok {
		return m, nil
	}
	if iv, ok := view.(fw.ItemView); ok {
		if m := iv.BoundModel(); m != nil {
			return m, nil
		}
	}
	if mp, ok := view.(fw.ModelPropertyHost); ok {
		if m, ok := mp.ModelProperty(); ok {
			return m, nil
		}
	}
	return nil, fmt.Errorf("ModelNotFound: %s has no bound data model", view.ClassName())
}

// Describe builds an Info for a resolved model.
func Describe(objectID string, m fw.DataModel) Info {
	return Info{
		ObjectID:    objectID,
		ClassName:   m.ClassName(),
		RowCount:    m.RowCount(-1, -1),
		ColumnCount: m.ColumnCount(-1, -1),
		RoleNames:   m.RoleNames(),
		HasChildren: m.HasChildren(-1, -1),
	}
}

// standardRoleAliases resolves common role names to Qt's well-known role
// IDs when a model's own RoleNames doesn't declare them.
var standardRoleAliases = map[string]int{
	"display":       0,
	"decoration":    1,
	"edit":          2,
	"toolTip":       3,
	"statusTip":     4,
	"whatsThis":     5,
	"font":          6,
	"textAlignment": 7,
	"background":    8,
	"foreground":    9,
	"checkState":    10,
	"sizeHint":      13,
}

// resolveRole finds the role ID for name, preferring the model's own
// RoleNames table and falling back to the standard aliases.
func resolveRole(roleNames map[int]string, name string) (int, bool) {
	for id, n := range roleNames {
		if n == name {
			return id, true
		}
	}
	id, ok := standardRoleAliases[name]
	return id, ok
}

// GetData reads rows [offset, offset+limit) from every column of m across
// every declared role (keys are "role[col]" when m has more than one
// column), applying smart pagination when limit is zero: all
// rows if rowCount <= maxFullRows, else just the first page.
func GetData(m fw.DataModel, offset, limit int) (Page, error) {
	total := m.RowCount(-1, -1)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		if total <= maxFullRows {
			limit = total
		} else {
			limit = maxFullRows
		}
	}
	end := offset + limit
	truncated := end < total
	if end > total {
		end = total
	}

	roleNames := m.RoleNames()
	cols := m.ColumnCount(-1, -1)
	if cols < 1 {
		cols = 1
	}

	rows := make([]map[string]any, 0, end-offset)
	for row := offset; row < end; row++ {
		rowOut := map[string]any{}
		for col := 0; col < cols; col++ {
			for roleID, roleName := range roleNames {
				v, ok := m.Data(row, col, roleID, -1, -1)
				if !ok {
					continue
				}
				key := roleName
				if cols > 1 {
					key = fmt.Sprintf("%s[%d]", roleName, col)
				}
				rowOut[key] = inspect.ToJSON(v)
			}
		}
		rows = append(rows, rowOut)
	}

	return Page{
		Rows:         rows,
		TotalRows:    total,
		TotalColumns: cols,
		Offset:       offset,
		Limit:        limit,
		HasMore:      truncated,
	}, nil
}

// GetCell reads a single named role for one row/column, resolving name
// through the model's own roles then the standard aliases.
func GetCell(m fw.DataModel, row, col int, roleName string) (any, error) {
	roleID, ok := resolveRole(m.RoleNames(), roleName)
	if !ok {
		return nil, fmt.Errorf("RoleNotFound: %s", roleName)
	}
	v, ok := m.Data(row, col, roleID, -1, -1)
	if !ok {
		return nil, fmt.Errorf("IndexOutOfRange: row %d col %d", row, col)
	}
	return inspect.ToJSON(v), nil
}
