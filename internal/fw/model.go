package fw

// DataModel is the contract for tabular/tree data models that
// ModelNavigator and the model.* surface operate on. A real binding wraps
// its native table/tree/list model classes in this interface.
type DataModel interface {
	ClassName() string
	RowCount(parentRow, parentCol int) int
	ColumnCount(parentRow, parentCol int) int
	// RoleNames returns the model's own role-id -> role-name table.
	RoleNames() map[int]string
	// Data returns the value for (row, col) under roleID, within the given
	// parent (for tree models; -1,-1 for the root/flat case).
	Data(row, col, roleID int, parentRow, parentCol int) (Variant, bool)
	HasChildren(row, col int) bool
}

// ItemView is a framework view widget bound to a DataModel, used by
// ModelNavigator's view-to-model resolution chain.
type ItemView interface {
	Object
	BoundModel() DataModel
}

// ModelPropertyHost is ModelNavigator's third view-to-model resolution
// strategy: items (QML Repeater/ListView-style) that expose their bound
// model through an object-valued "model" property instead of a
// model()/BoundModel() accessor.
type ModelPropertyHost interface {
	Object
	ModelProperty() (DataModel, bool)
}
