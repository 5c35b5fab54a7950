package model

import (
	"testing"

	"github.com/ssss2art/qtmcp/internal/fw/toykit"
)

func smallModel() *toykit.TableModel {
	return toykit.NewTableModel("PeopleModel", []string{"name", "age"}, [][]string{
		{"Alice", "32"},
		{"Bob", "41"},
	})
}

func TestResolveModelFromItemView(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	m := smallModel()
	view := toykit.NewListView(window, "peopleList", m)

	resolved, err := ResolveModel(view)
	if err != nil {
		t.Fatalf("ResolveModel() error = %v", err)
	}
	if resolved != m {
		t.Errorf("ResolveModel() = %v, want the bound model", resolved)
	}
}

func TestResolveModelFromModelProperty(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	m := smallModel()
	item := toykit.NewQmlItem(window, "Repeater", "peopleRepeater", "main.qml")
	item.BindModelProperty(m)

	resolved, err := ResolveModel(item)
	if err != nil {
		t.Fatalf("ResolveModel() error = %v", err)
	}
	if resolved != m {
		t.Errorf("ResolveModel() = %v, want the model-property model", resolved)
	}
}

func TestResolveModelNotFound(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "btn", "Go")

	_, err := ResolveModel(btn)
	if err == nil {
		t.Fatal("ResolveModel() error = nil, want ModelNotFound")
	}
}

func TestDescribe(t *testing.T) {
	m := smallModel()
	info := Describe("obj-1", m)
	if info.RowCount != 2 || info.ColumnCount != 2 {
		t.Errorf("Describe() = %+v, want RowCount=2 ColumnCount=2", info)
	}
}

func TestGetDataFullRows(t *testing.T) {
	m := smallModel()
	page, err := GetData(m, 0, 0)
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if len(page.Rows) != 2 || page.HasMore {
		t.Errorf("GetData() = %+v, want 2 rows untruncated", page)
	}
	row0 := page.Rows[0]
	if row0["display[0]"] != "Alice" {
		t.Errorf("row0[display[0]] = %v, want Alice", row0["display[0]"])
	}
}

func TestGetDataPaginatesAboveMaxFullRows(t *testing.T) {
	rows := make([][]string, maxFullRows+10)
	for i := range rows {
		rows[i] = []string{"x"}
	}
	m := toykit.NewTableModel("BigModel", []string{"col"}, rows)

	page, err := GetData(m, 0, 0)
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if len(page.Rows) != maxFullRows {
		t.Errorf("len(Rows) = %d, want %d", len(page.Rows), maxFullRows)
	}
	if !page.HasMore {
		t.Error("HasMore = false, want true")
	}
	if page.TotalRows != maxFullRows+10 {
		t.Errorf("TotalRows = %d, want %d", page.TotalRows, maxFullRows+10)
	}
}

func TestGetCellRoleNotFound(t *testing.T) {
	m := smallModel()
	if _, err := GetCell(m, 0, 0, "bogusRole"); err == nil {
		t.Fatal("GetCell() error = nil, want RoleNotFound")
	}
}

func TestGetCellOutOfRange(t *testing.T) {
	m := smallModel()
	if _, err := GetCell(m, 99, 0, "display"); err == nil {
		t.Fatal("GetCell() error = nil, want IndexOutOfRange")
	}
}

func TestGetCellValue(t *testing.T) {
	m := smallModel()
	v, err := GetCell(m, 1, 0, "display")
	if err != nil {
		t.Fatalf("GetCell() error = %v", err)
	}
	if v != "Bob" {
		t.Errorf("GetCell() = %v, want Bob", v)
	}
}
