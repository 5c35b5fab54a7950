package a11y

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
)

type fakeIDs struct{}

func (fakeIDs) IDOf(o fw.Object) (string, bool) { return "obj-" + o.ObjectName(), true }

func buildTree() (fw.Application, fw.Object) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	toykit.NewButton(window, "submit", "Go")
	toykit.NewLabel(window, "status", "Ready")
	return app, window
}

func TestWalkAssignsRefsToEveryNodeByDefault(t *testing.T) {
	_, window := buildTree()
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})

	result, err := w.ReadPage(window, Options{})
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	if result.Tree.Role != "window" {
		t.Errorf("root role = %q, want window", result.Tree.Role)
	}
	if result.TotalNodes != 3 {
		t.Errorf("TotalNodes = %d, want 3", result.TotalNodes)
	}
	for _, child := range result.Tree.Children {
		if child.Ref == "" {
			t.Errorf("child %q has no ref, want one assigned (InteractiveOnly=false)", child.Name)
		}
	}
}

func TestWalkInteractiveOnlySkipsNonInteractiveRefs(t *testing.T) {
	_, window := buildTree()
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})

	result, err := w.ReadPage(window, Options{InteractiveOnly: true})
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	var button, label *Node
	for _, c := range result.Tree.Children {
		switch c.Name {
		case "Go":
			button = c
		case "Ready":
			label = c
		}
	}
	if button == nil || button.Ref == "" {
		t.Error("button should have a ref (interactive)")
	}
	if label != nil && label.Ref != "" {
		t.Error("label should have no ref (not interactive)")
	}
}

func TestWalkRespectsMaxNodes(t *testing.T) {
	_, window := buildTree()
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})

	result, err := w.ReadPage(window, Options{MaxNodes: 1})
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	if !result.Truncated {
		t.Error("Truncated = false, want true with MaxNodes=1")
	}
}

func TestInvokeUnknownRef(t *testing.T) {
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})
	if err := w.Invoke("ref_999", "press", fw.VInvalid()); err == nil {
		t.Fatal("Invoke() error = nil, want RefNotFound")
	}
}

func TestInvokePressDrivesClick(t *testing.T) {
	_, window := buildTree()
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})
	result, err := w.ReadPage(window, Options{})
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	var ref string
	for _, c := range result.Tree.Children {
		if c.Name == "Go" {
			ref = c.Ref
		}
	}
	if ref == "" {
		t.Fatal("button ref not found")
	}
	if err := w.Invoke(ref, "press", fw.VInvalid()); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
}

func TestConsoleMessagesNilWhenUnsupported(t *testing.T) {
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})
	if msgs := w.ConsoleMessages(); msgs != nil {
		t.Errorf("ConsoleMessages() = %v, want nil", msgs)
	}
}

func TestWebRoleForUnknownDefaultsGeneric(t *testing.T) {
	if got := webRoleFor("SomeUnknownRole"); got != "generic" {
		t.Errorf("webRoleFor() = %q, want generic", got)
	}
}

func TestFindAppendsRefsWithoutResettingReadPage(t *testing.T) {
	_, window := buildTree()
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})

	page, err := w.ReadPage(window, Options{})
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	var pageRef string
	for _, c := range page.Tree.Children {
		if c.Name == "Go" {
			pageRef = c.Ref
		}
	}
	if pageRef == "" {
		t.Fatal("button ref not found in ReadPage result")
	}

	matches, err := w.Find(window, "ready")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Ready" {
		t.Fatalf("Find() = %+v, want one match named Ready", matches)
	}

	if _, ok := w.Resolve(pageRef); !ok {
		t.Error("ref from the prior ReadPage no longer resolves after Find; Find must append, not reset")
	}
	if _, ok := w.Resolve(matches[0].Ref); !ok {
		t.Error("Find's own new ref does not resolve")
	}
}

func TestFindTooManyResultsErrors(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	for i := 0; i < maxFindResults+1; i++ {
		toykit.NewButton(window, fmt.Sprintf("btn%d", i), "Go")
	}
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})

	if _, err := w.Find(window, "go"); err == nil {
		t.Fatal("Find() error = nil, want FindTooManyResults")
	}
}

func TestPageTextConcatenatesVisibleNames(t *testing.T) {
	_, window := buildTree()
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})

	text, err := w.PageText(window)
	if err != nil {
		t.Fatalf("PageText() error = %v", err)
	}
	if !strings.Contains(text, "Go") || !strings.Contains(text, "Ready") {
		t.Errorf("PageText() = %q, want it to contain both widget texts", text)
	}
}

func TestNavigateUnknownRef(t *testing.T) {
	w := New(toykit.NewAccessibilityBackend(nil), fakeIDs{})
	if err := w.Navigate("ref_999"); err == nil {
		t.Fatal("Navigate() error = nil, want RefNotFound")
	}
}
