package probe

import (
	"testing"
	"time"

	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
	"github.com/ssss2art/qtmcp/internal/signals"
)

func TestNewWiresRegistryAndMonitorAndTracksExisting(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")

	notifications := make(chan signals.Notification, 8)
	p := New(app, toykit.Hooks, 8, func(n signals.Notification) { notifications <- n })
	p.Start()
	defer p.Stop()

	if !p.Contains(window) {
		t.Error("Contains(window) = false, want true (existing tree tracked on Install)")
	}
}

func TestProbeEmbeddingExposesRegistryAndMonitorMethods(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "go", "Go")

	notifications := make(chan signals.Notification, 8)
	p := New(app, toykit.Hooks, 8, func(n signals.Notification) { notifications <- n })
	p.Start()
	defer p.Stop()

	id, ok := p.IDOf(btn)
	if !ok {
		t.Fatal("IDOf(btn) not found via embedded Registry")
	}

	subID, err := p.Subscribe(btn, "clicked")
	if err != nil {
		t.Fatalf("Subscribe() error = %v via embedded Monitor", err)
	}
	btn.Click()

	select {
	case n := <-notifications:
		if n.ObjectID != id {
			t.Errorf("notification ObjectID = %q, want %q", n.ObjectID, id)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for clicked notification")
	}
	if !p.Active(subID) {
		t.Error("Active(subID) = false, want true before any destroy/unsubscribe")
	}
}

func TestOnClientDisconnectClearsNumericIDsOnly(t *testing.T) {
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	btn := toykit.NewButton(window, "go", "Go")

	p := New(app, toykit.Hooks, 8, func(signals.Notification) {})
	p.Start()
	defer p.Stop()

	p.RegisterAlias("goButton", mustID(t, p, btn))
	n := p.NumericIDFor(btn)

	p.OnClientDisconnect()

	if _, ok := p.Resolve("#" + itoaHelper(n)); ok {
		t.Error("numeric id still resolves after OnClientDisconnect, want cleared")
	}
	if !p.ValidateAlias("goButton") {
		t.Error("alias was cleared by OnClientDisconnect, want it preserved")
	}
}

func mustID(t *testing.T, p *Probe, o fw.Object) string {
	t.Helper()
	id, ok := p.IDOf(o)
	if !ok {
		t.Fatalf("IDOf() not found")
	}
	return id
}

func itoaHelper(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
