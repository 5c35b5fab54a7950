package transport

import (
	"encoding/json"
	"testing"

	"github.com/ssss2art/qtmcp/internal/binding"
	"github.com/ssss2art/qtmcp/internal/config"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
	"github.com/ssss2art/qtmcp/internal/probe"
	"github.com/ssss2art/qtmcp/internal/signals"
)

func newTestServer(t *testing.T) (*Server, fw.Object) {
	t.Helper()
	app := toykit.NewApplication()
	window := toykit.NewWindow(app, "win", "Demo")
	toykit.NewButton(window, "go", "Go")

	p := probe.New(app, toykit.Hooks, 16, func(signals.Notification) {})
	p.Start()
	t.Cleanup(p.Stop)

	backends := binding.Backends{
		Dispatcher:    toykit.NewEventDispatcher(),
		Screen:        toykit.NewScreenBackend(1.0),
		Hit:           toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 1.0),
		Accessibility: toykit.NewAccessibilityBackend(nil),
	}
	srv := NewServer(p, backends, config.Config{Port: 0})
	return srv, window
}

func TestCallDispatchesNativeMethod(t *testing.T) {
	srv, _ := newTestServer(t)
	params, _ := json.Marshal(map[string]any{"name": "go"})

	out, err := srv.call("qt.objects.find", params)
	if err != nil {
		t.Fatalf("call(qt.objects.find) error = %v", err)
	}
	results, ok := out.([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("call(qt.objects.find) = %v, want one match", out)
	}
}

func TestCallDispatchesCoordinateMethod(t *testing.T) {
	srv, _ := newTestServer(t)
	params, _ := json.Marshal(map[string]any{"physical": false})

	if _, err := srv.call("cu.captureScreen", params); err != nil {
		t.Fatalf("call(cu.captureScreen) error = %v", err)
	}
}

func TestCallDispatchesAccessibilityMethod(t *testing.T) {
	srv, window := newTestServer(t)
	id, _ := srv.probe.IDOf(window)
	params, _ := json.Marshal(map[string]any{"windowId": id})

	if _, err := srv.call("chr.readPage", params); err != nil {
		t.Fatalf("call(chr.readPage) error = %v", err)
	}
}

func TestCallUnknownMethod(t *testing.T) {
	srv, _ := newTestServer(t)
	if _, err := srv.call("qt.bogus.method", nil); err == nil {
		t.Fatal("call(unknown method) error = nil, want MethodNotFound")
	}
}

func TestBroadcastWithNoClientsIsNoop(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.BroadcastObjectAdded("win/go")
	srv.BroadcastObjectRemoved("win/go")
}
