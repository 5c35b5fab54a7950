// Command qtmcp-demo-host is a standalone "host application" exercising
// the probe against the toykit reference binding: a throwaway target
// to attach to and poke at. It builds a small widget tree, attaches the
// probe, and blocks.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ssss2art/qtmcp/internal/binding"
	"github.com/ssss2art/qtmcp/internal/bootstrap"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/fw/toykit"
)

func main() {
	app := toykit.NewApplication()

	window := toykit.NewWindow(app, "mainWindow", "Demo Host")
	button := toykit.NewButton(window, "submitButton", "Submit")
	_ = button.SetProperty("geometry", fw.VRect(fw.Rect{X: 20, Y: 20, W: 100, H: 30}))
	edit := toykit.NewLineEdit(window, "nameEdit")
	_ = edit.SetProperty("geometry", fw.VRect(fw.Rect{X: 20, Y: 60, W: 200, H: 24}))
	_ = toykit.NewLabel(window, "statusLabel", "Ready")

	rows := [][]string{{"Alice", "32"}, {"Bob", "annotation"}, {"Carol", "29"}}
	model := toykit.NewTableModel("PeopleModel", []string{"name", "age"}, rows)
	toykit.NewListView(window, "peopleList", model)

	var consoleLog func() []fw.ConsoleMessage
	backends := binding.Backends{
		Dispatcher:    toykit.NewEventDispatcher(),
		Screen:        toykit.NewScreenBackend(2.0),
		Hit:           toykit.NewHitBackend(func() []fw.Object { return app.TopLevels() }, 2.0),
		Accessibility: toykit.NewAccessibilityBackend(consoleLog),
	}

	b := bootstrap.Attach(app, toykit.Hooks, backends)
	if b == nil {
		log.Println("[qtmcp-demo-host] probe disabled (ENABLED=false); running target only")
	} else {
		log.Println("[qtmcp-demo-host] probe attached, listening for WebSocket clients")
		defer b.Shutdown()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
