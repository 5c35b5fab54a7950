// Package probe composes ObjectRegistry, SignalMonitor and LogSink into the
// single wiring surface handlers are built against.
package probe

import (
	"github.com/ssss2art/qtmcp/internal/dispatch"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/logsink"
	"github.com/ssss2art/qtmcp/internal/registry"
	"github.com/ssss2art/qtmcp/internal/signals"
)

// Probe is the probe's full in-process state: registry, signal monitor and
// log sink, plus the dispatch queue all three post deferred notifications
// through.
type Probe struct {
	*registry.Registry
	*signals.Monitor

	Log   *logsink.Sink
	Queue *dispatch.Queue
}

// New builds a Probe over app, installing the registry's creation/
// destruction hooks and wiring the signal monitor's notifications through
// emitSignal.
func New(app fw.Application, hooks *fw.HookSlots, queueCapacity int, emitSignal func(signals.Notification)) *Probe {
	queue := dispatch.New(queueCapacity)
	reg := registry.New(app, hooks, queue)
	mon := signals.New(reg, queue, emitSignal)
	log := logsink.New(nil)

	return &Probe{Registry: reg, Monitor: mon, Log: log, Queue: queue}
}

// Start installs the registry hooks and starts pumping the dispatch queue
// on a goroutine of its own, simulating the framework's single GUI-thread
// event loop, then returns; Stop ends it.
func (p *Probe) Start() {
	p.Registry.Install()
	go p.Queue.Pump()
}

// Stop restores the framework's prior hook occupants and ends the dispatch
// loop.
func (p *Probe) Stop() {
	p.Registry.Uninstall()
	p.Queue.Stop()
}

// Logs returns the log sink, named distinctly from the Log field so
// surfaces can depend on a method-only interface.
func (p *Probe) Logs() *logsink.Sink { return p.Log }

// OnClientDisconnect clears session-scoped state a fresh client shouldn't
// inherit — numeric IDs and, via the caller, accessibility ref maps —
// while leaving subscriptions and aliases intact.
func (p *Probe) OnClientDisconnect() {
	p.Registry.ClearNumericIDs()
}
