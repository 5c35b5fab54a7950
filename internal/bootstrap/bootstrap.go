// Package bootstrap performs the probe's one-shot initialization: reading
// configuration, attaching to the already-constructed application
// singleton, and starting every surface behind its own failure boundary so
// one broken subsystem never takes the whole probe down.
package bootstrap

import (
	"fmt"
	"os"
	"sync"

	"github.com/ssss2art/qtmcp/internal/binding"
	"github.com/ssss2art/qtmcp/internal/config"
	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/probe"
	"github.com/ssss2art/qtmcp/internal/signals"
	"github.com/ssss2art/qtmcp/internal/transport"
)

var (
	once     sync.Once
	instance *Bootstrapper
)

// Bootstrapper wires configuration, the Probe, and the transport together.
// Attach runs exactly once per process:
// a real binding calls Attach from the application singleton's
// construction path; subsequent calls are no-ops.
type Bootstrapper struct {
	cfg   config.Config
	probe *probe.Probe
	srv   *transport.Server
}

// Attach builds and starts the probe against app, if ENABLED is set, and
// returns the Bootstrapper (nil if disabled). Re-entrant calls after the
// first are no-ops returning the original instance.
func Attach(app fw.Application, hooks *fw.HookSlots, backends binding.Backends) *Bootstrapper {
	once.Do(func() {
		cfg := config.Load()
		if !cfg.Enabled {
			return
		}
		instance = newBootstrapper(cfg, app, hooks, backends)
		instance.start()
	})
	return instance
}

func newBootstrapper(cfg config.Config, app fw.Application, hooks *fw.HookSlots, backends binding.Backends) *Bootstrapper {
	var srv *transport.Server
	p := probe.New(app, hooks, 256, func(n signals.Notification) {
		if srv != nil {
			srv.BroadcastSignalEmitted(n)
		}
	})
	p.OnObjectAdded(func(o fw.Object) {
		if srv == nil || !p.LifecycleEnabled() {
			return
		}
		if id, ok := p.IDOf(o); ok {
			srv.BroadcastObjectAdded(id)
		}
	})
	p.OnObjectRemoved(func(objectID string) {
		if srv == nil || !p.LifecycleEnabled() {
			return
		}
		srv.BroadcastObjectRemoved(objectID)
	})
	srv = transport.NewServer(p, backends, cfg)
	return &Bootstrapper{cfg: cfg, probe: p, srv: srv}
}

// start installs the registry and starts the transport listener behind a
// recover boundary: a failed surface logs and disables itself, it never
// crashes the host application.
func (b *Bootstrapper) start() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[qtmcp] bootstrap failed: %v\n", r)
		}
	}()
	b.probe.Start()
	go b.srv.ListenAndServe()
}

// Probe exposes the running Probe, e.g. for a demo host's own wiring.
func (b *Bootstrapper) Probe() *probe.Probe { return b.probe }

// Shutdown stops the transport and the probe. Not called by a real
// in-process binding (the host process simply exits), but useful for
// tests and the demo host's clean shutdown path.
func (b *Bootstrapper) Shutdown() {
	b.srv.Close()
	b.probe.Stop()
}
