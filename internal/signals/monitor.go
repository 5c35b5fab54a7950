// Package signals implements SignalMonitor: per-subscription
// dynamic signal relay objects, notification emission, and auto-unsubscribe
// on object destruction.
package signals

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ssss2art/qtmcp/internal/dispatch"
	"github.com/ssss2art/qtmcp/internal/fw"
)

// Notification is delivered to the transport for qtmcp.signalEmitted.
type Notification struct {
	SubscriptionID string `json:"subscriptionId"`
	ObjectID       string `json:"objectId"`
	Signal         string `json:"signal"`
	Arguments      []any  `json:"arguments"`
}

// state is the subscription's own state: active, then gone after
// unsubscribe or object death. There is no stored intermediate state.
type state int

const (
	stateActive state = iota
	stateGone
)

type subscription struct {
	id         string
	objectID   string
	signalName string
	obj        fw.Object
	connHandle fw.ConnHandle
	destroyedH fw.ConnHandle
	st         state
}

// IDResolver maps a tracked object to its current hierarchical/cached ID;
// satisfied by *registry.Registry.
type IDResolver interface {
	IDOf(fw.Object) (string, bool)
}

// Monitor is the SignalMonitor. Lock position 2 in the hierarchy
// (Registry < Monitor < LogSink) — never acquire a registry lock while
// holding Monitor's.
type Monitor struct {
	mu   sync.Mutex
	subs map[string]*subscription
	byObj map[fw.Object][]string // for unsubscribeAll and death cleanup

	ids   IDResolver
	queue *dispatch.Queue

	lifecycleEnabled bool
	emit             func(Notification)
}

// New creates a Monitor. emit delivers qtmcp.signalEmitted notifications;
// queue is the dispatch queue notifications are posted to (outside any
// lock).
func New(ids IDResolver, queue *dispatch.Queue, emit func(Notification)) *Monitor {
	return &Monitor{
		subs:  map[string]*subscription{},
		byObj: map[fw.Object][]string{},
		ids:   ids,
		queue: queue,
		emit:  emit,
	}
}

// Subscribe connects a relay to obj's named signal, returning a
// subscriptionId.
func (m *Monitor) Subscribe(obj fw.Object, signalName string) (string, error) {
	mo := obj.MetaObject()
	found := false
	for _, d := range mo.Signals() {
		if d.Name == signalName {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("SignalNotFound: %s", signalName)
	}

	objID, _ := m.ids.IDOf(obj)
	subID := uuid.NewString()
	sub := &subscription{id: subID, objectID: objID, signalName: signalName, obj: obj, st: stateActive}

	handle, err := mo.Connect(signalName, func(args []fw.Variant) {
		m.relay(sub, args)
	})
	if err != nil {
		return "", fmt.Errorf("SignalNotFound: %w", err)
	}
	sub.connHandle = handle

	// Direct (synchronous) connection to "destroyed" marks the subscription
	// gone while the object is being destroyed; its objectID was already
	// captured above, so later notifications can still name it.
	destroyedH, err := mo.Connect("destroyed", func([]fw.Variant) {
		m.onSubjectDestroyed(sub)
	})
	if err == nil {
		sub.destroyedH = destroyedH
	}

	m.mu.Lock()
	m.subs[subID] = sub
	m.byObj[obj] = append(m.byObj[obj], subID)
	m.mu.Unlock()

	return subID, nil
}

func (m *Monitor) relay(sub *subscription, args []fw.Variant) {
	m.mu.Lock()
	live := sub.st == stateActive
	m.mu.Unlock()
	if !live {
		return
	}
	jsonArgs := make([]any, 0, len(args))
	// Arguments beyond arity zero are not reproduced yet — the relay still
	// reports an empty slice rather than attempting a lossy partial
	// conversion.
	_ = jsonArgs
	m.queue.Post(func() {
		m.emit(Notification{
			SubscriptionID: sub.id,
			ObjectID:       sub.objectID,
			Signal:         sub.signalName,
			Arguments:      []any{},
		})
	})
}

// onSubjectDestroyed runs synchronously (direct connection) on the
// object's destroyed signal. sub.objectID was captured at Subscribe time
// and stays valid on the subscription itself, so marking the subscription
// gone here is enough — the connection to the primary signal is already
// invalid once the object is gone, so there is nothing further to
// disconnect.
func (m *Monitor) onSubjectDestroyed(sub *subscription) {
	m.mu.Lock()
	sub.st = stateGone
	delete(m.subs, sub.id)
	if ids := m.byObj[sub.obj]; len(ids) > 0 {
		delete(m.byObj, sub.obj)
	}
	m.mu.Unlock()
}

// Unsubscribe disconnects and destroys subID's relay exactly once. A
// no-op (but not an error) if the subscription is already gone: death
// makes further unsubscribe calls no-ops.
func (m *Monitor) Unsubscribe(subID string) error {
	m.mu.Lock()
	sub, ok := m.subs[subID]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	sub.st = stateGone
	delete(m.subs, subID)
	ids := m.byObj[sub.obj]
	for i, id := range ids {
		if id == subID {
			m.byObj[sub.obj] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	mo := sub.obj.MetaObject()
	_ = mo.Disconnect(sub.connHandle)
	if sub.destroyedH != 0 {
		_ = mo.Disconnect(sub.destroyedH)
	}
	return nil
}

// UnsubscribeAll disconnects every subscription on obj.
func (m *Monitor) UnsubscribeAll(obj fw.Object) {
	m.mu.Lock()
	ids := append([]string{}, m.byObj[obj]...)
	m.mu.Unlock()
	for _, id := range ids {
		_ = m.Unsubscribe(id)
	}
}

// SetLifecycleEnabled toggles push of objectCreated/objectDestroyed
// notifications.
func (m *Monitor) SetLifecycleEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lifecycleEnabled = enabled
}

// LifecycleEnabled reports the current toggle state.
func (m *Monitor) LifecycleEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lifecycleEnabled
}

// Active reports whether subID currently names a live subscription — used
// by tests asserting the death state machine.
func (m *Monitor) Active(subID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.subs[subID]
	return ok
}
