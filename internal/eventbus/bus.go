package eventbus

import (
	"reflect"
	"sync"

	"clockd/pkg/logx"
)

// Kind names an event stream on the bus.
type Kind string

// Listener receives the payload for one event.
//
// The payload is only valid for the synchronous extent of the call;
// listeners must copy anything they keep.
type Listener func(payload any)

// Bus is a small in-memory dispatcher with per-kind listener sets.
//
// Contract:
//   - Listeners are invoked synchronously, in insertion order.
//   - Registration is identity-deduplicated: On() with a listener already
//     registered for that kind is a no-op.
//   - Emit dispatches over a snapshot taken at call time, so listeners may
//     subscribe/unsubscribe (or clear the bus) mid-dispatch without
//     affecting the in-flight emission.
//   - A panicking listener is isolated: it is logged and the remaining
//     listeners still run.
//
// Identity is the listener's code pointer. Method values and stored closures
// behave as expected; two closures minted from the same literal share an
// identity, so callers that need distinct registrations must use distinct
// functions.
type Bus struct {
	mu    sync.Mutex
	kinds map[Kind][]entry
	log   logx.Logger
}

type entry struct {
	key uintptr
	fn  Listener
}

func New(log logx.Logger) *Bus {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Bus{kinds: map[Kind][]entry{}, log: log}
}

func listenerKey(fn Listener) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// On registers fn for kind. Registering an already-present listener is a no-op.
func (b *Bus) On(kind Kind, fn Listener) {
	if fn == nil {
		return
	}
	key := listenerKey(fn)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.kinds[kind] {
		if e.key == key {
			return
		}
	}
	b.kinds[kind] = append(b.kinds[kind], entry{key: key, fn: fn})
}

// Off removes fn from kind. Removing an absent listener is a no-op.
func (b *Bus) Off(kind Kind, fn Listener) {
	if fn == nil {
		return
	}
	key := listenerKey(fn)

	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.kinds[kind]
	for i, e := range list {
		if e.key == key {
			b.kinds[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit dispatches payload to every listener registered for kind.
func (b *Bus) Emit(kind Kind, payload any) {
	b.mu.Lock()
	list := b.kinds[kind]
	snapshot := make([]entry, len(list))
	copy(snapshot, list)
	b.mu.Unlock()

	for _, e := range snapshot {
		b.dispatch(kind, e.fn, payload)
	}
}

func (b *Bus) dispatch(kind Kind, fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("listener panicked", logx.String("kind", string(kind)), logx.Any("panic", r))
		}
	}()
	fn(payload)
}

// Clear drops every listener set. Used on disposal.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.kinds = map[Kind][]entry{}
	b.mu.Unlock()
}

// Len reports the number of listeners registered for kind.
func (b *Bus) Len(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.kinds[kind])
}
