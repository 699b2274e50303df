package eventbus

import (
	"testing"

	"clockd/pkg/logx"
)

func TestEmitInsertionOrder(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())

	var order []int
	first := func(any) { order = append(order, 1) }
	second := func(any) { order = append(order, 2) }
	third := func(any) { order = append(order, 3) }

	b.On("tick", first)
	b.On("tick", second)
	b.On("tick", third)
	b.Emit("tick", nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("dispatch order = %v, want [1 2 3]", order)
	}
}

func TestOnDeduplicatesByIdentity(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())

	calls := 0
	var fn Listener = func(any) { calls++ }
	b.On("tick", fn)
	b.On("tick", fn)

	if n := b.Len("tick"); n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}
	b.Emit("tick", nil)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestOffAbsentIsNoop(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())
	b.Off("tick", func(any) {})

	var fn Listener = func(any) {}
	b.On("tick", fn)
	b.Off("other", fn)
	if n := b.Len("tick"); n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}
	b.Off("tick", fn)
	if n := b.Len("tick"); n != 0 {
		t.Fatalf("Len = %d, want 0 after Off", n)
	}
}

func TestEmitUsesSnapshot(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())

	var calls []string
	var late Listener = func(any) { calls = append(calls, "late") }
	var early Listener
	early = func(any) {
		calls = append(calls, "early")
		// Removing a later listener mid-emit must not affect this dispatch.
		b.Off("tick", late)
	}

	b.On("tick", early)
	b.On("tick", late)

	b.Emit("tick", nil)
	if len(calls) != 2 || calls[1] != "late" {
		t.Fatalf("first emit calls = %v, want [early late]", calls)
	}

	calls = nil
	b.Emit("tick", nil)
	if len(calls) != 1 || calls[0] != "early" {
		t.Fatalf("second emit calls = %v, want [early]", calls)
	}
}

func TestPanickingListenerIsIsolated(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())

	var survived bool
	b.On("tick", func(any) { panic("listener bug") })
	b.On("tick", func(any) { survived = true })

	b.Emit("tick", nil)
	if !survived {
		t.Fatal("panic in one listener prevented the next from running")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())

	calls := 0
	b.On("tick", func(any) { calls++ })
	b.On("tock", func(any) { calls++ })
	b.Clear()

	b.Emit("tick", nil)
	b.Emit("tock", nil)
	if calls != 0 {
		t.Fatalf("calls after Clear = %d, want 0", calls)
	}
}

func TestEmitNoListeners(t *testing.T) {
	t.Parallel()
	b := New(logx.Nop())
	b.Emit("tick", 42) // must not panic
}
