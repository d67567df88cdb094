package dispatch

import (
	"errors"
	"testing"
)

func TestReady(t *testing.T) {
	aw := Ready(42)
	if !aw.Resume() {
		t.Fatal("Ready suspended")
	}
	if !aw.Done() {
		t.Fatal("Ready not done")
	}
	if v, err := aw.Result(); v != 42 || err != nil {
		t.Errorf("wrong result: v=%v err=%v", v, err)
	}
}

func TestReject(t *testing.T) {
	fail := errors.New("failed")
	aw := Reject[int](fail)
	if !aw.Resume() {
		t.Fatal("Reject suspended")
	}
	if _, err := aw.Result(); !errors.Is(err, fail) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestFuncLazy(t *testing.T) {
	n := 0
	aw := Func(func() (int, error) {
		n++
		return n, nil
	})

	if n != 0 {
		t.Fatal("function ran before the Awaitable was driven")
	}
	if !aw.Resume() {
		t.Fatal("Func suspended")
	}
	aw.Resume() // settled, no effect
	if v, _ := aw.Result(); v != 1 || n != 1 {
		t.Errorf("function ran %d times, result %d", n, v)
	}
}

func TestFuncPanicSettles(t *testing.T) {
	n := 0
	aw := Func(func() (int, error) {
		n++
		panic("boom")
	})

	func() {
		defer func() {
			if v := recover(); v != "boom" {
				t.Errorf("wrong panic value: %v", v)
			}
		}()
		aw.Resume()
	}()

	if !aw.Done() {
		t.Error("panicking Func not settled")
	}
	if !aw.Resume() || n != 1 {
		t.Errorf("panicking function ran again: n=%d", n)
	}
}

func TestFutureSuspends(t *testing.T) {
	f := NewFuture[string]()
	if f.Resume() {
		t.Fatal("pending future settled")
	}
	if f.Done() {
		t.Fatal("pending future done")
	}

	f.Complete("done")
	if !f.Resume() {
		t.Fatal("completed future suspended")
	}
	if v, err := f.Result(); v != "done" || err != nil {
		t.Errorf("wrong result: v=%v err=%v", v, err)
	}
}

func TestFutureSettleTwice(t *testing.T) {
	f := NewFuture[int]()
	f.Complete(1)

	defer func() {
		if recover() == nil {
			t.Error("double settlement did not panic")
		}
	}()
	f.Fail(errors.New("late"))
}

func TestThenChainsSynchronously(t *testing.T) {
	// Nested awaitables that settle on the spot never surface a suspension.
	aw := Then(Ready(1), func(v int) Awaitable[int] {
		return Then(Ready(v+1), func(v int) Awaitable[int] {
			return Func(func() (int, error) { return v * 10, nil })
		})
	})
	if !aw.Resume() {
		t.Fatal("synchronous chain suspended")
	}
	if v, err := aw.Result(); v != 20 || err != nil {
		t.Errorf("wrong result: v=%v err=%v", v, err)
	}
}

func TestThenSuspendsOnPendingFuture(t *testing.T) {
	f := NewFuture[int]()
	ran := false
	aw := Then[int, int](f, func(v int) Awaitable[int] {
		ran = true
		return Ready(v * 2)
	})

	if aw.Resume() {
		t.Fatal("chain settled although the future is pending")
	}
	if ran {
		t.Fatal("continuation ran before the future settled")
	}

	f.Complete(21)
	if !aw.Resume() {
		t.Fatal("chain did not settle after the future")
	}
	if v, _ := aw.Result(); v != 42 {
		t.Errorf("wrong result: %v", v)
	}
}

func TestThenShortCircuitsOnError(t *testing.T) {
	fail := errors.New("failed")
	ran := false
	aw := Then(Reject[int](fail), func(int) Awaitable[int] {
		ran = true
		return Ready(0)
	})

	if !aw.Resume() {
		t.Fatal("chain suspended")
	}
	if _, err := aw.Result(); !errors.Is(err, fail) {
		t.Errorf("wrong error: %v", err)
	}
	if ran {
		t.Error("continuation ran after a failure")
	}
}
