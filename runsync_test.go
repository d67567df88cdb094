package dispatch

import (
	"errors"
	"testing"
)

func TestRunSync(t *testing.T) {
	n := 0
	v, err := RunSync(Func(func() (int, error) {
		n++
		return 42, nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 || n != 1 {
		t.Errorf("wrong result: v=%v n=%v", v, n)
	}
}

// Draining an adapted direct action returns what the action produces, with
// identical side effects.
func TestRunSyncAdaptedAction(t *testing.T) {
	var direct, drained []string
	action := func(log *[]string) func() {
		return func() { *log = append(*log, "effect") }
	}

	action(&direct)()
	if _, err := RunSync(Async(Action(action(&drained)))()); err != nil {
		t.Fatal(err)
	}

	if len(direct) != 1 || len(drained) != 1 || direct[0] != drained[0] {
		t.Errorf("side effects differ: direct=%v drained=%v", direct, drained)
	}
}

func TestRunSyncComputationError(t *testing.T) {
	fail := errors.New("failed")
	_, err := RunSync(Reject[int](fail))
	if !errors.Is(err, fail) {
		t.Errorf("wrong error: %v", err)
	}
}

// Nested awaitables that each settle on the spot do not count as
// suspensions, no matter how deep the chain.
func TestRunSyncNestedSettlement(t *testing.T) {
	aw := Awaitable[int](Ready(0))
	for i := 0; i < 100; i++ {
		aw = Then(aw, func(v int) Awaitable[int] { return Ready(v + 1) })
	}
	v, err := RunSync(aw)
	if err != nil {
		t.Fatal(err)
	}
	if v != 100 {
		t.Errorf("wrong result: %v", v)
	}
}

func TestRunSyncSuspensionViolation(t *testing.T) {
	f := NewFuture[int]()
	aw := Then[int, int](f, func(v int) Awaitable[int] { return Ready(v) })

	defer func() {
		v := recover()
		if _, ok := v.(*SuspendError); !ok {
			t.Errorf("wrong panic value: %#v", v)
		}
	}()
	RunSync(aw)
	t.Error("suspending computation was drained")
}

func TestRunSyncNilAwaitable(t *testing.T) {
	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("RunSync(nil) did not panic")
		}
		if _, ok := v.(*SuspendError); ok {
			t.Error("nil input reported as a suspension violation")
		}
	}()
	RunSync[int](nil)
}

// A failing computation is the computation's own business: it must never be
// confused with a suspension violation.
func TestRunSyncErrorIsNotViolation(t *testing.T) {
	_, err := RunSync(Func(func() (int, error) { return 0, errors.New("own error") }))
	if err == nil {
		t.Fatal("expected an error")
	}
	var se *SuspendError
	if errors.As(err, &se) {
		t.Error("computation error reported as a suspension violation")
	}
}
