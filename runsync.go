package dispatch

// A SuspendError is the panic value used by [RunSync] when a computation
// that was assumed to be synchronous reached a suspension point.
type SuspendError struct{}

func (*SuspendError) Error() string {
	return "dispatch: computation suspended; it did not settle in one driving step"
}

// RunSync drives aw, which must settle without suspending, and returns its
// result. It is the bridge that lets code with no driver of its own run a
// suspendable computation: the computation is given exactly one driving
// step.
//
// A computation qualifies when driving it never hands control back to an
// external driver. It may pass through any number of nested awaitables, as
// long as each of them settles on the spot; only a suspension that would
// genuinely reach the driver counts. If aw does suspend, RunSync panics
// with a [*SuspendError] — a programming contract violation, deliberately
// distinct from the error return used when the computation fails on its
// own. Passing a nil Awaitable panics before any driving happens.
func RunSync[T any](aw Awaitable[T]) (T, error) {
	if aw == nil {
		panic("dispatch: RunSync of nil Awaitable")
	}
	if !aw.Resume() {
		panic(&SuspendError{})
	}
	return aw.Result()
}
