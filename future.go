package dispatch

// A Future is an [Awaitable] that is settled from the outside. It suspends
// every driver until Complete or Fail is called, which makes it the
// canonical genuine suspension point: an Awaitable built on a pending
// Future cannot settle in one step and is therefore rejected by [RunSync].
//
// The zero value is a pending Future ready for use.
type Future[T any] struct {
	value   T
	err     error
	settled bool
}

// NewFuture returns a pending Future.
func NewFuture[T any]() *Future[T] { return new(Future[T]) }

// Complete settles f with v.
//
// Settlement is one-shot: completing or failing a settled Future panics.
func (f *Future[T]) Complete(v T) {
	f.settle()
	f.value = v
}

// Fail settles f with err.
//
// Settlement is one-shot: completing or failing a settled Future panics.
func (f *Future[T]) Fail(err error) {
	f.settle()
	f.err = err
}

func (f *Future[T]) settle() {
	if f.settled {
		panic("dispatch: future settled twice")
	}
	f.settled = true
}

// Resume reports whether f settled. Drivers observing false must resume
// again after the event that settles f has fired.
func (f *Future[T]) Resume() bool { return f.settled }

// Done reports whether f settled.
func (f *Future[T]) Done() bool { return f.settled }

// Result returns the settlement of f. The return values are undefined until
// Done reports true.
func (f *Future[T]) Result() (T, error) { return f.value, f.err }
