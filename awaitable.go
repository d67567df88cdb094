package dispatch

// Unit is the result type of computations that are run for their effects
// only.
type Unit = struct{}

// Awaitable instances expose APIs allowing the program to drive suspendable
// computations.
//
// The type parameter T is the type of the value that the computation
// produces when it completes.
type Awaitable[T any] interface {
	// Resume drives the computation until it completes, fails, or reaches a
	// suspension point. The method returns true if the computation settled,
	// after which the program should call Result to obtain the produced
	// value. It returns false if the computation suspended; the program must
	// call Resume again after the event the computation waits on has fired.
	//
	// Calling Resume again after the computation settled has no effect and
	// returns true.
	Resume() bool

	// Done reports whether the computation completed or failed.
	Done() bool

	// Result returns the value that the computation produced, or the error
	// it failed with. The return values are undefined until Done reports
	// true.
	Result() (T, error)
}

// Ready returns an Awaitable that has already completed with v. Driving it
// never suspends.
func Ready[T any](v T) Awaitable[T] { return settled[T]{value: v} }

// Reject returns an Awaitable that has already failed with err.
func Reject[T any](err error) Awaitable[T] { return settled[T]{err: err} }

type settled[T any] struct {
	value T
	err   error
}

func (s settled[T]) Resume() bool       { return true }
func (s settled[T]) Done() bool         { return true }
func (s settled[T]) Result() (T, error) { return s.value, s.err }

// Func returns an Awaitable that runs f to completion on its first Resume
// and never suspends. f does not run until the Awaitable is driven; a panic
// in f propagates to the caller of Resume and the Awaitable settles with the
// zero value.
func Func[T any](f func() (T, error)) Awaitable[T] {
	if f == nil {
		panic("dispatch: Func of nil function")
	}
	return &funcAwaitable[T]{f: f}
}

type funcAwaitable[T any] struct {
	f     func() (T, error)
	value T
	err   error
	done  bool
}

func (a *funcAwaitable[T]) Resume() bool {
	if !a.done {
		f := a.f
		a.f = nil
		a.done = true // Settle first so a panicking f does not rerun.
		a.value, a.err = f()
	}
	return true
}

func (a *funcAwaitable[T]) Done() bool         { return a.done }
func (a *funcAwaitable[T]) Result() (T, error) { return a.value, a.err }

// Then returns an Awaitable that drives aw to completion and then drives the
// Awaitable produced by f from its value. A failure of aw settles the
// composition with that error and f does not run.
//
// Then does not introduce suspension points of its own: when aw and the
// continuation both settle on the spot, so does the composition. Only a
// genuine suspension in one of the two surfaces to the driver.
func Then[T, U any](aw Awaitable[T], f func(T) Awaitable[U]) Awaitable[U] {
	if aw == nil {
		panic("dispatch: Then of nil Awaitable")
	}
	if f == nil {
		panic("dispatch: Then of nil continuation")
	}
	return &thenAwaitable[T, U]{first: aw, f: f}
}

type thenAwaitable[T, U any] struct {
	first Awaitable[T]
	f     func(T) Awaitable[U]
	next  Awaitable[U]
	value U
	err   error
	done  bool
}

func (a *thenAwaitable[T, U]) Resume() bool {
	if a.done {
		return true
	}
	if a.next == nil {
		if !a.first.Resume() {
			return false
		}
		v, err := a.first.Result()
		f := a.f
		a.first, a.f = nil, nil
		if err != nil {
			a.err = err
			a.done = true
			return true
		}
		next := f(v)
		if next == nil {
			panic("dispatch: Then continuation returned nil Awaitable")
		}
		a.next = next
	}
	if !a.next.Resume() {
		return false
	}
	a.value, a.err = a.next.Result()
	a.next = nil
	a.done = true
	return true
}

func (a *thenAwaitable[T, U]) Done() bool         { return a.done }
func (a *thenAwaitable[T, U]) Result() (U, error) { return a.value, a.err }
