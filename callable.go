package dispatch

// A Callable is a no-argument computation that can be registered with a
// callback registry. The set of variants is closed: a Callable is either an
// [Action], which produces its effects on the spot when called, or an
// [AsyncAction], which returns an [Awaitable] producing the effects when
// driven. Intermediate wrappers participate by implementing [Wrapper].
type Callable interface {
	callable()
}

// An Action is a direct computation: calling it runs it to completion.
type Action func()

// An AsyncAction is a suspendable computation: calling it returns an
// [Awaitable] which produces the computation's effects when driven.
type AsyncAction func() Awaitable[Unit]

func (Action) callable()      {}
func (AsyncAction) callable() {}

// A Wrapper defers its call behavior to another Callable, typically by
// embedding it. [Classify] and [Async] see through wrappers: a Callable is
// judged by its effective call target, not by its outermost layer.
type Wrapper interface {
	Callable
	Unwrap() Callable
}

// Kind discriminates the two Callable variants.
type Kind int

const (
	// Direct computations complete on first invocation.
	Direct Kind = iota
	// Suspendable computations may require multiple driving steps.
	Suspendable
)

// String returns "direct" or "suspendable".
func (k Kind) String() string {
	if k == Suspendable {
		return "suspendable"
	}
	return "direct"
}

// target follows Unwrap chains to the effective call target of c.
func target(c Callable) Callable {
	for {
		w, ok := c.(Wrapper)
		if !ok {
			return c
		}
		c = w.Unwrap()
	}
}

// Classify reports whether c is a direct or a suspendable computation,
// without calling it. Wrappers are classified by their effective call
// target: Classify returns Suspendable only when the target is an
// [AsyncAction].
func Classify(c Callable) Kind {
	if _, ok := target(c).(AsyncAction); ok {
		return Suspendable
	}
	return Direct
}

// Async adapts c to the suspendable calling protocol.
//
// If c is already suspendable, Async returns its effective [AsyncAction]
// unchanged. Otherwise the returned AsyncAction yields an [Awaitable] that
// runs the direct action on its first Resume and never suspends. Adapting
// changes only the protocol used to invoke the action: its effects, its
// panics, and the point in the driving protocol at which they occur are
// those of the action itself.
func Async(c Callable) AsyncAction {
	switch t := target(c).(type) {
	case AsyncAction:
		if t == nil {
			panic("dispatch: Async of nil AsyncAction")
		}
		return t
	case Action:
		if t == nil {
			panic("dispatch: Async of nil Action")
		}
		return func() Awaitable[Unit] {
			return Func(func() (Unit, error) {
				t()
				return Unit{}, nil
			})
		}
	default:
		panic("dispatch: Async of nil Callable")
	}
}
