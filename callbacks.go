package dispatch

import "slices"

// An UnregisterFunc removes the callback whose registration returned it.
// It is idempotent: calling it more than once, or after a one-shot callback
// already fired, has no further effect.
type UnregisterFunc func()

// registry is the storage shared by [Callbacks] and [AsyncCallbacks]: an
// insertion-ordered collection of entries keyed by monotonically increasing
// ids. Ids are never reused within a registry's lifetime, so a stale id is
// always a no-op to remove.
type registry[F any] struct {
	entries map[int]entry[F]
	lastID  int
}

type entry[F any] struct {
	fn   F
	once bool
}

func (r *registry[F]) add(fn F, once bool) UnregisterFunc {
	if r.entries == nil {
		r.entries = make(map[int]entry[F])
	}
	r.lastID++
	id := r.lastID
	r.entries[id] = entry[F]{fn: fn, once: once}
	return func() {
		delete(r.entries, id)
	}
}

// snapshot returns the ids of all current entries in registration order.
// Ids are monotonic, so ascending id order is registration order regardless
// of map iteration order. The copy makes a batch stable against entries
// added or removed by the callbacks it runs.
func (r *registry[F]) snapshot() []int {
	ids := make([]int, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Callbacks is an ordered registry of direct callbacks invoked as a batch.
//
// A Callbacks is meant for cooperative, single-threaded dispatch and
// performs no locking; programs sharing one across goroutines must provide
// their own synchronization. The zero value is an empty registry ready for
// use, and a registry drained of all entries is reusable indefinitely.
type Callbacks struct {
	reg registry[Action]
}

// Register adds fn to the registry and returns the capability that removes
// it again. fn runs on every subsequent Invoke until unregistered.
// Registering while an Invoke is in progress is permitted; the new callback
// first runs on the next Invoke.
func (c *Callbacks) Register(fn Action) UnregisterFunc {
	if fn == nil {
		panic("dispatch: register of nil Action")
	}
	return c.reg.add(fn, false)
}

// RegisterOnce is like Register, but the callback is removed immediately
// after its first invocation, whether it returns or panics.
func (c *Callbacks) RegisterOnce(fn Action) UnregisterFunc {
	if fn == nil {
		panic("dispatch: register of nil Action")
	}
	return c.reg.add(fn, true)
}

// Count returns the number of currently registered callbacks.
func (c *Callbacks) Count() int {
	return len(c.reg.entries)
}

// Invoke runs every callback registered at the time of the call, in
// registration order. Callbacks may mutate the registry while the batch
// runs: an entry unregistered before it is reached is skipped, and entries
// registered during the batch are deferred to the next Invoke.
//
// A panicking callback stops the batch. Its one-shot removal still happens,
// the panic propagates to the caller of Invoke, and the remaining entries of
// the batch do not run.
func (c *Callbacks) Invoke() {
	for _, id := range c.reg.snapshot() {
		e, ok := c.reg.entries[id]
		if !ok {
			continue
		}
		c.invoke(id, e)
	}
}

func (c *Callbacks) invoke(id int, e entry[Action]) {
	if e.once {
		defer delete(c.reg.entries, id)
	}
	e.fn()
}
