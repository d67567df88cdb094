package dispatch

// AsyncCallbacks is the suspendable counterpart of [Callbacks]: registered
// callbacks are [AsyncAction] values, and invoking the batch is itself a
// suspendable computation. Within one batch, each callback is driven to
// completion strictly before the next one starts.
//
// Like Callbacks, an AsyncCallbacks performs no locking and the zero value
// is ready for use.
type AsyncCallbacks struct {
	reg registry[AsyncAction]
}

// Register adds fn to the registry and returns the capability that removes
// it again. fn runs on every subsequently invoked batch until unregistered;
// registrations made while a batch is in progress take effect starting with
// the next batch.
func (c *AsyncCallbacks) Register(fn AsyncAction) UnregisterFunc {
	if fn == nil {
		panic("dispatch: register of nil AsyncAction")
	}
	return c.reg.add(fn, false)
}

// RegisterOnce is like Register, but the callback is removed immediately
// after its first invocation completes, fails, or panics.
func (c *AsyncCallbacks) RegisterOnce(fn AsyncAction) UnregisterFunc {
	if fn == nil {
		panic("dispatch: register of nil AsyncAction")
	}
	return c.reg.add(fn, true)
}

// Count returns the number of currently registered callbacks.
func (c *AsyncCallbacks) Count() int {
	return len(c.reg.entries)
}

// Invoke returns the batch running every callback registered at the time of
// the call, in registration order. No callback runs until the returned
// [Awaitable] is driven. The batch suspends whenever the callback currently
// running suspends, and resuming the batch resumes that callback.
//
// The snapshot discipline matches [Callbacks.Invoke]: entries unregistered
// before the batch reaches them are skipped, entries registered mid-batch
// wait for the next batch. A callback failure settles the batch with that
// error after the failing entry's one-shot removal; the remaining entries
// do not run. A panicking callback likewise has its one-shot removal
// performed before the panic propagates to the driver, and the pass ends
// with it: resuming the batch afterwards does not run the remaining
// entries.
func (c *AsyncCallbacks) Invoke() Awaitable[Unit] {
	return &batch{reg: &c.reg, ids: c.reg.snapshot()}
}

// batch drives the callbacks of one AsyncCallbacks invocation pass. It is
// the Awaitable returned by [AsyncCallbacks.Invoke].
type batch struct {
	reg     *registry[AsyncAction]
	ids     []int
	cur     Awaitable[Unit]
	curID   int
	curOnce bool
	err     error
	done    bool
}

func (b *batch) Resume() bool {
	if b.done {
		return true
	}
	for {
		if b.cur != nil {
			if !b.step() {
				return false
			}
			_, err := b.cur.Result()
			b.finish()
			if err != nil {
				b.err = err
				b.seal()
				return true
			}
		}
		if len(b.ids) == 0 {
			b.done = true
			return true
		}
		id := b.ids[0]
		b.ids = b.ids[1:]
		e, ok := b.reg.entries[id]
		if !ok {
			continue
		}
		b.start(id, e)
	}
}

// start calls the entry's AsyncAction to obtain the in-flight Awaitable.
// The entry's one-shot bookkeeping is armed first: a callback that panics
// while constructing its Awaitable is removed exactly like one that panics
// while running, and the pass dies with it.
func (b *batch) start(id int, e entry[AsyncAction]) {
	b.curID, b.curOnce = id, e.once
	panicked := true
	defer func() {
		if panicked {
			b.finish()
			b.seal()
		}
	}()
	aw := e.fn()
	panicked = false
	if aw == nil {
		b.finish()
		b.seal()
		panic("dispatch: AsyncAction returned nil Awaitable")
	}
	b.cur = aw
}

// step drives the in-flight callback one step. A suspension leaves the
// entry's bookkeeping untouched; the entry is removed only once its action
// settles or panics. A panic seals the batch after the bookkeeping.
func (b *batch) step() bool {
	panicked := true
	defer func() {
		if panicked {
			b.finish()
			b.seal()
		}
	}()
	settled := b.cur.Resume()
	panicked = false
	return settled
}

// seal ends the pass. Once a callback failure or panic propagated, the
// not-yet-reached snapshot entries must never run: a driver that recovers
// the panic and resumes the batch observes an already settled pass.
func (b *batch) seal() {
	b.ids = nil
	b.done = true
}

// finish completes the in-flight entry's bookkeeping: one-shot entries are
// removed from the registry. Removal by id is idempotent, so an entry that
// already unregistered itself is left alone.
func (b *batch) finish() {
	if b.curOnce {
		delete(b.reg.entries, b.curID)
	}
	b.cur = nil
	b.curOnce = false
}

func (b *batch) Done() bool { return b.done }

func (b *batch) Result() (Unit, error) { return Unit{}, b.err }
