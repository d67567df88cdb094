// Package dispatch implements the callback registries and the synchronous
// coroutine draining that cooperative, single-threaded schedulers are built
// on.
//
// The package revolves around three ideas:
//
//   - An [Awaitable] is a computation that may require multiple driving
//     steps before it produces a value. Driving is explicit: the program
//     calls Resume until the computation settles, and a computation that is
//     waiting on an external event reports a suspension instead of blocking.
//
//   - [Callbacks] and [AsyncCallbacks] are ordered registries of deferred
//     computations invoked as a batch. Registration returns an idempotent
//     unregister capability, callbacks can be one-shot, and a batch runs
//     against a stable snapshot so callbacks may freely register and
//     unregister entries while the batch is in progress.
//
//   - [RunSync] drives an Awaitable that is asserted to be synchronous in
//     fact: it must settle on the first driving step. A computation that
//     instead reaches a suspension point violates the contract, which is
//     reported as a panic rather than an error value.
//
// All operations are meant to execute on a single cooperative thread of
// control. Registries and awaitables perform no locking; programs that share
// them across goroutines must provide their own synchronization.
package dispatch
