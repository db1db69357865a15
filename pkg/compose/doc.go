// Package compose provides the composition runtime primitives that effect
// layers build on: keyed memoization, change detection, disposable effects,
// and post-commit callbacks.
//
// # Model
//
// A Composition owns an explicit slot table indexed by call-site identity.
// Content is a plain function receiving a *Composer; every primitive call
// inside it (Remember, Changed, SideEffect, DisposableEffect) resolves to a
// stable slot keyed by the current group hash and a per-site sequence number.
// Wrap loops and conditional regions in Composer.Group to give their call
// sites distinct identities.
//
// # Commit cycle
//
// SetContent and Recompose run the content function as a build pass and then
// commit it: slots that were not revisited are torn down in reverse call
// order, newly remembered values are notified in call order, and the
// side-effect queue runs last. A pass that panics is abandoned: the previous
// table is kept, values created during the pass receive OnAbandoned, and no
// effects run.
//
// # Threading
//
// A Composition is single-threaded by contract. All calls, including
// Invalidate and Dispose, must happen on the goroutine that drives the
// composition. The runtime takes no locks.
package compose
