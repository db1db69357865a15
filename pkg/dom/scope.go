package dom

import (
	"github.com/sonder-joker/compose-jb/pkg/compose"
)

// DOMScope provides read-only access to the native element. Hand this
// narrower capability to contexts that should not attach effects.
type DOMScope[T any] interface {
	// Element returns the native element owned by the scope.
	Element() T
}

// ElementScope is the full per-element capability: element access plus
// effect registration.
type ElementScope[T any] interface {
	DOMScope[T]

	// DisposableRefEffect registers a disposable keyed effect bound to the
	// scope's element. See ElementScopeBase.DisposableRefEffect.
	DisposableRefEffect(c *compose.Composer, key any, effect func(element T) func())

	// DomSideEffect registers a post-commit side effect bound to the
	// scope's element. See ElementScopeBase.DomSideEffect.
	DomSideEffect(c *compose.Composer, key any, effect func(scope DomEffectScope[T], element T))
}

// ElementScopeBase is the concrete element-bound effect scope. One scope is
// created per native element by the composable that constructs the element;
// the element reference is assigned exactly once, before any effect runs.
//
// The scope is not safe for concurrent use. Like everything driven by a
// Composition, it must only be touched on the composition's goroutine.
type ElementScopeBase[T any] struct {
	element T
	bound   bool

	// nextDomEffectKey synthesizes distinct identities for unkeyed
	// DomSideEffect calls, in call order.
	nextDomEffectKey int
}

var _ ElementScope[any] = (*ElementScopeBase[any])(nil)

// NewElementScope creates a scope with no element bound yet.
func NewElementScope[T any]() *ElementScopeBase[T] {
	return &ElementScopeBase[T]{}
}

// InitElement binds the native element to the scope. It must be called
// exactly once, by the surrounding composable, before any effect runs.
func (s *ElementScopeBase[T]) InitElement(element T) {
	if s.bound {
		panic("dom: element already bound to this scope")
	}
	s.element = element
	s.bound = true
}

// Element returns the native element owned by this scope.
func (s *ElementScopeBase[T]) Element() T {
	return s.element
}

// DisposableRefEffect registers an effect that receives the native element
// and returns a cleanup. The effect runs once when the scope first appears
// with the given key and re-runs when the key changes, with the previous
// cleanup running first; the final cleanup runs when the scope leaves the
// tree. A nil key behaves as a constant key: the effect runs once for the
// element's entire mounted lifetime.
//
// Callers must return a cleanup. Returning nil is a contract violation:
// whatever the effect acquired is never released.
func (s *ElementScopeBase[T]) DisposableRefEffect(c *compose.Composer, key any, effect func(element T) func()) {
	compose.DisposableEffect(c, key, func() func() {
		return effect(s.element)
	})
}

// DomSideEffect registers a side effect that runs after every successful
// commit on which key is detected as changed from the previous commit; the
// first commit counts as changed. The effect may register a cleanup through
// the scope it receives, fired when the holder for this key is discarded
// (key changes again, or the scope leaves the tree).
//
// A nil key synthesizes a fresh key from the scope's counter on every
// invocation, so each unkeyed call is a new identity each commit: the
// effect runs after every successful commit and each generation gets
// exactly one teardown.
func (s *ElementScopeBase[T]) DomSideEffect(c *compose.Composer, key any, effect func(scope DomEffectScope[T], element T)) {
	if key == nil {
		key = s.nextDomEffectKey
		s.nextDomEffectKey++
	}
	changed := compose.Changed(c, key)
	holder := compose.Remember(c, key, func() *domEffectHolder[T] {
		return &domEffectHolder[T]{scope: s}
	})
	compose.SideEffect(c, func() {
		if changed {
			effect(holder, s.element)
		}
	})
}
