// Package dom binds imperative side effects to the lifetime of one native
// element inside a declarative tree.
//
// An ElementScopeBase is created alongside each native element by the
// surrounding composable and bound to it exactly once via InitElement.
// Component authors then register effects through two operations:
//
// DisposableRefEffect runs once per key generation, receives the native
// element, and must return a cleanup. The cleanup runs when the key changes
// (before the next generation's effect) and when the scope leaves the tree.
//
// DomSideEffect runs after every successful commit on which its key is
// detected as changed, and may optionally register a cleanup through the
// scope it receives; that cleanup fires when the underlying holder is
// discarded.
//
// Example:
//
//	scope := dom.NewElementScope[*MyElement]()
//	scope.InitElement(el)
//
//	content := func(c *compose.Composer) {
//	    scope.DisposableRefEffect(c, userID, func(el *MyElement) func() {
//	        sub := el.Subscribe(userID)
//	        return sub.Cancel
//	    })
//	    scope.DomSideEffect(c, title, func(s dom.DomEffectScope[*MyElement], el *MyElement) {
//	        el.SetTitle(title)
//	        s.OnDispose(func(el *MyElement) { el.SetTitle("") })
//	    })
//	}
//
// All registration happens during a build pass on the composition's
// goroutine; the package adds no scheduling and no locking of its own.
package dom
