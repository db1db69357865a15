// Package testing provides a harness for driving compositions in tests
// without a host frame loop.
//
// CompositionTester mounts content, pumps recomposition frames on demand,
// and records lifecycle events so tests can assert effect and cleanup
// ordering:
//
//	ct := comptest.NewCompositionTesterWithT(t)
//	ct.SetContent(func(c *compose.Composer) {
//	    scope.DisposableRefEffect(c, key, func(el *fakeElement) func() {
//	        ct.Record("effect " + el.id)
//	        return func() { ct.Record("cleanup " + el.id) }
//	    })
//	})
//	ct.Pump()
package testing
