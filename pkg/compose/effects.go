package compose

// RememberObserver receives lifecycle callbacks for values held in the slot
// table. OnRemembered runs when a value enters the table at commit,
// OnForgotten when the table discards it (key change, structural removal,
// or composition dispose), and OnAbandoned when the pass that created it
// fails to commit.
type RememberObserver interface {
	OnRemembered()
	OnForgotten()
	OnAbandoned()
}

// disposableEffect runs its effect when remembered and the returned cleanup
// when forgotten. The cleanup fires at most once.
type disposableEffect struct {
	effect  func() func()
	cleanup func()
}

func (e *disposableEffect) OnRemembered() {
	e.cleanup = e.effect()
}

func (e *disposableEffect) OnForgotten() {
	if e.cleanup == nil {
		return
	}
	cleanup := e.cleanup
	e.cleanup = nil
	cleanup()
}

func (e *disposableEffect) OnAbandoned() {}

// DisposableEffect registers a keyed effect. The effect runs at commit when
// the call site first appears or key changes; the cleanup it returns runs
// when the key changes again (before the next generation's effect) or when
// the composition is disposed. Callers must return a cleanup function;
// returning nil means nothing runs at teardown.
func DisposableEffect(c *Composer, key any, effect func() func()) {
	Remember(c, key, func() *disposableEffect {
		return &disposableEffect{effect: effect}
	})
}
