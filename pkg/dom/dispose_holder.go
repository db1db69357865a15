package dom

// DomEffectScope lets a DomSideEffect body optionally register a cleanup.
// The cleanup receives the scope's element and fires exactly once, when the
// runtime discards the holder it was registered on.
type DomEffectScope[T any] interface {
	OnDispose(cleanup func(element T))
}

// domEffectHolder stores the latest cleanup registered by a DomSideEffect
// body. One holder exists per (call site, key); its lifetime is tied to the
// runtime's memoization slot.
type domEffectHolder[T any] struct {
	scope   *ElementScopeBase[T]
	dispose func(element T)
}

func (h *domEffectHolder[T]) OnDispose(cleanup func(element T)) {
	h.dispose = cleanup
}

func (h *domEffectHolder[T]) OnRemembered() {}

func (h *domEffectHolder[T]) OnForgotten() {
	if h.dispose == nil {
		return
	}
	dispose := h.dispose
	h.dispose = nil
	dispose(h.scope.Element())
}

func (h *domEffectHolder[T]) OnAbandoned() {}
