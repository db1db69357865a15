package dom

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/sonder-joker/compose-jb/pkg/compose"
	comptest "github.com/sonder-joker/compose-jb/pkg/testing"
)

// fakeElement stands in for a native element.
type fakeElement struct {
	id string
}

func newBoundScope(id string) (*ElementScopeBase[*fakeElement], *fakeElement) {
	scope := NewElementScope[*fakeElement]()
	el := &fakeElement{id: id}
	scope.InitElement(el)
	return scope, el
}

func TestInitElement_BindsExactlyOnce(t *testing.T) {
	scope, el := newBoundScope("root")

	if scope.Element() != el {
		t.Error("Expected Element() to return the bound element")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected a second InitElement to panic")
		}
	}()
	scope.InitElement(&fakeElement{id: "other"})
}

func TestDOMScope_ReadOnlyCapability(t *testing.T) {
	scope, el := newBoundScope("root")

	// The narrower capability exposes element access only.
	var readonly DOMScope[*fakeElement] = scope
	if readonly.Element() != el {
		t.Error("Expected the read-only scope to expose the same element")
	}
}

func TestDisposableRefEffect_KeyChangeRunsCleanupFirst(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, el := newBoundScope("root")

	key := "a"
	var seen []*fakeElement
	err := ct.SetContent(func(c *compose.Composer) {
		k := key
		scope.DisposableRefEffect(c, k, func(element *fakeElement) func() {
			seen = append(seen, element)
			ct.Record("effect " + k)
			return func() { ct.Record("cleanup " + k) }
		})
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	key = "b"
	if err := ct.Pump(); err != nil {
		t.Fatalf("Pump failed: %v", err)
	}
	ct.Dispose()

	// C1 once, then the new effect with the element, then C2 once at
	// removal; C1 never again.
	want := []string{"effect a", "cleanup a", "effect b", "cleanup b"}
	if !reflect.DeepEqual(ct.Events(), want) {
		t.Errorf("Expected %v, got %v", want, ct.Events())
	}
	for i, element := range seen {
		if element != el {
			t.Errorf("Expected run %d to receive the bound element", i)
		}
	}
}

func TestDisposableRefEffect_NilKeyRunsForMountedLifetime(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, _ := newBoundScope("root")

	runs, cleanups := 0, 0
	err := ct.SetContent(func(c *compose.Composer) {
		scope.DisposableRefEffect(c, nil, func(element *fakeElement) func() {
			runs++
			return func() { cleanups++ }
		})
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := ct.Pump(); err != nil {
			t.Fatalf("Pump failed: %v", err)
		}
	}
	ct.Dispose()

	if runs != 1 {
		t.Errorf("Expected 1 run for the element's lifetime, got %d", runs)
	}
	if cleanups != 1 {
		t.Errorf("Expected exactly 1 cleanup at removal, got %d", cleanups)
	}
}

func TestDomSideEffect_KeySequence(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, _ := newBoundScope("root")

	// Key sequence 1, 1, 2 across three commits.
	key := 1
	err := ct.SetContent(func(c *compose.Composer) {
		k := key
		scope.DomSideEffect(c, k, func(s DomEffectScope[*fakeElement], element *fakeElement) {
			ct.Record(fmt.Sprintf("effect key=%d", k))
			s.OnDispose(func(element *fakeElement) {
				ct.Record(fmt.Sprintf("dispose key=%d", k))
			})
		})
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	// First appearance counts as changed.
	if want := []string{"effect key=1"}; !reflect.DeepEqual(ct.TakeEvents(), want) {
		t.Fatalf("Expected %v after commit 1", want)
	}

	// Unchanged key: the body must not run.
	if err := ct.Pump(); err != nil {
		t.Fatalf("Pump failed: %v", err)
	}
	if events := ct.TakeEvents(); len(events) != 0 {
		t.Fatalf("Expected no events after commit 2, got %v", events)
	}

	// Changed key: previous cleanup exactly once, at discard of the old
	// holder, then the body runs again.
	key = 2
	if err := ct.Pump(); err != nil {
		t.Fatalf("Pump failed: %v", err)
	}
	want := []string{"dispose key=1", "effect key=2"}
	if !reflect.DeepEqual(ct.TakeEvents(), want) {
		t.Fatalf("Expected %v after commit 3", want)
	}
}

func TestDomSideEffect_UnkeyedRunsEveryCommit(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, _ := newBoundScope("root")

	runs, cleanups := 0, 0
	err := ct.SetContent(func(c *compose.Composer) {
		scope.DomSideEffect(c, nil, func(s DomEffectScope[*fakeElement], element *fakeElement) {
			runs++
			s.OnDispose(func(element *fakeElement) { cleanups++ })
		})
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	const frames = 3
	for i := 0; i < frames-1; i++ {
		if err := ct.Pump(); err != nil {
			t.Fatalf("Pump failed: %v", err)
		}
	}
	ct.Dispose()

	// N commits produce N independent identities, each torn down exactly
	// once: N-1 while being superseded, the last at removal.
	if runs != frames {
		t.Errorf("Expected %d runs, got %d", frames, runs)
	}
	if cleanups != frames {
		t.Errorf("Expected %d teardowns, got %d", frames, cleanups)
	}
}

func TestDomSideEffect_CleanupReceivesElement(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, el := newBoundScope("root")

	var disposedOn *fakeElement
	key := "a"
	err := ct.SetContent(func(c *compose.Composer) {
		scope.DomSideEffect(c, key, func(s DomEffectScope[*fakeElement], element *fakeElement) {
			s.OnDispose(func(element *fakeElement) { disposedOn = element })
		})
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	key = "b"
	if err := ct.Pump(); err != nil {
		t.Fatalf("Pump failed: %v", err)
	}

	if disposedOn != el {
		t.Error("Expected the cleanup to receive the scope's element")
	}
}

func TestDomSideEffect_OptionalCleanup(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, _ := newBoundScope("root")

	// A body that never calls OnDispose is valid for DomSideEffect.
	key := "a"
	err := ct.SetContent(func(c *compose.Composer) {
		scope.DomSideEffect(c, key, func(s DomEffectScope[*fakeElement], element *fakeElement) {
			ct.Record("effect " + key)
		})
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	key = "b"
	if err := ct.Pump(); err != nil {
		t.Fatalf("Pump failed: %v", err)
	}
	ct.Dispose()

	want := []string{"effect a", "effect b"}
	if !reflect.DeepEqual(ct.Events(), want) {
		t.Errorf("Expected %v, got %v", want, ct.Events())
	}
}

func TestElementScope_RemovalFromTreeFiresTeardown(t *testing.T) {
	ct := comptest.NewCompositionTesterWithT(t)
	scope, _ := newBoundScope("child")

	mounted := true
	err := ct.SetContent(func(c *compose.Composer) {
		if mounted {
			c.Group("child", func() {
				scope.DisposableRefEffect(c, "k", func(element *fakeElement) func() {
					ct.Record("effect")
					return func() { ct.Record("cleanup") }
				})
				scope.DomSideEffect(c, "k", func(s DomEffectScope[*fakeElement], element *fakeElement) {
					ct.Record("side effect")
					s.OnDispose(func(element *fakeElement) { ct.Record("side dispose") })
				})
			})
		}
	})
	if err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}

	mounted = false
	if err := ct.Pump(); err != nil {
		t.Fatalf("Pump failed: %v", err)
	}

	want := []string{"effect", "side effect", "side dispose", "cleanup"}
	if !reflect.DeepEqual(ct.Events(), want) {
		t.Errorf("Expected %v, got %v", want, ct.Events())
	}
}
