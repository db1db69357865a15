package main

import (
	"go.uber.org/zap"

	"github.com/sonder-joker/compose-jb/pkg/compose"
	"github.com/sonder-joker/compose-jb/pkg/dom"
)

// Event is one lifecycle occurrence during a replay. Frame numbers are
// 1-based; teardown triggered by the final dispose is attributed to the
// frame after the last scripted one.
type Event struct {
	Frame int    `json:"frame"`
	Scope string `json:"scope"`
	Event string `json:"event"`
	Key   any    `json:"key,omitempty"`
}

// traceElement stands in for a native element during replays.
type traceElement struct {
	name string
}

// runScript replays the scripted frames through a real composition, with
// both effect kinds attached to every mounted scope, and returns the
// lifecycle event stream.
func runScript(script *Script, logger *zap.Logger) ([]Event, error) {
	comp := compose.NewComposition(compose.WithLogger(logger))

	names := script.ScopeNames()
	scopes := make(map[string]*dom.ElementScopeBase[*traceElement], len(names))
	for _, name := range names {
		scope := dom.NewElementScope[*traceElement]()
		scope.InitElement(&traceElement{name: name})
		scopes[name] = scope
	}

	var events []Event
	frame := 0
	record := func(scope, kind string, key any) {
		events = append(events, Event{Frame: frame, Scope: scope, Event: kind, Key: key})
	}

	var current Frame
	content := func(c *compose.Composer) {
		for _, name := range names {
			key, mounted := current[name]
			if !mounted {
				continue
			}
			scope := scopes[name]
			c.Group(name, func() {
				scope.DisposableRefEffect(c, key, func(el *traceElement) func() {
					record(el.name, "ref-effect", key)
					return func() { record(el.name, "ref-cleanup", key) }
				})
				scope.DomSideEffect(c, key, func(s dom.DomEffectScope[*traceElement], el *traceElement) {
					record(el.name, "side-effect", key)
					s.OnDispose(func(el *traceElement) { record(el.name, "side-dispose", key) })
				})
			})
		}
	}

	for i, f := range script.Frames {
		frame = i + 1
		current = f

		var err error
		if i == 0 {
			err = comp.SetContent(content)
		} else {
			comp.Invalidate()
			err = comp.Recompose()
		}
		if err != nil {
			return events, err
		}
	}

	frame = len(script.Frames) + 1
	comp.Dispose()
	return events, nil
}
