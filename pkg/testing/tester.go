package testing

import (
	"testing"

	"github.com/sonder-joker/compose-jb/pkg/compose"
)

// CompositionTester drives a single composition through scripted frames.
// It invalidates and recomposes explicitly instead of waiting on a host
// frame callback, and keeps an ordered event log for assertions.
type CompositionTester struct {
	comp   *compose.Composition
	events []string
}

// NewCompositionTester creates a tester around a fresh composition.
// Call Dispose() when done, or use NewCompositionTesterWithT() instead.
func NewCompositionTester(opts ...compose.Option) *CompositionTester {
	return &CompositionTester{
		comp: compose.NewComposition(opts...),
	}
}

// NewCompositionTesterWithT creates a tester that auto-disposes via
// t.Cleanup(). This is the recommended constructor for tests.
func NewCompositionTesterWithT(t *testing.T, opts ...compose.Option) *CompositionTester {
	ct := NewCompositionTester(opts...)
	t.Cleanup(ct.Dispose)
	return ct
}

// Composition returns the underlying composition.
func (ct *CompositionTester) Composition() *compose.Composition {
	return ct.comp
}

// SetContent installs content and runs the initial frame.
func (ct *CompositionTester) SetContent(content func(*compose.Composer)) error {
	return ct.comp.SetContent(content)
}

// Pump forces one recomposition frame: invalidate, then recompose.
func (ct *CompositionTester) Pump() error {
	ct.comp.Invalidate()
	return ct.comp.Recompose()
}

// Dispose tears down the composition, running every pending cleanup.
// Safe to call more than once.
func (ct *CompositionTester) Dispose() {
	ct.comp.Dispose()
}

// Record appends an event to the log. Effects and cleanups under test call
// this to capture ordering.
func (ct *CompositionTester) Record(event string) {
	ct.events = append(ct.events, event)
}

// Events returns the events recorded so far, in order.
func (ct *CompositionTester) Events() []string {
	return ct.events
}

// TakeEvents returns the recorded events and clears the log, so a test can
// assert one frame at a time.
func (ct *CompositionTester) TakeEvents() []string {
	events := ct.events
	ct.events = nil
	return events
}
