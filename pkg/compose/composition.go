package compose

import (
	stderrors "errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sonder-joker/compose-jb/pkg/errors"
)

// ErrDisposed is returned when a disposed composition is asked to compose.
var ErrDisposed = stderrors.New("compose: composition disposed")

// Composition owns a slot table and drives build passes over a content
// function. It performs no scheduling of its own: the host decides when to
// call Recompose, typically in response to OnInvalidate.
type Composition struct {
	id       string
	logger   *zap.Logger
	content  func(*Composer)
	table    []*slot
	frame    int
	dirty    bool
	disposed bool

	// OnInvalidate is called at most once per dirty cycle when the
	// composition transitions from clean to dirty, signalling the host
	// that a recomposition should be scheduled. Mirrors on-demand frame
	// scheduling: the host stays idle until asked.
	OnInvalidate func()
}

// Option configures a Composition.
type Option func(*Composition)

// WithLogger sets the structured logger used for commit diagnostics.
// The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composition) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewComposition creates an empty composition with a unique identity.
func NewComposition(opts ...Option) *Composition {
	c := &Composition{
		id:     uuid.NewString(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the composition's unique identity, used in diagnostics.
func (c *Composition) ID() string { return c.id }

// Frame returns the number of commits applied so far.
func (c *Composition) Frame() int { return c.frame }

// SetContent installs the content function and performs the initial
// composition. The first commit runs every effect: first appearance of a
// call site counts as changed.
func (c *Composition) SetContent(content func(*Composer)) error {
	if c.disposed {
		return ErrDisposed
	}
	c.content = content
	c.dirty = true
	return c.Recompose()
}

// Invalidate marks the composition dirty and fires OnInvalidate. Safe to
// call repeatedly; only the clean-to-dirty transition notifies the host.
func (c *Composition) Invalidate() {
	if c.disposed || c.dirty {
		return
	}
	c.dirty = true
	if c.OnInvalidate != nil {
		c.OnInvalidate()
	}
}

// Recompose runs one build pass and commits it. It is a no-op when the
// composition is clean. A panic in the content function abandons the pass
// and is returned as a *errors.ComposeError; panics from effect or cleanup
// bodies during commit propagate to the caller unmodified.
func (c *Composition) Recompose() error {
	if c.disposed {
		return ErrDisposed
	}
	if !c.dirty || c.content == nil {
		return nil
	}
	c.dirty = false

	p := newPass(c.table)
	composer := &Composer{pass: p, site: rootSite}
	if err := c.runContent(composer); err != nil {
		c.abandon(p)
		return err
	}
	c.commit(p)
	return nil
}

// runContent executes the content function with panic recovery, reporting
// failures to the global error handler.
func (c *Composition) runContent(composer *Composer) error {
	var cerr *errors.ComposeError
	func() {
		defer func() {
			if r := recover(); r != nil {
				cerr = &errors.ComposeError{
					Op:          "compose.Recompose",
					Kind:        errors.KindCompose,
					Composition: c.id,
					Recovered:   r,
					StackTrace:  errors.CaptureStack(),
					Timestamp:   time.Now(),
				}
			}
		}()
		c.content(composer)
	}()
	if cerr != nil {
		errors.Report(cerr)
		return cerr
	}
	return nil
}

// commit applies a successful pass. Teardown ordering is the contract the
// effect layer relies on: stale generations are forgotten in reverse call
// order before any new value is remembered, and the side-effect queue runs
// only after both.
func (c *Composition) commit(p *pass) {
	stale := p.stale
	for _, s := range p.prev {
		stale = append(stale, s)
	}
	sort.Slice(stale, func(i, j int) bool {
		return stale[i].order > stale[j].order
	})
	for _, s := range stale {
		if obs, ok := s.value.(RememberObserver); ok {
			obs.OnForgotten()
		}
	}

	for i, s := range p.next {
		s.order = i
	}
	c.table = p.next

	for _, obs := range p.entering {
		obs.OnRemembered()
	}
	for _, fn := range p.effects {
		fn()
	}

	c.frame++
	c.logger.Debug("commit",
		zap.String("composition", c.id),
		zap.Int("frame", c.frame),
		zap.Int("slots", len(c.table)),
		zap.Int("forgotten", len(stale)),
		zap.Int("remembered", len(p.entering)),
		zap.Int("sideEffects", len(p.effects)),
	)
}

// abandon discards a failed pass. Values created during it are notified
// via OnAbandoned in reverse creation order; the previously committed
// table stays intact and no effects run.
func (c *Composition) abandon(p *pass) {
	for i := len(p.created) - 1; i >= 0; i-- {
		p.created[i].OnAbandoned()
	}
	c.logger.Debug("abandon",
		zap.String("composition", c.id),
		zap.Int("abandoned", len(p.created)),
	)
}

// Dispose removes the composition: every live slot is forgotten in reverse
// call order, running each pending cleanup exactly once. Dispose is
// idempotent; a disposed composition rejects further content.
func (c *Composition) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for i := len(c.table) - 1; i >= 0; i-- {
		if obs, ok := c.table[i].value.(RememberObserver); ok {
			obs.OnForgotten()
		}
	}
	c.table = nil
	c.content = nil
	c.logger.Debug("dispose",
		zap.String("composition", c.id),
		zap.Int("frames", c.frame),
	)
}
