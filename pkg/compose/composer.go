package compose

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// slotID identifies one primitive invocation: the compound hash of the
// enclosing group chain plus the occurrence index within that group.
type slotID struct {
	site uint64
	seq  int
}

type slotKind uint8

const (
	slotRemember slotKind = iota
	slotChanged
)

// slot is one entry in the composition's table. For remember slots, key is
// the memoization key and value the remembered object. For changed slots,
// key holds the value recorded at the previous commit.
type slot struct {
	id    slotID
	kind  slotKind
	key   any
	value any
	order int // committed call order, drives reverse-order teardown
}

// pass accumulates the state of one build pass. The previous table is only
// consumed, never mutated, so an abandoned pass leaves the composition
// untouched.
type pass struct {
	prev     map[slotID]*slot
	seqs     map[uint64]int
	next     []*slot
	stale    []*slot
	entering []RememberObserver
	created  []RememberObserver
	effects  []func()
}

func newPass(table []*slot) *pass {
	prev := make(map[slotID]*slot, len(table))
	for _, s := range table {
		prev[s.id] = s
	}
	return &pass{
		prev: prev,
		seqs: make(map[uint64]int),
	}
}

// Composer is the per-pass cursor handed to content functions. It is only
// valid for the duration of the pass that created it; content must not
// retain it.
type Composer struct {
	pass *pass
	site uint64
}

// Group runs fn under a child call-site identity derived from key. Content
// that composes conditionally or in loops should wrap each region in a
// Group so its slots keep a stable identity across recompositions.
func (c *Composer) Group(key any, fn func()) {
	parent := c.site
	c.site = compoundHash(parent, key)
	fn()
	c.site = parent
}

// take claims the next slot identity at the current site and consumes the
// matching slot from the previous commit, if any. A slot whose kind changed
// is stale regardless of key.
func (c *Composer) take(kind slotKind) (slotID, *slot) {
	id := slotID{site: c.site, seq: c.pass.seqs[c.site]}
	c.pass.seqs[c.site]++
	prev, ok := c.pass.prev[id]
	if !ok {
		return id, nil
	}
	delete(c.pass.prev, id)
	if prev.kind != kind {
		c.pass.stale = append(c.pass.stale, prev)
		return id, nil
	}
	return id, prev
}

// Remember returns the value cached at this call site if key is unchanged
// from the previous commit. Otherwise the old value is forgotten (its
// OnForgotten runs at commit, before new values are remembered) and init
// supplies a replacement.
func Remember[T any](c *Composer, key any, init func() T) T {
	id, old := c.take(slotRemember)
	if old != nil && keysEqual(old.key, key) {
		c.pass.next = append(c.pass.next, old)
		return old.value.(T)
	}
	if old != nil {
		c.pass.stale = append(c.pass.stale, old)
	}
	value := init()
	c.pass.next = append(c.pass.next, &slot{
		id:    id,
		kind:  slotRemember,
		key:   key,
		value: value,
	})
	if obs, ok := any(value).(RememberObserver); ok {
		c.pass.entering = append(c.pass.entering, obs)
		c.pass.created = append(c.pass.created, obs)
	}
	return value
}

// Changed reports whether value differs from the one recorded at this call
// site on the previous commit. The first appearance of a call site counts
// as changed.
func Changed(c *Composer, value any) bool {
	id, old := c.take(slotChanged)
	changed := old == nil || !keysEqual(old.key, value)
	c.pass.next = append(c.pass.next, &slot{
		id:   id,
		kind: slotChanged,
		key:  value,
	})
	return changed
}

// SideEffect queues fn to run after this pass commits. The queue is
// per-pass: a function queued during a pass that fails to commit never
// runs.
func SideEffect(c *Composer, fn func()) {
	c.pass.effects = append(c.pass.effects, fn)
}

func keysEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

var rootSite = xxhash.Sum64String("composition.root")

func compoundHash(parent uint64, key any) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], parent)
	digest := xxhash.New()
	digest.Write(buf[:])
	fmt.Fprintf(digest, "%T:%v", key, key)
	return digest.Sum64()
}
