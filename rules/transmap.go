package rules

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// SymTransitionMap is an insertion-ordered map from ISymbol to the
// residual Rule reached by consuming that symbol. Order is preserved
// (rather than using a bare Go map) because downstream state discovery in
// package lr must visit transitions in a deterministic order for two runs
// on equal inputs to produce bit-identical tables (spec §5, §8). Backed by
// gods' linkedhashmap, already a teacher dependency used elsewhere in this
// module's ancestry for similar state/edge bookkeeping.
type SymTransitionMap struct {
	m *linkedhashmap.Map
}

func newSymTransitionMap() *SymTransitionMap {
	return &SymTransitionMap{m: linkedhashmap.New()}
}

// Get returns the residual rule transitioning on sym, if any.
func (t *SymTransitionMap) Get(sym ISymbol) (Rule, bool) {
	v, ok := t.m.Get(sym)
	if !ok {
		return nil, false
	}
	return v.(Rule), true
}

// Put installs (or overwrites) the residual rule for sym.
func (t *SymTransitionMap) Put(sym ISymbol, r Rule) {
	t.m.Put(sym, r)
}

// AddOrMerge installs the residual rule for sym, merging with any
// existing residual via Choice::Build when sym is already present (spec
// §4.1: "when keys collide, values are merged by Choice::Build").
func (t *SymTransitionMap) AddOrMerge(sym ISymbol, r Rule) {
	if existing, ok := t.Get(sym); ok {
		t.Put(sym, Choice(existing, r))
		return
	}
	t.Put(sym, r)
}

// Each visits every (symbol, rule) pair in insertion order.
func (t *SymTransitionMap) Each(f func(ISymbol, Rule)) {
	it := t.m.Iterator()
	for it.Next() {
		f(it.Key().(ISymbol), it.Value().(Rule))
	}
}

// Len returns the number of distinct symbols with a transition.
func (t *SymTransitionMap) Len() int { return t.m.Size() }

// Symbols returns the transition map's keys, in insertion order.
func (t *SymTransitionMap) Symbols() []ISymbol {
	out := make([]ISymbol, 0, t.Len())
	t.Each(func(sym ISymbol, _ Rule) { out = append(out, sym) })
	return out
}

// --- CharTransitionMap --------------------------------------------------

type charEntry struct {
	Set  CharacterSet
	Rule Rule
}

// CharTransitionMap is an insertion-ordered map from (disjoint)
// CharacterSets to residual Rules. Unlike SymTransitionMap, its keys are
// not plain Go-comparable values (CharacterSet holds a slice) and, more
// importantly, insertion is not a simple equality-keyed upsert: spec §4.2
// requires that any two character-set keys which overlap but are not
// identical be split into disjoint pieces on insertion. No container in
// the example pack models that splice-on-overlap semantic, so this is a
// small hand-rolled ordered slice rather than a reused library type.
type CharTransitionMap struct {
	entries []charEntry
}

func newCharTransitionMap() *CharTransitionMap {
	return &CharTransitionMap{}
}

// Each visits every (set, rule) pair in insertion order.
func (t *CharTransitionMap) Each(f func(CharacterSet, Rule)) {
	for _, e := range t.entries {
		f(e.Set, e.Rule)
	}
}

// Len returns the number of disjoint character-set entries.
func (t *CharTransitionMap) Len() int { return len(t.entries) }

// Sets returns the transition map's keys, in insertion order.
func (t *CharTransitionMap) Sets() []CharacterSet {
	out := make([]CharacterSet, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Set
	}
	return out
}

// AddOrSplit inserts (set, rule), partitioning the byte space so that
// every overlapping-but-unequal pair of character-set keys is split into
// disjoint pieces per spec §4.2: for overlapping A (existing) and B (new)
// with distinct residuals rA, rB, the three pieces A\B, A∩B (residual
// Choice::Build(rA, rB)) and B\A replace the single A entry, and empty
// pieces are omitted. The general N-ary case (more than one prior entry
// overlapping the incoming set) falls out of recursively re-inserting the
// pieces, each strictly smaller than the set that produced it, so the
// recursion terminates.
func (t *CharTransitionMap) AddOrSplit(set CharacterSet, rule Rule) {
	if set.IsEmpty() {
		return
	}
	for i, e := range t.entries {
		if e.Set.Equal(set) {
			t.entries[i].Rule = Choice(e.Rule, rule)
			return
		}
		if e.Set.Overlaps(set) {
			onlyExisting := e.Set.Difference(set)
			shared := e.Set.Intersect(set)
			onlyNew := set.Difference(e.Set)
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			if !onlyExisting.IsEmpty() {
				t.AddOrSplit(onlyExisting, e.Rule)
			}
			if !shared.IsEmpty() {
				t.AddOrSplit(shared, Choice(e.Rule, rule))
			}
			if !onlyNew.IsEmpty() {
				t.AddOrSplit(onlyNew, rule)
			}
			return
		}
	}
	t.entries = append(t.entries, charEntry{Set: set, Rule: rule})
}
