package lr

import (
	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/lr/iteratable"
	"github.com/lrforge/tablegen/rules"
)

// ItemSetSymTransitions lifts rules.SymTransitions to a parse item set
// (spec §4.5): for each item, take sym_transitions(item.Rest); for each
// (sym, residual), add a successor item to the bucket for sym. Every
// resulting bucket is closed before being returned.
func ItemSetSymTransitions(set *iteratable.Set, g grammar.PreparedGrammar) *symItemSetMap {
	buckets := newSymItemSetMap()
	set.Each(func(k iteratable.Keyed) {
		item := asParseItem(k)
		rules.SymTransitions(item.Rest).Each(func(sym rules.ISymbol, residual rules.Rule) {
			successor := NewParseItem(item.LHS, residual, item.ConsumedCount+1, item.Lookahead)
			buckets.add(sym, successor)
		})
	})
	buckets.each(func(sym rules.ISymbol, bucket *iteratable.Set) {
		ItemSetClosure(bucket, g)
	})
	return buckets
}

// ItemSetCharTransitions lifts rules.CharTransitions to a lex item set
// (spec §4.5): analogous to ItemSetSymTransitions, but character-set keys
// from different items that overlap without being equal are split into
// disjoint pieces whose residual buckets merge, exactly as §4.2 requires
// for a single rule's own char_transitions.
func ItemSetCharTransitions(set *iteratable.Set) *charItemSetMap {
	buckets := newCharItemSetMap()
	set.Each(func(k iteratable.Keyed) {
		item := asLexItem(k)
		rules.CharTransitions(item.Rest).Each(func(cs rules.CharacterSet, residual rules.Rule) {
			successor := NewLexItem(item.LHS, residual)
			buckets.add(cs, successor)
		})
	})
	return buckets
}

// symItemSetMap is an insertion-ordered map from ISymbol to the
// ParseItemSet reached by that symbol's transition.
type symItemSetMap struct {
	keys []rules.ISymbol
	m    map[int]*iteratable.Set
}

func newSymItemSetMap() *symItemSetMap {
	return &symItemSetMap{m: map[int]*iteratable.Set{}}
}

func (b *symItemSetMap) add(sym rules.ISymbol, item ParseItem) {
	s, ok := b.m[sym.Index]
	if !ok {
		s = newParseItemSet()
		b.m[sym.Index] = s
		b.keys = append(b.keys, sym)
	}
	s.Add(item)
}

func (b *symItemSetMap) each(f func(rules.ISymbol, *iteratable.Set)) {
	for _, sym := range b.keys {
		f(sym, b.m[sym.Index])
	}
}

// charItemSetMap is an ordered map from a disjoint CharacterSet to the
// LexItemSet reached on consuming a byte in that set. Unlike
// symItemSetMap, inserting a set that overlaps a previous key requires
// splitting both keys' item-set values into the correct disjoint pieces
// (the set-of-items analogue of rules.CharTransitionMap.AddOrSplit).
type charItemSetMap struct {
	entries []charSetEntry
}

type charSetEntry struct {
	set   rules.CharacterSet
	items *iteratable.Set
}

func newCharItemSetMap() *charItemSetMap {
	return &charItemSetMap{}
}

func (b *charItemSetMap) add(cs rules.CharacterSet, item LexItem) {
	b.addSet(cs, newLexItemSet(item))
}

func (b *charItemSetMap) addSet(cs rules.CharacterSet, items *iteratable.Set) {
	if cs.IsEmpty() || items.Empty() {
		return
	}
	for i, e := range b.entries {
		if e.set.Equal(cs) {
			b.entries[i].items.Union(items)
			return
		}
		if e.set.Overlaps(cs) {
			onlyExisting := e.set.Difference(cs)
			shared := e.set.Intersect(cs)
			onlyNew := cs.Difference(e.set)
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			if !onlyExisting.IsEmpty() {
				b.addSet(onlyExisting, e.items.Copy())
			}
			if !shared.IsEmpty() {
				merged := e.items.Copy()
				merged.Union(items)
				b.addSet(shared, merged)
			}
			if !onlyNew.IsEmpty() {
				b.addSet(onlyNew, items)
			}
			return
		}
	}
	b.entries = append(b.entries, charSetEntry{set: cs, items: items})
}

func (b *charItemSetMap) each(f func(rules.CharacterSet, *iteratable.Set)) {
	for _, e := range b.entries {
		f(e.set, e.items)
	}
}
