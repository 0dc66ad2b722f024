package lr

import (
	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/lr/iteratable"
	"github.com/lrforge/tablegen/rules"
)

// newParseItemSet creates a set holding the given ParseItems (empty when
// none are given).
func newParseItemSet(items ...ParseItem) *iteratable.Set {
	vals := make([]iteratable.Keyed, len(items))
	for i, it := range items {
		vals[i] = it
	}
	return iteratable.NewSet(vals...)
}

// newLexItemSet creates a set holding the given LexItems (empty when none
// are given).
func newLexItemSet(items ...LexItem) *iteratable.Set {
	vals := make([]iteratable.Keyed, len(items))
	for i, it := range items {
		vals[i] = it
	}
	return iteratable.NewSet(vals...)
}

func asParseItem(k iteratable.Keyed) ParseItem { return k.(ParseItem) }
func asLexItem(k iteratable.Keyed) LexItem     { return k.(LexItem) }

// ItemSetClosure expands a parse item set to include, for every item
// whose remainder begins with a nonterminal N under lookahead la, all
// items (N, body, 0, la') for every rule defining N and every la' in
// first_set(remainder_after_N . la) (spec §4.4). Closure is a fixed
// point: the set grows monotonically until no new item can be added.
// The input set is consumed destructively and returned.
func ItemSetClosure(set *iteratable.Set, g grammar.PreparedGrammar) *iteratable.Set {
	set.IterateOnce()
	for set.Next() {
		item := asParseItem(set.Item())
		rules.SymTransitions(item.Rest).Each(func(sym rules.ISymbol, residualAfterN rules.Rule) {
			if sym.IsTerminal() || sym.IsBuiltIn() {
				return
			}
			lookaheadSeq := rules.Seq(residualAfterN, item.Lookahead)
			las := FirstSet(lookaheadSeq, &g)
			body := g.Rule(sym)
			las.Each(func(la rules.ISymbol, _ rules.Rule) {
				set.Add(NewParseItem(sym, body, 0, la))
			})
		})
	}
	return set
}

// LexItemSetClosure is the identity for lex item sets: lex items never
// expand nonterminals (spec §4.4 — "closure is trivial for the lex
// side"), so the set passed in is simply returned.
func LexItemSetClosure(set *iteratable.Set) *iteratable.Set {
	return set
}
