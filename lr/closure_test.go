package lr

import (
	"testing"

	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/lr/iteratable"
	"github.com/lrforge/tablegen/rules"
)

func TestItemSetClosureExpandsNonterminal(t *testing.T) {
	// grammar: S -> A ; A -> 'a'
	A := rules.NewISymbol(0, 0)
	a := rules.NewISymbol(1, rules.Token)
	g := grammar.PreparedGrammar{Rules: []grammar.NamedRule{
		{Symbol: A, Name: "A", Rule: a},
	}, Start: A}

	set := newParseItemSet(NewParseItem(rules.Start, A, 0, rules.EndOfInput))
	ItemSetClosure(set, g)

	if set.Size() != 2 {
		t.Fatalf("expected closure to add the A-item, got %d items", set.Size())
	}
	found := false
	set.Each(func(k iteratable.Keyed) {
		it := asParseItem(k)
		if it.LHS.Equal(A) && it.ConsumedCount == 0 && it.Lookahead.Equal(rules.EndOfInput) {
			found = true
		}
	})
	if !found {
		t.Errorf("expected closure to contain item [A -> .a, #eof]")
	}
}

func TestItemSetClosureIsFixedPoint(t *testing.T) {
	// grammar: S -> A ; A -> A | 'x'  (nonterminal referencing itself)
	A := rules.NewISymbol(0, 0)
	x := rules.NewISymbol(1, rules.Token)
	g := grammar.PreparedGrammar{Rules: []grammar.NamedRule{
		{Symbol: A, Name: "A", Rule: rules.Choice(A, x)},
	}, Start: A}

	set := newParseItemSet(NewParseItem(rules.Start, A, 0, rules.EndOfInput))
	ItemSetClosure(set, g)

	// must terminate and not loop forever; size should be small and stable
	// across a second closure call (closure of an already-closed set is a
	// no-op).
	size1 := set.Size()
	ItemSetClosure(set, g)
	if set.Size() != size1 {
		t.Errorf("expected closure to be idempotent, got %d then %d", size1, set.Size())
	}
}

func TestLexItemSetClosureIsIdentity(t *testing.T) {
	set := newLexItemSet(NewLexItem(sym(0), rules.Character('a', 'z')))
	closed := LexItemSetClosure(set)
	if closed.Size() != 1 {
		t.Errorf("expected lex closure to leave the set unchanged, got size %d", closed.Size())
	}
}
