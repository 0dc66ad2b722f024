package lr

import (
	"testing"

	"github.com/lrforge/tablegen/rules"
)

func sym(i int) rules.ISymbol { return rules.NewISymbol(i, rules.Token) }

func TestParseItemIsDone(t *testing.T) {
	done := NewParseItem(sym(0), rules.Blank{}, 2, rules.EndOfInput)
	if !done.IsDone() {
		t.Errorf("expected item with Blank rest to be done")
	}
	notDone := NewParseItem(sym(0), sym(1), 0, rules.EndOfInput)
	if notDone.IsDone() {
		t.Errorf("expected item with non-Blank rest to not be done")
	}
}

func TestParseItemKeyIgnoresConstruction(t *testing.T) {
	a := NewParseItem(sym(0), rules.Seq(sym(1), sym(2)), 1, sym(3))
	b := NewParseItem(sym(0), rules.Seq(rules.Seq(sym(1), rules.Blank{}), sym(2)), 1, sym(3))
	if a.Key() != b.Key() {
		t.Errorf("expected structurally equal items to share a key, got %q vs %q", a.Key(), b.Key())
	}
}

func TestParseItemKeyDistinguishesLookaheadAndConsumedCount(t *testing.T) {
	base := NewParseItem(sym(0), sym(1), 0, sym(2))
	diffLookahead := NewParseItem(sym(0), sym(1), 0, sym(3))
	diffConsumed := NewParseItem(sym(0), sym(1), 1, sym(2))
	if base.Key() == diffLookahead.Key() {
		t.Errorf("expected differing lookahead to change the key")
	}
	if base.Key() == diffConsumed.Key() {
		t.Errorf("expected differing consumed count to change the key")
	}
}

func TestParseItemPrecedence(t *testing.T) {
	rest := rules.Metadata(sym(1), map[rules.MetadataKey]int{rules.Precedence: 7})
	it := NewParseItem(sym(0), rest, 0, sym(2))
	if it.Precedence() != 7 {
		t.Errorf("expected precedence 7, got %d", it.Precedence())
	}
}

func TestLexItemIsTokenStart(t *testing.T) {
	marker := rules.Metadata(rules.Blank{}, map[rules.MetadataKey]int{rules.StartToken: 1})
	it := NewLexItem(sym(0), marker)
	if !it.IsTokenStart() {
		t.Errorf("expected item positioned at a StartToken marker to report IsTokenStart")
	}
	past := NewLexItem(sym(0), rules.Blank{})
	if past.IsTokenStart() {
		t.Errorf("expected item past the marker to not report IsTokenStart")
	}
}

func TestLexItemKeyIgnoresConstruction(t *testing.T) {
	a := NewLexItem(sym(0), rules.Character('a', 'z'))
	b := NewLexItem(sym(0), rules.NewCharacterSetRanges([]rules.CharRange{{Lo: 'a', Hi: 'z'}}, false))
	if a.Key() != b.Key() {
		t.Errorf("expected structurally equal character rules to share a key")
	}
}

func TestLexItemIsDone(t *testing.T) {
	done := NewLexItem(sym(0), rules.Blank{})
	if !done.IsDone() {
		t.Errorf("expected Blank rest to be done")
	}
}
