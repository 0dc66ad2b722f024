package lr

import (
	"testing"

	"github.com/lrforge/tablegen/rules"
)

func TestParseStateActionRoundtrip(t *testing.T) {
	s := newParseState(0)
	a := sym(0)
	shift := Shift(1, 5)
	s.setAction(a, shift)

	got, ok := s.Action(a)
	if !ok {
		t.Fatalf("expected an action for a")
	}
	if !got.Equal(shift) {
		t.Errorf("expected %v, got %v", shift, got)
	}
	if _, ok := s.Action(sym(9)); ok {
		t.Errorf("expected no action for an unset symbol")
	}
}

func TestParseStateExpectedInputsFiltersTerminals(t *testing.T) {
	s := newParseState(0)
	term := sym(0)
	nonterm := rules.NewISymbol(1, 0)
	s.setAction(nonterm, Reduce(nonterm, 1, 0))
	s.setAction(term, Shift(1, 0))

	inputs := s.ExpectedInputs()
	if len(inputs) != 1 || !inputs[0].Equal(term) {
		t.Errorf("expected only the terminal symbol, got %v", inputs)
	}
}

func TestLexStateActionFallsBackToDefault(t *testing.T) {
	s := newLexState(0)
	cs := rules.Character('a', 'z').(rules.CharacterSet)
	s.setAction(cs, AdvanceTo(3))

	if got := s.Action('m'); got.Kind != LexAdvance || got.Advance != 3 {
		t.Errorf("expected advance(3) for 'm', got %v", got)
	}
	if got := s.Action('0'); got.Kind != LexError {
		t.Errorf("expected the default error action for an unmatched byte, got %v", got)
	}
}

func TestLexStateSetActionOverwritesEqualSet(t *testing.T) {
	s := newLexState(0)
	cs := rules.Character('a', 'z').(rules.CharacterSet)
	s.setAction(cs, AdvanceTo(1))
	s.setAction(cs, AdvanceTo(2))

	if len(s.entries) != 1 {
		t.Fatalf("expected overwriting an equal set to not grow entries, got %d", len(s.entries))
	}
	if got := s.Action('a'); got.Advance != 2 {
		t.Errorf("expected the overwritten advance(2), got %v", got)
	}
}

func TestLexStateExpectedInputsListsAdvanceSets(t *testing.T) {
	s := newLexState(0)
	digits := rules.Character('0', '9').(rules.CharacterSet)
	letters := rules.Character('a', 'z').(rules.CharacterSet)
	s.setAction(digits, AdvanceTo(1))
	s.setAction(letters, AdvanceTo(2))

	inputs := s.ExpectedInputs()
	if len(inputs) != 2 || !inputs[0].Equal(digits) || !inputs[1].Equal(letters) {
		t.Errorf("expected [0-9, a-z] in discovery order, got %v", inputs)
	}
}

func TestParseActionMaxShiftPrecedence(t *testing.T) {
	a := ParseAction{Kind: ActionShift, Precedences: map[int]bool{1: true, 5: true, 3: true}}
	if a.MaxShiftPrecedence() != 5 {
		t.Errorf("expected max precedence 5, got %d", a.MaxShiftPrecedence())
	}
}

func TestParseTableSymbolsSortedByIndex(t *testing.T) {
	tbl := newParseTable()
	tbl.observe(sym(3))
	tbl.observe(sym(1))
	tbl.observe(sym(2))

	syms := tbl.Symbols()
	for i := 1; i < len(syms); i++ {
		if syms[i-1].Index > syms[i].Index {
			t.Errorf("expected symbols sorted by index, got %v", syms)
		}
	}
}

func TestLexTableErrorStateLookup(t *testing.T) {
	tbl := newLexTable()
	tbl.ErrorState = &LexState{ID: ERRORStateID}
	if tbl.State(ERRORStateID) != tbl.ErrorState {
		t.Errorf("expected State(ERRORStateID) to return the error state")
	}
}
