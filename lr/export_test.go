package lr

import (
	"testing"

	"github.com/lrforge/tablegen/rules"
)

func TestGotoMatrixMatchesStateActions(t *testing.T) {
	g := buildABGrammar(t)
	parseTable, _, conflicts := BuildTables(g.syn, g.lex)
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", conflicts)
	}

	m := parseTable.GotoMatrix()
	if m.M() != len(parseTable.States()) {
		t.Fatalf("expected %d rows, got %d", len(parseTable.States()), m.M())
	}

	start := parseTable.State(0)
	mincol, _ := parseTable.columnRange()

	shiftOnA, _ := start.Action(g.aNonterm)
	got := m.Value(0, g.aNonterm.Index-mincol)
	if got != int32(shiftOnA.ShiftState) {
		t.Errorf("expected GOTO(0, A) = %d, got %d", shiftOnA.ShiftState, got)
	}

	shiftOnTok, _ := start.Action(g.aToken)
	got = m.Value(0, g.aToken.Index-mincol)
	if got != int32(shiftOnTok.ShiftState) {
		t.Errorf("expected GOTO(0, a) = %d, got %d", shiftOnTok.ShiftState, got)
	}
}

func TestReduceMatrixRecordsReducingLHS(t *testing.T) {
	g := buildABGrammar(t)
	parseTable, _, _ := BuildTables(g.syn, g.lex)

	m := parseTable.ReduceMatrix()
	mincol, _ := parseTable.columnRange()

	var found bool
	for _, state := range parseTable.States() {
		action, ok := state.Action(rules.EndOfInput)
		if ok && action.Kind == ActionReduce {
			found = true
			got := m.Value(int(state.ID), rules.EndOfInput.Index-mincol)
			if got != int32(action.ReduceLHS.Index) {
				t.Errorf("expected reduce entry %d, got %d", action.ReduceLHS.Index, got)
			}
		}
	}
	if !found {
		t.Fatalf("expected at least one reduce action on END_OF_INPUT")
	}
}

func TestGotoMatrixOfEmptyTableHasNoColumns(t *testing.T) {
	empty := newParseTable()
	m := empty.GotoMatrix()
	if m.N() != 0 {
		t.Errorf("expected zero columns for a table with no observed symbols, got %d", m.N())
	}
}
