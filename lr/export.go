package lr

import (
	"github.com/lrforge/tablegen/lr/sparse"
	"github.com/lrforge/tablegen/rules"
)

// GotoMatrix exports the table's shift actions as a sparse matrix:
// rows are ParseStateID, columns are symbol indices offset by the
// lowest symbol index observed (so that the built-in negative indices
// of EndOfInput and ErrorSymbol fit alongside ordinary grammar
// symbols), and each set entry holds the destination ParseStateID of
// the shift (spec §3's Shift(state_id, ...) case). States with no
// shift on a symbol leave that position at the matrix's null value.
func (t *ParseTable) GotoMatrix() *sparse.StateSymbolMatrix {
	mincol, extent := t.columnRange()
	m := sparse.NewStateSymbolMatrix(len(t.states), extent, sparse.DefaultNullValue)
	for _, state := range t.states {
		state.Each(func(sym rules.ISymbol, a ParseAction) {
			if a.Kind == ActionShift {
				m.Set(int(state.ID), sym.Index-mincol, int32(a.ShiftState))
			}
		})
	}
	return m
}

// ReduceMatrix exports the table's reduce actions as a sparse matrix,
// using the same column layout as GotoMatrix. Each set entry holds the
// reducing rule's left-hand symbol index; callers that need the rule's
// symbol count or precedence as well should consult the ParseState's
// own Action lookup, since a sparse matrix position carries a single
// int32 value.
func (t *ParseTable) ReduceMatrix() *sparse.StateSymbolMatrix {
	mincol, extent := t.columnRange()
	m := sparse.NewStateSymbolMatrix(len(t.states), extent, sparse.DefaultNullValue)
	for _, state := range t.states {
		state.Each(func(sym rules.ISymbol, a ParseAction) {
			if a.Kind == ActionReduce {
				m.Set(int(state.ID), sym.Index-mincol, int32(a.ReduceLHS.Index))
			} else if a.Kind == ActionAccept {
				m.Set(int(state.ID), sym.Index-mincol, int32(rules.Start.Index))
			}
		})
	}
	return m
}

// columnRange returns the offset needed to map a symbol's Index (which
// may be negative, for built-in symbols) to a non-negative matrix
// column, and the total column count spanning every symbol observed
// during table construction.
func (t *ParseTable) columnRange() (mincol, extent int) {
	symbols := t.Symbols()
	if len(symbols) == 0 {
		return 0, 0
	}
	min, max := symbols[0].Index, symbols[0].Index
	for _, s := range symbols[1:] {
		if s.Index < min {
			min = s.Index
		}
		if s.Index > max {
			max = s.Index
		}
	}
	return min, max - min + 1
}
