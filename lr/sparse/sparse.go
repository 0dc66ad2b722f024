/*
Package sparse implements a sparse matrix over parse-table positions: a
ParseTable has one row per ParseStateID and one column per symbol index,
but any single state only ever has actions defined for the handful of
symbols its items expect, so a dense [state][symbol]int32 array would be
mostly null entries. StateSymbolMatrix stores only the positions actually
set, as GotoMatrix and ReduceMatrix (lr/export.go) do when handing a
caller a GOTO/ACTION table shaped for cheaper serialization than the
state-by-state action maps package lr otherwise exposes.

This implementation uses the COO algorithm (a.k.a. triplet-encoding),
entries kept sorted by (row, col) so a lookup can stop scanning once it
has passed the sought position.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html
*/
package sparse

// StateSymbolMatrix is a sparse matrix of int32, indexed by parse-state
// row and symbol column. Construct with
//
//     m := NewStateSymbolMatrix(10, 10, -1)  // last parameter is m's null-value
//
// Now
//
//     m.Set(2, 3, 4711)              // set a value
//     v := m.Value(2, 3)             // returns 4711
//     cnt := m.ValueCount()          // returns 1 (one position set)
//     v = m.Value(9, 9)              // returns -1, i.e. the null-value
//
// A position already holding a value is overwritten, not accumulated:
// every export this module produces assigns at most one destination
// state or one reducing symbol per (state, symbol) position.
type StateSymbolMatrix struct {
	entries []entry
	rowcnt  int
	colcnt  int
	nullval int32
}

type entry struct {
	row, col int
	value    int32
}

// NewStateSymbolMatrix creates a new matrix of size m rows by n columns.
// nullValue marks an unset position; use DefaultNullValue absent any
// specific requirement.
func NewStateSymbolMatrix(m, n int, nullValue int32) *StateSymbolMatrix {
	return &StateSymbolMatrix{rowcnt: m, colcnt: n, nullval: nullValue}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *StateSymbolMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *StateSymbolMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *StateSymbolMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions actually set in the matrix.
func (m *StateSymbolMatrix) ValueCount() int {
	return len(m.entries)
}

// Value returns the value at position (i,j), or NullValue if unset.
func (m *StateSymbolMatrix) Value(i, j int) int32 {
	for _, e := range m.entries {
		if e.storedLeftOf(i, j) {
			continue
		}
		if e.storedAt(i, j) {
			return e.value
		}
		break
	}
	return m.nullval
}

// Set stores value at position (i,j), overwriting whatever was there.
func (m *StateSymbolMatrix) Set(i, j int, value int32) *StateSymbolMatrix {
	at := 0
	for k, e := range m.entries {
		if e.storedLeftOf(i, j) {
			at++
			continue
		}
		if e.storedAt(i, j) {
			m.entries[k].value = value
			return m
		}
		break
	}
	enew := entry{row: i, col: j, value: value}
	m.entries = append(m.entries, enew)
	copy(m.entries[at+1:], m.entries[at:])
	m.entries[at] = enew
	return m
}

func (e *entry) storedLeftOf(i, j int) bool {
	return e.row < i || e.row == i && e.col < j
}

func (e *entry) storedAt(i, j int) bool {
	return e.row == i && e.col == j
}
