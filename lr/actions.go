package lr

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/lrforge/tablegen/rules"
)

// ParseStateID identifies a parse state; non-negative.
type ParseStateID int

// LexStateID identifies a lex state; ERROR_STATE_ID denotes the
// synthetic error state (spec §6).
type LexStateID int

// ERRORStateID is the id of the synthetic error lex state (spec §6).
const ERRORStateID LexStateID = -1

// ParseActionKind tags a ParseAction's variant.
type ParseActionKind int

const (
	ActionError ParseActionKind = iota
	ActionAccept
	ActionShift
	ActionReduce
)

// ParseAction is the tagged variant described in spec §3:
// Error | Accept | Shift(state_id, precedence_set) | Reduce(lhs, symbol_count, precedence).
type ParseAction struct {
	Kind         ParseActionKind
	ShiftState   ParseStateID
	Precedences  map[int]bool // precedence set, for Shift
	ReduceLHS    rules.ISymbol
	SymbolCount  int
	Precedence   int // for Reduce
}

// Shift builds a Shift action with a singleton precedence set.
func Shift(state ParseStateID, precedence int) ParseAction {
	return ParseAction{Kind: ActionShift, ShiftState: state, Precedences: map[int]bool{precedence: true}}
}

// Reduce builds a Reduce action.
func Reduce(lhs rules.ISymbol, symbolCount, precedence int) ParseAction {
	return ParseAction{Kind: ActionReduce, ReduceLHS: lhs, SymbolCount: symbolCount, Precedence: precedence}
}

// Accept is the accepting action.
var Accept = ParseAction{Kind: ActionAccept}

// ErrorAction is the absence of any applicable action.
var ErrorAction = ParseAction{Kind: ActionError}

// MaxShiftPrecedence returns the highest value in a, the precedence set
// of a Shift action.
func (a ParseAction) MaxShiftPrecedence() int {
	max := 0
	for p := range a.Precedences {
		if p > max {
			max = p
		}
	}
	return max
}

func (a ParseAction) String() string {
	switch a.Kind {
	case ActionError:
		return "error"
	case ActionAccept:
		return "accept"
	case ActionShift:
		return fmt.Sprintf("shift(%d)", a.ShiftState)
	case ActionReduce:
		return fmt.Sprintf("reduce(%v, %d)", a.ReduceLHS, a.SymbolCount)
	}
	return "?"
}

// Equal reports whether a and o denote the same action (used by tests,
// not by the conflict manager, which works off of replace/keep decisions
// rather than equality).
func (a ParseAction) Equal(o ParseAction) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case ActionShift:
		if a.ShiftState != o.ShiftState || len(a.Precedences) != len(o.Precedences) {
			return false
		}
		for p := range a.Precedences {
			if !o.Precedences[p] {
				return false
			}
		}
		return true
	case ActionReduce:
		return a.ReduceLHS.Equal(o.ReduceLHS) && a.SymbolCount == o.SymbolCount && a.Precedence == o.Precedence
	}
	return true
}

// LexActionKind tags a LexAction's variant.
type LexActionKind int

const (
	LexError LexActionKind = iota
	LexAdvance
	LexAccept
)

// LexAction is the tagged variant described in spec §3:
// Error | Advance(state_id) | Accept(symbol).
type LexAction struct {
	Kind    LexActionKind
	Advance LexStateID
	Symbol  rules.ISymbol
	Prec    int
}

// AdvanceTo builds an Advance action.
func AdvanceTo(state LexStateID) LexAction {
	return LexAction{Kind: LexAdvance, Advance: state}
}

// AcceptToken builds an Accept action for the given token symbol and the
// precedence recorded on the accepting item's rule.
func AcceptToken(sym rules.ISymbol, precedence int) LexAction {
	return LexAction{Kind: LexAccept, Symbol: sym, Prec: precedence}
}

// LexErrorAction is the absence of any applicable lex action.
var LexErrorAction = LexAction{Kind: LexError}

func (a LexAction) String() string {
	switch a.Kind {
	case LexError:
		return "error"
	case LexAdvance:
		return fmt.Sprintf("advance(%d)", a.Advance)
	case LexAccept:
		return fmt.Sprintf("accept(%v)", a.Symbol)
	}
	return "?"
}

// ParseState is an ordered mapping ISymbol -> ParseAction plus the id of
// the lex state governing which tokens may be recognized while in this
// parse state (spec §3).
type ParseState struct {
	ID         ParseStateID
	actions    *linkedhashmap.Map // rules.ISymbol -> ParseAction, insertion ordered
	LexStateID LexStateID
}

func newParseState(id ParseStateID) *ParseState {
	return &ParseState{ID: id, actions: linkedhashmap.New()}
}

// Action returns the action installed for sym, and whether one exists.
func (s *ParseState) Action(sym rules.ISymbol) (ParseAction, bool) {
	v, ok := s.actions.Get(sym)
	if !ok {
		return ErrorAction, false
	}
	return v.(ParseAction), true
}

func (s *ParseState) setAction(sym rules.ISymbol, a ParseAction) {
	s.actions.Put(sym, a)
}

// Each visits every (symbol, action) pair in insertion order.
func (s *ParseState) Each(f func(rules.ISymbol, ParseAction)) {
	it := s.actions.Iterator()
	for it.Next() {
		f(it.Key().(rules.ISymbol), it.Value().(ParseAction))
	}
}

// ExpectedInputs returns the terminal symbols this state has an action
// for, in insertion (discovery) order — the set of terminals the lex
// state for this ParseState must be prepared to recognize. Nonterminal
// keys are left out.
func (s *ParseState) ExpectedInputs() []rules.ISymbol {
	out := make([]rules.ISymbol, 0, s.actions.Size())
	s.Each(func(sym rules.ISymbol, _ ParseAction) {
		if sym.IsTerminal() {
			out = append(out, sym)
		}
	})
	return out
}

func (s *ParseState) String() string {
	return fmt.Sprintf("state(%d)", s.ID)
}

// LexState is an ordered mapping CharacterSet -> LexAction plus a
// default action (applied when no character transition matches) and a
// flag marking whether this state sits at the boundary between leading
// whitespace and the token body proper (spec §3).
type LexState struct {
	ID            LexStateID
	entries       []lexStateEntry
	DefaultAction LexAction
	IsTokenStart  bool
}

type lexStateEntry struct {
	set    rules.CharacterSet
	action LexAction
}

func newLexState(id LexStateID) *LexState {
	return &LexState{ID: id, DefaultAction: LexErrorAction}
}

func (s *LexState) setAction(cs rules.CharacterSet, a LexAction) {
	for i, e := range s.entries {
		if e.set.Equal(cs) {
			s.entries[i].action = a
			return
		}
	}
	s.entries = append(s.entries, lexStateEntry{set: cs, action: a})
}

// Each visits every (characterSet, action) pair in insertion order.
func (s *LexState) Each(f func(rules.CharacterSet, LexAction)) {
	for _, e := range s.entries {
		f(e.set, e.action)
	}
}

// ExpectedInputs returns the CharacterSets this state has an advance
// action for, in insertion (discovery) order — the partitions of the
// next byte this lex state actually distinguishes between, as opposed
// to falling through to DefaultAction.
func (s *LexState) ExpectedInputs() []rules.CharacterSet {
	out := make([]rules.CharacterSet, 0, len(s.entries))
	s.Each(func(cs rules.CharacterSet, _ LexAction) {
		out = append(out, cs)
	})
	return out
}

// Action returns the advance action whose CharacterSet contains b, and
// the default action otherwise.
func (s *LexState) Action(b byte) LexAction {
	for _, e := range s.entries {
		if e.set.Contains(b) {
			return e.action
		}
	}
	return s.DefaultAction
}

func (s *LexState) String() string {
	return fmt.Sprintf("lexstate(%d)", s.ID)
}

// ParseTable is the ordered list of ParseStates discovered by the table
// builder, indexed by ParseStateID (spec §6).
type ParseTable struct {
	states  []*ParseState
	symbols *treeset.Set // rules.ISymbol, kept sorted by Index
}

// symbolByIndex orders two rules.ISymbol values by their Index, so a
// treeset.Set of symbols iterates in ascending-index order without a
// separate sort pass once construction is done.
var symbolByIndex utils.Comparator = func(a, b interface{}) int {
	ai, bi := a.(rules.ISymbol).Index, b.(rules.ISymbol).Index
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

func newParseTable() *ParseTable {
	return &ParseTable{symbols: treeset.NewWith(symbolByIndex)}
}

// States returns the table's states, indexed by ParseStateID.
func (t *ParseTable) States() []*ParseState { return t.states }

// State returns the state with the given id.
func (t *ParseTable) State(id ParseStateID) *ParseState { return t.states[id] }

// Symbols returns the set of symbols encountered while building the
// table, sorted by index for determinism.
func (t *ParseTable) Symbols() []rules.ISymbol {
	vals := t.symbols.Values()
	out := make([]rules.ISymbol, len(vals))
	for i, v := range vals {
		out[i] = v.(rules.ISymbol)
	}
	return out
}

func (t *ParseTable) observe(sym rules.ISymbol) { t.symbols.Add(sym) }

// LexTable is the ordered list of LexStates discovered by the table
// builder, indexed by LexStateID, plus the synthetic error state (spec
// §6).
type LexTable struct {
	states     []*LexState
	ErrorState *LexState
}

func newLexTable() *LexTable {
	return &LexTable{}
}

// States returns the table's states, indexed by LexStateID (0-based).
func (t *LexTable) States() []*LexState { return t.states }

// State returns the state with the given id, or the error state for
// ERRORStateID.
func (t *LexTable) State(id LexStateID) *LexState {
	if id == ERRORStateID {
		return t.ErrorState
	}
	return t.states[id]
}
