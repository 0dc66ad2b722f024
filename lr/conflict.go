package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/rules"
)

// ConflictKind tags the three ambiguity shapes the conflict manager can
// report (spec §4.6).
type ConflictKind int

const (
	ShiftReduceConflict ConflictKind = iota
	ReduceReduceConflict
	LexLexConflict
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduceConflict:
		return "shift/reduce"
	case ReduceReduceConflict:
		return "reduce/reduce"
	case LexLexConflict:
		return "lex/lex"
	}
	return "?"
}

// Conflict is a human-readable description of an ambiguity the conflict
// manager could not resolve through precedence or associativity (spec
// §3, §4.6).
type Conflict struct {
	Kind        ConflictKind
	State       ParseStateID // for lex/lex conflicts, the lex state id (-1 for the error lex state)
	Symbol      rules.ISymbol
	Description string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict at state %d on %v: %s", c.Kind, c.State, c.Symbol, c.Description)
}

// ConflictManager arbitrates shift/reduce, reduce/reduce, and lex/lex
// ambiguities through precedence/associativity metadata, accumulating
// every ambiguity it could not cleanly resolve (spec §4.6). The build
// always completes: every method returns a decision, never an error.
// It is constructed from both grammars so conflict descriptions can name
// the rule a symbol belongs to rather than just its bare ISymbol: g
// resolves names for shift/reduce and reduce/reduce conflicts (whose
// symbols are syntactic nonterminals/tokens), lexG for lex/lex conflicts
// (whose symbols are token rules of the lexical grammar).
type ConflictManager struct {
	g, lexG   grammar.PreparedGrammar
	conflicts *arraylist.List
}

// NewConflictManager creates an empty conflict manager that resolves
// symbol names against g (the syntactic grammar) and lexG (the lexical
// grammar) when describing a recorded conflict.
func NewConflictManager(g, lexG grammar.PreparedGrammar) *ConflictManager {
	return &ConflictManager{g: g, lexG: lexG, conflicts: arraylist.New()}
}

// name resolves sym to its declared rule name in g, falling back to
// sym's own String() for built-in sentinels outside any grammar's rule
// list (spec §3's EndOfInput/ErrorSymbol).
func name(g grammar.PreparedGrammar, sym rules.ISymbol) string {
	if sym.IsBuiltIn() {
		return sym.String()
	}
	return g.Name(sym)
}

// Conflicts returns the accumulated conflicts, in the order they were
// recorded.
func (cm *ConflictManager) Conflicts() []Conflict {
	vals := cm.conflicts.Values()
	out := make([]Conflict, len(vals))
	for i, v := range vals {
		out[i] = v.(Conflict)
	}
	return out
}

func (cm *ConflictManager) record(c Conflict) {
	tracer().Infof("%s", c)
	cm.conflicts.Add(c)
}

// ResolveParseAction decides, for the given state and lookahead symbol,
// whether new should replace current, recording a conflict when the
// ambiguity cannot be resolved by precedence or associativity (spec
// §4.6's ACTION table). reduceAssoc/reduceHasAssoc carry the declared
// associativity of whichever side is a Reduce action (read off the
// reducing rule before it was flattened into a ParseAction, since
// ParseAction itself keeps no rule reference to re-derive it from); pass
// hasAssoc=false when none was declared.
func (cm *ConflictManager) ResolveParseAction(state ParseStateID, sym rules.ISymbol, current, new ParseAction, reduceAssoc int, reduceHasAssoc bool) ParseAction {
	if current.Kind == ActionError {
		return new
	}
	if new.Kind == ActionAccept || current.Kind == ActionAccept {
		if new.Kind == ActionAccept {
			return new
		}
		return current
	}
	switch {
	case current.Kind == ActionShift && new.Kind == ActionShift:
		merged := current
		merged.ShiftState = new.ShiftState
		merged.Precedences = map[int]bool{}
		for p := range current.Precedences {
			merged.Precedences[p] = true
		}
		for p := range new.Precedences {
			merged.Precedences[p] = true
		}
		return merged
	case current.Kind == ActionShift && new.Kind == ActionReduce:
		return cm.resolveShiftReduce(state, sym, current, new, reduceAssoc, reduceHasAssoc)
	case current.Kind == ActionReduce && new.Kind == ActionShift:
		return cm.resolveShiftReduce(state, sym, new, current, reduceAssoc, reduceHasAssoc)
	case current.Kind == ActionReduce && new.Kind == ActionReduce:
		cp, np := current.Precedence, new.Precedence
		if np > cp {
			return new
		}
		if np == cp {
			cm.record(Conflict{
				Kind:   ReduceReduceConflict,
				State:  state,
				Symbol: sym,
				Description: fmt.Sprintf("reduce %s vs reduce %s at equal precedence %d; keeping the earlier reduction",
					name(cm.g, current.ReduceLHS), name(cm.g, new.ReduceLHS), cp),
			})
		}
		return current
	}
	return current
}

func (cm *ConflictManager) resolveShiftReduce(state ParseStateID, sym rules.ISymbol, shift, reduce ParseAction, assoc int, hasAssoc bool) ParseAction {
	sp, rp := shift.MaxShiftPrecedence(), reduce.Precedence
	switch {
	case sp > rp:
		return shift
	case rp > sp:
		return reduce
	default:
		if hasAssoc {
			if assoc == rules.AssocLeft {
				return reduce
			}
			if assoc == rules.AssocRight {
				return shift
			}
		}
		cm.record(Conflict{
			Kind:   ShiftReduceConflict,
			State:  state,
			Symbol: sym,
			Description: fmt.Sprintf("shift vs reduce %s at equal precedence %d; preferring shift",
				name(cm.g, reduce.ReduceLHS), sp),
		})
		return shift
	}
}

// ResolveLexAction arbitrates two Accept actions competing for the same
// lex state's default action (spec §4.6): prefer the token with higher
// explicit precedence; tie-break by symbol index (lower wins, i.e.
// declaration order); record a conflict only when neither wins and both
// are non-auxiliary (the decided resolution of the spec's Open Question —
// see DESIGN.md).
func (cm *ConflictManager) ResolveLexAction(state LexStateID, current, new LexAction) LexAction {
	if current.Kind != LexAccept {
		return new
	}
	if new.Kind != LexAccept {
		return current
	}
	if new.Prec > current.Prec {
		return new
	}
	if current.Prec > new.Prec {
		return current
	}
	if new.Symbol.Index == current.Symbol.Index {
		return current
	}
	winner := current
	if new.Symbol.Index < current.Symbol.Index {
		winner = new
	}
	if !current.Symbol.IsAuxiliary() && !new.Symbol.IsAuxiliary() {
		cm.record(Conflict{
			Kind:   LexLexConflict,
			State:  ParseStateID(state),
			Symbol: winner.Symbol,
			Description: fmt.Sprintf("tokens %s and %s both accept at equal precedence %d; declaration order selects %s",
				name(cm.lexG, current.Symbol), name(cm.lexG, new.Symbol), current.Prec, name(cm.lexG, winner.Symbol)),
		})
	}
	return winner
}
