package lr

import (
	"golang.org/x/exp/slices"

	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/lr/iteratable"
	"github.com/lrforge/tablegen/rules"
)

// tableBuilder drives state enumeration for both the parse table and the
// lex table (spec §4.7). Parse states are discovered depth-first from
// the start item, in the exact recursive order add_parse_state specifies,
// so that two runs on equal inputs assign identical state ids (spec §5,
// §8).
type tableBuilder struct {
	g    grammar.PreparedGrammar
	lexG grammar.PreparedGrammar
	cm   *ConflictManager

	parseTable   *ParseTable
	parseIndex   map[string]ParseStateID // item-set key -> state id
	parseStacked map[string]bool         // not read; parseIndex is recorded before recursing, which stops re-entrant discovery

	lexTable *LexTable
	lexIndex map[string]LexStateID
}

// BuildTables is the single pure entry point of this core (spec §6):
// given the syntactic grammar g and the lexical grammar lexG, it
// constructs an LR(1)-style parse table and a DFA-like lex table,
// resolving ambiguities through the conflict manager and returning every
// ambiguity it could not resolve alongside the tables. The build always
// completes (spec §7); it never returns an error.
func BuildTables(g, lexG grammar.PreparedGrammar) (*ParseTable, *LexTable, []Conflict) {
	tb := &tableBuilder{
		g:            g,
		lexG:         lexG,
		cm:           NewConflictManager(g, lexG),
		parseTable:   newParseTable(),
		parseIndex:   map[string]ParseStateID{},
		parseStacked: map[string]bool{},
		lexTable:     newLexTable(),
		lexIndex:     map[string]LexStateID{},
	}
	start := newParseItemSet(NewParseItem(rules.Start, g.Rule(g.StartSymbol()), 0, rules.EndOfInput))
	ItemSetClosure(start, g)
	tracer().Debugf("=== build tables ===")
	tb.addParseState(start)
	tb.addErrorLexState()
	conflicts := tb.cm.Conflicts()
	tracer().Infof("built %d parse state(s), %d lex state(s), %d unresolved conflict(s)",
		len(tb.parseTable.states), len(tb.lexTable.states), len(conflicts))
	return tb.parseTable, tb.lexTable, conflicts
}

func itemSetKey(set *iteratable.Set) string {
	// item sets are unordered; a stable key needs the members sorted,
	// since insertion order varies with discovery path.
	vals := set.Values()
	keys := make([]string, len(vals))
	for i, v := range vals {
		keys[i] = v.Key()
	}
	slices.Sort(keys)
	s := ""
	for _, k := range keys {
		s += k + "\x1f"
	}
	return s
}

// addParseState implements add_parse_state (spec §4.7): dedup by item
// set identity, allocate a fresh id, then fill in shift actions, reduce
// actions, and the governing lex state, in that order.
func (tb *tableBuilder) addParseState(items *iteratable.Set) ParseStateID {
	key := itemSetKey(items)
	if id, ok := tb.parseIndex[key]; ok {
		return id
	}
	id := ParseStateID(len(tb.parseTable.states))
	tb.parseIndex[key] = id
	state := newParseState(id)
	tb.parseTable.states = append(tb.parseTable.states, state)
	tracer().Debugf("parse state %03d: %d item(s)", id, items.Size())

	tb.addShiftActions(state, items)
	tb.addReduceActions(state, items)
	tb.assignLexState(state)
	return id
}

func (tb *tableBuilder) addShiftActions(state *ParseState, items *iteratable.Set) {
	buckets := ItemSetSymTransitions(items, tb.g)
	buckets.each(func(sym rules.ISymbol, successor *iteratable.Set) {
		tb.parseTable.observe(sym)
		newStateID := tb.addParseState(successor)
		precedences := map[int]bool{}
		successor.Each(func(k iteratable.Keyed) {
			it := asParseItem(k)
			if it.ConsumedCount > 0 {
				precedences[it.Precedence()] = true
			}
		})
		shiftAction := ParseAction{Kind: ActionShift, ShiftState: newStateID, Precedences: precedences}
		current, ok := state.Action(sym)
		if !ok {
			state.setAction(sym, shiftAction)
			return
		}
		state.setAction(sym, tb.cm.ResolveParseAction(state.ID, sym, current, shiftAction, rules.AssocNone, false))
	})
}

func (tb *tableBuilder) addReduceActions(state *ParseState, items *iteratable.Set) {
	items.Each(func(k iteratable.Keyed) {
		item := asParseItem(k)
		if !item.IsDone() {
			return
		}
		tb.parseTable.observe(item.Lookahead)
		var action ParseAction
		if item.LHS.Equal(rules.Start) {
			action = Accept
		} else {
			action = Reduce(item.LHS, item.ConsumedCount, item.Precedence())
		}
		current, ok := state.Action(item.Lookahead)
		if !ok {
			state.setAction(item.Lookahead, action)
			return
		}
		assoc, hasAssoc := 0, false
		if action.Kind == ActionReduce {
			assoc, hasAssoc = rules.DeclaredAssociativity(tb.reduceRuleFor(item))
		}
		state.setAction(item.Lookahead, tb.cm.ResolveParseAction(state.ID, item.Lookahead, current, action, assoc, hasAssoc))
	})
}

// reduceRuleFor recovers the (undone) rule body a reducing item was
// matching, so its declared associativity can be consulted — the item
// itself has already consumed the whole right-hand side by the time it
// is a reduce candidate, so the associativity must be read off the
// grammar's own declaration for LHS rather than off item.Rest (which is
// Blank by construction).
func (tb *tableBuilder) reduceRuleFor(item ParseItem) rules.Rule {
	if item.LHS.IsBuiltIn() {
		return rules.Blank{}
	}
	return tb.g.Rule(item.LHS)
}

// assignLexState computes the lex item set for state's expected terminal
// inputs and stores the resulting lex state id on state (spec §4.7).
func (tb *tableBuilder) assignLexState(state *ParseState) {
	lexItems := tb.lexItemSetForParseState(state)
	state.LexStateID = tb.addLexState(lexItems)
}

func (tb *tableBuilder) lexItemSetForParseState(state *ParseState) *iteratable.Set {
	set := newLexItemSet()
	for _, sym := range state.ExpectedInputs() {
		if sym.Equal(rules.EndOfInput) {
			set.Add(NewLexItem(sym, afterSeparators(rules.NewCharacterSet([]byte{rules.EndOfInputByte}))))
			continue
		}
		if sym.IsBuiltIn() {
			continue
		}
		set.Add(NewLexItem(sym, afterSeparators(tb.lexG.Rule(sym))))
	}
	return set
}

// afterSeparators prepends zero-or-more whitespace bytes, then a
// START_TOKEN=1 metadata marker, then the token rule itself (spec §4.7).
// Relies on rules.IsDone/mayYieldToSuccessor treating a looped Repeat
// residual as already having met its minimum: otherwise a rule entered
// after one or more leading separator bytes could never transition into
// the token body that follows.
func afterSeparators(tokenRule rules.Rule) rules.Rule {
	ws := rules.Choice(rules.Repeat(rules.Separators), rules.Blank{})
	marker := rules.Metadata(rules.Blank{}, map[rules.MetadataKey]int{rules.StartToken: 1})
	return rules.Seq(ws, marker, tokenRule)
}

// addLexState implements add_lex_state (spec §4.7).
func (tb *tableBuilder) addLexState(items *iteratable.Set) LexStateID {
	key := itemSetKey(items)
	if id, ok := tb.lexIndex[key]; ok {
		return id
	}
	id := LexStateID(len(tb.lexTable.states))
	tb.lexIndex[key] = id
	state := newLexState(id)
	tb.lexTable.states = append(tb.lexTable.states, state)

	items.Each(func(k iteratable.Keyed) {
		if asLexItem(k).IsTokenStart() {
			state.IsTokenStart = true
		}
	})
	tb.addAdvanceActions(state, items)
	tb.addAcceptTokenActions(id, state, items)
	return id
}

func (tb *tableBuilder) addAdvanceActions(state *LexState, items *iteratable.Set) {
	buckets := ItemSetCharTransitions(items)
	buckets.each(func(cs rules.CharacterSet, successor *iteratable.Set) {
		newStateID := tb.addLexState(successor)
		state.setAction(cs, AdvanceTo(newStateID))
	})
}

func (tb *tableBuilder) addAcceptTokenActions(id LexStateID, state *LexState, items *iteratable.Set) {
	items.Each(func(k iteratable.Keyed) {
		item := asLexItem(k)
		if !item.IsDone() {
			return
		}
		action := AcceptToken(item.LHS, item.Precedence())
		state.DefaultAction = tb.cm.ResolveLexAction(id, state.DefaultAction, action)
	})
}

// addErrorLexState builds the synthetic error lex state with id
// ERRORStateID: it receives items for every token rule of the lexical
// grammar (main and auxiliary) plus END_OF_INPUT, so that a runtime
// parser in error-recovery mode may try any token (spec §4.7).
func (tb *tableBuilder) addErrorLexState() {
	set := newLexItemSet()
	addAll := func(list []grammar.NamedRule) {
		for _, nr := range list {
			if !nr.Symbol.IsTerminal() {
				continue
			}
			set.Add(NewLexItem(nr.Symbol, afterSeparators(nr.Rule)))
		}
	}
	addAll(tb.lexG.Rules)
	addAll(tb.lexG.AuxRules)
	set.Add(NewLexItem(rules.EndOfInput, afterSeparators(rules.NewCharacterSet([]byte{rules.EndOfInputByte}))))

	state := &LexState{ID: ERRORStateID, DefaultAction: LexErrorAction}
	items := set
	items.Each(func(k iteratable.Keyed) {
		if asLexItem(k).IsTokenStart() {
			state.IsTokenStart = true
		}
	})
	tb.addAdvanceActions(state, items)
	tb.addAcceptTokenActions(ERRORStateID, state, items)
	tb.lexTable.ErrorState = state
}
