/*
Package grammar defines the input contract this module's table builder
consumes: PreparedGrammar, an already-interned ordered list of rules, plus
a Builder for constructing one programmatically.

Parsing a textual grammar source and desugaring it into this form is an
external collaborator's job (spec §1's "out of scope" boundary); this
package only models the result of that preparation step, and offers a
fluent builder so tests and the cmd/tablegen demo can construct fixtures
without a textual grammar language.
*/
package grammar

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/lrforge/tablegen/rules"
)

// tracer traces with key 'tablegen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("tablegen.grammar")
}

// NamedRule pairs an already-interned symbol, its declared name, and its
// rule body — the unit PreparedGrammar's rule lists are built from.
// Options carried on Symbol (Token/Auxiliary) are authoritative; they are
// decided once, during preparation, and never re-derived from the rule
// body.
type NamedRule struct {
	Symbol rules.ISymbol
	Name   string
	Rule   rules.Rule
}

// PreparedGrammar is an ordered list of main rules plus an ordered list of
// auxiliary rules (introduced by desugaring, invisible to parse tree
// consumers), with a designated start symbol. Symbols referenced inside
// Rule bodies are already interned to rules.ISymbol. Start is recorded
// explicitly rather than inferred from Rules[0]: a shared SymbolTable
// assigns indices to tokens and nonterminals from the same counter, so
// the start nonterminal's index depends on declaration order against
// every token, not just against other nonterminals.
type PreparedGrammar struct {
	Rules    []NamedRule
	AuxRules []NamedRule
	Start    rules.ISymbol
}

// Rule resolves sym to the body of the rule it names. It panics if sym
// does not name a rule of this grammar — by spec §7 this is a structural
// error that must have been caught during preparation and must never
// reach this core.
func (g PreparedGrammar) Rule(sym rules.ISymbol) rules.Rule {
	nr, ok := g.lookup(sym)
	if !ok {
		panic(fmt.Sprintf("grammar: Rule: %v names no rule of this grammar", sym))
	}
	return nr.Rule
}

// Name returns the declared name of sym, for diagnostics.
func (g PreparedGrammar) Name(sym rules.ISymbol) string {
	if sym.IsBuiltIn() {
		return sym.String()
	}
	nr, ok := g.lookup(sym)
	if !ok {
		panic(fmt.Sprintf("grammar: Name: %v names no rule of this grammar", sym))
	}
	return nr.Name
}

func (g PreparedGrammar) lookup(sym rules.ISymbol) (NamedRule, bool) {
	if sym.IsBuiltIn() {
		return NamedRule{}, false
	}
	list := g.Rules
	if sym.IsAuxiliary() {
		list = g.AuxRules
	}
	if sym.Index < 0 || sym.Index >= len(list) {
		return NamedRule{}, false
	}
	return list[sym.Index], true
}

// StartSymbol returns the ISymbol naming the designated start rule.
func (g PreparedGrammar) StartSymbol() rules.ISymbol {
	if len(g.Rules) == 0 {
		panic("grammar: StartSymbol: grammar has no rules")
	}
	return g.Start
}

// EachSymbol visits the ISymbol naming every main and auxiliary rule, in
// declaration order (main rules first).
func (g PreparedGrammar) EachSymbol(f func(rules.ISymbol)) {
	for _, nr := range g.Rules {
		f(nr.Symbol)
	}
	for _, nr := range g.AuxRules {
		f(nr.Symbol)
	}
}

// IsNonTerminal reports whether sym names a nonterminal rule of g (i.e. it
// is not a built-in sentinel and not flagged as a token).
func (g PreparedGrammar) IsNonTerminal(sym rules.ISymbol) bool {
	return !sym.IsBuiltIn() && !sym.IsTerminal()
}
