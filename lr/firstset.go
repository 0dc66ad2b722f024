package lr

import (
	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/rules"
)

// FirstSet returns the transitive closure of symbols (for the syntactic
// grammar) or character sets (for the lexical grammar) reachable as the
// first element of r, per spec §4.3. g is used to expand nonterminal
// symbols found among r's sym_transitions keys; when a nonterminal's own
// rule body is nullable (rules.Nullable), the symbols that may follow it
// in r are included as well. A body that is nullable only through another
// nonterminal is not detected as nullable. A nil g skips expansion
// entirely: every key of r's sym_transitions is returned as is.
func FirstSet(r rules.Rule, g *grammar.PreparedGrammar) *rules.SymTransitionMap {
	visited := map[string]bool{}
	out := newFirstAccumulator()
	firstSetRec(r, g, visited, out)
	return out.m
}

type firstAccumulator struct {
	m *rules.SymTransitionMap
}

func newFirstAccumulator() *firstAccumulator {
	return &firstAccumulator{m: rules.SymTransitions(rules.Blank{})}
}

func firstSetRec(r rules.Rule, g *grammar.PreparedGrammar, visited map[string]bool, out *firstAccumulator) {
	rules.SymTransitions(r).Each(func(sym rules.ISymbol, residual rules.Rule) {
		if g == nil || sym.IsTerminal() || sym.IsBuiltIn() {
			out.m.AddOrMerge(sym, residual)
			return
		}
		// sym is a nonterminal: it never itself belongs in a FIRST set of
		// terminals, but its own rule's first symbols do, and so do the
		// first symbols of what follows it when its rule is nullable.
		// Guard cycles with a visited set (spec §4.3, §9), keyed both by
		// expanded nonterminal and by residual followed.
		body := g.Rule(sym)
		if key := "n" + rules.Hash(sym); !visited[key] {
			visited[key] = true
			firstSetRec(body, g, visited, out)
		}
		if rules.Nullable(body) {
			if key := "r" + rules.Hash(residual); !visited[key] {
				visited[key] = true
				firstSetRec(residual, g, visited, out)
			}
		}
	})
}

// FirstCharSet is the character-set analogue of FirstSet, for the lexical
// grammar: since lexical rules never reference nonterminals, it is just
// char_transitions(r) — provided for symmetry and clarity at call sites.
func FirstCharSet(r rules.Rule) *rules.CharTransitionMap {
	return rules.CharTransitions(r)
}
