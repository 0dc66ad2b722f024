package grammar

import (
	"testing"

	"github.com/lrforge/tablegen/rules"
)

func TestBuilderSimpleGrammar(t *testing.T) {
	syms := NewSymbolTable()
	b := NewBuilder("G", syms)
	aTok := b.DeclareToken("a")
	b.LHS("S").N("A").End()
	b.LHS("A").N("a").End()
	g := b.Grammar()

	if len(g.Rules) != 3 {
		t.Fatalf("expected 3 main rules (S, A, a), got %d", len(g.Rules))
	}
	if g.Name(g.StartSymbol()) != "S" {
		t.Errorf("expected start rule to be named S, got %q", g.Name(g.StartSymbol()))
	}
	aSym, _ := syms.Lookup("A")
	if !g.Rule(aSym).Equal(aTok) {
		t.Errorf("expected A's rule to be a reference to token a, got %v", g.Rule(aSym))
	}
}

func TestBuilderMergesMultipleAlternatives(t *testing.T) {
	syms := NewSymbolTable()
	b := NewBuilder("G", syms)
	bSym := b.DeclareToken("b")
	_ = bSym
	b.LHS("B").N("b").End()
	b.LHS("B").Epsilon()
	g := b.Grammar()

	sym, ok := syms.Lookup("B")
	if !ok {
		t.Fatalf("expected B to be declared")
	}
	got := g.Rule(sym)
	want := rules.Choice(syms.mustLookup("b"), rules.Blank{})
	if !got.Equal(want) {
		t.Errorf("expected merged alternatives %v, got %v", want, got)
	}
}

func (t *SymbolTable) mustLookup(name string) rules.ISymbol {
	sym, ok := t.Lookup(name)
	if !ok {
		panic("not found: " + name)
	}
	return sym
}

func TestSharedSymbolTableAcrossSyntacticAndLexicalBuilders(t *testing.T) {
	syms := NewSymbolTable()
	syn := NewBuilder("syntax", syms)
	lex := NewBuilder("lex", syms)

	aTok := syn.DeclareToken("a")
	syn.LHS("S").N("a").End()
	synG := syn.Grammar()

	lex.LHS("a").R(rules.Character('a', 'a')).End()
	lexG := lex.Grammar()

	if synG.Name(aTok) != lexG.Name(aTok) {
		t.Errorf("expected token %v to share a name across grammars, got %q vs %q", aTok, synG.Name(aTok), lexG.Name(aTok))
	}
	if !lexG.Rule(aTok).Equal(rules.Character('a', 'a')) {
		t.Errorf("expected lexical grammar to define the token's character rule, got %v", lexG.Rule(aTok))
	}
}

func TestRuleOnUndefinedSymbolPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic resolving a symbol with no rule")
		}
	}()
	g := PreparedGrammar{}
	g.Rule(rules.NewISymbol(0, 0))
}
