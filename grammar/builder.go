package grammar

import (
	"fmt"

	"github.com/lrforge/tablegen/rules"
)

// SymbolTable allocates ISymbol indices shared between a syntactic-grammar
// Builder and its companion lexical-grammar Builder, so that a token
// declared once names the same ISymbol in both: the syntactic grammar
// references it as an opaque terminal, the lexical grammar defines its
// CharacterSet-level rule body under that same index.
type SymbolTable struct {
	byName map[string]rules.ISymbol
	mainBy map[int]rules.ISymbol
	auxBy  map[int]rules.ISymbol
	nMain  int
	nAux   int
}

// NewSymbolTable creates an empty shared symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: map[string]rules.ISymbol{},
		mainBy: map[int]rules.ISymbol{},
		auxBy:  map[int]rules.ISymbol{},
	}
}

// SymbolAt returns the symbol previously allocated at the given index in
// the main (aux=false) or auxiliary (aux=true) index space, used by
// Builder.Grammar to fill in a correctly-optioned placeholder for an
// index declared on the shared table but never given a rule body by
// this particular builder (e.g. a lexical builder over a table whose
// syntactic-grammar companion declared more nonterminals than this
// builder ever defines tokens for).
func (t *SymbolTable) SymbolAt(index int, aux bool) (rules.ISymbol, bool) {
	if aux {
		sym, ok := t.auxBy[index]
		return sym, ok
	}
	sym, ok := t.mainBy[index]
	return sym, ok
}

// Declare interns name with the given options on first mention, returning
// the (possibly pre-existing) ISymbol. Re-declaring a name with different
// options is a Builder-time programmer error.
func (t *SymbolTable) Declare(name string, opts rules.SymbolOptions) rules.ISymbol {
	if sym, ok := t.byName[name]; ok {
		if sym.Options != opts {
			panic(fmt.Sprintf("grammar: SymbolTable: %q redeclared with different options", name))
		}
		return sym
	}
	var sym rules.ISymbol
	if opts.IsAuxiliary() {
		sym = rules.NewISymbol(t.nAux, opts)
		t.auxBy[sym.Index] = sym
		t.nAux++
	} else {
		sym = rules.NewISymbol(t.nMain, opts)
		t.mainBy[sym.Index] = sym
		t.nMain++
	}
	t.byName[name] = sym
	return sym
}

// Lookup returns the previously declared symbol named name.
func (t *SymbolTable) Lookup(name string) (rules.ISymbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// Builder constructs a PreparedGrammar fluently, the way the teacher's
// lr.NewGrammarBuilder constructs a textual grammar: clients declare
// rules left-hand-side first, then a right-hand side of symbol/token/rule
// references, terminated by End(). Symbols are resolved against a shared
// SymbolTable (see above) rather than a private one, so a syntactic
// Builder and a lexical Builder built over the same table agree on every
// token's index.
type Builder struct {
	name     string
	syms     *SymbolTable
	main     []NamedRule
	aux      []NamedRule
	lhs      *pendingLHS
	start    rules.ISymbol
	hasStart bool
}

type pendingLHS struct {
	sym  rules.ISymbol
	name string
	body []rules.Rule
}

// NewBuilder starts a new grammar builder named name (used only for
// diagnostics), drawing symbols from the shared table syms.
func NewBuilder(name string, syms *SymbolTable) *Builder {
	return &Builder{name: name, syms: syms}
}

// DeclareToken interns name as a terminal symbol (shared across both the
// syntactic and lexical builders drawing from the same SymbolTable),
// returning its ISymbol for use in rule bodies.
func (b *Builder) DeclareToken(name string) rules.ISymbol {
	return b.syms.Declare(name, rules.Token)
}

// Sym returns the previously declared symbol named name, panicking if it
// has not been declared yet on this builder's shared table — a
// Builder-time programmer error, distinct from the core's own
// "unresolved Symbol" error (spec §7).
func (b *Builder) Sym(name string) rules.ISymbol {
	sym, ok := b.syms.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("grammar: Builder %q: symbol %q referenced before being declared", b.name, name))
	}
	return sym
}

// LHS begins a new rule alternative for nonterminal name (or, for a
// lexical-grammar builder, for a previously-declared token name). If name
// already has a rule, the alternative under construction will be unioned
// with the existing one via Choice when End() is called — mirroring how a
// textual grammar lets a nonterminal be declared across several
// productions.
func (b *Builder) LHS(name string) *Builder {
	if b.lhs != nil {
		panic(fmt.Sprintf("grammar: Builder %q: LHS(%q) called while %q is still open; call End() first", b.name, name, b.lhs.name))
	}
	sym, ok := b.syms.Lookup(name)
	if !ok {
		sym = b.syms.Declare(name, 0)
	}
	if !b.hasStart {
		b.start, b.hasStart = sym, true
	}
	b.lhs = &pendingLHS{sym: sym, name: name}
	return b
}

// LHSAux behaves like LHS but declares name as an auxiliary rule on first
// mention (a rule introduced by desugaring, invisible to parse trees).
// It never affects the builder's start symbol: an auxiliary rule is
// introduced by desugaring and can never be the grammar's entry point.
func (b *Builder) LHSAux(name string) *Builder {
	if b.lhs != nil {
		panic(fmt.Sprintf("grammar: Builder %q: LHSAux(%q) called while %q is still open; call End() first", b.name, name, b.lhs.name))
	}
	sym, ok := b.syms.Lookup(name)
	if !ok {
		sym = b.syms.Declare(name, rules.Auxiliary)
	}
	b.lhs = &pendingLHS{sym: sym, name: name}
	return b
}

// N appends a reference to a nonterminal or token named name to the
// right-hand side under construction, forward-declaring it as a
// nonterminal on first mention (its own LHS(name)...End() may come later
// in the same builder, mirroring how a textual grammar allows forward
// references to rules defined further down).
func (b *Builder) N(name string) *Builder {
	b.requireOpenLHS("N")
	sym, ok := b.syms.Lookup(name)
	if !ok {
		sym = b.syms.Declare(name, 0)
	}
	b.lhs.body = append(b.lhs.body, sym)
	return b
}

// R appends an arbitrary rule expression (e.g. a CharacterSet, Str, or
// Pattern) to the right-hand side under construction — used when building
// lexical-grammar rules, whose bodies are character algebra rather than
// symbol references.
func (b *Builder) R(r rules.Rule) *Builder {
	b.requireOpenLHS("R")
	b.lhs.body = append(b.lhs.body, r)
	return b
}

// Prec wraps the right-hand side accumulated so far in Metadata carrying
// the given precedence.
func (b *Builder) Prec(precedence int) *Builder {
	return b.PrecAssoc(precedence, rules.AssocNone)
}

// PrecAssoc wraps the right-hand side accumulated so far in Metadata
// carrying both a precedence and a declared associativity.
func (b *Builder) PrecAssoc(precedence, assoc int) *Builder {
	b.requireOpenLHS("Prec")
	meta := map[rules.MetadataKey]int{rules.Precedence: precedence}
	if assoc != rules.AssocNone {
		meta[rules.Associativity] = assoc
	}
	b.lhs.body = []rules.Rule{rules.Metadata(rules.Seq(b.lhs.body...), meta)}
	return b
}

// Epsilon ends the rule under construction with an empty right-hand side.
func (b *Builder) Epsilon() *Builder {
	b.requireOpenLHS("Epsilon")
	return b.End()
}

// End finishes the rule alternative under construction, unioning it with
// any previously recorded rule for the same symbol.
func (b *Builder) End() *Builder {
	b.requireOpenLHS("End")
	lhs := b.lhs
	b.lhs = nil
	body := rules.Seq(lhs.body...)
	list, idx := b.listFor(lhs.sym)
	if idx < len(*list) && (*list)[idx].Name != "" {
		body = rules.Choice((*list)[idx].Rule, body)
	}
	nr := NamedRule{Symbol: lhs.sym, Name: lhs.name, Rule: body}
	for len(*list) <= idx {
		*list = append(*list, NamedRule{})
	}
	(*list)[idx] = nr
	return b
}

func (b *Builder) listFor(sym rules.ISymbol) (*[]NamedRule, int) {
	if sym.IsAuxiliary() {
		return &b.aux, sym.Index
	}
	return &b.main, sym.Index
}

func (b *Builder) requireOpenLHS(method string) {
	if b.lhs == nil {
		panic(fmt.Sprintf("grammar: Builder %q: %s() called with no open LHS; call LHS() first", b.name, method))
	}
}

// Grammar finalizes the builder into a PreparedGrammar. It panics if a
// rule was left open (an LHS without a matching End/Epsilon), or if no
// LHS was ever declared. A token/nonterminal index declared on the shared
// SymbolTable but never given a rule body by this builder is filled with
// a placeholder entry: the symbol and name the table holds for that index,
// and an Unreachable rule body.
func (b *Builder) Grammar() PreparedGrammar {
	if b.lhs != nil {
		panic(fmt.Sprintf("grammar: Builder %q: Grammar() called with %q still open", b.name, b.lhs.name))
	}
	for len(b.main) < b.syms.nMain {
		b.main = append(b.main, NamedRule{})
	}
	for len(b.aux) < b.syms.nAux {
		b.aux = append(b.aux, NamedRule{})
	}
	fillGaps := func(list []NamedRule, aux bool) {
		for i, nr := range list {
			if nr.Name != "" {
				continue
			}
			sym, ok := b.syms.SymbolAt(i, aux)
			if !ok {
				sym = rules.NewISymbol(i, rules.Token)
			}
			name := "?"
			for n, s := range b.syms.byName {
				if s.Index == i && s.IsAuxiliary() == aux {
					name = n
					break
				}
			}
			list[i] = NamedRule{Symbol: sym, Name: name, Rule: rules.Unreachable()}
		}
	}
	fillGaps(b.main, false)
	fillGaps(b.aux, true)
	if !b.hasStart {
		panic(fmt.Sprintf("grammar: Builder %q: Grammar() called with no LHS ever declared", b.name))
	}
	tracer().Infof("grammar %q: %d rule(s), %d auxiliary rule(s)", b.name, len(b.main), len(b.aux))
	return PreparedGrammar{Rules: b.main, AuxRules: b.aux, Start: b.start}
}
