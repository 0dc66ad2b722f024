/*
Package tablegen is the table-construction core of an LR-style parser
generator for context-free grammars with embedded lexical rules.

Given a syntactic grammar (terminals are token symbols) and a lexical
grammar (terminals are byte character sets), tablegen.lr.BuildTables
produces an LR(1)-style parse table and a DFA-like lex table, resolving
shift/reduce, reduce/reduce and lex/lex ambiguities through precedence and
associativity metadata attached to rules. Unresolvable ambiguities are
collected as Conflicts and returned to the caller rather than causing a
build failure.

Package structure:

■ rules: the rule algebra — an immutable, structurally-hashable tagged tree
of rule expressions (Blank, Symbol, ISymbol, CharacterSet, Choice, Seq,
Repeat, String, Pattern, Metadata), together with the symbol- and
character-derivative ("transition") operators the rest of the system is
built on.

■ grammar: PreparedGrammar, the input contract consumed from an upstream
grammar preparer, plus a small Builder for constructing one programmatically
(used by tests and the cmd/tablegen demo, standing in for a textual grammar
parser, which is out of scope for this module).

■ lr: parse items, lex items, item-set closure and transitions, first-sets,
the conflict manager, and the table builder itself — the realization of
build_tables.

■ lr/iteratable: a small destructive, value-semantics Set container used to
intern item sets into state ids.

This is a pure, single-threaded, batch computation: build_tables takes
ownership of nothing and returns freshly built tables; no state persists
across calls.
*/
package tablegen
