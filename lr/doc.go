/*
Package lr implements the item-set and table-construction machinery of
the table-construction core: parse items and lex items, their closure
and symbol/character transitions, first-sets, the conflict manager, and
BuildTables itself.

A ParseItem tracks progress through a grammar rule's right-hand side
under a lookahead symbol; a LexItem tracks progress through a lexical
rule's character-set body. ItemSetClosure expands a parse item set to
include every item reachable by entering a nonterminal's own rules;
ItemSetSymTransitions and ItemSetCharTransitions lift the rule algebra's
symbol- and character-derivative operators from single items to whole
sets, merging and splitting CharacterSet keys across items as needed.

BuildTables discovers parse states and lex states by recursive, memoized
exploration from a single augmented start item, resolving shift/reduce,
reduce/reduce, and lex/lex ambiguities through a ConflictManager and
recording whatever it could not resolve as Conflicts. The build is
deterministic: two calls over equal grammars assign identical state ids
and produce identical tables.

    pt, lt, conflicts := lr.BuildTables(syntaxGrammar, lexGrammar)

lr/iteratable supplies the destructive, value-semantics Set container
item sets are built from; its Key()-based identity is what lets two
independently-discovered item sets collapse into the same table state.
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tablegen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("tablegen.lr")
}
