/*
Package rules implements the rule algebra this module's table
construction is built on: Blank, Symbol/ISymbol, CharacterSet, Choice,
Seq, Repeat, String, Pattern and Metadata, their smart constructors, and
the symbol/character derivative operators (SymTransitions,
CharTransitions) that let a grammar or lexical rule be advanced one
symbol or byte at a time.

ISymbol and SymbolOptions record what a grammar preparer already
resolved about a symbol (token-ness, auxiliary-ness) rather than
properties this package has to re-derive. CharacterSet is a canonical,
disjoint-range byte set; Hash computes a canonical structural hash of
any Rule, used by package lr to intern item sets.
*/
package rules

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tablegen.rules'.
func tracer() tracing.Trace {
	return tracing.Select("tablegen.rules")
}
