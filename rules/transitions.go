package rules

import "fmt"

// SymTransitions computes the symbol derivative of r (spec §4.1): the
// mapping from each symbol that can appear first when recognizing r to
// the residual rule left after consuming it.
func SymTransitions(r Rule) *SymTransitionMap {
	m := newSymTransitionMap()
	switch v := r.(type) {
	case Blank:
		// no transitions
	case Symbol:
		panic(fmt.Sprintf("rules: SymTransitions: unresolved Symbol %q reached the table builder — grammar was not fully prepared/interned", v.Name))
	case ISymbol:
		m.Put(v, Blank{})
	case CharacterSet:
		// a character leaf contributes no *symbol* transition
	case *unreachableRule:
		// no derivations
	case *choiceRule:
		for _, c := range v.Children {
			SymTransitions(c).Each(func(sym ISymbol, cr Rule) { m.AddOrMerge(sym, cr) })
		}
	case *seqRule:
		SymTransitions(v.Left).Each(func(sym ISymbol, cr Rule) {
			m.AddOrMerge(sym, Seq(cr, v.Right))
		})
		if mayYieldToSuccessor(v.Left) {
			SymTransitions(v.Right).Each(func(sym ISymbol, cr Rule) { m.AddOrMerge(sym, cr) })
		}
	case *repeatRule:
		SymTransitions(v.Child).Each(func(sym ISymbol, cr Rule) {
			if IsBlank(cr) {
				m.AddOrMerge(sym, Repeat(v.Child))
			} else {
				m.AddOrMerge(sym, Seq(cr, Repeat(v.Child)))
			}
		})
	case *metadataRule:
		SymTransitions(v.Child).Each(func(sym ISymbol, cr Rule) {
			m.AddOrMerge(sym, Metadata(cr, v.Meta))
		})
	case *stringRule:
		return SymTransitions(v.Desugar())
	case *patternRule:
		return SymTransitions(v.Desugar())
	default:
		panic(fmt.Sprintf("rules: SymTransitions: unhandled rule variant %T", r))
	}
	return m
}

// CharTransitions computes the character derivative of r (spec §4.1): the
// mapping from each partition of the first byte to the residual rule left
// after consuming it. Overlapping-but-unequal CharacterSet keys arising
// from Choice or from a nullable Seq head are split into disjoint pieces
// per spec §4.2, via CharTransitionMap.AddOrSplit.
func CharTransitions(r Rule) *CharTransitionMap {
	m := newCharTransitionMap()
	switch v := r.(type) {
	case Blank:
		// no transitions
	case Symbol:
		panic(fmt.Sprintf("rules: CharTransitions: unresolved Symbol %q reached the table builder — grammar was not fully prepared/interned", v.Name))
	case ISymbol:
		// a symbol leaf inside a lexical rule contributes no *character*
		// transition of its own; it is carried through untouched as a
		// residual wherever it follows a character-set head in a Seq.
	case CharacterSet:
		m.AddOrSplit(v, Blank{})
	case *unreachableRule:
		// no derivations
	case *choiceRule:
		for _, c := range v.Children {
			CharTransitions(c).Each(func(cs CharacterSet, cr Rule) { m.AddOrSplit(cs, cr) })
		}
	case *seqRule:
		CharTransitions(v.Left).Each(func(cs CharacterSet, cr Rule) {
			m.AddOrSplit(cs, Seq(cr, v.Right))
		})
		if mayYieldToSuccessor(v.Left) {
			CharTransitions(v.Right).Each(func(cs CharacterSet, cr Rule) { m.AddOrSplit(cs, cr) })
		}
	case *repeatRule:
		CharTransitions(v.Child).Each(func(cs CharacterSet, cr Rule) {
			if IsBlank(cr) {
				m.AddOrSplit(cs, Repeat(v.Child))
			} else {
				m.AddOrSplit(cs, Seq(cr, Repeat(v.Child)))
			}
		})
	case *metadataRule:
		CharTransitions(v.Child).Each(func(cs CharacterSet, cr Rule) {
			m.AddOrSplit(cs, Metadata(cr, v.Meta))
		})
	case *stringRule:
		return CharTransitions(v.Desugar())
	case *patternRule:
		return CharTransitions(v.Desugar())
	default:
		panic(fmt.Sprintf("rules: CharTransitions: unhandled rule variant %T", r))
	}
	return m
}
