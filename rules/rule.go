package rules

import "sort"

// ruleKind tags the variant of a Rule value, used in place of a
// class-hierarchy for exhaustive, zero-cost dispatch via type switches.
type ruleKind int

const (
	kindBlank ruleKind = iota
	kindSymbol
	kindISymbol
	kindCharacterSet
	kindChoice
	kindSeq
	kindRepeat
	kindString
	kindPattern
	kindMetadata
)

// Rule is an immutable, structurally-hashable tagged tree of rule
// expressions (spec §3). ISymbol and CharacterSet implement Rule directly
// as value types (see symbol.go, charset.go); the remaining variants are
// defined below.
type Rule interface {
	ruleKind() ruleKind
	Equal(other Rule) bool
}

// --- Blank / epsilon --------------------------------------------------

// Blank is the empty-string rule, ε. The Seq smart constructor drops Blank
// operands (Blank is Seq's identity element); Choice keeps a Blank child,
// which makes the alternation nullable.
type Blank struct{}

func (Blank) ruleKind() ruleKind { return kindBlank }

func (Blank) Equal(other Rule) bool {
	_, ok := other.(Blank)
	return ok
}

// IsBlank reports whether r is the Blank rule.
func IsBlank(r Rule) bool {
	_, ok := r.(Blank)
	return ok
}

// --- Symbol (unresolved, pre-preparation only) -------------------------

// Symbol is an unresolved reference to a rule by name. It exists only
// before grammar preparation interns names to ISymbol; the table builder
// and rule algebra never expect to see one and treat it as a programmer
// error (spec §7, channel 1) if they do.
type Symbol struct {
	Name string
}

func (Symbol) ruleKind() ruleKind { return kindSymbol }

func (s Symbol) Equal(other Rule) bool {
	o, ok := other.(Symbol)
	return ok && o.Name == s.Name
}

// --- Choice -------------------------------------------------------------

// choiceRule is unordered alternation. Children are kept flattened and
// sorted into a canonical multiset order by Build.
type choiceRule struct {
	Children []Rule
}

func (*choiceRule) ruleKind() ruleKind { return kindChoice }

func (c *choiceRule) Equal(other Rule) bool {
	o, ok := other.(*choiceRule)
	if !ok || len(o.Children) != len(c.Children) {
		return false
	}
	for i, ch := range c.Children {
		if !ch.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Choice builds an unordered alternation rule. Nested choices are
// flattened, structurally-duplicate children are collapsed (so
// Choice(a, a) reduces to a, matching the idempotence invariant of spec
// §8), and an empty result (an empty Choice, i.e. unreachable) collapses
// to the sentinel returned by Unreachable().
func Choice(children ...Rule) Rule {
	flat := flattenChoice(children)
	deduped := dedupeChoice(flat)
	switch len(deduped) {
	case 0:
		return Unreachable()
	case 1:
		return deduped[0]
	}
	sort.Slice(deduped, func(i, j int) bool { return Hash(deduped[i]) < Hash(deduped[j]) })
	return &choiceRule{Children: deduped}
}

func flattenChoice(children []Rule) []Rule {
	var out []Rule
	for _, c := range children {
		if ch, ok := c.(*choiceRule); ok {
			out = append(out, flattenChoice(ch.Children)...)
			continue
		}
		if _, ok := c.(*unreachableRule); ok {
			continue // empty choice is the identity for Choice's union
		}
		out = append(out, c)
	}
	return out
}

func dedupeChoice(children []Rule) []Rule {
	var out []Rule
	for _, c := range children {
		dup := false
		for _, o := range out {
			if c.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// unreachableRule represents an empty Choice: a rule with no derivations.
type unreachableRule struct{}

func (*unreachableRule) ruleKind() ruleKind { return kindChoice }

func (*unreachableRule) Equal(other Rule) bool {
	_, ok := other.(*unreachableRule)
	return ok
}

// Unreachable returns the rule with no derivations (the empty Choice).
func Unreachable() Rule { return &unreachableRule{} }

// IsUnreachable reports whether r is the empty-Choice sentinel.
func IsUnreachable(r Rule) bool {
	_, ok := r.(*unreachableRule)
	return ok
}

// --- Seq ----------------------------------------------------------------

// seqRule is a binary concatenation node. Structural equality and hashing
// treat chains of Seq nodes as a flattened, right-associative normal form
// (spec §3's invariant), so the physical nesting Build happens to produce
// is not observable.
type seqRule struct {
	Left, Right Rule
}

func (*seqRule) ruleKind() ruleKind { return kindSeq }

func (s *seqRule) Equal(other Rule) bool {
	return equalFlatSeq(flattenSeq(s), flattenSeq(other))
}

func equalFlatSeq(a, b []Rule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// flattenSeq returns the left-to-right list of non-Seq operands of r (a
// single-element list if r is not itself a Seq).
func flattenSeq(r Rule) []Rule {
	s, ok := r.(*seqRule)
	if !ok {
		return []Rule{r}
	}
	return append(flattenSeq(s.Left), flattenSeq(s.Right)...)
}

// Seq builds a concatenation of the given rules, left to right. Blank
// operands are absorbed (Blank is the identity element), and nested
// sequences among the arguments are flattened before the tree is rebuilt,
// matching spec §3's "Seq::Build(children) ... collapses Blank and nested
// sequences." The physical tree built is right-associative.
func Seq(rules ...Rule) Rule {
	var flat []Rule
	for _, r := range rules {
		for _, leaf := range flattenSeq(r) {
			if !IsBlank(leaf) {
				flat = append(flat, leaf)
			}
		}
	}
	switch len(flat) {
	case 0:
		return Blank{}
	case 1:
		return flat[0]
	}
	result := flat[len(flat)-1]
	for i := len(flat) - 2; i >= 0; i-- {
		result = &seqRule{Left: flat[i], Right: result}
	}
	return result
}

// --- Repeat ---------------------------------------------------------------

// repeatRule is one-or-more repetition; zero-or-more is expressed by
// callers as Choice(Repeat(r), Blank{}) per spec §3.
type repeatRule struct {
	Child Rule
}

func (*repeatRule) ruleKind() ruleKind { return kindRepeat }

func (r *repeatRule) Equal(other Rule) bool {
	o, ok := other.(*repeatRule)
	return ok && r.Child.Equal(o.Child)
}

// Repeat builds a one-or-more repetition of child.
func Repeat(child Rule) Rule {
	return &repeatRule{Child: child}
}

// IsDone reports whether r represents a fully-satisfied match: the
// literal empty rule, or a bare Repeat residual, either of them possibly
// still wrapped in the Metadata that transitions carry along (so a rule
// declared with a precedence is done once its body is consumed, and its
// residual still reports that precedence). Repeat's own
// derivative canonicalizes a continuing repetition back to the same
// Repeat node rather than re-wrapping it in Choice(Repeat, Blank) (see
// the termination comment on the repeatRule case in transitions.go), so
// by the time a derivation has landed back on a bare Repeat it has
// already consumed at least one occurrence of its child — the
// "one-or-more" minimum is met and the match may legally end here, even
// though the Repeat node itself is never nullable from scratch. Without
// this, any item whose remainder settles on a trailing or embedded
// repetition (identifiers, numbers, runs of whitespace) could never be
// reported as done.
func IsDone(r Rule) bool {
	if IsBlank(r) {
		return true
	}
	if m, ok := r.(*metadataRule); ok {
		return IsDone(m.Child)
	}
	_, ok := r.(*repeatRule)
	return ok
}

// mayYieldToSuccessor reports whether a Seq head that has reduced to r
// may hand control to what follows it without consuming more input: true
// for a nullable head (the ordinary case) and for a bare Repeat residual,
// which — per IsDone — has already satisfied its minimum occurrence.
func mayYieldToSuccessor(r Rule) bool {
	if Nullable(r) {
		return true
	}
	_, ok := r.(*repeatRule)
	return ok
}

// --- Metadata ---------------------------------------------------------------

// MetadataKey identifies an entry in a Metadata rule's annotation map.
type MetadataKey int

const (
	// Precedence is the numeric precedence used to arbitrate shift/reduce
	// and reduce/reduce conflicts (spec §4.6).
	Precedence MetadataKey = iota
	// StartToken marks the zero-width position between leading whitespace
	// and the token body proper (spec §4.7).
	StartToken
	// Associativity records a declared associativity (AssocLeft/AssocRight)
	// used to break shift/reduce ties of equal precedence (spec §4.6). Not
	// named explicitly among spec §3's "recognized keys" list, but required
	// by §4.6's tie-break rule; see DESIGN.md for this decision.
	Associativity
)

// Associativity values stored under the Associativity metadata key.
const (
	AssocNone  = 0
	AssocLeft  = 1
	AssocRight = 2
)

// metadataRule wraps a rule with a map of MetadataKey to int. Metadata
// must survive transitions: every residual of a rule that had metadata
// carries the same metadata (spec §4.1).
type metadataRule struct {
	Child Rule
	Meta  map[MetadataKey]int
}

func (*metadataRule) ruleKind() ruleKind { return kindMetadata }

func (m *metadataRule) Equal(other Rule) bool {
	o, ok := other.(*metadataRule)
	if !ok || !m.Child.Equal(o.Child) || len(m.Meta) != len(o.Meta) {
		return false
	}
	for k, v := range m.Meta {
		if ov, ok := o.Meta[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Metadata wraps child with the given metadata map.
func Metadata(child Rule, meta map[MetadataKey]int) Rule {
	return &metadataRule{Child: child, Meta: meta}
}

// MaxPrecedence returns the maximum PRECEDENCE value found anywhere in r's
// metadata, and 0 if none is present (spec §3, ParseItem.precedence()).
func MaxPrecedence(r Rule) int {
	p, _, _ := precedenceAndAssoc(r)
	return p
}

// DeclaredAssociativity returns the associativity recorded alongside the
// rule's maximum-precedence metadata entry, if any.
func DeclaredAssociativity(r Rule) (int, bool) {
	_, assoc, ok := precedenceAndAssoc(r)
	return assoc, ok
}

// HasPendingStartToken reports whether r's START_TOKEN marker (spec §4.7)
// is still ahead, reachable without consuming a byte or symbol. A Seq's
// marker moves into the outermost position once every rule to its left
// has become nullable or a satisfied Repeat, so the marker is not always
// r's own outermost node; this walks the same nullable-prefix a
// derivative would bypass, rather than requiring r itself to be a bare
// Metadata node.
func HasPendingStartToken(r Rule) bool {
	switch v := r.(type) {
	case *metadataRule:
		if v.Meta[StartToken] == 1 {
			return true
		}
		return HasPendingStartToken(v.Child)
	case *seqRule:
		if HasPendingStartToken(v.Left) {
			return true
		}
		return mayYieldToSuccessor(v.Left) && HasPendingStartToken(v.Right)
	case *choiceRule:
		for _, c := range v.Children {
			if HasPendingStartToken(c) {
				return true
			}
		}
		return false
	case *repeatRule:
		return HasPendingStartToken(v.Child)
	case *stringRule:
		return HasPendingStartToken(v.Desugar())
	case *patternRule:
		return HasPendingStartToken(v.Desugar())
	default:
		return false
	}
}

func precedenceAndAssoc(r Rule) (prec int, assoc int, hasAssoc bool) {
	switch v := r.(type) {
	case *metadataRule:
		p := v.Meta[Precedence]
		a, hasA := v.Meta[Associativity]
		cp, ca, cHasA := precedenceAndAssoc(v.Child)
		if p >= cp {
			prec, assoc, hasAssoc = p, a, hasA
			if p == cp && !hasA {
				assoc, hasAssoc = ca, cHasA
			}
			return
		}
		return cp, ca, cHasA
	case *seqRule:
		lp, la, lHasA := precedenceAndAssoc(v.Left)
		rp, ra, rHasA := precedenceAndAssoc(v.Right)
		if lp >= rp {
			return lp, la, lHasA
		}
		return rp, ra, rHasA
	case *choiceRule:
		best, bestAssoc, bestHasA := 0, 0, false
		for _, c := range v.Children {
			p, a, hasA := precedenceAndAssoc(c)
			if p > best {
				best, bestAssoc, bestHasA = p, a, hasA
			}
		}
		return best, bestAssoc, bestHasA
	case *repeatRule:
		return precedenceAndAssoc(v.Child)
	case *stringRule:
		return precedenceAndAssoc(v.Desugar())
	case *patternRule:
		return precedenceAndAssoc(v.Desugar())
	default:
		return 0, AssocNone, false
	}
}

// --- Nullability ------------------------------------------------------

// Nullable reports whether r can match the empty string (spec §4.1).
func Nullable(r Rule) bool {
	switch v := r.(type) {
	case Blank:
		return true
	case Symbol, ISymbol, CharacterSet:
		return false
	case *unreachableRule:
		return false
	case *choiceRule:
		for _, c := range v.Children {
			if Nullable(c) {
				return true
			}
		}
		return false
	case *seqRule:
		return Nullable(v.Left) && Nullable(v.Right)
	case *repeatRule:
		return false
	case *metadataRule:
		return Nullable(v.Child)
	case *stringRule:
		return Nullable(v.Desugar())
	case *patternRule:
		return Nullable(v.Desugar())
	default:
		return false
	}
}
