package lr

import (
	"fmt"

	"github.com/lrforge/tablegen/rules"
)

// ParseItem represents the position after having consumed
// ConsumedCount symbols while recognizing LHS, with Rest being the
// remainder of the right-hand side and Lookahead the expected follow
// token (spec §3).
type ParseItem struct {
	LHS           rules.ISymbol
	Rest          rules.Rule
	ConsumedCount int
	Lookahead     rules.ISymbol
}

// NewParseItem builds a ParseItem.
func NewParseItem(lhs rules.ISymbol, rest rules.Rule, consumed int, la rules.ISymbol) ParseItem {
	return ParseItem{LHS: lhs, Rest: rest, ConsumedCount: consumed, Lookahead: la}
}

// IsDone reports whether the item has consumed the entire right-hand
// side: Rest is Blank, or Rest is a bare repetition that has already
// met its one-or-more minimum, possibly still wrapped in the rule's
// Metadata (see rules.IsDone).
func (it ParseItem) IsDone() bool { return rules.IsDone(it.Rest) }

// Precedence is the maximum PRECEDENCE found in Rest's metadata, 0 if
// absent.
func (it ParseItem) Precedence() int { return rules.MaxPrecedence(it.Rest) }

// Key uniquely identifies the item's content for use as a Set member
// (lr/iteratable.Keyed); two items over structurally-equal rules produce
// the same key regardless of how those rules were built.
func (it ParseItem) Key() string {
	return fmt.Sprintf("P|%d|%d|%d|%s", it.LHS.Index, it.Lookahead.Index, it.ConsumedCount, rules.Hash(it.Rest))
}

func (it ParseItem) String() string {
	if it.IsDone() {
		return fmt.Sprintf("[%v -> (.) , %v]", it.LHS, it.Lookahead)
	}
	return fmt.Sprintf("[%v -> %d.%v , %v]", it.LHS, it.ConsumedCount, it.Rest, it.Lookahead)
}

// LexItem represents the position after having consumed part of a
// terminal's lexical rule: LHS is the terminal symbol this item is
// matching, Rest is the remainder of its CharacterSet-level rule body.
type LexItem struct {
	LHS  rules.ISymbol
	Rest rules.Rule
}

// NewLexItem builds a LexItem.
func NewLexItem(lhs rules.ISymbol, rest rules.Rule) LexItem {
	return LexItem{LHS: lhs, Rest: rest}
}

// IsDone reports whether the item has consumed the entire lexical rule
// (see rules.IsDone).
func (it LexItem) IsDone() bool { return rules.IsDone(it.Rest) }

// IsTokenStart reports whether Rest is still positioned at (or before)
// the START_TOKEN marker inserted by afterSeparators — i.e. the token
// body proper has not yet begun. The marker can end up nested under a
// Seq rather than at Rest's outermost node (e.g. while leading
// separators are still being consumed), so this checks reachability
// through any nullable/satisfied-Repeat prefix rather than requiring
// Rest itself to be the bare marker.
func (it LexItem) IsTokenStart() bool {
	return rules.HasPendingStartToken(it.Rest)
}

// Precedence is the maximum PRECEDENCE found in Rest's metadata, 0 if
// absent; used by the lex conflict manager to arbitrate accept/accept
// ambiguities.
func (it LexItem) Precedence() int { return rules.MaxPrecedence(it.Rest) }

// Key uniquely identifies the item's content for use as a Set member.
func (it LexItem) Key() string {
	return fmt.Sprintf("L|%d|%s", it.LHS.Index, rules.Hash(it.Rest))
}

func (it LexItem) String() string {
	return fmt.Sprintf("[%v -> %v]", it.LHS, it.Rest)
}
