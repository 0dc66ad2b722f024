package rules

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
)

// Hash returns a canonical structural hash of r: equal rules (per Equal)
// always hash identically, and the hash is computed from a content-only
// representation (no pointers, no map-iteration order), so it is stable
// across process runs and across independently-constructed-but-equal
// trees. Spec §9 calls structural hashing of rules mandatory — it keys the
// interning of item sets in package lr, and thus observable state ids.
func Hash(r Rule) string {
	h, err := structhash.Hash(canon(r), 1)
	if err != nil {
		tracer().Errorf("could not hash rule %v: %v", r, err)
		panic(fmt.Errorf("rules: could not hash rule: %w", err))
	}
	return h
}

// canon converts r into a plain, exported-field/map-only value suitable
// for structhash, flattening Seq chains and sorting Choice children into
// the same canonical order Equal uses, so structurally equal rules always
// canonicalize identically regardless of how they were constructed.
func canon(r Rule) interface{} {
	switch v := r.(type) {
	case Blank:
		return "blank"
	case Symbol:
		return map[string]interface{}{"sym": v.Name}
	case ISymbol:
		return map[string]interface{}{"isym": v.Index}
	case CharacterSet:
		return map[string]interface{}{"charset": v.Key()}
	case *unreachableRule:
		return "unreachable"
	case *choiceRule:
		kids := make([]string, len(v.Children))
		for i, c := range v.Children {
			kids[i] = Hash(c)
		}
		sort.Strings(kids)
		return map[string]interface{}{"choice": kids}
	case *seqRule:
		flat := flattenSeq(v)
		kids := make([]interface{}, len(flat))
		for i, c := range flat {
			kids[i] = canon(c)
		}
		return map[string]interface{}{"seq": kids}
	case *repeatRule:
		return map[string]interface{}{"repeat": canon(v.Child)}
	case *metadataRule:
		return map[string]interface{}{"meta": v.Meta, "child": canon(v.Child)}
	case *stringRule:
		return canon(v.Desugar())
	case *patternRule:
		return canon(v.Desugar())
	default:
		panic(fmt.Sprintf("rules: Hash: unhandled rule variant %T", r))
	}
}
