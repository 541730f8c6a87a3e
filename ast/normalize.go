package ast

import "sort"

// NewRangeRepeat builds a RangeRepeat node, collapsing the well-known
// shorthands per the §3 invariants: {0,} -> Star, {1,} -> Plus, {0,1} ->
// Optional. Callers that need to distinguish a redundant {1,1} from a bare
// literal should check for that case themselves before calling this.
func NewRangeRepeat(inner Node, low, high uint16) Node {
	switch {
	case low == 0 && high == UnboundedHigh:
		return Star{Inner: inner}
	case low == 1 && high == UnboundedHigh:
		return Plus{Inner: inner}
	case low == 0 && high == 1:
		return Optional{Inner: inner}
	default:
		return RangeRepeat{Inner: inner, Low: low, High: high}
	}
}

// NewAnyOfNode builds an AnyOf node from >= 2 alternatives, collapsing a
// single-alternative slice into that lone alternative per the §3 invariant
// "AnyOf has >= 2 alternatives".
func NewAnyOfNode(alts []Node) Node {
	if len(alts) == 1 {
		return alts[0]
	}
	return AnyOf{Alternatives: alts}
}

// SortRanges returns a copy of ranges in canonical ascending order by Low,
// used by ToSurfaceForm to render character ranges deterministically.
func SortRanges(ranges []CodePointRange) []CodePointRange {
	out := make([]CodePointRange, len(ranges))
	copy(out, ranges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Low != out[j].Low {
			return out[i].Low < out[j].Low
		}
		return out[i].High < out[j].High
	})
	return out
}
