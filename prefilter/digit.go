// Package prefilter provides fast candidate filtering for BREX AST
// patterns that begin with a bounded literal set or an ASCII digit class,
// screening candidate start offsets before the NFA runs (§12).
package prefilter

// DigitPrefilter implements Prefilter for bodies whose every match contains
// an ASCII digit ('0'-'9') — the fallback when literal extraction finds
// nothing (see literal.Extractor.ExtractRequiredDigit).
type DigitPrefilter struct{}

// NewDigitPrefilter returns a prefilter for patterns whose matches must
// contain a digit.
func NewDigitPrefilter() *DigitPrefilter {
	return &DigitPrefilter{}
}

// Find returns the index of the first ASCII digit at or after start, or -1.
func (p *DigitPrefilter) Find(haystack []byte, start int) int {
	for i := start; i < len(haystack); i++ {
		if haystack[i] >= '0' && haystack[i] <= '9' {
			return i
		}
	}
	return -1
}

// IsComplete is always false: a digit at a position is only a candidate,
// never proof the full body matches there.
func (p *DigitPrefilter) IsComplete() bool { return false }

// LiteralLen is 0: DigitPrefilter has no fixed match length.
func (p *DigitPrefilter) LiteralLen() int { return 0 }

// HeapBytes is 0: DigitPrefilter carries no heap-allocated state.
func (p *DigitPrefilter) HeapBytes() int { return 0 }
