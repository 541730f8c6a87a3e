// Package prefilter provides fast candidate filtering for BREX's matcher
// package: scanning a haystack for a cheap necessary condition (a literal
// substring, one of several literal alternatives, a leading digit) before
// ever invoking the NFA executor (§12).
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/brexlang/brex/literal"
)

// Prefilter quickly finds candidate match positions before the full NFA
// runs. A candidate is not a guaranteed match unless IsComplete is true.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if none exists in the remainder of haystack.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a Find hit, by itself, proves a match —
	// true only when the prefilter's literal set is exactly the pattern's
	// full accepted language (e.g. a plain AnyOf of literals).
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true and the
	// prefilter searches for a single literal, 0 otherwise.
	LiteralLen() int

	// HeapBytes reports the prefilter's heap footprint, for profiling.
	HeapBytes() int
}

// Builder selects and constructs the best-fit Prefilter for a literal.Seq
// extracted from an AST node.
type Builder struct {
	seq *literal.Seq
}

// NewBuilder returns a Builder over seq (as produced by literal.Extractor).
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq}
}

// Build constructs the best available prefilter, or nil if seq is empty or
// the Aho-Corasick automaton for several literals fails to build.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.seq)
}

func selectPrefilter(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newByteFilter(lit.Bytes[0], lit.Complete)
		}
		return newSubstringFilter(lit.Bytes, lit.Complete)
	}

	builder := ahocorasick.NewBuilder()
	allComplete := true
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		allComplete = allComplete && lit.Complete
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return newAutomatonFilter(auto, allComplete)
}

// byteFilter finds a single needle byte via bytes.IndexByte.
type byteFilter struct {
	needle   byte
	complete bool
}

func newByteFilter(needle byte, complete bool) Prefilter {
	return &byteFilter{needle: needle, complete: complete}
}

func (p *byteFilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *byteFilter) IsComplete() bool { return p.complete }
func (p *byteFilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}
func (p *byteFilter) HeapBytes() int { return 0 }

// substringFilter finds a single multi-byte needle via bytes.Index.
type substringFilter struct {
	needle   []byte
	complete bool
}

func newSubstringFilter(needle []byte, complete bool) Prefilter {
	cp := make([]byte, len(needle))
	copy(cp, needle)
	return &substringFilter{needle: cp, complete: complete}
}

func (p *substringFilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *substringFilter) IsComplete() bool { return p.complete }
func (p *substringFilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}
func (p *substringFilter) HeapBytes() int { return len(p.needle) }

// automatonFilter wraps an Aho-Corasick automaton as a Prefilter, for the
// AnyOf-of-literal case with more than one alternative.
type automatonFilter struct {
	auto     *ahocorasick.Automaton
	complete bool
}

func newAutomatonFilter(auto *ahocorasick.Automaton, complete bool) Prefilter {
	return &automatonFilter{auto: auto, complete: complete}
}

func (p *automatonFilter) Find(haystack []byte, start int) int {
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *automatonFilter) IsComplete() bool { return p.complete }
func (p *automatonFilter) LiteralLen() int  { return 0 }
func (p *automatonFilter) HeapBytes() int   { return 0 }

// digitPrefilter finds the first ASCII digit byte. It never proves a match
// by itself (IsComplete is always false) — it screens for a necessary
// condition some patterns impose (a required digit class) when no literal
// could be extracted at all.
type digitPrefilter struct{}

func (digitPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	for i := start; i < len(haystack); i++ {
		if haystack[i] >= '0' && haystack[i] <= '9' {
			return i
		}
	}
	return -1
}

func (digitPrefilter) IsComplete() bool { return false }
func (digitPrefilter) LiteralLen() int  { return 0 }
func (digitPrefilter) HeapBytes() int   { return 0 }
