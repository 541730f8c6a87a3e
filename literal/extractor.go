// Package literal extracts literal byte sequences from a BREX AST for
// prefilter optimization (§12): patterns that are entirely an AnyOf of
// literals, or that begin with one, can be screened with a fast multi-
// pattern search before the NFA ever runs.
package literal

import (
	"github.com/brexlang/brex/ast"
	"github.com/brexlang/brex/internal/codec"
)

// Config bounds how much extraction work is attempted before giving up.
type Config struct {
	// MaxLiterals limits how many alternatives ExtractAnyOf will expand.
	// An AnyOf with more alternatives than this yields no literals at all
	// (the caller falls back to running the NFA directly).
	MaxLiterals int

	// MaxLiteralLen limits each extracted literal's length in code points.
	MaxLiteralLen int
}

// DefaultConfig returns the extraction limits used by the matcher package.
func DefaultConfig() Config {
	return Config{MaxLiterals: 64, MaxLiteralLen: 64}
}

// Extractor pulls literal sequences out of an AST under a Config's limits.
type Extractor struct {
	cfg Config
}

// New returns an Extractor bounded by cfg.
func New(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractAnyOf returns a complete Seq of literals when n is an AnyOf whose
// every alternative is exactly a Literal (or a Sequence of nothing but
// Literals), and nil otherwise. The returned Seq's literals are all marked
// Complete, since matching any one of them is exactly equivalent to n.
func (e *Extractor) ExtractAnyOf(n ast.Node) *Seq {
	any, ok := n.(ast.AnyOf)
	if !ok || len(any.Alternatives) == 0 || len(any.Alternatives) > e.cfg.MaxLiterals {
		return nil
	}
	lits := make([]Literal, 0, len(any.Alternatives))
	for _, alt := range any.Alternatives {
		codes, ok := flattenLiteralCodes(alt)
		if !ok || len(codes) == 0 || len(codes) > e.cfg.MaxLiteralLen {
			return nil
		}
		lits = append(lits, NewLiteral(encodeCodes(codes), true))
	}
	return NewSeq(lits...)
}

// ExtractPrefix returns the literal prefix n is guaranteed to begin with,
// if any — e.g. a Sequence whose first parts are Literals. The returned
// literal is marked incomplete (Complete: false), since matching it does
// not by itself guarantee n matches.
func (e *Extractor) ExtractPrefix(n ast.Node) *Seq {
	var codes []rune
	switch v := n.(type) {
	case ast.Literal:
		codes = v.Codes
	case ast.Sequence:
		for _, part := range v.Parts {
			lit, ok := part.(ast.Literal)
			if !ok {
				break
			}
			codes = append(codes, lit.Codes...)
			if len(codes) >= e.cfg.MaxLiteralLen {
				break
			}
		}
	}
	if len(codes) == 0 {
		return nil
	}
	if len(codes) > e.cfg.MaxLiteralLen {
		codes = codes[:e.cfg.MaxLiteralLen]
	}
	return NewSeq(NewLiteral(encodeCodes(codes), false))
}

// isDigitRange reports whether cr matches only the ASCII digits 0-9.
func isDigitRange(cr ast.CharRange) bool {
	if cr.Complement || len(cr.Ranges) == 0 {
		return false
	}
	for _, r := range cr.Ranges {
		if r.Low < '0' || r.High > '9' {
			return false
		}
	}
	return true
}

// ExtractRequiredDigit reports whether n guarantees at least one ASCII
// digit appears somewhere in any string it matches: a bare digit CharRange,
// a Plus of one, or a Sequence whose first non-literal part is one. Unlike
// ExtractAnyOf/ExtractPrefix this yields no literal bytes to search for —
// only a cheap byte-class existence check (prefilter.NewDigitPrefilter).
func (e *Extractor) ExtractRequiredDigit(n ast.Node) bool {
	switch v := n.(type) {
	case ast.CharRange:
		return isDigitRange(v)
	case ast.Plus:
		return e.ExtractRequiredDigit(v.Inner)
	case ast.Sequence:
		for _, part := range v.Parts {
			if e.ExtractRequiredDigit(part) {
				return true
			}
			if _, ok := part.(ast.Literal); !ok {
				break
			}
		}
		return false
	default:
		return false
	}
}

// flattenLiteralCodes reports the full code point sequence n denotes when n
// is exactly a Literal or a Sequence of Literals, and false otherwise (a
// Star, CharRange, Dot, etc. anywhere in the tree disqualifies it).
func flattenLiteralCodes(n ast.Node) ([]rune, bool) {
	switch v := n.(type) {
	case ast.Literal:
		return v.Codes, true
	case ast.Sequence:
		var out []rune
		for _, part := range v.Parts {
			codes, ok := flattenLiteralCodes(part)
			if !ok {
				return nil, false
			}
			out = append(out, codes...)
		}
		return out, true
	default:
		return nil, false
	}
}

// encodeCodes renders code points as UTF-8 bytes for the byte-oriented
// prefilter/Aho-Corasick layer beneath it.
func encodeCodes(codes []rune) []byte {
	var buf []byte
	for _, r := range codes {
		buf = codec.EncodeRune(buf, r)
	}
	return buf
}
