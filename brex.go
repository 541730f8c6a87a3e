// Package brex implements the BREX expression language: a parser, resolver,
// compiler, and matcher for a small regex-like surface syntax whose regexes
// are plain structural values (no engine flags baked into the text) with
// explicit front/back anchoring, named and environment references, and a
// conjunction ("all-of") operator alongside the usual alternation.
//
// Basic usage:
//
//	re, err := brex.Compile(`/<"hello">/`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.TestString("hello") {
//	    println("matched!")
//	}
package brex

import (
	"fmt"

	"github.com/brexlang/brex/ast"
	"github.com/brexlang/brex/internal/codec"
	"github.com/brexlang/brex/matcher"
	"github.com/brexlang/brex/parser"
	"github.com/brexlang/brex/resolver"
)

// Regex is a compiled BREX expression, safe for concurrent use: all mutable
// simulation state lives on the stack of each query call, not on the
// Regex value itself.
type Regex struct {
	source string
	ast    ast.Regex
	m      *matcher.Matcher
}

// Compile parses, resolves, and compiles src using DefaultConfig.
func Compile(src string) (*Regex, error) {
	return CompileWithConfig(src, DefaultConfig())
}

// MustCompile is like Compile but panics on error, for patterns known to be
// valid at init time.
func MustCompile(src string) *Regex {
	re, err := Compile(src)
	if err != nil {
		panic("brex: Compile(" + src + "): " + err.Error())
	}
	return re
}

// CompileWithConfig parses, resolves, and compiles src against cfg.
func CompileWithConfig(src string, cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parsed, errs := parser.Parse([]byte(src), parser.Options{
		AllowEnvRefs:      cfg.AllowEnvRefs,
		MaxRecursionDepth: cfg.MaxRecursionDepth,
	})
	if hasErrorSeverity(errs) {
		return nil, joinErrors(errs)
	}

	resolved, rerrs := resolver.Resolve(parsed, resolver.Dictionaries{
		Named:    cfg.namedRegexes(),
		Env:      cfg.envLiterals(parsed.Domain),
		MaxDepth: cfg.MaxRecursionDepth,
	})
	if len(rerrs) > 0 {
		return nil, joinErrors(rerrs)
	}

	m, err := matcher.Compile(resolved, cfg.matcherOptions())
	if err != nil {
		return nil, err
	}

	return &Regex{source: src, ast: resolved, m: m}, nil
}

func hasErrorSeverity(errs []error) bool {
	for _, e := range errs {
		if d, ok := e.(*parser.Diagnostic); ok && d.Severity == parser.SeverityWarning {
			continue
		}
		return true
	}
	return false
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return fmt.Errorf("%d errors, first: %w", len(errs), errs[0])
}

// String returns the original source text the Regex was compiled from.
func (r *Regex) String() string { return r.source }

// Capabilities reports the CPU features detected on this machine, which a
// caller can use to decide how aggressively to size its own prefilter
// budget; it has no effect on Regex's own query results.
func (r *Regex) Capabilities() matcher.Capabilities { return r.m.Capabilities() }

// ToSurfaceForm renders the resolved, canonicalized AST back to BREX
// surface syntax — useful for diffing a pattern against its own
// normalization (e.g. after named-reference inlining).
func (r *Regex) ToSurfaceForm() string { return r.ast.ToSurfaceForm() }

// Test reports whether s, taken as a whole, satisfies the regex.
func (r *Regex) Test(s []rune) bool { return r.m.Test(s) }

// TestString is Test for a string input.
func (r *Regex) TestString(s string) bool { return r.Test([]rune(s)) }

// MatchFront reports whether s begins with a match of the regex's body.
func (r *Regex) MatchFront(s string) bool { return r.m.MatchFront([]rune(s)) }

// MatchBack reports whether s ends with a match of the regex's body.
func (r *Regex) MatchBack(s string) bool { return r.m.MatchBack([]rune(s)) }

// Contains reports whether s contains a substring matching the regex's
// body, honoring any anchor components.
func (r *Regex) Contains(s string) (bool, error) { return r.m.Contains([]rune(s)) }

// MatchContainsFirst returns the earliest offset (in code points) at which
// the body matches some substring of s, honoring anchors exactly as
// Contains does.
func (r *Regex) MatchContainsFirst(s string) (int, bool) {
	offsets := r.containsOffsets(s)
	if len(offsets) == 0 {
		return 0, false
	}
	return offsets[0], true
}

// MatchContainsLast returns the latest such offset.
func (r *Regex) MatchContainsLast(s string) (int, bool) {
	offsets := r.containsOffsets(s)
	if len(offsets) == 0 {
		return 0, false
	}
	return offsets[len(offsets)-1], true
}

// FindAllContains returns every offset at which the body matches some
// substring of s.
func (r *Regex) FindAllContains(s string) []int {
	return r.containsOffsets(s)
}

// containsOffsets returns the start offset of every (start, end) match
// MatchContains finds — anchors composed relative to each candidate match
// per §4.G, not evaluated against the whole input regardless of position.
func (r *Regex) containsOffsets(s string) []int {
	matches := r.m.MatchContains([]rune(s))
	if len(matches) == 0 {
		return nil
	}
	offsets := make([]int, len(matches))
	for i, mm := range matches {
		offsets[i] = mm.Start
	}
	return dedupSorted(offsets)
}

// UnescapeLiteral decodes a standalone string literal body (no surrounding
// quote characters) under domain's escape vocabulary and printable-policy
// rules, independent of parsing a full regex — useful for validating a
// named or environment-sourced literal before handing it to Config. When
// allowNewline is true a bare newline is permitted and the multi-line
// alignment rule (a newline followed by whitespace then '\\' is collapsed)
// is applied to the result.
func UnescapeLiteral(src string, domain ast.Domain, allowNewline bool) (string, error) {
	cdomain := codec.Unicode
	if domain == ast.Char {
		cdomain = codec.Char
	}
	codes, err := codec.UnescapeLiteral([]byte(src), cdomain, allowNewline)
	if err != nil {
		return "", err
	}
	return string(codes), nil
}

func dedupSorted(offsets []int) []int {
	if len(offsets) < 2 {
		return offsets
	}
	for i := 1; i < len(offsets); i++ {
		for j := i; j > 0 && offsets[j-1] > offsets[j]; j-- {
			offsets[j-1], offsets[j] = offsets[j], offsets[j-1]
		}
	}
	out := offsets[:1]
	for _, v := range offsets[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
