// Package matcher composes compiled nfa.Machine pairs into the component
// conjunction/anchor/negation semantics of §4.G: a ComponentCheck answers
// whether a whole ast.Component (a single entry or an AllOf conjunction)
// holds against a given input, and Matcher composes a full ast.Regex's
// pre-anchor/body/post-anchor structure on top of that.
package matcher

import (
	"fmt"

	"github.com/brexlang/brex/ast"
	"github.com/brexlang/brex/literal"
	"github.com/brexlang/brex/nfa"
	pfilter "github.com/brexlang/brex/prefilter"
)

// Options tunes the prefilter strategy an EntryCheck builds alongside its
// NFA executors. The zero value is not a valid Options; use DefaultOptions.
type Options struct {
	// MinPrefilterLiteralLen discards any extracted literal shorter than
	// this many bytes: a single-byte literal screen can cost more in false
	// positives than it saves, for some bodies.
	MinPrefilterLiteralLen int

	// MaxPrefilterLiterals bounds how many AnyOf alternatives ExtractAnyOf
	// will expand into a prefilter (literal.Config.MaxLiterals).
	MaxPrefilterLiterals int

	// EnableAhoCorasickPrefilter gates literal-based prefiltering
	// (byte/substring/Aho-Corasick automaton) entirely; false disables it
	// regardless of what the body's AST offers.
	EnableAhoCorasickPrefilter bool

	// EnableDigitPrefilter enables a fallback digit-class prefilter
	// (prefilter.NewDigitPrefilter) for bodies that require an ASCII digit
	// but offer no extractable literal.
	EnableDigitPrefilter bool
}

// DefaultOptions returns the settings matcher.Compile uses when the caller
// doesn't supply its own.
func DefaultOptions() Options {
	return Options{
		MinPrefilterLiteralLen:     1,
		MaxPrefilterLiterals:       64,
		EnableAhoCorasickPrefilter: true,
		EnableDigitPrefilter:       false,
	}
}

func firstOptions(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return DefaultOptions()
}

// EntryCheck is one compiled Entry: its forward and reverse machines, plus
// the flags controlling how its result is combined with its siblings.
type EntryCheck struct {
	Forward *nfa.Executor
	Reverse *nfa.Executor
	Negated bool
	IsFront bool
	IsBack  bool

	// pf is a necessary-condition screen extracted from the entry's body
	// (an AnyOf-of-literals or a literal prefix). nil when the body offers
	// nothing extractable, in which case every contains-class scan falls
	// straight through to the NFA.
	pf pfilter.Prefilter
}

// Compile builds an EntryCheck from a resolved entry body. opts defaults to
// DefaultOptions when omitted.
func Compile(body ast.Node, domain ast.Domain, negated, isFront, isBack bool, opts ...Options) (*EntryCheck, error) {
	fwd, rev, err := nfa.Compile(body, domain)
	if err != nil {
		return nil, err
	}
	return &EntryCheck{
		Forward: nfa.NewExecutor(fwd),
		Reverse: nfa.NewExecutor(rev),
		Negated: negated,
		IsFront: isFront,
		IsBack:  isBack,
		pf:      buildPrefilter(body, firstOptions(opts)),
	}, nil
}

// buildPrefilter extracts a literal.Seq from body (an AnyOf of literals, or
// failing that a literal prefix) and builds the best-fit prefilter.Prefilter
// for it under o, falling back to a digit-class screen when no literal
// could be extracted and the caller opted into one. Returns nil when
// nothing applies.
func buildPrefilter(body ast.Node, o Options) pfilter.Prefilter {
	if !o.EnableAhoCorasickPrefilter {
		return digitFallback(body, o)
	}

	ex := literal.New(literal.Config{MaxLiterals: o.MaxPrefilterLiterals, MaxLiteralLen: 64})
	seq := ex.ExtractAnyOf(body)
	if seq == nil {
		seq = ex.ExtractPrefix(body)
	}
	if seq == nil || !seqMeetsMinLen(seq, o.MinPrefilterLiteralLen) {
		return digitFallback(body, o)
	}
	return pfilter.NewBuilder(seq).Build()
}

// seqMeetsMinLen reports whether every literal in seq is at least min
// bytes long (min <= 0 imposes no floor).
func seqMeetsMinLen(seq *literal.Seq, min int) bool {
	if min <= 0 {
		return true
	}
	for i := 0; i < seq.Len(); i++ {
		if len(seq.Get(i).Bytes) < min {
			return false
		}
	}
	return true
}

func digitFallback(body ast.Node, o Options) pfilter.Prefilter {
	if !o.EnableDigitPrefilter {
		return nil
	}
	if !literal.New(literal.DefaultConfig()).ExtractRequiredDigit(body) {
		return nil
	}
	return pfilter.NewDigitPrefilter()
}

// screenRange reports whether the prefilter finds a candidate anywhere in
// input[spos:epos+1], short-circuiting the NFA scan when it doesn't. A nil
// prefilter (no literal could be extracted) always defers to the NFA.
func (e *EntryCheck) screenRange(input []rune, spos, epos int) bool {
	if e.pf == nil {
		return true
	}
	if spos > epos {
		return true
	}
	b := []byte(string(input[spos : epos+1]))
	return e.pf.Find(b, 0) >= 0
}

// testContains reports whether the entry's body matches starting at some
// offset within input — true iff some starting offset accepts. The
// original scan loop silently fell through when no offset matched instead
// of returning false; here the loop is simply the existence quantifier.
func (e *EntryCheck) testContains(input []rune) bool {
	if !e.screenRange(input, 0, len(input)-1) {
		return false
	}
	for start := 0; start <= len(input); start++ {
		if e.Forward.Test(input[start:]) {
			return true
		}
		if _, ok := e.Forward.MatchForward(input[start:]); ok {
			return true
		}
	}
	return false
}

// ContainsOffsets returns every start offset in input at which the entry's
// body matches some non-empty or empty prefix of the remainder.
func (e *EntryCheck) ContainsOffsets(input []rune) []int {
	if !e.screenRange(input, 0, len(input)-1) {
		return nil
	}
	var offsets []int
	for start := 0; start <= len(input); start++ {
		if _, ok := e.Forward.MatchForward(input[start:]); ok {
			offsets = append(offsets, start)
		}
	}
	return offsets
}

// Match is an inclusive-start, exclusive-end substring match — the Go
// analogue of the C++ original's (start, end) contains-candidate pair.
type Match struct {
	Start int
	End   int
}

// TestRange is the range-parameterized form of Evaluate (§4.G): a
// front-check tests for a match starting exactly at spos, a back-check for
// one ending exactly at epos, and a plain entry the full consumption of
// input[spos:epos+1]. Anchors are validated with this method against the
// span adjoining a candidate body match rather than the whole input.
func (e *EntryCheck) TestRange(input []rune, spos, epos int) bool {
	var accepted bool
	switch {
	case e.IsFront:
		accepted = e.Forward.MatchTestForwardRange(input, spos, epos)
	case e.IsBack:
		accepted = e.Reverse.MatchTestReverseRange(input, spos, epos)
	default:
		accepted = e.Forward.TestRange(input, spos, epos)
	}
	if e.Negated {
		return !accepted
	}
	return accepted
}

// TestBackRange reports whether this entry accepts as a suffix of
// input[spos:epos+1] — a match ending exactly at epos, starting anywhere
// at or after spos. Used to evaluate a pre-anchor entry against the span
// immediately preceding a candidate body match.
func (e *EntryCheck) TestBackRange(input []rune, spos, epos int) bool {
	accepted := e.Reverse.MatchTestReverseRange(input, spos, epos)
	if e.Negated {
		return !accepted
	}
	return accepted
}

// TestFrontRange reports whether this entry accepts as a prefix of
// input[spos:epos+1] — a match starting exactly at spos, ending anywhere
// at or before epos. Used to evaluate a post-anchor entry against the span
// immediately following a candidate body match.
func (e *EntryCheck) TestFrontRange(input []rune, spos, epos int) bool {
	accepted := e.Forward.MatchTestForwardRange(input, spos, epos)
	if e.Negated {
		return !accepted
	}
	return accepted
}

// ContainsOffsetsRange returns every (start, end) match this entry
// contributes as a binding candidate within [spos, epos]: for each
// starting offset in range, every end offset a match from there reaches.
func (e *EntryCheck) ContainsOffsetsRange(input []rune, spos, epos int) []Match {
	if !e.screenRange(input, spos, epos) {
		return nil
	}
	var out []Match
	for start := spos; start <= epos; start++ {
		for _, end := range e.Forward.MatchForwardAllRange(input, start, epos) {
			out = append(out, Match{Start: start, End: end})
		}
	}
	return out
}

// CanTest reports whether this entry can be checked with a whole-string
// Test (a plain entry, evaluated against the entire candidate range).
func (e *EntryCheck) CanTest() bool { return !e.IsFront && !e.IsBack }

// CanContains reports whether this entry supports a "somewhere in range"
// containment check. Front/back checks are anchored by construction and
// do not have a meaningful "contains" form.
func (e *EntryCheck) CanContains() bool { return !e.IsFront && !e.IsBack }

// check evaluates this single entry's raw (pre-negation) condition against
// input, per its flags: a front-check consults the forward machine's
// match-test-forward mode, a back-check the reverse machine's
// match-test-reverse mode, and a plain entry the whole-range Test mode.
func (e *EntryCheck) check(input []rune) bool {
	switch {
	case e.IsFront:
		return e.Forward.MatchTestForward(input)
	case e.IsBack:
		return e.Reverse.MatchTestReverse(input)
	default:
		return e.Forward.Test(input)
	}
}

// Evaluate applies negation on top of check.
func (e *EntryCheck) Evaluate(input []rune) bool {
	result := e.check(input)
	if e.Negated {
		return !result
	}
	return result
}

// Contains applies negation on top of testContains, for entries that
// support it.
func (e *EntryCheck) Contains(input []rune) (bool, error) {
	if !e.CanContains() {
		return false, fmt.Errorf("entry is anchored and does not support a contains query")
	}
	result := e.testContains(input)
	if e.Negated {
		return !result, nil
	}
	return result, nil
}

// ComponentCheck evaluates a whole ast.Component: a single entry, or the
// conjunction (AllOf) of several, all checked against the same input.
type ComponentCheck struct {
	entries []*EntryCheck
}

// CompileComponent compiles every entry of c against the same domain. opts
// defaults to DefaultOptions when omitted.
func CompileComponent(c ast.Component, domain ast.Domain, opts ...Options) (*ComponentCheck, error) {
	o := firstOptions(opts)
	entries := c.Entries()
	checks := make([]*EntryCheck, len(entries))
	for i, e := range entries {
		ec, err := Compile(e.Body, domain, e.Negated, e.IsFront, e.IsBack, o)
		if err != nil {
			return nil, err
		}
		checks[i] = ec
	}
	return &ComponentCheck{entries: checks}, nil
}

// Entries returns the component's compiled entries, for callers (like the
// root brex package) that need direct access to an entry's executors —
// e.g. to enumerate every contains-offset rather than just a boolean.
func (c *ComponentCheck) Entries() []*EntryCheck { return c.entries }

// Evaluate reports whether every entry in the component holds (a
// conjunction — an AllOf with one entry degenerates to that entry's own
// result).
func (c *ComponentCheck) Evaluate(input []rune) bool {
	for _, e := range c.entries {
		if !e.Evaluate(input) {
			return false
		}
	}
	return true
}

// HasBindingEntry reports whether the component contains at least one
// entry whose raw check can contribute a candidate binding position — a
// non-negated, non-anchored entry.
func (c *ComponentCheck) HasBindingEntry() bool {
	for _, e := range c.entries {
		if !e.Negated && e.CanContains() {
			return true
		}
	}
	return false
}

// Contains reports whether every entry holds against input on its own:
// each non-anchored entry (negated or not) through its own Contains, and
// each front/back-anchored entry through Evaluate over the whole input.
// The entries are checked independently; their matches are not required
// to share a start offset or span (ContainsRange intersects candidates).
// For a single-entry component this is exactly that entry's Contains.
func (c *ComponentCheck) Contains(input []rune) (bool, error) {
	if len(c.entries) == 1 {
		return c.entries[0].Contains(input)
	}
	for _, e := range c.entries {
		var ok bool
		var err error
		if e.CanContains() {
			ok, err = e.Contains(input)
		} else {
			ok = e.Evaluate(input)
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ContainsRange returns every (start, end) match the component contributes
// within [spos, epos] (§4.G steps 2-3). Binding entries (non-negated,
// non-anchored) each generate a set of candidate matches; with more than
// one binding entry those sets are intersected, not unioned, since the
// component is a conjunction. Every checking entry (negated and/or
// front/back-anchored) then re-validates each surviving candidate against
// its own exact span, filtering out any candidate a checking entry rejects.
func (c *ComponentCheck) ContainsRange(input []rune, spos, epos int) []Match {
	if len(c.entries) == 1 {
		e := c.entries[0]
		if !e.CanContains() || e.Negated {
			return nil
		}
		return e.ContainsOffsetsRange(input, spos, epos)
	}

	var binding, checking []*EntryCheck
	for _, e := range c.entries {
		if !e.Negated && e.CanContains() {
			binding = append(binding, e)
		} else {
			checking = append(checking, e)
		}
	}
	if len(binding) == 0 {
		return nil
	}

	candidates := binding[0].ContainsOffsetsRange(input, spos, epos)
	for _, e := range binding[1:] {
		if len(candidates) == 0 {
			break
		}
		candidates = intersectMatches(candidates, e.ContainsOffsetsRange(input, spos, epos))
	}

	var out []Match
	for _, cand := range candidates {
		ok := true
		for _, e := range checking {
			if !e.TestRange(input, cand.Start, cand.End-1) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, cand)
		}
	}
	return out
}

// intersectMatches returns the (start, end) pairs common to both a and b.
func intersectMatches(a, b []Match) []Match {
	set := make(map[Match]bool, len(b))
	for _, m := range b {
		set[m] = true
	}
	var out []Match
	for _, m := range a {
		if set[m] {
			out = append(out, m)
		}
	}
	return out
}

// TestBackRange reports whether every entry in the component accepts as a
// suffix of input[spos:epos+1] — the conjunction form of TestBackRange used
// to evaluate a (possibly multi-entry) pre-anchor component.
func (c *ComponentCheck) TestBackRange(input []rune, spos, epos int) bool {
	for _, e := range c.entries {
		if !e.TestBackRange(input, spos, epos) {
			return false
		}
	}
	return true
}

// TestFrontRange reports whether every entry in the component accepts as a
// prefix of input[spos:epos+1] — the conjunction form of TestFrontRange used
// to evaluate a (possibly multi-entry) post-anchor component.
func (c *ComponentCheck) TestFrontRange(input []rune, spos, epos int) bool {
	for _, e := range c.entries {
		if !e.TestFrontRange(input, spos, epos) {
			return false
		}
	}
	return true
}
