package matcher

import (
	"fmt"

	"github.com/brexlang/brex/ast"
)

// Diagnostic kinds matching the Execute class of the closed error
// taxonomy: a regex that can't service the query mode it was asked for.
type DiagnosticKind uint8

const (
	InvalidRegexStructure DiagnosticKind = iota
	NotContainsable
	NotMatchable
)

func (k DiagnosticKind) String() string {
	switch k {
	case InvalidRegexStructure:
		return "InvalidRegexStructure"
	case NotContainsable:
		return "NotContainsable"
	case NotMatchable:
		return "NotMatchable"
	default:
		return "UnknownExecuteError"
	}
}

// Error reports an Execute-class failure.
type Error struct {
	Kind    DiagnosticKind
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// Matcher composes a fully-compiled ast.Regex: an optional pre-anchor
// component, the mandatory body, and an optional post-anchor component,
// each compiled independently (§4.G).
type Matcher struct {
	Domain     ast.Domain
	PreAnchor  *ComponentCheck
	Body       *ComponentCheck
	PostAnchor *ComponentCheck

	caps Capabilities
}

// Compile builds a Matcher from a fully resolved ast.Regex (named/env refs
// already inlined by the resolver package). opts defaults to DefaultOptions
// when omitted.
func Compile(re ast.Regex, opts ...Options) (*Matcher, error) {
	o := firstOptions(opts)
	m := &Matcher{Domain: re.Domain, caps: DetectCapabilities()}

	if re.PreAnchor != nil {
		if !re.PreAnchor.ValidPreAnchor() {
			return nil, &Error{Kind: InvalidRegexStructure, Message: "pre-anchor component contains a back-check entry"}
		}
		c, err := CompileComponent(*re.PreAnchor, re.Domain, o)
		if err != nil {
			return nil, err
		}
		m.PreAnchor = c
	}

	if !re.Body.HasPlainBody() {
		return nil, &Error{Kind: InvalidRegexStructure, Message: "body component has no plain (non-anchor) entry"}
	}
	body, err := CompileComponent(re.Body, re.Domain, o)
	if err != nil {
		return nil, err
	}
	m.Body = body

	if re.PostAnchor != nil {
		if !re.PostAnchor.ValidPostAnchor() {
			return nil, &Error{Kind: InvalidRegexStructure, Message: "post-anchor component contains a front-check entry"}
		}
		c, err := CompileComponent(*re.PostAnchor, re.Domain, o)
		if err != nil {
			return nil, err
		}
		m.PostAnchor = c
	}

	return m, nil
}

// Capabilities reports the CPU features detected when this Matcher was
// compiled, informational only — query behavior never depends on them.
func (m *Matcher) Capabilities() Capabilities { return m.caps }

// Test reports whether input, taken as a whole, satisfies the regex: the
// body must match the entire input, so the pre-anchor is checked as a
// back-check over the empty region before it and the post-anchor as a
// front-check over the empty region after it.
func (m *Matcher) Test(input []rune) bool {
	if m.PreAnchor != nil && !m.PreAnchor.TestBackRange(input, 0, -1) {
		return false
	}
	if m.PostAnchor != nil && !m.PostAnchor.TestFrontRange(input, len(input), len(input)-1) {
		return false
	}
	return m.Body.Evaluate(input)
}

// Contains reports whether input contains a substring satisfying the body
// component at some position where any pre/post anchors also hold.
// Returns a NotContainsable error if the body cannot service a containment
// query (e.g. it has no binding entry).
func (m *Matcher) Contains(input []rune) (bool, error) {
	if !m.Body.HasBindingEntry() {
		return false, &Error{Kind: NotContainsable, Message: "body has no entry capable of a containment query"}
	}
	return len(m.MatchContains(input)) > 0, nil
}

// MatchContains returns every (start, end) match of the body within input
// for which the anchors also hold, per §4.G: the pre-anchor is checked as a
// back-check over everything strictly before the match ([0, start-1]), the
// post-anchor as a front-check over everything strictly after it
// ([end, len(input)-1]) — not, as a whole-input Evaluate would, over input
// in its entirety regardless of where the body actually matched.
func (m *Matcher) MatchContains(input []rune) []Match {
	if !m.Body.HasBindingEntry() {
		return nil
	}
	candidates := m.Body.ContainsRange(input, 0, len(input)-1)
	if len(candidates) == 0 {
		return nil
	}
	var out []Match
	for _, cand := range candidates {
		if m.PreAnchor != nil && !m.PreAnchor.TestBackRange(input, 0, cand.Start-1) {
			continue
		}
		if m.PostAnchor != nil && !m.PostAnchor.TestFrontRange(input, cand.End, len(input)-1) {
			continue
		}
		out = append(out, cand)
	}
	return out
}

// MatchFront reports whether input begins with a match of the body (the
// front-check query mode). A front-anchored match necessarily starts at
// offset 0, leaving no room before it, so a pre-anchor with non-empty
// required content can never hold here; the post-anchor is checked against
// everything after the matched end.
func (m *Matcher) MatchFront(input []rune) bool {
	if m.PreAnchor != nil && !m.PreAnchor.TestBackRange(input, 0, -1) {
		return false
	}
	for _, e := range m.Body.entries {
		if !e.CanTest() {
			continue
		}
		end, ok := e.Forward.MatchForwardRange(input, 0, len(input)-1)
		if !ok {
			continue
		}
		if m.PostAnchor != nil && !m.PostAnchor.TestFrontRange(input, end, len(input)-1) {
			continue
		}
		return true
	}
	return false
}

// MatchBack reports whether input ends with a match of the body (the
// back-check query mode). A back-anchored match necessarily ends at the
// last offset, leaving no room after it for a non-empty post-anchor; the
// pre-anchor is checked against everything before the matched start.
func (m *Matcher) MatchBack(input []rune) bool {
	if m.PostAnchor != nil && !m.PostAnchor.TestFrontRange(input, len(input), len(input)-1) {
		return false
	}
	for _, e := range m.Body.entries {
		if !e.CanTest() {
			continue
		}
		start, ok := e.Reverse.MatchReverseRange(input, 0, len(input)-1)
		if !ok {
			continue
		}
		if m.PreAnchor != nil && !m.PreAnchor.TestBackRange(input, 0, start-1) {
			continue
		}
		return true
	}
	return false
}
