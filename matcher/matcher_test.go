package matcher

import (
	"testing"

	"github.com/brexlang/brex/ast"
)

func lit(s string) ast.Literal {
	return ast.Literal{Codes: []rune(s), Domain: ast.Unicode}
}

func TestMatcherPlainBody(t *testing.T) {
	re := ast.Regex{
		Domain: ast.Unicode,
		Body:   ast.NewSingle(ast.Entry{Body: lit("hello")}),
	}
	m, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !m.Test([]rune("hello")) {
		t.Errorf("expected whole-string match")
	}
	if m.Test([]rune("hello world")) {
		t.Errorf("unexpected whole-string match on longer input")
	}
}

func TestMatcherContains(t *testing.T) {
	re := ast.Regex{
		Domain: ast.Unicode,
		Body:   ast.NewSingle(ast.Entry{Body: lit("cat")}),
	}
	m, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ok, err := m.Contains([]rune("a cat sat"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Errorf("expected containment match")
	}
	ok, err = m.Contains([]rune("a dog sat"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Errorf("unexpected containment match")
	}
}

func TestMatcherAllOfConjunctionAndNegation(t *testing.T) {
	re := ast.Regex{
		Domain: ast.Unicode,
		Body: ast.NewAllOf(
			ast.Entry{Body: ast.Star{Inner: ast.Dot{}}},
			ast.Entry{Negated: true, Body: lit("bad")},
		),
	}
	m, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !m.Test([]rune("good")) {
		t.Errorf("expected match on input without the negated literal")
	}
	if m.Test([]rune("bad")) {
		t.Errorf("expected rejection of input equal to the negated literal")
	}
}

func TestMatcherInvalidAllAnchorBody(t *testing.T) {
	re := ast.Regex{
		Domain: ast.Unicode,
		Body:   ast.NewSingle(ast.Entry{Body: lit("x"), IsFront: true}),
	}
	if _, err := Compile(re); err == nil {
		t.Errorf("expected InvalidRegexStructure for an all-anchor body")
	}
}

func TestMatcherContainsWithNonEmptyPreAnchor(t *testing.T) {
	pre := ast.NewSingle(ast.Entry{Body: lit("A")})
	re := ast.Regex{
		Domain:    ast.Unicode,
		PreAnchor: &pre,
		Body:      ast.NewSingle(ast.Entry{Body: lit("B")}),
	}
	m, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches := m.MatchContains([]rune("XAB"))
	if len(matches) != 1 || matches[0].Start != 2 || matches[0].End != 3 {
		t.Errorf("MatchContains(%q) = %v, want a single match at [2,3) (the pre-anchor 'A' precedes it at offset 1)", "XAB", matches)
	}

	if got := m.MatchContains([]rune("XYB")); len(got) != 0 {
		t.Errorf("MatchContains(%q) = %v, want no match (pre-anchor 'A' does not precede the body match)", "XYB", got)
	}
}

func TestMatcherAllOfContainsIntersectsBindingAndFiltersByChecking(t *testing.T) {
	re := ast.Regex{
		Domain: ast.Unicode,
		Body: ast.NewAllOf(
			ast.Entry{Body: ast.Plus{Inner: ast.Dot{}}},
			ast.Entry{Negated: true, Body: lit("ab")},
		),
	}
	m, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches := m.MatchContains([]rune("xaby"))
	for _, mm := range matches {
		if string([]rune("xaby")[mm.Start:mm.End]) == "ab" {
			t.Errorf("MatchContains(%q) included the candidate %v spanning \"ab\", which the negated !\"ab\" entry should have filtered out", "xaby", mm)
		}
	}
	if len(matches) == 0 {
		t.Errorf("MatchContains(%q) = empty, want at least one surviving candidate not equal to \"ab\"", "xaby")
	}
}

func TestCompileOptionsDisablingPrefilterPreservesResults(t *testing.T) {
	re := ast.Regex{
		Domain: ast.Unicode,
		Body:   ast.NewSingle(ast.Entry{Body: lit("needle")}),
	}

	withPrefilter, err := Compile(re, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	noPrefilter, err := Compile(re, Options{MinPrefilterLiteralLen: 1, MaxPrefilterLiterals: 64})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, input := range []string{"a needle in a haystack", "nothing here"} {
		want, _ := withPrefilter.Contains([]rune(input))
		got, _ := noPrefilter.Contains([]rune(input))
		if want != got {
			t.Errorf("Contains(%q): prefilter-enabled=%v, prefilter-disabled=%v, want equal", input, want, got)
		}
	}
}

func TestEntryCheckTestContainsFix(t *testing.T) {
	ec, err := Compile(lit("zz"), ast.Unicode, false, false, false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ec.testContains([]rune("abc")) {
		t.Errorf("expected no match when the literal never appears")
	}
	if !ec.testContains([]rune("abzzcd")) {
		t.Errorf("expected a match when the literal appears mid-string")
	}
}
