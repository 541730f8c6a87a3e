package nfa

import (
	"testing"

	"github.com/brexlang/brex/ast"
)

func lit(s string, domain ast.Domain) ast.Literal {
	return ast.Literal{Codes: []rune(s), Domain: domain}
}

func TestCompileLiteralForwardReverse(t *testing.T) {
	n := lit("abc", ast.Unicode)
	fwd, rev, err := Compile(n, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !NewExecutor(fwd).Test([]rune("abc")) {
		t.Errorf("forward machine should accept %q", "abc")
	}
	if NewExecutor(fwd).Test([]rune("abd")) {
		t.Errorf("forward machine should reject %q", "abd")
	}
	if !NewExecutor(rev).Test([]rune("cba")) {
		t.Errorf("reverse machine should accept reversed %q", "cba")
	}
}

func TestCompileSequence(t *testing.T) {
	n := ast.Sequence{Parts: []ast.Node{lit("foo", ast.Unicode), lit("bar", ast.Unicode)}}
	fwd, _, err := Compile(n, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !NewExecutor(fwd).Test([]rune("foobar")) {
		t.Errorf("expected sequence match")
	}
	if NewExecutor(fwd).Test([]rune("barfoo")) {
		t.Errorf("unexpected sequence match")
	}
}

func TestCompileStarPlusOptional(t *testing.T) {
	star := ast.Star{Inner: lit("a", ast.Unicode)}
	fwd, _, err := Compile(star, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, s := range []string{"", "a", "aaaa"} {
		if !NewExecutor(fwd).Test([]rune(s)) {
			t.Errorf("Star: expected match on %q", s)
		}
	}
	if NewExecutor(fwd).Test([]rune("ab")) {
		t.Errorf("Star: unexpected match on %q", "ab")
	}

	plus := ast.Plus{Inner: lit("a", ast.Unicode)}
	fwdPlus, _, err := Compile(plus, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if NewExecutor(fwdPlus).Test(nil) {
		t.Errorf("Plus: empty string must not match")
	}
	if !NewExecutor(fwdPlus).Test([]rune("aaa")) {
		t.Errorf("Plus: expected match on %q", "aaa")
	}
}

func TestCompileRangeRepeat(t *testing.T) {
	n := ast.RangeRepeat{Inner: lit("a", ast.Unicode), Low: 2, High: 3}
	fwd, _, err := Compile(n, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cases := map[string]bool{
		"":    false,
		"a":   false,
		"aa":  true,
		"aaa": true,
		"aaaa": false,
	}
	for in, want := range cases {
		if got := NewExecutor(fwd).Test([]rune(in)); got != want {
			t.Errorf("Test(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCompileAnyOf(t *testing.T) {
	n := ast.NewAnyOfNode([]ast.Node{lit("cat", ast.Unicode), lit("dog", ast.Unicode)})
	fwd, _, err := Compile(n, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !NewExecutor(fwd).Test([]rune("cat")) || !NewExecutor(fwd).Test([]rune("dog")) {
		t.Errorf("expected both alternatives to match")
	}
	if NewExecutor(fwd).Test([]rune("cow")) {
		t.Errorf("unexpected match on non-alternative")
	}
}

func TestCompileCharRangeAndDot(t *testing.T) {
	cr := ast.CharRange{Ranges: []ast.CodePointRange{{Low: 'a', High: 'z'}}}
	fwd, _, err := Compile(cr, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !NewExecutor(fwd).Test([]rune("m")) {
		t.Errorf("expected [a-z] to match 'm'")
	}
	if NewExecutor(fwd).Test([]rune("M")) {
		t.Errorf("expected [a-z] to reject 'M'")
	}

	dotFwd, _, err := Compile(ast.Dot{}, ast.Unicode)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !NewExecutor(dotFwd).Test([]rune("x")) {
		t.Errorf("expected Dot to match any single code point")
	}
	if NewExecutor(dotFwd).Test([]rune("xy")) {
		t.Errorf("Dot should only match exactly one code point")
	}
}

func TestCompileUnresolvedRefRejected(t *testing.T) {
	if _, _, err := Compile(ast.NamedRef{QualifiedName: "foo"}, ast.Unicode); err == nil {
		t.Errorf("expected an error compiling an unresolved NamedRef")
	}
}
