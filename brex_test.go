package brex

import (
	"strings"
	"testing"

	"github.com/brexlang/brex/ast"
)

func TestCompileAndTestString(t *testing.T) {
	re, err := Compile(`/<"hello">/`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.TestString("hello") {
		t.Errorf("expected match on %q", "hello")
	}
	if re.TestString("hello world") {
		t.Errorf("unexpected match on %q", "hello world")
	}
}

func TestContainsAndConvenienceMethods(t *testing.T) {
	re, err := Compile(`/<"cat">/`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ok, err := re.Contains("a cat sat on a cat mat")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Errorf("expected containment match")
	}

	first, ok := re.MatchContainsFirst("a cat sat on a cat mat")
	if !ok || first != 2 {
		t.Errorf("MatchContainsFirst = (%d, %v), want (2, true)", first, ok)
	}
	last, ok := re.MatchContainsLast("a cat sat on a cat mat")
	if !ok || last != 15 {
		t.Errorf("MatchContainsLast = (%d, %v), want (15, true)", last, ok)
	}
	all := re.FindAllContains("a cat sat on a cat mat")
	if len(all) != 2 {
		t.Errorf("FindAllContains = %v, want 2 offsets", all)
	}
}

func TestMatchFrontAndBack(t *testing.T) {
	re := MustCompile(`/<"abc">/`)
	if !re.MatchFront("abcdef") {
		t.Errorf("expected MatchFront to succeed")
	}
	if re.MatchFront("xabcdef") {
		t.Errorf("unexpected MatchFront success")
	}

	reBack := MustCompile(`/<"xyz">/`)
	if !reBack.MatchBack("abcxyz") {
		t.Errorf("expected MatchBack to succeed")
	}
	if reBack.MatchBack("abcxyzq") {
		t.Errorf("unexpected MatchBack success")
	}
}

func TestAnchoredRegex(t *testing.T) {
	re, err := Compile(`/^<"mid">$/`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.TestString("mid") {
		t.Errorf("expected the anchored form to accept its own body")
	}
}

func TestContainsWithNonEmptyPreAnchor(t *testing.T) {
	re, err := Compile(`/"A"^<"B">/`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	first, ok := re.MatchContainsFirst("XAB")
	if !ok || first != 2 {
		t.Errorf("MatchContainsFirst(%q) = (%d, %v), want (2, true): the pre-anchor body \"A\" precedes the \"B\" match at offset 1, not the whole input", "XAB", first, ok)
	}

	if _, ok := re.MatchContainsFirst("XYB"); ok {
		t.Errorf("expected no containment match on %q: nothing immediately before the \"B\" match satisfies the pre-anchor", "XYB")
	}
}

func TestEnvRefRequiresConfig(t *testing.T) {
	_, err := CompileWithConfig(`/<env["HOST"]>/`, DefaultConfig())
	if err == nil {
		t.Errorf("expected an error when env refs are used without AllowEnvRefs")
	}

	cfg := Config{AllowEnvRefs: true, Environment: map[string]string{"HOST": "example.com"}}
	re, err := CompileWithConfig(`/<env["HOST"]>/`, cfg)
	if err != nil {
		t.Fatalf("CompileWithConfig: %v", err)
	}
	if !re.TestString("example.com") {
		t.Errorf("expected env-backed literal to match its configured value")
	}
}

func TestCapabilitiesIsReachableFromCompiledRegex(t *testing.T) {
	re := MustCompile(`/<"x">/`)
	caps1 := re.Capabilities()
	caps2 := re.Capabilities()
	if caps1 != caps2 {
		t.Errorf("Capabilities() = %v then %v, want a stable value for the same compiled Regex", caps1, caps2)
	}
}

func TestMaxRecursionDepthRejectsDeepNesting(t *testing.T) {
	src := "/<" + strings.Repeat("(", 50) + `"x"` + strings.Repeat(")", 50) + ">/"
	if _, err := Compile(src); err != nil {
		t.Fatalf("Compile with default depth: %v", err)
	}

	cfg := Config{MaxRecursionDepth: 10}
	if _, err := CompileWithConfig(src, cfg); err == nil {
		t.Errorf("expected a recursion-limit error with MaxRecursionDepth=10 against 50 levels of nesting")
	}
}

func TestPrefilterOptionsPreserveMatchSemantics(t *testing.T) {
	const src = `/<"cat" | "dog">/`
	const haystack = "there is a cat and a dog here"

	disabled := false
	configs := []Config{
		DefaultConfig(),
		{EnableAhoCorasickPrefilter: &disabled},
		{MinPrefilterLiteralLen: 10},
		{MaxPrefilterLiterals: 1},
		{EnableDigitPrefilter: true},
	}
	for i, cfg := range configs {
		re, err := CompileWithConfig(src, cfg)
		if err != nil {
			t.Fatalf("config %d: CompileWithConfig: %v", i, err)
		}
		ok, err := re.Contains(haystack)
		if err != nil {
			t.Fatalf("config %d: Contains: %v", i, err)
		}
		if !ok {
			t.Errorf("config %d: expected Contains(%q) to find a match regardless of prefilter tuning", i, haystack)
		}

		noMatch, err := re.Contains("nothing relevant in here")
		if err != nil {
			t.Fatalf("config %d: Contains: %v", i, err)
		}
		if noMatch {
			t.Errorf("config %d: unexpected match where neither literal appears", i)
		}
	}
}

func TestUnescapeLiteralResolvesEscapes(t *testing.T) {
	got, err := UnescapeLiteral(`a%x59;b%n;c`, ast.Unicode, false)
	if err != nil {
		t.Fatalf("UnescapeLiteral: %v", err)
	}
	if want := "aYb\nc"; got != want {
		t.Errorf("UnescapeLiteral = %q, want %q", got, want)
	}
}

func TestUnescapeLiteralRejectsBareNewlineWithoutMultiline(t *testing.T) {
	if _, err := UnescapeLiteral("a\nb", ast.Unicode, false); err == nil {
		t.Errorf("expected an error for a bare newline with allowNewline=false")
	}
	got, err := UnescapeLiteral("a\nb", ast.Unicode, true)
	if err != nil {
		t.Fatalf("UnescapeLiteral with allowNewline: %v", err)
	}
	if want := "a\nb"; got != want {
		t.Errorf("UnescapeLiteral = %q, want %q", got, want)
	}
}

func TestUnescapeLiteralCharDomainQuote(t *testing.T) {
	got, err := UnescapeLiteral(`%;`, ast.Char, false)
	if err != nil {
		t.Fatalf("UnescapeLiteral: %v", err)
	}
	if want := "'"; got != want {
		t.Errorf("UnescapeLiteral = %q, want %q", got, want)
	}
}

func TestMustCompilePanicsOnInvalidSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected MustCompile to panic on invalid source")
		}
	}()
	MustCompile(`not a brex pattern`)
}
