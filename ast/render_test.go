package ast

import "testing"

func TestToSurfaceFormPlainLiteral(t *testing.T) {
	re := Regex{Domain: Unicode, Kind: Std, Body: NewSingle(Entry{Body: Literal{Codes: []rune("hi"), Domain: Unicode}})}
	got := re.ToSurfaceForm()
	want := `/<"hi">/`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormCharDomain(t *testing.T) {
	re := Regex{Domain: Char, Kind: Std, Body: NewSingle(Entry{Body: Literal{Codes: []rune("hi"), Domain: Char}})}
	got := re.ToSurfaceForm()
	want := `/<'hi'>/c`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormPathKind(t *testing.T) {
	re := Regex{Domain: Unicode, Kind: Path, Body: NewSingle(Entry{Body: Literal{Codes: []rune("a"), Domain: Unicode}})}
	got := re.ToSurfaceForm()
	want := `/<"a">/p`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormAllOfConjunctionAndNegation(t *testing.T) {
	re := Regex{Domain: Unicode, Kind: Std, Body: NewAllOf(
		Entry{Body: Dot{}},
		Entry{Negated: true, Body: Literal{Codes: []rune("bad"), Domain: Unicode}},
	)}
	got := re.ToSurfaceForm()
	want := `/<.&!"bad">/`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormAnchors(t *testing.T) {
	pre := NewSingle(Entry{Body: Literal{Codes: []rune("pre"), Domain: Unicode}})
	post := NewSingle(Entry{Body: Literal{Codes: []rune("post"), Domain: Unicode}})
	re := Regex{Domain: Unicode, Kind: Std, PreAnchor: &pre, Body: NewSingle(Entry{Body: Literal{Codes: []rune("mid"), Domain: Unicode}}), PostAnchor: &post}
	got := re.ToSurfaceForm()
	want := `/"pre"^<"mid">$"post"/`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormRepeatsAndParens(t *testing.T) {
	re := Regex{Domain: Unicode, Kind: Std, Body: NewSingle(Entry{Body: Star{Inner: Literal{Codes: []rune("a"), Domain: Unicode}}})}
	got := re.ToSurfaceForm()
	want := `/<"a"*>/`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormCharRangeSortsAscending(t *testing.T) {
	re := Regex{Domain: Unicode, Kind: Std, Body: NewSingle(Entry{Body: CharRange{Ranges: []CodePointRange{
		{Low: 'z', High: 'z'},
		{Low: 'a', High: 'c'},
	}}})}
	got := re.ToSurfaceForm()
	want := `/<[a-cz]>/`
	if got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}

func TestToSurfaceFormNamedAndEnvRefs(t *testing.T) {
	re := Regex{Domain: Unicode, Kind: Std, Body: NewSingle(Entry{Body: NamedRef{QualifiedName: "scope::name"}})}
	if got, want := re.ToSurfaceForm(), `/<${scope::name}>/`; got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}

	re2 := Regex{Domain: Unicode, Kind: Std, Body: NewSingle(Entry{Body: EnvRef{Key: "HOST"}})}
	if got, want := re2.ToSurfaceForm(), `/<env["HOST"]>/`; got != want {
		t.Errorf("ToSurfaceForm() = %q, want %q", got, want)
	}
}
