package ast

import (
	"strconv"
	"strings"

	"github.com/brexlang/brex/internal/codec"
)

// ToSurfaceForm renders re back to canonical BREX surface syntax: canonical
// parenthesization (per NeedsParens/NeedsSequenceParens) and canonical
// ordering (character ranges sorted ascending). The result is a valid input
// to the parser that reparses to an AST equal to re up to that canonical
// ordering (see spec §8 property 1, "Round-trip").
func (re Regex) ToSurfaceForm() string {
	var b strings.Builder
	b.WriteByte('/')
	if re.PreAnchor != nil {
		writeComponent(&b, *re.PreAnchor, re.Domain)
		b.WriteByte('^')
	}
	b.WriteByte('<')
	writeComponent(&b, re.Body, re.Domain)
	b.WriteByte('>')
	if re.PostAnchor != nil {
		b.WriteByte('$')
		writeComponent(&b, *re.PostAnchor, re.Domain)
	}
	switch re.Kind {
	case Path:
		b.WriteString("/p")
	default:
		if re.Domain == Char {
			b.WriteString("/c")
		} else {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func writeComponent(b *strings.Builder, c Component, domain Domain) {
	entries := c.Entries()
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('&')
		}
		writeEntry(b, e, domain)
	}
}

func writeEntry(b *strings.Builder, e Entry, domain Domain) {
	if e.Negated {
		b.WriteByte('!')
	}
	if e.IsFront {
		b.WriteByte('^')
	}
	writeNode(b, e.Body, domain, false)
	if e.IsBack {
		b.WriteByte('$')
	}
}

func writeNode(b *strings.Builder, n Node, domain Domain, parens bool) {
	if parens && n.NeedsParens() {
		b.WriteByte('(')
		writeNode(b, n, domain, false)
		b.WriteByte(')')
		return
	}
	switch v := n.(type) {
	case Literal:
		writeLiteral(b, v, domain)
	case CharRange:
		writeCharRange(b, v)
	case Dot:
		b.WriteByte('.')
	case NamedRef:
		b.WriteString("${")
		b.WriteString(v.QualifiedName)
		b.WriteByte('}')
	case EnvRef:
		b.WriteString("env[")
		b.WriteString(strconv.Quote(v.Key))
		b.WriteByte(']')
	case Star:
		writeNode(b, v.Inner, domain, true)
		b.WriteByte('*')
	case Plus:
		writeNode(b, v.Inner, domain, true)
		b.WriteByte('+')
	case Optional:
		writeNode(b, v.Inner, domain, true)
		b.WriteByte('?')
	case RangeRepeat:
		writeNode(b, v.Inner, domain, true)
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(int(v.Low)))
		b.WriteByte(',')
		if v.High != UnboundedHigh {
			b.WriteString(strconv.Itoa(int(v.High)))
		}
		b.WriteByte('}')
	case AnyOf:
		for i, alt := range v.Alternatives {
			if i > 0 {
				b.WriteByte('|')
			}
			writeNode(b, alt, domain, alt.NeedsSequenceParens())
		}
	case Sequence:
		for _, part := range v.Parts {
			writeNode(b, part, domain, part.NeedsSequenceParens())
		}
	}
}

func writeLiteral(b *strings.Builder, lit Literal, domain Domain) {
	quote := byte('"')
	if domain == Char {
		quote = '\''
	}
	b.WriteByte(quote)
	for _, r := range lit.Codes {
		writeEscapedRune(b, r, domain)
	}
	b.WriteByte(quote)
}

func writeEscapedRune(b *strings.Builder, r rune, domain Domain) {
	cdomain := codec.Unicode
	if domain == Char {
		cdomain = codec.Char
	}
	if codec.IsPrintablePolicy(r, false) && domain.IsLegal(r) {
		b.WriteRune(r)
		return
	}
	if name, ok := codec.EscapeNameFor(r); ok {
		b.WriteByte('%')
		b.WriteString(name)
		b.WriteByte(';')
		return
	}
	_, _, hex := codec.SuggestEscapes(r, cdomain)
	b.WriteString(hex)
}

func writeCharRange(b *strings.Builder, cr CharRange) {
	b.WriteByte('[')
	if cr.Complement {
		b.WriteByte('^')
	}
	for _, rg := range SortRanges(cr.Ranges) {
		if rg.Low == rg.High {
			writeEscapedRune(b, rg.Low, Unicode)
		} else {
			writeEscapedRune(b, rg.Low, Unicode)
			b.WriteByte('-')
			writeEscapedRune(b, rg.High, Unicode)
		}
	}
	b.WriteByte(']')
}
