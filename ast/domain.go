// Package ast defines the BREX abstract syntax tree: a tagged-variant node
// type for every regex operator, the two character domains, and the
// structural predicates used when rendering a node back to surface syntax.
package ast

import "fmt"

// Domain selects which code points a regex's literals and ranges may use.
type Domain uint8

const (
	// Unicode admits any code point 0..0x10FFFF, UTF-8 encoded externally.
	Unicode Domain = iota
	// Char admits printable ASCII plus tab and newline (isprint(c) || c in {\t,\n}), c <= 0x7E.
	Char
)

// String implements fmt.Stringer.
func (d Domain) String() string {
	switch d {
	case Unicode:
		return "unicode"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("Domain(%d)", uint8(d))
	}
}

// IsLegal reports whether code point c belongs to this domain.
func (d Domain) IsLegal(c rune) bool {
	switch d {
	case Char:
		if c == 0x09 || c == 0x0A {
			return true
		}
		return c >= 0x20 && c <= 0x7E
	default: // Unicode
		return c >= 0 && c <= 0x10FFFF
	}
}

// Kind labels a Regex with the outer surface class that governs which
// matcher operations are legal against it.
type Kind uint8

const (
	// Std is an ordinary regex, terminated by a bare '/' or '/c'.
	Std Kind = iota
	// Path is a path/resource-descriptor regex, terminated by '/p'.
	Path
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Std:
		return "std"
	case Path:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
