// Package resolver inlines named and environment references (§4.D): it
// replaces every ast.NamedRef/ast.EnvRef in a tree with the AST (or literal)
// it denotes, detecting reference cycles and flattening AnyOf-of-AnyOf that
// inlining produces.
package resolver

import (
	"fmt"
	"strings"

	"github.com/brexlang/brex/ast"
)

// Dictionaries bundles the two reference namespaces a Resolve pass consults.
type Dictionaries struct {
	// Named maps a qualified name (as it appears inside "${...}") to the
	// regex it denotes.
	Named map[string]ast.Regex
	// Env maps an environment key (as it appears inside env["..."]) to the
	// literal it denotes.
	Env map[string]ast.Literal
	// Rewrite optionally remaps a qualified name before lookup (e.g. for
	// namespace aliasing). A nil Rewrite leaves names unchanged.
	Rewrite func(name string) string

	// MaxDepth bounds the named-reference inlining chain length, distinct
	// from cycle detection: a long acyclic chain (A references B references
	// C ...) is still bounded rather than left to grow without limit. 0
	// uses defaultMaxResolveDepth.
	MaxDepth int
}

// defaultMaxResolveDepth bounds named-reference inlining depth when
// Dictionaries leaves MaxDepth unset.
const defaultMaxResolveDepth = 256

// RecursionLimitError reports a named-reference inlining chain deeper than
// the configured maximum.
type RecursionLimitError struct {
	Chain []string
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("named reference chain exceeds maximum depth %d: %s", e.Limit, strings.Join(e.Chain, " -> "))
}

// CycleError reports a named-reference cycle detected during resolution.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("named reference cycle: %s", strings.Join(e.Chain, " -> "))
}

// UnresolvedError reports a reference with no entry in its dictionary.
type UnresolvedError struct {
	Kind string // "named" or "env"
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Name)
}

// Resolver performs one inlining pass over a tree.
type Resolver struct {
	dict    Dictionaries
	onStack map[string]bool
	stack   []string
}

// Resolve inlines every NamedRef/EnvRef node reachable from re, returning the
// fully inlined regex. The PreAnchor/Body/PostAnchor components are each
// walked independently; Domain and Kind are left untouched.
func Resolve(re ast.Regex, dict Dictionaries) (ast.Regex, []error) {
	r := &Resolver{dict: dict, onStack: map[string]bool{}}
	var errs []error

	if re.PreAnchor != nil {
		c, cerrs := r.resolveComponent(*re.PreAnchor)
		re.PreAnchor = &c
		errs = append(errs, cerrs...)
	}
	body, berrs := r.resolveComponent(re.Body)
	re.Body = body
	errs = append(errs, berrs...)
	if re.PostAnchor != nil {
		c, cerrs := r.resolveComponent(*re.PostAnchor)
		re.PostAnchor = &c
		errs = append(errs, cerrs...)
	}
	return re, errs
}

func (r *Resolver) resolveComponent(c ast.Component) (ast.Component, []error) {
	var errs []error
	entries := c.Entries()
	out := make([]ast.Entry, len(entries))
	for i, e := range entries {
		body, eerrs := r.resolveNode(e.Body)
		e.Body = body
		out[i] = e
		errs = append(errs, eerrs...)
	}
	if len(out) == 1 {
		return ast.NewSingle(out[0]), errs
	}
	return ast.NewAllOf(out...), errs
}

func (r *Resolver) resolveNode(n ast.Node) (ast.Node, []error) {
	switch v := n.(type) {
	case ast.NamedRef:
		return r.inlineNamed(v)
	case ast.EnvRef:
		return r.inlineEnv(v)
	case ast.Star:
		inner, errs := r.resolveNode(v.Inner)
		return ast.Star{Inner: inner}, errs
	case ast.Plus:
		inner, errs := r.resolveNode(v.Inner)
		return ast.Plus{Inner: inner}, errs
	case ast.Optional:
		inner, errs := r.resolveNode(v.Inner)
		return ast.Optional{Inner: inner}, errs
	case ast.RangeRepeat:
		inner, errs := r.resolveNode(v.Inner)
		return ast.RangeRepeat{Inner: inner, Low: v.Low, High: v.High}, errs
	case ast.AnyOf:
		var errs []error
		var alts []ast.Node
		for _, alt := range v.Alternatives {
			resolved, aerrs := r.resolveNode(alt)
			errs = append(errs, aerrs...)
			if flat, ok := resolved.(ast.AnyOf); ok {
				alts = append(alts, flat.Alternatives...)
			} else {
				alts = append(alts, resolved)
			}
		}
		return ast.NewAnyOfNode(alts), errs
	case ast.Sequence:
		var errs []error
		parts := make([]ast.Node, len(v.Parts))
		for i, part := range v.Parts {
			resolved, perrs := r.resolveNode(part)
			parts[i] = resolved
			errs = append(errs, perrs...)
		}
		return ast.Sequence{Parts: parts}, errs
	default:
		// Literal, CharRange, Dot: leaves, nothing to inline.
		return n, nil
	}
}

func (r *Resolver) inlineNamed(ref ast.NamedRef) (ast.Node, []error) {
	name := ref.QualifiedName
	if r.dict.Rewrite != nil {
		name = r.dict.Rewrite(name)
	}

	if r.onStack[name] {
		chain := append(append([]string{}, r.stack...), name)
		return ast.Sequence{}, []error{&CycleError{Chain: chain}}
	}

	limit := r.dict.MaxDepth
	if limit <= 0 {
		limit = defaultMaxResolveDepth
	}
	if len(r.stack) >= limit {
		chain := append(append([]string{}, r.stack...), name)
		return ast.Sequence{}, []error{&RecursionLimitError{Chain: chain, Limit: limit}}
	}

	target, ok := r.dict.Named[name]
	if !ok {
		return ast.Sequence{}, []error{&UnresolvedError{Kind: "named", Name: name}}
	}

	r.onStack[name] = true
	r.stack = append(r.stack, name)
	resolvedBody, errs := r.resolveComponentToNode(target.Body)
	r.stack = r.stack[:len(r.stack)-1]
	delete(r.onStack, name)

	return resolvedBody, errs
}

// resolveComponentToNode inlines a referenced regex's body component down to
// a single Node, for splicing into the referencing tree. An AllOf-bodied
// reference collapses its entries under a conjunction-preserving AnyOf-free
// sequence; single plain entries splice directly.
func (r *Resolver) resolveComponentToNode(c ast.Component) (ast.Node, []error) {
	entries := c.Entries()
	if len(entries) == 1 && entries[0].IsPlain() {
		return r.resolveNode(entries[0].Body)
	}
	var errs []error
	var parts []ast.Node
	for _, e := range entries {
		n, eerrs := r.resolveNode(e.Body)
		errs = append(errs, eerrs...)
		parts = append(parts, n)
	}
	return ast.Sequence{Parts: parts}, errs
}

func (r *Resolver) inlineEnv(ref ast.EnvRef) (ast.Node, []error) {
	lit, ok := r.dict.Env[ref.Key]
	if !ok {
		return ast.Literal{}, []error{&UnresolvedError{Kind: "env", Name: ref.Key}}
	}
	return lit, nil
}
