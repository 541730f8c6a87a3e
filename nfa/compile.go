package nfa

import (
	"fmt"

	"github.com/brexlang/brex/ast"
)

// Direction selects which of the two Thompson constructions (§4.E) a
// compile pass produces. The two directions agree on every leaf transition
// but differ in how Literal and Sequence thread their children: a forward
// machine reads a Literal's code points in written order and threads a
// Sequence's parts left-to-right; a reverse machine reads both in the
// opposite order, so running it against a reversed input byte/rune stream
// answers "does a match end here".
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

// Compile builds both the forward and reverse machines for a single
// resolved AST node (an Entry's Body — the matcher package composes
// Entries/anchors on top of these).
func Compile(n ast.Node, domain ast.Domain) (forward, reverse *Machine, err error) {
	fwd, ferr := compileOne(n, domain, Forward)
	if ferr != nil {
		return nil, nil, &CompileError{Err: ferr}
	}
	rev, rerr := compileOne(n, domain, Reverse)
	if rerr != nil {
		return nil, nil, &CompileError{Err: rerr}
	}
	return fwd, rev, nil
}

func compileOne(n ast.Node, domain ast.Domain, dir Direction) (*Machine, error) {
	b := NewBuilder()
	accept := b.AddAccept()
	c := &compiler{b: b, domain: domain, dir: dir}
	start, err := c.compile(n, accept)
	if err != nil {
		return nil, err
	}
	return b.Build(start), nil
}

type compiler struct {
	b      *Builder
	domain ast.Domain
	dir    Direction
}

func domainDotRange(domain ast.Domain) CodeRange {
	if domain == ast.Char {
		return CodeRange{Lo: 0x00, Hi: 0x7E}
	}
	return CodeRange{Lo: 0, Hi: 0x10FFFF}
}

// compile builds the fragment for n, wiring its dangling exit(s) to next,
// and returns the fragment's entry state.
func (c *compiler) compile(n ast.Node, next StateID) (StateID, error) {
	switch v := n.(type) {
	case ast.Literal:
		return c.compileLiteral(v, next)
	case ast.CharRange:
		ranges := make([]CodeRange, len(v.Ranges))
		for i, r := range v.Ranges {
			ranges[i] = CodeRange{Lo: r.Low, Hi: r.High}
		}
		return c.b.AddCharRange(ranges, v.Complement, next), nil
	case ast.Dot:
		return c.b.AddDot(domainDotRange(c.domain), next), nil
	case ast.Star:
		split := c.b.Placeholder()
		bodyEntry, err := c.compile(v.Inner, split)
		if err != nil {
			return InvalidState, err
		}
		c.b.Patch(split, State{Op: OpSplit, Out1: bodyEntry, Out2: next})
		return split, nil
	case ast.Plus:
		split := c.b.Placeholder()
		bodyEntry, err := c.compile(v.Inner, split)
		if err != nil {
			return InvalidState, err
		}
		c.b.Patch(split, State{Op: OpSplit, Out1: bodyEntry, Out2: next})
		return bodyEntry, nil
	case ast.Optional:
		bodyEntry, err := c.compile(v.Inner, next)
		if err != nil {
			return InvalidState, err
		}
		return c.b.AddSplit(bodyEntry, next), nil
	case ast.RangeRepeat:
		return c.compileRangeRepeat(v, next)
	case ast.AnyOf:
		return c.compileAnyOf(v, next)
	case ast.Sequence:
		return c.compileSequence(v, next)
	case ast.NamedRef:
		return InvalidState, fmt.Errorf("unresolved named reference %q reached the compiler", v.QualifiedName)
	case ast.EnvRef:
		return InvalidState, fmt.Errorf("unresolved env reference %q reached the compiler", v.Key)
	default:
		return InvalidState, fmt.Errorf("unhandled node type %T", n)
	}
}

func (c *compiler) compileLiteral(lit ast.Literal, next StateID) (StateID, error) {
	codes := lit.Codes
	if len(codes) == 0 {
		return c.b.AddJmp(next), nil
	}
	// Forward compiles a literal's code points in reverse code order,
	// chaining each new state's Next to the previously built one, so the
	// *entry* point of the resulting chain is the state for codes[0].
	// Reverse compiles them in forward order for the same reason, since it
	// must match the literal against a reversed input stream.
	order := make([]rune, len(codes))
	if c.dir == Forward {
		for i, r := range codes {
			order[len(codes)-1-i] = r
		}
	} else {
		copy(order, codes)
	}
	cur := next
	for _, r := range order {
		cur = c.b.AddCharCode(r, cur)
	}
	return cur, nil
}

func (c *compiler) compileRangeRepeat(rr ast.RangeRepeat, next StateID) (StateID, error) {
	counter := c.b.AllocCounter()
	gate := c.b.Placeholder()
	bodyEntry, err := c.compile(rr.Inner, gate)
	if err != nil {
		return InvalidState, err
	}
	c.b.Patch(gate, State{
		Op:        OpRangeK,
		Low:       rr.Low,
		High:      rr.High,
		CounterID: counter,
		Body:      bodyEntry,
		Exit:      next,
	})
	return gate, nil
}

func (c *compiler) compileAnyOf(any ast.AnyOf, next StateID) (StateID, error) {
	if len(any.Alternatives) == 0 {
		return InvalidState, fmt.Errorf("AnyOf with no alternatives")
	}
	entries := make([]StateID, len(any.Alternatives))
	for i, alt := range any.Alternatives {
		e, err := c.compile(alt, next)
		if err != nil {
			return InvalidState, err
		}
		entries[i] = e
	}
	// Fold alternatives into a right-leaning chain of binary splits.
	cur := entries[len(entries)-1]
	for i := len(entries) - 2; i >= 0; i-- {
		cur = c.b.AddSplit(entries[i], cur)
	}
	return cur, nil
}

func (c *compiler) compileSequence(seq ast.Sequence, next StateID) (StateID, error) {
	if len(seq.Parts) == 0 {
		return c.b.AddJmp(next), nil
	}
	// Forward threads right-to-left: the last part's exit is next, each
	// earlier part's exit is the entry of the part that follows it.
	// Reverse threads left-to-right, since the whole sequence is being
	// matched against a reversed stream and so must be walked in reverse
	// part-order too.
	parts := seq.Parts
	if c.dir == Reverse {
		rev := make([]ast.Node, len(parts))
		for i, p := range parts {
			rev[len(parts)-1-i] = p
		}
		parts = rev
	}
	cur := next
	for i := len(parts) - 1; i >= 0; i-- {
		e, err := c.compile(parts[i], cur)
		if err != nil {
			return InvalidState, err
		}
		cur = e
	}
	return cur, nil
}
