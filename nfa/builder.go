package nfa

import "github.com/brexlang/brex/internal/conv"

// Builder constructs a Machine incrementally, supporting the
// placeholder-then-patch style the compiler needs for forward references
// (a Star's body must jump back to a split state allocated before the body
// itself is compiled).
type Builder struct {
	states      []State
	numCounters int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

// Placeholder reserves a state slot with opcode xxxx (Op value 0xFF, never
// matched by the executor) so later AddX calls can reference its ID before
// its real contents are known. Callers must Patch it before Build.
func (b *Builder) Placeholder() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{ID: id, Op: 0xFF})
	return id
}

// Patch overwrites a previously reserved placeholder with its final state,
// preserving the ID.
func (b *Builder) Patch(id StateID, s State) {
	s.ID = id
	b.states[id] = s
}

func (b *Builder) push(s State) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	s.ID = id
	b.states = append(b.states, s)
	return id
}

// AddAccept appends an accepting state.
func (b *Builder) AddAccept() StateID {
	return b.push(State{Op: OpAccept})
}

// AddCharCode appends a single-code-point transition.
func (b *Builder) AddCharCode(c rune, next StateID) StateID {
	return b.push(State{Op: OpCharCode, Ranges: []CodeRange{{Lo: c, Hi: c}}, Next: next})
}

// AddCharRange appends a (possibly complemented) set of code point ranges.
func (b *Builder) AddCharRange(ranges []CodeRange, complement bool, next StateID) StateID {
	cp := make([]CodeRange, len(ranges))
	copy(cp, ranges)
	return b.push(State{Op: OpCharRange, Ranges: cp, Complement: complement, Next: next})
}

// AddDot appends a "matches any code point in the domain" transition.
func (b *Builder) AddDot(domainRange CodeRange, next StateID) StateID {
	return b.push(State{Op: OpDot, Ranges: []CodeRange{domainRange}, Next: next})
}

// AddSplit appends an alternation/repetition branch point.
func (b *Builder) AddSplit(out1, out2 StateID) StateID {
	return b.push(State{Op: OpSplit, Out1: out1, Out2: out2})
}

// AddJmp appends a bare epsilon transition.
func (b *Builder) AddJmp(next StateID) StateID {
	return b.push(State{Op: OpJmp, Next: next})
}

// AllocCounter reserves a fresh counter slot for a RangeK gate and returns
// its id.
func (b *Builder) AllocCounter() uint16 {
	id := conv.IntToUint16(b.numCounters)
	b.numCounters++
	return id
}

// AddRangeK appends a bounded-repeat gate. body is the entry point of the
// repeated sub-machine (which must eventually Jmp back to this state's ID
// via a Patch once known); exit is where control goes once Low has been
// satisfied and the token declines another iteration.
func (b *Builder) AddRangeK(low, high uint16, counter uint16, body, exit StateID) StateID {
	return b.push(State{Op: OpRangeK, Low: low, High: high, CounterID: counter, Body: body, Exit: exit})
}

// Build finalizes the Machine with the given start state.
func (b *Builder) Build(start StateID) *Machine {
	return &Machine{States: b.states, Start: start, NumCounters: b.numCounters}
}
