// Package nfa compiles a resolved ast.Regex into a pair of Thompson NFAs
// (forward and reverse) and executes them with a token-carrying simulation
// that tracks bounded repeat counters alongside thread membership (§4.E,
// §4.F). Unlike a capture-tracking PikeVM, there is nothing here to report
// except acceptance: every machine answers exactly one of the six query
// modes an Executor exposes.
package nfa

import "fmt"

// StateID uniquely identifies a state within one Machine.
type StateID uint32

// InvalidState marks an uninitialized or not-yet-patched state reference.
const InvalidState StateID = 0xFFFFFFFF

// Op identifies the opcode a State carries: Accept, CharCode, CharRange,
// Dot, Split, Jmp, RangeK. AnyOf and Star are expressed through Split.
type Op uint8

const (
	OpAccept Op = iota
	OpCharCode
	OpCharRange
	OpDot
	OpSplit   // epsilon branch to two states (drives AnyOf/Star/Plus/Optional)
	OpJmp     // epsilon transition to one state (sequencing)
	OpRangeK  // bounded-repeat counter gate
)

func (o Op) String() string {
	switch o {
	case OpAccept:
		return "Accept"
	case OpCharCode:
		return "CharCode"
	case OpCharRange:
		return "CharRange"
	case OpDot:
		return "Dot"
	case OpSplit:
		return "Split"
	case OpJmp:
		return "Jmp"
	case OpRangeK:
		return "RangeK"
	default:
		return fmt.Sprintf("Op(%d)", o)
	}
}

// CodeRange is an inclusive code point range; CharCode states use Lo==Hi.
type CodeRange struct {
	Lo, Hi rune
}

// State is a single NFA node. Which fields are meaningful depends on Op,
// mirroring the teacher's tagged-union State shape.
type State struct {
	ID StateID
	Op Op

	// CharCode / CharRange / Dot: ranges matched (Dot carries the domain's
	// "any code point" range computed at compile time); Next is the single
	// successor on a consuming transition.
	Ranges     []CodeRange
	Complement bool
	Next       StateID

	// Split: two epsilon successors (alternation / repetition).
	Out1, Out2 StateID

	// RangeK: bounded-repeat gate. Enter re-runs Body up to High-1 more
	// times (tracked via the token's counter); Exit leaves the loop once
	// Low has been satisfied.
	Low, High uint16
	Body      StateID
	Exit      StateID
	CounterID uint16
}

// Machine is one compiled Thompson NFA (either the forward or the reverse
// direction of a single ast.Regex body).
type Machine struct {
	States     []State
	Start      StateID
	NumCounters int
}

func (m *Machine) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(m.States) {
		return nil
	}
	return &m.States[id]
}

func (m *Machine) String() string {
	return fmt.Sprintf("Machine{states: %d, start: %d, counters: %d}", len(m.States), m.Start, m.NumCounters)
}
