package nfa

import (
	"github.com/brexlang/brex/ast"
	"github.com/brexlang/brex/internal/sparse"
)

// thread is one live simulation path: a leaf state (a consuming transition
// or Accept) plus the token carrying its counters.
type thread struct {
	id  StateID
	tok Token
}

// threadList holds the current generation's threads in priority order
// (earlier entries are preferred on ambiguous branches, matching the
// AnyOf/Star left-biased construction) with a sparse set for O(1) dedup.
type threadList struct {
	order   []thread
	visited *sparse.SparseSet
}

func newThreadList(numStates int) *threadList {
	return &threadList{visited: sparse.NewSparseSet(uint32(numStates))}
}

func (l *threadList) reset() {
	l.order = l.order[:0]
	l.visited.Clear()
}

// addThread performs the epsilon closure from id, pushing every reachable
// consuming state or Accept state onto the list at most once.
func (l *threadList) addThread(m *Machine, id StateID, tok Token) {
	if id == InvalidState || l.visited.Contains(uint32(id)) {
		return
	}
	l.visited.Insert(uint32(id))
	s := m.State(id)
	if s == nil {
		return
	}
	switch s.Op {
	case OpJmp:
		l.addThread(m, s.Next, tok)
	case OpSplit:
		l.addThread(m, s.Out1, tok)
		l.addThread(m, s.Out2, tok)
	case OpRangeK:
		cnt := tok.Get(s.CounterID)
		canLoop := s.High == ast.UnboundedHigh || cnt < s.High
		canExit := cnt >= s.Low
		if canLoop {
			l.addThread(m, s.Body, tok.WithIncrement(s.CounterID))
		}
		if canExit {
			l.addThread(m, s.Exit, tok)
		}
	default: // OpAccept, OpCharCode, OpCharRange, OpDot: leaves
		l.order = append(l.order, thread{id: id, tok: tok})
	}
}

func matches(s *State, r rune) bool {
	switch s.Op {
	case OpCharCode, OpCharRange, OpDot:
		in := false
		for _, rg := range s.Ranges {
			if r >= rg.Lo && r <= rg.Hi {
				in = true
				break
			}
		}
		if s.Complement {
			return !in
		}
		return in
	default:
		return false
	}
}

// Executor runs one compiled Machine over a rune sequence, per the six
// query modes in §4.F.
type Executor struct {
	m *Machine
}

func NewExecutor(m *Machine) *Executor { return &Executor{m: m} }

// run runs the machine over input starting its first thread
// generation at offset 0, returning every input offset (0..len(input)) at
// which an Accept state was live that generation.
func (e *Executor) run(input []rune) (acceptAtStart bool, acceptOffsets []int) {
	cur := newThreadList(len(e.m.States))
	next := newThreadList(len(e.m.States))
	cur.addThread(e.m, e.m.Start, NewToken(e.m.NumCounters))

	check := func(list *threadList, offset int) {
		for _, t := range list.order {
			if e.m.State(t.id).Op == OpAccept {
				acceptOffsets = append(acceptOffsets, offset)
				return
			}
		}
	}
	check(cur, 0)

	for i, r := range input {
		next.reset()
		for _, t := range cur.order {
			s := e.m.State(t.id)
			if matches(s, r) {
				next.addThread(e.m, s.Next, t.tok)
			}
		}
		cur, next = next, cur
		check(cur, i+1)
	}
	return len(acceptOffsets) > 0 && acceptOffsets[0] == 0, acceptOffsets
}

// Test reports whether input, read in full from offset 0, ends on an
// Accept state — a whole-string anchored match.
func (e *Executor) Test(input []rune) bool {
	_, offsets := e.run(input)
	for _, off := range offsets {
		if off == len(input) {
			return true
		}
	}
	return false
}

// MatchTestForward reports whether some prefix of input, the empty one
// included (read from offset 0), reaches Accept — used to realize a front-check entry.
func (e *Executor) MatchTestForward(input []rune) bool {
	_, offsets := e.run(input)
	return len(offsets) > 0
}

// MatchTestReverse reports whether some suffix of input, read backwards
// from the end, reaches Accept on the reverse machine — used to realize a
// back-check entry. Callers pass the reverse-compiled Machine's Executor.
func (e *Executor) MatchTestReverse(input []rune) bool {
	reversed := make([]rune, len(input))
	for i, r := range input {
		reversed[len(input)-1-i] = r
	}
	_, offsets := e.run(reversed)
	return len(offsets) > 0
}

// MatchForward finds the shortest match starting at input[0], returning the
// end offset (exclusive) of the first Accept reached, greedily preferring
// the earliest generation in which Accept appears.
func (e *Executor) MatchForward(input []rune) (end int, ok bool) {
	_, offsets := e.run(input)
	if len(offsets) == 0 {
		return 0, false
	}
	return offsets[0], true
}

// MatchReverse finds the shortest match ending at input[len(input)-1] when
// read backwards (i.e. the shortest suffix accepted by the reverse
// machine), returning the start offset of that suffix.
func (e *Executor) MatchReverse(input []rune) (start int, ok bool) {
	reversed := make([]rune, len(input))
	for i, r := range input {
		reversed[len(input)-1-i] = r
	}
	_, offsets := e.run(reversed)
	if len(offsets) == 0 {
		return 0, false
	}
	return len(input) - offsets[0], true
}

// Contains reports whether the forward machine matches starting at any
// offset in input — the derived "contains" query built from repeated
// MatchForward probes.
func (e *Executor) Contains(input []rune) bool {
	for start := 0; start <= len(input); start++ {
		if _, ok := e.MatchForward(input[start:]); ok {
			return true
		}
	}
	return false
}

// rangeSlice returns input[spos:epos+1] (epos inclusive, matching the
// ComponentCheckREInfo convention) and whether that range is addressable.
// A false ok means the range is out of bounds; a well-formed empty range
// (epos == spos-1) is addressable and yields the empty slice.
func rangeSlice(input []rune, spos, epos int) ([]rune, bool) {
	if spos < 0 || epos+1 < spos || epos+1 > len(input) {
		return nil, false
	}
	return input[spos : epos+1], true
}

// TestRange is Test restricted to input[spos:epos+1] — full consumption of
// exactly that sub-range.
func (e *Executor) TestRange(input []rune, spos, epos int) bool {
	sub, ok := rangeSlice(input, spos, epos)
	return ok && e.Test(sub)
}

// MatchTestForwardRange is MatchTestForward restricted to input[spos:epos+1]
// — the range-parameterized form of a front-check entry's test, used to
// re-validate a post-anchor against the span following a candidate match.
func (e *Executor) MatchTestForwardRange(input []rune, spos, epos int) bool {
	sub, ok := rangeSlice(input, spos, epos)
	return ok && e.MatchTestForward(sub)
}

// MatchTestReverseRange is MatchTestReverse restricted to input[spos:epos+1]
// — the range-parameterized form of a back-check entry's test, used to
// re-validate a pre-anchor against the span preceding a candidate match.
func (e *Executor) MatchTestReverseRange(input []rune, spos, epos int) bool {
	sub, ok := rangeSlice(input, spos, epos)
	return ok && e.MatchTestReverse(sub)
}

// MatchForwardRange finds the shortest match starting exactly at spos and
// ending by epos, returning the end offset in input's own coordinates.
func (e *Executor) MatchForwardRange(input []rune, spos, epos int) (end int, ok bool) {
	sub, rok := rangeSlice(input, spos, epos)
	if !rok {
		return 0, false
	}
	end, ok = e.MatchForward(sub)
	if !ok {
		return 0, false
	}
	return spos + end, true
}

// MatchReverseRange finds the shortest suffix of input[spos:epos+1] ending
// exactly at epos, returning its start offset in input's own coordinates.
func (e *Executor) MatchReverseRange(input []rune, spos, epos int) (start int, ok bool) {
	sub, rok := rangeSlice(input, spos, epos)
	if !rok {
		return 0, false
	}
	start, ok = e.MatchReverse(sub)
	if !ok {
		return 0, false
	}
	return spos + start, true
}

// MatchForwardAllRange returns every end offset, in input's own
// coordinates, reachable by a match starting exactly at spos within
// [spos, epos] — the per-start candidate-generation step a binding AllOf
// entry uses to contribute matches to a contains-class query.
func (e *Executor) MatchForwardAllRange(input []rune, spos, epos int) []int {
	sub, ok := rangeSlice(input, spos, epos)
	if !ok {
		return nil
	}
	_, offsets := e.run(sub)
	out := make([]int, len(offsets))
	for i, o := range offsets {
		out[i] = spos + o
	}
	return out
}
