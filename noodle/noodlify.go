// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package noodle

import (
	"github.com/tmokenc/mata/internal/container"
	"github.com/tmokenc/mata/nfa"
)

// Noodle is an ordered sequence of (shared, read-only) segment NFAs.
// Plain Go pointers already give the shared-ownership semantics the
// design notes ask for: the garbage collector keeps a segment alive for
// as long as any noodle still references it.
type Noodle []*nfa.NFA

// NoodleSequence is an ordered sequence of noodles.
type NoodleSequence []Noodle

type instKey struct {
	init, final nfa.State
}

// instResult memoizes both the outcome (present/excluded) and the
// instance itself, so a memoized "excluded" result (inst == nil) is
// never confused with "not yet computed".
type instResult struct {
	inst *nfa.NFA
	ok   bool
}

// Noodlify enumerates valid segment/epsilon-transition assignments of a
// and assembles one noodle per valid assignment.
func Noodlify(a *nfa.NFA, eps nfa.Symbol, includeEmpty bool) NoodleSequence {
	seg := Segment(a, eps)

	if len(seg.Segments) == 1 {
		s0 := seg.Segments[0].Trim()
		if !s0.IsLangEmpty() || includeEmpty {
			return NoodleSequence{Noodle{s0}}
		}
		return nil
	}

	unusedState := nfa.State(a.NumStates())
	k := len(seg.EpsilonDepths)

	memos := make([]map[instKey]instResult, k+1)
	for i := range memos {
		memos[i] = make(map[instKey]instResult)
	}

	instance := func(segIdx int, init, final nfa.State) (*nfa.NFA, bool) {
		key := instKey{init, final}
		if r, cached := memos[segIdx][key]; cached {
			return r.inst, r.ok
		}
		s := seg.Segments[segIdx]
		initSet := s.Initial()
		finalSet := s.Final()
		if init != unusedState {
			initSet = container.NewSet[nfa.State](init)
		}
		if final != unusedState {
			finalSet = container.NewSet[nfa.State](final)
		}
		inst := s.Restrict(initSet, finalSet).Trim()
		if inst.IsLangEmpty() && !includeEmpty {
			memos[segIdx][key] = instResult{ok: false}
			return nil, false
		}
		memos[segIdx][key] = instResult{inst: inst, ok: true}
		return inst, true
	}

	dims := make([]int, k)
	numAssignments := 1
	for i := 0; i < k; i++ {
		dims[i] = len(seg.EpsilonDepths[i])
		numAssignments *= dims[i]
	}

	var result NoodleSequence
	for idx := 0; idx < numAssignments; idx++ {
		assignment := make([]int, k)
		temp := idx
		for i := 0; i < k; i++ {
			assignment[i] = temp % dims[i]
			temp /= dims[i]
		}

		edges := make([]nfa.Trans, k)
		for i := 0; i < k; i++ {
			edges[i] = seg.EpsilonDepths[i][assignment[i]]
		}

		noodleSeq := make(Noodle, k+1)
		ok := true
		for i := 0; i <= k; i++ {
			init := unusedState
			if i > 0 {
				init = edges[i-1].Tgt
			}
			final := unusedState
			if i < k {
				final = edges[i].Src
			}
			inst, present := instance(i, init, final)
			if !present {
				ok = false
				break
			}
			noodleSeq[i] = inst
		}
		if ok {
			result = append(result, noodleSeq)
		}
	}
	return result
}
