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

package nfa

import "github.com/tmokenc/mata/internal/container"

// ConcatenateOverEpsilon builds C on the disjoint union of A and B's
// state spaces (B's states shifted by A's state count), with I_C = I_A,
// F_C = F_B, and a fresh epsilon edge from every state of F_A to every
// state of I_B. eps must not occur in A or B for the result to mean
// concatenation; the caller (noodlify_for_equation) is responsible for
// choosing such a symbol.
func ConcatenateOverEpsilon(a, b *NFA, eps Symbol) *NFA {
	out := New()
	shift := len(a.delta)
	for i := 0; i < shift+len(b.delta); i++ {
		out.AddState()
	}

	for s := range a.initial {
		out.MakeInitial(s)
	}
	for _, t := range a.AllTrans() {
		out.AddTrans(t.Src, t.Symbol, t.Tgt)
	}

	for _, t := range b.AllTrans() {
		out.AddTrans(State(int(t.Src)+shift), t.Symbol, State(int(t.Tgt)+shift))
	}
	for s := range b.final {
		out.MakeFinal(State(int(s) + shift))
	}

	for fa := range a.final {
		for ib := range b.initial {
			out.AddTrans(fa, eps, State(int(ib)+shift))
		}
	}
	return out
}

type pairState struct{ p, q State }

// IntersectionOverEpsilon is a product construction that treats eps as a
// stutter step: it advances one operand while leaving the other in
// place. Built lazily from the initial pairs; only reachable pairs are
// materialized.
func IntersectionOverEpsilon(a, b *NFA, eps Symbol) *NFA {
	out := New()
	id := make(map[pairState]State)
	ensure := func(p pairState) State {
		if s, ok := id[p]; ok {
			return s
		}
		s := out.AddState()
		id[p] = s
		return s
	}

	var queue []pairState
	for p := range a.initial {
		for q := range b.initial {
			pq := pairState{p, q}
			s := ensure(pq)
			out.MakeInitial(s)
			queue = append(queue, pq)
		}
	}

	visited := container.NewSet[pairState]()
	for len(queue) > 0 {
		pq := queue[0]
		queue = queue[1:]
		if visited.Contains(pq) {
			continue
		}
		visited.Insert(pq)
		src := ensure(pq)

		if a.final.Contains(pq.p) && b.final.Contains(pq.q) {
			out.MakeFinal(src)
		}

		transA, _ := a.GetTransitionsFromState(pq.p)
		transB, _ := b.GetTransitionsFromState(pq.q)

		for sym, targets := range transA {
			if sym == eps {
				continue
			}
			bTargets, ok := transB[sym]
			if !ok {
				continue
			}
			for pp := range targets {
				for qq := range bTargets {
					np := pairState{pp, qq}
					tgt := ensure(np)
					out.AddTrans(src, sym, tgt)
					queue = append(queue, np)
				}
			}
		}

		if targets, ok := transA[eps]; ok {
			for pp := range targets {
				np := pairState{pp, pq.q}
				tgt := ensure(np)
				out.AddTrans(src, eps, tgt)
				queue = append(queue, np)
			}
		}
		if targets, ok := transB[eps]; ok {
			for qq := range targets {
				np := pairState{pq.p, qq}
				tgt := ensure(np)
				out.AddTrans(src, eps, tgt)
				queue = append(queue, np)
			}
		}
	}
	return out
}

// UnifyInitial returns a copy of a with a single fresh initial state
// epsilon-connected to every one of a's original initial states. If a
// already has exactly one initial state, the copy is returned unchanged.
func (a *NFA) UnifyInitial(eps Symbol) *NFA {
	if a.initial.Len() == 1 {
		return a.Clone()
	}
	out := a.Clone()
	fresh := out.AddState()
	for _, s := range container.SortedKeys(out.initial) {
		out.AddTrans(fresh, eps, s)
	}
	out.initial = container.NewSet[State](fresh)
	return out
}

// UnifyFinal is the dual of UnifyInitial.
func (a *NFA) UnifyFinal(eps Symbol) *NFA {
	if a.final.Len() == 1 {
		return a.Clone()
	}
	out := a.Clone()
	fresh := out.AddState()
	for _, s := range container.SortedKeys(out.final) {
		out.AddTrans(s, eps, fresh)
	}
	out.final = container.NewSet[State](fresh)
	return out
}
