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

func (a *NFA) reverseEdges() [][]Trans {
	rev := make([][]Trans, len(a.delta))
	for _, t := range a.AllTrans() {
		rev[t.Tgt] = append(rev[t.Tgt], t)
	}
	return rev
}

// bfsReachable explores next from start, using a BitSet for the O(1)
// dense visited check the traversal does on every edge, and collecting
// the result into a Set[State] since callers index it by State value
// rather than walk it in id order.
func bfsReachable(n int, start container.Set[State], next func(State) []State) container.Set[State] {
	visited := container.NewBitSet()
	seen := container.NewSet[State]()
	var queue []State
	for _, s := range container.SortedKeys(start) {
		visited.Insert(int(s))
		seen.Insert(s)
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range next(s) {
			if !visited.Contains(int(t)) {
				visited.Insert(int(t))
				seen.Insert(t)
				queue = append(queue, t)
			}
		}
	}
	return seen
}

// Trim removes states that are not reachable from I or not co-reachable
// to F, and renumbers the remaining states to [0, n'). Preserves language.
func (a *NFA) Trim() *NFA {
	rev := a.reverseEdges()

	reachable := bfsReachable(len(a.delta), a.initial, func(s State) []State {
		var out []State
		for _, targets := range a.delta[s] {
			out = append(out, container.SortedKeys(targets)...)
		}
		return out
	})
	coReachable := bfsReachable(len(a.delta), a.final, func(s State) []State {
		var out []State
		for _, t := range rev[s] {
			out = append(out, t.Src)
		}
		return out
	})

	keep := container.NewSet[State]()
	for s := range reachable {
		if coReachable.Contains(s) {
			keep.Insert(s)
		}
	}

	renumber := make(map[State]State, keep.Len())
	for _, s := range container.SortedKeys(keep) {
		renumber[s] = State(len(renumber))
	}

	out := New()
	for range renumber {
		out.AddState()
	}
	for _, s := range container.SortedKeys(a.initial) {
		if ns, ok := renumber[s]; ok {
			out.MakeInitial(ns)
		}
	}
	for _, s := range container.SortedKeys(a.final) {
		if ns, ok := renumber[s]; ok {
			out.MakeFinal(ns)
		}
	}
	for _, t := range a.AllTrans() {
		ns, okS := renumber[t.Src]
		nt, okT := renumber[t.Tgt]
		if okS && okT {
			out.AddTrans(ns, t.Symbol, nt)
		}
	}
	return out
}
