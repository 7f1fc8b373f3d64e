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

// Package noodle implements segmentation (decomposing an NFA with
// epsilon transitions into ordered epsilon-free segments) and
// noodlification (enumerating segment/epsilon-transition assignments to
// solve word equations expressed as NFAs).
package noodle

import (
	"sort"

	"github.com/tmokenc/mata/internal/container"
	"github.com/tmokenc/mata/nfa"
)

// Segmentation is the result of decomposing an NFA along its epsilon
// transitions: an ordered list of epsilon-free segments plus the
// epsilon transitions at each depth. Segments keep the state-id space of
// the input NFA (they are not renumbered) so that noodlify can use the
// original epsilon-transition endpoints as memo keys directly.
type Segmentation struct {
	Segments      []*nfa.NFA
	EpsilonDepths [][]nfa.Trans
}

// Segment decomposes a along the transitions labeled eps. eps must occur
// in a only on edges with no cycles among them (guaranteed for the
// output of ConcatenateOverEpsilon on a linear sequence of NFAs). This
// function does not check for epsilon cycles: each edge is placed at the
// shortest eps-hop depth of its source, and it panics only when an eps
// edge's source is unreachable from I.
func Segment(a *nfa.NFA, eps nfa.Symbol) *Segmentation {
	depthOf := epsilonHopDistances(a, eps)

	var epsEdges []nfa.Trans
	for _, t := range a.AllTrans() {
		if t.Symbol == eps {
			epsEdges = append(epsEdges, t)
		}
	}

	maxDepth := -1
	depthsByEdge := make([]int, len(epsEdges))
	for i, e := range epsEdges {
		d, ok := depthOf[e.Src]
		if !ok {
			panic("noodlify: epsilon edge source unreachable from any initial state via epsilon edges, epsilon graph is malformed")
		}
		depthsByEdge[i] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	numSegments := maxDepth + 2 // maxDepth==-1 (no eps edges) -> 1 segment
	epsilonDepths := make([][]nfa.Trans, maxDepth+1)
	for i, e := range epsEdges {
		d := depthsByEdge[i]
		epsilonDepths[d] = append(epsilonDepths[d], e)
	}
	for d := range epsilonDepths {
		sort.Slice(epsilonDepths[d], func(i, j int) bool {
			if epsilonDepths[d][i].Src != epsilonDepths[d][j].Src {
				return epsilonDepths[d][i].Src < epsilonDepths[d][j].Src
			}
			return epsilonDepths[d][i].Tgt < epsilonDepths[d][j].Tgt
		})
	}

	segments := make([]*nfa.NFA, numSegments)
	for i := 0; i < numSegments; i++ {
		var initSet, finalSet container.Set[nfa.State]
		if i == 0 {
			initSet = a.Initial()
		} else {
			initSet = epsilonTargets(epsilonDepths[i-1])
		}
		if i == numSegments-1 {
			finalSet = a.Final()
		} else {
			finalSet = epsilonSources(epsilonDepths[i])
		}
		segments[i] = buildSegment(a, eps, initSet, finalSet)
	}

	return &Segmentation{Segments: segments, EpsilonDepths: epsilonDepths}
}

func epsilonTargets(edges []nfa.Trans) container.Set[nfa.State] {
	s := container.NewSet[nfa.State]()
	for _, e := range edges {
		s.Insert(e.Tgt)
	}
	return s
}

func epsilonSources(edges []nfa.Trans) container.Set[nfa.State] {
	s := container.NewSet[nfa.State]()
	for _, e := range edges {
		s.Insert(e.Src)
	}
	return s
}

// epsilonHopDistances returns, for every state reachable from I, the
// number of eps edges on a shortest path to it that counts only eps
// hops (ordinary symbol edges are free). Segments are eps-acyclic, so
// every state sits at a single well-defined depth: the non-eps-closure
// of I is depth 0, the non-eps-closure of whatever lies one eps-hop
// beyond that is depth 1, and so on.
func epsilonHopDistances(a *nfa.NFA, eps nfa.Symbol) map[nfa.State]int {
	dist := make(map[nfa.State]int)
	forward := nonEpsAdjacency(a, eps, false)
	n := a.NumStates()

	frontier := bfs(n, a.Initial(), forward)
	for s := range frontier {
		dist[s] = 0
	}

	for depth := 1; frontier.Len() > 0; depth++ {
		next := container.NewSet[nfa.State]()
		for s := range frontier {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				continue
			}
			for t := range trans[eps] {
				if _, seen := dist[t]; !seen {
					next.Insert(t)
				}
			}
		}
		if next.Len() == 0 {
			break
		}
		next = bfs(n, next, forward)
		for s := range next {
			if _, seen := dist[s]; !seen {
				dist[s] = depth
			}
		}
		frontier = next
	}
	return dist
}

// buildSegment copies a's non-epsilon transitions restricted to states
// both reachable from initSet and co-reachable to finalSet (via
// non-epsilon edges), keeping a's state-id space unchanged.
func buildSegment(a *nfa.NFA, eps nfa.Symbol, initSet, finalSet container.Set[nfa.State]) *nfa.NFA {
	n := a.NumStates()
	forward := nonEpsAdjacency(a, eps, false)
	backward := nonEpsAdjacency(a, eps, true)

	reachable := bfs(n, initSet, forward)
	coReachable := bfs(n, finalSet, backward)

	keep := container.NewSet[nfa.State]()
	for s := range reachable {
		if coReachable.Contains(s) {
			keep.Insert(s)
		}
	}

	out := nfa.New()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	for s := range initSet {
		out.MakeInitial(s)
	}
	for s := range finalSet {
		out.MakeFinal(s)
	}
	for _, t := range a.AllTrans() {
		if t.Symbol == eps {
			continue
		}
		if keep.Contains(t.Src) && keep.Contains(t.Tgt) {
			out.AddTrans(t.Src, t.Symbol, t.Tgt)
		}
	}
	return out
}

func nonEpsAdjacency(a *nfa.NFA, eps nfa.Symbol, reverse bool) func(nfa.State) []nfa.State {
	if !reverse {
		return func(s nfa.State) []nfa.State {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				return nil
			}
			var out []nfa.State
			for sym, targets := range trans {
				if sym == eps {
					continue
				}
				for t := range targets {
					out = append(out, t)
				}
			}
			return out
		}
	}
	rev := make(map[nfa.State][]nfa.State)
	for _, t := range a.AllTrans() {
		if t.Symbol == eps {
			continue
		}
		rev[t.Tgt] = append(rev[t.Tgt], t.Src)
	}
	return func(s nfa.State) []nfa.State { return rev[s] }
}

// bfs explores next from start, using a BitSet for the dense visited
// check on every edge and collecting the result into a Set[nfa.State]
// for callers that index it by state value.
func bfs(n int, start container.Set[nfa.State], next func(nfa.State) []nfa.State) container.Set[nfa.State] {
	visited := container.NewBitSet()
	seen := container.NewSet[nfa.State]()
	var queue []nfa.State
	for s := range start {
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
