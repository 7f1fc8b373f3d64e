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

// epsilonClosure returns every state reachable from start using only eps
// transitions, eps included.
func epsilonClosure(a *NFA, start container.Set[State], eps Symbol) container.Set[State] {
	return bfsReachable(a.NumStates(), start, func(s State) []State {
		trans, err := a.GetTransitionsFromState(s)
		if err != nil {
			return nil
		}
		var out []State
		if targets, ok := trans[eps]; ok {
			for t := range targets {
				out = append(out, t)
			}
		}
		return out
	})
}

// acceptsEpsAware simulates a on word, treating eps as a free move that
// does not consume input, the "projected by treating eps as the empty
// word" reading used by the testable properties for C3.
func acceptsEpsAware(a *NFA, word []Symbol, eps Symbol) bool {
	cur := epsilonClosure(a, a.Initial(), eps)
	for _, sym := range word {
		next := container.NewSet[State]()
		for s := range cur {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				continue
			}
			if targets, ok := trans[sym]; ok {
				for t := range targets {
					next.Insert(t)
				}
			}
		}
		cur = epsilonClosure(a, next, eps)
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// accepts simulates a on word with no epsilon symbol at all (ordinary
// NFA acceptance), used for plain language tests (trim, revert, reduce).
func accepts(a *NFA, word []Symbol) bool {
	cur := a.Initial()
	for _, sym := range word {
		next := container.NewSet[State]()
		for s := range cur {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				continue
			}
			if targets, ok := trans[sym]; ok {
				for t := range targets {
					next.Insert(t)
				}
			}
		}
		cur = next
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// literal builds an NFA accepting exactly the one word given (over plain,
// eps-free transitions), for use as a small test fixture.
func literal(word ...Symbol) *NFA {
	a := New()
	s := a.AddState()
	a.MakeInitial(s)
	cur := s
	for _, sym := range word {
		next := a.AddState()
		a.AddTrans(cur, sym, next)
		cur = next
	}
	a.MakeFinal(cur)
	return a
}

// star builds an NFA accepting sym*.
func star(sym Symbol) *NFA {
	a := New()
	s := a.AddState()
	a.MakeInitial(s)
	a.MakeFinal(s)
	a.AddTrans(s, sym, s)
	return a
}

// altOf builds an NFA accepting the union of the given single symbols.
func altOf(syms ...Symbol) *NFA {
	a := New()
	s := a.AddState()
	f := a.AddState()
	a.MakeInitial(s)
	a.MakeFinal(f)
	for _, sym := range syms {
		a.AddTrans(s, sym, f)
	}
	return a
}
