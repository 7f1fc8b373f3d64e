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

// NFA is the tuple (n, I, F, delta) from the data model: n states dense
// over [0,n), a set of initial states, a set of final states, and a
// transition relation state -> symbol -> set of states.
//
// The zero value is not usable; construct with New.
type NFA struct {
	delta   []map[Symbol]container.Set[State]
	initial container.Set[State]
	final   container.Set[State]
}

// New returns an empty NFA (no states, no transitions).
func New() *NFA {
	return &NFA{
		initial: container.NewSet[State](),
		final:   container.NewSet[State](),
	}
}

// NumStates returns n, the number of states.
func (a *NFA) NumStates() int {
	return len(a.delta)
}

func (a *NFA) validState(s State) bool {
	return s >= 0 && int(s) < len(a.delta)
}

func (a *NFA) checkState(s State) error {
	if !a.validState(s) {
		return &ErrInvalidState{State: s, NumStates: len(a.delta)}
	}
	return nil
}

// AddState allocates a fresh state and returns its id. n is incremented.
func (a *NFA) AddState() State {
	a.delta = append(a.delta, nil)
	return State(len(a.delta) - 1)
}

// AddTrans inserts (s, sym, t) into delta. Idempotent.
func (a *NFA) AddTrans(s State, sym Symbol, t State) error {
	if err := a.checkState(s); err != nil {
		return err
	}
	if err := a.checkState(t); err != nil {
		return err
	}
	if a.delta[s] == nil {
		a.delta[s] = make(map[Symbol]container.Set[State])
	}
	targets, ok := a.delta[s][sym]
	if !ok {
		targets = container.NewSet[State]()
		a.delta[s][sym] = targets
	}
	targets.Insert(t)
	return nil
}

// MakeInitial adds s to I. Idempotent.
func (a *NFA) MakeInitial(s State) error {
	if err := a.checkState(s); err != nil {
		return err
	}
	a.initial.Insert(s)
	return nil
}

// MakeFinal adds s to F. Idempotent.
func (a *NFA) MakeFinal(s State) error {
	if err := a.checkState(s); err != nil {
		return err
	}
	a.final.Insert(s)
	return nil
}

// Initial returns a copy of I.
func (a *NFA) Initial() container.Set[State] {
	return a.initial.Clone()
}

// Final returns a copy of F.
func (a *NFA) Final() container.Set[State] {
	return a.final.Clone()
}

func (a *NFA) IsInitial(s State) bool { return a.initial.Contains(s) }
func (a *NFA) IsFinal(s State) bool   { return a.final.Contains(s) }

// GetTransitionsFromState returns a snapshot of outgoing transitions from
// s grouped by symbol. The map and its target sets are caller-owned
// copies; mutating them does not affect a.
func (a *NFA) GetTransitionsFromState(s State) (map[Symbol]container.Set[State], error) {
	if err := a.checkState(s); err != nil {
		return nil, err
	}
	out := make(map[Symbol]container.Set[State], len(a.delta[s]))
	for sym, targets := range a.delta[s] {
		out[sym] = targets.Clone()
	}
	return out, nil
}

// AllTrans returns every transition in the NFA, in an unspecified but
// deterministic (sorted) order, used by canonical hashing and by the
// Graphviz dump.
func (a *NFA) AllTrans() []Trans {
	var out []Trans
	for s := 0; s < len(a.delta); s++ {
		syms := make([]Symbol, 0, len(a.delta[s]))
		for sym := range a.delta[s] {
			syms = append(syms, sym)
		}
		container.SortInts(syms)
		for _, sym := range syms {
			for _, t := range container.SortedKeys(a.delta[s][sym]) {
				out = append(out, Trans{Src: State(s), Symbol: sym, Tgt: t})
			}
		}
	}
	return out
}

// Restrict returns a copy of a with I and F replaced by initial and
// final (the transition relation and state count are unchanged). Used
// by segmentation/noodlification to pick a single initial/final state
// out of a segment's full initial/final set before trimming.
func (a *NFA) Restrict(initial, final container.Set[State]) *NFA {
	out := a.Clone()
	out.initial = initial.Clone()
	out.final = final.Clone()
	return out
}

// Clone returns a deep copy of a.
func (a *NFA) Clone() *NFA {
	out := &NFA{
		delta:   make([]map[Symbol]container.Set[State], len(a.delta)),
		initial: a.initial.Clone(),
		final:   a.final.Clone(),
	}
	for i, m := range a.delta {
		if m == nil {
			continue
		}
		nm := make(map[Symbol]container.Set[State], len(m))
		for sym, targets := range m {
			nm[sym] = targets.Clone()
		}
		out.delta[i] = nm
	}
	return out
}
