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

// Package nfa implements the NFA data model and its primitive edits
// (add_new_state, add_trans, make_initial, make_final), the structural
// operations trim/revert/reduce/is_lang_empty, and the two epsilon-aware
// compositions concatenate_over_epsilon and intersection_over_epsilon that
// feed the noodlification pipeline.
package nfa

import "fmt"

// State is a dense state identifier in [0, n) for the NFA it belongs to.
type State int32

// Symbol is a bounded integer label on a transition. Which value denotes
// epsilon is a property of the caller's Alphabet, not of this package.
type Symbol int32

// Trans is a single (src, symbol, tgt) transition, a hashable value type.
type Trans struct {
	Src    State
	Symbol Symbol
	Tgt    State
}

func (t Trans) String() string {
	return fmt.Sprintf("%d -%d-> %d", t.Src, t.Symbol, t.Tgt)
}

// ErrInvalidState is returned when an operation observes a state id
// outside [0, n) for the NFA it was given.
type ErrInvalidState struct {
	State State
	NumStates int
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("nfa: invalid state %d (have %d states)", e.State, e.NumStates)
}
