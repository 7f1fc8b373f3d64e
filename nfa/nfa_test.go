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

import "testing"

func TestAddStateAndTrans(t *testing.T) {
	a := New()
	s0 := a.AddState()
	s1 := a.AddState()
	if a.NumStates() != 2 {
		t.Fatalf("expected 2 states, got %d", a.NumStates())
	}
	if err := a.AddTrans(s0, 1, s1); err != nil {
		t.Fatalf("AddTrans: %v", err)
	}
	// idempotent
	if err := a.AddTrans(s0, 1, s1); err != nil {
		t.Fatalf("AddTrans (repeat): %v", err)
	}
	trans, err := a.GetTransitionsFromState(s0)
	if err != nil {
		t.Fatalf("GetTransitionsFromState: %v", err)
	}
	if targets, ok := trans[1]; !ok || targets.Len() != 1 || !targets.Contains(s1) {
		t.Fatalf("unexpected transitions: %v", trans)
	}
}

func TestAddTransInvalidState(t *testing.T) {
	a := New()
	s0 := a.AddState()
	if err := a.AddTrans(s0, 0, State(99)); err == nil {
		t.Fatalf("expected ErrInvalidState")
	}
	if err := a.MakeInitial(State(99)); err == nil {
		t.Fatalf("expected ErrInvalidState")
	}
	if err := a.MakeFinal(State(-1)); err == nil {
		t.Fatalf("expected ErrInvalidState")
	}
}

func TestMakeInitialFinalIdempotent(t *testing.T) {
	a := New()
	s0 := a.AddState()
	a.MakeInitial(s0)
	a.MakeInitial(s0)
	a.MakeFinal(s0)
	a.MakeFinal(s0)
	if a.Initial().Len() != 1 || a.Final().Len() != 1 {
		t.Fatalf("expected idempotent membership insert")
	}
}

func TestGetTransitionsSnapshotIsACopy(t *testing.T) {
	a := New()
	s0 := a.AddState()
	s1 := a.AddState()
	a.AddTrans(s0, 1, s1)

	snap, _ := a.GetTransitionsFromState(s0)
	snap[1].Insert(State(42))

	fresh, _ := a.GetTransitionsFromState(s0)
	if fresh[1].Contains(State(42)) {
		t.Fatalf("mutating a snapshot affected the NFA")
	}
}
