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

func TestCanonicalHashStableAcrossRebuilds(t *testing.T) {
	build := func() *NFA { return literal(1, 2, 3) }
	if build().CanonicalHash() != build().CanonicalHash() {
		t.Fatalf("two structurally identical NFAs hashed differently")
	}
}

func TestCanonicalHashDiffersOnDifferentLanguage(t *testing.T) {
	a := literal(1, 2, 3)
	b := literal(1, 2, 4)
	if a.CanonicalHash() == b.CanonicalHash() {
		t.Fatalf("expected different automata to hash differently")
	}
}
