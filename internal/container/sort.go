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

package container

import "golang.org/x/exp/slices"

// SortedKeys returns a set's elements sorted ascending; used wherever a
// component's contract requires a stable, deterministic iteration order
// (transition listing, trim, unify, canonical hashing, alphabet symbols).
func SortedKeys[T ~int | ~int32](s Set[T]) []T {
	out := s.ToSlice()
	slices.Sort(out)
	return out
}

// SortInts sorts a slice of ints ascending in place.
func SortInts[T ~int | ~int32](s []T) {
	slices.Sort(s)
}
