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

// Map is a thin generic alias kept for parity with Set/Vector; callers
// mostly just use a plain Go map, but At documents the "must be present"
// lookups of the block-to-state map in nfa's reduce quotient.
type Map[K comparable, V any] map[K]V

func NewMap[K comparable, V any]() Map[K, V] {
	return make(Map[K, V])
}

// At panics if k is not present; used where the caller has already
// established the key must exist (an internal invariant, not user error).
func (m Map[K, V]) At(k K) V {
	v, present := m[k]
	if !present {
		panic("container: key not present in map")
	}
	return v
}

func (m Map[K, V]) ContainsKey(k K) bool {
	_, present := m[k]
	return present
}
