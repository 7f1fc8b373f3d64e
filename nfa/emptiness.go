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

// IsLangEmpty reports whether no final state is reachable from any
// initial state. Pure reachability; a symbol that happens to be some
// alphabet's epsilon is treated like any other symbol here.
func (a *NFA) IsLangEmpty() bool {
	reachable := bfsReachable(len(a.delta), a.initial, func(s State) []State {
		var out []State
		for _, targets := range a.delta[s] {
			for t := range targets {
				out = append(out, t)
			}
		}
		return out
	})
	for s := range reachable {
		if a.final.Contains(s) {
			return false
		}
	}
	return true
}
