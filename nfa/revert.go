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

// Revert returns an NFA with I and F swapped and every transition
// reversed. Reverting twice yields an NFA language-equivalent to a.
func (a *NFA) Revert() *NFA {
	out := New()
	for i := 0; i < len(a.delta); i++ {
		out.AddState()
	}
	for s := range a.initial {
		out.MakeFinal(s)
	}
	for s := range a.final {
		out.MakeInitial(s)
	}
	for _, t := range a.AllTrans() {
		out.AddTrans(t.Tgt, t.Symbol, t.Src)
	}
	return out
}
