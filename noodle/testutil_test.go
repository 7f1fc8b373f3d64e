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

package noodle

import "github.com/tmokenc/mata/nfa"

// literal builds an NFA accepting exactly the one word given.
func literal(word ...nfa.Symbol) *nfa.NFA {
	a := nfa.New()
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
func star(sym nfa.Symbol) *nfa.NFA {
	a := nfa.New()
	s := a.AddState()
	a.MakeInitial(s)
	a.MakeFinal(s)
	a.AddTrans(s, sym, s)
	return a
}

// altOf builds an NFA accepting the union of the given single symbols.
func altOf(syms ...nfa.Symbol) *nfa.NFA {
	a := nfa.New()
	s := a.AddState()
	f := a.AddState()
	a.MakeInitial(s)
	a.MakeFinal(f)
	for _, sym := range syms {
		a.AddTrans(s, sym, f)
	}
	return a
}

// setOf builds an NFA accepting exactly the given fixed-length words.
func setOf(words ...[]nfa.Symbol) *nfa.NFA {
	a := nfa.New()
	s0 := a.AddState()
	a.MakeInitial(s0)
	for _, w := range words {
		cur := s0
		for _, sym := range w {
			next := a.AddState()
			a.AddTrans(cur, sym, next)
			cur = next
		}
		a.MakeFinal(cur)
	}
	return a
}

// accepts simulates a on word with plain (epsilon-free) NFA semantics.
func accepts(a *nfa.NFA, word []nfa.Symbol) bool {
	cur := a.Initial()
	for _, sym := range word {
		next := map[nfa.State]struct{}{}
		for s := range cur {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				continue
			}
			if targets, ok := trans[sym]; ok {
				for t := range targets {
					next[t] = struct{}{}
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

// languageUpTo enumerates every word over alphabet syms of length <=
// maxLen accepted by a.
func languageUpTo(a *nfa.NFA, syms []nfa.Symbol, maxLen int) [][]nfa.Symbol {
	var out [][]nfa.Symbol
	var rec func(prefix []nfa.Symbol, depth int)
	rec = func(prefix []nfa.Symbol, depth int) {
		if accepts(a, prefix) {
			out = append(out, append([]nfa.Symbol{}, prefix...))
		}
		if depth == maxLen {
			return
		}
		for _, sym := range syms {
			rec(append(prefix, sym), depth+1)
		}
	}
	rec(nil, 0)
	return out
}
