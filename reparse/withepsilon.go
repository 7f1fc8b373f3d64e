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

package reparse

import (
	"regexp/syntax"

	"github.com/tmokenc/mata/nfa"
)

// compileWithEpsilon maps every program counter to exactly one NFA
// state. Nop/Capture/Alt/AltMatch instructions emit epsilon edges to
// each of their successors; ByteRange-equivalent (Rune/Rune1)
// instructions emit one transition per symbol in their range;
// EmptyWidth instructions emit transitions on the reserved assertion
// symbols. There is no "last"-implicit edge to pc+1 to emit: unlike the
// bytecode model this is adapted from, syntax.Prog instructions always
// name every real successor explicitly via Out/Arg, so nothing is
// deferred to instruction adjacency.
func compileWithEpsilon(prog *syntax.Prog, eps nfa.Symbol) *nfa.NFA {
	a := nfa.New()
	for range prog.Inst {
		a.AddState()
	}
	a.MakeInitial(nfa.State(prog.Start))

	for pc := range prog.Inst {
		inst := &prog.Inst[pc]
		src := nfa.State(pc)
		switch {
		case inst.Op == syntax.InstMatch:
			a.MakeFinal(src)
		case isEpsOnly(inst.Op):
			for _, out := range epsSuccessors(inst) {
				a.AddTrans(src, eps, nfa.State(out))
			}
		case inst.Op == syntax.InstRune, inst.Op == syntax.InstRune1:
			for _, r := range runeRanges(inst) {
				for sym := r[0]; sym <= r[1]; sym++ {
					a.AddTrans(src, nfa.Symbol(sym), nfa.State(inst.Out))
				}
			}
		case inst.Op == syntax.InstEmptyWidth:
			for _, e := range emptyOpSymbols {
				if syntax.EmptyOp(inst.Arg)&e.op != 0 {
					a.AddTrans(src, e.sym, nfa.State(inst.Out))
				}
			}
		}
	}
	return a.Trim()
}
