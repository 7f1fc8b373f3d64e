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

// compileWithoutEpsilon collapses every Nop/Capture/Alt/AltMatch
// instruction into the epsilon closure of the "terminal" (Rune-like,
// EmptyWidth, or Match) instructions it eventually reaches, following
// multi-successor Alt/AltMatch branches as well as the linear
// Nop/Capture chains.
//
// It builds one NFA state per program counter unconditionally and
// relies on Trim to discard whatever the closure computation never
// wires up, rather than tracking incoming-edge counts to avoid creating
// dead states up front: every syntax.Inst already names its successors
// explicitly, so there is no implicit fallthrough edge to reason about
// or defer.
func compileWithoutEpsilon(prog *syntax.Prog) *nfa.NFA {
	closures := make([][]uint32, len(prog.Inst))
	for pc := range prog.Inst {
		closures[pc] = closureOf(prog, uint32(pc))
	}

	a := nfa.New()
	for range prog.Inst {
		a.AddState()
	}
	for _, pc := range closures[prog.Start] {
		a.MakeInitial(nfa.State(pc))
	}

	for pc := range prog.Inst {
		inst := &prog.Inst[pc]
		if !isTerminal(inst.Op) {
			continue
		}
		src := nfa.State(pc)
		switch inst.Op {
		case syntax.InstMatch:
			a.MakeFinal(src)
		case syntax.InstRune, syntax.InstRune1:
			for _, tgt := range closures[inst.Out] {
				for _, r := range runeRanges(inst) {
					for sym := r[0]; sym <= r[1]; sym++ {
						a.AddTrans(src, nfa.Symbol(sym), nfa.State(tgt))
					}
				}
			}
		case syntax.InstEmptyWidth:
			for _, tgt := range closures[inst.Out] {
				for _, e := range emptyOpSymbols {
					if syntax.EmptyOp(inst.Arg)&e.op != 0 {
						a.AddTrans(src, e.sym, nfa.State(tgt))
					}
				}
			}
		}
	}
	return a.Trim()
}

// closureOf returns the terminal program counters reachable from pc by
// following only epsilon-only (Alt/AltMatch/Capture/Nop) instructions.
// If pc is itself terminal, its closure is just {pc}.
func closureOf(prog *syntax.Prog, pc uint32) []uint32 {
	inst := &prog.Inst[pc]
	if isTerminal(inst.Op) {
		return []uint32{pc}
	}
	if !isEpsOnly(inst.Op) {
		return nil // InstFail: dead end, contributes nothing
	}

	var out []uint32
	seen := map[uint32]bool{pc: true}
	queue := epsSuccessors(inst)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		next := &prog.Inst[cur]
		switch {
		case isTerminal(next.Op):
			out = append(out, cur)
		case isEpsOnly(next.Op):
			queue = append(queue, epsSuccessors(next)...)
		}
	}
	return out
}
