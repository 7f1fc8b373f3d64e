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

// Package reparse compiles a regular expression into an nfa.NFA, with or
// without epsilon transitions, by walking the compiled bytecode program
// from the standard library's regexp/syntax package rather than a
// hand-rolled parser.
package reparse

import (
	"fmt"
	"regexp/syntax"

	"github.com/tmokenc/mata/nfa"
)

// ErrRegexParse wraps the underlying regexp/syntax error when a pattern
// does not parse or compile.
type ErrRegexParse struct {
	Pattern string
	Err     error
}

func (e *ErrRegexParse) Error() string {
	return fmt.Sprintf("reparse: %q: %s", e.Pattern, e.Err)
}

func (e *ErrRegexParse) Unwrap() error { return e.Err }

// errAnyRune is returned (wrapped in ErrRegexParse) when a pattern uses
// "." or an equivalent any-rune construct. This package's symbol model is
// a bounded, explicitly-declared alphabet; there is no value it could
// emit for "every other symbol in some unbounded alphabet".
var errAnyRune = fmt.Errorf("reparse: %q construct has no representation in a bounded symbol alphabet; spell out the intended symbols with an explicit class", ".")

// Reserved empty-width assertion symbols. CreateNFAFromRegex emits
// transitions on these symbols for EmptyWidth instructions; nothing
// downstream gives them positional semantics.
const (
	SymBeginLine      nfa.Symbol = 300 // ^
	SymEndLine        nfa.Symbol = 10  // $
	SymBeginText      nfa.Symbol = 301 // \A
	SymEndText        nfa.Symbol = 302 // \z
	SymWordBoundary   nfa.Symbol = 303 // \b
	SymNoWordBoundary nfa.Symbol = 304 // \B
)

var emptyOpSymbols = []struct {
	op  syntax.EmptyOp
	sym nfa.Symbol
}{
	{syntax.EmptyBeginLine, SymBeginLine},
	{syntax.EmptyEndLine, SymEndLine},
	{syntax.EmptyBeginText, SymBeginText},
	{syntax.EmptyEndText, SymEndText},
	{syntax.EmptyWordBoundary, SymWordBoundary},
	{syntax.EmptyNoWordBoundary, SymNoWordBoundary},
}

// CreateNFAFromRegex compiles pattern into an NFA. useEpsilon selects
// between the two modes: with epsilon transitions, one state per program
// counter and an explicit epsilon edge per Nop/Capture/Alt branch; or
// without, where those states are collapsed via their epsilon closure and
// only ByteRange/EmptyWidth/Match states survive. eps is the symbol used
// to represent epsilon in the with-epsilon mode; it is unused when
// useEpsilon is false.
func CreateNFAFromRegex(pattern string, useEpsilon bool, eps nfa.Symbol) (*nfa.NFA, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &ErrRegexParse{Pattern: pattern, Err: err}
	}
	prog, err := syntax.Compile(re)
	if err != nil {
		return nil, &ErrRegexParse{Pattern: pattern, Err: err}
	}
	if err := checkSupported(prog); err != nil {
		return nil, &ErrRegexParse{Pattern: pattern, Err: err}
	}
	if useEpsilon {
		return compileWithEpsilon(prog, eps), nil
	}
	return compileWithoutEpsilon(prog), nil
}

func checkSupported(prog *syntax.Prog) error {
	for _, inst := range prog.Inst {
		switch inst.Op {
		case syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
			return errAnyRune
		}
	}
	return nil
}

// runeRanges returns the (lo, hi) rune pairs an InstRune/InstRune1
// instruction matches, trusting the compiled program's Rune slice to
// already be sorted and paired as regexp/syntax documents.
func runeRanges(inst *syntax.Inst) [][2]rune {
	switch inst.Op {
	case syntax.InstRune1:
		return [][2]rune{{inst.Rune[0], inst.Rune[0]}}
	case syntax.InstRune:
		var out [][2]rune
		for i := 0; i+1 < len(inst.Rune); i += 2 {
			out = append(out, [2]rune{inst.Rune[i], inst.Rune[i+1]})
		}
		return out
	default:
		return nil
	}
}

// isTerminal reports whether an instruction consumes a symbol (or ends
// the match), as opposed to being a pure epsilon passthrough.
func isTerminal(op syntax.InstOp) bool {
	switch op {
	case syntax.InstRune, syntax.InstRune1, syntax.InstEmptyWidth, syntax.InstMatch:
		return true
	}
	return false
}

// isEpsOnly reports whether an instruction's only role is to route
// control to one or more successors without consuming anything.
func isEpsOnly(op syntax.InstOp) bool {
	switch op {
	case syntax.InstAlt, syntax.InstAltMatch, syntax.InstCapture, syntax.InstNop:
		return true
	}
	return false
}

// epsSuccessors returns the epsilon-only successors of an InstAlt,
// InstAltMatch, InstCapture, or InstNop instruction.
func epsSuccessors(inst *syntax.Inst) []uint32 {
	switch inst.Op {
	case syntax.InstAlt, syntax.InstAltMatch:
		return []uint32{inst.Out, inst.Arg}
	case syntax.InstCapture, syntax.InstNop:
		return []uint32{inst.Out}
	}
	return nil
}
