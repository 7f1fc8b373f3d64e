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

// Package alphabet maintains an enumerable symbol space and hands out a
// fresh symbol distinct from every symbol in use, for use as epsilon by
// the epsilon-aware compositions in package nfa.
package alphabet

import (
	"errors"

	"github.com/tmokenc/mata/internal/container"
	"github.com/tmokenc/mata/nfa"
)

// ErrAlphabetExhausted is returned by GetNextValue when the symbol range
// is saturated. Implementations of Alphabet may treat this as
// unreachable for their domain.
var ErrAlphabetExhausted = errors.New("alphabet: exhausted")

// Alphabet is the contract both flavors below implement: GetNextValue
// returns a symbol not equal to any symbol previously returned by this
// alphabet and not present in any absorbed NFA.
type Alphabet interface {
	GetNextValue() (nfa.Symbol, error)
}

// OnTheFly is a mutable alphabet: AddSymbolsFrom absorbs every symbol
// occurring in an NFA, and GetNextValue returns the smallest integer not
// yet in the set, recording it as used.
type OnTheFly struct {
	used container.Set[nfa.Symbol]
	next nfa.Symbol
}

func NewOnTheFly() *OnTheFly {
	return &OnTheFly{used: container.NewSet[nfa.Symbol]()}
}

// AddSymbolsFrom absorbs every symbol occurring in a's transitions.
func (o *OnTheFly) AddSymbolsFrom(a *nfa.NFA) {
	for _, t := range a.AllTrans() {
		o.used.Insert(t.Symbol)
	}
}

// GetNextValue returns the smallest integer not yet in the absorbed or
// previously-returned symbol set.
func (o *OnTheFly) GetNextValue() (nfa.Symbol, error) {
	for o.used.Contains(o.next) {
		if o.next == maxSymbol {
			return 0, ErrAlphabetExhausted
		}
		o.next++
	}
	v := o.next
	o.used.Insert(v)
	if o.next != maxSymbol {
		o.next++
	}
	return v, nil
}

const maxSymbol = nfa.Symbol(1<<31 - 1)

// Enumerated is built once from a fixed set of NFAs: it scans every
// transition symbol up front and exposes them for iteration. Calling
// GetNextValue on it behaves the same as OnTheFly seeded with those
// symbols; AddSymbolsFrom can absorb further NFAs after construction.
type Enumerated struct {
	delegate *OnTheFly
	symbols  []nfa.Symbol
}

// FromNFAs scans every symbol occurring in any of auts and stores them
// in ascending order for iteration.
func FromNFAs(auts ...*nfa.NFA) *Enumerated {
	e := &Enumerated{delegate: NewOnTheFly()}
	for _, a := range auts {
		e.delegate.AddSymbolsFrom(a)
	}
	e.symbols = container.SortedKeys(e.delegate.used)
	return e
}

// AddSymbolsFrom absorbs every symbol occurring in a, matching the
// on-the-fly contract so Enumerated can also serve noodlify_for_equation
// when it needs to grow its absorbed set.
func (e *Enumerated) AddSymbolsFrom(a *nfa.NFA) {
	e.delegate.AddSymbolsFrom(a)
	e.symbols = container.SortedKeys(e.delegate.used)
}

// Symbols returns the absorbed symbols in ascending order.
func (e *Enumerated) Symbols() []nfa.Symbol {
	out := make([]nfa.Symbol, len(e.symbols))
	copy(out, e.symbols)
	return out
}

func (e *Enumerated) GetNextValue() (nfa.Symbol, error) {
	v, err := e.delegate.GetNextValue()
	if err != nil {
		return 0, err
	}
	e.symbols = container.SortedKeys(e.delegate.used)
	return v, nil
}
