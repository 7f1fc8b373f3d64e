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
	"regexp"
	"testing"

	"github.com/tmokenc/mata/internal/container"
	"github.com/tmokenc/mata/nfa"
)

// epsTestValue is a symbol that never collides with a rune value or a
// reserved assertion symbol, used only by the with-epsilon tests below.
const epsTestValue nfa.Symbol = -1

func acceptsEpsAware(a *nfa.NFA, word []nfa.Symbol) bool {
	cur := epsilonClosure(a, a.Initial())
	for _, sym := range word {
		next := container.NewSet[nfa.State]()
		for s := range cur {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				continue
			}
			for t := range trans[sym] {
				next.Insert(t)
			}
		}
		cur = epsilonClosure(a, next)
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

func epsilonClosure(a *nfa.NFA, start container.Set[nfa.State]) container.Set[nfa.State] {
	out := start.Clone()
	queue := container.SortedKeys(start)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		trans, err := a.GetTransitionsFromState(s)
		if err != nil {
			continue
		}
		for t := range trans[epsTestValue] {
			if !out.Contains(t) {
				out.Insert(t)
				queue = append(queue, t)
			}
		}
	}
	return out
}

func accepts(a *nfa.NFA, word []nfa.Symbol) bool {
	cur := a.Initial()
	for _, sym := range word {
		next := container.NewSet[nfa.State]()
		for s := range cur {
			trans, err := a.GetTransitionsFromState(s)
			if err != nil {
				continue
			}
			for t := range trans[sym] {
				next.Insert(t)
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

func toSymbols(s string) []nfa.Symbol {
	out := make([]nfa.Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, nfa.Symbol(r))
	}
	return out
}

// enumerate yields every string over alphabet of length <= maxLen.
func enumerate(alphabet string, maxLen int) []string {
	var out []string
	var rec func(prefix string, depth int)
	rec = func(prefix string, depth int) {
		out = append(out, prefix)
		if depth == maxLen {
			return
		}
		for _, c := range alphabet {
			rec(prefix+string(c), depth+1)
		}
	}
	rec("", 0)
	return out
}

// regexRoundTrip checks that CreateNFAFromRegex(pattern) accepts exactly
// the strings Go's own regexp package matches, over every string in
// alphabet up to length maxLen.
func regexRoundTrip(t *testing.T, pattern, alphabet string, maxLen int, useEpsilon bool) {
	t.Helper()
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		t.Fatalf("oracle regexp failed to compile %q: %s", pattern, err)
	}
	a, err := CreateNFAFromRegex(pattern, useEpsilon, epsTestValue)
	if err != nil {
		t.Fatalf("CreateNFAFromRegex(%q): %s", pattern, err)
	}
	for _, w := range enumerate(alphabet, maxLen) {
		want := re.MatchString(w)
		var got bool
		if useEpsilon {
			got = acceptsEpsAware(a, toSymbols(w))
		} else {
			got = accepts(a, toSymbols(w))
		}
		if got != want {
			t.Fatalf("pattern %q, word %q: want accept=%v, got %v", pattern, w, want, got)
		}
	}
}

func TestRegexRoundTripWithEpsilon(t *testing.T) {
	patterns := []string{"a", "ab", "a*", "a|b", "a(b|c)*d", "(ab)*", "a?b+"}
	for _, p := range patterns {
		regexRoundTrip(t, p, "abcd", 6, true)
	}
}

func TestRegexRoundTripWithoutEpsilon(t *testing.T) {
	patterns := []string{"a", "ab", "a*", "a|b", "a(b|c)*d", "(ab)*", "a?b+"}
	for _, p := range patterns {
		regexRoundTrip(t, p, "abcd", 6, false)
	}
}

// E5: regex a(b|c)*d, use_epsilon=false, accepts exactly a(b|c)*d on an
// enumeration up to length 6.
func TestE5Scenario(t *testing.T) {
	regexRoundTrip(t, "a(b|c)*d", "abcd", 6, false)
}

func TestRegexParseErrorIsReported(t *testing.T) {
	_, err := CreateNFAFromRegex("a(", false, 0)
	if err == nil {
		t.Fatalf("expected an error for an unbalanced paren")
	}
	if _, ok := err.(*ErrRegexParse); !ok {
		t.Fatalf("expected *ErrRegexParse, got %T: %v", err, err)
	}
}

func TestAnyRuneIsUnsupported(t *testing.T) {
	if _, err := CreateNFAFromRegex("a.b", false, 0); err == nil {
		t.Fatalf("expected an error for an any-rune construct")
	}
}

// Reserved empty-width assertions are emitted as transitions on the
// documented symbol constants, not interpreted.
func TestReservedEmptyWidthSymbols(t *testing.T) {
	a, err := CreateNFAFromRegex(`\bfoo\b`, true, epsTestValue)
	if err != nil {
		t.Fatalf("CreateNFAFromRegex: %s", err)
	}
	var sawWordBoundary bool
	for _, tr := range a.AllTrans() {
		if tr.Symbol == SymWordBoundary {
			sawWordBoundary = true
		}
	}
	if !sawWordBoundary {
		t.Fatalf(`expected a transition on SymWordBoundary for \b, got %v`, a.AllTrans())
	}
}

func TestStateSpaceIsDenseAfterCompaction(t *testing.T) {
	a, err := CreateNFAFromRegex("a(b|c)*d", false, 0)
	if err != nil {
		t.Fatalf("CreateNFAFromRegex: %s", err)
	}
	for _, tr := range a.AllTrans() {
		if int(tr.Src) >= a.NumStates() || int(tr.Tgt) >= a.NumStates() {
			t.Fatalf("transition %v references a state outside [0,%d)", tr, a.NumStates())
		}
	}
}
