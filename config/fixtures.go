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

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"sigs.k8s.io/yaml"

	"github.com/tmokenc/mata/nfa"
	"github.com/tmokenc/mata/noodle"
	"github.com/tmokenc/mata/reparse"
)

// EquationFixture is one word equation expressed as regex literals,
// suitable for a test corpus or a noodlification benchmark.
type EquationFixture struct {
	Name         string            `json:"name"`
	LHS          []string          `json:"lhs"`
	RHS          string            `json:"rhs"`
	IncludeEmpty bool              `json:"includeEmpty"`
	Params       map[string]string `json:"params,omitempty"`
}

// FixtureSet is a named corpus of EquationFixture, the unit LoadFixtures
// decodes and SaveFixtures persists.
type FixtureSet struct {
	Fixtures []EquationFixture `json:"fixtures"`
}

// Build compiles f's regex literals into the NFAs NoodlifyForEquation
// expects. Each operand is compiled without epsilon transitions: the
// equation pipeline manages its own epsilon value internally, so operand
// automata should carry none of their own.
func (f EquationFixture) Build() (lhs []*nfa.NFA, rhs *nfa.NFA, err error) {
	lhs = make([]*nfa.NFA, len(f.LHS))
	for i, pattern := range f.LHS {
		a, err := reparse.CreateNFAFromRegex(pattern, false, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("config: fixture %q: LHS[%d]: %w", f.Name, i, err)
		}
		lhs[i] = a
	}
	rhs, err = reparse.CreateNFAFromRegex(f.RHS, false, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("config: fixture %q: RHS: %w", f.Name, err)
	}
	return lhs, rhs, nil
}

// Run compiles and solves f, returning the NoodleSequence NoodlifyForEquation
// produces for it.
func (f EquationFixture) Run() (noodle.NoodleSequence, error) {
	lhs, rhs, err := f.Build()
	if err != nil {
		return nil, err
	}
	return noodle.NoodlifyForEquation(lhs, rhs, f.IncludeEmpty, noodle.Params(f.Params)), nil
}

// LoadFixtures decodes a YAML fixture corpus, transparently gunzipping it
// first if it is gzip-compressed (SaveFixtures produces that for large
// corpora).
func LoadFixtures(data []byte) (*FixtureSet, error) {
	if isGzip(data) {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("config: opening gzip fixture corpus: %w", err)
		}
		defer r.Close()
		plain, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("config: reading gzip fixture corpus: %w", err)
		}
		data = plain
	}
	var fs FixtureSet
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("config: decoding fixture corpus: %w", err)
	}
	return &fs, nil
}

// SaveFixtures writes fs to filename as YAML, gzip-compressing the output
// once the corpus grows large enough that plain text becomes unwieldy on
// disk, matching the threshold convention used by nfa.Graphviz.WriteToFile.
func SaveFixtures(filename string, fs *FixtureSet) error {
	data, err := yaml.Marshal(fs)
	if err != nil {
		return fmt.Errorf("config: encoding fixture corpus: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(fs.Fixtures) < 200 {
		_, err := f.Write(data)
		return err
	}

	gz := gzip.NewWriter(f)
	defer gz.Close()
	_, err = gz.Write(data)
	return err
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
