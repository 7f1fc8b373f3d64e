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

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Graphviz accumulates DOT source for a's structure. Persisted state for
// this library is none; a DOT dump is throwaway visualization, not a
// round-trippable serialization.
type Graphviz struct {
	nodes []string
	edges []string
}

func nodeLabel(s State) string {
	return fmt.Sprintf("%d", s)
}

func (dot *Graphviz) addNode(s State, initial, final bool) {
	switch {
	case final && initial:
		dot.nodes = append(dot.nodes, fmt.Sprintf("\ts%s [shape=doubleoctagon];\n", nodeLabel(s)))
	case final:
		dot.nodes = append(dot.nodes, fmt.Sprintf("\ts%s [shape=doublecircle];\n", nodeLabel(s)))
	case initial:
		dot.nodes = append(dot.nodes, fmt.Sprintf("\ts%s [shape=octagon];\n", nodeLabel(s)))
	default:
		dot.nodes = append(dot.nodes, fmt.Sprintf("\ts%s [shape=ellipse];\n", nodeLabel(s)))
	}
}

func (dot *Graphviz) addEdge(from, to State, label string) {
	dot.edges = append(dot.edges, fmt.Sprintf("\ts%s -> s%s [label=\"%s\"];\n", nodeLabel(from), nodeLabel(to), label))
}

// Dot builds the Graphviz representation of a.
func (a *NFA) Dot() *Graphviz {
	dot := &Graphviz{}
	for s := 0; s < len(a.delta); s++ {
		dot.addNode(State(s), a.initial.Contains(State(s)), a.final.Contains(State(s)))
	}
	for _, t := range a.AllTrans() {
		dot.addEdge(t.Src, t.Tgt, fmt.Sprintf("%d", t.Symbol))
	}
	return dot
}

// WriteTo writes deterministic (sorted) DOT source for the graph to dst.
func (dot *Graphviz) WriteTo(dst io.Writer, graphName, graphTitle string) error {
	if _, err := fmt.Fprintf(dst, "digraph %s {\n\trankdir=LR;\n", graphName); err != nil {
		return err
	}
	sort.Strings(dot.nodes)
	for _, s := range dot.nodes {
		if _, err := io.WriteString(dst, s); err != nil {
			return err
		}
	}
	sort.Strings(dot.edges)
	for _, s := range dot.edges {
		if _, err := io.WriteString(dst, s); err != nil {
			return err
		}
	}
	graphTitle = strings.ReplaceAll(graphTitle, `\`, `\\`)
	_, err := fmt.Fprintf(dst, "\tlabelloc=\"t\";\n\tlabel=\"%s: %s\";\n}\n", graphName, graphTitle)
	return err
}

// WriteToFile dumps the DOT source to filename, gzip-compressing it when
// the rendered graph is large enough that plain text becomes unwieldy on
// disk (debug dumps for equations with hundreds of states).
func (dot *Graphviz) WriteToFile(filename, graphName, graphTitle string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(dot.nodes)+len(dot.edges) < 2000 {
		return dot.WriteTo(f, graphName, graphTitle)
	}

	gz := gzip.NewWriter(f)
	defer gz.Close()
	return dot.WriteTo(gz, graphName, graphTitle)
}
