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

import (
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tmokenc/mata/alphabet"
	"github.com/tmokenc/mata/nfa"
)

// Params is the configuration map recognized by NoodlifyForEquation.
// The only recognized key today is ParamReduce; unknown keys are
// ignored, matching the "any other value (or absence) -> no reduction"
// contract.
type Params map[string]string

// ParamReduce selects an optional reduction pass applied to the
// intersection before noodlification: "forward", "backward", or
// "bidirectional".
const ParamReduce = "reduce"

var debugLog = false

// SetDebugLogging toggles the sparse log.Printf checkpoints emitted by
// NoodlifyForEquation after the concatenation and product stages.
func SetDebugLogging(on bool) { debugLog = on }

// NoodlifyForEquation solves X1*X2*...*Xm = Y: lhs is the ordered,
// non-empty sequence of NFAs for X1..Xm; rhs is the NFA for Y.
func NoodlifyForEquation(lhs []*nfa.NFA, rhs *nfa.NFA, includeEmpty bool, params Params) NoodleSequence {
	if len(lhs) == 0 {
		return nil
	}
	if rhs.IsLangEmpty() {
		return nil
	}

	alph := alphabet.FromNFAs(append(append([]*nfa.NFA{}, lhs...), rhs)...)
	eps, err := alph.GetNextValue()
	if err != nil {
		// AlphabetExhausted is documented as unreachable in practice;
		// surfacing it as a panic keeps the public signature simple.
		panic(err)
	}

	unified := make([]*nfa.NFA, len(lhs))
	for i, l := range lhs {
		unified[i] = l.UnifyInitial(eps).UnifyFinal(eps)
	}

	runID := ""
	if debugLog {
		runID = uuid.NewString()
	}

	concatenated := unified[0]
	for _, next := range unified[1:] {
		concatenated = nfa.ConcatenateOverEpsilon(concatenated, next, eps)
	}
	if debugLog {
		log.Printf("noodle[%s]: concatenated LHS has %d states", runID, concatenated.NumStates())
		dumpDebug(runID, "concat", concatenated)
	}

	product := nfa.IntersectionOverEpsilon(concatenated, rhs, eps).Trim()
	if debugLog {
		log.Printf("noodle[%s]: product has %d states after trim", runID, product.NumStates())
		dumpDebug(runID, "product", product)
	}

	if product.IsLangEmpty() {
		return nil
	}

	switch params[ParamReduce] {
	case "forward":
		product = product.Reduce()
	case "backward":
		product = product.Revert().Reduce().Revert()
	case "bidirectional":
		product = product.Reduce()
		product = product.Revert().Reduce().Revert()
	}

	return Noodlify(product, eps, includeEmpty)
}

// dumpDebug writes a's Graphviz dump to the system temp directory under a
// name keyed by runID, so that concurrent NoodlifyForEquation calls
// running on separate goroutines never collide on the same debug file.
// Failures are logged, not returned: this is a debugging aid, not part
// of the pipeline's contract.
func dumpDebug(runID, stage string, a *nfa.NFA) {
	name := filepath.Join(os.TempDir(), "mata-noodle-"+runID+"-"+stage+".dot")
	if err := a.Dot().WriteToFile(name, "noodle_"+stage, runID); err != nil {
		log.Printf("noodle[%s]: writing debug dump for %s: %s", runID, stage, err)
		return
	}
	log.Printf("noodle[%s]: wrote debug dump for %s to %s", runID, stage, name)
}
