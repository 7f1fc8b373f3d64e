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
	"bytes"
	"sort"
	"strconv"

	"github.com/dchest/siphash"

	"github.com/tmokenc/mata/internal/container"
)

// Reduce returns a language-equivalent NFA with at most a's state count,
// computed as a forward-bisimulation quotient: states with the same
// finality and the same set of reachable blocks per symbol are merged.
// This is deliberately not Hopcroft-style DFA minimization. The result
// need not be canonical, only language-preserving and non-increasing in
// state count, per the best-effort simulation-quotient contract.
//
// Partition refinement runs to a fixpoint; signatures are bucketed by a
// siphash key with an exact string as tie-breaker, so a hash collision
// can only cost a missed merge opportunity, never an incorrect one.
func (a *NFA) Reduce() *NFA {
	n := len(a.delta)
	block := make([]int, n)
	for s := 0; s < n; s++ {
		if a.final.Contains(State(s)) {
			block[s] = 1
		}
	}
	numBlocks := 0
	if n > 0 {
		numBlocks = 1
		if f := a.final.Len(); f > 0 && f < n {
			numBlocks = 2
		}
	}

	for {
		newBlock, count := refinePartition(a, block)
		if count == numBlocks {
			block = newBlock
			break
		}
		block = newBlock
		numBlocks = count
	}

	return a.quotientBy(block, numBlocks)
}

func refinePartition(a *NFA, block []int) ([]int, int) {
	n := len(a.delta)
	type bucketKey struct {
		hash  uint64
		exact string
	}
	ids := make(map[bucketKey]int)
	newBlock := make([]int, n)

	for s := 0; s < n; s++ {
		sig := stateSignature(a, block, State(s))
		key := bucketKey{hash: siphash.Hash(0, 0, []byte(sig)), exact: sig}
		id, ok := ids[key]
		if !ok {
			id = len(ids)
			ids[key] = id
		}
		newBlock[s] = id
	}
	return newBlock, len(ids)
}

// stateSignature builds a deterministic string identifying state s's
// current block plus, per outgoing symbol, the sorted set of blocks its
// targets fall into.
func stateSignature(a *NFA, block []int, s State) string {
	var buf bytes.Buffer
	buf.WriteString(strconv.Itoa(block[s]))

	symbols := make([]Symbol, 0, len(a.delta[s]))
	for sym := range a.delta[s] {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	for _, sym := range symbols {
		blocksReached := make(map[int]struct{})
		for t := range a.delta[s][sym] {
			blocksReached[block[t]] = struct{}{}
		}
		sorted := make([]int, 0, len(blocksReached))
		for b := range blocksReached {
			sorted = append(sorted, b)
		}
		sort.Ints(sorted)

		buf.WriteByte('|')
		buf.WriteString(strconv.Itoa(int(sym)))
		for _, b := range sorted {
			buf.WriteByte(',')
			buf.WriteString(strconv.Itoa(b))
		}
	}
	return buf.String()
}

// quotientBy builds the quotient NFA for a partition of a's states into
// numBlocks blocks. Every block index that appears in block[] is given a
// state in blockState during the first pass, so every later lookup is an
// established invariant rather than a fallible one; At documents that.
func (a *NFA) quotientBy(block []int, numBlocks int) *NFA {
	out := New()
	blockState := container.NewMap[int, State]()
	for s := 0; s < len(block); s++ {
		if !blockState.ContainsKey(block[s]) {
			blockState[block[s]] = out.AddState()
		}
	}
	for s := 0; s < len(block); s++ {
		ns := blockState.At(block[s])
		if a.initial.Contains(State(s)) {
			out.MakeInitial(ns)
		}
		if a.final.Contains(State(s)) {
			out.MakeFinal(ns)
		}
	}
	for _, t := range a.AllTrans() {
		out.AddTrans(blockState.At(block[t.Src]), t.Symbol, blockState.At(block[t.Tgt]))
	}
	return out
}
