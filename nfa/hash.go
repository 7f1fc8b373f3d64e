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
	"encoding/binary"

	"github.com/tmokenc/mata/internal/container"
	"golang.org/x/crypto/blake2b"
)

// CanonicalHash hashes a's structural form (sorted I, sorted F, sorted
// transition list) so that two structurally identical NFAs, in
// particular the output of two runs of the same deterministic pipeline
// per the determinism property, hash equal regardless of Go map
// iteration order.
func (a *NFA) CanonicalHash() [32]byte {
	h, _ := blake2b.New256(nil)

	var buf [4]byte
	put := func(v int32) {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		h.Write(buf[:])
	}

	put(int32(len(a.delta)))
	for _, s := range container.SortedKeys(a.initial) {
		put(int32(s))
	}
	put(-1)
	for _, s := range container.SortedKeys(a.final) {
		put(int32(s))
	}
	put(-1)
	for _, t := range a.AllTrans() {
		put(int32(t.Src))
		put(int32(t.Symbol))
		put(int32(t.Tgt))
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
