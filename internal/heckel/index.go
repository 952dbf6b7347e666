// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package heckel

// SymbolIndex records for every element ID if it occurs exactly once in a sequence and where.
//
// An entry is Unknown if the ID doesn't occur at all, Confirmed(pos) if it occurs exactly once at
// pos, and Multiple otherwise.
type SymbolIndex []Ref

// Index builds the symbol index for seq. All elements of seq must be in [0, nids).
func Index(seq []int, nids int) SymbolIndex {
	idx := make(SymbolIndex, nids)
	for pos, id := range seq {
		if idx[id] == Unknown {
			idx[id] = Confirmed(pos)
		} else {
			// Once an element is seen twice, it never becomes unique again.
			idx[id] = Multiple
		}
	}
	return idx
}

// Anchors returns the IDs of all elements that are unique in both indexes, in ascending order.
func Anchors(xidx, yidx SymbolIndex) []int {
	var ids []int
	for id := range min(len(xidx), len(yidx)) {
		if xidx[id].IsConfirmed() && yidx[id].IsConfirmed() {
			ids = append(ids, id)
		}
	}
	return ids
}
