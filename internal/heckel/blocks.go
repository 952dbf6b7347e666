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

// BlockKind describes the kind of a block.
type BlockKind int

const (
	BlockMatch  BlockKind = iota // A run of confirmed positions.
	BlockDelete                  // A run of deleted positions.
)

// Block is a run of consecutive positions in x with the same kind.
//
// For BlockMatch, Pos is the position in y the first position of the run is confirmed as. For
// BlockDelete, Pos is the position in x of the first deletion.
type Block struct {
	Kind  BlockKind
	Pos   int
	Count int
}

// Blocks run-length encodes mx[lo:hi]. The mapping must be classified.
//
// If contiguous is set, a run of confirmed positions is split where the referenced positions in y
// are not consecutive. An empty range (including hi < lo) results in no blocks.
func Blocks(mx []Ref, lo, hi int, contiguous bool) ([]Block, error) {
	var out []Block
	for s := lo; s < hi; {
		switch r := mx[s]; {
		case r.IsConfirmed():
			t, _ := r.Pos()
			b := Block{Kind: BlockMatch, Pos: t}
			for s < hi && mx[s].IsConfirmed() {
				if next, _ := mx[s].Pos(); contiguous && next != t+b.Count {
					break
				}
				b.Count++
				s++
			}
			out = append(out, b)
		case r == Delete:
			b := Block{Kind: BlockDelete, Pos: s}
			for s < hi && mx[s] == Delete {
				b.Count++
				s++
			}
			out = append(out, b)
		default:
			return nil, &InvariantError{Stage: "aggregate", Pos: s, State: r.String(), Err: ErrAggregationState}
		}
	}
	return out, nil
}
