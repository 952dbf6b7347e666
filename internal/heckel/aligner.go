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

// Aligner holds the state of a single alignment of x and y.
//
// An Aligner is not safe for concurrent use. Different Aligners share nothing and can be used
// concurrently.
type Aligner struct {
	x, y   []int
	nids   int
	mx, my []Ref // mapping arrays for x and y
}

// New creates an aligner for x and y. All IDs in x and y must be in [0, nids).
func New(x, y []int, nids int) *Aligner {
	a := &Aligner{x: x, y: y, nids: nids}
	a.mx, a.my = makeMappings(len(x), len(y))
	return a
}

// Run runs the complete pipeline: index, anchor, expand, and classify. After Run returns without
// error, every position in x is either confirmed or deleted and every position in y is either
// confirmed or inserted.
func (a *Aligner) Run() error {
	xidx, yidx := Index(a.x, a.nids), Index(a.y, a.nids)
	if err := a.Anchor(Anchors(xidx, yidx), xidx, yidx); err != nil {
		return err
	}
	a.Expand()
	a.Classify()
	return nil
}

// Mappings returns the mapping arrays for x and y. The returned slices are owned by the aligner,
// they must not be modified.
func (a *Aligner) Mappings() (mx, my []Ref) { return a.mx, a.my }

// Anchor confirms the positions of all anchors. Every anchor must be unique in both indexes.
func (a *Aligner) Anchor(anchors []int, xidx, yidx SymbolIndex) error {
	for _, id := range anchors {
		if id < 0 || id >= len(xidx) || id >= len(yidx) {
			return &InvariantError{Stage: "anchor", Pos: id, State: "unindexed element", Err: ErrAnchorConsistency}
		}
		s, ok := xidx[id].Pos()
		if !ok || s >= len(a.mx) {
			return &InvariantError{Stage: "anchor", Pos: id, State: "x " + xidx[id].String(), Err: ErrAnchorConsistency}
		}
		t, ok := yidx[id].Pos()
		if !ok || t >= len(a.my) {
			return &InvariantError{Stage: "anchor", Pos: id, State: "y " + yidx[id].String(), Err: ErrAnchorConsistency}
		}
		if a.mx[s] != Unknown || a.my[t] != Unknown {
			return &InvariantError{Stage: "anchor", Pos: id, State: "position already mapped", Err: ErrAnchorConsistency}
		}
		a.mx[s], a.my[t] = Confirmed(t), Confirmed(s)
	}
	return nil
}

// Expand confirms unknown neighbors of confirmed positions if they hold equal elements and
// returns the number of newly confirmed pairs.
//
// A single pass runs the forward sweep (ascending) and the backward sweep (descending)
// interleaved. A neighbor is only examined once per sweep; elements that are separated from a
// confirmed position by anything but a run of equal elements are not discovered.
func (a *Aligner) Expand() int {
	n := len(a.x)
	confirmed := 0
	for k := range n {
		if a.step(k, +1) {
			confirmed++
		}
		if a.step(n-1-k, -1) {
			confirmed++
		}
	}
	return confirmed
}

// step confirms x[s+dir] and y[t+dir] if x[s] is confirmed as y[t], both neighbors are unknown,
// and both hold the same element.
func (a *Aligner) step(s, dir int) bool {
	t, ok := a.mx[s].Pos()
	if !ok {
		return false
	}
	s, t = s+dir, t+dir
	if s < 0 || s >= len(a.x) || t < 0 || t >= len(a.y) {
		return false
	}
	if a.mx[s] != Unknown || a.my[t] != Unknown || a.x[s] != a.y[t] {
		return false
	}
	a.mx[s], a.my[t] = Confirmed(t), Confirmed(s)
	return true
}

// Classify turns all remaining unknown positions into deletions (x) and insertions (y).
func (a *Aligner) Classify() {
	for s, r := range a.mx {
		if r == Unknown {
			a.mx[s] = Delete
		}
	}
	for t, r := range a.my {
		if r == Unknown {
			a.my[t] = Insert
		}
	}
}
