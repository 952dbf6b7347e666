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

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ids maps every byte of s to an ID, the IDs are in [0, 256).
func ids(s string) []int {
	out := make([]int, len(s))
	for i := range len(s) {
		out[i] = int(s[i])
	}
	return out
}

func c(pos int) Ref { return Confirmed(pos) }

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		x, y   string
		wantX  []Ref
		wantY  []Ref
		expand int // number of pairs confirmed by expansion
	}{
		{
			name: "empty",
		},
		{
			name:  "x-empty",
			y:     "AB",
			wantY: []Ref{Insert, Insert},
		},
		{
			name:  "y-empty",
			x:     "AB",
			wantX: []Ref{Delete, Delete},
		},
		{
			name:  "pure-anchors",
			x:     "XABY",
			y:     "XBAY",
			wantX: []Ref{c(0), c(2), c(1), c(3)},
			wantY: []Ref{c(0), c(2), c(1), c(3)},
		},
		{
			name:   "cascade-then-gap",
			x:      "XAABY",
			y:      "XABAY",
			wantX:  []Ref{c(0), c(1), Delete, c(2), c(4)},
			wantY:  []Ref{c(0), c(1), c(3), Insert, c(4)},
			expand: 1,
		},
		{
			name:   "forward-cascade",
			x:      "XAAAB",
			y:      "XAAAC",
			wantX:  []Ref{c(0), c(1), c(2), c(3), Delete},
			wantY:  []Ref{c(0), c(1), c(2), c(3), Insert},
			expand: 3,
		},
		{
			name:   "backward-cascade",
			x:      "BAAAX",
			y:      "CAAAX",
			wantX:  []Ref{Delete, c(1), c(2), c(3), c(4)},
			wantY:  []Ref{Insert, c(1), c(2), c(3), c(4)},
			expand: 3,
		},
		{
			name:  "no-anchors",
			x:     "AA",
			y:     "AA",
			wantX: []Ref{Delete, Delete},
			wantY: []Ref{Insert, Insert},
		},
		{
			name:   "moved-block",
			x:      "ABCDEG",
			y:      "DEFGAC",
			wantX:  []Ref{c(4), Delete, c(5), c(0), c(1), c(3)},
			wantY:  []Ref{c(3), c(4), Insert, c(5), c(0), c(2)},
			expand: 0,
		},
		{
			name:   "unique-in-one-only",
			x:      "XAY",
			y:      "XAAY",
			wantX:  []Ref{c(0), c(1), c(3)},
			wantY:  []Ref{c(0), c(1), Insert, c(2)},
			expand: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(ids(tt.x), ids(tt.y), 256)
			xidx, yidx := Index(a.x, a.nids), Index(a.y, a.nids)
			if err := a.Anchor(Anchors(xidx, yidx), xidx, yidx); err != nil {
				t.Fatalf("Anchor(...) failed: %v", err)
			}
			if got := a.Expand(); got != tt.expand {
				t.Errorf("Expand() = %d, want %d", got, tt.expand)
			}
			a.Classify()
			gotX, gotY := a.Mappings()
			if diff := cmp.Diff(tt.wantX, gotX, cmp.Comparer(sameRefs)); diff != "" {
				t.Errorf("x mapping differs [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantY, gotY, cmp.Comparer(sameRefs)); diff != "" {
				t.Errorf("y mapping differs [-want,+got]:\n%s", diff)
			}

			// The full pipeline must produce the same result.
			b := New(ids(tt.x), ids(tt.y), 256)
			if err := b.Run(); err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			runX, runY := b.Mappings()
			if diff := cmp.Diff(gotX, runX, cmp.Comparer(sameRefs)); diff != "" {
				t.Errorf("Run() x mapping differs [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(gotY, runY, cmp.Comparer(sameRefs)); diff != "" {
				t.Errorf("Run() y mapping differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

// sameRefs treats nil and empty mappings as equal.
func sameRefs(a, b []Ref) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIndex(t *testing.T) {
	got := Index([]int{3, 1, 3, 0, 3}, 5)
	want := SymbolIndex{c(3), c(1), Unknown, Multiple, Unknown}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Index(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestAnchors(t *testing.T) {
	xidx := SymbolIndex{c(0), Multiple, c(1), Unknown, c(2)}
	yidx := SymbolIndex{c(4), c(0), Multiple, c(3), c(1)}
	got := Anchors(xidx, yidx)
	want := []int{0, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Anchors(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestAnchorConsistency(t *testing.T) {
	x, y := ids("XAAY"), ids("XAY")
	tests := []struct {
		name    string
		anchors []int
	}{
		{"multiple-in-x", []int{'A'}},
		{"missing-in-y", []int{'Q'}},
		{"out-of-range", []int{1000}},
		{"duplicate-anchor", []int{'X', 'X'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(x, y, 256)
			xidx, yidx := Index(x, 256), Index(y, 256)
			err := a.Anchor(tt.anchors, xidx, yidx)
			if !errors.Is(err, ErrAnchorConsistency) {
				t.Errorf("Anchor(%v) = %v, want %v", tt.anchors, err, ErrAnchorConsistency)
			}
			var ierr *InvariantError
			if !errors.As(err, &ierr) || ierr.Stage != "anchor" {
				t.Errorf("Anchor(%v) = %#v, want *InvariantError in stage anchor", tt.anchors, err)
			}
		})
	}
}

func TestExpandIdempotent(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	for i := range 500 {
		x, y := randomPair(rng)
		a := New(x, y, alphabet)
		xidx, yidx := Index(x, alphabet), Index(y, alphabet)
		if err := a.Anchor(Anchors(xidx, yidx), xidx, yidx); err != nil {
			t.Fatalf("case %d: Anchor(...) failed: %v", i, err)
		}
		checkSymmetric(t, fmt.Sprintf("case %d: after Anchor: x=%v y=%v", i, x, y), a)
		a.Expand()
		checkSymmetric(t, fmt.Sprintf("case %d: after Expand: x=%v y=%v", i, x, y), a)
		if n := a.Expand(); n != 0 {
			t.Errorf("case %d: x=%v y=%v: second Expand() confirmed %d pairs, want 0", i, x, y, n)
		}
	}
}

// checkSymmetric checks that every confirmed entry in one mapping is confirmed back in the other
// and that confirmed positions hold equal elements. Unknown entries are allowed.
func checkSymmetric(t *testing.T, name string, a *Aligner) {
	t.Helper()
	mx, my := a.Mappings()
	for s, r := range mx {
		if r == Unknown {
			continue
		}
		u, ok := r.Pos()
		if !ok {
			t.Fatalf("%s: x[%d] = %v", name, s, r)
		}
		if v, ok := my[u].Pos(); !ok || v != s {
			t.Fatalf("%s: x[%d] = %v but y[%d] = %v", name, s, r, u, my[u])
		}
		if a.x[s] != a.y[u] {
			t.Fatalf("%s: x[%d] = %d confirmed as y[%d] = %d", name, s, a.x[s], u, a.y[u])
		}
	}
	for u, r := range my {
		if r == Unknown {
			continue
		}
		s, ok := r.Pos()
		if !ok {
			t.Fatalf("%s: y[%d] = %v", name, u, r)
		}
		if v, ok := mx[s].Pos(); !ok || v != u {
			t.Fatalf("%s: y[%d] = %v but x[%d] = %v", name, u, r, s, mx[s])
		}
	}
}

func TestRunProperties(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	for i := range 1000 {
		x, y := randomPair(rng)
		name := fmt.Sprintf("case %d: x=%v y=%v", i, x, y)

		a := New(x, y, alphabet)
		if err := a.Run(); err != nil {
			t.Fatalf("%s: Run() failed: %v", name, err)
		}
		mx, my := a.Mappings()

		// Symmetry and totality.
		for s, r := range mx {
			if r == Delete {
				continue
			}
			u, ok := r.Pos()
			if !ok {
				t.Fatalf("%s: x[%d] is %v after classification", name, s, r)
			}
			if v, _ := my[u].Pos(); !my[u].IsConfirmed() || v != s {
				t.Fatalf("%s: x[%d] = %v but y[%d] = %v", name, s, r, u, my[u])
			}
			if x[s] != y[u] {
				t.Fatalf("%s: x[%d] confirmed as y[%d] with different elements", name, s, u)
			}
		}
		for u, r := range my {
			if r == Insert {
				continue
			}
			s, ok := r.Pos()
			if !ok {
				t.Fatalf("%s: y[%d] is %v after classification", name, u, r)
			}
			if v, _ := mx[s].Pos(); !mx[s].IsConfirmed() || v != u {
				t.Fatalf("%s: y[%d] = %v but x[%d] = %v", name, u, r, s, mx[s])
			}
		}

		// Block aggregation never fails and covers every position once.
		for _, contiguous := range []bool{false, true} {
			blocks, err := Blocks(mx, 0, len(mx), contiguous)
			if err != nil {
				t.Fatalf("%s: Blocks(...) failed: %v", name, err)
			}
			n := 0
			for _, b := range blocks {
				n += b.Count
			}
			if n != len(mx) {
				t.Fatalf("%s: blocks cover %d positions, want %d", name, n, len(mx))
			}
		}

		// Determinism.
		b := New(x, y, alphabet)
		if err := b.Run(); err != nil {
			t.Fatalf("%s: second Run() failed: %v", name, err)
		}
		bx, by := b.Mappings()
		if diff := cmp.Diff(mx, bx); diff != "" {
			t.Fatalf("%s: x mapping differs between runs [-first,+second]:\n%s", name, diff)
		}
		if diff := cmp.Diff(my, by); diff != "" {
			t.Fatalf("%s: y mapping differs between runs [-first,+second]:\n%s", name, diff)
		}
	}
}

func TestIdentity(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	for i := range 200 {
		x, _ := randomPair(rng)
		// Ensure at least one anchor.
		x = append(x, alphabet)
		a := New(x, x, alphabet+1)
		if err := a.Run(); err != nil {
			t.Fatalf("case %d: Run() failed: %v", i, err)
		}
		mx, my := a.Mappings()
		for s := range x {
			if mx[s] != c(s) || my[s] != c(s) {
				t.Fatalf("case %d: x=%v: position %d is %v/%v, want %v", i, x, s, mx[s], my[s], c(s))
			}
		}
		blocks, err := Blocks(mx, 0, len(mx), false)
		if err != nil {
			t.Fatalf("case %d: Blocks(...) failed: %v", i, err)
		}
		if diff := cmp.Diff([]Block{{BlockMatch, 0, len(x)}}, blocks); diff != "" {
			t.Fatalf("case %d: blocks differ [-want,+got]:\n%s", i, diff)
		}
	}
}

const alphabet = 6

// randomPair creates two short random sequences over a small alphabet, y is derived from x with a
// few random edits so that the sequences have something in common.
func randomPair(rng *rand.Rand) (x, y []int) {
	x = make([]int, rng.IntN(20))
	for i := range x {
		x[i] = rng.IntN(alphabet)
	}
	y = make([]int, 0, len(x)+5)
	for _, e := range x {
		switch rng.IntN(6) {
		case 0: // delete
		case 1: // insert
			y = append(y, rng.IntN(alphabet), e)
		default:
			y = append(y, e)
		}
	}
	return x, y
}

func BenchmarkRun(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(b.Name()))))
			x := make([]int, n)
			for i := range x {
				x[i] = rng.IntN(n)
			}
			y := make([]int, n)
			for i := range y {
				y[i] = x[i]
				if rng.IntN(10) == 0 {
					y[i] = rng.IntN(n)
				}
			}
			for b.Loop() {
				_ = New(x, y, n).Run()
			}
		})
	}
}
