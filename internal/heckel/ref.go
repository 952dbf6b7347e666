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

import "strconv"

// Ref is the state of a single position in a symbol index or a mapping array.
//
// The zero value is Unknown. Positive values encode Confirmed(pos) as pos+1, all other states are
// negative.
type Ref int

const (
	Unknown  Ref = 0
	Multiple Ref = -1 // Symbol index only: the element occurs more than once.
	Delete   Ref = -2 // x only: the position has no counterpart in y.
	Insert   Ref = -3 // y only: the position has no counterpart in x.
)

// Confirmed returns a reference to position pos in the other sequence.
func Confirmed(pos int) Ref {
	if pos < 0 {
		panic("negative position: " + strconv.Itoa(pos))
	}
	return Ref(pos + 1)
}

// Pos returns the position r refers to and whether r is confirmed at all.
func (r Ref) Pos() (int, bool) {
	if r <= 0 {
		return 0, false
	}
	return int(r) - 1, true
}

// IsConfirmed reports whether r refers to a position.
func (r Ref) IsConfirmed() bool { return r > 0 }

func (r Ref) String() string {
	switch r {
	case Unknown:
		return "unknown"
	case Multiple:
		return "multiple"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	if pos, ok := r.Pos(); ok {
		return "confirmed(" + strconv.Itoa(pos) + ")"
	}
	return "Ref(" + strconv.Itoa(int(r)) + ")"
}

// makeMappings allocates the mapping arrays for x and y from a single buffer.
func makeMappings(n, m int) (mx, my []Ref) {
	r := make([]Ref, n+m)
	mx = r[:n:n]
	my = r[n:]
	return
}
