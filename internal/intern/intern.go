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

// Package intern maps elements of two slices to dense integer IDs.
//
// Working with IDs instead of elements has two benefits: Comparing IDs is cheap irrespective of
// the element type and a dense ID space allows symbol tables to be slices instead of maps.
package intern

// IDs assigns an ID to every element in x and y and returns the ID sequences and the number of
// distinct IDs. Two elements get the same ID if and only if their keys are equal.
//
// If bracket is set, both ID sequences start with a start sentinel and end with an end sentinel.
// The sentinels use two IDs reserved for them, they are never equal to any element.
func IDs[T any, K comparable](x, y []T, key func(T) K, bracket bool) (x0, y0 []int, nids int) {
	off := 0
	if bracket {
		off = 1
	}
	buf := make([]int, len(x)+len(y)+4*off)
	x0, buf = buf[:len(x)+2*off:len(x)+2*off], buf[len(x)+2*off:]
	y0, buf = buf[:len(y)+2*off:len(y)+2*off], buf[len(y)+2*off:]
	if len(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}

	idx := make(map[K]int, len(x)) // temporary map from key to ID
	lookup := func(e T) int {
		k := key(e)
		id, ok := idx[k]
		if !ok {
			id = len(idx)
			idx[k] = id
		}
		return id
	}
	for i, e := range x {
		x0[i+off] = lookup(e)
	}
	for i, e := range y {
		y0[i+off] = lookup(e)
	}

	nids = len(idx)
	if bracket {
		start, end := nids, nids+1
		x0[0], x0[len(x0)-1] = start, end
		y0[0], y0[len(y0)-1] = start, end
		nids += 2
	}
	return x0, y0, nids
}

// Identity is the key function for comparable elements.
func Identity[T comparable](e T) T { return e }
