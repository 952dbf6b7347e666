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

// Package anchordiff aligns two slices position by position, similar to the way a line based
// diff tool relates two versions of a file.
//
// The main function is [Align]. It returns an [Alignment] that records for every element of x
// and y whether it corresponds to an element in the other slice, or whether it was deleted from x
// or inserted into y. Additionally, the alignment summarizes x as [Block]s of matches and
// deletions.
//
// The algorithm uses elements that occur exactly once in both inputs as anchors and extends
// matches from there to equal neighbors. It's not a minimal diff: It doesn't guarantee the
// shortest edit script, but it detects moved elements and runs in O(N) time and space, where
// N = len(x) + len(y).
//
// Use [InlineSentinels] or [SyntheticSentinels] to anchor the alignment at the boundaries of the
// inputs.
//
// Note: For a line-by-line alignment of text, please see [znkr.io/anchordiff/textdiff].
//
// [znkr.io/anchordiff/textdiff]: https://pkg.go.dev/znkr.io/anchordiff/textdiff
package anchordiff
