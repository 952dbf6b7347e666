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

// Package heckel aligns two sequences of element IDs using unique elements as anchors.
//
// The algorithm is a variant of the one described in Paul Heckel, "A Technique for Isolating
// Differences Between Files", CACM 21(4), 1978. It's not a minimal diff. Instead, it finds a
// position level correspondence between x and y that tolerates moved blocks:
//
//  1. Index both sequences: For every element, record if it occurs exactly once and where.
//  2. Anchor: Every element that occurs exactly once in x and exactly once in y is a trusted
//     correspondence. Both mapping arrays are updated for every anchor.
//  3. Expand: Starting from confirmed positions, neighboring positions that are still unknown and
//     hold equal elements are confirmed too. The forward and the backward sweep are interleaved
//     in a single pass, and every confirmation is visible to the remainder of the pass, so that a
//     run of equal elements is picked up in one go.
//  4. Classify: Whatever is still unknown is a deletion in x or an insertion in y.
//
// The result are two mapping arrays, one per sequence. Confirmed references are always written
// as a pair: if x[s] maps to y[t], y[t] maps back to x[s].
//
// Blocks summarizes the mapping for x as runs of matches and deletions.
//
// This package is an implementation detail. It works exclusively on dense integer IDs; mapping
// user types to IDs is done by the caller.
package heckel
