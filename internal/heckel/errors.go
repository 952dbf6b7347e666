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
	"errors"
	"fmt"
)

var (
	// ErrAnchorConsistency is reported if an anchor doesn't resolve to a unique position in both
	// sequences.
	ErrAnchorConsistency = errors.New("anchor consistency violation")

	// ErrAggregationState is reported if a mapping contains a state other than confirmed or
	// delete when blocks are aggregated.
	ErrAggregationState = errors.New("aggregation state violation")
)

// InvariantError describes a broken internal invariant. It always wraps one of
// [ErrAnchorConsistency] or [ErrAggregationState].
//
// An InvariantError never depends on the input, it's a bug in this module.
type InvariantError struct {
	Stage string // Pipeline stage that detected the violation.
	Pos   int    // Position in x (or the element ID for anchors) that violated the invariant.
	State string // Offending state.
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %v at %d: found %s", e.Stage, e.Err, e.Pos, e.State)
}

func (e *InvariantError) Unwrap() error { return e.Err }
