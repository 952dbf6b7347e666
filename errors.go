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

package anchordiff

import (
	"errors"

	"znkr.io/anchordiff/internal/heckel"
)

// InvariantError is returned if the alignment pipeline detects a violation of one of its internal
// invariants. It wraps either [ErrAnchorConsistency] or [ErrAggregationState].
//
// This error is never caused by the input. If you encounter it, please report a bug.
type InvariantError = heckel.InvariantError

var (
	// ErrAnchorConsistency means that an anchor didn't resolve to a unique position in both
	// sequences.
	ErrAnchorConsistency = heckel.ErrAnchorConsistency

	// ErrAggregationState means that an unresolved position was found while computing blocks.
	ErrAggregationState = heckel.ErrAggregationState

	// ErrInvalidAlignment is returned by [Alignment.Validate].
	ErrInvalidAlignment = errors.New("invalid alignment")
)
