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
	"fmt"

	"znkr.io/anchordiff/internal/config"
)

// Stats counts the positions of an alignment by kind.
type Stats struct {
	Matches int // Number of confirmed pairs
	Deletes int // Number of deleted positions in x
	Inserts int // Number of inserted positions in y
}

// Stats returns the number of matches, deletions and insertions in a.
func (a Alignment) Stats() Stats {
	var st Stats
	for _, r := range a.X {
		switch r.Kind {
		case Confirmed:
			st.Matches++
		case Deleted:
			st.Deletes++
		}
	}
	for _, r := range a.Y {
		if r.Kind == Inserted {
			st.Inserts++
		}
	}
	return st
}

// Validate checks that a is a complete and consistent alignment:
//
//   - Every entry of X is Confirmed or Deleted and every entry of Y is Confirmed or Inserted.
//   - Confirmed entries are symmetric.
//   - Blocks are ordered, maximal, agree with X, and cover X. With [InlineSentinels], the first
//     and the last position of X are not covered.
//
// The options must be the ones that were used to create a.
//
// The following options are supported: [InlineSentinels], [SyntheticSentinels],
// [ContiguousMatches]
//
// The returned error wraps [ErrInvalidAlignment].
func (a Alignment) Validate(opts ...Option) error {
	cfg := config.FromOptions(opts, config.InlineSentinels|config.SyntheticSentinels|config.ContiguousMatches)
	for s, r := range a.X {
		switch r.Kind {
		case Confirmed:
			if r.Pos < 0 || r.Pos >= len(a.Y) {
				return fmt.Errorf("%w: x[%d] = %v is out of range", ErrInvalidAlignment, s, r)
			}
			if back := a.Y[r.Pos]; back.Kind != Confirmed || back.Pos != s {
				return fmt.Errorf("%w: x[%d] = %v but y[%d] = %v", ErrInvalidAlignment, s, r, r.Pos, back)
			}
		case Deleted:
		default:
			return fmt.Errorf("%w: x[%d] = %v", ErrInvalidAlignment, s, r)
		}
	}
	for t, r := range a.Y {
		switch r.Kind {
		case Confirmed:
			if r.Pos < 0 || r.Pos >= len(a.X) {
				return fmt.Errorf("%w: y[%d] = %v is out of range", ErrInvalidAlignment, t, r)
			}
			if back := a.X[r.Pos]; back.Kind != Confirmed || back.Pos != t {
				return fmt.Errorf("%w: y[%d] = %v but x[%d] = %v", ErrInvalidAlignment, t, r, r.Pos, back)
			}
		case Inserted:
		default:
			return fmt.Errorf("%w: y[%d] = %v", ErrInvalidAlignment, t, r)
		}
	}
	return a.validateBlocks(cfg)
}

func (a Alignment) validateBlocks(cfg config.Config) error {
	s, end := 0, len(a.X)
	if cfg.Sentinels == config.SentinelsInline {
		s, end = 1, max(1, len(a.X)-1)
	}

	for i, b := range a.Blocks {
		if b.Count <= 0 {
			return fmt.Errorf("%w: block %+v is empty", ErrInvalidAlignment, b)
		}
		if s+b.Count > end {
			return fmt.Errorf("%w: block %+v at x[%d] extends past x[%d]", ErrInvalidAlignment, b, s, end)
		}
		if i > 0 {
			prev := a.Blocks[i-1]
			if prev.Op == Delete && b.Op == Delete {
				return fmt.Errorf("%w: consecutive delete blocks at x[%d]", ErrInvalidAlignment, s)
			}
			if prev.Op == Match && b.Op == Match && (!cfg.ContiguousMatches || prev.Pos+prev.Count == b.Pos) {
				return fmt.Errorf("%w: consecutive match blocks at x[%d] are not maximal", ErrInvalidAlignment, s)
			}
		}
		switch b.Op {
		case Match:
			for i := range b.Count {
				r := a.X[s]
				if r.Kind != Confirmed {
					return fmt.Errorf("%w: block %+v contains x[%d] = %v", ErrInvalidAlignment, b, s, r)
				}
				if (i == 0 || cfg.ContiguousMatches) && r.Pos != b.Pos+i {
					return fmt.Errorf("%w: block %+v doesn't agree with x[%d] = %v", ErrInvalidAlignment, b, s, r)
				}
				s++
			}
		case Delete:
			if b.Pos != s {
				return fmt.Errorf("%w: block %+v starts at x[%d]", ErrInvalidAlignment, b, s)
			}
			for range b.Count {
				if a.X[s].Kind != Deleted {
					return fmt.Errorf("%w: block %+v contains x[%d] = %v", ErrInvalidAlignment, b, s, a.X[s])
				}
				s++
			}
		default:
			return fmt.Errorf("%w: block %+v has unknown op", ErrInvalidAlignment, b)
		}
	}
	if s != end {
		return fmt.Errorf("%w: blocks end at x[%d], want x[%d]", ErrInvalidAlignment, s, end)
	}
	return nil
}
