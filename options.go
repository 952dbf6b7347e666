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

import "znkr.io/anchordiff/internal/config"

// Option configures the behavior of alignment functions.
type Option = config.Option

// InlineSentinels treats the first and the last element of both inputs as sentinels. Sentinels
// are aligned like all other elements, but they are excluded from [Alignment.Blocks]. If x has
// fewer than two elements, there are no blocks.
//
// Sentinels are usually unique start and end markers. Unique markers anchor the alignment at the
// boundaries, which allows matches to extend from the start and the end of the inputs.
//
// InlineSentinels and [SyntheticSentinels] are mutually exclusive.
func InlineSentinels() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Sentinels = config.SentinelsInline
		return config.InlineSentinels
	}
}

// SyntheticSentinels brackets both inputs with start and end markers that are distinct from every
// element. The markers anchor the alignment at the boundaries, but they are not part of the
// result: [Alignment.X], [Alignment.Y], and [Alignment.Blocks] only refer to the input elements.
//
// [InlineSentinels] and SyntheticSentinels are mutually exclusive.
func SyntheticSentinels() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Sentinels = config.SentinelsSynthetic
		return config.SyntheticSentinels
	}
}

// ContiguousMatches splits runs of matches into separate blocks wherever the corresponding
// positions in y are not consecutive. By default, a match block is any maximal run of confirmed
// positions in x, even if some of them were moved.
func ContiguousMatches() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.ContiguousMatches = true
		return config.ContiguousMatches
	}
}
