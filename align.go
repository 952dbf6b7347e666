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
	"strconv"

	"znkr.io/anchordiff/internal/config"
	"znkr.io/anchordiff/internal/heckel"
	"znkr.io/anchordiff/internal/intern"
)

// Kind describes the state of a position in an alignment.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Unknown   Kind = iota // Not resolved, never part of a returned alignment
	Multiple              // Not unique, never part of a returned alignment
	Confirmed             // The position corresponds to a position in the other sequence
	Deleted               // The position only exists in the old sequence
	Inserted              // The position only exists in the new sequence
)

// Ref describes the state of a single position in an alignment. For Confirmed, Pos is the
// corresponding position in the other sequence, otherwise it's unset (zero value).
type Ref struct {
	Kind Kind
	Pos  int
}

func (r Ref) String() string {
	if r.Kind == Confirmed {
		return "Confirmed(" + strconv.Itoa(r.Pos) + ")"
	}
	return r.Kind.String()
}

// Op describes the kind of a block.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // A run of consecutive positions in x that are all confirmed
	Delete           // A run of consecutive positions in x that are all deleted
)

// Block summarizes a maximal run of positions in x with the same kind.
//
//   - For Match, Pos is the position in y that the first position of the run corresponds to.
//   - For Delete, Pos is the position in x of the first deletion.
type Block struct {
	Op    Op
	Pos   int
	Count int
}

// Alignment describes the correspondence between two sequences x and y.
//
// X has one entry for every element of x, each entry is either Confirmed or Deleted. Y has one
// entry for every element of y, each entry is either Confirmed or Inserted. Confirmed entries are
// symmetric: if X[s] is Confirmed(t), Y[t] is Confirmed(s).
//
// Blocks run-length encode X in order, excluding sentinels.
type Alignment struct {
	X, Y   []Ref
	Blocks []Block
}

// Align aligns the elements of x and y and returns the alignment.
//
// Elements that occur exactly once in both x and y are used as anchors. Starting from anchors,
// neighboring elements that are equal are aligned as well. Everything else is either deleted from
// x or inserted in y. Unlike a minimal diff, the result may contain crossing correspondences, i.e.
// moved elements.
//
// The following options are supported: [InlineSentinels], [SyntheticSentinels],
// [ContiguousMatches]
//
// An error is only returned if an internal invariant is violated, see [InvariantError].
func Align[T comparable](x, y []T, opts ...Option) (Alignment, error) {
	cfg := config.FromOptions(opts, config.InlineSentinels|config.SyntheticSentinels|config.ContiguousMatches)
	return align(x, y, intern.Identity[T], cfg)
}

// AlignFunc aligns the elements of x and y and returns the alignment. Two elements are considered
// equal if their keys are equal.
//
// The following options are supported: [InlineSentinels], [SyntheticSentinels],
// [ContiguousMatches]
//
// An error is only returned if an internal invariant is violated, see [InvariantError].
func AlignFunc[T any, K comparable](x, y []T, key func(T) K, opts ...Option) (Alignment, error) {
	cfg := config.FromOptions(opts, config.InlineSentinels|config.SyntheticSentinels|config.ContiguousMatches)
	return align(x, y, key, cfg)
}

func align[T any, K comparable](x, y []T, key func(T) K, cfg config.Config) (Alignment, error) {
	synthetic := cfg.Sentinels == config.SentinelsSynthetic
	x0, y0, nids := intern.IDs(x, y, key, synthetic)

	a := heckel.New(x0, y0, nids)
	if err := a.Run(); err != nil {
		return Alignment{}, err
	}
	mx, my := a.Mappings()

	lo, hi := 0, len(mx)
	if cfg.Sentinels != config.SentinelsNone {
		lo, hi = 1, len(mx)-1
	}
	blocks, err := heckel.Blocks(mx, lo, hi, cfg.ContiguousMatches)
	if err != nil {
		return Alignment{}, err
	}

	// Synthetic sentinels only map to each other, all other positions are shifted by one.
	off := 0
	if synthetic {
		off = 1
		mx, my = mx[1:len(mx)-1], my[1:len(my)-1]
	}
	return Alignment{
		X:      refs(mx, off),
		Y:      refs(my, off),
		Blocks: convertBlocks(blocks, off),
	}, nil
}

func refs(m []heckel.Ref, off int) []Ref {
	out := make([]Ref, len(m))
	for i, r := range m {
		switch r {
		case heckel.Delete:
			out[i] = Ref{Kind: Deleted}
		case heckel.Insert:
			out[i] = Ref{Kind: Inserted}
		case heckel.Multiple:
			out[i] = Ref{Kind: Multiple}
		case heckel.Unknown:
			out[i] = Ref{Kind: Unknown}
		default:
			pos, _ := r.Pos()
			out[i] = Ref{Kind: Confirmed, Pos: pos - off}
		}
	}
	return out
}

func convertBlocks(blocks []heckel.Block, off int) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		op := Match
		if b.Kind == heckel.BlockDelete {
			op = Delete
		}
		out[i] = Block{Op: op, Pos: b.Pos - off, Count: b.Count}
	}
	return out
}
