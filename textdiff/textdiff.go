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

// Package textdiff aligns text line by line and renders the result.
package textdiff

import (
	"znkr.io/anchordiff"
	"znkr.io/anchordiff/internal/byteview"
	"znkr.io/anchordiff/internal/config"
)

const missingNewline = "\n\\ No newline at end of file\n"

const reset = "\033[0m"

// Align splits x and y into lines and aligns them. Lines are split after '\n'; a last line
// without a trailing newline is different from the same line with a newline. Positions in the
// result are 0-based line indexes.
//
// The start and the end of both inputs are always anchored using [anchordiff.SyntheticSentinels].
//
// The following option is supported: [anchordiff.ContiguousMatches]
func Align[T string | []byte](x, y T, opts ...anchordiff.Option) (anchordiff.Alignment, error) {
	cfg := config.FromOptions(opts, config.ContiguousMatches)
	xlines, _ := byteview.SplitLines(byteview.From(x))
	ylines, _ := byteview.SplitLines(byteview.From(y))
	return align(xlines, ylines, cfg)
}

func align(xlines, ylines []byteview.ByteView, cfg config.Config) (anchordiff.Alignment, error) {
	opts := []anchordiff.Option{anchordiff.SyntheticSentinels()}
	if cfg.ContiguousMatches {
		opts = append(opts, anchordiff.ContiguousMatches())
	}
	return anchordiff.Align(xlines, ylines, opts...)
}

// Listing aligns the lines in x and y and returns a listing of the result.
//
// The listing has three sections. The first lists every line of x, the second every line of y,
// and the last lists the blocks of x. Line numbers are 1-based:
//
//	--- x
//	1 match 2: a line in x that is line 2 in y
//	2 delete: a line that only exists in x
//	+++ y
//	1 insert: a line that only exists in y
//	2 match 1: a line in x that is line 2 in y
//	@@ blocks
//	match 2,1
//	delete 2,1
//
// A match block refers to the line in y where the run of matches starts, a delete block to the
// line in x where the run of deletions starts.
//
// The following options are supported: [anchordiff.ContiguousMatches], [TerminalColors]
func Listing[T string | []byte](x, y T, opts ...anchordiff.Option) (T, error) {
	cfg := config.FromOptions(opts, config.ContiguousMatches|config.TerminalColors)

	xlines, xmissing := byteview.SplitLines(byteview.From(x))
	ylines, ymissing := byteview.SplitLines(byteview.From(y))
	a, err := align(xlines, ylines, cfg)
	if err != nil {
		var zero T
		return zero, err
	}

	var b byteview.Builder[T]
	w := listingWriter[T]{b: &b, cc: cfg.Color}

	w.header("--- x")
	for s, r := range a.X {
		switch r.Kind {
		case anchordiff.Confirmed:
			w.line(w.cc.Match, s, "match", r.Pos, xlines[s], s == xmissing)
		case anchordiff.Deleted:
			w.line(w.cc.Delete, s, "delete", -1, xlines[s], s == xmissing)
		default:
			panic("never reached")
		}
	}

	w.header("+++ y")
	for t, r := range a.Y {
		switch r.Kind {
		case anchordiff.Confirmed:
			w.line(w.cc.Match, t, "match", r.Pos, ylines[t], t == ymissing)
		case anchordiff.Inserted:
			w.line(w.cc.Insert, t, "insert", -1, ylines[t], t == ymissing)
		default:
			panic("never reached")
		}
	}

	w.header("@@ blocks")
	for _, blk := range a.Blocks {
		switch blk.Op {
		case anchordiff.Match:
			w.block(w.cc.Match, "match", blk)
		case anchordiff.Delete:
			w.block(w.cc.Delete, "delete", blk)
		default:
			panic("never reached")
		}
	}

	return b.Build(), nil
}

type listingWriter[T string | []byte] struct {
	b  *byteview.Builder[T]
	cc config.ColorConfig
}

func (w *listingWriter[T]) start(code string) {
	if code != "" {
		w.b.WriteString(code)
	}
}

func (w *listingWriter[T]) end(code string) {
	if code != "" {
		w.b.WriteString(reset)
	}
	w.b.WriteString("\n")
}

func (w *listingWriter[T]) header(title string) {
	w.start(w.cc.Header)
	w.b.WriteString(title)
	w.end(w.cc.Header)
}

// line writes a single line of the listing, pos and other are 0-based, other < 0 means that the
// line has no counterpart.
func (w *listingWriter[T]) line(code string, pos int, op string, other int, text byteview.ByteView, missing bool) {
	w.start(code)
	w.b.WriteInt(pos + 1)
	w.b.WriteString(" ")
	w.b.WriteString(op)
	if other >= 0 {
		w.b.WriteString(" ")
		w.b.WriteInt(other + 1)
	}
	w.b.WriteString(": ")
	w.b.WriteByteView(text.TrimNewline())
	w.end(code)
	if missing {
		w.b.WriteString(missingNewline[1:])
	}
}

func (w *listingWriter[T]) block(code string, op string, blk anchordiff.Block) {
	w.start(code)
	w.b.WriteString(op)
	w.b.WriteString(" ")
	w.b.WriteInt(blk.Pos + 1)
	w.b.WriteString(",")
	w.b.WriteInt(blk.Count)
	w.end(code)
}
