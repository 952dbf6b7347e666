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

// Package benchmarks compares the aligner with line diffs from other Go libraries.
package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/anchordiff"
	"znkr.io/anchordiff/textdiff"
	"znkr.io/diff"
)

// Impl is a line diff implementation. Diff returns a line oriented diff where every deleted line
// is prefixed with '-' and every inserted line with '+'.
type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

var Impls = []Impl{
	{
		Name: "anchordiff",
		Diff: func(x, y []byte) []byte {
			out, err := alignedDiff(x, y)
			if err != nil {
				panic(err)
			}
			return out
		},
	},
	{
		Name: "znkr",
		Diff: func(x, y []byte) []byte {
			// Moved lines are a delete and an insert for a minimal edit script.
			xlines, ylines := splitLines(x), splitLines(y)
			var buf bytes.Buffer
			for _, edit := range diff.Edits(xlines, ylines) {
				switch edit.Op {
				case diff.Match:
					buf.WriteString(" ")
					buf.WriteString(edit.X)
				case diff.Delete:
					buf.WriteString("-")
					buf.WriteString(edit.X)
				case diff.Insert:
					buf.WriteString("+")
					buf.WriteString(edit.Y)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				text := diff.Text

				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					lines := strings.SplitAfter(text, "\n")
					for _, line := range lines {
						if line == "" {
							continue
						}
						buf.WriteString("+")
						buf.WriteString(line)
					}

				case diffmatchpatch.DiffDelete:
					lines := strings.SplitAfter(text, "\n")
					for _, line := range lines {
						if line == "" {
							continue
						}
						buf.WriteString("-")
						buf.WriteString(line)
					}

				case diffmatchpatch.DiffEqual:
					lines := strings.SplitAfter(text, "\n")
					for _, line := range lines {
						if line == "" {
							continue
						}
						buf.WriteString(" ")
						buf.WriteString(line)
					}
				}
			}

			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a, b := 0, 0
			for _, ch := range changes {
				for a < ch.A {
					buf.WriteString(" ")
					buf.Write(d.x[a])
					a++
					b++
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
					a++
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
					b++
				}
			}
			for a < len(d.x) {
				buf.WriteString(" ")
				buf.Write(d.x[a])
				a++
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }

// alignedDiff renders an alignment as a line diff. Matched lines are written in the order of x, so
// moved lines don't count as edits. Lines that only exist in y are appended at the end.
func alignedDiff(x, y []byte) ([]byte, error) {
	a, err := textdiff.Align(x, y, anchordiff.ContiguousMatches())
	if err != nil {
		return nil, err
	}
	xlines, ylines := splitLines(x), splitLines(y)
	var buf bytes.Buffer
	for _, blk := range a.Blocks {
		for i := range blk.Count {
			switch blk.Op {
			case anchordiff.Match:
				buf.WriteString(" ")
				buf.WriteString(ylines[blk.Pos+i])
			case anchordiff.Delete:
				buf.WriteString("-")
				buf.WriteString(xlines[blk.Pos+i])
			}
		}
	}
	for t, r := range a.Y {
		if r.Kind == anchordiff.Inserted {
			buf.WriteString("+")
			buf.WriteString(ylines[t])
		}
	}
	return buf.Bytes(), nil
}

// splitLines splits s after every newline. A last line without a newline is kept.
func splitLines(s []byte) []string {
	lines := strings.SplitAfter(string(s), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
