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

// eval checks the aligner against real world inputs. It aligns every file changed by the
// commits of a git repository and reports alignments that violate an invariant. Optionally,
// it writes per-file statistics to a CSV file.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/go-cmp/cmp"
	"znkr.io/anchordiff"
	"znkr.io/anchordiff/internal/cmd/eval/internal/git"
	"znkr.io/anchordiff/textdiff"
)

type config struct {
	repo        string
	sample      int
	parallel    int
	stats       string
	determinism bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.determinism, "determinism", false, "align every input twice and compare the results")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

type change struct {
	commitID string
	path     string
	old, new []byte
}

type result struct {
	commitID string
	file     string
	variant  string
	N, M     int
	stats    anchordiff.Stats
	blocks   int
	duration time.Duration
}

var variants = []struct {
	name string
	opts []anchordiff.Option
}{
	{"default", nil},
	{"contiguous", []anchordiff.Option{anchordiff.ContiguousMatches()}},
}

func run(cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var commitsDone atomic.Int64
	var processed atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	repo, err := git.Open(cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %v", err)
	}

	commitIDs, err := repo.Commits()
	if err != nil {
		repo.Close()
		return fmt.Errorf("reading rev-list: %v", err)
	}
	if cfg.sample > 0 && cfg.sample < len(commitIDs) {
		sample := make([]string, 0, cfg.sample)
		for _, i := range rand.Perm(len(commitIDs))[:cfg.sample] {
			sample = append(sample, commitIDs[i])
		}
		commitIDs = sample
	}

	// Read changes.
	changes := make(chan change)
	var changesWG sync.WaitGroup
	chunkSize := max(1, len(commitIDs)/(4*runtime.GOMAXPROCS(0)))
	for chunk := range slices.Chunk(commitIDs, chunkSize) {
		changesWG.Add(1)
		go func() {
			defer changesWG.Done()
			for _, commitID := range chunk {
				files, err := repo.Changes(commitID)
				if err != nil {
					notes <- note{
						prefix: commitID,
						msg:    fmt.Sprintf("error processing commit: %v", err),
					}
				}
				for _, file := range files {
					if skip(file.Path) {
						continue
					}
					repo.Contents([]string{file.OldBlob, file.NewBlob}, func(res [][]byte) {
						if isBinary(res[0]) || isBinary(res[1]) {
							return
						}
						changes <- change{
							commitID: commitID,
							path:     file.Path,
							old:      res[0],
							new:      res[1],
						}
					})
				}
				commitsDone.Add(1)
			}
		}()
	}

	// Align changes. Every alignment runs on a single goroutine, the parallelism is across files.
	var processWG sync.WaitGroup
	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}
	for range cfg.parallel {
		processWG.Add(1)
		go func() {
			defer processWG.Done()
			for c := range changes {
				prefix := c.commitID + ":" + c.path
				for _, v := range variants {
					start := time.Now()
					a, err := textdiff.Align(c.old, c.new, v.opts...)
					duration := time.Since(start)
					if err != nil {
						notes <- note{prefix, fmt.Sprintf("%s: alignment failed: %v", v.name, err)}
						continue
					}
					if err := a.Validate(v.opts...); err != nil {
						notes <- note{prefix, fmt.Sprintf("%s: %v", v.name, err)}
					}
					if cfg.determinism {
						b, err := textdiff.Align(c.old, c.new, v.opts...)
						if err != nil {
							notes <- note{prefix, fmt.Sprintf("%s: second alignment failed: %v", v.name, err)}
						} else if diff := cmp.Diff(a, b); diff != "" {
							notes <- note{prefix, fmt.Sprintf("%s: alignment is not deterministic [-first,+second]:\n%s", v.name, diff)}
						}
					}
					if results != nil {
						results <- result{
							commitID: c.commitID,
							file:     c.path,
							variant:  v.name,
							N:        len(a.X),
							M:        len(a.Y),
							stats:    a.Stats(),
							blocks:   len(a.Blocks),
							duration: duration,
						}
					}
				}
				processed.Add(1)
			}
		}()
	}

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := 1.0
		if len(commitIDs) > 0 {
			progress = float64(commits) / float64(len(commitIDs))
		}
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, procPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d files/s) ", width, bar, 100*progress, commitsPerSec, procPerSec)
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	var statsWG sync.WaitGroup
	if results != nil {
		statsWG.Add(1)
		go func() {
			defer statsWG.Done()
			if err := writeStats(stats, results); err != nil {
				notes <- note{prefix: cfg.stats, msg: fmt.Sprintf("failed to write stats: %v", err)}
			}
		}()
	}

	// Shutdown
	changesWG.Wait()
	if err := repo.Close(); err != nil {
		notes <- note{prefix: cfg.repo, msg: fmt.Sprintf("reading blobs: %v", err)}
	}
	close(changes)
	processWG.Wait()
	if results != nil {
		close(results)
	}
	statsWG.Wait()
	close(done)
	ioWG.Wait()

	return nil
}

func writeStats(f *os.File, results <-chan result) error {
	w := bufio.NewWriter(f)
	var err error
	w.WriteString("commit_id,file,variant,N,M,matches,deletes,inserts,blocks,duration_ns\n")
	for r := range results {
		if err != nil {
			continue // drain
		}
		_, err = fmt.Fprintf(w, "%s,%s,%s,%d,%d,%d,%d,%d,%d,%d\n", r.commitID, r.file, r.variant, r.N, r.M, r.stats.Matches, r.stats.Deletes, r.stats.Inserts, r.blocks, r.duration.Nanoseconds())
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

// skip reports whether a file is unlikely to be text.
func skip(path string) bool {
	for _, ext := range []string{".zip", ".syso", ".png", ".jpg", ".gz"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// isBinary reports whether contents look like binary data.
func isBinary(contents []byte) bool {
	return bytes.IndexByte(contents[:min(len(contents), 8000)], 0) >= 0
}
