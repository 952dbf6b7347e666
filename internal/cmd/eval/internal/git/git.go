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

// Package git provides read access to a repository for evaluations. It shells out to the git
// binary and keeps a single `git cat-file --batch-command` process around to read blobs.
package git

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// nullID is the blob ID git reports for the missing side of an added or deleted file.
const nullID = "0000000000000000000000000000000000000000"

// Number of blob requests that are sent to git cat-file before flushing.
const batchSize = 32

// Repo is a git repository.
type Repo struct {
	dir string
	cat *catFile
}

// Open opens the repository in dir and starts the blob reader.
func Open(dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	cat, err := startCatFile(dir)
	if err != nil {
		return nil, err
	}
	return &Repo{dir: dir, cat: cat}, nil
}

// Close stops the blob reader. It waits until all callbacks of pending [Repo.Contents] calls have
// returned and reports the first error the blob reader encountered.
func (r *Repo) Close() error {
	return r.cat.close()
}

// Commits returns the IDs of all non-merge commits reachable from HEAD, newest first.
func (r *Repo) Commits() ([]string, error) {
	out, err := git("-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Change is a file modified by a commit.
type Change struct {
	Path    string
	OldBlob string
	NewBlob string
}

// Changes returns the files changed by a commit relative to its first parent. Added and deleted
// files are reported with an empty old or new blob respectively.
func (r *Repo) Changes(commit string) ([]Change, error) {
	out, err := git("-C", r.dir, "diff-tree", "-r", "--no-commit-id", commit)
	if err != nil {
		return nil, err
	}
	var ret []Change
	for line := range strings.SplitSeq(out, "\n") {
		if line == "" {
			continue
		}
		c, err := parseDiffTreeLine(line)
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// parseDiffTreeLine parses a line in the raw diff-tree format:
//
//	:<old mode> <new mode> <old blob> <new blob> <status>\t<path>
func parseDiffTreeLine(line string) (Change, error) {
	meta, path, ok := strings.Cut(line, "\t")
	if !ok || !strings.HasPrefix(meta, ":") {
		return Change{}, fmt.Errorf("malformed diff-tree line: %q", line)
	}
	fields := strings.Fields(meta[1:])
	if len(fields) != 5 {
		return Change{}, fmt.Errorf("found %d fields in diff-tree line, expected 5: %q", len(fields), line)
	}
	c := Change{Path: path, OldBlob: fields[2], NewBlob: fields[3]}
	if c.OldBlob == nullID {
		c.OldBlob = ""
	}
	if c.NewBlob == nullID {
		c.NewBlob = ""
	}
	return c, nil
}

// Contents reads the blobs with the given IDs asynchronously. When all blobs are read, cb is
// called with their contents in the same order. An empty ID yields empty contents. The callback
// is invoked from a single goroutine shared by all calls to Contents; it must not block on
// another call to Contents.
func (r *Repo) Contents(ids []string, cb func([][]byte)) {
	r.cat.reqs <- request{ids, cb}
}

func git(args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.Command("git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}

type request struct {
	ids []string
	cb  func([][]byte)
}

// catFile pipelines blob requests through git cat-file. A writer goroutine sends requests in
// batches and a reader goroutine parses the responses in the same order.
type catFile struct {
	cmd    *exec.Cmd
	stderr bytes.Buffer
	reqs   chan request
	done   chan struct{}
	err    error // written by the reader before done is closed
}

func startCatFile(dir string) (*catFile, error) {
	c := &catFile{
		cmd:  exec.Command("git", "-C", dir, "cat-file", "--batch-command", "--buffer"),
		reqs: make(chan request),
		done: make(chan struct{}),
	}
	c.cmd.Stderr = &c.stderr
	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %v", err)
	}
	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %v", err)
	}
	if err := c.cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %v", err)
	}

	pending := make(chan []request, batchSize)
	go c.write(stdin, pending)
	go c.read(bufio.NewReader(stdout), pending)
	return c, nil
}

func (c *catFile) close() error {
	close(c.reqs)
	<-c.done
	werr := c.cmd.Wait()
	if c.err != nil {
		return c.err
	}
	if werr != nil {
		return fmt.Errorf("git cat-file: %v\n%s", werr, c.stderr.String())
	}
	return nil
}

func (c *catFile) write(stdin io.WriteCloser, pending chan<- []request) {
	defer close(pending)
	defer stdin.Close()

	w := bufio.NewWriter(stdin)
	for {
		req, ok := <-c.reqs
		if !ok {
			return
		}
		batch := []request{req}
		closed := false
	Batch:
		for len(batch) < batchSize {
			select {
			case req, ok := <-c.reqs:
				if !ok {
					closed = true
					break Batch
				}
				batch = append(batch, req)
			default:
				break Batch
			}
		}

		for _, req := range batch {
			for _, id := range req.ids {
				if id != "" {
					fmt.Fprintf(w, "contents %s\n", id)
				}
			}
		}
		// Write errors surface in the reader as a short read.
		w.WriteString("flush\n")
		w.Flush()

		pending <- batch
		if closed {
			return
		}
	}
}

func (c *catFile) read(r *bufio.Reader, pending <-chan []request) {
	defer close(c.done)
	for batch := range pending {
		for _, req := range batch {
			if c.err != nil {
				continue
			}
			out := make([][]byte, len(req.ids))
			for i, id := range req.ids {
				if id == "" {
					continue
				}
				blob, err := readBlob(r, id)
				if err != nil {
					c.err = err
					c.cmd.Process.Kill()
					break
				}
				out[i] = blob
			}
			if c.err == nil {
				req.cb(out)
			}
		}
	}
}

// readBlob reads a single response of the form "<id> <type> <size>\n<contents>\n".
func readBlob(r *bufio.Reader, id string) ([]byte, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading header for %s: %v", id, err)
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, fmt.Errorf("found %d fields in header, expected 3: %q", len(fields), line)
	}
	if fields[0] != id {
		return nil, fmt.Errorf("ids don't match %s vs %s", fields[0], id)
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing size of %s: %v", id, err)
	}
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading contents of %s: %v", id, err)
	}
	return buf[:n], nil
}
