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

// anchordiff aligns two files line by line and prints a listing of the alignment.
//
// Usage:
//
//	anchordiff [-color] [-contiguous] <x> <y>
//	anchordiff [-color] [-contiguous] -txtar <file>
//
// With -txtar, the inputs are read from the files named "x" and "y" in a txtar archive.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/txtar"
	"znkr.io/anchordiff"
	"znkr.io/anchordiff/textdiff"
)

type config struct {
	color      bool
	contiguous bool
	x, y       string
	txtar      string
}

func main() {
	var cfg config
	flag.BoolVar(&cfg.color, "color", false, "colorize the listing")
	flag.BoolVar(&cfg.contiguous, "contiguous", false, "split match blocks where the new positions are not consecutive")
	flag.StringVar(&cfg.txtar, "txtar", "", "use txtar file instead of two input files")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: anchordiff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: anchordiff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	x, y, err := readInputs(cfg)
	if err != nil {
		return err
	}

	var opts []anchordiff.Option
	if cfg.color {
		opts = append(opts, textdiff.TerminalColors())
	}
	if cfg.contiguous {
		opts = append(opts, anchordiff.ContiguousMatches())
	}

	out, err := textdiff.Listing(x, y, opts...)
	if err != nil {
		return fmt.Errorf("aligning inputs: %v", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func readInputs(cfg config) (x, y []byte, err error) {
	if cfg.txtar != "" {
		ar, err := txtar.ParseFile(cfg.txtar)
		if err != nil {
			return nil, nil, err
		}
		var hasX, hasY bool
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				x, hasX = f.Data, true
			case "y":
				y, hasY = f.Data, true
			}
		}
		if !hasX || !hasY {
			return nil, nil, fmt.Errorf("%s: archive must contain files x and y", cfg.txtar)
		}
		return x, y, nil
	}

	x, err = os.ReadFile(cfg.x)
	if err != nil {
		return nil, nil, fmt.Errorf("reading old file: %v", err)
	}
	y, err = os.ReadFile(cfg.y)
	if err != nil {
		return nil, nil, fmt.Errorf("reading new file: %v", err)
	}
	return x, y, nil
}
