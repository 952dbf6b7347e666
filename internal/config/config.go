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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// anchordiff.Option.
package config

// Sentinels describes how sequence boundaries are handled.
type Sentinels int

const (
	// No sentinels, every position is reported.
	SentinelsNone Sentinels = iota

	// The first and the last element of each input are sentinels. They are aligned like any other
	// element but are excluded from blocks.
	SentinelsInline

	// Both inputs are bracketed with synthetic start and end elements that are unique by
	// construction. They are removed from all results.
	SentinelsSynthetic
)

// ColorConfig holds ANSI escape sequences for colored output. An empty string disables coloring
// for the respective part.
type ColorConfig struct {
	Header string
	Match  string
	Delete string
	Insert string
}

// Config collects all configurable parameters for alignment functions in this module.
type Config struct {
	// Boundary handling.
	Sentinels Sentinels

	// If set, runs of matches are split into separate blocks where the matching positions in the
	// new sequence are not consecutive.
	ContiguousMatches bool

	// Terminal colors used by textdiff.
	Color ColorConfig
}

// Default is the default configuration.
var Default = Config{
	Sentinels:         SentinelsNone,
	ContiguousMatches: false,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	InlineSentinels Flag = 1 << iota
	SyntheticSentinels
	ContiguousMatches
	TerminalColors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	var seen Flag
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
		seen |= flag
	}
	if seen&InlineSentinels != 0 && seen&SyntheticSentinels != 0 {
		panic("anchordiff.InlineSentinels and anchordiff.SyntheticSentinels are mutually exclusive")
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case InlineSentinels:
		return "anchordiff.InlineSentinels"
	case SyntheticSentinels:
		return "anchordiff.SyntheticSentinels"
	case ContiguousMatches:
		return "anchordiff.ContiguousMatches"
	case TerminalColors:
		return "textdiff.TerminalColors"
	default:
		panic("never reached")
	}
}
