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

package textdiff

import (
	"znkr.io/anchordiff"
	"znkr.io/anchordiff/internal/config"
	"znkr.io/anchordiff/textdiff/color"
)

// TerminalColors enables colored output using ANSI escape sequences. By default, section headers
// are cyan, deleted lines are red, inserted lines are green, and matches are not colored. The
// colors can be changed with options from the [color] package.
func TerminalColors(opts ...color.Option) anchordiff.Option {
	cc := config.ColorConfig{
		Header: "\033[36m",
		Delete: "\033[31m",
		Insert: "\033[32m",
	}
	for _, opt := range opts {
		opt(&cc)
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Color = cc
		return config.TerminalColors
	}
}
