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

// Package color provides configuration for coloring textdiff listings using ANSI escape
// sequences.
//
// Specifying colors uses [Select Graphic Rendition parameters]. For example the code below,
// presents section headers in bold yellow:
//
//	Headers(1, 33)
//
// This is equivalent to the following raw ANSI sequence: \033[1;33m. Calling an option without
// parameters disables coloring for the respective part.
//
// It's the responsibility of the caller to ensure that the parameters are correct and supported
// by the underlying terminal.
//
// [Select Graphic Rendition parameters]: https://en.wikipedia.org/wiki/ANSI_escape_code#SGR
package color

import (
	"strconv"
	"strings"

	"znkr.io/anchordiff/internal/config"
)

// A Option makes it possible to configure custom colors in textdiff.TerminalColors.
type Option func(*config.ColorConfig)

// Headers colors the section headers of a listing.
func Headers(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Header = code
	}
}

// Matches colors matching lines and match blocks.
func Matches(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Match = code
	}
}

// Deletes colors deleted lines and delete blocks.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors inserted lines.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

func format(params []int) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('m')
	return sb.String()
}
