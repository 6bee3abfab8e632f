// Copyright 2015 Google Inc.
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

package preprocessor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// processSource runs the directive processor over src as the root file
// "test.sc", returning the context and the resulting stream.
func processSource(t *testing.T, src string) (*context, *TokenStream) {
	t.Helper()
	c := newContext()
	c.rootFile = "test.sc"
	c.rootPath = "./"
	c.currentFile = "ERROR"
	c.errout = &bytes.Buffer{}
	c.loader = memLoader{"test.sc": src}
	table := NewDefineTable()
	return c, c.recursivePreprocess("test.sc", table)
}

// words returns the stream's token texts with newlines, whitespace, and
// blanked paste markers removed, for whitespace-insensitive comparison.
func words(s *TokenStream) []string {
	var out []string
	for _, tok := range s.ToSlice() {
		if tok.Kind == Newline || tok.Kind == Whitespace || tok.Text == "" {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

func countNewlines(s *TokenStream) int {
	n := 0
	for _, tok := range s.ToSlice() {
		if tok.Kind == Newline {
			n++
		}
	}
	return n
}

func TestDirectiveConditionals(t *testing.T) {
	for _, tt := range []struct {
		line int
		src  string
		want []string
	}{
		{line(), "#define A\n#ifdef A\n1\n#endif\n", []string{"1"}},
		{line(), "#ifdef A\n1\n#endif\n", nil},
		{line(), "#define A\n#ifnotdef A\n2\n#endif\n", nil},
		{line(), "#ifnotdef A\n2\n#endif\n", []string{"2"}},
		{line(), "#define A\n#ifndef A\n2\n#endif\n", nil},
		{line(), "#if 1\nyes\n#endif\n#if 0\nno\n#endif\n", []string{"yes"}},
		{line(), "#define N 3\n#if N*2 >= 6 && N != 0\nok\n#endif\n", []string{"ok"}},
		{line(), "#if 2 > 3\nno\n#endif\nafter\n", []string{"after"}},
		// Nested conditional inside a skipped region must not end the
		// outer skip early.
		{line(), "#if 0\n#ifdef A\nx\n#endif\ny\n#endif\nz\n", []string{"z"}},
		// Nested conditional inside a kept region.
		{line(), "#if 1\n#if 1\nboth\n#endif\n#endif\n", []string{"both"}},
	} {
		c, s := processSource(t, tt.src)
		if c.errorsCount != 0 {
			t.Errorf("line %d: unexpected errors: %d", tt.line, c.errorsCount)
		}
		if diff := cmp.Diff(tt.want, words(s), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("line %d: output mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestDirectiveSkipPreservesLineCount(t *testing.T) {
	for _, tt := range []struct {
		line int
		src  string
	}{
		{line(), "#ifdef A\none\ntwo\nthree\n#endif\nafter\n"},
		{line(), "#if 0\na\n#if 0\nb\n#endif\nc\n#endif\n"},
		{line(), "#define A\n#ifnotdef A\nx\n#endif\ny\n"},
	} {
		_, s := processSource(t, tt.src)
		want := strings.Count(tt.src, "\n")
		if got := countNewlines(s); got != want {
			t.Errorf("line %d: output has %d newlines, want %d", tt.line, got, want)
		}
	}
}

func TestDirectiveMissingEndif(t *testing.T) {
	c, _ := processSource(t, "#ifdef A\nx\n")
	if c.errorsCount != 1 {
		t.Errorf("errors = %d, want 1", c.errorsCount)
	}
	if got := c.errout.(*bytes.Buffer).String(); !strings.Contains(got, "Unexpected end of file") {
		t.Errorf("errors output %q does not mention the unterminated conditional", got)
	}
}

func TestDirectiveUnknown(t *testing.T) {
	c, _ := processSource(t, "#bogus\n")
	if c.errorsCount != 1 {
		t.Errorf("errors = %d, want 1", c.errorsCount)
	}
	if got := c.errout.(*bytes.Buffer).String(); !strings.Contains(got, "Unknown directive '#bogus'") {
		t.Errorf("errors output %q does not name the directive", got)
	}
}

func TestDirectiveDiagnostics(t *testing.T) {
	for _, tt := range []struct {
		line      int
		src       string
		wantLine  string
		wantCount int
	}{
		{line(), "\n#error boom\n", "test.sc (1) Error: boom", 1},
		{line(), "#warning watch out\n", "test.sc (0) Warning: watch out", 0},
		{line(), "#message hi there\n", "test.sc (0) hi there", 0},
	} {
		c, _ := processSource(t, tt.src)
		if c.errorsCount != tt.wantCount {
			t.Errorf("line %d: errors = %d, want %d", tt.line, c.errorsCount, tt.wantCount)
		}
		got := c.errout.(*bytes.Buffer).String()
		if !strings.Contains(got, tt.wantLine) {
			t.Errorf("line %d: diagnostics %q missing %q", tt.line, got, tt.wantLine)
		}
	}
}

func TestDirectiveLineContinuation(t *testing.T) {
	// The continuation backslash and its newline fold into the directive;
	// the swallowed newline is re-inserted after it, keeping the count.
	src := "#define LONG \\\n5\nLONG\n"
	c, s := processSource(t, src)
	if c.errorsCount != 0 {
		t.Errorf("unexpected errors: %d", c.errorsCount)
	}
	if diff := cmp.Diff([]string{"5"}, words(s)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if got, want := countNewlines(s), strings.Count(src, "\n"); got != want {
		t.Errorf("output has %d newlines, want %d", got, want)
	}
}

func TestDirectiveLineMacroTracksNewlines(t *testing.T) {
	_, s := processSource(t, "__LINE__\n__LINE__\n__LINE__\n")
	if diff := cmp.Diff([]string{"0", "1", "2"}, words(s)); diff != "" {
		t.Errorf("__LINE__ sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectiveFileMacro(t *testing.T) {
	_, s := processSource(t, "__FILE__\n")
	if diff := cmp.Diff([]string{`"test.sc"`}, words(s)); diff != "" {
		t.Errorf("__FILE__ mismatch (-want +got):\n%s", diff)
	}
}
