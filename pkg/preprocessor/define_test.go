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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDefine(t *testing.T) {
	for _, tt := range []struct {
		line       int
		in         string
		name       string
		wantParams map[string]int
		wantBody   []Token
		wantErrs   int
	}{
		{
			line: line(),
			in:   "#define X 5",
			name: "X",
			wantBody: []Token{
				{Number, "5"},
			},
		},
		{
			line: line(),
			in:   "#define EMPTY",
			name: "EMPTY",
		},
		{
			line:       line(),
			in:         "#define ADD #(a, b) a + b",
			name:       "ADD",
			wantParams: map[string]int{"a": 0, "b": 1},
			wantBody: []Token{
				{Identifier, "a"}, {Ignored, "+"}, {Identifier, "b"},
			},
		},
		{
			// "##" survives as a token but its text is blanked, so paste
			// sites emit nothing at output time.
			line: line(),
			in:   "#define GLUE #(a, b) a ## b",
			name: "GLUE",
			wantParams: map[string]int{
				"a": 0, "b": 1,
			},
			wantBody: []Token{
				{Identifier, "a"}, {Ignored, ""}, {Identifier, "b"},
			},
		},
		{
			line:     line(),
			in:       "#define",
			wantErrs: 1,
		},
		{
			line:     line(),
			in:       "#define 5 x",
			wantErrs: 1,
		},
		{
			// "#" marks a function-like definition, so "(" must follow.
			line:     line(),
			in:       "#define BAD # 5",
			wantErrs: 1,
		},
		{
			line:     line(),
			in:       "#define BAD #(5) x",
			wantErrs: 1,
		},
	} {
		c := newContext()
		table := NewDefineTable()
		c.parseDefine(table, Lex([]byte(tt.in)))

		if c.errorsCount != tt.wantErrs {
			t.Errorf("line %d: parseDefine(%q) errors = %d, want %d", tt.line, tt.in, c.errorsCount, tt.wantErrs)
		}
		if tt.name == "" {
			continue
		}
		entry, ok := table.Get(tt.name)
		if !ok {
			t.Errorf("line %d: parseDefine(%q) did not store %q", tt.line, tt.in, tt.name)
			continue
		}
		if diff := cmp.Diff(tt.wantParams, entry.Params); diff != "" {
			t.Errorf("line %d: params mismatch (-want +got):\n%s", tt.line, diff)
		}
		if diff := cmp.Diff(tt.wantBody, entry.Body); diff != "" {
			t.Errorf("line %d: body mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestParseDefineExpandsBodyAtDefinitionTime(t *testing.T) {
	c := newContext()
	table := NewDefineTable()
	c.parseDefine(table, Lex([]byte("#define ONE 1")))
	c.parseDefine(table, Lex([]byte("#define TWO ONE + ONE")))

	entry, _ := table.Get("TWO")
	want := []Token{
		{Number, "1"}, {Ignored, "+"}, {Number, "1"},
	}
	if diff := cmp.Diff(want, entry.Body); diff != "" {
		t.Errorf("TWO's body not pre-expanded (-want +got):\n%s", diff)
	}
}

func TestParseDefineOverwrites(t *testing.T) {
	c := newContext()
	table := NewDefineTable()
	c.parseDefine(table, Lex([]byte("#define X 1")))
	c.parseDefine(table, Lex([]byte("#define X 2")))

	entry, _ := table.Get("X")
	if diff := cmp.Diff([]Token{{Number, "2"}}, entry.Body); diff != "" {
		t.Errorf("redefinition did not overwrite (-want +got):\n%s", diff)
	}
}

func TestParseUndefErrors(t *testing.T) {
	for _, tt := range []struct {
		line     int
		in       string
		wantErrs int
	}{
		{line(), "#undef X", 0},
		{line(), "#undef", 1},
		{line(), "#undef X Y", 1},
	} {
		c := newContext()
		table := NewDefineTable()
		c.parseDefine(table, Lex([]byte("#define X 1")))
		c.errorsCount = 0
		c.parseUndef(table, Lex([]byte(tt.in)))
		if c.errorsCount != tt.wantErrs {
			t.Errorf("line %d: parseUndef(%q) errors = %d, want %d", tt.line, tt.in, c.errorsCount, tt.wantErrs)
		}
	}
}

func TestDefineTableClone(t *testing.T) {
	c := newContext()
	table := NewDefineTable()
	c.parseDefine(table, Lex([]byte("#define X 1")))

	clone := table.Clone()
	c.parseDefine(clone, Lex([]byte("#define X 2")))
	c.parseDefine(clone, Lex([]byte("#define Y 3")))

	entry, _ := table.Get("X")
	if diff := cmp.Diff([]Token{{Number, "1"}}, entry.Body); diff != "" {
		t.Errorf("mutating the clone changed the source table (-want +got):\n%s", diff)
	}
	if table.Has("Y") {
		t.Error("mutating the clone added entries to the source table")
	}
}

func TestPredefinedMacros(t *testing.T) {
	table := NewDefineTable()
	table.setFileMacro("script.as")
	table.setLineMacro(12)

	file, _ := table.Get("__FILE__")
	if diff := cmp.Diff([]Token{{String, `"script.as"`}}, file.Body); diff != "" {
		t.Errorf("__FILE__ mismatch (-want +got):\n%s", diff)
	}
	lineEntry, _ := table.Get("__LINE__")
	if diff := cmp.Diff([]Token{{Number, "12"}}, lineEntry.Body); diff != "" {
		t.Errorf("__LINE__ mismatch (-want +got):\n%s", diff)
	}
}
