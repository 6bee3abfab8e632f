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

	"github.com/stretchr/testify/assert"
)

// expandAll runs expandDefine repeatedly over the whole stream (the same
// rescanning loop the directive processor uses over Identifier tokens),
// returning the fully expanded token text in order.
func expandAll(t *testing.T, table *DefineTable, src string) []string {
	t.Helper()
	c := newContext()
	s := NewTokenStreamFromSlice(Lex([]byte(src)))
	for p := s.Front(); p != s.End(); {
		if TokAt(p).Kind == Identifier {
			p = c.expandDefine(s, p, table)
			continue
		}
		p = p.Next()
	}
	var out []string
	for _, tok := range s.ToSlice() {
		if tok.Kind == Newline || tok.Kind == Whitespace {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

func TestExpandObjectLikeMacro(t *testing.T) {
	table := NewDefineTable()
	c := newContext()
	c.parseDefine(table, Lex([]byte("#define FOO bar")))

	got := expandAll(t, table, "FOO")
	assert.Equal(t, []string{"bar"}, got)
}

func TestExpandFunctionLikeMacro(t *testing.T) {
	table := NewDefineTable()
	c := newContext()
	c.parseDefine(table, Lex([]byte("#define ADD #(a, b) a + b")))

	got := expandAll(t, table, "ADD(1, 2)")
	assert.Equal(t, []string{"1", "+", "2"}, got)
}

func TestExpandNestedMacro(t *testing.T) {
	table := NewDefineTable()
	c := newContext()
	c.parseDefine(table, Lex([]byte("#define INNER 1 + 1")))
	c.parseDefine(table, Lex([]byte("#define OUTER INNER * 2")))

	got := expandAll(t, table, "OUTER")
	assert.Equal(t, []string{"1", "+", "1", "*", "2"}, got)
}

func TestExpandFunctionLikeWrongArgCount(t *testing.T) {
	table := NewDefineTable()
	c := newContext()
	c.parseDefine(table, Lex([]byte("#define ADD #(a, b) a + b")))

	s := NewTokenStreamFromSlice(Lex([]byte("ADD(1)")))
	p := c.expandDefine(s, s.Front(), table)
	_ = p
	assert.Equal(t, 1, c.errorsCount)
}

func TestUndefRemovesDefine(t *testing.T) {
	table := NewDefineTable()
	c := newContext()
	c.parseDefine(table, Lex([]byte("#define FOO bar")))
	c.parseUndef(table, Lex([]byte("#undef FOO")))

	assert.False(t, table.Has("FOO"))
}
