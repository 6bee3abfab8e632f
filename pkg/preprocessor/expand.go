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

// This file implements macro expansion: substituting a defined
// identifier with its replacement body, parsing the argument list of
// function-like macros, and rescanning the inserted tokens so nested
// macros resolve transitively.

// parseStatement collects tokens from p up to (but not including) a comma
// or close-bracket at nesting depth 0, or a semicolon at depth 0,
// tracking Open/Close nesting. It returns the collected tokens and the
// position just after them.
func (c *context) parseStatement(s *TokenStream, p Pos) ([]Token, Pos) {
	var dest []Token
	depth := 0
	for p != s.End() {
		tok := TokAt(p)
		if tok.Text == "," && depth == 0 {
			return dest, p
		}
		if tok.Kind == Close && depth == 0 {
			return dest, p
		}
		if tok.Kind == Semicolon && depth == 0 {
			return dest, p
		}
		dest = append(dest, *tok)
		if tok.Kind == Open {
			depth++
		}
		if tok.Kind == Close {
			if depth == 0 {
				c.printError("Mismatched braces while parsing statement.")
			}
			depth--
		}
		p = p.Next()
	}
	return dest, p
}

// parseDefineArguments parses a comma-separated, parenthesized argument
// list starting at p (which must be "("), erasing the consumed "(...)"
// span from s. It returns the parsed argument token lists and the
// position just after the removed span.
func (c *context) parseDefineArguments(s *TokenStream, p Pos) ([][]Token, Pos) {
	if p == s.End() || TokAt(p).Text != "(" {
		c.printError("Expected argument list.")
		return nil, p
	}
	beginErase := p
	p = p.Next()

	var args [][]Token
	for p != s.End() {
		prev := p
		var arg []Token
		arg, p = c.parseStatement(s, p)
		if p == prev {
			return args, s.EraseRange(beginErase, p)
		}
		args = append(args, arg)

		if p == s.End() {
			c.printError("0x0FA1 Unexpected end of file.")
			return args, s.EraseRange(beginErase, p)
		}
		if TokAt(p).Text == "," {
			p = p.Next()
			if p == s.End() {
				c.printError("0x0FA2 Unexpected end of file.")
				return args, s.EraseRange(beginErase, p)
			}
			continue
		}
		if TokAt(p).Text == ")" {
			p = p.Next()
			break
		}
	}

	return args, s.EraseRange(beginErase, p)
}

// expandDefine is the expansion entry point: if
// the identifier at p is defined, it is erased and replaced by its
// (possibly argument-substituted) body; the returned position is the one
// just before the inserted tokens, so the caller rescans them for nested
// macros. If p is not a defined identifier, expandDefine just advances
// past it.
func (c *context) expandDefine(s *TokenStream, p Pos, table *DefineTable) Pos {
	entry, ok := table.Get(TokAt(p).Text)
	if !ok {
		return p.Next()
	}
	p = s.Erase(p)
	// anchor is captured immediately after erasing the identifier, before
	// any further mutation (argument parsing, insertion): it names the
	// token preceding the whole expansion, so the caller's walk resumes
	// one step early and naturally re-enters the freshly inserted tokens.
	anchor, anchorAtFront := anchorBefore(s, p)

	if !entry.IsFunctionLike() {
		s.InsertSliceBefore(p, entry.Body)
		return resumeAt(s, anchor, anchorAtFront)
	}

	args, next := c.parseDefineArguments(s, p)
	p = next

	if len(entry.Params) != len(args) {
		c.printError("Didn't supply right number of arguments to define.")
		return s.End()
	}

	body := make([]Token, len(entry.Body))
	copy(body, entry.Body)

	var expanded []Token
	for _, tok := range body {
		if idx, ok := entry.Params[tok.Text]; ok && tok.Kind == Identifier {
			expanded = append(expanded, args[idx]...)
			continue
		}
		expanded = append(expanded, tok)
	}

	s.InsertSliceBefore(p, expanded)
	return resumeAt(s, anchor, anchorAtFront)
}

// anchorBefore returns the position immediately preceding p (before any
// further mutation happens), and whether p was the first element of the
// stream (in which case there is no preceding position).
func anchorBefore(s *TokenStream, p Pos) (anchor Pos, atFront bool) {
	if p == s.Front() {
		return nil, true
	}
	if p == s.End() {
		// The stream may be empty, or p is past the last element;
		// either way the preceding position is the current back.
		return lastOf(s), s.Len() == 0
	}
	return p.Prev(), false
}

func lastOf(s *TokenStream) Pos {
	var last Pos
	for e := s.Front(); e != s.End(); e = e.Next() {
		last = e
	}
	return last
}

// resumeAt turns an anchor computed by anchorBefore into the position the
// outer walk should resume at: one step before the inserted tokens so
// they are revisited (enabling transitive macro rescanning), or the new
// front of the stream if there was nothing before the expansion site.
func resumeAt(s *TokenStream, anchor Pos, atFront bool) Pos {
	if atFront {
		if s.Front() == nil {
			return s.End()
		}
		return s.Front()
	}
	return anchor
}
