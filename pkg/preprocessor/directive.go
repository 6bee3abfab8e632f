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

import "strings"

// This file implements the directive processor: the per-file walk that
// drives line counting, macro expansion, conditional compilation, and
// recursive #include, and translates one textual directive line into the
// token-stream surgery it requires.

// recursivePreprocess lexes filename (loaded through c.loader) and walks
// its tokens, recursing into every #include it finds, returning the fully
// expanded token sequence for filename and everything it pulled in.
func (c *context) recursivePreprocess(filename string, table *DefineTable) *TokenStream {
	startLine := c.currentLine
	c.linesThisFile = 0
	c.currentFile = filename
	table.setFileMacro(c.currentFile)
	table.setLineMacro(c.linesThisFile)

	c.addFilePreprocessed(c.rootPath + c.currentFile)

	data, loaded := c.loader.LoadFile(c.rootPath, filename)
	if !loaded {
		c.printError("Could not open file " + c.rootPath + filename)
		return NewTokenStream()
	}
	if len(data) == 0 {
		return NewTokenStream()
	}

	s := NewTokenStreamFromSlice(Lex(data))

	old := s.End()
	for p := s.Front(); p != s.End(); {
		tok := TokAt(p)
		switch tok.Kind {
		case Newline:
			if p != old {
				c.currentLine++
				c.linesThisFile++
				table.setLineMacro(c.linesThisFile)
			}
			old = p
			p = p.Next()

		case Directive:
			startOfLine := p
			directive, endOfLine := c.parsePreprocessorLine(s, p)

			if c.skipPragmas && len(directive) > 0 && directive[0].Text == "#pragma" {
				p = endOfLine
				for it := startOfLine; it != endOfLine; {
					next := it.Next()
					s.InsertBefore(next, Token{Kind: Whitespace, Text: " "})
					it = next
				}
				continue
			}

			p = s.EraseRange(startOfLine, endOfLine)
			if len(directive) == 0 {
				continue
			}

			switch directive[0].Text {
			case "#define":
				c.parseDefine(table, directive)

			case "#ifdef":
				name := c.parseIf(directive)
				if !table.Has(name) {
					p = s.EraseRange(p, c.parseIfDefSkip(s, p))
				}

			case "#ifndef", "#ifnotdef":
				name := c.parseIf(directive)
				if table.Has(name) {
					p = s.EraseRange(p, c.parseIfDefSkip(s, p))
				}

			case "#if":
				if !c.evaluateExpression(table, directive) {
					p = s.EraseRange(p, c.parseIfDefSkip(s, p))
				}

			case "#endif":
				// nothing to do; #ifdef/#ifndef/#if already consumed the
				// block up to and including a matching #endif when false.

			case "#undef":
				c.parseUndef(table, directive)

			case "#include":
				c.lnt.AddLineRange(c.prependRootPath(filename), startLine, c.currentLine-c.linesThisFile)
				saveLinesThisFile := c.linesThisFile

				includeName := removeQuotes(c.parseIf(directive))
				if c.includeTranslator != nil {
					includeName = c.includeTranslator.Rewrite(includeName)
				}
				c.addFileDependency(includeName)

				included := c.recursivePreprocess(addPaths(filename, includeName), table)
				s.SpliceBefore(p, included)

				startLine = c.currentLine
				c.linesThisFile = saveLinesThisFile
				c.currentFile = filename
				table.setFileMacro(c.currentFile)
				table.setLineMacro(c.linesThisFile)

			case "#pragma":
				c.parsePragma(directive[1:])

			case "#message":
				c.printMessage(c.parseTextLine(directive))

			case "#warning":
				c.printWarning(c.parseTextLine(directive))

			case "#error":
				c.printError(c.parseTextLine(directive))

			default:
				c.printError("Unknown directive '" + directive[0].Text + "'.")
			}

		case Identifier:
			p = c.expandDefine(s, p, table)

		default:
			p = p.Next()
		}
	}

	c.lnt.AddLineRange(c.prependRootPath(filename), startLine, c.currentLine-c.linesThisFile)
	return s
}

// parsePreprocessorLine scans the directive starting at p through to the
// end of its logical line, folding "\<newline>" continuations into single
// spaces so a multi-line #define reads as one directive. It returns a copy
// of the directive's tokens and the position of the line's terminating
// Newline token (left untouched in s, so the caller's line counting still
// sees it). Continuation newlines swallowed along the way are restored as
// synthetic Newline tokens immediately after that terminator, so removing
// the directive never shifts later line numbers.
func (c *context) parsePreprocessorLine(s *TokenStream, p Pos) ([]Token, Pos) {
	start := p
	spaces := 0
	prev := p
	for p != s.End() {
		tok := TokAt(p)
		if tok.Kind == Newline {
			if prev == p || TokAt(prev).Kind != Backslash {
				break
			}
			s.Erase(prev)
			tok.Kind = Whitespace
			tok.Text = " "
			spaces++
		}
		prev = p
		p = p.Next()
	}

	endOfLine := p
	if spaces > 0 {
		insertAt := s.End()
		if p != s.End() {
			insertAt = p.Next()
		}
		for i := 0; i < spaces; i++ {
			s.InsertBefore(insertAt, Token{Kind: Newline, Text: "\n"})
		}
	}

	return sliceBetween(start, endOfLine), endOfLine
}

func sliceBetween(from, to Pos) []Token {
	var out []Token
	for p := from; p != to; p = p.Next() {
		out = append(out, *TokAt(p))
	}
	return out
}

// parseIfDefSkip scans forward from p, which must sit just after an
// unsatisfied #ifdef/#ifndef/#if directive, tracking nested conditionals
// by depth, until it passes a #endif at depth 0. It then turns the N
// tokens ending with that #endif into Newline tokens, N being the number
// of newlines it skipped over, and returns the position of the first of
// them, so erasing [p, result) drops the conditional's body without
// losing its line count. If no #endif is found it reports an error and
// returns the end of the stream.
func (c *context) parseIfDefSkip(s *TokenStream, p Pos) Pos {
	depth := 0
	newlines := 0
	foundEnd := false

loop:
	for p != s.End() {
		tok := TokAt(p)
		switch tok.Kind {
		case Newline:
			newlines++
		case Directive:
			switch {
			case tok.Text == "#endif" && depth == 0:
				p = p.Next()
				foundEnd = true
				break loop
			case tok.Text == "#ifdef" || tok.Text == "#ifndef" || tok.Text == "#ifnotdef" || tok.Text == "#if":
				depth++
			case tok.Text == "#endif" && depth > 0:
				depth--
			}
		}
		p = p.Next()
	}

	if p == s.End() && !foundEnd {
		c.printError("0x0FA4 Unexpected end of file.")
		return p
	}

	for newlines > 0 {
		prev := p.Prev()
		if prev == nil {
			break
		}
		p = prev
		tok := TokAt(p)
		tok.Kind = Newline
		tok.Text = "\n"
		newlines--
	}
	return p
}

// parseIf implements the single-argument directive shape shared by
// #ifdef, #ifndef, and #include: directive's second token is the name (or
// quoted filename), and anything past it is an error.
func (c *context) parseIf(directive []Token) string {
	directive = directive[1:]
	if len(directive) == 0 {
		c.printError("Expected argument.")
		return ""
	}
	name := directive[0].Text
	if len(directive) > 1 {
		c.printError("Too many arguments.")
	}
	return name
}

// parseTextLine joins #message/#warning/#error's remaining tokens with a
// single space, for display as a plain diagnostic message.
func (c *context) parseTextLine(directive []Token) string {
	directive = directive[1:]
	parts := make([]string, len(directive))
	for i, t := range directive {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// removeQuotes strips the surrounding quote characters from a string
// literal's raw text.
func removeQuotes(in string) string {
	if len(in) < 2 {
		return in
	}
	return in[1 : len(in)-1]
}

// addPaths resolves second (an #include argument) relative to the
// directory containing first (the including file), the way a C
// preprocessor resolves a quoted include relative to its own file rather
// than the process's working directory.
func addPaths(first, second string) string {
	idx := strings.LastIndexByte(first, '/')
	if idx <= 0 {
		return second
	}
	return first[:idx+1] + second
}
