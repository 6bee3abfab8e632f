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

// This file implements the lexical scan of raw source bytes into a flat
// []Token sequence. The whole token sequence is materialized before
// directive processing begins, since the directive processor splices and
// erases arbitrarily far ahead and behind its cursor.

// Lex scans data and returns the resulting token sequence. Whitespace and
// comment bytes are consumed but never produce Whitespace/Comment tokens in
// the result; block comments instead surface as the Newline tokens they
// contained, so line counts survive their removal.
func Lex(data []byte) []Token {
	var out []Token
	pos := 0
	n := len(data)
	for pos < n {
		c := data[pos]

		if c == '/' && pos+1 < n && data[pos+1] == '*' {
			newlines, consumed := scanBlockComment(data, pos)
			pos += consumed
			for i := 0; i < newlines; i++ {
				out = append(out, Token{Kind: Newline, Text: "\n"})
			}
			continue
		}

		tok, consumed := lexOne(data, pos)
		pos += consumed
		switch tok.Kind {
		case Whitespace, Comment:
			// dropped
		default:
			out = append(out, tok)
		}
	}
	return out
}

// lexOne scans a single token (or a dropped whitespace/comment run)
// starting at pos, returning it and the number of bytes consumed.
func lexOne(data []byte, pos int) (Token, int) {
	n := len(data)
	c := data[pos]

	if kind, ok := isTrivial(c); ok {
		return Token{Kind: kind, Text: string(c)}, 1
	}

	if isIdentifierStart(c) {
		return lexIdentifier(data, pos)
	}

	if c == '#' {
		return lexPreprocessor(data, pos)
	}

	if isDigit(c) {
		return lexNumber(data, pos)
	}

	if c == '"' || c == '\'' {
		return lexString(data, pos, c)
	}

	if c == '/' && pos+1 < n && data[pos+1] == '/' {
		return lexLineComment(data, pos)
	}

	if c == '\\' {
		return Token{Kind: Backslash, Text: "\\"}, 1
	}

	return Token{Kind: Ignored, Text: string(c)}, 1
}

func lexIdentifier(data []byte, pos int) (Token, int) {
	start := pos
	n := len(data)
	for pos < n && isIdentifierBody(data[pos]) {
		pos++
	}
	return Token{Kind: Identifier, Text: string(data[start:pos])}, pos - start
}

// lexPreprocessor scans a '#' directive word, or the token-paste operator
// "##" (only recognized when the second '#' immediately follows the first,
// with no intervening whitespace).
func lexPreprocessor(data []byte, pos int) (Token, int) {
	start := pos
	n := len(data)
	pos++ // consume '#'
	if pos < n && data[pos] == '#' {
		return Token{Kind: Ignored, Text: "##"}, 2
	}
	for pos < n && (data[pos] == ' ' || data[pos] == '\t') {
		pos++
	}
	text := "#"
	if pos < n && isIdentifierStart(data[pos]) {
		idStart := pos
		for pos < n && isIdentifierBody(data[pos]) {
			pos++
		}
		text = "#" + string(data[idStart:pos])
	}
	return Token{Kind: Directive, Text: text}, pos - start
}

func lexNumber(data []byte, pos int) (Token, int) {
	start := pos
	n := len(data)
	pos++
	for pos < n {
		switch {
		case isDigit(data[pos]):
			pos++
		case data[pos] == '.':
			pos++
			for pos < n && isDigit(data[pos]) {
				pos++
			}
			if pos < n && data[pos] == 'f' {
				pos++
			}
			return Token{Kind: Number, Text: string(data[start:pos])}, pos - start
		case data[pos] == 'x':
			pos++
			for pos < n && isHex(data[pos]) {
				pos++
			}
			return Token{Kind: Number, Text: string(data[start:pos])}, pos - start
		default:
			return Token{Kind: Number, Text: string(data[start:pos])}, pos - start
		}
	}
	return Token{Kind: Number, Text: string(data[start:pos])}, pos - start
}

// lexString consumes a quoted literal, honoring '\' as a one-byte escape
// pass-through. The returned token text includes the surrounding quotes.
func lexString(data []byte, pos int, quote byte) (Token, int) {
	start := pos
	n := len(data)
	pos++ // opening quote
	for pos < n {
		if data[pos] == quote {
			pos++
			break
		}
		if data[pos] == '\\' {
			pos++
			if pos >= n {
				break
			}
		}
		pos++
	}
	return Token{Kind: String, Text: string(data[start:pos])}, pos - start
}

// scanBlockComment scans a /* ... */ comment, discarding its text but
// counting its embedded newlines: the caller re-emits that many Newline
// tokens in its place, so line counts survive the comment's removal.
func scanBlockComment(data []byte, pos int) (newlines, consumed int) {
	start := pos
	n := len(data)
	pos += 2 // "/*"
	for pos < n {
		if data[pos] == '\n' {
			newlines++
		}
		if data[pos] == '*' && pos+1 < n && data[pos+1] == '/' {
			pos += 2
			break
		}
		pos++
	}
	return newlines, pos - start
}

func lexLineComment(data []byte, pos int) (Token, int) {
	start := pos
	n := len(data)
	pos += 2 // "//"
	for pos < n && data[pos] != '\n' {
		pos++
	}
	return Token{Kind: Comment, Text: string(data[start:pos])}, pos - start
}
