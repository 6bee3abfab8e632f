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

import "fmt"

// Kind classifies a Token. Kind values mirror the lexical classes of
// the source grammar; Whitespace and Comment are dropped at lex time
// and never appear in Lex's output. The directive processor does write
// Whitespace tokens into a TokenStream (folded line continuations,
// padding around skipped #pragma lines).
type Kind int

const (
	Identifier Kind = iota
	Number
	String
	Comma
	Semicolon
	Open
	Close
	Directive
	Newline
	Whitespace
	Comment
	Backslash
	Ignored
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case String:
		return "String"
	case Comma:
		return "Comma"
	case Semicolon:
		return "Semicolon"
	case Open:
		return "Open"
	case Close:
		return "Close"
	case Directive:
		return "Directive"
	case Newline:
		return "Newline"
	case Whitespace:
		return "Whitespace"
	case Comment:
		return "Comment"
	case Backslash:
		return "Backslash"
	case Ignored:
		return "Ignored"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a single lexical unit: a kind plus its literal text.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// trivials lists the single-byte tokens recognized positionally: each
// byte at index i produces a token of trivialKinds[i].
const trivials = ",;\n\r\t [{(]})"

var trivialKinds = [len(trivials)]Kind{
	Comma, Semicolon, Newline, Whitespace, Whitespace, Whitespace,
	Open, Open, Open, Close, Close, Close,
}

func isTrivial(c byte) (Kind, bool) {
	for i := 0; i < len(trivials); i++ {
		if trivials[i] == c {
			return trivialKinds[i], true
		}
	}
	return 0, false
}

func isIdentifierStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierBody(c byte) bool {
	return isIdentifierStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
