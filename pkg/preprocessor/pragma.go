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

// PragmaInstance describes one #pragma occurrence as delivered to a
// PragmaCallback: its (optional) string-literal argument, unquoted, and
// the location it appeared at. The pragma's name is passed to CallPragma
// separately.
type PragmaInstance struct {
	Text            string
	CurrentFile     string
	CurrentFileLine int
	RootFile        string
	GlobalLine      int
}

// PragmaCallback receives every #pragma the directive processor parses,
// unless Preprocess is given WithSkipPragmas. Pragma-handling policy is the caller's: the
// preprocessor only recognizes the directive's shape and reports it.
type PragmaCallback interface {
	CallPragma(name string, pi PragmaInstance)
}

// parsePragma implements #pragma name ["text"]. args is the directive's
// remaining tokens after the leading "#pragma" token has been dropped by
// the caller.
func (c *context) parsePragma(args []Token) {
	if len(args) == 0 {
		c.printError("Pragmas need arguments.")
		return
	}
	name := args[0].Text
	args = args[1:]

	var text string
	if len(args) > 0 {
		if args[0].Kind != String {
			c.printError("Pragma parameter should be a string literal.")
		}
		text = removeQuotes(args[0].Text)
		args = args[1:]
	}
	if len(args) > 0 {
		c.printError("Too many parameters to pragma.")
	}

	c.pragmas = append(c.pragmas, name, text)

	if c.pragmaCallback != nil {
		c.pragmaCallback.CallPragma(name, PragmaInstance{
			Text:            text,
			CurrentFile:     c.currentFile,
			CurrentFileLine: c.linesThisFile,
			RootFile:        c.rootFile,
			GlobalLine:      c.currentLine,
		})
	}
}
