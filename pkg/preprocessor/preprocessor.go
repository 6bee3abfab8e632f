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

// Package preprocessor implements a textual, C-like preprocessor: macro
// definition and expansion, conditional compilation, recursive #include,
// and a line-number translator that maps expanded output lines back to
// their original file and line.
package preprocessor

import (
	"io"
	"strings"
)

// Preprocessor holds the state meant to survive across Preprocess calls:
// macros registered through Define, the pragma callback, and the line
// translator produced by the most recent run. Everything scoped to a
// single run lives on the context built inside Preprocess instead.
type Preprocessor struct {
	customDefines  *DefineTable
	pragmaCallback PragmaCallback
	lnt            *LineNumberTranslator

	fileDependencies  []string
	filesPreprocessed []string
	pragmas           []string
}

// New returns a Preprocessor with no macros defined.
func New() *Preprocessor {
	return &Preprocessor{customDefines: NewDefineTable()}
}

// Option configures a single Preprocess call. With no options, errors
// are discarded, files are read from the local filesystem, and pragmas
// are parsed and dispatched rather than passed through.
type Option func(*context)

// WithErrors directs diagnostics to w, formatted one per line as
// "<file> (<line>) <kind>[: <message>]".
func WithErrors(w io.Writer) Option {
	return func(c *context) { c.errout = w }
}

// WithFileLoader overrides how source bytes for the root file and its
// #include graph are obtained.
func WithFileLoader(l FileLoader) Option {
	return func(c *context) { c.loader = l }
}

// WithIncludeTranslator registers a hook that may rewrite the literal
// text of every #include argument before it is recorded and resolved.
func WithIncludeTranslator(t IncludeTranslator) Option {
	return func(c *context) { c.includeTranslator = t }
}

// WithSkipPragmas keeps #pragma lines in the output, with a whitespace
// token inserted after each of the directive's tokens and no macro
// expansion inside them, instead of parsing, recording and dispatching
// them through the pragma callback.
func WithSkipPragmas() Option {
	return func(c *context) { c.skipPragmas = true }
}

// Preprocess expands filePath and everything it #includes, writing the
// result to out. It returns the number of Error diagnostics emitted; a
// non-zero count means the output should not be trusted.
func (pp *Preprocessor) Preprocess(filePath string, out io.Writer, opts ...Option) int {
	c := newContext()
	c.loader = defaultFileLoader{}
	c.pragmaCallback = pp.pragmaCallback
	for _, opt := range opts {
		opt(c)
	}

	if idx := strings.LastIndexAny(filePath, `\/`); idx >= 0 {
		c.rootFile = filePath[idx+1:]
		c.rootPath = filePath[:idx+1]
	} else {
		c.rootFile = filePath
		c.rootPath = "./"
	}
	c.currentFile = "ERROR"

	table := pp.customDefines.Clone()
	result := c.recursivePreprocess(c.rootFile, table)
	writeTokens(out, result.ToSlice())

	pp.lnt = c.lnt
	pp.fileDependencies = c.fileDependencies
	pp.filesPreprocessed = c.filesPreprocessed
	pp.pragmas = c.pragmas

	return c.errorsCount
}

// writeTokens renders toks as text, separating consecutive
// identifier/number tokens with a single space so adjacent words never
// run together; every other token is written using its own text verbatim
// (this is how whitespace and punctuation tokens already carry their own
// separation).
func writeTokens(w io.Writer, toks []Token) {
	needSpace := false
	for _, t := range toks {
		if t.Kind == Identifier || t.Kind == Number {
			if needSpace {
				io.WriteString(w, " ")
			}
			needSpace = true
		} else {
			needSpace = false
		}
		io.WriteString(w, t.Text)
	}
}

// Define adds a macro to the set applied on every subsequent Preprocess
// call, by lexing and parsing a synthetic "#define <text>" line. Errors
// encountered while parsing it are discarded.
func (pp *Preprocessor) Define(text string) {
	if text == "" {
		return
	}
	c := newContext()
	c.parseDefine(pp.customDefines, Lex([]byte("#define "+text)))
}

// DefineNameValue is Define("name value"), the two-argument form of a
// simple object-like macro.
func (pp *Preprocessor) DefineNameValue(name, value string) {
	pp.Define(name + " " + value)
}

// Undef removes name from the custom define set, if present.
func (pp *Preprocessor) Undef(name string) {
	pp.customDefines.Delete(name)
}

// UndefAll clears every custom define.
func (pp *Preprocessor) UndefAll() {
	pp.customDefines = NewDefineTable()
}

// IsDefined reports whether name is currently defined.
func (pp *Preprocessor) IsDefined(name string) bool {
	return pp.customDefines.Has(name)
}

// SetPragmaCallback installs the callback used by every later Preprocess
// call whose options don't skip pragmas.
func (pp *Preprocessor) SetPragmaCallback(cb PragmaCallback) {
	pp.pragmaCallback = cb
}

// GetFileDependencies returns every #include argument seen during the most
// recent Preprocess call, in first-seen order with duplicates removed.
func (pp *Preprocessor) GetFileDependencies() []string { return pp.fileDependencies }

// GetFilesPreprocessed returns every file (root plus includes) the most
// recent Preprocess call tried to load, including ones that could not be
// opened, as root-path-prefixed names in first-seen order with duplicates
// removed.
func (pp *Preprocessor) GetFilesPreprocessed() []string { return pp.filesPreprocessed }

// GetParsedPragmas returns the most recent Preprocess call's pragmas as a
// flat (name, text, name, text, ...) sequence.
func (pp *Preprocessor) GetParsedPragmas() []string { return pp.pragmas }

// GetLineNumberTranslator returns the line translator built by the most
// recent Preprocess call.
func (pp *Preprocessor) GetLineNumberTranslator() *LineNumberTranslator { return pp.lnt }

// ResolveOriginalFile returns the original source file that produced
// output line lineNumber, using the most recent Preprocess call's
// translator.
func (pp *Preprocessor) ResolveOriginalFile(lineNumber int) string {
	return ResolveFile(lineNumber, pp.lnt)
}

// ResolveOriginalLine returns the original line number within that file.
func (pp *Preprocessor) ResolveOriginalLine(lineNumber int) int {
	return ResolveLine(lineNumber, pp.lnt)
}
