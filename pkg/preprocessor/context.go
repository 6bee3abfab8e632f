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
	"fmt"
	"io"
)

// context carries everything scoped to a single Preprocess invocation.
// What must survive across calls (customDefines, the pragma callback)
// lives on the Preprocessor itself, which also receives copies of the
// translator and the dependency, file and pragma lists when a run ends;
// everything else lives here and is threaded through the directive
// processor and expander.
type context struct {
	rootFile string
	rootPath string

	currentFile   string
	currentLine   int
	linesThisFile int

	errout      io.Writer
	errorsCount int

	fileDependencies []string
	fileDepSeen      map[string]bool

	filesPreprocessed []string
	filesSeen         map[string]bool

	pragmas []string

	skipPragmas       bool
	loader            FileLoader
	includeTranslator IncludeTranslator
	pragmaCallback    PragmaCallback

	lnt *LineNumberTranslator
}

func newContext() *context {
	return &context{
		fileDepSeen: map[string]bool{},
		filesSeen:   map[string]bool{},
		lnt:         NewLineNumberTranslator(),
	}
}

// prependRootPath returns filename prefixed with rootPath, unless filename
// is already the root file itself.
func (c *context) prependRootPath(filename string) string {
	if filename == c.rootFile {
		return c.rootFile
	}
	return c.rootPath + filename
}

// printMessage writes "<file> (<line>) <msg>\n" to the errors sink. msg
// already carries any "Error"/"Warning" prefix the caller wants.
func (c *context) printMessage(msg string) {
	if c.errout == nil {
		return
	}
	fmt.Fprintf(c.errout, "%s (%d) %s\n", c.currentFile, c.linesThisFile, msg)
}

// printError records msg as an Error diagnostic and increments the error
// count returned by Preprocess.
func (c *context) printError(msg string) {
	text := "Error"
	if msg != "" {
		text += ": " + msg
	}
	c.printMessage(text)
	c.errorsCount++
}

// printWarning records msg as a Warning diagnostic. Warnings do not
// increment the error count.
func (c *context) printWarning(msg string) {
	text := "Warning"
	if msg != "" {
		text += ": " + msg
	}
	c.printMessage(text)
}

func (c *context) addFileDependency(name string) {
	if !c.fileDepSeen[name] {
		c.fileDepSeen[name] = true
		c.fileDependencies = append(c.fileDependencies, name)
	}
}

func (c *context) addFilePreprocessed(name string) {
	if !c.filesSeen[name] {
		c.filesSeen[name] = true
		c.filesPreprocessed = append(c.filesPreprocessed, name)
	}
}
