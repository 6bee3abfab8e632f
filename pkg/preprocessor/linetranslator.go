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

// This file implements the line-number translator: a table of contiguous
// output-line ranges, each naming the original file and the offset
// needed to recover the original line number within it.

// LineEntry is one contiguous range of the preprocessed output that maps
// back to a single original file.
type LineEntry struct {
	File      string
	StartLine int
	Offset    int
}

// LineNumberTranslator accumulates LineEntry ranges in the order they are
// produced and answers queries against output line numbers.
type LineNumberTranslator struct {
	lines []LineEntry
}

// NewLineNumberTranslator returns an empty translator.
func NewLineNumberTranslator() *LineNumberTranslator {
	return &LineNumberTranslator{}
}

// AddLineRange records that, starting at output line startLine, lines
// belong to file and translate to original line numbers by subtracting
// offset.
func (t *LineNumberTranslator) AddLineRange(file string, startLine, offset int) {
	t.lines = append(t.lines, LineEntry{File: file, StartLine: startLine, Offset: offset})
}

// Search returns the entry covering lineNumber: the last entry whose
// StartLine does not exceed lineNumber. Entries are assumed to be added in
// non-decreasing StartLine order, the way the directive processor appends
// them as it walks the file linearly. The zero Entry is returned if no
// range has been recorded yet.
func (t *LineNumberTranslator) Search(lineNumber int) LineEntry {
	if len(t.lines) == 0 {
		return LineEntry{}
	}
	for i := 1; i < len(t.lines); i++ {
		if lineNumber < t.lines[i].StartLine {
			return t.lines[i-1]
		}
	}
	return t.lines[len(t.lines)-1]
}

// ResolveFile returns the original source file that produced output line
// lineNumber, or "ERROR" if lnt is nil (mirroring ResolveOriginalFile's
// fallback when no translator is available).
func ResolveFile(lineNumber int, lnt *LineNumberTranslator) string {
	if lnt == nil {
		return "ERROR"
	}
	return lnt.Search(lineNumber).File
}

// ResolveLine returns the original line number within that file, or 0 if
// lnt is nil.
func ResolveLine(lineNumber int, lnt *LineNumberTranslator) int {
	if lnt == nil {
		return 0
	}
	return lineNumber - lnt.Search(lineNumber).Offset
}
