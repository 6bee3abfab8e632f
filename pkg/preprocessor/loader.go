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

import "os"

// FileLoader abstracts how the contents of the root file and every
// #include it reaches are obtained. The preprocessor only ever asks for
// bytes; how those bytes are found (filesystem, archive, virtual
// filesystem) is the caller's concern. LoadFile reports false if dir+name
// could not be read.
type FileLoader interface {
	LoadFile(dir, fileName string) (data []byte, ok bool)
}

// IncludeTranslator is given the literal #include argument (quotes
// already stripped) before it is recorded as a dependency and resolved
// against the current file's directory. The returned name replaces the
// written one, so a translator can redirect includes wholesale.
type IncludeTranslator interface {
	Rewrite(includeName string) string
}

// readFile is a var, not a direct call to os.ReadFile, so tests can stub
// filesystem access without touching disk.
var readFile = os.ReadFile

// defaultFileLoader is the FileLoader used when Preprocess is not given
// one explicitly: a plain filesystem read rooted at dir.
type defaultFileLoader struct{}

func (defaultFileLoader) LoadFile(dir, fileName string) ([]byte, bool) {
	data, err := readFile(dir + fileName)
	if err != nil {
		return nil, false
	}
	return data, true
}
