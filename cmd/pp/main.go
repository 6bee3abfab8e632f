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

// Program pp preprocesses a single file and writes the expanded output to
// standard output (or -o FILE).
//
// Usage: pp [-D NAME[=VALUE]] [-U NAME] [-o FILE] [--skip-pragmas] FILE
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pborman/getopt"
	"github.com/rotators/angelscript-preprocessor/pkg/preprocessor"
)

var stop = os.Exit

func main() {
	var (
		defines      []string
		undefines    []string
		output       string
		skipPragmas  bool
		printDeps    bool
		printPragmas bool
		help         bool
	)

	getopt.ListVarLong(&defines, "define", 'D', "define NAME or NAME=VALUE", "NAME[=VALUE]")
	getopt.ListVarLong(&undefines, "undef", 'U', "undefine NAME", "NAME")
	getopt.StringVarLong(&output, "output", 'o', "write output to FILE instead of stdout", "FILE")
	getopt.BoolVarLong(&skipPragmas, "skip-pragmas", 0, "pass #pragma lines through unprocessed")
	getopt.BoolVarLong(&printDeps, "deps", 0, "print include dependencies to stderr")
	getopt.BoolVarLong(&printPragmas, "pragmas", 0, "print parsed pragmas to stderr")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("FILE")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}
	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
	}

	files := getopt.Args()
	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "pp: expected exactly one FILE argument")
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	pp := preprocessor.New()
	for _, d := range defines {
		if idx := strings.Index(d, "="); idx >= 0 {
			pp.DefineNameValue(d[:idx], d[idx+1:])
		} else {
			pp.DefineNameValue(d, "1")
		}
	}
	for _, u := range undefines {
		pp.Undef(u)
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		defer f.Close()
		out = f
	}

	opts := []preprocessor.Option{preprocessor.WithErrors(os.Stderr)}
	if skipPragmas {
		opts = append(opts, preprocessor.WithSkipPragmas())
	}

	errCount := pp.Preprocess(files[0], out, opts...)

	if printDeps {
		for _, d := range pp.GetFileDependencies() {
			fmt.Fprintln(os.Stderr, d)
		}
	}
	if printPragmas {
		pragmas := pp.GetParsedPragmas()
		for i := 0; i+1 < len(pragmas); i += 2 {
			fmt.Fprintf(os.Stderr, "%s %q\n", pragmas[i], pragmas[i+1])
		}
	}
	if errCount > 0 {
		stop(1)
	}
}
