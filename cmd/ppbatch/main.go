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

// Program ppbatch preprocesses a batch of files in one invocation, writing
// each FILE's expansion to an output directory and optionally reporting
// the dependency graph and parsed pragmas it discovered along the way.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotators/angelscript-preprocessor/pkg/preprocessor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	defineFlags   []string
	undefineFlags []string
	outDir        string
	skipPragmas   bool
	printDeps     bool
	printPragmas  bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ppbatch [FILE ...]",
		Short:         "ppbatch preprocesses multiple files in a single pass",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return preprocessAll(args, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	addFlags(rootCmd.Flags())

	return rootCmd
}

func addFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&defineFlags, "define", "D", nil, "define NAME or NAME=VALUE")
	fs.StringArrayVarP(&undefineFlags, "undefine", "U", nil, "undefine NAME")
	fs.StringVarP(&outDir, "outdir", "o", "", "write each FILE's expansion here instead of stdout")
	fs.BoolVar(&skipPragmas, "skip-pragmas", false, "pass #pragma lines through unprocessed")
	fs.BoolVar(&printDeps, "print-deps", false, "print each FILE's include dependencies to stderr")
	fs.BoolVar(&printPragmas, "print-pragmas", false, "print each FILE's parsed pragmas to stderr")
}

func preprocessAll(files []string, out, errOut io.Writer) error {
	failed := false
	for _, f := range files {
		if err := preprocessOne(f, out, errOut); err != nil {
			fmt.Fprintf(errOut, "ppbatch: %s: %v\n", f, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed to preprocess")
	}
	return nil
}

func preprocessOne(file string, out, errOut io.Writer) error {
	pp := preprocessor.New()
	for _, d := range defineFlags {
		if idx := strings.Index(d, "="); idx >= 0 {
			pp.DefineNameValue(d[:idx], d[idx+1:])
		} else {
			pp.DefineNameValue(d, "1")
		}
	}
	for _, u := range undefineFlags {
		pp.Undef(u)
	}

	dest := out
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		f, err := os.Create(filepath.Join(outDir, filepath.Base(file)))
		if err != nil {
			return err
		}
		defer f.Close()
		dest = f
	}

	var opts []preprocessor.Option
	opts = append(opts, preprocessor.WithErrors(errOut))
	if skipPragmas {
		opts = append(opts, preprocessor.WithSkipPragmas())
	}

	errCount := pp.Preprocess(file, dest, opts...)

	if printDeps {
		for _, d := range pp.GetFileDependencies() {
			fmt.Fprintf(errOut, "%s: depends on %s\n", file, d)
		}
	}
	if printPragmas {
		pragmas := pp.GetParsedPragmas()
		for i := 0; i+1 < len(pragmas); i += 2 {
			fmt.Fprintf(errOut, "%s: pragma %s %q\n", file, pragmas[i], pragmas[i+1])
		}
	}
	if errCount > 0 {
		return fmt.Errorf("%d error(s)", errCount)
	}
	return nil
}
