// Package cli implements lexygen's command-line entry point: flag parsing,
// progress logging, and orchestration of the full compilation pipeline
// (specfile -> regex parser -> Thompson construction -> union -> subset
// construction -> minimization -> codegen, with optional DOT/YAML debug
// artifacts). Grounded in alterx's internal/runner.ParseFlags
// (_examples/projectdiscovery-alterx/internal/runner/runner.go) for the
// goflags/gologger wiring.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/dfalang/lexygen/automata/dfa"
	"github.com/dfalang/lexygen/automata/nfa"
	"github.com/dfalang/lexygen/codegen"
	"github.com/dfalang/lexygen/dotviz"
	"github.com/dfalang/lexygen/lexerr"
	"github.com/dfalang/lexygen/regex/parser"
	"github.com/dfalang/lexygen/specfile"
)

// Options holds the parsed CLI flags, per SPEC_FULL.md §6.2.
type Options struct {
	SpecFile         string
	Output           string
	DotPath          string
	NFADotPath       string
	DebugDumpGrammar string
	Verbose          bool
	Silent           bool
}

// ParseFlags parses os.Args into Options, grounded in alterx's ParseFlags.
// Invocation is `lexygen [flags] <spec_file>.lexy`: the spec file is a
// positional argument, not a flag, per spec.md §6.2.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("lexygen: a regex-to-minimal-DFA lexer generator.")

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file path for the generated scanner (default: <scanner_name>_scanner.go)"),
		flagSet.StringVar(&opts.DotPath, "dot", "", "optional path to write a DOT visualization of the minimized DFA"),
		flagSet.StringVar(&opts.NFADotPath, "nfa-dot", "", "optional path to write a DOT visualization of the pre-minimization NFA"),
		flagSet.StringVar(&opts.DebugDumpGrammar, "debug-dump-grammar", "", "optional path to write the parsed specification and regex ASTs as YAML"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose progress logging"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "suppress all logging except the final diagnostic"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if flagSet.CommandLine.NArg() > 0 {
		opts.SpecFile = flagSet.CommandLine.Arg(0)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	return opts
}

// Run executes the full pipeline and returns the process exit code.
func Run(opts *Options) int {
	if opts.SpecFile == "" {
		printDiagnostic(lexerr.Wrap(lexerr.Usage, "cli", errorutil.New("usage: lexygen [flags] <spec_file>.lexy")))
		return lexerr.Usage.ExitCode()
	}
	if !strings.HasSuffix(opts.SpecFile, ".lexy") {
		printDiagnostic(lexerr.Wrap(lexerr.Usage, "cli", errorutil.New(fmt.Sprintf("spec file must carry a .lexy extension, got %s", opts.SpecFile))))
		return lexerr.Usage.ExitCode()
	}

	spec, err := specfile.Read(opts.SpecFile)
	if err != nil {
		printDiagnostic(err)
		return err.Kind.ExitCode()
	}
	gologger.Verbose().Msgf("parsed %d token definitions from %s", len(spec.Definitions), opts.SpecFile)

	if opts.DebugDumpGrammar != "" {
		if derr := dumpGrammar(spec, opts.DebugDumpGrammar); derr != nil {
			printDiagnostic(derr)
			return derr.Kind.ExitCode()
		}
		gologger.Verbose().Msgf("wrote debug grammar dump to %s", opts.DebugDumpGrammar)
	}

	fragments := make([]*nfa.NFA, len(spec.Definitions))
	kinds := make([]string, len(spec.Definitions))
	totalStates := 0
	for i, def := range spec.Definitions {
		node, perr := parser.Parse(def.Pattern)
		if perr != nil {
			printDiagnostic(perr)
			return perr.Kind.ExitCode()
		}
		frag := nfa.CompilePattern(node, i)
		fragments[i] = frag
		kinds[i] = def.Name
		totalStates += len(frag.States)
	}

	union := nfa.Union(fragments)
	gologger.Verbose().Msgf("compiled %d patterns to NFA with %d states", len(fragments), totalStates)

	if opts.NFADotPath != "" {
		if werr := writeFile(opts.NFADotPath, []byte(dotviz.NFA(union))); werr != nil {
			printDiagnostic(werr)
			return werr.Kind.ExitCode()
		}
		gologger.Verbose().Msgf("wrote pre-minimization NFA visualization to %s", opts.NFADotPath)
	}

	d, derr := dfa.Build(union)
	if derr != nil {
		printDiagnostic(derr)
		return derr.Kind.ExitCode()
	}
	gologger.Verbose().Msgf("subset construction produced %d DFA states", d.NumStates())

	before := d.NumStates()
	minDFA, merr := dfa.Minimize(d)
	if merr != nil {
		printDiagnostic(merr)
		return merr.Kind.ExitCode()
	}
	gologger.Verbose().Msgf("minimization reduced %d states to %d", before, minDFA.NumStates())

	if opts.DotPath != "" {
		if werr := writeFile(opts.DotPath, []byte(dotviz.DFA(minDFA))); werr != nil {
			printDiagnostic(werr)
			return werr.Kind.ExitCode()
		}
		gologger.Verbose().Msgf("wrote minimized DFA visualization to %s", opts.DotPath)
	}

	scannerName := scannerNameFor(opts.SpecFile)
	src, genErr := codegen.Generate(minDFA, codegen.Options{
		PackageName: "generated",
		ScannerName: scannerName,
		TokenKinds:  kinds,
	})
	if genErr != nil {
		printDiagnostic(lexerr.Wrap(lexerr.Internal, "codegen", genErr))
		return lexerr.Internal.ExitCode()
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = strings.ToLower(scannerName) + "_scanner.go"
	}
	if werr := writeFile(outPath, src); werr != nil {
		printDiagnostic(werr)
		return werr.Kind.ExitCode()
	}
	gologger.Info().Msgf("wrote generated scanner to %s", outPath)

	return 0
}

func dumpGrammar(spec *specfile.Spec, path string) *lexerr.Error {
	out, err := specfile.Describe(spec)
	if err != nil {
		return lexerr.Wrap(lexerr.IO, "debug dump", err)
	}
	return writeFile(path, out)
}

func writeFile(path string, data []byte) *lexerr.Error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return lexerr.Wrap(lexerr.IO, "output", err)
	}
	return nil
}

func scannerNameFor(specPath string) string {
	base := specPath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".lexy")

	var sb strings.Builder
	upperNext := true
	for _, r := range base {
		switch {
		case r == '_' || r == '-':
			upperNext = true
		case upperNext:
			sb.WriteRune(toUpper(r))
			upperNext = false
		default:
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "Generated"
	}
	return sb.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// printDiagnostic writes exactly one diagnostic straight to os.Stderr, in
// the format spec.md §6.2 mandates: "error: <stage>: <message> [at line L,
// column C]". It bypasses gologger so the wire format stays exact
// regardless of -silent/-verbose.
func printDiagnostic(err *lexerr.Error) {
	fmt.Fprintln(os.Stderr, err.Error())
}
