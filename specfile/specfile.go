// Package specfile implements the reader for lexygen's .lexy specification
// files (E1): an ordered list of TOKEN_KIND ::= "regex" definitions. It
// produces the ordered (name, pattern) pairs the rest of the pipeline
// compiles. Read and Parse do not touch the regex or automaton packages;
// only Describe (the debug dump) runs the regex parser.
package specfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/dfalang/lexygen/lexerr"
)

const stage = "specification reader"

// Definition is one TOKEN_KIND ::= "regex" line, in file order.
type Definition struct {
	Name    string
	Pattern string
	Line    int
}

// Spec is an ordered, duplicate-free list of token definitions. Order is
// significant: it is the token-order index used for accept-tag priority
// throughout the pipeline.
type Spec struct {
	Path        string
	Definitions []Definition
}

// Read loads and parses a .lexy file from disk.
func Read(path string) (*Spec, *lexerr.Error) {
	if !fileutil.FileExists(path) {
		return nil, lexerr.Newf(lexerr.IO, stage, "spec file does not exist: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, lexerr.Wrap(lexerr.IO, stage, err)
	}
	defer f.Close()

	return Parse(path, f)
}

// Parse parses a .lexy document read from r, per spec.md §6.1's grammar:
//
//	file := line (NEWLINE line)* EOF
//	line := TOKEN_KIND '::=' '"' REGEX_BODY '"'
//
// Blank lines between definitions are not permitted; a trailing newline is.
func Parse(path string, r io.Reader) (*Spec, *lexerr.Error) {
	scanner := bufio.NewScanner(r)

	spec := &Spec{Path: path}
	seen := make(map[string]int)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			return nil, lexerr.At(lexerr.SpecSyntax, stage, "blank lines are not permitted between definitions", lineNo, 1)
		}

		def, lexErr := parseLine(line, lineNo)
		if lexErr != nil {
			return nil, lexErr
		}

		if firstLine, dup := seen[def.Name]; dup {
			return nil, lexerr.Newf(lexerr.DuplicateToken, stage, "token %s redefined at line %d (first defined at line %d)", def.Name, lineNo, firstLine)
		}
		seen[def.Name] = lineNo

		spec.Definitions = append(spec.Definitions, def)
	}

	if err := scanner.Err(); err != nil {
		return nil, lexerr.Wrap(lexerr.IO, stage, err)
	}

	if len(spec.Definitions) == 0 {
		return nil, lexerr.New(lexerr.SpecSyntax, stage, "specification defines no tokens")
	}

	return spec, nil
}

// parseLine parses a single TOKEN_KIND ::= "regex" line.
func parseLine(line string, lineNo int) (Definition, *lexerr.Error) {
	sep := strings.Index(line, "::=")
	if sep < 0 {
		return Definition{}, lexerr.At(lexerr.SpecSyntax, stage, "expected '::=' separating token kind and pattern", lineNo, 1)
	}

	name := strings.TrimSpace(line[:sep])
	if !isValidTokenKind(name) {
		return Definition{}, lexerr.At(lexerr.SpecSyntax, stage, "token kind must match [A-Z_]+, got "+name, lineNo, 1)
	}

	rest := strings.TrimSpace(line[sep+len("::="):])
	pattern, lexErr := parseQuotedRegex(rest, lineNo, sep+len("::=")+1)
	if lexErr != nil {
		return Definition{}, lexErr
	}

	return Definition{Name: name, Pattern: pattern, Line: lineNo}, nil
}

func isValidTokenKind(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

// parseQuotedRegex consumes a '"' REGEX_BODY '"' span, honoring backslash
// escapes inside the body (REGEX_BODY := ( [^"\\] | '\\' . )*). The returned
// pattern string still contains the backslash escapes verbatim; decoding
// them is the regex lexer's job (C1), not the spec reader's.
func parseQuotedRegex(s string, lineNo, col int) (string, *lexerr.Error) {
	if len(s) < 2 || s[0] != '"' {
		return "", lexerr.At(lexerr.SpecSyntax, stage, "expected a '\"'-quoted regex pattern", lineNo, col)
	}

	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", lexerr.At(lexerr.SpecSyntax, stage, "dangling escape in regex pattern", lineNo, col+i)
			}
			i += 2
		case '"':
			if i != len(s)-1 {
				return "", lexerr.At(lexerr.SpecSyntax, stage, "unexpected trailing input after closing quote", lineNo, col+i)
			}
			return s[1:i], nil
		default:
			i++
		}
	}

	return "", lexerr.At(lexerr.SpecSyntax, stage, "unterminated regex pattern", lineNo, col)
}
