package codegen

import (
	"strings"
	"testing"

	"github.com/dfalang/lexygen/automata/dfa"
	"github.com/dfalang/lexygen/automata/nfa"
	"github.com/dfalang/lexygen/regex/parser"
)

func buildTestDFA(t *testing.T, patterns []string) *dfa.DFA {
	t.Helper()
	fragments := make([]*nfa.NFA, len(patterns))
	for i, p := range patterns {
		node, err := parser.Parse(p)
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		fragments[i] = nfa.CompilePattern(node, i)
	}
	d, derr := dfa.Build(nfa.Union(fragments))
	if derr != nil {
		t.Fatalf("unexpected build error: %v", derr)
	}
	min, merr := dfa.Minimize(d)
	if merr != nil {
		t.Fatalf("unexpected minimize error: %v", merr)
	}
	return min
}

func TestGenerateProducesValidGoSource(t *testing.T) {
	d := buildTestDFA(t, []string{"[a-z]+", "[0-9]+"})
	src, err := Generate(d, Options{
		PackageName: "generated",
		ScannerName: "Cow",
		TokenKinds:  []string{"ID", "NUM"},
	})
	if err != nil {
		t.Fatalf("unexpected generate error: %v", err)
	}

	out := string(src)
	for _, want := range []string{
		"package generated",
		"CowScanner",
		"CowToken",
		"func (s *CowScanner) NextToken() CowToken",
		"transitions",
		"acceptTokenIndex",
		"tokenKindNames",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected generated source to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := buildTestDFA(t, []string{"if", "[a-z]+"})
	opts := Options{PackageName: "generated", ScannerName: "Cow", TokenKinds: []string{"IF", "ID"}}

	a, err := Generate(d, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(d, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(a) != string(b) {
		t.Error("expected byte-identical output across runs")
	}
}
