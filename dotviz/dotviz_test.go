package dotviz

import (
	"strings"
	"testing"

	"github.com/dfalang/lexygen/automata/dfa"
	"github.com/dfalang/lexygen/automata/nfa"
	"github.com/dfalang/lexygen/regex/parser"
)

func TestNFARendersEpsilonAndByteEdges(t *testing.T) {
	node, err := parser.Parse("a|b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := nfa.CompilePattern(node, 0)

	out := NFA(n)
	if !strings.Contains(out, "digraph nfa") {
		t.Errorf("expected a digraph header, got: %s", out)
	}
	if !strings.Contains(out, "ε") {
		t.Errorf("expected an epsilon-labeled edge, got: %s", out)
	}
	if !strings.Contains(out, `label="a"`) && !strings.Contains(out, `label="b"`) {
		t.Errorf("expected byte-labeled edges, got: %s", out)
	}
}

func TestDFARendersAcceptNodesAndRanges(t *testing.T) {
	node, err := parser.Parse("[a-z]+")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, derr := dfa.Build(nfa.Union([]*nfa.NFA{nfa.CompilePattern(node, 0)}))
	if derr != nil {
		t.Fatalf("unexpected build error: %v", derr)
	}

	out := DFA(d)
	if !strings.Contains(out, "doublecircle") {
		t.Errorf("expected an accept node, got: %s", out)
	}
	if !strings.Contains(out, "a-z") {
		t.Errorf("expected a collapsed byte range label, got: %s", out)
	}
}
