package specfile

import (
	"strings"
	"testing"
)

func TestParseOrderedDefinitions(t *testing.T) {
	doc := "IF ::= \"if\"\nID ::= \"[a-z]+\"\n"
	spec, err := Parse("test.lexy", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Definitions) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(spec.Definitions))
	}
	if spec.Definitions[0].Name != "IF" || spec.Definitions[1].Name != "ID" {
		t.Errorf("expected order IF, ID; got %v", spec.Definitions)
	}
	if spec.Definitions[0].Pattern != "if" {
		t.Errorf("expected pattern 'if', got %q", spec.Definitions[0].Pattern)
	}
}

func TestParseDuplicateTokenIsError(t *testing.T) {
	doc := "IF ::= \"if\"\nIF ::= \"elif\"\n"
	_, err := Parse("test.lexy", strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected a duplicate-token error")
	}
}

func TestParseBlankLineIsError(t *testing.T) {
	doc := "IF ::= \"if\"\n\nID ::= \"[a-z]+\"\n"
	_, err := Parse("test.lexy", strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected a blank-line error")
	}
}

func TestParseMissingSeparatorIsError(t *testing.T) {
	_, err := Parse("test.lexy", strings.NewReader("IF \"if\"\n"))
	if err == nil {
		t.Fatal("expected an error for a missing '::='")
	}
}

func TestParseInvalidTokenKindIsError(t *testing.T) {
	_, err := Parse("test.lexy", strings.NewReader("lowercase ::= \"a\"\n"))
	if err == nil {
		t.Fatal("expected an error for a lowercase token kind")
	}
}

func TestParseEscapedQuoteInPattern(t *testing.T) {
	doc := `STR ::= "\"([^\"\\]|\\.)*\""` + "\n"
	spec, err := Parse("test.lexy", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Definitions[0].Pattern != `\"([^\"\\]|\\.)*\"` {
		t.Errorf("unexpected pattern: %q", spec.Definitions[0].Pattern)
	}
}

func TestParseEmptySpecIsError(t *testing.T) {
	_, err := Parse("test.lexy", strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error for a spec defining no tokens")
	}
}

func TestDescribeProducesYAML(t *testing.T) {
	spec, err := Parse("test.lexy", strings.NewReader("NUM ::= \"[0-9]+\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, derr := Describe(spec)
	if derr != nil {
		t.Fatalf("unexpected describe error: %v", derr)
	}
	if !strings.Contains(string(out), "NUM") {
		t.Errorf("expected YAML dump to mention NUM, got %s", out)
	}
}
