package parser

import (
	"testing"

	"github.com/dfalang/lexygen/regex/ast"
)

func TestParseLiteralAndConcat(t *testing.T) {
	node, err := Parse("ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	concat, ok := node.(ast.Concat)
	if !ok {
		t.Fatalf("expected ast.Concat, got %T", node)
	}
	if _, ok := concat.Left.(ast.Char); !ok {
		t.Errorf("expected left Char, got %T", concat.Left)
	}
	if _, ok := concat.Right.(ast.Char); !ok {
		t.Errorf("expected right Char, got %T", concat.Right)
	}
}

func TestParseAlternationPrecedence(t *testing.T) {
	// "ab|cd" should parse as Alt(Concat(a,b), Concat(c,d)), i.e.
	// concatenation binds tighter than alternation.
	node, err := Parse("ab|cd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alt, ok := node.(ast.Alt)
	if !ok {
		t.Fatalf("expected ast.Alt at the top, got %T", node)
	}
	if _, ok := alt.Left.(ast.Concat); !ok {
		t.Errorf("expected left branch to be a Concat, got %T", alt.Left)
	}
	if _, ok := alt.Right.(ast.Concat); !ok {
		t.Errorf("expected right branch to be a Concat, got %T", alt.Right)
	}
}

func TestParseQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		check   func(ast.Node) bool
	}{
		{"a*", func(n ast.Node) bool { _, ok := n.(ast.Star); return ok }},
		{"a+", func(n ast.Node) bool { _, ok := n.(ast.Plus); return ok }},
		{"a?", func(n ast.Node) bool { _, ok := n.(ast.Question); return ok }},
		{"a{0,1}", func(n ast.Node) bool { _, ok := n.(ast.Question); return ok }},
		{"a{1,}", func(n ast.Node) bool { _, ok := n.(ast.Plus); return ok }},
		{"a{0,}", func(n ast.Node) bool { _, ok := n.(ast.Star); return ok }},
		{"a{2,4}", func(n ast.Node) bool {
			r, ok := n.(ast.Range)
			return ok && r.Min == 2 && r.Max == 4
		}},
		{"a{3}", func(n ast.Node) bool {
			r, ok := n.(ast.Range)
			return ok && r.Min == 3 && r.Max == 3
		}},
	}

	for _, tt := range tests {
		node, err := Parse(tt.pattern)
		if err != nil {
			t.Fatalf("pattern %q: unexpected error: %v", tt.pattern, err)
		}
		if !tt.check(node) {
			t.Errorf("pattern %q: unexpected AST shape %T", tt.pattern, node)
		}
	}
}

func TestParseAcceptsNullableWholePattern(t *testing.T) {
	// "a*", "a?", and friends are nullable as a whole pattern but still
	// accepted: the generated scanner's maximal-munch loop only checks
	// acceptance after consuming a byte, so a nullable pattern still
	// matches its non-empty prefixes and simply never yields a zero-length
	// token.
	for _, pattern := range []string{"a*", "a?", "a{0,1}", "a{0,}"} {
		if _, err := Parse(pattern); err != nil {
			t.Errorf("pattern %q: unexpected error: %v", pattern, err)
		}
	}
}

func TestParseRangeZeroZeroIsError(t *testing.T) {
	if _, err := Parse("a{0,0}"); err == nil {
		t.Fatal("expected an error for {0,0}, got nil")
	}
}

func TestParseCharSet(t *testing.T) {
	node, err := Parse("[a-z]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, ok := node.(ast.CharSet)
	if !ok {
		t.Fatalf("expected ast.CharSet, got %T", node)
	}
	if set.Negated {
		t.Error("expected non-negated set")
	}
	if len(set.Ranges) != 1 || set.Ranges[0].Min != 'a' || set.Ranges[0].Max != 'z' {
		t.Errorf("unexpected ranges: %+v", set.Ranges)
	}
}

func TestParseNegatedCharSet(t *testing.T) {
	node, err := Parse("[^a]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, ok := node.(ast.CharSet)
	if !ok {
		t.Fatalf("expected ast.CharSet, got %T", node)
	}
	if !set.Negated {
		t.Error("expected negated set")
	}
	bytes := set.ExpandBytes()
	for _, b := range bytes {
		if b == 'a' {
			t.Fatal("expected 'a' to be excluded from negated set")
		}
	}
	if len(bytes) != (126 - 32 + 1 - 1) {
		t.Errorf("expected all printable bytes except 'a', got %d bytes", len(bytes))
	}
}

func TestParseDanglingHyphenIsLiteral(t *testing.T) {
	node, err := Parse("[a-]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, ok := node.(ast.CharSet)
	if !ok {
		t.Fatalf("expected ast.CharSet, got %T", node)
	}
	bytes := set.ExpandBytes()
	hasA, hasHyphen := false, false
	for _, b := range bytes {
		if b == 'a' {
			hasA = true
		}
		if b == '-' {
			hasHyphen = true
		}
	}
	if !hasA || !hasHyphen {
		t.Errorf("expected both 'a' and '-' in set, got %q", bytes)
	}
}

func TestParseInvertedRangeIsError(t *testing.T) {
	if _, err := Parse("[z-a]"); err == nil {
		t.Fatal("expected an error for an inverted range, got nil")
	}
}

func TestParseEmptyConcatIsError(t *testing.T) {
	if _, err := Parse("|a"); err == nil {
		t.Fatal("expected an error for an empty concatenation, got nil")
	}
}

func TestParseGrouping(t *testing.T) {
	node, err := Parse("(a|b)c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	concat, ok := node.(ast.Concat)
	if !ok {
		t.Fatalf("expected ast.Concat at top level, got %T", node)
	}
	if _, ok := concat.Left.(ast.Alt); !ok {
		t.Errorf("expected grouped Alt on the left, got %T", concat.Left)
	}
}

func TestParseDot(t *testing.T) {
	node, err := Parse(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node.(ast.Dot); !ok {
		t.Fatalf("expected ast.Dot, got %T", node)
	}
}
