package lexer

import (
	"testing"

	"github.com/dfalang/lexygen/regex/token"
)

func TestNextBasic(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []token.Kind
	}{
		{"literal", "ab", []token.Kind{token.CHAR, token.CHAR, token.EOI}},
		{"alternation", "a|b", []token.Kind{token.CHAR, token.ALT, token.CHAR, token.EOI}},
		{"star", "a*", []token.Kind{token.CHAR, token.STAR, token.EOI}},
		{"range quantifier", "a{2,4}", []token.Kind{
			token.CHAR, token.LBRACE, token.CHAR, token.COMMA, token.CHAR, token.RBRACE, token.EOI,
		}},
		{"char set", "[a-z]", []token.Kind{
			token.LBRACK, token.CHAR, token.HYPHEN, token.CHAR, token.RBRACK, token.EOI,
		}},
		{"negated char set", "[^a]", []token.Kind{
			token.LBRACK, token.CARET, token.CHAR, token.RBRACK, token.EOI,
		}},
		{"escape", `\n`, []token.Kind{token.ESC, token.EOI}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.pattern)
			for i, wantKind := range tt.want {
				tok, err := l.Next()
				if err != nil {
					t.Fatalf("token %d: unexpected error: %v", i, err)
				}
				if tok.Kind != wantKind {
					t.Errorf("token %d: expected %s, got %s", i, wantKind, tok.Kind)
				}
			}
		})
	}
}

func TestNextEscapeDecoding(t *testing.T) {
	tests := []struct {
		pattern string
		want    byte
	}{
		{`\n`, '\n'},
		{`\t`, '\t'},
		{`\r`, '\r'},
		{`\.`, '.'},
		{`\\`, '\\'},
	}

	for _, tt := range tests {
		l := New(tt.pattern)
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("pattern %q: unexpected error: %v", tt.pattern, err)
		}
		if tok.Kind != token.ESC {
			t.Fatalf("pattern %q: expected ESC, got %s", tt.pattern, tok.Kind)
		}
		if tok.Byte != tt.want {
			t.Errorf("pattern %q: expected byte %q, got %q", tt.pattern, tt.want, tok.Byte)
		}
	}
}

func TestNextDanglingEscape(t *testing.T) {
	l := New(`a\`)
	if _, err := l.Next(); err != nil {
		t.Fatalf("unexpected error on first token: %v", err)
	}
	if _, err := l.Next(); err == nil {
		t.Fatal("expected dangling escape error, got nil")
	}
}

func TestNextEOIRepeats(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != token.EOI {
			t.Errorf("call %d: expected EOI, got %s", i, tok.Kind)
		}
	}
}
