// Package parser implements a recursive-descent parser for lexygen's regex
// dialect (C2), turning a token stream from regex/lexer into a regex/ast
// tree. Precedence, lowest to highest: alternation, concatenation,
// postfix quantifiers.
package parser

import (
	"fmt"

	"github.com/dfalang/lexygen/lexerr"
	"github.com/dfalang/lexygen/regex/ast"
	"github.com/dfalang/lexygen/regex/lexer"
	"github.com/dfalang/lexygen/regex/token"
)

const stage = "regex parser"

// Parser holds state during parsing of a single pattern string.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token
}

// Parse parses a complete pattern string into a regex AST. A pattern whose
// language contains non-empty strings is accepted even if it is also
// nullable (e.g. "a*", "a?"): the generated scanner's maximal-munch loop
// (codegen/scanner.go's NextToken) only checks acceptance after consuming a
// byte, so a nullable pattern simply never yields a zero-length match but
// still matches its non-empty prefixes, matching the original C++ scanner's
// behavior. Only a pattern whose language is exactly {""} would need
// rejecting, and no such pattern reaches here that isn't already a syntax
// error (e.g. an empty concatenation).
func Parse(pattern string) (ast.Node, *lexerr.Error) {
	p := &Parser{lex: lexer.New(pattern)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}

	if p.cur.Kind != token.EOI {
		return nil, p.errorf("unexpected trailing input")
	}

	return node, nil
}

func (p *Parser) advance() *lexerr.Error {
	tok, err := p.lex.Next()
	if err != nil {
		return lexerr.At(lexerr.RegexSyntax, stage, err.Error(), 1, p.cur.Pos+1)
	}
	p.cur = tok
	return nil
}

func (p *Parser) errorf(format string, args ...any) *lexerr.Error {
	return lexerr.At(lexerr.RegexSyntax, stage, fmt.Sprintf(format, args...), 1, p.cur.Pos+1)
}

func (p *Parser) semanticErrorf(format string, args ...any) *lexerr.Error {
	return lexerr.At(lexerr.RegexSemantic, stage, fmt.Sprintf(format, args...), 1, p.cur.Pos+1)
}

// parseAlternation := concatenation ('|' concatenation)*
func (p *Parser) parseAlternation() (ast.Node, *lexerr.Error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	for p.cur.Kind == token.ALT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = ast.Alt{Left: left, Right: right}
	}

	return left, nil
}

// parseConcat := repetition+ (an empty concatenation is a syntax error)
func (p *Parser) parseConcat() (ast.Node, *lexerr.Error) {
	if !startsAtom(p.cur.Kind) {
		return nil, p.errorf("expected an atom, got %s", p.cur.Kind)
	}

	left, err := p.parseRepetition()
	if err != nil {
		return nil, err
	}

	for startsAtom(p.cur.Kind) {
		right, err := p.parseRepetition()
		if err != nil {
			return nil, err
		}
		left = ast.Concat{Left: left, Right: right}
	}

	return left, nil
}

func startsAtom(k token.Kind) bool {
	switch k {
	case token.CHAR, token.ESC, token.DOT, token.LPAREN, token.LBRACK:
		return true
	default:
		return false
	}
}

// parseRepetition := atom quantifier?
func (p *Parser) parseRepetition() (ast.Node, *lexerr.Error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case token.STAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Star{Child: atom}, nil
	case token.PLUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Plus{Child: atom}, nil
	case token.QUESTION:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Question{Child: atom}, nil
	case token.LBRACE:
		return p.parseRange(atom)
	default:
		return atom, nil
	}
}

// parseRange := '{' number (',' number?)? '}', already past 'atom'.
// Rewrites {0,1} => Question, {1,} => Plus, {0,} => Star, {0,0} => error.
func (p *Parser) parseRange(atom ast.Node) (ast.Node, *lexerr.Error) {
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}

	min, ok, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.errorf("expected a number after '{'")
	}

	max := min
	if p.cur.Kind == token.COMMA {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, ok, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		if ok {
			max = n
		} else {
			max = -1
		}
	}

	if p.cur.Kind != token.RBRACE {
		return nil, p.errorf("expected '}' to close range quantifier")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if max != -1 && max < min {
		return nil, p.errorf("range quantifier max (%d) is less than min (%d)", max, min)
	}
	if min == 0 && max == 0 {
		return nil, p.semanticErrorf("range quantifier {0,0} matches nothing")
	}

	switch {
	case min == 0 && max == 1:
		return ast.Question{Child: atom}, nil
	case min == 1 && max == -1:
		return ast.Plus{Child: atom}, nil
	case min == 0 && max == -1:
		return ast.Star{Child: atom}, nil
	default:
		return ast.Range{Child: atom, Min: min, Max: max}, nil
	}
}

// parseNumber reads a run of CHAR digit tokens. The regex lexer has no
// dedicated NUMBER token (spec.md §4.1's token list is exhaustive), so the
// parser assembles one from consecutive literal-digit CHAR tokens.
func (p *Parser) parseNumber() (int, bool, *lexerr.Error) {
	if p.cur.Kind != token.CHAR || !isDigit(p.cur.Byte) {
		return 0, false, nil
	}

	n := 0
	for p.cur.Kind == token.CHAR && isDigit(p.cur.Byte) {
		n = n*10 + int(p.cur.Byte-'0')
		if err := p.advance(); err != nil {
			return 0, false, err
		}
	}
	return n, true, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseAtom := CHAR | ESC | '.' | set | '(' alternation ')'
func (p *Parser) parseAtom() (ast.Node, *lexerr.Error) {
	switch p.cur.Kind {
	case token.CHAR:
		b := p.cur.Byte
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Char{Byte: b}, nil

	case token.ESC:
		b := p.cur.Byte
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Char{Byte: b}, nil

	case token.DOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Dot{}, nil

	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != token.RPAREN {
			return nil, p.errorf("expected ')' to close group")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil

	case token.LBRACK:
		return p.parseSet()

	default:
		return nil, p.errorf("expected an atom, got %s", p.cur.Kind)
	}
}

// parseSet := '[' '^'? set_item+ ']'
// set_item := char | char '-' char   (char = CHAR | ESC)
func (p *Parser) parseSet() (ast.Node, *lexerr.Error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}

	set := ast.CharSet{}
	if p.cur.Kind == token.CARET {
		set.Negated = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	first := true
	for p.cur.Kind != token.RBRACK {
		if p.cur.Kind == token.EOI {
			return nil, p.errorf("unterminated character set")
		}

		// A hyphen at the start of the set (immediately after '[' or '[^')
		// is treated as a literal character, not a range operator.
		if p.cur.Kind == token.HYPHEN && first {
			if err := p.advance(); err != nil {
				return nil, err
			}
			set.Chars = append(set.Chars, '-')
			first = false
			continue
		}

		lo, ok, err := p.parseSetChar()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errorf("expected a character in set, got %s", p.cur.Kind)
		}
		first = false

		if p.cur.Kind == token.HYPHEN {
			// A hyphen immediately before ']' is a literal, not a range.
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind == token.RBRACK {
				set.Chars = append(set.Chars, lo, '-')
				continue
			}
			hi, ok, err := p.parseSetChar()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, p.errorf("expected a character after '-' in set")
			}
			if hi < lo {
				return nil, p.semanticErrorf("inverted character range %q-%q", lo, hi)
			}
			set.Ranges = append(set.Ranges, ast.CharSetRange{Min: lo, Max: hi})
			continue
		}

		set.Chars = append(set.Chars, lo)
	}

	if err := p.advance(); err != nil { // consume ']'
		return nil, err
	}

	if len(set.Chars) == 0 && len(set.Ranges) == 0 {
		return nil, p.semanticErrorf("character set may not be empty")
	}
	if len(set.ExpandBytes()) == 0 {
		return nil, lexerr.At(lexerr.RegexSemantic, stage, "character set matches no bytes", 1, p.cur.Pos+1)
	}

	return set, nil
}

func (p *Parser) parseSetChar() (byte, bool, *lexerr.Error) {
	switch p.cur.Kind {
	case token.CHAR, token.ESC:
		b := p.cur.Byte
		if err := p.advance(); err != nil {
			return 0, false, err
		}
		return b, true, nil
	default:
		return 0, false, nil
	}
}
