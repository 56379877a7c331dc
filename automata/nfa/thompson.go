package nfa

import "github.com/dfalang/lexygen/regex/ast"

// Compile runs Thompson's construction over a regex AST and returns the
// resulting untagged NFA fragment (a single entry state n.Start and a
// single exit state, reachable by following n's wiring to the fragment's
// own accept state — see CompilePattern for how the caller tags it).
//
// Each combinator below mirrors the teacher's CompilePatternToNFA /
// nfaFrom* family in lang/automata/compiler.go, generalized from the
// Cow-lang lexical-pattern variants to regex/ast's byte-oriented variants.
func Compile(node ast.Node) *NFA {
	switch n := node.(type) {
	case ast.Char:
		return compileChar(n.Byte)
	case ast.Dot:
		return compileDot()
	case ast.CharSet:
		return compileCharSet(n)
	case ast.Concat:
		return compileConcat(n)
	case ast.Alt:
		return compileAlt(n)
	case ast.Star:
		return compileStar(n)
	case ast.Plus:
		return compilePlus(n)
	case ast.Question:
		return compileQuestion(n)
	case ast.Range:
		return compileRange(n)
	default:
		panic("nfa: unknown regex AST node type")
	}
}

// CompilePattern compiles node and tags its fragment's accept state with
// tokenOrder, the pattern's position in the specification (the tie-breaker
// priority from spec.md §3/§4.5).
func CompilePattern(node ast.Node, tokenOrder int) *NFA {
	n := Compile(node)
	n.Accept[n.accept()] = tokenOrder
	return n
}

// compileChar: two states, S --b--> A.
func compileChar(b byte) *NFA {
	n := New()
	n.AddTransition(n.Start, b, n.accept())
	return n
}

// compileDot: two states with a parallel transition for every printable byte.
func compileDot() *NFA {
	n := New()
	for b := byte(32); b <= 126; b++ {
		n.AddTransition(n.Start, b, n.accept())
	}
	return n
}

// compileCharSet expands the set (ranges and negation already resolved by
// ast.CharSet.ExpandBytes) and wires one transition per matching byte.
func compileCharSet(cs ast.CharSet) *NFA {
	n := New()
	for _, b := range cs.ExpandBytes() {
		n.AddTransition(n.Start, b, n.accept())
	}
	return n
}

// compileConcat: renumber R by |L.states|, ε from L's accept to R's entry,
// result accepts where R accepts.
func compileConcat(c ast.Concat) *NFA {
	l := Compile(c.Left)
	r := Compile(c.Right)

	offset := len(l.States)
	lAccept := l.accept()
	r.RenumberStates(offset)

	l.merge(r)
	l.AddEpsilon(lAccept, r.Start)
	l.exit = r.accept()

	return l
}

// compileAlt: fresh start s0, ε to each renumbered branch's entry and from
// each branch's accept to a fresh shared accept.
func compileAlt(a ast.Alt) *NFA {
	l := Compile(a.Left)
	r := Compile(a.Right)

	result := New()

	l.RenumberStates(len(result.States))
	result.merge(l)

	r.RenumberStates(len(result.States))
	result.merge(r)

	result.AddEpsilon(result.Start, l.Start)
	result.AddEpsilon(result.Start, r.Start)
	result.AddEpsilon(l.accept(), result.accept())
	result.AddEpsilon(r.accept(), result.accept())

	return result
}

// compileStar: C's start is also made accepting (idempotently) and every
// accept ε's back to C's start, per spec.md §4.3. Implemented, like the
// teacher's nfaFromZeroOrMore, via a fresh wrapper start/accept pair: the
// bypass ε (start->accept) realizes "C's start accepts", and the back-edge
// (inner accept -> inner start) realizes the repetition loop.
func compileStar(s ast.Star) *NFA {
	inner := Compile(s.Child)
	return wrapLoop(inner, true)
}

// compilePlus is Star without the zero-repetition bypass.
func compilePlus(pl ast.Plus) *NFA {
	inner := Compile(pl.Child)
	return wrapLoop(inner, false)
}

// compileQuestion: C's start accepts (bypass), no back-edge (no loop).
func compileQuestion(q ast.Question) *NFA {
	inner := Compile(q.Child)
	result := New()
	inner.RenumberStates(len(result.States))
	result.merge(inner)
	result.AddEpsilon(result.Start, inner.Start)
	result.AddEpsilon(inner.accept(), result.accept())
	result.AddEpsilon(result.Start, result.accept())
	return result
}

func wrapLoop(inner *NFA, allowZero bool) *NFA {
	result := New()
	inner.RenumberStates(len(result.States))
	result.merge(inner)

	result.AddEpsilon(result.Start, inner.Start)
	result.AddEpsilon(inner.accept(), result.accept())
	if allowZero {
		result.AddEpsilon(result.Start, result.accept())
	}
	result.AddEpsilon(inner.accept(), inner.Start)

	return result
}

// compileRange expands Range(C, m, n) per spec.md §4.3: m >= 1 concatenated
// copies of C, then either Star(C) (n == -1) or (n - m) copies of
// Question(C).
func compileRange(rg ast.Range) *NFA {
	var result ast.Node
	for i := 0; i < rg.Min; i++ {
		if result == nil {
			result = rg.Child
		} else {
			result = ast.Concat{Left: result, Right: rg.Child}
		}
	}

	if rg.Max == -1 {
		tail := ast.Star{Child: rg.Child}
		if result == nil {
			result = tail
		} else {
			result = ast.Concat{Left: result, Right: tail}
		}
	} else {
		for i := 0; i < rg.Max-rg.Min; i++ {
			tail := ast.Question{Child: rg.Child}
			if result == nil {
				result = tail
			} else {
				result = ast.Concat{Left: result, Right: tail}
			}
		}
	}

	return Compile(result)
}
