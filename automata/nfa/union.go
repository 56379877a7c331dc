package nfa

// Union combines one already-tagged NFA per token pattern (see
// CompilePattern) into a single NFA with a fresh shared start state, ε-linked
// to every pattern's entry point. This is C4: a direct generalization of the
// teacher's combineNFAs/CompileLexicalGrammar, lifted from a fixed handful of
// lexical-rule NFAs to an arbitrary ordered list of per-token patterns.
//
// The returned NFA has no single exit state — it accepts in multiple states
// at once, one per matched token kind, which is exactly what subset
// construction (C5) needs to discover simultaneously-reachable accept tags.
func Union(fragments []*NFA) *NFA {
	result := New()
	// result's own accept state (state 1) is wiring scaffolding only — it is
	// never reachable and never tagged; every real accept comes from a
	// merged fragment.

	for _, f := range fragments {
		offset := len(result.States)
		f.RenumberStates(offset)
		result.merge(f)
		result.AddEpsilon(result.Start, f.Start)
	}

	return result
}
