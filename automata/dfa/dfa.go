// Package dfa implements the DFA data model and the subset construction
// and minimization stages of the lexygen pipeline (C5, C6).
//
// States are dense integer-indexed rows, mirroring the flat-array approach
// of the teacher's lang/automata/nfa_to_dfa.go (there keyed by a canonical
// string over an NFA state set; here the set is canonicalized once during
// construction and discarded, leaving only integer IDs behind).
package dfa

const noState = int32(-1)

// DFA is a deterministic automaton over the byte alphabet [0, 128). Trans[s]
// is state s's dense transition row; Trans[s][b] == -1 means absent (the
// implicit dead state, never materialized). Accept[s] == -1 means
// non-accepting, else it holds the token-order index of the winning pattern.
type DFA struct {
	Trans  [][128]int32
	Accept []int32
	Start  int32
}

// NumStates reports how many states the DFA has.
func (d *DFA) NumStates() int { return len(d.Trans) }

// addState appends a new, fully-dead state and returns its ID.
func (d *DFA) addState() int32 {
	var row [128]int32
	for i := range row {
		row[i] = noState
	}
	d.Trans = append(d.Trans, row)
	d.Accept = append(d.Accept, noState)
	return int32(len(d.Trans) - 1)
}

// Step returns the next state for (state, b), or -1 if absent.
func (d *DFA) Step(state int32, b byte) int32 {
	return d.Trans[state][b]
}

// IsAccepting reports whether state is an accept state.
func (d *DFA) IsAccepting(state int32) bool {
	return d.Accept[state] != noState
}
