// Package nfa implements the ε-NFA data model and the Thompson construction
// and multi-pattern union stages of the lexygen pipeline (C3, C4).
//
// States are integer IDs into a flat slice, not owning pointers between
// node objects, so the naturally cyclic automaton graph needs no special
// ownership handling — the same approach the teacher's
// tooling/automata/nfa.go and lang/automata/nfa_to_dfa.go use for their NFA
// and DFA state sets.
package nfa

// State is a single ε-NFA state: a byte-indexed transition table plus a
// list of ε-targets.
type State struct {
	Trans map[byte][]int
	Eps   []int
}

// NFA is an ε-NFA over the byte alphabet with a single distinguished start
// state and a tag (token-order index) on each accepting state.
type NFA struct {
	States []*State
	Start  int
	// exit is this fragment's single externally-visible accept state, kept
	// up to date by every Thompson combinator as fragments are merged.
	// Not meaningful once an NFA has been combined by Union (C4), which has
	// more than one accept state and no single exit.
	exit int
	// Accept maps a state ID to the token-order index of the pattern it
	// accepts. Absent from the map means non-accepting.
	Accept map[int]int
}

// New creates an NFA with two states: a start state (0) and a fresh,
// initially non-accepting accept state (1). Thompson combinators build on
// top of this two-state skeleton, mirroring the teacher's NewNFA.
func New() *NFA {
	n := &NFA{
		States: []*State{newState(), newState()},
		Start:  0,
		exit:   1,
		Accept: make(map[int]int),
	}
	return n
}

func newState() *State {
	return &State{Trans: make(map[byte][]int)}
}

// accept is this fragment's single exit state, as tracked by exit.
func (n *NFA) accept() int { return n.exit }

// AddState appends a new state and returns its ID.
func (n *NFA) AddState() int {
	id := len(n.States)
	n.States = append(n.States, newState())
	return id
}

// AddTransition adds a byte-consuming transition from -> to on input b.
func (n *NFA) AddTransition(from int, b byte, to int) {
	n.States[from].Trans[b] = append(n.States[from].Trans[b], to)
}

// AddEpsilon adds an ε-transition from -> to.
func (n *NFA) AddEpsilon(from, to int) {
	n.States[from].Eps = append(n.States[from].Eps, to)
}

// RenumberStates shifts every state ID in n by offset, in place, following
// the renumbering helper in spec.md §4.3: copy every transition
// (i, b, j) -> (i+k, b, j+k) and every ε-transition (i, j) -> (i+k, j+k).
func (n *NFA) RenumberStates(offset int) {
	if offset == 0 {
		return
	}
	for _, st := range n.States {
		for b, targets := range st.Trans {
			for i, t := range targets {
				targets[i] = t + offset
			}
			st.Trans[b] = targets
		}
		for i, t := range st.Eps {
			st.Eps[i] = t + offset
		}
	}
	n.Start += offset
	n.exit += offset
	shifted := make(map[int]int, len(n.Accept))
	for state, tag := range n.Accept {
		shifted[state+offset] = tag
	}
	n.Accept = shifted
}

// merge appends other's states (already renumbered by the caller to avoid
// ID collisions) into n, carrying over its accept tags.
func (n *NFA) merge(other *NFA) {
	n.States = append(n.States, other.States...)
	for state, tag := range other.Accept {
		n.Accept[state] = tag
	}
}

// Alphabet returns the sorted set of bytes this NFA actually transitions on.
func (n *NFA) Alphabet() []byte {
	seen := make(map[byte]bool)
	for _, st := range n.States {
		for b := range st.Trans {
			seen[b] = true
		}
	}
	out := make([]byte, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sortBytes(out)
	return out
}

func sortBytes(bs []byte) {
	for i := 1; i < len(bs); i++ {
		for j := i; j > 0 && bs[j-1] > bs[j]; j-- {
			bs[j-1], bs[j] = bs[j], bs[j-1]
		}
	}
}
