package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dfalang/lexygen/automata/nfa"
	"github.com/dfalang/lexygen/lexerr"
)

const stage = "subset construction"

// Build runs subset construction (C5) over a union ε-NFA (see
// automata/nfa.Union), producing a DFA whose accept tags are the winning
// token-order index at each state. Ties among simultaneously-reachable NFA
// accepts resolve to the smallest token-order index, i.e. the earliest
// pattern in the specification — the teacher's nfa_to_dfa.go resolves the
// analogous tie by highest Priority; lexygen's tie-break direction is
// reversed because token order, not an explicit priority field, drives it.
func Build(n *nfa.NFA) (*DFA, *lexerr.Error) {
	alphabet := n.Alphabet()
	if len(alphabet) == 0 {
		return nil, lexerr.New(lexerr.EmptyAlphabet, stage, "pattern alphabet is empty")
	}
	if top := alphabet[len(alphabet)-1]; top >= 128 {
		return nil, lexerr.Newf(lexerr.RegexSemantic, stage, "pattern uses byte %d, outside the alphabet 0-127", top)
	}

	d := &DFA{}

	startSet := epsilonClosure(n, map[int]bool{n.Start: true})
	startKey := canonicalKey(startSet)

	keyToID := map[string]int32{}
	d.Start = d.addState()
	keyToID[startKey] = d.Start
	setAccept(d, n, d.Start, startSet)

	type pending struct {
		id  int32
		set map[int]bool
	}
	queue := []pending{{d.Start, startSet}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, b := range alphabet {
			moved := move(n, cur.set, b)
			if len(moved) == 0 {
				continue
			}
			closed := epsilonClosure(n, moved)
			key := canonicalKey(closed)

			id, ok := keyToID[key]
			if !ok {
				id = d.addState()
				keyToID[key] = id
				setAccept(d, n, id, closed)
				queue = append(queue, pending{id, closed})
			}

			d.Trans[cur.id][b] = id
		}
	}

	return d, nil
}

// move computes the set of NFA states reachable from set by consuming b.
func move(n *nfa.NFA, set map[int]bool, b byte) map[int]bool {
	out := make(map[int]bool)
	for s := range set {
		for _, t := range n.States[s].Trans[b] {
			out[t] = true
		}
	}
	return out
}

// epsilonClosure computes the smallest superset of set closed under
// ε-transitions, via a depth-first walk over an explicit stack.
func epsilonClosure(n *nfa.NFA, set map[int]bool) map[int]bool {
	closure := make(map[int]bool, len(set))
	stack := make([]int, 0, len(set))
	for s := range set {
		closure[s] = true
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.States[s].Eps {
			if !closure[t] {
				closure[t] = true
				stack = append(stack, t)
			}
		}
	}
	return closure
}

// setAccept assigns the winning tag (smallest token-order index) among the
// NFA accept states present in set, if any.
func setAccept(d *DFA, n *nfa.NFA, dfaState int32, set map[int]bool) {
	best := int32(-1)
	for s := range set {
		if tag, ok := n.Accept[s]; ok {
			t := int32(tag)
			if best == -1 || t < best {
				best = t
			}
		}
	}
	d.Accept[dfaState] = best
}

// canonicalKey produces a stable string key for an NFA state set, so sets
// can be compared for equality as DFA-state identity — the same technique
// as the teacher's stateSetToString, specialized to int state IDs.
func canonicalKey(set map[int]bool) string {
	ids := make([]int, 0, len(set))
	for s := range set {
		ids = append(ids, s)
	}
	sort.Ints(ids)

	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}
