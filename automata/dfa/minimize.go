package dfa

import "github.com/dfalang/lexygen/lexerr"

const minimizeStage = "dfa minimization"

// Minimize runs reachability pruning followed by Hopcroft-style partition
// refinement (C6): states may only share a block if they are both
// non-accepting or both accept the same token-order index, so minimization
// never conflates two distinct token kinds.
func Minimize(d *DFA) (*DFA, *lexerr.Error) {
	reachable := pruneUnreachable(d)
	if reachable.NumStates() == 0 {
		return nil, lexerr.New(lexerr.Internal, minimizeStage, "dfa has no reachable states")
	}

	blockOf := initialPartition(reachable)
	blockOf = refine(reachable, blockOf)

	return build(reachable, blockOf), nil
}

// pruneUnreachable drops states not reachable from Start via some byte
// transition, renumbering the survivors densely in BFS-discovery order.
func pruneUnreachable(d *DFA) *DFA {
	visited := map[int32]bool{d.Start: true}
	order := []int32{d.Start}
	for i := 0; i < len(order); i++ {
		s := order[i]
		for b := 0; b < 128; b++ {
			t := d.Trans[s][byte(b)]
			if t != noState && !visited[t] {
				visited[t] = true
				order = append(order, t)
			}
		}
	}

	oldToNew := make(map[int32]int32, len(order))
	for newID, oldID := range order {
		oldToNew[oldID] = int32(newID)
	}

	out := &DFA{Start: 0}
	for _, oldID := range order {
		var row [128]int32
		for b := 0; b < 128; b++ {
			t := d.Trans[oldID][byte(b)]
			if t == noState {
				row[b] = noState
			} else {
				row[b] = oldToNew[t]
			}
		}
		out.Trans = append(out.Trans, row)
		out.Accept = append(out.Accept, d.Accept[oldID])
	}
	return out
}

// initialPartition groups states by accept tag: one block per distinct
// token-order index, plus one block (tag -1) for non-accepting states.
func initialPartition(d *DFA) []int {
	tagToBlock := map[int32]int{}
	blockOf := make([]int, d.NumStates())
	for s := 0; s < d.NumStates(); s++ {
		tag := d.Accept[s]
		b, ok := tagToBlock[tag]
		if !ok {
			b = len(tagToBlock)
			tagToBlock[tag] = b
		}
		blockOf[s] = b
	}
	return blockOf
}

// refine repeatedly splits blocks whose members disagree on their
// per-byte signature (which block each transition target belongs to)
// until no block splits, per spec.md §4.6. New block IDs are assigned in
// old-block, then first-seen-member order, so they stay reproducible
// across rounds instead of depending on Go's map iteration order.
func refine(d *DFA, blockOf []int) []int {
	for {
		byOldBlock := map[int][]int{}
		maxOld := 0
		for s, b := range blockOf {
			byOldBlock[b] = append(byOldBlock[b], s)
			if b > maxOld {
				maxOld = b
			}
		}

		newBlockOf := make([]int, len(blockOf))
		split := false
		nextBlock := 0

		for old := 0; old <= maxOld; old++ {
			members := byOldBlock[old]
			if len(members) == 0 {
				continue
			}
			localSig := map[string]int{}
			for _, s := range members {
				sig := signature(d, blockOf, s)
				lb, ok := localSig[sig]
				if !ok {
					lb = nextBlock
					localSig[sig] = lb
					nextBlock++
				}
				newBlockOf[s] = lb
			}
			if len(localSig) > 1 {
				split = true
			}
		}

		blockOf = newBlockOf
		if !split {
			return blockOf
		}
	}
}

func signature(d *DFA, blockOf []int, s int) string {
	buf := make([]byte, 0, 128*4)
	for b := 0; b < 128; b++ {
		t := d.Trans[s][byte(b)]
		if t == noState {
			buf = append(buf, '_', ',')
			continue
		}
		buf = appendInt(buf, blockOf[t])
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// build materializes one minimized state per block. Every member of a
// block agrees on its outgoing transitions (by construction of refine),
// so any representative's row can be copied.
func build(d *DFA, blockOf []int) *DFA {
	numBlocks := 0
	for _, b := range blockOf {
		if b+1 > numBlocks {
			numBlocks = b + 1
		}
	}

	representative := make([]int, numBlocks)
	seen := make([]bool, numBlocks)
	for s, b := range blockOf {
		if !seen[b] {
			seen[b] = true
			representative[b] = s
		}
	}

	out := &DFA{
		Trans:  make([][128]int32, numBlocks),
		Accept: make([]int32, numBlocks),
		Start:  int32(blockOf[d.Start]),
	}

	for b := 0; b < numBlocks; b++ {
		rep := representative[b]
		out.Accept[b] = d.Accept[rep]
		for byt := 0; byt < 128; byt++ {
			t := d.Trans[rep][byte(byt)]
			if t == noState {
				out.Trans[b][byt] = noState
			} else {
				out.Trans[b][byt] = int32(blockOf[t])
			}
		}
	}

	return out
}
