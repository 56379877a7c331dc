// Package dotviz implements the visualizer (E3): it renders an NFA or a DFA
// as Graphviz DOT text via text/template. No DOT-writing library appears
// anywhere in the retrieved corpus, so this is the one component in lexygen
// built directly on the standard library rather than a third-party package
// (see DESIGN.md).
package dotviz

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/dfalang/lexygen/automata/dfa"
	"github.com/dfalang/lexygen/automata/nfa"
)

var dotTemplate = template.Must(template.New("dot").Parse(
	`digraph {{.Name}} {
	rankdir=LR;
	node [shape=circle];
	"start" [shape=point];
	"start" -> "{{.Start}}";
{{- range .Accepts}}
	"{{.State}}" [shape=doublecircle, label="{{.State}}\n{{.Label}}"];
{{- end}}
{{- range .Edges}}
	"{{.From}}" -> "{{.To}}" [label="{{.Label}}"];
{{- end}}
}
`))

type edge struct {
	From, To, Label string
}

type acceptNode struct {
	State, Label string
}

type graph struct {
	Name    string
	Start   string
	Accepts []acceptNode
	Edges   []edge
}

// NFA renders n as DOT text. ε-transitions are labeled "ε"; byte
// transitions are labeled with the printable character or, for
// non-printable bytes and for '"' and '\\', a \xHH escape. Accept nodes are labeled with their
// token-order index. n is never mutated.
func NFA(n *nfa.NFA) string {
	g := graph{Name: "nfa", Start: strconv.Itoa(n.Start)}

	for s, tag := range n.Accept {
		g.Accepts = append(g.Accepts, acceptNode{State: strconv.Itoa(s), Label: "tag " + strconv.Itoa(tag)})
	}

	for id, st := range n.States {
		for _, t := range st.Eps {
			g.Edges = append(g.Edges, edge{From: strconv.Itoa(id), To: strconv.Itoa(t), Label: "ε"})
		}
		for b, targets := range st.Trans {
			for _, t := range targets {
				g.Edges = append(g.Edges, edge{From: strconv.Itoa(id), To: strconv.Itoa(t), Label: byteLabel(b)})
			}
		}
	}

	return render(g)
}

// DFA renders d as DOT text, collapsing the 128 per-byte transition rows
// into one labeled edge per distinct target state. d is never mutated.
func DFA(d *dfa.DFA) string {
	g := graph{Name: "dfa", Start: strconv.Itoa(int(d.Start))}

	for s := 0; s < d.NumStates(); s++ {
		if d.IsAccepting(int32(s)) {
			g.Accepts = append(g.Accepts, acceptNode{State: strconv.Itoa(s), Label: "tag " + strconv.Itoa(int(d.Accept[s]))})
		}

		byTarget := map[int32][]byte{}
		for b := 0; b < 128; b++ {
			t := d.Step(int32(s), byte(b))
			if t == -1 {
				continue
			}
			byTarget[t] = append(byTarget[t], byte(b))
		}
		for t, bytes := range byTarget {
			g.Edges = append(g.Edges, edge{From: strconv.Itoa(s), To: strconv.Itoa(int(t)), Label: byteRangeLabel(bytes)})
		}
	}

	return render(g)
}

func render(g graph) string {
	var sb strings.Builder
	if err := dotTemplate.Execute(&sb, g); err != nil {
		panic("dotviz: template execution failed: " + err.Error())
	}
	return sb.String()
}

func byteLabel(b byte) string {
	if b >= 32 && b <= 126 && b != '"' && b != '\\' {
		return string(b)
	}
	return "\\x" + hexDigits(b)
}

// byteRangeLabel renders a set of bytes compactly as comma-separated
// single characters or ranges (e.g. "a-z,0-9").
func byteRangeLabel(bytes []byte) string {
	if len(bytes) == 0 {
		return ""
	}
	sorted := append([]byte(nil), bytes...)
	insertionSort(sorted)

	var sb strings.Builder
	i := 0
	for i < len(sorted) {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(byteLabel(sorted[i]))
		if j > i {
			sb.WriteByte('-')
			sb.WriteString(byteLabel(sorted[j]))
		}
		i = j + 1
	}
	return sb.String()
}

func insertionSort(bs []byte) {
	for i := 1; i < len(bs); i++ {
		for j := i; j > 0 && bs[j-1] > bs[j]; j-- {
			bs[j-1], bs[j] = bs[j], bs[j-1]
		}
	}
}

func hexDigits(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}

