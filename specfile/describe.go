package specfile

import (
	"gopkg.in/yaml.v3"

	"github.com/dfalang/lexygen/regex/ast"
	"github.com/dfalang/lexygen/regex/parser"
)

// describedToken is one token's YAML representation for --debug-dump-grammar:
// the raw pattern plus a human-readable rendering of its parsed AST, mirroring
// alterx's Config/yaml.v3 round-trip (see _examples/projectdiscovery-alterx).
type describedToken struct {
	Name    string `yaml:"name"`
	Order   int    `yaml:"order"`
	Pattern string `yaml:"pattern"`
	AST     string `yaml:"ast"`
}

type describedSpec struct {
	Path   string           `yaml:"path"`
	Tokens []describedToken `yaml:"tokens"`
}

// Describe renders spec's token definitions, plus each one's parsed regex
// AST, as a YAML document for debugging a .lexy file. Parse failures are
// recorded inline rather than aborting the dump, since this is a diagnostic
// aid, not a pipeline stage.
func Describe(spec *Spec) ([]byte, error) {
	doc := describedSpec{Path: spec.Path}
	for i, def := range spec.Definitions {
		tok := describedToken{Name: def.Name, Order: i, Pattern: def.Pattern}
		if node, err := parser.Parse(def.Pattern); err == nil {
			tok.AST = renderNode(node)
		} else {
			tok.AST = "<parse error: " + err.Error() + ">"
		}
		doc.Tokens = append(doc.Tokens, tok)
	}
	return yaml.Marshal(doc)
}

// renderNode gives a compact s-expression rendering of a regex AST node,
// good enough for a human skimming a debug dump.
func renderNode(n ast.Node) string {
	switch v := n.(type) {
	case ast.Char:
		return "char(" + string(v.Byte) + ")"
	case ast.Dot:
		return "dot"
	case ast.CharSet:
		if v.Negated {
			return "charset(negated)"
		}
		return "charset"
	case ast.Concat:
		return "concat(" + renderNode(v.Left) + ", " + renderNode(v.Right) + ")"
	case ast.Alt:
		return "alt(" + renderNode(v.Left) + ", " + renderNode(v.Right) + ")"
	case ast.Star:
		return "star(" + renderNode(v.Child) + ")"
	case ast.Plus:
		return "plus(" + renderNode(v.Child) + ")"
	case ast.Question:
		return "question(" + renderNode(v.Child) + ")"
	case ast.Range:
		return "range(" + renderNode(v.Child) + ")"
	default:
		return "?"
	}
}
