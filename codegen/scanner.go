package codegen

import "github.com/dave/jennifer/jen"

// emitNextToken emits the NextToken method implementing spec.md §6.3's
// five-step maximal-munch algorithm, generalizing the teacher's
// tooling/lexer.Lexer.nextToken from a rune-decoding, DFA-struct-method
// lexer to a byte-indexed, table-driven one: no decoding step is needed
// since the alphabet is already raw bytes, and transitions/accept are
// plain array lookups instead of map-backed DfaWithTokens calls.
func emitNextToken(f *jen.File, scannerType, tokenType string, startState int) {
	f.Comment("NextToken returns the next token using longest-match (maximal munch)")
	f.Comment("scanning. At end of input it returns a Kind -1 token forever after.")
	f.Func().Params(jen.Id("s").Op("*").Id(scannerType)).Id("NextToken").Params().Id(tokenType).Block(
		jen.If(jen.Id("s").Dot("pos").Op(">=").Len(jen.Id("s").Dot("input"))).Block(
			jen.Return(jen.Id(tokenType).Values(jen.Dict{
				jen.Id("Kind"): jen.Lit(-1),
			})),
		),
		jen.Line(),

		jen.Id("start").Op(":=").Id("s").Dot("pos"),
		jen.Id("cur").Op(":=").Lit(startState),
		jen.Id("lastAcceptState").Op(":=").Lit(-1),
		jen.Id("lastAcceptPos").Op(":=").Id("start"),
		jen.Id("pos").Op(":=").Id("start"),
		jen.Line(),

		jen.Comment("Step through the transition table, tracking the most recent"),
		jen.Comment("accept state reached (maximal munch)."),
		jen.For(jen.Id("pos").Op("<").Len(jen.Id("s").Dot("input"))).Block(
			jen.Id("b").Op(":=").Id("s").Dot("input").Index(jen.Id("pos")),
			jen.If(jen.Id("b").Op(">=").Lit(128)).Block(
				jen.Break(),
			),
			jen.Id("nxt").Op(":=").Id("transitions").Index(jen.Id("cur")).Index(jen.Id("b")),
			jen.If(jen.Id("nxt").Op("<").Lit(0)).Block(
				jen.Break(),
			),
			jen.Id("cur").Op("=").Int().Call(jen.Id("nxt")),
			jen.Id("pos").Op("++"),
			jen.If(jen.Id("acceptTokenIndex").Index(jen.Id("cur")).Op(">=").Lit(0)).Block(
				jen.Id("lastAcceptState").Op("=").Id("cur"),
				jen.Id("lastAcceptPos").Op("=").Id("pos"),
			),
		),
		jen.Line(),

		jen.If(jen.Id("lastAcceptState").Op(">=").Lit(0)).Block(
			jen.Id("s").Dot("pos").Op("=").Id("lastAcceptPos"),
			jen.Return(jen.Id(tokenType).Values(jen.Dict{
				jen.Id("Kind"):   jen.Int().Call(jen.Id("acceptTokenIndex").Index(jen.Id("lastAcceptState"))),
				jen.Id("Lexeme"): jen.Id("s").Dot("input").Index(jen.Id("start"), jen.Id("lastAcceptPos")),
			})),
		),
		jen.Line(),

		jen.Comment("No pattern matched even one byte: emit the unrecognized-byte"),
		jen.Comment("sentinel and advance exactly one byte, guaranteeing progress."),
		jen.Id("s").Dot("pos").Op("=").Id("start").Op("+").Lit(1),
		jen.Return(jen.Id(tokenType).Values(jen.Dict{
			jen.Id("Kind"):   jen.Lit(-2),
			jen.Id("Lexeme"): jen.Id("s").Dot("input").Index(jen.Id("start"), jen.Id("start").Op("+").Lit(1)),
		})),
	)

	f.Comment("Tokenize drains s, returning every token including the final -1.")
	f.Func().Params(jen.Id("s").Op("*").Id(scannerType)).Id("Tokenize").Params().Index().Id(tokenType).Block(
		jen.Var().Id("out").Index().Id(tokenType),
		jen.For().Block(
			jen.Id("tok").Op(":=").Id("s").Dot("NextToken").Call(),
			jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("tok")),
			jen.If(jen.Id("tok").Dot("Kind").Op("==").Lit(-1)).Block(
				jen.Return(jen.Id("out")),
			),
		),
	)
}
