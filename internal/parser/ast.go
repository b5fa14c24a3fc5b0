package parser

import "hacfg/internal/diag"

// Token is the smallest unit produced by the lexer.
type Token struct {
	Type  TokenType
	Value string
	Line  uint32 // 0-based
	Char  uint32 // 0-based character offset on the line
	Pos   int    // 0-based rune offset into the source, used only to slurp raw Lua bodies verbatim
}

// Loc converts the token's position into a diag.Location attributed to path.
func (t Token) Loc(path string) diag.Location {
	return diag.Location{Path: path, Line: int(t.Line) + 1, Col: int(t.Char) + 1, Len: len([]rune(t.Value))}
}

// Argument is a single token used as an argument to a directive.
type Argument struct {
	Token Token
}

// Directive is a named directive with optional arguments and a body block.
// Every block construct in the DSL — global, defaults, frontend NAME,
// backend NAME, listen NAME, peers NAME, resolvers NAME, mailers NAME,
// template NAME, health-check-template NAME, lua NAME, let NAME = VALUE,
// import PATH, for VAR in ITER, and every nested sub-directive — is
// represented uniformly as a Directive. Interpreting the Args token stream
// and Body according to each directive's place in the grammar is the job of
// the lowering stage, not the parser.
type Directive struct {
	Name      Token
	Args      []*Argument
	Body      []*Directive
	StartLine uint32
	EndLine   uint32

	// RawBody holds the verbatim source text of a "lua NAME { ... }" block's
	// body, braces excluded. Populated only for directives named "lua"; nil
	// otherwise. The parser slurps it directly from the source so that
	// embedded script formatting survives untouched, per spec.md's "scripts
	// are passed through verbatim".
	RawBody *string
}

// File is the root AST node: exactly one top-level "config NAME { ... }"
// directive.
type File struct {
	Config *Directive
}
