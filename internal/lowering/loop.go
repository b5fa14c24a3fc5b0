package lowering

import (
	"strconv"
	"strings"

	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// lowerForLoop builds a ForLoop from a "for VAR in ITERABLE { body }"
// directive. kind tells the caller (and, transitively, the Loop Unroller)
// how to interpret the loop's body entries.
func lowerForLoop(d *parser.Directive, c *ctx, kind ir.LoopBodyEntityKind) (ir.ForLoop, bool) {
	toks := argTokens(d)
	if len(toks) < 3 || toks[1].Value != "in" {
		c.errorf(c.loc(d.Name), "malformed for-loop header, expected \"for VAR in ITERABLE\"")
		return ir.ForLoop{}, false
	}
	fl := ir.ForLoop{Var: toks[0].Value, Loc: c.loc(d.Name)}
	fl.Iterable = parseIterable(toks[2:])

	for _, sub := range d.Body {
		switch kind {
		case ir.LoopBodyServer:
			if key(sub) == "server" {
				fl.Body = append(fl.Body, ir.LoopBodyEntity{Kind: ir.LoopBodyServer, Server: lowerServer(sub, c)})
				continue
			}
			c.errorf(c.loc(sub.Name), "directive %q is never valid inside a server loop", key(sub))
		case ir.LoopBodyRule:
			r := parseActionRule(sub, c)
			r.List = key(sub)
			fl.Body = append(fl.Body, ir.LoopBodyEntity{Kind: ir.LoopBodyRule, Rule: &r})
		}
	}
	return fl, true
}

// parseIterable recognizes an inclusive numeric range ("1..3", optionally
// bracketed as "[1..3]") or a literal list ("[a, b, c]" or bare
// space-separated tokens).
func parseIterable(toks []parser.Token) ir.Iterable {
	var vals []string
	for _, t := range toks {
		if t.Type == parser.LBRACKET || t.Type == parser.RBRACKET || t.Type == parser.COMMA {
			continue
		}
		vals = append(vals, t.Value)
	}
	if len(vals) == 1 && strings.Contains(vals[0], "..") {
		parts := strings.SplitN(vals[0], "..", 2)
		from, ferr := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		to, terr := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if ferr == nil && terr == nil {
			return ir.Iterable{IsRange: true, From: from, To: to}
		}
	}
	return ir.Iterable{List: vals}
}
