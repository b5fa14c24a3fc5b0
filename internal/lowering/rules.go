package lowering

import (
	"strings"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// scanRuleTail consumes a rule's parameter tokens, splitting off a
// trailing "if COND" / "unless COND" condition and recognizing "key=value"
// named parameters (key, EQUALS, value token triples) among the
// positional ones.
func scanRuleTail(action string, toks []parser.Token, loc diag.Location) ir.Rule {
	var params []string
	var named map[string]string
	condition := ""
	for i := 0; i < len(toks); i++ {
		v := toks[i].Value
		if v == "if" || v == "unless" {
			parts := make([]string, 0, len(toks)-i)
			for _, t := range toks[i:] {
				parts = append(parts, t.Value)
			}
			condition = strings.Join(parts, " ")
			break
		}
		if i+2 < len(toks) && toks[i+1].Type == parser.EQUALS {
			if named == nil {
				named = make(map[string]string)
			}
			named[v] = toks[i+2].Value
			i += 2
			continue
		}
		params = append(params, v)
	}
	return ir.Rule{Action: action, Params: params, Named: named, Condition: condition, Loc: loc}
}

// parseActionRule handles rule families where the directive name is the
// rule-list container (e.g. "http-request") and the first argument is the
// action verb: "http-request deny if is_api".
func parseActionRule(d *parser.Directive, c *ctx) ir.Rule {
	toks := argTokens(d)
	if len(toks) == 0 {
		c.errorf(c.loc(d.Name), "%q requires an action", key(d))
		return ir.Rule{Loc: c.loc(d.Name)}
	}
	return scanRuleTail(toks[0].Value, toks[1:], c.loc(d.Name))
}

// parseNamedRule handles single-purpose repeatable directives where the
// directive name itself is the action (e.g. "use_backend NAME if COND").
func parseNamedRule(d *parser.Directive, c *ctx) ir.Rule {
	return scanRuleTail(key(d), argTokens(d), c.loc(d.Name))
}

func parseACL(d *parser.Directive, c *ctx) ir.ACL {
	vals := argValues(d)
	a := ir.ACL{Loc: c.loc(d.Name)}
	if len(vals) > 0 {
		a.Name = vals[0]
	}
	if len(vals) > 1 {
		a.Criterion = vals[1]
	}
	if len(vals) > 2 {
		a.Values = vals[2:]
	}
	return a
}

func parseLogTarget(d *parser.Directive) ir.LogTarget {
	vals := argValues(d)
	lt := ir.LogTarget{}
	if len(vals) > 0 {
		lt.Target = vals[0]
	}
	if len(vals) > 1 {
		lt.Facility = vals[1]
	}
	if len(vals) > 2 {
		lt.Level = vals[2]
	}
	if len(vals) > 3 {
		lt.MinLevel = vals[3]
	}
	return lt
}
