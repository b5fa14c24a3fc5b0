package lowering

import (
	"strconv"
	"strings"

	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// lowerVariable builds a Variable from "let NAME = VALUE" or "let NAME VALUE".
// A variable whose value is a brace-delimited map literal carries it in
// d.Body instead of d.Args (braces terminate argument collection in the
// parser, same as any other block-bearing directive).
func lowerVariable(d *parser.Directive, c *ctx) *ir.Variable {
	toks := argTokens(d)
	if len(toks) == 0 {
		c.errorf(c.loc(d.Name), "'let' requires a variable name")
		return &ir.Variable{Loc: c.loc(d.Name)}
	}
	name := toks[0].Value
	rest := toks[1:]
	if len(rest) > 0 && rest[0].Type == parser.EQUALS {
		rest = rest[1:]
	}

	v := &ir.Variable{Name: name, Loc: c.loc(d.Name)}
	if len(d.Body) > 0 {
		v.Value = ir.Value{Kind: ir.ValueMap, Map: fieldMap(d)}
		return v
	}
	v.Value = parseValue(rest)
	return v
}

// parseValue interprets a value-position token run as one of Value's
// tagged-union kinds: an env(NAME, DEFAULT?) call, a bracketed list, a
// boolean, an integer, a float, or a plain string (quoted or bare).
func parseValue(toks []parser.Token) ir.Value {
	if len(toks) == 0 {
		return ir.Value{Kind: ir.ValueString, Str: ""}
	}
	if toks[0].Type == parser.LBRACKET {
		return ir.Value{Kind: ir.ValueList, List: listTokens(toks)}
	}
	if looksLikeEnvCall(toks) {
		raw := joinValueTokens(toks)
		nameArg, defArg, hasDef := parseEnvCall(raw)
		val := ir.Value{Kind: ir.ValueEnvCall, EnvName: nameArg}
		if hasDef {
			val.EnvDefault = &defArg
		}
		return val
	}
	if len(toks) == 1 {
		return scalarTokenValue(toks[0])
	}
	// Multiple bare tokens with no recognized structure: treat as a
	// space-joined string (e.g. a duration-like compound value).
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Value
	}
	return ir.Value{Kind: ir.ValueString, Str: strings.Join(parts, " ")}
}

func scalarTokenValue(t parser.Token) ir.Value {
	if t.Type == parser.STRING {
		return ir.Value{Kind: ir.ValueString, Str: t.Value}
	}
	s := t.Value
	switch strings.ToLower(s) {
	case "true":
		return ir.Value{Kind: ir.ValueBool, Bool: true}
	case "false":
		return ir.Value{Kind: ir.ValueBool, Bool: false}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ir.Value{Kind: ir.ValueInt, Int: n}
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, ".eE") {
		return ir.Value{Kind: ir.ValueFloat, Float: fl}
	}
	return ir.Value{Kind: ir.ValueString, Str: s}
}

func listTokens(toks []parser.Token) []string {
	var out []string
	for _, t := range toks {
		switch t.Type {
		case parser.LBRACKET, parser.RBRACKET, parser.COMMA:
			continue
		default:
			out = append(out, t.Value)
		}
	}
	return out
}

func looksLikeEnvCall(toks []parser.Token) bool {
	return len(toks) > 0 && strings.HasPrefix(toks[0].Value, "env(")
}

// joinValueTokens reconstructs the source text of a value token run well
// enough to re-parse it: comma tokens become literal commas and string
// tokens get their quotes put back (the lexer strips them on decode).
func joinValueTokens(toks []parser.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		switch t.Type {
		case parser.COMMA:
			sb.WriteString(",")
		case parser.STRING:
			sb.WriteString(`"`)
			sb.WriteString(t.Value)
			sb.WriteString(`"`)
		default:
			sb.WriteString(t.Value)
		}
	}
	return sb.String()
}

// parseEnvCall parses "env(NAME)" or "env(NAME, DEFAULT)" (with NAME/DEFAULT
// optionally quoted) out of raw, reconstructed call text.
func parseEnvCall(raw string) (name, def string, hasDefault bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "env(")
	raw = strings.TrimSuffix(raw, ")")

	parts := splitTopLevelComma(raw)
	if len(parts) == 0 {
		return "", "", false
	}
	name = unquote(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		def = unquote(strings.TrimSpace(parts[1]))
		hasDefault = true
	}
	return name, def, hasDefault
}

func splitTopLevelComma(s string) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ',' && !inQuote:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 || len(parts) > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// lowerTemplate builds a Template from "template NAME { k: v, ... }".
func lowerTemplate(d *parser.Directive, c *ctx) *ir.Template {
	name, _ := nameAndRest(d)
	return &ir.Template{Name: name, Params: fieldMap(d), Loc: c.loc(d.Name)}
}

// lowerHealthCheckTemplate builds a HealthCheckTemplate, same shape as Template.
func lowerHealthCheckTemplate(d *parser.Directive, c *ctx) *ir.HealthCheckTemplate {
	name, _ := nameAndRest(d)
	return &ir.HealthCheckTemplate{Name: name, Params: fieldMap(d), Loc: c.loc(d.Name)}
}

// lowerLua builds a LuaScript from a "lua NAME [inline] { ... }" directive.
// Its RawBody was already slurped verbatim by the parser.
func lowerLua(d *parser.Directive, c *ctx) *ir.LuaScript {
	name, rest := nameAndRest(d)
	l := &ir.LuaScript{Name: name, Loc: c.loc(d.Name)}
	if d.RawBody != nil {
		l.Source = *d.RawBody
	}
	for _, t := range rest {
		if t.Value == "inline" {
			l.Inline = true
		}
	}
	return l
}
