// Package lowering walks the concrete syntax tree produced by
// internal/parser and builds internal/ir's ConfigIR. Each section lowerer
// dispatches on the directive name with a switch statement; a name that no
// case recognizes is a fatal *diag.ParseError reporting the directive as
// never valid in that section. There is no separate "applicable but not
// implemented" category: every unrecognized name gets that same error.
package lowering

import (
	"strconv"
	"strings"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// ctx carries shared state through one Lower call.
type ctx struct {
	path   string
	errors []*diag.ParseError
}

func (c *ctx) errorf(loc diag.Location, format string, args ...any) {
	c.errors = append(c.errors, diag.NewParseError(loc, format, args...))
}

func (c *ctx) loc(t parser.Token) diag.Location {
	return t.Loc(c.path)
}

// key returns a directive's canonical name with any trailing ":" (the
// optional key/value separator the grammar allows) stripped.
func key(d *parser.Directive) string {
	return strings.TrimSuffix(d.Name.Value, ":")
}

// argTokens returns the raw argument tokens of d.
func argTokens(d *parser.Directive) []parser.Token {
	out := make([]parser.Token, len(d.Args))
	for i, a := range d.Args {
		out[i] = a.Token
	}
	return out
}

// argValues returns the string value of every argument token, verbatim
// (including any not-yet-resolved ${...} markers).
func argValues(d *parser.Directive) []string {
	toks := argTokens(d)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Value
	}
	return out
}

// scalar returns the directive's value as a single string: if the
// directive's arguments are a bracketed list or contain commas, the raw
// tokens are joined with a single space (callers that expect a list call
// list() instead); otherwise it is simply the arguments joined by a
// space, which is correct both for "key: value" and "key value" forms and
// for multi-word values like duration-prefixed tokens.
func scalar(d *parser.Directive) string {
	return strings.Join(argValues(d), " ")
}

// list interprets the directive's arguments as a list: either a bracketed
// "[a, b, c]" literal or a bare space-separated token sequence (both forms
// appear in the source grammar — e.g. "option: [\"httplog\"]" vs.
// "ssl-default-bind-options no-sslv3 no-tlsv10").
func list(d *parser.Directive) []string {
	toks := argTokens(d)
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

// fieldMap interprets d's Body as a map literal: one entry per sub-
// directive, key -> scalar value. Both genuine nested blocks (section
// bodies) and map-literal values parse to the same Directive.Body shape;
// callers that want a map call this, callers that want sub-directives
// iterate d.Body directly.
func fieldMap(d *parser.Directive) map[string]string {
	if len(d.Body) == 0 {
		return nil
	}
	out := make(map[string]string, len(d.Body))
	for _, sub := range d.Body {
		out[key(sub)] = scalar(sub)
	}
	return out
}

func intStringMap(d *parser.Directive, c *ctx) map[int]string {
	if len(d.Body) == 0 {
		return nil
	}
	out := make(map[int]string, len(d.Body))
	for _, sub := range d.Body {
		n, ok := parseIntStr(key(sub))
		if !ok {
			c.errorf(c.loc(sub.Name), "expected integer status code key, got %q", key(sub))
			continue
		}
		out[n] = scalar(sub)
	}
	return out
}

func parseIntStr(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func intPtr(s string, c *ctx, loc diag.Location) *int {
	n, ok := parseIntStr(s)
	if !ok {
		c.errorf(loc, "expected integer, got %q", s)
		return nil
	}
	return &n
}

func boolVal(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes", "enabled":
		return true
	default:
		return false
	}
}

func boolPtr(s string) *bool {
	b := boolVal(s)
	return &b
}

// splitAddrPort splits "host:port" (or a bare host) into address and an
// optional port. UNIX socket paths ("/path", "abns@name", "@name") and a
// bracketed IPv6 literal without a port are left whole in address with no
// port; "[::1]:80" splits into "[::1]" and 80.
func splitAddrPort(s string) (addr string, port *int) {
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "abns@") || strings.HasPrefix(s, "@") {
		return s, nil
	}
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return s, nil
	}
	addr = s[:idx]
	if n, ok := parseIntStr(s[idx+1:]); ok {
		port = &n
	} else {
		// Not a numeric port (could be a ${...} marker not yet resolved,
		// or simply absent); keep the whole string as the address and
		// resolve the split again after variable resolution if needed.
		return s, nil
	}
	return addr, port
}

// nameAndRest returns the directive's first argument (conventionally an
// entity name, e.g. "frontend web") and the remaining arguments.
func nameAndRest(d *parser.Directive) (string, []parser.Token) {
	toks := argTokens(d)
	if len(toks) == 0 {
		return "", nil
	}
	return toks[0].Value, toks[1:]
}

// templateRef reports whether token t has the "@name" form and, if so,
// returns it as a TemplateRef, used where a directive itself *is* a
// template spread (e.g. a bare "@defaults" line inside a server block).
func templateRef(t parser.Token, c *ctx) (ir.TemplateRef, bool) {
	if !strings.HasPrefix(t.Value, "@") {
		return ir.TemplateRef{}, false
	}
	return ir.TemplateRef{Name: strings.TrimPrefix(t.Value, "@"), Loc: c.loc(t)}, true
}
