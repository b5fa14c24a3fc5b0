package lowering

import (
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// synthDirective builds a Directive carrying a single string-valued
// argument, so that a plain key->value param map (as stored on a Template
// or HealthCheckTemplate) can be run back through the same field-dispatch
// setters the parser-driven lowering path uses. This is how the Template
// Expander (internal/transform/template) gets template parameters onto an
// entity's typed fields without duplicating the field-name table.
func synthDirective(name, value string) *parser.Directive {
	return &parser.Directive{
		Name: parser.Token{Type: parser.IDENT, Value: name},
		Args: []*parser.Argument{{Token: parser.Token{Type: parser.IDENT, Value: value}}},
	}
}

func synthDirectives(params map[string]string) []*parser.Directive {
	out := make([]*parser.Directive, 0, len(params))
	for k, v := range params {
		out = append(out, synthDirective(k, v))
	}
	return out
}

// ServerFromParams builds a standalone Server populated only from params,
// dispatched through the same setter table a "server { ... }" block uses.
// Unrecognized keys land in the result's free-form Options map, exactly as
// they would from a real directive (spec.md §4.4 "unknown parameter names
// ... become entries in the entity's free-form options map").
func ServerFromParams(params map[string]string) *ir.Server {
	c := &ctx{}
	s := &ir.Server{}
	applyServerFields(s, synthDirectives(params), c)
	return s
}

// ProxyCommonFromParams builds a standalone ProxyCommon from params, used
// for "@name" spreads on a frontend/backend/listen/defaults section itself.
// It also reports the param keys applyCommon did not recognize, so the
// caller can warn on them (spec.md §4.4: unknown params with nowhere to go
// are "ignored with a warning").
func ProxyCommonFromParams(params map[string]string) (ir.ProxyCommon, []string) {
	c := &ctx{}
	pc := ir.ProxyCommon{}
	var unrecognized []string
	for _, d := range synthDirectives(params) {
		if !applyCommon(&pc, d, c) {
			unrecognized = append(unrecognized, d.Name.Value)
		}
	}
	return pc, unrecognized
}

// ACLFromParams builds a standalone ACL from a template's params, used for
// "@name" spreads on an ACL entity (spec.md §9 Open Question 2: resolved by
// the same by-name field mapping as every other entity).
func ACLFromParams(params map[string]string) ir.ACL {
	a := ir.ACL{}
	if v, ok := params["criterion"]; ok {
		a.Criterion = v
	}
	if v, ok := params["values"]; ok {
		a.Values = []string{v}
	}
	return a
}
