package lowering

import (
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

func lowerDefaults(d *parser.Directive, c *ctx) *ir.Defaults {
	def := &ir.Defaults{Loc: c.loc(d.Name)}
	for _, sub := range d.Body {
		if applyCommon(&def.ProxyCommon, sub, c) {
			continue
		}
		k := key(sub)
		switch k {
		case "retries":
			def.Retries = intPtr(scalar(sub), c, c.loc(sub.Name))
		case "persist":
			def.PersistRDPCookie = scalar(sub)
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a defaults block", k)
		}
	}
	return def
}
