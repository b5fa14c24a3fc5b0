package lowering

import (
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

func lowerListen(d *parser.Directive, c *ctx) *ir.Listen {
	name, _ := nameAndRest(d)
	l := &ir.Listen{Name: name}
	l.Loc = c.loc(d.Name)
	for _, sub := range d.Body {
		if applyCommon(&l.ProxyCommon, sub, c) {
			continue
		}
		k := key(sub)
		switch k {
		case "binds":
			lowerBindsContainer(sub.Body, c, &l.Binds)
		case "bind":
			l.Binds = append(l.Binds, lowerBind(sub, c))
		case "default_backend", "default-backend":
			l.DefaultBackend = scalar(sub)
		case "balance":
			l.Balance = scalar(sub)
		case "hash-type":
			l.HashType = scalar(sub)
		case "hash-balance-factor":
			l.HashBalanceFactor = intPtr(scalar(sub), c, c.loc(sub.Name))
		case "servers":
			lowerServersContainer(sub.Body, c, &l.Servers, &l.ServerLoops)
		case "server":
			l.Servers = append(l.Servers, *lowerServer(sub, c))
		case "for":
			if fl, ok := lowerForLoop(sub, c, ir.LoopBodyServer); ok {
				l.ServerLoops = append(l.ServerLoops, fl)
			}
		case "default-server":
			l.DefaultServer = lowerDefaultServer(sub, c)
		case "server-template":
			l.ServerTemplates = append(l.ServerTemplates, lowerServerTemplate(sub, c))
		case "health-check":
			l.HealthCheck = lowerHealthCheck(sub)
		case "compression":
			l.Compression = lowerCompression(sub)
		case "errorfile":
			l.ErrorFile = intStringMap(sub, c)
		case "errorfiles":
			l.ErrorFiles = scalar(sub)
		case "use-server":
			l.UseServerRules = append(l.UseServerRules, parseNamedRule(sub, c))
		case "use_backend", "use-backend":
			l.UseBackendRules = append(l.UseBackendRules, parseNamedRule(sub, c))
		case "stick-table":
			l.StickTable = lowerStickTable(sub)
		case "quic-initial":
			l.QuicInitialRules = append(l.QuicInitialRules, parseActionRule(sub, c))
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a listen block", k)
		}
	}
	return l
}
