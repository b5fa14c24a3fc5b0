package lowering

import (
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

func lowerBackend(d *parser.Directive, c *ctx) *ir.Backend {
	name, _ := nameAndRest(d)
	b := &ir.Backend{Name: name}
	b.Loc = c.loc(d.Name)
	for _, sub := range d.Body {
		if applyCommon(&b.ProxyCommon, sub, c) {
			continue
		}
		k := key(sub)
		switch k {
		case "balance":
			b.Balance = scalar(sub)
		case "hash-type":
			b.HashType = scalar(sub)
		case "hash-balance-factor":
			b.HashBalanceFactor = intPtr(scalar(sub), c, c.loc(sub.Name))
		case "servers":
			lowerServersContainer(sub.Body, c, &b.Servers, &b.ServerLoops)
		case "server":
			b.Servers = append(b.Servers, *lowerServer(sub, c))
		case "for":
			if fl, ok := lowerForLoop(sub, c, ir.LoopBodyServer); ok {
				b.ServerLoops = append(b.ServerLoops, fl)
			}
		case "default-server":
			b.DefaultServer = lowerDefaultServer(sub, c)
		case "server-template":
			b.ServerTemplates = append(b.ServerTemplates, lowerServerTemplate(sub, c))
		case "health-check":
			b.HealthCheck = lowerHealthCheck(sub)
		case "compression":
			b.Compression = lowerCompression(sub)
		case "dispatch":
			b.Dispatch = scalar(sub)
		case "errorloc":
			b.ErrorLoc = intStringMap(sub, c)
		case "errorloc302":
			b.ErrorLoc302 = intStringMap(sub, c)
		case "errorloc303":
			b.ErrorLoc303 = intStringMap(sub, c)
		case "errorfile":
			b.ErrorFile = intStringMap(sub, c)
		case "errorfiles":
			b.ErrorFiles = scalar(sub)
		case "http-reuse":
			b.HTTPReuse = scalar(sub)
		case "retry-on":
			b.RetryOn = append(b.RetryOn, list(sub)...)
		case "http-send-name-header":
			b.HTTPSendNameHeader = scalar(sub)
		case "load-server-state-from-file":
			b.LoadServerStateFromFile = scalar(sub)
		case "server-state-file-name":
			b.ServerStateFileName = scalar(sub)
		case "use-server":
			b.UseServerRules = append(b.UseServerRules, parseNamedRule(sub, c))
		case "stick-table":
			b.StickTable = lowerStickTable(sub)
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a backend block", k)
		}
	}
	return b
}

func lowerHealthCheck(d *parser.Directive) *ir.HealthCheck {
	m := fieldMap(d)
	hc := &ir.HealthCheck{
		Method:   m["method"],
		URI:      m["uri"],
		Version:  m["version"],
		Interval: m["interval"],
	}
	if s, ok := m["expect-status"]; ok {
		if n, ok2 := parseIntStr(s); ok2 {
			hc.ExpectStatus = &n
		}
	}
	return hc
}

func lowerCompression(d *parser.Directive) *ir.Compression {
	m := fieldMap(d)
	comp := &ir.Compression{Offload: boolVal(m["offload"])}
	if v, ok := m["algo"]; ok {
		comp.Algorithms = []string{v}
	}
	if v, ok := m["type"]; ok {
		comp.Types = []string{v}
	}
	return comp
}
