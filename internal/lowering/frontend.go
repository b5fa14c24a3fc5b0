package lowering

import (
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

func lowerFrontend(d *parser.Directive, c *ctx) *ir.Frontend {
	name, _ := nameAndRest(d)
	f := &ir.Frontend{Name: name}
	f.Loc = c.loc(d.Name)
	for _, sub := range d.Body {
		if applyCommon(&f.ProxyCommon, sub, c) {
			continue
		}
		k := key(sub)
		switch k {
		case "binds":
			lowerBindsContainer(sub.Body, c, &f.Binds)
		case "bind":
			f.Binds = append(f.Binds, lowerBind(sub, c))
		case "default_backend", "default-backend":
			f.DefaultBackend = scalar(sub)
		case "monitor-uri":
			f.MonitorURI = scalar(sub)
		case "monitor-net":
			f.MonitorNet = append(f.MonitorNet, list(sub)...)
		case "monitor-fail":
			f.MonitorFailRules = append(f.MonitorFailRules, parseNamedRule(sub, c))
		case "stats":
			applyStats(f, sub)
		case "declare":
			f.DeclareCaptures = append(f.DeclareCaptures, parseCapture(sub))
		case "force-persist":
			f.ForcePersistRules = append(f.ForcePersistRules, parseNamedRule(sub, c))
		case "ignore-persist":
			f.IgnorePersistRules = append(f.IgnorePersistRules, parseNamedRule(sub, c))
		case "use_backend", "use-backend":
			f.UseBackendRules = append(f.UseBackendRules, parseNamedRule(sub, c))
		case "stick-table":
			f.StickTable = lowerStickTable(sub)
		case "quic-initial":
			f.QuicInitialRules = append(f.QuicInitialRules, parseActionRule(sub, c))
		case "for":
			if fl, ok := lowerForLoop(sub, c, ir.LoopBodyRule); ok {
				f.RuleLoops = append(f.RuleLoops, fl)
			}
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a frontend block", k)
		}
	}
	return f
}

func applyStats(f *ir.Frontend, d *parser.Directive) {
	f.StatsEnable = true
	m := fieldMap(d)
	if m == nil {
		return
	}
	if uri, ok := m["uri"]; ok {
		f.StatsURI = uri
		delete(m, "uri")
	}
	if len(m) > 0 {
		f.StatsOptions = m
	}
}

func parseCapture(d *parser.Directive) ir.Capture {
	vals := argValues(d)
	cap := ir.Capture{}
	// "declare capture request len 128" / "declare capture response len 64"
	for i, v := range vals {
		switch v {
		case "request", "response":
			cap.Direction = v
		case "len":
			if i+1 < len(vals) {
				if n, ok := parseIntStr(vals[i+1]); ok {
					cap.Len = n
				}
			}
		}
	}
	return cap
}

func lowerStickTable(d *parser.Directive) *ir.StickTable {
	m := fieldMap(d)
	st := &ir.StickTable{
		Type:   m["type"],
		Size:   m["size"],
		Expire: m["expire"],
		Peers:  m["peers"],
	}
	if l, ok := m["len"]; ok {
		if n, ok2 := parseIntStr(l); ok2 {
			st.Length = &n
		}
	}
	if s, ok := m["store"]; ok {
		st.Store = []string{s}
	}
	return st
}
