package lowering

import (
	"strings"

	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// lowerServer builds a Server from a "server NAME [ADDR:PORT] { ... }"
// directive. The address:port may be given either as a second positional
// argument (shorthand) or as "address"/"port" fields in the body; a body
// field always wins since it is read after the shorthand.
func lowerServer(d *parser.Directive, c *ctx) *ir.Server {
	name, rest := nameAndRest(d)
	s := &ir.Server{Name: name, Loc: c.loc(d.Name)}
	if len(rest) > 0 {
		addr, port := splitAddrPort(rest[0].Value)
		s.Address, s.Port = addr, port
	}
	applyServerFields(s, d.Body, c)
	return s
}

// applyServerFields dispatches every key:value entry in body against a
// Server's field surface, falling back to the free-form Options map for
// anything not named explicitly (spec.md §9 "Unknown-at-build-time keys").
func applyServerFields(s *ir.Server, body []*parser.Directive, c *ctx) {
	for _, sub := range body {
		k := key(sub)
		if strings.HasPrefix(k, "@") {
			s.TemplateRefs = append(s.TemplateRefs, ir.TemplateRef{
				Name: strings.TrimPrefix(k, "@"),
				Loc:  c.loc(sub.Name),
			})
			continue
		}
		loc := c.loc(sub.Name)
		switch k {
		case "address":
			s.Address = scalar(sub)
		case "port":
			s.Port = intPtr(scalar(sub), c, loc)
		case "check":
			s.Check = boolPtr(scalar(sub))
		case "interval", "inter":
			s.Interval = scalar(sub)
		case "rise":
			s.Rise = intPtr(scalar(sub), c, loc)
		case "fall":
			s.Fall = intPtr(scalar(sub), c, loc)
		case "check-port":
			s.CheckPort = intPtr(scalar(sub), c, loc)
		case "check-address":
			s.CheckAddress = scalar(sub)
		case "check-sni":
			s.CheckSNI = scalar(sub)
		case "check-send-proxy":
			s.CheckSendProxy = boolPtr(scalar(sub))
		case "check-proto":
			s.CheckProto = scalar(sub)
		case "agent-check":
			s.AgentCheck = boolPtr(scalar(sub))
		case "agent-address":
			s.AgentAddress = scalar(sub)
		case "agent-port":
			s.AgentPort = intPtr(scalar(sub), c, loc)
		case "agent-interval":
			s.AgentInterval = scalar(sub)
		case "weight":
			s.Weight = intPtr(scalar(sub), c, loc)
		case "maxconn":
			s.Maxconn = intPtr(scalar(sub), c, loc)
		case "minconn":
			s.Minconn = intPtr(scalar(sub), c, loc)
		case "maxqueue":
			s.Maxqueue = intPtr(scalar(sub), c, loc)
		case "max-reuse":
			s.MaxReuse = intPtr(scalar(sub), c, loc)
		case "pool-max-conn":
			s.PoolMaxConn = intPtr(scalar(sub), c, loc)
		case "pool-purge-delay":
			s.PoolPurgeDelay = scalar(sub)
		case "ssl":
			s.SSL = boolPtr(scalar(sub))
		case "verify":
			s.Verify = scalar(sub)
		case "sni":
			s.SNI = scalar(sub)
		case "alpn":
			s.ALPN = list(sub)
		case "ca-file":
			s.CAFile = scalar(sub)
		case "crl-file":
			s.CRLFile = scalar(sub)
		case "cert":
			s.Cert = scalar(sub)
		case "ciphers":
			s.Ciphers = scalar(sub)
		case "curves":
			s.Curves = scalar(sub)
		case "send-proxy":
			s.SendProxy = boolPtr(scalar(sub))
		case "send-proxy-v2":
			s.SendProxyV2 = boolPtr(scalar(sub))
		case "slow-start":
			s.SlowStart = scalar(sub)
		case "resolvers":
			s.Resolvers = scalar(sub)
		case "resolve-prefer":
			s.ResolvePrefer = scalar(sub)
		case "init-addr":
			s.InitAddr = scalar(sub)
		case "error-limit":
			s.ErrorLimit = intPtr(scalar(sub), c, loc)
		case "observe":
			s.Observe = scalar(sub)
		case "on-error":
			s.OnError = scalar(sub)
		case "on-marked-down":
			s.OnMarkedDown = scalar(sub)
		case "on-marked-up":
			s.OnMarkedUp = scalar(sub)
		case "proto":
			s.Proto = scalar(sub)
		case "tfo":
			s.TFO = boolPtr(scalar(sub))
		case "namespace":
			s.Namespace = scalar(sub)
		case "usesrc":
			s.Usesrc = scalar(sub)
		case "id":
			s.ID = intPtr(scalar(sub), c, loc)
		case "cookie":
			s.Cookie = scalar(sub)
		case "track":
			s.Track = scalar(sub)
		case "redir":
			s.Redir = scalar(sub)
		case "disabled":
			s.Disabled = boolVal(scalar(sub))
		case "backup":
			s.Backup = boolVal(scalar(sub))
		default:
			if s.Options == nil {
				s.Options = make(map[string]string)
			}
			s.Options[k] = scalar(sub)
		}
	}
}

// lowerServersContainer collects every "server"/"for" entry from a
// "servers { ... }" block (or a bare list passed directly), appending
// concrete servers to *servers and loop nodes to *loops.
func lowerServersContainer(body []*parser.Directive, c *ctx, servers *[]ir.Server, loops *[]ir.ForLoop) {
	for _, sub := range body {
		switch key(sub) {
		case "server":
			*servers = append(*servers, *lowerServer(sub, c))
		case "for":
			if fl, ok := lowerForLoop(sub, c, ir.LoopBodyServer); ok {
				*loops = append(*loops, fl)
			}
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid inside a servers block", key(sub))
		}
	}
}

func lowerDefaultServer(d *parser.Directive, c *ctx) *ir.Server {
	s := &ir.Server{Loc: c.loc(d.Name)}
	applyServerFields(s, d.Body, c)
	return s
}

func lowerServerTemplate(d *parser.Directive, c *ctx) ir.ServerTemplate {
	vals := argValues(d)
	st := ir.ServerTemplate{}
	if len(vals) > 0 {
		st.Prefix = vals[0]
	}
	if len(vals) > 1 {
		if n, ok := parseIntStr(vals[1]); ok {
			st.Count = n
		}
	}
	if len(vals) > 2 {
		st.Address, st.Port = splitAddrPort(vals[2])
	}
	s := ir.Server{}
	applyServerFields(&s, d.Body, c)
	st.Server = s
	if st.Address == "" {
		st.Address = s.Address
	}
	if st.Port == nil {
		st.Port = s.Port
	}
	return st
}

// lowerBind builds a Bind from a "bind ADDRESS [flags...]" directive.
// Flags are either bare words (stored in Options as "true") or
// "key=value" triples; "ssl" and "alpn"/"cert" are recognized specially.
func lowerBind(d *parser.Directive, c *ctx) ir.Bind {
	toks := argTokens(d)
	b := ir.Bind{Loc: c.loc(d.Name)}
	if len(toks) > 0 {
		b.Address = toks[0].Value
	}
	rest := toks[1:]
	for i := 0; i < len(rest); i++ {
		t := rest[i]
		if t.Value == "ssl" {
			b.SSL = true
			continue
		}
		if i+2 < len(rest) && rest[i+1].Type == parser.EQUALS {
			k := t.Value
			v := rest[i+2].Value
			switch k {
			case "alpn":
				b.ALPN = strings.Split(v, ",")
			case "cert":
				b.Cert = v
			default:
				if b.Options == nil {
					b.Options = make(map[string]string)
				}
				b.Options[k] = v
			}
			i += 2
			continue
		}
		if b.Options == nil {
			b.Options = make(map[string]string)
		}
		b.Options[t.Value] = "true"
	}
	return b
}

func lowerBindsContainer(body []*parser.Directive, c *ctx, binds *[]ir.Bind) {
	for _, sub := range body {
		if key(sub) == "bind" {
			*binds = append(*binds, lowerBind(sub, c))
		} else {
			c.errorf(c.loc(sub.Name), "directive %q is never valid inside a binds block", key(sub))
		}
	}
}
