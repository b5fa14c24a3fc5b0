package lowering

import (
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// lowerPeers builds a Peers group from "peers NAME { peer p1 10.0.1.1:1023 ... }".
func lowerPeers(d *parser.Directive, c *ctx) *ir.Peers {
	name, _ := nameAndRest(d)
	p := &ir.Peers{Name: name, Loc: c.loc(d.Name)}
	for _, sub := range d.Body {
		if key(sub) != "peer" {
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a peers block", key(sub))
			continue
		}
		vals := argValues(sub)
		entry := ir.PeerEntry{}
		if len(vals) > 0 {
			entry.Name = vals[0]
		}
		if len(vals) > 1 {
			entry.Address, entry.Port = splitAddrPort(vals[1])
		}
		for i := 2; i < len(vals); i++ {
			if vals[i] == "shard" && i+1 < len(vals) {
				entry.Shard = vals[i+1]
				i++
			}
		}
		p.Entries = append(p.Entries, entry)
	}
	return p
}

// lowerResolvers builds a Resolvers section from "resolvers NAME { ... }".
func lowerResolvers(d *parser.Directive, c *ctx) *ir.Resolvers {
	name, _ := nameAndRest(d)
	r := &ir.Resolvers{Name: name, Loc: c.loc(d.Name)}
	for _, sub := range d.Body {
		k := key(sub)
		switch k {
		case "nameserver":
			vals := argValues(sub)
			ns := ir.Nameserver{}
			if len(vals) > 0 {
				ns.Name = vals[0]
			}
			if len(vals) > 1 {
				ns.Address, ns.Port = splitAddrPort(vals[1])
			}
			r.Nameservers = append(r.Nameservers, ns)
		case "hold":
			r.Hold = mergeMap(r.Hold, fieldMap(sub))
		case "resolve_retries", "resolve-retries":
			r.ResolveRetries = intPtr(scalar(sub), c, c.loc(sub.Name))
		case "timeout":
			r.Timeout = mergeMap(r.Timeout, fieldMap(sub))
		case "accepted_payload_size", "accepted-payload-size":
			r.AcceptedPayloadSize = intPtr(scalar(sub), c, c.loc(sub.Name))
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a resolvers block", k)
		}
	}
	return r
}

// lowerMailers builds a Mailers group from "mailers NAME { mailer m1 ... }".
func lowerMailers(d *parser.Directive, c *ctx) *ir.Mailers {
	name, _ := nameAndRest(d)
	m := &ir.Mailers{Name: name, Loc: c.loc(d.Name)}
	for _, sub := range d.Body {
		k := key(sub)
		switch k {
		case "mailer":
			vals := argValues(sub)
			entry := ir.MailerEntry{}
			if len(vals) > 0 {
				entry.Name = vals[0]
			}
			if len(vals) > 1 {
				entry.Address, entry.Port = splitAddrPort(vals[1])
			}
			m.Entries = append(m.Entries, entry)
		case "timeout":
			fm := fieldMap(sub)
			if v, ok := fm["mail"]; ok {
				m.TimeoutMail = v
			} else {
				m.TimeoutMail = scalar(sub)
			}
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid in a mailers block", k)
		}
	}
	return m
}

// lowerHttpErrorsGroup builds a named "http-errors NAME { errorfile ... }" group.
func lowerHttpErrorsGroup(d *parser.Directive, c *ctx) *ir.HttpErrorsGroup {
	name, _ := nameAndRest(d)
	g := &ir.HttpErrorsGroup{Name: name, Loc: c.loc(d.Name)}
	for _, sub := range d.Body {
		if key(sub) == "errorfile" {
			g.ErrorFile = mergeIntStringMap(g.ErrorFile, intStringMap(sub, c))
			continue
		}
		c.errorf(c.loc(sub.Name), "directive %q is never valid in an http-errors block", key(sub))
	}
	return g
}

func mergeIntStringMap(dst, src map[int]string) map[int]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[int]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
