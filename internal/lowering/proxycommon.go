package lowering

import (
	"strings"

	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// applyCommon handles the directives lawful in every proxy-like section
// (spec.md §3 "Common to all three"). It reports whether sub was
// recognized; callers try their own section-specific directives next and
// raise a "never valid" ParseError only if neither recognizes the name.
// Names applicable to the section but not handled here get that same error.
func applyCommon(pc *ir.ProxyCommon, sub *parser.Directive, c *ctx) bool {
	k := key(sub)
	switch k {
	case "mode":
		pc.Mode = scalar(sub)
	case "option", "options":
		pc.Options = append(pc.Options, list(sub)...)
	case "log":
		pc.Logs = append(pc.Logs, parseLogTarget(sub))
	case "logs":
		for _, s := range sub.Body {
			pc.Logs = append(pc.Logs, parseLogTarget(s))
		}
	case "log-format":
		pc.LogFormat = scalar(sub)
	case "log-format-sd":
		pc.LogFormatSD = scalar(sub)
	case "error-log-format":
		pc.ErrorLogFormat = scalar(sub)
	case "log-tag":
		pc.LogTag = scalar(sub)
	case "log-steps":
		pc.LogSteps = intPtr(scalar(sub), c, c.loc(sub.Name))
	case "acl":
		pc.ACLs = append(pc.ACLs, parseACL(sub, c))
	case "acls":
		for _, s := range sub.Body {
			pc.ACLs = append(pc.ACLs, parseACL(s, c))
		}
	case "http-request":
		pc.HTTPRequestRules = append(pc.HTTPRequestRules, parseActionRule(sub, c))
	case "http-response":
		pc.HTTPResponseRules = append(pc.HTTPResponseRules, parseActionRule(sub, c))
	case "http-after-response":
		pc.HTTPAfterResponseRules = append(pc.HTTPAfterResponseRules, parseActionRule(sub, c))
	case "tcp-request":
		pc.TCPRequestRules = append(pc.TCPRequestRules, parseActionRule(sub, c))
	case "tcp-response":
		pc.TCPResponseRules = append(pc.TCPResponseRules, parseActionRule(sub, c))
	case "http-check":
		pc.HTTPCheckRules = append(pc.HTTPCheckRules, parseActionRule(sub, c))
	case "tcp-check":
		pc.TCPCheckRules = append(pc.TCPCheckRules, parseActionRule(sub, c))
	case "filter", "filters":
		pc.Filters = append(pc.Filters, list(sub)...)
	case "description":
		pc.Description = scalar(sub)
	case "guid":
		pc.GUID = scalar(sub)
	case "maxconn":
		pc.Maxconn = intPtr(scalar(sub), c, c.loc(sub.Name))
	case "backlog":
		pc.Backlog = intPtr(scalar(sub), c, c.loc(sub.Name))
	case "fullconn":
		pc.Fullconn = intPtr(scalar(sub), c, c.loc(sub.Name))
	case "email-alert":
		pc.EmailAlert = lowerEmailAlert(sub)
	case "timeout":
		applyTimeoutsContainer(&pc.Timeouts, sub)
	default:
		if applyTimeouts(&pc.Timeouts, sub) {
			return true
		}
		if strings.HasPrefix(k, "@") {
			pc.TemplateRefs = append(pc.TemplateRefs, ir.TemplateRef{
				Name: strings.TrimPrefix(k, "@"),
				Loc:  c.loc(sub.Name),
			})
			return true
		}
		return false
	}
	return true
}

func lowerEmailAlert(d *parser.Directive) *ir.EmailAlert {
	m := fieldMap(d)
	return &ir.EmailAlert{
		Mailers: m["mailers"],
		From:    m["from"],
		To:      m["to"],
		Level:   m["level"],
	}
}

// applyTimeouts recognizes the "timeout.*"-shaped directives common to
// Defaults and every proxy section, returning whether sub was a timeout
// directive.
func applyTimeouts(t *ir.Timeouts, sub *parser.Directive) bool {
	switch key(sub) {
	case "connect-timeout":
		t.Connect = scalar(sub)
	case "client-timeout":
		t.Client = scalar(sub)
	case "server-timeout":
		t.Server = scalar(sub)
	case "check-timeout":
		t.Check = scalar(sub)
	case "http-request-timeout":
		t.HTTPRequest = scalar(sub)
	case "http-keep-alive-timeout":
		t.HTTPKeepAlive = scalar(sub)
	case "tunnel-timeout":
		t.Tunnel = scalar(sub)
	case "client-fin-timeout":
		t.ClientFin = scalar(sub)
	case "server-fin-timeout":
		t.ServerFin = scalar(sub)
	case "tarpit-timeout":
		t.Tarpit = scalar(sub)
	default:
		return false
	}
	return true
}

// applyTimeoutsContainer handles a nested "timeout { connect: 5s ... }"
// block form, an alternative to repeated "timeout connect: 5s" lines.
func applyTimeoutsContainer(t *ir.Timeouts, d *parser.Directive) {
	for k2, v := range fieldMap(d) {
		switch k2 {
		case "connect":
			t.Connect = v
		case "client":
			t.Client = v
		case "server":
			t.Server = v
		case "check":
			t.Check = v
		case "http-request":
			t.HTTPRequest = v
		case "http-keep-alive":
			t.HTTPKeepAlive = v
		case "tunnel":
			t.Tunnel = v
		case "client-fin":
			t.ClientFin = v
		case "server-fin":
			t.ServerFin = v
		case "tarpit":
			t.Tarpit = v
		}
	}
}
