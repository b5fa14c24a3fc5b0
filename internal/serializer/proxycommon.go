package serializer

import "hacfg/internal/ir"

// writeTimeouts emits every "timeout X Y" line set on t, in the fixed
// catalog order (connect, client, server, check, http-request,
// http-keep-alive, tunnel, client-fin, server-fin, tarpit); spec.md §4.7
// pins timeouts right after mode/balance in the canonical order.
func writeTimeouts(w *writer, t ir.Timeouts) {
	w.Line(strField(t.Connect, "timeout connect"))
	w.Line(strField(t.Client, "timeout client"))
	w.Line(strField(t.Server, "timeout server"))
	w.Line(strField(t.Check, "timeout check"))
	w.Line(strField(t.HTTPRequest, "timeout http-request"))
	w.Line(strField(t.HTTPKeepAlive, "timeout http-keep-alive"))
	w.Line(strField(t.Tunnel, "timeout tunnel"))
	w.Line(strField(t.ClientFin, "timeout client-fin"))
	w.Line(strField(t.ServerFin, "timeout server-fin"))
	w.Line(strField(t.Tarpit, "timeout tarpit"))
}

// writeOptionsAndLogs emits the "option X" lines (one per entry, spec.md
// §4.7 "Formatting details" — option is a list directive emitted one token
// per line) and the "log ..." lines, log-format and friends.
func writeOptionsAndLogs(w *writer, pc *ir.ProxyCommon) {
	for _, o := range pc.Options {
		w.Line("option", o)
	}
	writeLogs(w, pc.Logs)
	w.Line(strField(pc.LogFormat, "log-format"))
	w.Line(strField(pc.LogFormatSD, "log-format-sd"))
	w.Line(strField(pc.ErrorLogFormat, "error-log-format"))
	w.Line(strField(pc.LogTag, "log-tag"))
	w.Line(intField(pc.LogSteps, "log-steps"))
}

func writeLogs(w *writer, logs []ir.LogTarget) {
	for _, l := range logs {
		w.Line("log", l.Target, l.Facility, l.Level, l.MinLevel)
	}
}

// writeCommonRules emits the rule-list directives common to every proxy
// section, in the fixed per-family order spec.md §4.7 prescribes, each
// family preserving its own source (textual) order.
func writeCommonRules(w *writer, pc *ir.ProxyCommon) {
	writeRuleList(w, "http-request", pc.HTTPRequestRules)
	writeRuleList(w, "http-response", pc.HTTPResponseRules)
	writeRuleList(w, "http-after-response", pc.HTTPAfterResponseRules)
	writeRuleList(w, "tcp-request", pc.TCPRequestRules)
	writeRuleList(w, "tcp-response", pc.TCPResponseRules)
	writeRuleList(w, "http-check", pc.HTTPCheckRules)
	writeRuleList(w, "tcp-check", pc.TCPCheckRules)
}

// writeProxyTail emits the directives spec.md §4.7 places as "trailing
// metadata" plus the remaining miscellaneous common fields not covered by
// mode/timeouts/options/acls/rules.
func writeProxyTail(w *writer, pc *ir.ProxyCommon) {
	for _, f := range pc.Filters {
		w.Line("filter", f)
	}
	w.Line(intField(pc.Maxconn, "maxconn"))
	w.Line(intField(pc.Backlog, "backlog"))
	w.Line(intField(pc.Fullconn, "fullconn"))
	writeEmailAlert(w, pc.EmailAlert)
	w.Line(strField(pc.Description, "description"))
	w.Line(strField(pc.GUID, "guid"))
}

func writeEmailAlert(w *writer, ea *ir.EmailAlert) {
	if ea == nil {
		return
	}
	w.Line(strField(ea.Mailers, "email-alert mailers"))
	w.Line(strField(ea.From, "email-alert from"))
	w.Line(strField(ea.To, "email-alert to"))
	w.Line(strField(ea.Level, "email-alert level"))
}
