package serializer

import "hacfg/internal/ir"

// writeListen emits one "listen NAME { ... }" section, combining the
// frontend and backend directive families spec.md §3 "Listen" names.
func writeListen(w *writer, l *ir.Listen) {
	w.Header("listen " + l.Name)

	w.Line(strField(l.Mode, "mode"))
	w.Line(strField(l.Balance, "balance"))
	w.Line(strField(l.HashType, "hash-type"))
	if l.HashBalanceFactor != nil {
		w.Line("hash-balance-factor", itoa(*l.HashBalanceFactor))
	}
	writeTimeouts(w, l.Timeouts)
	writeOptionsAndLogs(w, &l.ProxyCommon)
	writeACLs(w, l.ACLs)

	writeHealthCheck(w, l.HealthCheck)
	writeCompression(w, l.Compression)

	if l.StickTable != nil {
		w.Raw(formatStickTable(*l.StickTable))
	}

	writeCommonRules(w, &l.ProxyCommon)

	writeBinds(w, l.Binds)

	writeRuleList(w, "use-server", l.UseServerRules)
	writeRuleList(w, "use_backend", l.UseBackendRules)
	writeRuleList(w, "quic-initial", l.QuicInitialRules)

	w.Line(strField(l.DefaultBackend, "default_backend"))

	writeErrorMap(w, "errorfile", l.ErrorFile)
	w.Line(strField(l.ErrorFiles, "errorfiles"))

	writeDefaultServer(w, l.DefaultServer)
	writeServers(w, l.Servers)
	writeServerTemplates(w, l.ServerTemplates)

	writeProxyTail(w, &l.ProxyCommon)

	w.Blank()
}
