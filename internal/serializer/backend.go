package serializer

import "hacfg/internal/ir"

// writeBackend emits one "backend NAME { ... }" section.
func writeBackend(w *writer, b *ir.Backend) {
	w.Header("backend " + b.Name)

	w.Line(strField(b.Mode, "mode"))
	w.Line(strField(b.Balance, "balance"))
	w.Line(strField(b.HashType, "hash-type"))
	if b.HashBalanceFactor != nil {
		w.Line("hash-balance-factor", itoa(*b.HashBalanceFactor))
	}
	writeTimeouts(w, b.Timeouts)
	writeOptionsAndLogs(w, &b.ProxyCommon)
	writeACLs(w, b.ACLs)

	writeHealthCheck(w, b.HealthCheck)
	writeCompression(w, b.Compression)

	if b.StickTable != nil {
		w.Raw(formatStickTable(*b.StickTable))
	}

	writeCommonRules(w, &b.ProxyCommon)
	writeRuleList(w, "use-server", b.UseServerRules)

	w.Line(strField(b.Dispatch, "dispatch"))

	writeErrorMap(w, "errorloc", b.ErrorLoc)
	writeErrorMap(w, "errorloc302", b.ErrorLoc302)
	writeErrorMap(w, "errorloc303", b.ErrorLoc303)
	writeErrorMap(w, "errorfile", b.ErrorFile)
	w.Line(strField(b.ErrorFiles, "errorfiles"))

	w.Line(strField(b.HTTPReuse, "http-reuse"))
	if len(b.RetryOn) > 0 {
		w.Line(append([]string{"retry-on"}, b.RetryOn...)...)
	}
	w.Line(strField(b.HTTPSendNameHeader, "http-send-name-header"))

	w.Line(strField(b.LoadServerStateFromFile, "load-server-state-from-file"))
	w.Line(strField(b.ServerStateFileName, "server-state-file-name"))

	writeDefaultServer(w, b.DefaultServer)
	writeServers(w, b.Servers)
	writeServerTemplates(w, b.ServerTemplates)

	writeProxyTail(w, &b.ProxyCommon)

	w.Blank()
}

func writeHealthCheck(w *writer, hc *ir.HealthCheck) {
	if hc == nil {
		return
	}
	parts := []string{"option httpchk", hc.Method, hc.URI, hc.Version}
	w.Raw(joinNonEmpty(parts))
	if hc.ExpectStatus != nil {
		w.Line("http-check", "expect", "status", itoa(*hc.ExpectStatus))
	}
	w.Line(strField(hc.Interval, "inter"))
}

func writeCompression(w *writer, c *ir.Compression) {
	if c == nil {
		return
	}
	if len(c.Algorithms) > 0 {
		w.Line(append([]string{"compression", "algo"}, c.Algorithms...)...)
	}
	if len(c.Types) > 0 {
		w.Line(append([]string{"compression", "type"}, c.Types...)...)
	}
	if c.Offload {
		w.Line("compression", "offload")
	}
}

func writeErrorMap(w *writer, keyword string, m map[int]string) {
	for _, code := range sortedIntKeys(m) {
		w.Line(keyword, itoa(code), m[code])
	}
}
