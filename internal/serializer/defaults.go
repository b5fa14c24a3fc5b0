package serializer

import "hacfg/internal/ir"

// writeDefaults emits the "defaults { ... }" section.
func writeDefaults(w *writer, d *ir.Defaults) {
	if d == nil {
		return
	}
	w.Header("defaults")

	w.Line(strField(d.Mode, "mode"))
	writeTimeouts(w, d.Timeouts)
	w.Line(intField(d.Retries, "retries"))
	writeOptionsAndLogs(w, &d.ProxyCommon)
	writeACLs(w, d.ACLs)
	writeCommonRules(w, &d.ProxyCommon)
	writeProxyTail(w, &d.ProxyCommon)
	w.Line(strField(d.PersistRDPCookie, "persist rdp-cookie"))

	w.Blank()
}
