package serializer

import "hacfg/internal/ir"

// writeFrontend emits one "frontend NAME { ... }" section, in the
// canonical directive order spec.md §4.7 pins: identity, mode, timeouts,
// options, logs, acls, stick-table, rule lists, binds/use_backend/servers,
// trailing metadata.
func writeFrontend(w *writer, f *ir.Frontend) {
	w.Header("frontend " + f.Name)

	w.Line(strField(f.Mode, "mode"))
	writeTimeouts(w, f.Timeouts)
	writeOptionsAndLogs(w, &f.ProxyCommon)
	writeACLs(w, f.ACLs)
	if f.StickTable != nil {
		w.Raw(formatStickTable(*f.StickTable))
	}

	writeCommonRules(w, &f.ProxyCommon)

	writeBinds(w, f.Binds)

	w.Line(strField(f.MonitorURI, "monitor-uri"))
	for _, n := range f.MonitorNet {
		w.Line("monitor-net", n)
	}
	writeRuleList(w, "monitor-fail", f.MonitorFailRules)

	if f.StatsEnable {
		parts := []string{"stats"}
		parts = append(parts, strField(f.StatsURI, "uri"))
		for _, k := range sortedKeys(f.StatsOptions) {
			parts = append(parts, k, f.StatsOptions[k])
		}
		w.Raw(joinNonEmpty(parts))
	}

	for _, cap := range f.DeclareCaptures {
		w.Line("declare", "capture", cap.Direction, "len", itoa(cap.Len))
	}

	writeRuleList(w, "force-persist", f.ForcePersistRules)
	writeRuleList(w, "ignore-persist", f.IgnorePersistRules)
	writeRuleList(w, "use_backend", f.UseBackendRules)
	writeRuleList(w, "quic-initial", f.QuicInitialRules)

	w.Line(strField(f.DefaultBackend, "default_backend"))

	writeProxyTail(w, &f.ProxyCommon)

	w.Blank()
}

func formatStickTable(st ir.StickTable) string {
	parts := []string{"stick-table"}
	parts = append(parts, strField(st.Type, "type"))
	if st.Length != nil {
		parts = append(parts, "len", itoa(*st.Length))
	}
	parts = append(parts, strField(st.Size, "size"))
	parts = append(parts, strField(st.Expire, "expire"))
	if len(st.Store) > 0 {
		parts = append(parts, "store", joinCSV(st.Store))
	}
	parts = append(parts, strField(st.Peers, "peers"))
	return joinNonEmpty(parts)
}

func joinCSV(vals []string) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}
