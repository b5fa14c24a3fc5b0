package serializer

import "hacfg/internal/ir"

func writePeers(w *writer, p *ir.Peers) {
	w.Header("peers " + p.Name)
	for _, e := range p.Entries {
		parts := []string{"peer", e.Name, addrPort(e.Address, e.Port)}
		parts = append(parts, strField(e.Shard, "shard"))
		w.Raw(joinNonEmpty(parts))
	}
	w.Blank()
}

func writeResolvers(w *writer, r *ir.Resolvers) {
	w.Header("resolvers " + r.Name)
	for _, ns := range r.Nameservers {
		w.Raw(joinNonEmpty([]string{"nameserver", ns.Name, addrPort(ns.Address, ns.Port)}))
	}
	for _, k := range sortedKeys(r.Hold) {
		w.Line("hold", k, r.Hold[k])
	}
	w.Line(intField(r.ResolveRetries, "resolve_retries"))
	for _, k := range sortedKeys(r.Timeout) {
		w.Line("timeout", k, r.Timeout[k])
	}
	w.Line(intField(r.AcceptedPayloadSize, "accepted_payload_size"))
	w.Blank()
}

func writeMailers(w *writer, m *ir.Mailers) {
	w.Header("mailers " + m.Name)
	for _, e := range m.Entries {
		w.Raw(joinNonEmpty([]string{"mailer", e.Name, addrPort(e.Address, e.Port)}))
	}
	w.Line(strField(m.TimeoutMail, "timeout mail"))
	w.Blank()
}

func writeHttpErrorsGroup(w *writer, g *ir.HttpErrorsGroup) {
	w.Header("http-errors " + g.Name)
	for _, code := range sortedIntKeys(g.ErrorFile) {
		w.Line("errorfile", itoa(code), g.ErrorFile[code])
	}
	w.Blank()
}

func writeLuaLoad(w *writer, scripts []ir.LuaScript) {
	for _, s := range scripts {
		w.Line("lua-load", s.Name+".lua")
	}
}
