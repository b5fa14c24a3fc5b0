package serializer

import (
	"strconv"
	"strings"

	"hacfg/internal/ir"
)

// formatServerLine renders a "server NAME ADDR:PORT flags..." line. Flags
// concatenate in the stable order pinned by DESIGN.md's Open Question 3:
// name, address:port, check cluster, weight/load cluster, ssl cluster,
// proxy-protocol cluster, slow-start, DNS cluster, error-handling cluster,
// protocol cluster, identity cluster, free-form options, state.
func formatServerLine(s ir.Server) string {
	prefix := []string{"server", s.Name, addrPort(s.Address, s.Port)}
	return joinNonEmpty(append(prefix, serverFlags(s)...))
}

// serverFlags renders every flag of s, in isolation from the leading
// "server NAME ADDR" (or "server-template PREFIX COUNT ADDR") prefix, so
// both server and server-template lines can share the same flag ordering.
func serverFlags(s ir.Server) []string {
	var parts []string

	parts = append(parts, boolFlag(s.Check, "check"))
	parts = append(parts, strField(s.Interval, "inter"))
	parts = append(parts, intField(s.Rise, "rise"))
	parts = append(parts, intField(s.Fall, "fall"))
	parts = append(parts, intField(s.CheckPort, "port"))
	parts = append(parts, strField(s.CheckAddress, "addr"))
	parts = append(parts, strField(s.CheckSNI, "check-sni"))
	parts = append(parts, boolFlag(s.CheckSendProxy, "check-send-proxy"))
	parts = append(parts, strField(s.CheckProto, "check-proto"))
	parts = append(parts, boolFlag(s.AgentCheck, "agent-check"))
	parts = append(parts, strField(s.AgentAddress, "agent-addr"))
	parts = append(parts, intField(s.AgentPort, "agent-port"))
	parts = append(parts, strField(s.AgentInterval, "agent-inter"))

	parts = append(parts, intField(s.Weight, "weight"))
	parts = append(parts, intField(s.Maxconn, "maxconn"))
	parts = append(parts, intField(s.Minconn, "minconn"))
	parts = append(parts, intField(s.Maxqueue, "maxqueue"))
	parts = append(parts, intField(s.MaxReuse, "max-reuse"))
	parts = append(parts, intField(s.PoolMaxConn, "pool-max-conn"))
	parts = append(parts, strField(s.PoolPurgeDelay, "pool-purge-delay"))

	parts = append(parts, boolFlag(s.SSL, "ssl"))
	parts = append(parts, strField(s.Verify, "verify"))
	parts = append(parts, strField(s.SNI, "sni"))
	if len(s.ALPN) > 0 {
		parts = append(parts, "alpn", strings.Join(s.ALPN, ","))
	}
	parts = append(parts, strField(s.CAFile, "ca-file"))
	parts = append(parts, strField(s.CRLFile, "crl-file"))
	parts = append(parts, strField(s.Cert, "crt"))
	parts = append(parts, strField(s.Ciphers, "ciphers"))
	parts = append(parts, strField(s.Curves, "curves"))

	parts = append(parts, boolFlag(s.SendProxy, "send-proxy"))
	parts = append(parts, boolFlag(s.SendProxyV2, "send-proxy-v2"))

	parts = append(parts, strField(s.SlowStart, "slowstart"))

	parts = append(parts, strField(s.Resolvers, "resolvers"))
	parts = append(parts, strField(s.ResolvePrefer, "resolve-prefer"))
	parts = append(parts, strField(s.InitAddr, "init-addr"))

	parts = append(parts, intField(s.ErrorLimit, "error-limit"))
	parts = append(parts, strField(s.Observe, "observe"))
	parts = append(parts, strField(s.OnError, "on-error"))
	parts = append(parts, strField(s.OnMarkedDown, "on-marked-down"))
	parts = append(parts, strField(s.OnMarkedUp, "on-marked-up"))

	parts = append(parts, strField(s.Proto, "proto"))
	parts = append(parts, boolFlag(s.TFO, "tfo"))
	parts = append(parts, strField(s.Namespace, "namespace"))
	parts = append(parts, strField(s.Usesrc, "usesrc"))

	if s.ID != nil {
		parts = append(parts, "id", strconv.Itoa(*s.ID))
	}
	parts = append(parts, strField(s.Cookie, "cookie"))
	parts = append(parts, strField(s.Track, "track"))
	parts = append(parts, strField(s.Redir, "redir"))

	for _, k := range sortedKeys(s.Options) {
		parts = append(parts, k, s.Options[k])
	}

	if s.Disabled {
		parts = append(parts, "disabled")
	}
	if s.Backup {
		parts = append(parts, "backup")
	}

	return parts
}

func writeServers(w *writer, servers []ir.Server) {
	for _, s := range servers {
		w.Raw(formatServerLine(s))
	}
}

func writeDefaultServer(w *writer, s *ir.Server) {
	if s == nil {
		return
	}
	w.Raw(joinNonEmpty(append([]string{"default-server"}, serverFlags(*s)...)))
}

func writeServerTemplates(w *writer, templates []ir.ServerTemplate) {
	for _, st := range templates {
		prefix := []string{"server-template", st.Prefix, strconv.Itoa(st.Count), addrPort(st.Address, st.Port)}
		w.Raw(joinNonEmpty(append(prefix, serverFlags(st.Server)...)))
	}
}

// formatBindLine renders a "bind ADDRESS flags..." line.
func formatBindLine(b ir.Bind) string {
	parts := []string{"bind", b.Address}
	parts = append(parts, boolFlag(&b.SSL, "ssl"))
	parts = append(parts, strField(b.Cert, "crt"))
	if len(b.ALPN) > 0 {
		parts = append(parts, "alpn", strings.Join(b.ALPN, ","))
	}
	for _, k := range sortedKeys(b.Options) {
		v := b.Options[k]
		if v == "true" {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+"="+v)
	}
	return joinNonEmpty(parts)
}

func writeBinds(w *writer, binds []ir.Bind) {
	for _, b := range binds {
		w.Raw(formatBindLine(b))
	}
}
