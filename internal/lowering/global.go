package lowering

import (
	"strings"

	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

func lowerGlobal(d *parser.Directive, c *ctx) *ir.Global {
	g := &ir.Global{Loc: c.loc(d.Name)}
	for _, sub := range d.Body {
		k := key(sub)
		loc := c.loc(sub.Name)
		switch {
		case k == "daemon":
			g.Daemon = true
		case k == "user":
			g.User = scalar(sub)
		case k == "group":
			g.Group = scalar(sub)
		case k == "uid":
			g.UID = intPtr(scalar(sub), c, loc)
		case k == "gid":
			g.GID = intPtr(scalar(sub), c, loc)
		case k == "master-worker":
			g.MasterWorker = true
		case k == "hard-stop-after":
			g.HardStopAfter = scalar(sub)
		case k == "maxconn":
			g.Maxconn = intPtr(scalar(sub), c, loc)
		case k == "maxconnrate":
			g.MaxconnRate = intPtr(scalar(sub), c, loc)
		case k == "maxsessrate":
			g.MaxsessRate = intPtr(scalar(sub), c, loc)
		case k == "maxsslrate":
			g.MaxsslRate = intPtr(scalar(sub), c, loc)
		case k == "maxpipes":
			g.Maxpipes = intPtr(scalar(sub), c, loc)
		case k == "fd-hard-limit":
			g.FDHardLimit = intPtr(scalar(sub), c, loc)
		case k == "maxzlibmem":
			g.Maxzlibmem = intPtr(scalar(sub), c, loc)
		case k == "strict-limits":
			g.StrictLimits = boolPtr(scalar(sub))
		case k == "nbproc":
			g.Nbproc = intPtr(scalar(sub), c, loc)
		case k == "nbthread":
			g.Nbthread = intPtr(scalar(sub), c, loc)
		case k == "thread-groups":
			g.ThreadGroups = intPtr(scalar(sub), c, loc)
		case k == "numa-cpu-mapping":
			g.NumaCPUMapping = boolPtr(scalar(sub))
		case k == "log":
			g.Logs = append(g.Logs, parseLogTarget(sub))
		case k == "logs":
			for _, s := range sub.Body {
				g.Logs = append(g.Logs, parseLogTarget(s))
			}
		case k == "log-tag":
			g.LogTag = scalar(sub)
		case k == "log-send-hostname":
			v := scalar(sub)
			g.LogSendHostname = &v
		case k == "ca-base":
			g.CABase = scalar(sub)
		case k == "crt-base":
			g.CrtBase = scalar(sub)
		case k == "key-base":
			g.KeyBase = scalar(sub)
		case k == "ssl-default-bind-ciphers":
			g.SSLDefaultBindCiphers = scalar(sub)
		case k == "ssl-default-bind-ciphersuites":
			g.SSLDefaultBindCiphersuites = scalar(sub)
		case k == "ssl-default-server-ciphers":
			g.SSLDefaultServerCiphers = scalar(sub)
		case k == "ssl-default-server-ciphersuites":
			g.SSLDefaultServerCiphersuites = scalar(sub)
		case k == "ssl-default-bind-curves":
			g.SSLDefaultBindCurves = scalar(sub)
		case k == "ssl-default-signature-algorithms":
			g.SSLDefaultSignatureAlgorithms = scalar(sub)
		case k == "ssl-default-bind-options":
			g.SSLDefaultBindOptions = list(sub)
		case k == "ssl-dh-param-file":
			g.SSLDhParamFile = scalar(sub)
		case k == "ssl-engine":
			g.SSLEngine = scalar(sub)
		case k == "ssl-server-verify":
			g.SSLServerVerify = scalar(sub)
		case k == "ssl-security-level":
			g.SSLSecurityLevel = intPtr(scalar(sub), c, loc)
		case k == "ssl-provider":
			g.SSLProvider = scalar(sub)
		case k == "ssl-provider-path":
			g.SSLProviderPath = scalar(sub)
		case k == "device-detection":
			if g.DeviceDetection == nil {
				g.DeviceDetection = make(map[string]string)
			}
			for dk, dv := range fieldMap(sub) {
				g.DeviceDetection[dk] = dv
			}
		case k == "stats-socket":
			vals := argValues(sub)
			ss := ir.StatsSocket{}
			if len(vals) > 0 {
				ss.Path = vals[0]
			}
			if len(vals) > 1 {
				ss.Options = make(map[string]string)
				for _, v := range vals[1:] {
					ss.Options[v] = "true"
				}
			}
			g.StatsSockets = append(g.StatsSockets, ss)
		case k == "server-state-base":
			g.ServerStateBase = scalar(sub)
		case k == "server-state-file":
			g.ServerStateFile = scalar(sub)
		case k == "load-server-state-from-file":
			g.LoadServerStateFromFile = scalar(sub)
		case k == "setenv":
			g.Setenv = mergeMap(g.Setenv, fieldMap(sub))
		case k == "presetenv":
			g.Presetenv = mergeMap(g.Presetenv, fieldMap(sub))
		case k == "resetenv":
			g.Resetenv = append(g.Resetenv, list(sub)...)
		case k == "unsetenv":
			g.Unsetenv = append(g.Unsetenv, list(sub)...)
		case k == "cpu-map":
			g.CPUMap = mergeMap(g.CPUMap, fieldMap(sub))
		case k == "program":
			name, rest := nameAndRest(sub)
			p := ir.Program{Name: name}
			for _, t := range rest {
				p.Command = append(p.Command, t.Value)
			}
			for _, s := range sub.Body {
				if key(s) == "command" {
					p.Command = append(p.Command, list(s)...)
				}
			}
			g.Programs = append(g.Programs, p)
		case strings.HasPrefix(k, "tune.") || strings.HasPrefix(k, "profiling."):
			if g.Tuning == nil {
				g.Tuning = make(map[string]string)
			}
			g.Tuning[k] = scalar(sub)
		default:
			c.errorf(loc, "directive %q is never valid in a global block", k)
		}
	}
	return g
}

func mergeMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
