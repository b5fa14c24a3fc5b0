package serializer

import "hacfg/internal/ir"

// writeGlobal emits the "global { ... }" section. Field order follows
// spec.md §3 "Global": process settings, limits, logging, SSL defaults,
// device detection, stats sockets, process state, scoped environment,
// CPU map, tuning, programs.
func writeGlobal(w *writer, g *ir.Global, scripts []ir.LuaScript) {
	if g == nil && len(scripts) == 0 {
		return
	}
	w.Header("global")
	if g == nil {
		writeLuaLoad(w, scripts)
		w.Blank()
		return
	}

	w.Line(boolFlag(&g.Daemon, "daemon"))
	w.Line(strField(g.User, "user"))
	w.Line(strField(g.Group, "group"))
	w.Line(intField(g.UID, "uid"))
	w.Line(intField(g.GID, "gid"))
	w.Line(boolFlag(&g.MasterWorker, "master-worker"))
	w.Line(strField(g.HardStopAfter, "hard-stop-after"))

	w.Line(intField(g.Maxconn, "maxconn"))
	w.Line(intField(g.MaxconnRate, "maxconnrate"))
	w.Line(intField(g.MaxsessRate, "maxsessrate"))
	w.Line(intField(g.MaxsslRate, "maxsslrate"))
	w.Line(intField(g.Maxpipes, "maxpipes"))
	w.Line(intField(g.FDHardLimit, "fd-hard-limit"))
	w.Line(intField(g.Maxzlibmem, "maxzlibmem"))
	w.Line(boolOnOff(g.StrictLimits, "strict-limits"))
	w.Line(intField(g.Nbproc, "nbproc"))
	w.Line(intField(g.Nbthread, "nbthread"))
	w.Line(intField(g.ThreadGroups, "thread-groups"))
	w.Line(boolOnOff(g.NumaCPUMapping, "numa-cpu-mapping"))

	writeLogs(w, g.Logs)
	w.Line(strField(g.LogTag, "log-tag"))
	if g.LogSendHostname != nil {
		w.Line("log-send-hostname", *g.LogSendHostname)
	}

	w.Line(strField(g.CABase, "ca-base"))
	w.Line(strField(g.CrtBase, "crt-base"))
	w.Line(strField(g.KeyBase, "key-base"))
	w.Line(strField(g.SSLDefaultBindCiphers, "ssl-default-bind-ciphers"))
	w.Line(strField(g.SSLDefaultBindCiphersuites, "ssl-default-bind-ciphersuites"))
	w.Line(strField(g.SSLDefaultServerCiphers, "ssl-default-server-ciphers"))
	w.Line(strField(g.SSLDefaultServerCiphersuites, "ssl-default-server-ciphersuites"))
	w.Line(strField(g.SSLDefaultBindCurves, "ssl-default-bind-curves"))
	w.Line(strField(g.SSLDefaultSignatureAlgorithms, "ssl-default-signature-algorithms"))
	if len(g.SSLDefaultBindOptions) > 0 {
		w.Line(append([]string{"ssl-default-bind-options"}, g.SSLDefaultBindOptions...)...)
	}
	w.Line(strField(g.SSLDhParamFile, "ssl-dh-param-file"))
	w.Line(strField(g.SSLEngine, "ssl-engine"))
	w.Line(strField(g.SSLServerVerify, "ssl-server-verify"))
	w.Line(intField(g.SSLSecurityLevel, "ssl-security-level"))
	w.Line(strField(g.SSLProvider, "ssl-provider"))
	w.Line(strField(g.SSLProviderPath, "ssl-provider-path"))

	for _, k := range sortedKeys(g.DeviceDetection) {
		w.Line("device-detection", k, g.DeviceDetection[k])
	}

	for _, s := range g.StatsSockets {
		parts := []string{"stats socket", s.Path}
		for _, k := range sortedKeys(s.Options) {
			parts = append(parts, k)
		}
		w.Raw(joinNonEmpty(parts))
	}

	w.Line(strField(g.ServerStateBase, "server-state-base"))
	w.Line(strField(g.ServerStateFile, "server-state-file"))
	w.Line(strField(g.LoadServerStateFromFile, "load-server-state-from-file"))

	for _, k := range sortedKeys(g.Setenv) {
		w.Line("setenv", k, g.Setenv[k])
	}
	for _, k := range sortedKeys(g.Presetenv) {
		w.Line("presetenv", k, g.Presetenv[k])
	}
	for _, v := range g.Resetenv {
		w.Line("resetenv", v)
	}
	for _, v := range g.Unsetenv {
		w.Line("unsetenv", v)
	}

	for _, k := range sortedKeys(g.CPUMap) {
		w.Line("cpu-map", k, g.CPUMap[k])
	}

	for _, k := range sortedKeys(g.Tuning) {
		w.Line(k, g.Tuning[k])
	}

	for _, p := range g.Programs {
		w.Raw("program " + p.Name)
		for _, cmd := range p.Command {
			w.Raw(indent + "command " + cmd)
		}
	}

	writeLuaLoad(w, scripts)

	w.Blank()
}
