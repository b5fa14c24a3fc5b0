package ir

// Clone returns a deep copy of the tree rooted at c. Every pipeline stage
// after lowering takes ownership of one ConfigIR and returns a new one
// (spec.md §9 "Transformer composition"); Clone is what lets the Loop
// Unroller and Template Expander build that new tree without aliasing the
// input's slices or maps.
func (c *ConfigIR) Clone() *ConfigIR {
	if c == nil {
		return nil
	}
	out := *c
	out.Global = c.Global.clone()
	out.Defaults = c.Defaults.clone()

	out.Frontends = cloneSlicePtr(c.Frontends, (*Frontend).clone)
	out.Backends = cloneSlicePtr(c.Backends, (*Backend).clone)
	out.Listens = cloneSlicePtr(c.Listens, (*Listen).clone)
	out.Peers = cloneSlicePtr(c.Peers, (*Peers).clone)
	out.Resolvers = cloneSlicePtr(c.Resolvers, (*Resolvers).clone)
	out.Mailers = cloneSlicePtr(c.Mailers, (*Mailers).clone)
	out.LuaScripts = cloneSlicePtr(c.LuaScripts, (*LuaScript).clone)
	out.Imports = cloneStringSlice(c.Imports)

	out.Variables = cloneMapPtr(c.Variables, (*Variable).clone)
	out.Templates = cloneMapPtr(c.Templates, (*Template).clone)
	out.HealthCheckTemplates = cloneMapPtr(c.HealthCheckTemplates, (*HealthCheckTemplate).clone)
	out.HttpErrorsGroups = cloneMapPtr(c.HttpErrorsGroups, (*HttpErrorsGroup).clone)
	return &out
}

func (g *Global) clone() *Global {
	if g == nil {
		return nil
	}
	out := *g
	out.Logs = append([]LogTarget(nil), g.Logs...)
	out.SSLDefaultBindOptions = cloneStringSlice(g.SSLDefaultBindOptions)
	out.DeviceDetection = cloneStringMap(g.DeviceDetection)
	out.StatsSockets = append([]StatsSocket(nil), g.StatsSockets...)
	for i := range out.StatsSockets {
		out.StatsSockets[i].Options = cloneStringMap(g.StatsSockets[i].Options)
	}
	out.Setenv = cloneStringMap(g.Setenv)
	out.Presetenv = cloneStringMap(g.Presetenv)
	out.Resetenv = cloneStringSlice(g.Resetenv)
	out.Unsetenv = cloneStringSlice(g.Unsetenv)
	out.CPUMap = cloneStringMap(g.CPUMap)
	out.Tuning = cloneStringMap(g.Tuning)
	out.Programs = append([]Program(nil), g.Programs...)
	for i := range out.Programs {
		out.Programs[i].Command = cloneStringSlice(g.Programs[i].Command)
	}
	if g.UID != nil {
		v := *g.UID
		out.UID = &v
	}
	if g.LogSendHostname != nil {
		v := *g.LogSendHostname
		out.LogSendHostname = &v
	}
	if g.GID != nil {
		v := *g.GID
		out.GID = &v
	}
	out.Maxconn = cloneIntPtr(g.Maxconn)
	out.MaxconnRate = cloneIntPtr(g.MaxconnRate)
	out.MaxsessRate = cloneIntPtr(g.MaxsessRate)
	out.MaxsslRate = cloneIntPtr(g.MaxsslRate)
	out.Maxpipes = cloneIntPtr(g.Maxpipes)
	out.FDHardLimit = cloneIntPtr(g.FDHardLimit)
	out.Maxzlibmem = cloneIntPtr(g.Maxzlibmem)
	out.Nbproc = cloneIntPtr(g.Nbproc)
	out.Nbthread = cloneIntPtr(g.Nbthread)
	out.ThreadGroups = cloneIntPtr(g.ThreadGroups)
	out.SSLSecurityLevel = cloneIntPtr(g.SSLSecurityLevel)
	if g.StrictLimits != nil {
		v := *g.StrictLimits
		out.StrictLimits = &v
	}
	if g.NumaCPUMapping != nil {
		v := *g.NumaCPUMapping
		out.NumaCPUMapping = &v
	}
	return &out
}

func (d *Defaults) clone() *Defaults {
	if d == nil {
		return nil
	}
	out := *d
	out.ProxyCommon = d.ProxyCommon.clone()
	out.Retries = cloneIntPtr(d.Retries)
	if d.EmailAlert != nil {
		ea := *d.EmailAlert
		out.EmailAlert = &ea
	}
	return &out
}

func (pc ProxyCommon) clone() ProxyCommon {
	out := pc
	out.Options = cloneStringSlice(pc.Options)
	out.Logs = append([]LogTarget(nil), pc.Logs...)
	out.LogSteps = cloneIntPtr(pc.LogSteps)
	out.ACLs = append([]ACL(nil), pc.ACLs...)
	for i := range out.ACLs {
		out.ACLs[i].Values = cloneStringSlice(pc.ACLs[i].Values)
	}
	out.HTTPRequestRules = cloneRules(pc.HTTPRequestRules)
	out.HTTPResponseRules = cloneRules(pc.HTTPResponseRules)
	out.HTTPAfterResponseRules = cloneRules(pc.HTTPAfterResponseRules)
	out.TCPRequestRules = cloneRules(pc.TCPRequestRules)
	out.TCPResponseRules = cloneRules(pc.TCPResponseRules)
	out.HTTPCheckRules = cloneRules(pc.HTTPCheckRules)
	out.TCPCheckRules = cloneRules(pc.TCPCheckRules)
	out.Filters = cloneStringSlice(pc.Filters)
	out.Maxconn = cloneIntPtr(pc.Maxconn)
	out.Backlog = cloneIntPtr(pc.Backlog)
	out.Fullconn = cloneIntPtr(pc.Fullconn)
	if pc.EmailAlert != nil {
		ea := *pc.EmailAlert
		out.EmailAlert = &ea
	}
	out.TemplateRefs = append([]TemplateRef(nil), pc.TemplateRefs...)
	out.ServerLoops = cloneLoops(pc.ServerLoops)
	out.RuleLoops = cloneLoops(pc.RuleLoops)
	return out
}

func (f *Frontend) clone() *Frontend {
	if f == nil {
		return nil
	}
	out := *f
	out.ProxyCommon = f.ProxyCommon.clone()
	out.Binds = cloneBinds(f.Binds)
	out.MonitorNet = cloneStringSlice(f.MonitorNet)
	out.MonitorFailRules = cloneRules(f.MonitorFailRules)
	out.StatsOptions = cloneStringMap(f.StatsOptions)
	out.DeclareCaptures = append([]Capture(nil), f.DeclareCaptures...)
	out.ForcePersistRules = cloneRules(f.ForcePersistRules)
	out.IgnorePersistRules = cloneRules(f.IgnorePersistRules)
	out.UseBackendRules = cloneRules(f.UseBackendRules)
	out.StickTable = f.StickTable.clone()
	out.QuicInitialRules = cloneRules(f.QuicInitialRules)
	return &out
}

func (b *Backend) clone() *Backend {
	if b == nil {
		return nil
	}
	out := *b
	out.ProxyCommon = b.ProxyCommon.clone()
	out.HashBalanceFactor = cloneIntPtr(b.HashBalanceFactor)
	out.Servers = cloneServers(b.Servers)
	out.DefaultServer = b.DefaultServer.clone()
	out.ServerTemplates = append([]ServerTemplate(nil), b.ServerTemplates...)
	for i := range out.ServerTemplates {
		out.ServerTemplates[i].Server = *out.ServerTemplates[i].Server.clone()
		out.ServerTemplates[i].Port = cloneIntPtr(b.ServerTemplates[i].Port)
	}
	out.HealthCheck = b.HealthCheck.cloneHC()
	out.Compression = b.Compression.cloneCompression()
	out.ErrorLoc = cloneIntStringMap(b.ErrorLoc)
	out.ErrorLoc302 = cloneIntStringMap(b.ErrorLoc302)
	out.ErrorLoc303 = cloneIntStringMap(b.ErrorLoc303)
	out.ErrorFile = cloneIntStringMap(b.ErrorFile)
	out.RetryOn = cloneStringSlice(b.RetryOn)
	out.UseServerRules = cloneRules(b.UseServerRules)
	out.StickTable = b.StickTable.clone()
	return &out
}

func (l *Listen) clone() *Listen {
	if l == nil {
		return nil
	}
	out := *l
	out.ProxyCommon = l.ProxyCommon.clone()
	out.Binds = cloneBinds(l.Binds)
	out.HashBalanceFactor = cloneIntPtr(l.HashBalanceFactor)
	out.Servers = cloneServers(l.Servers)
	out.DefaultServer = l.DefaultServer.clone()
	out.ServerTemplates = append([]ServerTemplate(nil), l.ServerTemplates...)
	for i := range out.ServerTemplates {
		out.ServerTemplates[i].Server = *out.ServerTemplates[i].Server.clone()
		out.ServerTemplates[i].Port = cloneIntPtr(l.ServerTemplates[i].Port)
	}
	out.HealthCheck = l.HealthCheck.cloneHC()
	out.Compression = l.Compression.cloneCompression()
	out.ErrorFile = cloneIntStringMap(l.ErrorFile)
	out.UseServerRules = cloneRules(l.UseServerRules)
	out.UseBackendRules = cloneRules(l.UseBackendRules)
	out.StickTable = l.StickTable.clone()
	out.QuicInitialRules = cloneRules(l.QuicInitialRules)
	return &out
}

// Clone returns a deep copy of s, for stages that need to produce a fresh
// Server from a loop body template per iteration (internal/transform/loop).
func (s *Server) Clone() *Server {
	return s.clone()
}

func (s *Server) clone() *Server {
	if s == nil {
		return nil
	}
	out := *s
	out.Port = cloneIntPtr(s.Port)
	out.Check = cloneBoolPtr(s.Check)
	out.Rise = cloneIntPtr(s.Rise)
	out.Fall = cloneIntPtr(s.Fall)
	out.CheckPort = cloneIntPtr(s.CheckPort)
	out.CheckSendProxy = cloneBoolPtr(s.CheckSendProxy)
	out.AgentCheck = cloneBoolPtr(s.AgentCheck)
	out.AgentPort = cloneIntPtr(s.AgentPort)
	out.Weight = cloneIntPtr(s.Weight)
	out.Maxconn = cloneIntPtr(s.Maxconn)
	out.Minconn = cloneIntPtr(s.Minconn)
	out.Maxqueue = cloneIntPtr(s.Maxqueue)
	out.MaxReuse = cloneIntPtr(s.MaxReuse)
	out.PoolMaxConn = cloneIntPtr(s.PoolMaxConn)
	out.SSL = cloneBoolPtr(s.SSL)
	out.ALPN = cloneStringSlice(s.ALPN)
	out.SendProxy = cloneBoolPtr(s.SendProxy)
	out.SendProxyV2 = cloneBoolPtr(s.SendProxyV2)
	out.ErrorLimit = cloneIntPtr(s.ErrorLimit)
	out.TFO = cloneBoolPtr(s.TFO)
	out.ID = cloneIntPtr(s.ID)
	out.Options = cloneStringMap(s.Options)
	out.TemplateRefs = append([]TemplateRef(nil), s.TemplateRefs...)
	return &out
}

func (hc *HealthCheck) cloneHC() *HealthCheck {
	if hc == nil {
		return nil
	}
	out := *hc
	out.ExpectStatus = cloneIntPtr(hc.ExpectStatus)
	return &out
}

func (c *Compression) cloneCompression() *Compression {
	if c == nil {
		return nil
	}
	out := *c
	out.Algorithms = cloneStringSlice(c.Algorithms)
	out.Types = cloneStringSlice(c.Types)
	return &out
}

func (st *StickTable) clone() *StickTable {
	if st == nil {
		return nil
	}
	out := *st
	out.Length = cloneIntPtr(st.Length)
	out.Store = cloneStringSlice(st.Store)
	return &out
}

func (p *Peers) clone() *Peers {
	if p == nil {
		return nil
	}
	out := *p
	out.Entries = append([]PeerEntry(nil), p.Entries...)
	for i := range out.Entries {
		out.Entries[i].Port = cloneIntPtr(p.Entries[i].Port)
	}
	return &out
}

func (r *Resolvers) clone() *Resolvers {
	if r == nil {
		return nil
	}
	out := *r
	out.Nameservers = append([]Nameserver(nil), r.Nameservers...)
	for i := range out.Nameservers {
		out.Nameservers[i].Port = cloneIntPtr(r.Nameservers[i].Port)
	}
	out.Hold = cloneStringMap(r.Hold)
	out.Timeout = cloneStringMap(r.Timeout)
	out.ResolveRetries = cloneIntPtr(r.ResolveRetries)
	out.AcceptedPayloadSize = cloneIntPtr(r.AcceptedPayloadSize)
	return &out
}

func (m *Mailers) clone() *Mailers {
	if m == nil {
		return nil
	}
	out := *m
	out.Entries = append([]MailerEntry(nil), m.Entries...)
	for i := range out.Entries {
		out.Entries[i].Port = cloneIntPtr(m.Entries[i].Port)
	}
	return &out
}

func (l *LuaScript) clone() *LuaScript {
	if l == nil {
		return nil
	}
	out := *l
	return &out
}

func (v *Variable) clone() *Variable {
	if v == nil {
		return nil
	}
	out := *v
	out.Value = v.Value.clone()
	return &out
}

func (val Value) clone() Value {
	out := val
	out.Map = cloneStringMap(val.Map)
	out.List = cloneStringSlice(val.List)
	if val.EnvDefault != nil {
		d := *val.EnvDefault
		out.EnvDefault = &d
	}
	return out
}

func (t *Template) clone() *Template {
	if t == nil {
		return nil
	}
	out := *t
	out.Params = cloneStringMap(t.Params)
	return &out
}

func (h *HealthCheckTemplate) clone() *HealthCheckTemplate {
	if h == nil {
		return nil
	}
	out := *h
	out.Params = cloneStringMap(h.Params)
	return &out
}

func (g *HttpErrorsGroup) clone() *HttpErrorsGroup {
	if g == nil {
		return nil
	}
	out := *g
	out.ErrorFile = cloneIntStringMap(g.ErrorFile)
	return &out
}

func cloneLoops(loops []ForLoop) []ForLoop {
	if loops == nil {
		return nil
	}
	out := make([]ForLoop, len(loops))
	for i, l := range loops {
		out[i] = l
		out[i].Iterable.List = cloneStringSlice(l.Iterable.List)
		out[i].Body = append([]LoopBodyEntity(nil), l.Body...)
		for j := range out[i].Body {
			out[i].Body[j].Server = l.Body[j].Server.clone()
			if l.Body[j].Rule != nil {
				r := cloneRule(*l.Body[j].Rule)
				out[i].Body[j].Rule = &r
			}
		}
	}
	return out
}

func cloneServers(servers []Server) []Server {
	if servers == nil {
		return nil
	}
	out := make([]Server, len(servers))
	for i := range servers {
		out[i] = *servers[i].clone()
	}
	return out
}

func cloneBinds(binds []Bind) []Bind {
	if binds == nil {
		return nil
	}
	out := make([]Bind, len(binds))
	for i, b := range binds {
		out[i] = b
		out[i].ALPN = cloneStringSlice(b.ALPN)
		out[i].Options = cloneStringMap(b.Options)
	}
	return out
}

func cloneRule(r Rule) Rule {
	out := r
	out.Params = cloneStringSlice(r.Params)
	out.Named = cloneStringMap(r.Named)
	return out
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = cloneRule(r)
	}
	return out
}

func cloneSlicePtr[T any](s []*T, clone func(*T) *T) []*T {
	if s == nil {
		return nil
	}
	out := make([]*T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}

func cloneMapPtr[T any](m map[string]*T, clone func(*T) *T) map[string]*T {
	if m == nil {
		return nil
	}
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func cloneStringSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntStringMap(m map[int]string) map[int]string {
	if m == nil {
		return nil
	}
	out := make(map[int]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
