// Package validate implements the Semantic Validator stage (spec.md §4.6):
// it checks referential integrity, duplicate identifiers, mode/directive
// compatibility, and numeric ranges over a fully transformed IR, producing
// fatal ValidationErrors and non-fatal Warnings.
package validate

import (
	"hacfg/internal/diag"
	"hacfg/internal/ir"
)

var httpOnlyOptions = map[string]bool{
	"httplog":           true,
	"forwardfor":        true,
	"http-server-close": true,
	"http-keep-alive":   true,
	"httpchk":           true,
}

var tcpOnlyOptions = map[string]bool{
	"tcplog": true,
}

var validHealthCheckMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true, "HEAD": true,
	"OPTIONS": true, "PATCH": true, "TRACE": true, "CONNECT": true,
}

// Validate checks cfg and returns the fatal errors and non-fatal warnings
// found. cfg is never mutated (spec.md §4.6 "Output: the same IR
// (unchanged) if valid").
func Validate(cfg *ir.ConfigIR) ([]*diag.ValidationError, []diag.Warning) {
	v := &validator{cfg: cfg, backends: map[string]bool{}}
	for _, b := range cfg.Backends {
		v.backends[b.Name] = true
	}
	for _, l := range cfg.Listens {
		v.backends[l.Name] = true
	}

	for _, f := range cfg.Frontends {
		v.checkFrontend(f)
	}
	for _, b := range cfg.Backends {
		v.checkBackend(b)
	}
	for _, l := range cfg.Listens {
		v.checkListen(l)
	}
	v.checkTemplateUsage()
	v.checkVariableUsage()
	for _, path := range cfg.Imports {
		v.warnf(cfg.Loc, "import %q is recorded but not inlined: file inclusion is not implemented", path)
	}

	return v.errors, v.warnings
}

type validator struct {
	cfg      *ir.ConfigIR
	backends map[string]bool
	errors   []*diag.ValidationError
	warnings []diag.Warning
}

func (v *validator) errorf(loc diag.Location, format string, args ...any) {
	v.errors = append(v.errors, diag.NewValidationError(loc, format, args...))
}

func (v *validator) warnf(loc diag.Location, format string, args ...any) {
	v.warnings = append(v.warnings, diag.NewWarning(loc, format, args...))
}

func (v *validator) checkFrontend(f *ir.Frontend) {
	if len(f.Binds) == 0 {
		v.warnf(f.Loc, "frontend %q has no binds", f.Name)
	}
	if f.DefaultBackend != "" && !v.backends[f.DefaultBackend] {
		v.errorf(f.Loc, "frontend %q: default_backend '%s' does not exist", f.Name, f.DefaultBackend)
	}
	v.checkUseBackendRules(f.Loc, f.Name, f.UseBackendRules)
	v.checkModeCompat(f.Loc, "frontend", f.Name, f.Mode, f.Options)
}

func (v *validator) checkBackend(b *ir.Backend) {
	if len(b.Servers) == 0 {
		v.warnf(b.Loc, "backend %q has no servers", b.Name)
	}
	v.checkDuplicateServers(b.Loc, "backend", b.Name, b.Servers)
	v.checkUseServerRules(b.Loc, b.Name, b.UseServerRules, b.Servers)
	v.checkModeCompat(b.Loc, "backend", b.Name, b.Mode, b.Options)
	v.checkHealthCheck(b.Loc, "backend", b.Name, b.HealthCheck)
	v.checkServers(b.Loc, "backend", b.Name, b.Servers)
	if b.HashBalanceFactor != nil {
		if *b.HashBalanceFactor < 100 || *b.HashBalanceFactor > 65535 {
			v.errorf(b.Loc, "backend %q: hash-balance-factor %d out of range [100, 65535]", b.Name, *b.HashBalanceFactor)
		}
	}
}

func (v *validator) checkListen(l *ir.Listen) {
	if len(l.Binds) == 0 {
		v.warnf(l.Loc, "listen %q has no binds", l.Name)
	}
	if len(l.Servers) == 0 {
		v.warnf(l.Loc, "listen %q has no servers", l.Name)
	}
	v.checkDuplicateServers(l.Loc, "listen", l.Name, l.Servers)
	v.checkUseServerRules(l.Loc, l.Name, l.UseServerRules, l.Servers)
	v.checkUseBackendRules(l.Loc, l.Name, l.UseBackendRules)
	v.checkModeCompat(l.Loc, "listen", l.Name, l.Mode, l.Options)
	v.checkHealthCheck(l.Loc, "listen", l.Name, l.HealthCheck)
	v.checkServers(l.Loc, "listen", l.Name, l.Servers)
	if l.HashBalanceFactor != nil {
		if *l.HashBalanceFactor < 100 || *l.HashBalanceFactor > 65535 {
			v.errorf(l.Loc, "listen %q: hash-balance-factor %d out of range [100, 65535]", l.Name, *l.HashBalanceFactor)
		}
	}
}

func (v *validator) checkUseBackendRules(loc diag.Location, section string, rules []ir.Rule) {
	for _, r := range rules {
		target := ruleTarget(r)
		if target == "" {
			continue
		}
		if !v.backends[target] {
			v.errorf(loc, "%s: use_backend '%s' does not exist", section, target)
		}
	}
}

func (v *validator) checkUseServerRules(loc diag.Location, section string, rules []ir.Rule, servers []ir.Server) {
	names := make(map[string]bool, len(servers))
	for _, s := range servers {
		names[s.Name] = true
	}
	for _, r := range rules {
		target := ruleTarget(r)
		if target == "" {
			continue
		}
		if !names[target] {
			v.errorf(loc, "%s: use-server '%s' does not exist", section, target)
		}
	}
}

// ruleTarget returns a use_backend/use-server rule's destination name, the
// first positional parameter.
func ruleTarget(r ir.Rule) string {
	if len(r.Params) == 0 {
		return ""
	}
	return r.Params[0]
}

func (v *validator) checkDuplicateServers(loc diag.Location, kind, name string, servers []ir.Server) {
	seenName := map[string]bool{}
	seenID := map[int]bool{}
	for _, s := range servers {
		if s.Name != "" {
			if seenName[s.Name] {
				v.errorf(loc, "%s %q: duplicate server name %q", kind, name, s.Name)
			}
			seenName[s.Name] = true
		}
		if s.ID != nil {
			if seenID[*s.ID] {
				v.errorf(loc, "%s %q: duplicate server id %d", kind, name, *s.ID)
			}
			seenID[*s.ID] = true
		}
	}
}

func (v *validator) checkServers(loc diag.Location, kind, name string, servers []ir.Server) {
	for _, s := range servers {
		if s.Weight != nil && (*s.Weight < 0 || *s.Weight > 256) {
			v.errorf(s.Loc, "%s %q: server %q weight %d out of range [0, 256]", kind, name, s.Name, *s.Weight)
		}
		if s.Rise != nil && *s.Rise < 1 {
			v.errorf(s.Loc, "%s %q: server %q rise %d must be >= 1", kind, name, s.Name, *s.Rise)
		}
		if s.Fall != nil && *s.Fall < 1 {
			v.errorf(s.Loc, "%s %q: server %q fall %d must be >= 1", kind, name, s.Name, *s.Fall)
		}
	}
}

func (v *validator) checkHealthCheck(loc diag.Location, kind, name string, hc *ir.HealthCheck) {
	if hc == nil {
		return
	}
	if hc.Method != "" && !validHealthCheckMethods[hc.Method] {
		v.errorf(loc, "%s %q: health-check method %q is not recognized", kind, name, hc.Method)
	}
	if hc.ExpectStatus != nil && (*hc.ExpectStatus < 100 || *hc.ExpectStatus > 599) {
		v.errorf(loc, "%s %q: health-check expected status %d out of range [100, 599]", kind, name, *hc.ExpectStatus)
	}
}

func (v *validator) checkModeCompat(loc diag.Location, kind, name, mode string, options []string) {
	switch mode {
	case "tcp":
		for _, o := range options {
			if httpOnlyOptions[o] {
				v.errorf(loc, "%s %q: HTTP option '%s' used in TCP mode", kind, name, o)
			}
		}
	case "http":
		for _, o := range options {
			if tcpOnlyOptions[o] {
				v.errorf(loc, "%s %q: TCP option '%s' used in HTTP mode", kind, name, o)
			}
		}
	}
}

func (v *validator) checkTemplateUsage() {
	for _, t := range v.cfg.Templates {
		if !t.Used {
			v.warnf(t.Loc, "template %q is never referenced", t.Name)
		}
	}
}

func (v *validator) checkVariableUsage() {
	for name, vr := range v.cfg.Variables {
		if !vr.Used {
			v.warnf(vr.Loc, "variable %q is defined but never used", name)
		}
	}
}
