// Package loop implements the Loop Unroller stage (spec.md §4.5): it
// replaces every ForLoop node with the concatenation of its expanded
// bodies, re-running variable interpolation per iteration with the loop
// variable bound.
package loop

import (
	"strconv"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/transform/varresolve"
)

// Unroll returns a new ConfigIR with every ServerLoops/RuleLoops entry
// expanded into concrete Servers/Rules, in iteration order, and removed
// from the proxy's metadata. path is used only for error attribution.
func Unroll(cfg *ir.ConfigIR, path string) (*ir.ConfigIR, []*diag.ParseError) {
	out := cfg.Clone()
	u := &unroller{}

	baseSyms := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		baseSyms[name] = varresolve.RenderValue(v.Value)
	}
	u.baseSyms = baseSyms

	if out.Defaults != nil {
		u.unrollProxyCommon(&out.Defaults.ProxyCommon)
	}
	for _, f := range out.Frontends {
		u.unrollProxyCommon(&f.ProxyCommon)
	}
	for _, b := range out.Backends {
		u.unrollServerLoops(&b.Servers, &b.ProxyCommon.ServerLoops)
		u.unrollProxyCommon(&b.ProxyCommon)
	}
	for _, l := range out.Listens {
		u.unrollServerLoops(&l.Servers, &l.ProxyCommon.ServerLoops)
		u.unrollProxyCommon(&l.ProxyCommon)
	}

	return out, u.errors
}

type unroller struct {
	baseSyms map[string]string
	errors   []*diag.ParseError
}

func (u *unroller) errorf(loc diag.Location, format string, args ...any) {
	u.errors = append(u.errors, diag.NewParseError(loc, format, args...))
}

func (u *unroller) unrollProxyCommon(pc *ir.ProxyCommon) {
	u.unrollServerLoops(nil, &pc.ServerLoops)
	for _, fl := range pc.RuleLoops {
		for _, r := range u.expandRuleLoop(fl) {
			u.appendRule(pc, r)
		}
	}
	pc.RuleLoops = nil
}

// appendRule routes an expanded rule-loop rule to the ProxyCommon list its
// originating directive named (r.List, set by lowering's lowerForLoop),
// rather than a single hardcoded list — a loop body can mix "http-request",
// "tcp-request", etc. directives, and each must land on its own list.
func (u *unroller) appendRule(pc *ir.ProxyCommon, r ir.Rule) {
	switch r.List {
	case "http-response":
		pc.HTTPResponseRules = append(pc.HTTPResponseRules, r)
	case "http-after-response":
		pc.HTTPAfterResponseRules = append(pc.HTTPAfterResponseRules, r)
	case "tcp-request":
		pc.TCPRequestRules = append(pc.TCPRequestRules, r)
	case "tcp-response":
		pc.TCPResponseRules = append(pc.TCPResponseRules, r)
	case "http-check":
		pc.HTTPCheckRules = append(pc.HTTPCheckRules, r)
	case "tcp-check":
		pc.TCPCheckRules = append(pc.TCPCheckRules, r)
	default:
		// "http-request" and any unset/unrecognized List land here;
		// http-request is the most common rule-loop case and was this
		// stage's sole target before List existed.
		pc.HTTPRequestRules = append(pc.HTTPRequestRules, r)
	}
}

// unrollServerLoops expands every ForLoop in *loops, appending the
// resulting Servers to *servers (which may be the same slice the loop's
// own container list lives on, e.g. Backend.Servers), then clears *loops.
func (u *unroller) unrollServerLoops(servers *[]ir.Server, loops *[]ir.ForLoop) {
	if servers != nil {
		for _, fl := range *loops {
			*servers = append(*servers, u.expandServerLoop(fl)...)
		}
	}
	*loops = nil
}

func (u *unroller) expandServerLoop(fl ir.ForLoop) []ir.Server {
	values, ok := u.iterableValues(fl)
	if !ok {
		return nil
	}
	out := make([]ir.Server, 0, len(values)*len(fl.Body))
	for _, iterVal := range values {
		syms := u.symsWithBinding(fl.Var, iterVal)
		for _, entry := range fl.Body {
			if entry.Kind != ir.LoopBodyServer || entry.Server == nil {
				continue
			}
			s := entry.Server.Clone()
			u.resolveServerStrings(s, syms, fl, iterVal)
			s.LoopVar = fl.Var
			s.LoopValue = iterVal
			out = append(out, *s)
		}
	}
	return out
}

func (u *unroller) expandRuleLoop(fl ir.ForLoop) []ir.Rule {
	values, ok := u.iterableValues(fl)
	if !ok {
		return nil
	}
	out := make([]ir.Rule, 0, len(values)*len(fl.Body))
	for _, iterVal := range values {
		syms := u.symsWithBinding(fl.Var, iterVal)
		for _, entry := range fl.Body {
			if entry.Kind != ir.LoopBodyRule || entry.Rule == nil {
				continue
			}
			r := *entry.Rule
			r.Params = append([]string(nil), entry.Rule.Params...)
			if entry.Rule.Named != nil {
				r.Named = make(map[string]string, len(entry.Rule.Named))
				for k, v := range entry.Rule.Named {
					r.Named[k] = v
				}
			}
			u.resolveRuleStrings(&r, syms, fl)
			out = append(out, r)
		}
	}
	return out
}

// iterableValues materializes a loop's iterable into its ordered string
// values (spec.md invariant 7: count equals max(0, b-a+1) for a range).
func (u *unroller) iterableValues(fl ir.ForLoop) ([]string, bool) {
	if fl.Iterable.IsRange {
		from, to := fl.Iterable.From, fl.Iterable.To
		if to < from {
			return nil, true
		}
		vals := make([]string, 0, to-from+1)
		for i := from; i <= to; i++ {
			vals = append(vals, strconv.FormatInt(i, 10))
		}
		return vals, true
	}
	if fl.Iterable.List != nil {
		return fl.Iterable.List, true
	}
	u.errorf(fl.Loc, "malformed iterable in 'for %s' loop", fl.Var)
	return nil, false
}

func (u *unroller) symsWithBinding(varName, value string) map[string]string {
	syms := make(map[string]string, len(u.baseSyms)+1)
	for k, v := range u.baseSyms {
		syms[k] = v
	}
	syms[varName] = value
	return syms
}

func (u *unroller) resolveServerStrings(s *ir.Server, syms map[string]string, fl ir.ForLoop, iterVal string) {
	fields := []*string{&s.Name, &s.Address, &s.Interval, &s.CheckAddress, &s.CheckSNI, &s.CheckProto,
		&s.AgentAddress, &s.AgentInterval, &s.PoolPurgeDelay, &s.Verify, &s.SNI, &s.CAFile, &s.CRLFile,
		&s.Cert, &s.Ciphers, &s.Curves, &s.SlowStart, &s.Resolvers, &s.ResolvePrefer, &s.InitAddr,
		&s.Observe, &s.OnError, &s.OnMarkedDown, &s.OnMarkedUp, &s.Proto, &s.Namespace, &s.Usesrc,
		&s.Cookie, &s.Track, &s.Redir}
	for _, f := range fields {
		resolved, err := u.resolveOne(*f, syms)
		if err != nil {
			u.errorf(fl.Loc, "loop %q iteration %q: %s", fl.Var, iterVal, err)
			continue
		}
		*f = resolved
	}
	for k, v := range s.Options {
		resolved, err := u.resolveOne(v, syms)
		if err != nil {
			u.errorf(fl.Loc, "loop %q iteration %q: %s", fl.Var, iterVal, err)
			continue
		}
		s.Options[k] = resolved
	}
}

func (u *unroller) resolveRuleStrings(r *ir.Rule, syms map[string]string, fl ir.ForLoop) {
	for i, p := range r.Params {
		resolved, err := u.resolveOne(p, syms)
		if err != nil {
			u.errorf(fl.Loc, "loop %q: %s", fl.Var, err)
			continue
		}
		r.Params[i] = resolved
	}
	for k, v := range r.Named {
		resolved, err := u.resolveOne(v, syms)
		if err != nil {
			u.errorf(fl.Loc, "loop %q: %s", fl.Var, err)
			continue
		}
		r.Named[k] = resolved
	}
	resolved, err := u.resolveOne(r.Condition, syms)
	if err == nil {
		r.Condition = resolved
	}
}

func (u *unroller) resolveOne(s string, syms map[string]string) (string, error) {
	out, _, err := varresolve.ResolveString(s, syms)
	if err != nil {
		return s, err
	}
	return out, nil
}
