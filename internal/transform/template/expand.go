// Package template implements the Template Expander stage (spec.md §4.4):
// it merges named template parameter sets into every entity that carries a
// `@name` spread, with explicit-entity-field-wins precedence.
package template

import (
	"reflect"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/lowering"
)

// Expand returns a new ConfigIR with every TemplateRefs marker resolved and
// cleared, plus any warnings produced along the way (unknown template
// names, unknown parameter names with nowhere to land).
func Expand(cfg *ir.ConfigIR) (*ir.ConfigIR, []diag.Warning) {
	out := cfg.Clone()
	e := &expander{cfg: out}

	if out.Defaults != nil {
		e.expandProxyCommon(&out.Defaults.ProxyCommon)
	}
	for _, f := range out.Frontends {
		e.expandProxyCommon(&f.ProxyCommon)
	}
	for _, b := range out.Backends {
		e.expandProxyCommon(&b.ProxyCommon)
		e.expandServers(b.Servers)
		if b.DefaultServer != nil {
			e.expandServer(b.DefaultServer)
		}
		for i := range b.ServerTemplates {
			e.expandServer(&b.ServerTemplates[i].Server)
		}
	}
	for _, l := range out.Listens {
		e.expandProxyCommon(&l.ProxyCommon)
		e.expandServers(l.Servers)
		if l.DefaultServer != nil {
			e.expandServer(l.DefaultServer)
		}
		for i := range l.ServerTemplates {
			e.expandServer(&l.ServerTemplates[i].Server)
		}
	}

	return out, e.warnings
}

type expander struct {
	cfg      *ir.ConfigIR
	warnings []diag.Warning
}

func (e *expander) warnf(loc diag.Location, format string, args ...any) {
	e.warnings = append(e.warnings, diag.NewWarning(loc, format, args...))
}

func (e *expander) expandServers(servers []ir.Server) {
	for i := range servers {
		e.expandServer(&servers[i])
	}
}

func (e *expander) expandServer(s *ir.Server) {
	refs := s.TemplateRefs
	s.TemplateRefs = nil
	dst := reflect.ValueOf(s).Elem()
	// spec.md §4.4: "later templates override earlier templates for fields
	// not explicitly set on the entity itself" — mergeUnset only fills a
	// still-zero field, so folding refs back-to-front applies the last ref
	// first; an earlier ref's value for the same field then finds the field
	// already non-zero and is skipped, giving last-template-wins while the
	// entity's own explicit fields (already non-zero before this loop) are
	// never touched.
	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		tmpl, ok := e.cfg.Templates[ref.Name]
		if !ok {
			e.warnf(ref.Loc, "unknown template %q", ref.Name)
			continue
		}
		tmpl.Used = true
		candidate := lowering.ServerFromParams(tmpl.Params)
		mergeUnset(dst, reflect.ValueOf(candidate).Elem())
	}
}

func (e *expander) expandProxyCommon(pc *ir.ProxyCommon) {
	refs := pc.TemplateRefs
	pc.TemplateRefs = nil
	dst := reflect.ValueOf(pc).Elem()
	// See expandServer: folding back-to-front gives last-template-wins.
	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		tmpl, ok := e.cfg.Templates[ref.Name]
		if !ok {
			e.warnf(ref.Loc, "unknown template %q", ref.Name)
			continue
		}
		tmpl.Used = true
		candidate, unrecognized := lowering.ProxyCommonFromParams(tmpl.Params)
		mergeUnset(dst, reflect.ValueOf(candidate))
		for _, k := range unrecognized {
			e.warnf(ref.Loc, "template %q parameter %q does not apply to this section and was ignored", ref.Name, k)
		}
	}
}
