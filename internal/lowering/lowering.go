// Package lowering (continued): Lower is the single entry point the
// pipeline calls after parsing. It walks the root "config NAME { ... }"
// directive's body and dispatches each top-level block to the
// section-specific lowerer, exactly as spec.md §4.2 describes.
package lowering

import (
	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/parser"
)

// Lower builds a ConfigIR from a parsed File. path is used only for error
// attribution (propagated to c.loc). It reports a *diag.ParseError for each
// directive name unrecognized in its section and for each malformed value
// (e.g. a non-integer where an integer is expected, a malformed for-loop
// header), returning them alongside a best-effort ConfigIR.
func Lower(f *parser.File, path string) (*ir.ConfigIR, []*diag.ParseError) {
	c := &ctx{path: path}
	cfg := &ir.ConfigIR{
		Variables:            map[string]*ir.Variable{},
		Templates:            map[string]*ir.Template{},
		HealthCheckTemplates: map[string]*ir.HealthCheckTemplate{},
		HttpErrorsGroups:     map[string]*ir.HttpErrorsGroup{},
	}
	if f == nil || f.Config == nil {
		return cfg, c.errors
	}

	root := f.Config
	name, _ := nameAndRest(root)
	cfg.Name = name
	cfg.Loc = c.loc(root.Name)

	for _, sub := range root.Body {
		k := key(sub)
		switch k {
		case "global":
			if cfg.Global != nil {
				c.errorf(c.loc(sub.Name), "duplicate 'global' block")
			}
			cfg.Global = lowerGlobal(sub, c)
		case "defaults":
			if cfg.Defaults != nil {
				c.errorf(c.loc(sub.Name), "duplicate 'defaults' block")
			}
			cfg.Defaults = lowerDefaults(sub, c)
		case "frontend":
			cfg.Frontends = append(cfg.Frontends, lowerFrontend(sub, c))
		case "backend":
			cfg.Backends = append(cfg.Backends, lowerBackend(sub, c))
		case "listen":
			cfg.Listens = append(cfg.Listens, lowerListen(sub, c))
		case "peers":
			cfg.Peers = append(cfg.Peers, lowerPeers(sub, c))
		case "resolvers":
			cfg.Resolvers = append(cfg.Resolvers, lowerResolvers(sub, c))
		case "mailers":
			cfg.Mailers = append(cfg.Mailers, lowerMailers(sub, c))
		case "http-errors":
			g := lowerHttpErrorsGroup(sub, c)
			cfg.HttpErrorsGroups[g.Name] = g
		case "lua":
			cfg.LuaScripts = append(cfg.LuaScripts, lowerLua(sub, c))
		case "let":
			v := lowerVariable(sub, c)
			cfg.Variables[v.Name] = v
		case "template":
			t := lowerTemplate(sub, c)
			cfg.Templates[t.Name] = t
		case "health-check-template":
			t := lowerHealthCheckTemplate(sub, c)
			cfg.HealthCheckTemplates[t.Name] = t
		case "import":
			for _, v := range argValues(sub) {
				cfg.Imports = append(cfg.Imports, v)
			}
		case "version":
			cfg.Version = scalar(sub)
		default:
			c.errorf(c.loc(sub.Name), "directive %q is never valid at config top level", k)
		}
	}

	return cfg, c.errors
}
