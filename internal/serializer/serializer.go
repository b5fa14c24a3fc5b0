package serializer

import (
	"sort"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
)

// Serialize renders cfg to the target load balancer's native configuration
// text (spec.md §4.7). The section order is: leading generated-file comment,
// global, defaults, peers/resolvers/mailers (each family in source order),
// http-errors groups (sorted by name), then frontends/backends/listens in
// source order. Within
// a section, directive order is fixed; across sections, source order is
// preserved (spec.md §8 invariant 2).
//
// Serialize never mutates cfg. A nil cfg is a core invariant violation — by
// the time this stage runs, the pipeline has already validated cfg — so it
// is reported as a CodeGenerationError rather than a panic.
func Serialize(cfg *ir.ConfigIR) (string, error) {
	if cfg == nil {
		return "", &diag.CodeGenerationError{Message: "serializer: nil ConfigIR"}
	}

	w := &writer{}
	w.Header("# generated by hacfg — do not edit by hand")
	if cfg.Name != "" {
		w.Header("# name: " + cfg.Name)
	}
	if cfg.Version != "" {
		w.Header("# version: " + cfg.Version)
	}
	w.Blank()

	writeGlobal(w, cfg.Global, luaScriptValues(cfg.LuaScripts))
	writeDefaults(w, cfg.Defaults)

	for _, p := range cfg.Peers {
		writePeers(w, p)
	}
	for _, r := range cfg.Resolvers {
		writeResolvers(w, r)
	}
	for _, m := range cfg.Mailers {
		writeMailers(w, m)
	}
	for _, name := range sortedHttpErrorsGroupNames(cfg.HttpErrorsGroups) {
		writeHttpErrorsGroup(w, cfg.HttpErrorsGroups[name])
	}

	for _, f := range cfg.Frontends {
		writeFrontend(w, f)
	}
	for _, b := range cfg.Backends {
		writeBackend(w, b)
	}
	for _, l := range cfg.Listens {
		writeListen(w, l)
	}

	return w.String(), nil
}

func luaScriptValues(scripts []*ir.LuaScript) []ir.LuaScript {
	out := make([]ir.LuaScript, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, *s)
	}
	return out
}

// sortedHttpErrorsGroupNames orders the named http-errors groups
// deterministically; unlike frontends/backends/listens (already ordered by
// the parser), this family lives in a name-keyed map.
func sortedHttpErrorsGroupNames(m map[string]*ir.HttpErrorsGroup) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
