// Package varresolve implements the Variable Resolver stage (spec.md §4.3):
// it evaluates every `env(NAME, DEFAULT?)` variable value and substitutes
// every `${expr}` marker in every string-bearing IR field, to a fixed point.
package varresolve

import (
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
)

// maxIterations bounds the fixed-point walk (spec.md §4.3 "bounded by a
// small iteration cap").
const maxIterations = 8

var markerPattern = regexp.MustCompile(`\$\{([^{}]*)\}`)

var locType = reflect.TypeOf(diag.Location{})
var forLoopSliceType = reflect.TypeOf([]ir.ForLoop(nil))

// Resolve evaluates env(...) calls and substitutes ${...} markers across
// cfg, returning a new ConfigIR (the input is never mutated, per spec.md
// §9 "Transformer composition"). ForLoop bodies are left untouched here —
// they carry their own deferred ${...} markers that the Loop Unroller
// resolves per-iteration with the loop variable bound, via ResolveString.
func Resolve(cfg *ir.ConfigIR, path string) (*ir.ConfigIR, []*diag.ParseError) {
	out := cfg.Clone()
	r := &resolver{path: path}
	r.evalEnvCalls(out)

	for i := 0; i < maxIterations; i++ {
		syms := r.symbolTable(out)
		changed := r.walkConfig(out, syms)
		if len(r.errors) > 0 {
			return out, r.errors
		}
		if !changed {
			return out, nil
		}
	}

	// Bounded walk exhausted with markers still present: report at every
	// remaining unresolved site as likely cyclic.
	syms := r.symbolTable(out)
	r.walkConfigDetectCycle(out, syms)
	if len(r.errors) == 0 {
		r.errors = append(r.errors, diag.NewParseError(diag.Location{Path: path}, "variable interpolation did not converge after %d passes (likely cyclic reference)", maxIterations))
	}
	return out, r.errors
}

// ResolveString evaluates every ${...} marker in s against syms in one
// pass (no fixed-point loop — the Loop Unroller calls this once per
// iteration with a symbol table that already includes the loop binding).
// It returns the substituted string and the variable names it referenced.
func ResolveString(s string, syms map[string]string) (string, []string, error) {
	var used []string
	var firstErr error
	out := markerPattern.ReplaceAllStringFunc(s, func(m string) string {
		if firstErr != nil {
			return m
		}
		expr := m[2 : len(m)-1]
		v, names, err := evalExpr(expr, syms)
		if err != nil {
			firstErr = err
			return m
		}
		used = append(used, names...)
		return v
	})
	if firstErr != nil {
		return s, nil, firstErr
	}
	return out, used, nil
}

type resolver struct {
	path   string
	errors []*diag.ParseError
	used   map[string]bool
}

func (r *resolver) errorf(loc diag.Location, format string, args ...any) {
	r.errors = append(r.errors, diag.NewParseError(loc, format, args...))
}

// evalEnvCalls resolves every ValueEnvCall variable into a ValueString,
// reading the process environment once (spec.md §5 "read... and cached
// for the rest of the run").
func (r *resolver) evalEnvCalls(cfg *ir.ConfigIR) {
	for name, v := range cfg.Variables {
		if v.Value.Kind != ir.ValueEnvCall {
			continue
		}
		env, ok := os.LookupEnv(v.Value.EnvName)
		switch {
		case ok:
			v.Value = ir.Value{Kind: ir.ValueString, Str: env}
		case v.Value.EnvDefault != nil:
			v.Value = ir.Value{Kind: ir.ValueString, Str: *v.Value.EnvDefault}
		default:
			r.errorf(v.Loc, "undefined environment variable %q referenced by variable %q with no default", v.Value.EnvName, name)
		}
	}
}

// symbolTable renders every variable's current value as the string form
// ${...} substitution sites see (spec.md §4.3: booleans render
// "true"/"false"; numbers their canonical decimal form; durations and
// plain strings verbatim; lists/maps joined for scalar contexts).
func (r *resolver) symbolTable(cfg *ir.ConfigIR) map[string]string {
	syms := make(map[string]string, len(cfg.Variables))
	for name, v := range cfg.Variables {
		syms[name] = RenderValue(v.Value)
	}
	return syms
}

// RenderValue renders a Variable's value to the string form ${...}
// substitution sites see; exported so the Loop Unroller can build its base
// symbol table the same way the Variable Resolver does.
func RenderValue(v ir.Value) string {
	switch v.Kind {
	case ir.ValueString:
		return v.Str
	case ir.ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ir.ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ir.ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ir.ValueList:
		return strings.Join(v.List, ",")
	case ir.ValueMap:
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+v.Map[k])
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// walkConfig substitutes every ${...} marker reachable from cfg (except
// inside ForLoop bodies and LuaScript.Source) in place, returning whether
// anything changed this pass.
func (r *resolver) walkConfig(cfg *ir.ConfigIR, syms map[string]string) bool {
	r.used = map[string]bool{}
	changed := r.walk(reflect.ValueOf(cfg), diag.Location{Path: r.path}, syms)
	for name := range r.used {
		if v, ok := cfg.Variables[name]; ok {
			v.Used = true
		}
	}
	return changed
}

// walkConfigDetectCycle runs one more pass solely to attach a precise
// location to the cyclic-reference error.
func (r *resolver) walkConfigDetectCycle(cfg *ir.ConfigIR, syms map[string]string) {
	r.used = map[string]bool{}
	r.walk(reflect.ValueOf(cfg), diag.Location{Path: r.path}, syms)
}

func (r *resolver) walk(v reflect.Value, loc diag.Location, syms map[string]string) bool {
	if !v.IsValid() {
		return false
	}
	changed := false
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return false
		}
		return r.walk(v.Elem(), loc, syms)
	case reflect.Struct:
		if v.Type() == locType {
			return false
		}
		if lf := v.FieldByName("Loc"); lf.IsValid() && lf.Type() == locType {
			if l := lf.Interface().(diag.Location); l.Line != 0 || l.Path != "" {
				loc = l
			}
		}
		structName := v.Type().Name()
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			ft := v.Type().Field(i)
			if !f.CanSet() {
				continue
			}
			if f.Type() == forLoopSliceType {
				continue // deferred to the Loop Unroller
			}
			if structName == "LuaScript" && ft.Name == "Source" {
				continue // embedded scripts pass through verbatim
			}
			if r.walk(f, loc, syms) {
				changed = true
			}
		}
		return changed
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if r.walk(v.Index(i), loc, syms) {
				changed = true
			}
		}
		return changed
	case reflect.Map:
		if v.IsNil() {
			return false
		}
		for _, k := range v.MapKeys() {
			mv := v.MapIndex(k)
			nv := reflect.New(mv.Type()).Elem()
			nv.Set(mv)
			if r.walk(nv, loc, syms) {
				v.SetMapIndex(k, nv)
				changed = true
			}
		}
		return changed
	case reflect.String:
		if !markerPattern.MatchString(v.String()) {
			return false
		}
		out, used, err := ResolveString(v.String(), syms)
		if err != nil {
			r.errorf(loc, "%s", err.Error())
			return false
		}
		for _, name := range used {
			r.used[name] = true
		}
		if out != v.String() {
			v.SetString(out)
			return true
		}
		return false
	default:
		return false
	}
}
