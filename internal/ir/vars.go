package ir

import "hacfg/internal/diag"

// ValueKind tags the concrete type a Variable's Value holds.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueMap
	ValueList
	ValueEnvCall
)

// Value is a tagged union over a Variable's possible value shapes (spec.md
// §3 "Variable"). Exactly one of the typed fields is meaningful, selected
// by Kind.
type Value struct {
	Kind ValueKind

	Str   string            // ValueString (may still carry ${...} markers pre-resolution)
	Int   int64             // ValueInt
	Float float64           // ValueFloat
	Bool  bool              // ValueBool
	Map   map[string]string // ValueMap
	List  []string          // ValueList

	// ValueEnvCall: unevaluated env(NAME, DEFAULT?) call.
	EnvName    string
	EnvDefault *string
}

// Variable is a `let NAME = VALUE` binding.
type Variable struct {
	Name  string
	Value Value
	Loc   diag.Location

	// Used tracks whether any ${...} substitution site referenced this
	// variable, populated by the Variable Resolver so the validator can
	// warn on unused variables (spec.md §4.6 "Rules (warnings)").
	Used bool
}

// Template is a named bag of directive values spread into entities by a
// `@name` reference (spec.md §3 "Template").
type Template struct {
	Name   string
	Params map[string]string
	Loc    diag.Location

	// Used tracks whether any entity spread this template, populated by
	// the Template Expander so the validator can warn on an unreferenced
	// template (spec.md §4.6 "Rules (warnings)").
	Used bool
}

// HealthCheckTemplate is the same shape as Template, scoped for
// health-check-template use.
type HealthCheckTemplate struct {
	Name   string
	Params map[string]string
	Loc    diag.Location
}

// TemplateRef is an unresolved `@name` spread recorded on an entity until
// the Template Expander consumes it.
type TemplateRef struct {
	Name string
	Loc  diag.Location
}

// ForLoop is a pre-unroll `for v in range/list { body }` node. After loop
// unrolling, the node carrying this is replaced by the concatenation of its
// expanded bodies; see internal/transform/loop.
type ForLoop struct {
	Var      string
	Iterable Iterable
	// Body holds the loop body's entities, lowered once with their ${var}
	// references left unresolved; the Loop Unroller clones them per
	// iteration and resolves those references against that iteration's value.
	Body []LoopBodyEntity
	Loc  diag.Location
}

// Iterable is either an inclusive numeric range or a literal list.
type Iterable struct {
	IsRange bool
	From    int64
	To      int64
	List    []string
}

// LoopBodyEntityKind distinguishes what a loop body fragment lowers into.
type LoopBodyEntityKind int

const (
	LoopBodyServer LoopBodyEntityKind = iota
	LoopBodyRule
)

// LoopBodyEntity is one fragment of a ForLoop's body: a lowered Server or
// Rule whose address/params may still contain ${var}-style references to
// the loop variable.
type LoopBodyEntity struct {
	Kind   LoopBodyEntityKind
	Server *Server
	Rule   *Rule
}
