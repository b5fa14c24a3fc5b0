package ir

import "hacfg/internal/diag"

// Rule is the common shape for every rule list in spec.md §3 ("Rules"):
// HTTP request/response/after-response, TCP request/response, http-check,
// tcp-check, use_backend, use-server, monitor-fail, force-persist,
// ignore-persist, quic-initial. One struct serves every action: Action names
// the verb, Params holds its positional parameters and Named its key=value
// parameters; per-action constraints are not encoded in the type.
type Rule struct {
	Action    string // e.g. "deny", "allow", "add-header", "set-var"
	Params    []string // positional parameters, in source order
	Named     map[string]string // named parameters (key=value forms)
	Condition string // raw "if X" / "unless Y" text, empty if unconditional
	Loc       diag.Location
	// List is the directive name the rule lowered from (e.g. "http-request",
	// "tcp-request", "http-check"), set only on rules produced inside a
	// rule-list `for` loop body, where a single ForLoop can mix rules bound
	// for different ProxyCommon rule lists; the Loop Unroller uses it to
	// route each expanded Rule to its actual destination list instead of a
	// single hardcoded one.
	List string
}
