package serializer

import "hacfg/internal/ir"

// formatRule renders one Rule to its directive line, without the leading
// indent. prefix is the rule-list's container keyword (e.g. "http-request")
// for action-style rules, or "" for named-directive-style rules where
// Rule.Action already holds the directive name itself (use_backend,
// use-server, monitor-fail, force-persist, ignore-persist) — see
// internal/lowering/rules.go's parseActionRule vs parseNamedRule.
func formatRule(prefix string, r ir.Rule) string {
	parts := []string{}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, r.Action)
	parts = append(parts, r.Params...)
	for _, k := range sortedKeys(r.Named) {
		parts = append(parts, k+"="+r.Named[k])
	}
	if r.Condition != "" {
		parts = append(parts, r.Condition)
	}
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// writeRuleList emits one line per rule in rules, in source order (spec.md
// §8 invariant 2 "Order preservation").
func writeRuleList(w *writer, prefix string, rules []ir.Rule) {
	for _, r := range rules {
		w.Raw(formatRule(prefix, r))
	}
}

// formatACL renders an "acl NAME CRITERION VALUES..." line.
func formatACL(a ir.ACL) string {
	parts := []string{"acl", a.Name, a.Criterion}
	parts = append(parts, a.Values...)
	return joinNonEmpty(parts)
}

func writeACLs(w *writer, acls []ir.ACL) {
	for _, a := range acls {
		w.Raw(formatACL(a))
	}
}
