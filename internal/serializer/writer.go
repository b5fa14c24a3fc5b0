// Package serializer implements the Serializer stage (spec.md §4.7): a pure
// function from a validated ConfigIR to the target load balancer's
// line-oriented native configuration text. No stage here reads or mutates
// the IR; every function in this package only appends lines to a writer.
package serializer

import (
	"sort"
	"strconv"
	"strings"
)

// indent is the fixed 4-space directive indent spec.md §4.7 requires.
const indent = "    "

// writer accumulates output lines. Every directive line inside a section
// gets the fixed indent; section headers and the leading comment are
// flush-left, via Header.
type writer struct {
	lines []string
}

// Header appends a flush-left line (a section keyword/name or the leading
// generated-file comment).
func (w *writer) Header(s string) {
	w.lines = append(w.lines, s)
}

// Blank appends an empty line, used to separate sections for readability.
func (w *writer) Blank() {
	w.lines = append(w.lines, "")
}

// Line appends one indented directive line built from space-joined parts.
// Parts are filtered: empty strings are dropped so callers can pass
// conditionally-empty tokens without littering call sites with ifs.
func (w *writer) Line(parts ...string) {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return
	}
	w.lines = append(w.lines, indent+strings.Join(nonEmpty, " "))
}

// Raw appends an already-formatted indented line verbatim (no part
// filtering), used for lines built incrementally (e.g. server lines).
func (w *writer) Raw(s string) {
	w.lines = append(w.lines, indent+s)
}

func (w *writer) String() string {
	return strings.Join(w.lines, "\n") + "\n"
}

// sortedKeys returns m's keys sorted ascending, so every map-valued field
// (Go map iteration order is randomized) renders deterministically —
// spec.md §8 invariant 1 "Determinism".
func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedIntKeys(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// boolFlag renders a bare keyword when v is true, nothing otherwise
// (spec.md §4.7 "Boolean directives emit the bare keyword when true and
// nothing when false").
func boolFlag(v *bool, keyword string) string {
	if v != nil && *v {
		return keyword
	}
	return ""
}

func boolOnOff(v *bool, keyword string) string {
	if v == nil {
		return ""
	}
	if *v {
		return keyword + " on"
	}
	return keyword + " off"
}

func intField(v *int, keyword string) string {
	if v == nil {
		return ""
	}
	return keyword + " " + strconv.Itoa(*v)
}

func strField(v, keyword string) string {
	if v == "" {
		return ""
	}
	return keyword + " " + v
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func addrPort(addr string, port *int) string {
	if port == nil {
		return addr
	}
	return addr + ":" + strconv.Itoa(*port)
}
