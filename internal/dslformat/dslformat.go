// Package dslformat registers the DSL's own format with the process-wide
// registry (spec.md §4.8), wiring together the Parser and Lowering stages
// behind the registry's single Parse entry point. Importing this package for
// its side effect is how cmd/hacfg makes the "hacfg" format available.
package dslformat

import (
	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/lowering"
	"hacfg/internal/parser"
	"hacfg/internal/registry"
)

// FormatName is the name this package registers under.
const FormatName = "hacfg"

func init() {
	registry.Default.Register(FormatName, []string{".hacfg", ".hcfg"}, registry.ParserFunc(parseAndLower))
}

func parseAndLower(src, path string) (*ir.ConfigIR, []*diag.ParseError) {
	file, errs := parser.Parse(src, path)
	if len(errs) > 0 {
		return nil, errs
	}
	cfg, errs := lowering.Lower(file, path)
	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}
