// Package pipeline wires the Parse/Lower → Resolve → Expand → Unroll →
// Validate → Serialize stages (spec.md §2) into a single entry point for
// external collaborators (the CLI, tests). Each stage is a pure function
// over an immutable ConfigIR; pipeline itself owns no state beyond the
// Registry it is handed.
package pipeline

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
	"hacfg/internal/registry"
	"hacfg/internal/serializer"
	"hacfg/internal/transform/loop"
	"hacfg/internal/transform/template"
	"hacfg/internal/transform/varresolve"
	"hacfg/internal/validate"
)

// Result is everything a caller needs after a successful translation:
// the validated IR (useful to --validate callers that never serialize),
// the rendered native text (empty when validate-only), and any warnings
// accumulated across stages (spec.md §7 "Warnings accumulate").
type Result struct {
	IR       *ir.ConfigIR
	Output   string
	Warnings []diag.Warning
}

// Options controls how far the pipeline runs and which registry it
// consults. A zero-value Options uses registry.Default and runs through
// serialization.
type Options struct {
	Registry *registry.Registry
	// Format forces a parser by registered name; if empty, the parser is
	// selected by Path's file extension.
	Format string
	// ValidateOnly stops after the Semantic Validator and leaves Output
	// empty, mirroring the CLI's --validate flag (spec.md §6).
	ValidateOnly bool
	// StampGUID fills in every proxy section's empty GUID with a
	// deterministic UUIDv5 before serialization, mirroring the CLI's
	// --stamp-guid flag.
	StampGUID bool
	// GUIDSeed seeds StampGUID's UUID namespace, mirroring the CLI's
	// --guid-seed-file contents, so repeated compiles of the same sections
	// keep the same GUIDs.
	GUIDSeed string
	// Logger receives a Debug line naming each stage plus a snapshot of the
	// IR it just produced, satisfying spec.md §7 "When debug output is
	// requested, the stage name and the immediately-preceding IR snapshot
	// are included." A nil Logger is treated as zap.NewNop() — the CLI
	// supplies its own level-gated logger so this is silent unless --debug
	// raised it to DebugLevel.
	Logger *zap.Logger
}

// Run executes the full pipeline over src (already read from Path by the
// caller — the core performs no I/O, spec.md §5). It returns on the first
// fatal error, carrying whichever diag.*Error the failing stage produced.
func Run(src, path string, opts Options) (*Result, error) {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parser, err := selectParser(reg, opts.Format, path)
	if err != nil {
		return nil, err
	}

	cfg, parseErrs := parser.Parse(src, path)
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	logStage(logger, "parse", cfg)

	var warnings []diag.Warning

	cfg, resolveErrs := varresolve.Resolve(cfg, path)
	if len(resolveErrs) > 0 {
		return nil, resolveErrs[0]
	}
	logStage(logger, "variable-resolve", cfg)

	cfg, expandWarnings := template.Expand(cfg)
	warnings = append(warnings, expandWarnings...)
	logStage(logger, "template-expand", cfg)

	cfg, unrollErrs := loop.Unroll(cfg, path)
	if len(unrollErrs) > 0 {
		return nil, unrollErrs[0]
	}
	logStage(logger, "loop-unroll", cfg)

	validationErrs, validateWarnings := validate.Validate(cfg)
	warnings = append(warnings, validateWarnings...)
	if len(validationErrs) > 0 {
		return nil, validationErrs[0]
	}
	logStage(logger, "validate", cfg)

	if opts.StampGUID {
		stampGUIDs(cfg, opts.GUIDSeed)
		logStage(logger, "stamp-guid", cfg)
	}

	result := &Result{IR: cfg, Warnings: warnings}
	if opts.ValidateOnly {
		return result, nil
	}

	out, err := serializer.Serialize(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("stage completed", zap.String("stage", "serialize"), zap.Int("output_bytes", len(out)))
	result.Output = out
	return result, nil
}

// logStage emits a Debug line naming the just-completed stage plus a
// snapshot of the IR it produced (spec.md §7). The snapshot is the entity
// counts rather than the full tree: a full reflect.DeepEqual-style dump of
// ConfigIR repeats across all seven stages would overwhelm the log, and the
// counts are enough for a human to see which stage added, expanded, or
// dropped entities.
func logStage(logger *zap.Logger, stage string, cfg *ir.ConfigIR) {
	logger.Debug("stage completed", zap.String("stage", stage), zap.Object("ir", irSnapshot{cfg}))
}

// irSnapshot implements zap.ObjectMarshaler so the snapshot is only walked
// when the logger is actually at DebugLevel.
type irSnapshot struct {
	cfg *ir.ConfigIR
}

func (s irSnapshot) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("frontends", len(s.cfg.Frontends))
	enc.AddInt("backends", len(s.cfg.Backends))
	enc.AddInt("listens", len(s.cfg.Listens))
	enc.AddInt("peers", len(s.cfg.Peers))
	enc.AddInt("resolvers", len(s.cfg.Resolvers))
	enc.AddInt("mailers", len(s.cfg.Mailers))
	enc.AddInt("templates", len(s.cfg.Templates))
	enc.AddInt("variables", len(s.cfg.Variables))
	enc.AddInt("lua_scripts", len(s.cfg.LuaScripts))
	return nil
}

func selectParser(reg *registry.Registry, format, path string) (registry.Parser, error) {
	if format != "" {
		p, ok := reg.Lookup(format)
		if !ok {
			return nil, diag.NewParseError(diag.Location{Path: path}, "unknown format %q", format)
		}
		return p, nil
	}
	p, ok := reg.LookupByPath(path)
	if !ok {
		return nil, diag.NewParseError(diag.Location{Path: path}, "no registered format recognizes this file extension")
	}
	return p, nil
}
