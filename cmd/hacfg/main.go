package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hacfg/internal/diag"
	_ "hacfg/internal/dslformat"
	"hacfg/internal/ir"
	"hacfg/internal/pipeline"
	"hacfg/internal/registry"
)

var appVersion = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hacfg", flag.ContinueOnError)
	var (
		output       string
		format       string
		listFormats  bool
		validate     bool
		verbose      bool
		debug        bool
		luaDir       string
		showVersion  bool
		stampGUID    bool
		guidSeedFile string
	)
	fs.StringVar(&output, "o", "", "output path (stdout if absent)")
	fs.StringVar(&output, "output", "", "output path (stdout if absent)")
	fs.StringVar(&format, "format", "", "force a parser by registered format name")
	fs.BoolVar(&listFormats, "list-formats", false, "list registered formats and exit")
	fs.BoolVar(&validate, "validate", false, "parse and validate only, no emission")
	fs.BoolVar(&verbose, "verbose", false, "enable info-level logging")
	fs.BoolVar(&debug, "debug", false, "enable debug-level logging, including per-stage IR snapshots")
	fs.StringVar(&luaDir, "lua-dir", "", "directory to write extracted inline lua scripts")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.BoolVar(&stampGUID, "stamp-guid", false, "fill in a deterministic guid for every proxy section that omits one")
	fs.StringVar(&guidSeedFile, "guid-seed-file", "", "file whose contents seed --stamp-guid, so repeated compiles keep stable guids")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Printf("hacfg %s\n", appVersion)
		return 0
	}

	logger := newLogger(verbose, debug)
	defer func() { _ = logger.Sync() }()

	if listFormats {
		for _, line := range registry.Default.Describe() {
			fmt.Println(line)
		}
		return 0
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "hacfg: missing input file")
		return 2
	}
	path := inputs[0]

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hacfg: %v\n", err)
		return 2
	}

	logger.Debug("starting translation", zap.String("path", path), zap.String("format", format))

	var guidSeed string
	if guidSeedFile != "" {
		seed, err := os.ReadFile(guidSeedFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hacfg: %v\n", err)
			return 2
		}
		guidSeed = string(seed)
	}

	result, err := pipeline.Run(string(src), path, pipeline.Options{
		Format:       format,
		ValidateOnly: validate,
		StampGUID:    stampGUID,
		GUIDSeed:     guidSeed,
		Logger:       logger,
	})
	if err != nil {
		printDiag(logger, err)
		return 1
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	if validate {
		logger.Info("validation succeeded", zap.String("path", path))
		return 0
	}

	if luaDir != "" {
		if err := writeInlineScripts(result.IR.LuaScripts, luaDir); err != nil {
			fmt.Fprintf(os.Stderr, "hacfg: %v\n", err)
			return 1
		}
	}

	if output == "" {
		fmt.Print(result.Output)
		return 0
	}
	if err := os.WriteFile(output, []byte(result.Output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "hacfg: %v\n", err)
		return 1
	}
	logger.Info("wrote native configuration", zap.String("path", output))
	return 0
}

func newLogger(verbose, debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	switch {
	case debug:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// printDiag prints err with its location prefix, matching spec.md §7
// "path:line:col: message" exactly; diag.*Error already renders this way.
func printDiag(logger *zap.Logger, err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	switch e := err.(type) {
	case *diag.ParseError:
		logger.Debug("parse error", zap.Any("location", e.Loc))
	case *diag.ValidationError:
		logger.Debug("validation error", zap.Any("location", e.Loc))
	case *diag.CodeGenerationError:
		logger.Debug("code generation error", zap.Any("location", e.Loc))
	}
}

func writeInlineScripts(scripts []*ir.LuaScript, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range scripts {
		if !s.Inline {
			continue
		}
		name := s.Name
		if !strings.HasSuffix(name, ".lua") {
			name += ".lua"
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(s.Source), 0o644); err != nil {
			return err
		}
	}
	return nil
}
