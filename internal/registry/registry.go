// Package registry implements the format-registry collaborator interface
// spec.md §4.8 describes: a process-wide, write-once-at-startup table that
// lets parser implementations declare a format name and the file extensions
// they accept, and lets callers look a parser up by either.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
)

// Parser is the interface every registered format implements: a pure
// function from source text to a ConfigIR, or fatal parse errors.
type Parser interface {
	Parse(src, path string) (*ir.ConfigIR, []*diag.ParseError)
}

// ParserFunc adapts a plain function to the Parser interface, the same way
// http.HandlerFunc adapts a function to http.Handler.
type ParserFunc func(src, path string) (*ir.ConfigIR, []*diag.ParseError)

func (f ParserFunc) Parse(src, path string) (*ir.ConfigIR, []*diag.ParseError) {
	return f(src, path)
}

type entry struct {
	name       string
	extensions []string
	parser     Parser
}

// Registry is a format-name/extension-keyed table of Parsers. The zero
// value is usable; Default is the process-wide instance the CLI and tests
// share, mirroring the write-once-at-startup, read-only-thereafter sharing
// rule spec.md §5 "Shared state" pins for this collaborator.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*entry
	byExt   map[string]*entry
	ordered []*entry
}

// Default is the process-wide registry. Parser implementations register
// themselves against it from an init function, the way database/sql
// drivers register themselves against sql.Register.
var Default = New()

// New returns an empty Registry. Most callers use Default; New exists for
// tests that need isolation from whatever else has registered into Default.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*entry),
		byExt:  make(map[string]*entry),
	}
}

// Register adds a named parser accepting the given file extensions
// (case-insensitive, with or without a leading dot). It panics on a
// duplicate name or extension, the same fail-fast-at-startup contract
// database/sql.Register uses — a collision is a programming error, not a
// runtime condition callers should need to handle.
func (r *Registry) Register(name string, extensions []string, p Parser) {
	if p == nil {
		panic("registry: nil Parser for " + name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byName == nil {
		r.byName = make(map[string]*entry)
		r.byExt = make(map[string]*entry)
	}
	if _, ok := r.byName[name]; ok {
		panic(fmt.Sprintf("registry: format %q already registered", name))
	}

	e := &entry{name: name, parser: p}
	for _, ext := range extensions {
		ext = normalizeExt(ext)
		if _, ok := r.byExt[ext]; ok {
			panic(fmt.Sprintf("registry: extension %q already claimed", ext))
		}
		e.extensions = append(e.extensions, ext)
	}

	r.byName[name] = e
	for _, ext := range e.extensions {
		r.byExt[ext] = e
	}
	r.ordered = append(r.ordered, e)
}

// Lookup returns the parser registered under format name, or false if none.
func (r *Registry) Lookup(name string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.parser, true
}

// LookupByPath returns the parser registered for path's file extension, or
// false if no registered format claims it.
func (r *Registry) LookupByPath(path string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byExt[normalizeExt(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return e.parser, true
}

// Names returns every registered format name, sorted, for --list-formats.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ordered))
	for _, e := range r.ordered {
		out = append(out, e.name)
	}
	sort.Strings(out)
	return out
}

// Describe renders one line per registered format: "name: .ext1, .ext2",
// sorted by name, for --list-formats output.
func (r *Registry) Describe() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ordered))
	byName := make(map[string]*entry, len(r.ordered))
	for _, e := range r.ordered {
		names = append(names, e.name)
		byName[e.name] = e
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		e := byName[name]
		out = append(out, fmt.Sprintf("%s: %s", e.name, strings.Join(e.extensions, ", ")))
	}
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return "." + ext
}
