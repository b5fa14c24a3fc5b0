package dslformat

import (
	"testing"

	"hacfg/internal/registry"
)

func TestInitRegistersHacfgFormat(t *testing.T) {
	p, ok := registry.Default.Lookup(FormatName)
	if !ok {
		t.Fatal("expected the \"hacfg\" format to be registered by this package's init()")
	}
	if p == nil {
		t.Fatal("expected a non-nil registered parser")
	}
}

func TestLookupByPathFindsHacfgExtensions(t *testing.T) {
	for _, path := range []string{"site.hacfg", "site.hcfg"} {
		if _, ok := registry.Default.LookupByPath(path); !ok {
			t.Errorf("expected %q to resolve to the registered hacfg parser", path)
		}
	}
}

func TestParseAndLowerRejectsMalformedSource(t *testing.T) {
	p, _ := registry.Default.Lookup(FormatName)
	_, errs := p.Parse("config { this is not valid", "bad.hacfg")
	if len(errs) == 0 {
		t.Fatal("expected parse errors for malformed source")
	}
}
