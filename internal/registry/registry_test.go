package registry

import (
	"testing"

	"hacfg/internal/diag"
	"hacfg/internal/ir"
)

func stubParser(name string) Parser {
	return ParserFunc(func(src, path string) (*ir.ConfigIR, []*diag.ParseError) {
		return &ir.ConfigIR{Name: name}, nil
	})
}

func TestLookupByName(t *testing.T) {
	r := New()
	r.Register("fooformat", []string{".foo"}, stubParser("fooformat"))

	p, ok := r.Lookup("fooformat")
	if !ok {
		t.Fatal("expected fooformat to be registered")
	}
	cfg, errs := p.Parse("", "x.foo")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Name != "fooformat" {
		t.Fatalf("got config name %q, want %q", cfg.Name, "fooformat")
	}

	if _, ok := r.Lookup("unknown"); ok {
		t.Fatal("expected unknown format to be absent")
	}
}

func TestLookupByPathNormalizesExtension(t *testing.T) {
	r := New()
	r.Register("fooformat", []string{"FOO"}, stubParser("fooformat"))

	if _, ok := r.LookupByPath("config.foo"); !ok {
		t.Fatal("expected lowercase .foo extension to match")
	}
	if _, ok := r.LookupByPath("config.FOO"); !ok {
		t.Fatal("expected uppercase .FOO extension to match")
	}
	if _, ok := r.LookupByPath("config.bar"); ok {
		t.Fatal("expected unregistered extension to miss")
	}
}

func TestRegisterDuplicateNamePanics(t *testing.T) {
	r := New()
	r.Register("fooformat", []string{".foo"}, stubParser("fooformat"))

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate name registration to panic")
		}
	}()
	r.Register("fooformat", []string{".bar"}, stubParser("fooformat"))
}

func TestRegisterDuplicateExtensionPanics(t *testing.T) {
	r := New()
	r.Register("fooformat", []string{".foo"}, stubParser("fooformat"))

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate extension registration to panic")
		}
	}()
	r.Register("barformat", []string{".foo"}, stubParser("barformat"))
}

func TestNamesAndDescribeAreSorted(t *testing.T) {
	r := New()
	r.Register("zeta", []string{".z"}, stubParser("zeta"))
	r.Register("alpha", []string{".a"}, stubParser("alpha"))

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("expected sorted [alpha zeta], got %v", names)
	}

	desc := r.Describe()
	if len(desc) != 2 || desc[0] != "alpha: .a" || desc[1] != "zeta: .z" {
		t.Fatalf("unexpected Describe() output: %v", desc)
	}
}
