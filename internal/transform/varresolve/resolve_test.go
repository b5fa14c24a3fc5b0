package varresolve

import (
	"testing"

	"hacfg/internal/ir"
)

func TestResolveSubstitutesVariableReferences(t *testing.T) {
	cfg := &ir.ConfigIR{
		Variables: map[string]*ir.Variable{
			"region": {Name: "region", Value: ir.Value{Kind: ir.ValueString, Str: "us-east"}},
		},
		Backends: []*ir.Backend{
			{Name: "app", Dispatch: "dispatch-${region}"},
		},
	}

	out, errs := Resolve(cfg, "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := out.Backends[0].Dispatch; got != "dispatch-us-east" {
		t.Fatalf("Dispatch = %q, want %q", got, "dispatch-us-east")
	}
	if !out.Variables["region"].Used {
		t.Fatalf("expected Resolve to mark 'region' as used on the returned IR's variable record")
	}
	if cfg.Variables["region"].Used {
		t.Fatalf("expected Resolve to leave the input IR's variable record untouched")
	}
}

func TestResolveDoesNotMutateInputOnNoMarkers(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{{Name: "app", Dispatch: "plain"}},
	}
	out, errs := Resolve(cfg, "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out == cfg {
		t.Fatal("expected Resolve to return a distinct ConfigIR, not alias the input")
	}
	if out.Backends[0].Dispatch != "plain" {
		t.Fatalf("unexpected mutation: %q", out.Backends[0].Dispatch)
	}
}

func TestResolveReportsUndefinedVariable(t *testing.T) {
	cfg := &ir.ConfigIR{
		Backends: []*ir.Backend{{Name: "app", Dispatch: "${nope}"}},
	}
	_, errs := Resolve(cfg, "test.hacfg")
	if len(errs) == 0 {
		t.Fatal("expected an error for an undefined variable reference")
	}
}

func TestRenderValueFormatsEachKind(t *testing.T) {
	cases := []struct {
		v    ir.Value
		want string
	}{
		{ir.Value{Kind: ir.ValueString, Str: "x"}, "x"},
		{ir.Value{Kind: ir.ValueInt, Int: 42}, "42"},
		{ir.Value{Kind: ir.ValueBool, Bool: true}, "true"},
		{ir.Value{Kind: ir.ValueBool, Bool: false}, "false"},
	}
	for _, tc := range cases {
		if got := RenderValue(tc.v); got != tc.want {
			t.Errorf("RenderValue(%+v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
