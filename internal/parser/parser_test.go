package parser

import "testing"

func TestParseMinimalConfig(t *testing.T) {
	src := `
config sample {
    frontend web {
        bind *:80
        default_backend app
    }
}
`
	file, errs := Parse(src, "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if file.Config == nil {
		t.Fatal("expected a root Config directive")
	}
	if file.Config.Name.Value != "config" {
		t.Fatalf("root directive name = %q, want %q", file.Config.Name.Value, "config")
	}
	if len(file.Config.Args) != 1 || file.Config.Args[0].Token.Value != "sample" {
		t.Fatalf("expected root config name arg 'sample', got %v", file.Config.Args)
	}
	if len(file.Config.Body) != 1 {
		t.Fatalf("expected one top-level sub-directive, got %d", len(file.Config.Body))
	}
	frontend := file.Config.Body[0]
	if frontend.Name.Value != "frontend" {
		t.Fatalf("expected 'frontend' directive, got %q", frontend.Name.Value)
	}
	if len(frontend.Body) != 2 {
		t.Fatalf("expected two directives inside frontend body, got %d", len(frontend.Body))
	}
}

func TestParseEmptyInputReportsError(t *testing.T) {
	_, errs := Parse("", "empty.hacfg")
	if len(errs) == 0 {
		t.Fatal("expected an error for empty input")
	}
}

func TestParseMissingConfigKeywordReportsError(t *testing.T) {
	_, errs := Parse("frontend web {}", "test.hacfg")
	if len(errs) == 0 {
		t.Fatal("expected an error when the root directive is not 'config'")
	}
}

func TestParseUnclosedBlockReportsError(t *testing.T) {
	_, errs := Parse("config sample {\n  frontend web {\n", "test.hacfg")
	if len(errs) == 0 {
		t.Fatal("expected an error for an unclosed block")
	}
}

func TestParseMultiLineListArgument(t *testing.T) {
	src := `
config sample {
    acl allowed src [
        10.0.0.1,
        10.0.0.2
    ]
}
`
	file, errs := Parse(src, "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	acl := file.Config.Body[0]
	if acl.Name.Value != "acl" {
		t.Fatalf("expected 'acl' directive, got %q", acl.Name.Value)
	}
	// Args: allowed, src, [, 10.0.0.1, ",", 10.0.0.2, ]
	var values []string
	for _, a := range acl.Args {
		values = append(values, a.Token.Value)
	}
	want := []string{"allowed", "src", "[", "10.0.0.1", ",", "10.0.0.2", "]"}
	if len(values) != len(want) {
		t.Fatalf("got args %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestParseLuaBlockSlurpsRawBodyVerbatim(t *testing.T) {
	src := "config sample {\n    lua myscript {\n        local x = { a = 1 }\n        return x\n    }\n}\n"
	file, errs := Parse(src, "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	lua := file.Config.Body[0]
	if lua.Name.Value != "lua" {
		t.Fatalf("expected 'lua' directive, got %q", lua.Name.Value)
	}
	if lua.RawBody == nil {
		t.Fatal("expected RawBody to be populated for a lua block")
	}
	want := "\n        local x = { a = 1 }\n        return x\n    "
	if *lua.RawBody != want {
		t.Fatalf("RawBody = %q, want %q", *lua.RawBody, want)
	}
	if lua.Body != nil {
		t.Fatalf("expected lua.Body to remain nil, got %v", lua.Body)
	}
}

func TestParseLuaBlockUnclosedReportsError(t *testing.T) {
	src := "config sample {\n    lua myscript {\n        return 1\n"
	_, errs := Parse(src, "test.hacfg")
	if len(errs) == 0 {
		t.Fatal("expected an error for an unclosed lua block")
	}
}

func TestParseDirectiveBodyAmbiguityIsPreservedForLowering(t *testing.T) {
	// "timeout { connect: 5s }" looks identical in the concrete tree
	// whether it is a nested block or a map literal: the parser does not
	// disambiguate, leaving that to internal/lowering.
	src := `
config sample {
    defaults {
        timeout {
            connect: 5s
        }
    }
}
`
	file, errs := Parse(src, "test.hacfg")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	defaults := file.Config.Body[0]
	timeout := defaults.Body[0]
	if timeout.Name.Value != "timeout" {
		t.Fatalf("expected 'timeout' directive, got %q", timeout.Name.Value)
	}
	if len(timeout.Body) != 1 || timeout.Body[0].Name.Value != "connect:" {
		t.Fatalf("expected one 'connect:' sub-directive, got %+v", timeout.Body)
	}
}
