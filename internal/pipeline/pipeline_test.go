package pipeline

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hacfg/internal/diag"
	_ "hacfg/internal/dslformat"
)

const minimalSource = `
config minimal {
    global {
        daemon
        maxconn 50000
        log /dev/log local0 info
    }

    defaults {
        mode http
        timeout {
            connect: 5s
        }
    }

    frontend web {
        bind *:80
        default_backend app
    }

    backend app {
        balance roundrobin
        server app1 10.0.1.1:8080 {
            check true
            interval 3s
            rise 5
            fall 2
        }
    }
}
`

func TestRunMinimalSourceEndToEnd(t *testing.T) {
	result, err := Run(minimalSource, "minimal.hacfg", Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}

	for _, want := range []string{
		"global",
		"    daemon",
		"    maxconn 50000",
		"defaults",
		"    mode http",
		"frontend web",
		"    bind *:80",
		"    default_backend app",
		"backend app",
		"    balance roundrobin",
		"    server app1 10.0.1.1:8080 check inter 3s rise 5 fall 2",
	} {
		if !strings.Contains(result.Output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, result.Output)
		}
	}
}

func TestRunValidateOnlyProducesNoOutput(t *testing.T) {
	result, err := Run(minimalSource, "minimal.hacfg", Options{ValidateOnly: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Output != "" {
		t.Fatalf("expected no emitted output in validate-only mode, got:\n%s", result.Output)
	}
	if result.IR == nil {
		t.Fatal("expected the validated IR to be returned even in validate-only mode")
	}
}

const danglingBackendSource = `
config bad {
    frontend web {
        bind *:80
        use_backend missing
    }
}
`

func TestRunReportsUnknownBackendReference(t *testing.T) {
	_, err := Run(danglingBackendSource, "bad.hacfg", Options{})
	if err == nil {
		t.Fatal("expected a referential ValidationError")
	}
	ve, ok := err.(*diag.ValidationError)
	if !ok {
		t.Fatalf("expected a *diag.ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(ve.Message, "missing") {
		t.Fatalf("expected error to mention the missing backend, got: %v", ve)
	}
}

func TestRunUnknownFormatIsRejected(t *testing.T) {
	_, err := Run(minimalSource, "minimal.unknownext", Options{})
	if err == nil {
		t.Fatal("expected an error for an unrecognized file extension")
	}
}

func TestRunMissingInputFileExtensionCanBeForced(t *testing.T) {
	result, err := Run(minimalSource, "minimal.unknownext", Options{Format: "hacfg"})
	if err != nil {
		t.Fatalf("Run with forced format returned error: %v", err)
	}
	if result.Output == "" {
		t.Fatal("expected non-empty output")
	}
}

func TestRunLogsEachStageNameAndIRSnapshotAtDebugLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	_, err := Run(minimalSource, "minimal.hacfg", Options{Logger: logger})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantStages := []string{"parse", "variable-resolve", "template-expand", "loop-unroll", "validate", "serialize"}
	gotStages := map[string]bool{}
	for _, entry := range logs.All() {
		if entry.Message != "stage completed" {
			continue
		}
		for _, f := range entry.Context {
			if f.Key == "stage" {
				gotStages[f.String] = true
			}
		}
	}
	for _, stage := range wantStages {
		if !gotStages[stage] {
			t.Errorf("expected a debug log entry for stage %q, got stages: %v", stage, gotStages)
		}
	}
}

func TestRunStampGUIDFillsInEmptyGUIDsDeterministically(t *testing.T) {
	first, err := Run(minimalSource, "minimal.hacfg", Options{StampGUID: true, GUIDSeed: "release-42"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	second, err := Run(minimalSource, "minimal.hacfg", Options{StampGUID: true, GUIDSeed: "release-42"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	guid := first.IR.Frontends[0].GUID
	if guid == "" {
		t.Fatal("expected StampGUID to fill in the frontend's empty guid")
	}
	if second.IR.Frontends[0].GUID != guid {
		t.Fatalf("expected the same seed to produce the same guid across runs, got %q and %q", guid, second.IR.Frontends[0].GUID)
	}

	third, err := Run(minimalSource, "minimal.hacfg", Options{StampGUID: true, GUIDSeed: "other-seed"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if third.IR.Frontends[0].GUID == guid {
		t.Fatal("expected a different seed to produce a different guid")
	}
}
