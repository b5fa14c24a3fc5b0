package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSource = `
config sample {
    frontend web {
        bind *:80
        default_backend app
    }
    backend app {
        server app1 10.0.0.1:8080
    }
}
`

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "site.hacfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesOutputFile(t *testing.T) {
	src := writeTempSource(t, sampleSource)
	out := filepath.Join(filepath.Dir(src), "haproxy.cfg")

	code := run([]string{"-o", out, src})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected an output file to be written: %v", err)
	}
	if !strings.Contains(string(data), "backend app") {
		t.Errorf("expected emitted config to contain 'backend app', got:\n%s", data)
	}
}

func TestRunValidateOnlyExitsZeroWithoutWritingOutput(t *testing.T) {
	src := writeTempSource(t, sampleSource)
	out := filepath.Join(filepath.Dir(src), "haproxy.cfg")

	code := run([]string{"--validate", "-o", out, src})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(out); err == nil {
		t.Fatal("expected --validate to skip writing the output file")
	}
}

func TestRunMissingInputReturnsUsageExitCode(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Fatalf("run(nil) = %d, want 2", code)
	}
}

func TestRunUnreadableInputReturnsUsageExitCode(t *testing.T) {
	if code := run([]string{filepath.Join(t.TempDir(), "does-not-exist.hacfg")}); code != 2 {
		t.Fatalf("run() on a missing file = %d, want 2", code)
	}
}

func TestRunRejectsReferentialError(t *testing.T) {
	src := writeTempSource(t, `
config bad {
    frontend web {
        bind *:80
        use_backend missing
    }
}
`)
	if code := run([]string{src}); code != 1 {
		t.Fatalf("run() = %d, want 1 for a referential validation error", code)
	}
}

func TestRunListFormats(t *testing.T) {
	if code := run([]string{"--list-formats"}); code != 0 {
		t.Fatalf("run(--list-formats) = %d, want 0", code)
	}
}

func TestRunStampGUIDWritesGUIDIntoOutput(t *testing.T) {
	src := writeTempSource(t, sampleSource)
	out := filepath.Join(filepath.Dir(src), "haproxy.cfg")
	seedFile := filepath.Join(filepath.Dir(src), "seed.txt")
	if err := os.WriteFile(seedFile, []byte("release-7"), 0o644); err != nil {
		t.Fatal(err)
	}

	code := run([]string{"--stamp-guid", "--guid-seed-file", seedFile, "-o", out, src})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "guid ") {
		t.Errorf("expected emitted config to contain a stamped 'guid' line, got:\n%s", data)
	}
}

func TestRunVersion(t *testing.T) {
	if code := run([]string{"--version"}); code != 0 {
		t.Fatalf("run(--version) = %d, want 0", code)
	}
}
