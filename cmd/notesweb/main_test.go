package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "-s")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version -s = %q, want %q", out, version)
	}
}

func TestRoutesCommand(t *testing.T) {
	t.Setenv("BASE_URL", "/notes/")
	out, err := run(t, "routes")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"NAME", "signup", "/notes/signin"} {
		if !strings.Contains(out, want) {
			t.Errorf("routes output missing %q:\n%s", want, out)
		}
	}
}

func TestResolveCommand(t *testing.T) {
	t.Setenv("BASE_URL", "")
	out, err := run(t, "resolve", "/signup", "name:signin", "/missing", "name:settings")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}

	checks := []string{
		"/signup\tsignup\tsignup\t/signup\tok",
		"name:signin\tsignin\tsignin\t/signin\tok",
		"/missing\tnot-found\tnot-found\t/missing\tnot found",
		"name:settings\terror:",
	}
	for i, want := range checks {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	_, err := run(t, "routes", "--config", filepath.Join(t.TempDir(), "notesweb.json"))
	if err == nil || !strings.Contains(err.Error(), "E141") {
		t.Errorf("error = %v, want E141", err)
	}
}

func TestConfigFlag(t *testing.T) {
	t.Setenv("BASE_URL", "")
	path := filepath.Join(t.TempDir(), "notesweb.json")
	if err := os.WriteFile(path, []byte(`{"base": "/app"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "resolve", "--config", path, "/signup")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "/app/signup") {
		t.Errorf("output = %q, want href under /app", out)
	}
}
