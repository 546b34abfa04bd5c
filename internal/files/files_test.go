package files

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadChecked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadChecked(path, 10.0)
	if err != nil {
		t.Fatalf("ReadChecked: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
}

func TestReadCheckedTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	// Cap just under the file size.
	_, err := ReadChecked(path, 0.001)
	var tooBig *TooLargeError
	if !errors.As(err, &tooBig) {
		t.Fatalf("err = %v, want TooLargeError", err)
	}
	if tooBig.Size != 2048 {
		t.Errorf("size = %d", tooBig.Size)
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.go"), "package a")
	mustWrite(t, filepath.Join(dir, "sub", "b.go"), "package b")
	mustWrite(t, filepath.Join(dir, "sub", "c.txt"), "text")

	got, err := ExpandGlobs([]string{filepath.Join(dir, "**", "*.go")}, 0)
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches = %v", got)
	}
	for _, p := range got {
		if !strings.HasSuffix(p, ".go") {
			t.Errorf("unexpected match %q", p)
		}
	}
}

func TestExpandGlobsLiteralKeptVerbatim(t *testing.T) {
	got, err := ExpandGlobs([]string{"/no/such/file.go"}, 0)
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}
	if len(got) != 1 || got[0] != "/no/such/file.go" {
		t.Errorf("got = %v, literal paths should pass through", got)
	}
}

func TestExpandGlobsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	mustWrite(t, path, "package a")

	got, err := ExpandGlobs([]string{path, filepath.Join(dir, "*.go")}, 0)
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got = %v, want one entry", got)
	}
}

func TestExpandGlobsFileCap(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.go"), "a")
	mustWrite(t, filepath.Join(dir, "b.go"), "b")

	_, err := ExpandGlobs([]string{filepath.Join(dir, "*.go")}, 1)
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Fatalf("err = %v, want file cap error", err)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"script.PY", "python"},
		{"app.tsx", "typescript"},
		{"query.sql", "sql"},
		{"Makefile", ""},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
