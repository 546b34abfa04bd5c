package gemini

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageFilesFraming(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("beta"), 0o644); err != nil {
		t.Fatal(err)
	}

	staged, err := stageFiles([]string{a, b})
	if err != nil {
		t.Fatalf("stageFiles: %v", err)
	}
	defer os.Remove(staged)

	data, err := os.ReadFile(staged)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- " + a + " ---\nalpha\n\n--- " + b + " ---\nbeta\n\n"
	if string(data) != want {
		t.Errorf("staged = %q, want %q", data, want)
	}
}

func TestStageFilesUnreadableDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("fine"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "nope.txt")

	staged, err := stageFiles([]string{missing, good})
	if err != nil {
		t.Fatalf("stageFiles: %v", err)
	}
	defer os.Remove(staged)

	data, err := os.ReadFile(staged)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "--- "+missing+" (Error: ") {
		t.Errorf("missing file marker absent: %q", text)
	}
	if !strings.Contains(text, "--- "+good+" ---\nfine\n\n") {
		t.Errorf("readable file after the bad one was not staged: %q", text)
	}
}

func TestStagedFileRemovedAfterInvocation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ctx.txt")
	if err := os.WriteFile(src, []byte("context"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		result fakeResult
	}{
		{"subprocess succeeds", fakeResult{stdout: "ok", code: 0}},
		{"subprocess fails", fakeResult{stderr: "bad", code: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRunner{results: map[string]fakeResult{"m": tt.result}}
			c := newTestClient(fake, Options{Model: "m"})
			if _, err := c.Call(context.Background(), "p", nil, []string{src}); err != nil {
				t.Fatalf("Call: %v", err)
			}
			if len(fake.stdinNames) != 1 {
				t.Fatalf("stdin files seen = %d, want 1", len(fake.stdinNames))
			}
			if _, err := os.Stat(fake.stdinNames[0]); !os.IsNotExist(err) {
				t.Errorf("staged file %s still exists", fake.stdinNames[0])
			}
			if fake.calls[0] != "m" {
				t.Errorf("model = %q", fake.calls[0])
			}
		})
	}
}
