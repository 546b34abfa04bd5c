package cmd

import (
	"strings"
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{"review", "feature", "bug", "explain", "status", "templates", "serve", "config"}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "model", "sandbox", "debug", "json", "no-color", "show-prompts", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q missing", name)
		}
	}
	for short, long := range map[string]string{"m": "model", "s": "sandbox", "d": "debug", "v": "verbose"} {
		f := rootCmd.PersistentFlags().ShorthandLookup(short)
		if f == nil || f.Name != long {
			t.Errorf("shorthand -%s should map to --%s", short, long)
		}
	}
}

func TestExtraFilesNote(t *testing.T) {
	if got := extraFilesNote([]string{"only.go"}); got != "" {
		t.Errorf("single file should add no note, got %q", got)
	}
	note := extraFilesNote([]string{"a.go", "b.go", "c.go"})
	if !strings.Contains(note, "b.go") || !strings.Contains(note, "c.go") {
		t.Errorf("note = %q", note)
	}
	if strings.Contains(note, "a.go\n") {
		t.Errorf("primary file should not be listed: %q", note)
	}
}

func TestOrNotSpecified(t *testing.T) {
	if orNotSpecified("") != "Not specified" {
		t.Error("empty should map to Not specified")
	}
	if orNotSpecified("linux") != "linux" {
		t.Error("non-empty should pass through")
	}
}
