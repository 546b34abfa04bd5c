package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinsPresent(t *testing.T) {
	c := NewCatalog()
	for _, name := range []string{"code_review", "feature_plan_review", "bug_analysis", "code_explanation"} {
		if c.Get(name) == nil {
			t.Errorf("builtin %q missing", name)
		}
	}
	if c.Get("no_such_template") != nil {
		t.Error("unknown name should return nil")
	}
}

func TestFormat(t *testing.T) {
	c := NewCatalog()
	tpl := c.Get("code_review")

	system, user, err := tpl.Format(map[string]string{
		"language":          "go",
		"code":              "package main",
		"focus_instruction": "Focus on security.",
	})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(system, "expert code reviewer") {
		t.Errorf("system = %q", system)
	}
	want := "Please review the following go code:\n\n```go\npackage main\n```\n\nFocus on security."
	if user != want {
		t.Errorf("user = %q, want %q", user, want)
	}
}

func TestFormatMissingVariable(t *testing.T) {
	c := NewCatalog()
	tpl := c.Get("code_review")

	_, _, err := tpl.Format(map[string]string{"language": "go"})
	if err == nil {
		t.Fatal("want error for missing variables")
	}
	if !strings.Contains(err.Error(), "code") || !strings.Contains(err.Error(), "focus_instruction") {
		t.Errorf("error should name the missing variables: %v", err)
	}
}

func TestFormatValueWithBraces(t *testing.T) {
	tpl := &Template{Name: "t", UserTemplate: "code: {code}"}
	_, user, err := tpl.Format(map[string]string{"code": "func f() { return }"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if user != "code: func f() { return }" {
		t.Errorf("user = %q", user)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	custom := `name: release_notes
description: Draft release notes
system_prompt: You write release notes.
user_template: "Summarize: {changes}"
variables:
  changes: Changelog entries
`
	if err := os.WriteFile(filepath.Join(dir, "release_notes.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	// Overrides the builtin of the same name.
	override := `name: code_review
description: House style review
system_prompt: Review per house rules.
user_template: "{code}"
`
	if err := os.WriteFile(filepath.Join(dir, "review.yml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog()
	if err := c.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if tpl := c.Get("release_notes"); tpl == nil || tpl.Description != "Draft release notes" {
		t.Errorf("custom template not loaded: %+v", tpl)
	}
	if tpl := c.Get("code_review"); tpl.SystemPrompt != "Review per house rules." {
		t.Errorf("builtin not overridden: %q", tpl.SystemPrompt)
	}

	names := make([]string, 0)
	for _, tpl := range c.List() {
		names = append(names, tpl.Name)
	}
	if !sortedContains(names, "bug_analysis") || !sortedContains(names, "release_notes") {
		t.Errorf("List() = %v", names)
	}
	if !strings.HasPrefix(strings.Join(names, ","), "bug_analysis") {
		t.Errorf("List() not sorted: %v", names)
	}
}

func sortedContains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
