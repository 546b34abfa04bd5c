// Package templates holds the prompt template catalog: a set of
// builtin templates plus optional user templates loaded from a
// directory of YAML files.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template pairs a fixed system prompt with a user prompt template
// containing {placeholder} fields.
type Template struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	SystemPrompt string            `yaml:"system_prompt"`
	UserTemplate string            `yaml:"user_template"`
	Variables    map[string]string `yaml:"variables"`
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Format substitutes values into the user template and returns the
// (system, user) prompt pair. Every placeholder must be supplied; a
// missing one is an error rather than silently passing "{name}"
// through to the model.
func (t *Template) Format(values map[string]string) (systemPrompt, userPrompt string, err error) {
	var missing []string
	userPrompt = placeholderRe.ReplaceAllStringFunc(t.UserTemplate, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := values[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", "", fmt.Errorf("template %s: missing variables: %s", t.Name, strings.Join(missing, ", "))
	}
	return t.SystemPrompt, userPrompt, nil
}

// Catalog is a named set of templates. Builtins are always present;
// user templates from a directory override builtins with the same
// name.
type Catalog struct {
	templates map[string]*Template
}

// NewCatalog returns a catalog holding the builtin templates.
func NewCatalog() *Catalog {
	c := &Catalog{templates: make(map[string]*Template)}
	for _, t := range builtins() {
		c.templates[t.Name] = t
	}
	return c
}

// Get returns the named template, or nil if absent.
func (c *Catalog) Get(name string) *Template {
	return c.templates[name]
}

// List returns name → description for every template, sorted by name.
func (c *Catalog) List() []Template {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Template, 0, len(names))
	for _, name := range names {
		out = append(out, *c.templates[name])
	}
	return out
}

// LoadDir adds every *.yaml/*.yml file under dir as a template.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading templates dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}
		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}
		if t.Name == "" {
			t.Name = strings.TrimSuffix(e.Name(), ext)
		}
		c.templates[t.Name] = &t
	}
	return nil
}

func builtins() []*Template {
	return []*Template{
		{
			Name:        "code_review",
			Description: "Template for code review and analysis",
			SystemPrompt: "You are an expert code reviewer. Analyze the provided code for:\n" +
				"1. Code quality and style issues\n" +
				"2. Potential bugs and security vulnerabilities\n" +
				"3. Performance optimizations\n" +
				"4. Best practices and maintainability\n\n" +
				"Provide specific, actionable feedback with line numbers when possible. " +
				"Format your response as structured JSON with sections for issues, " +
				"suggestions, and overall assessment.",
			UserTemplate: "Please review the following {language} code:\n\n" +
				"```{language}\n{code}\n```\n\n" +
				"{focus_instruction}",
			Variables: map[string]string{
				"language":          "Programming language",
				"code":              "Code to review",
				"focus_instruction": "Specific focus areas or instructions",
			},
		},
		{
			Name:        "feature_plan_review",
			Description: "Template for reviewing feature plans and specifications",
			SystemPrompt: "You are a senior software architect and product manager. " +
				"Review the provided feature plan for:\n" +
				"1. Clarity and completeness of requirements\n" +
				"2. Technical feasibility and implementation approach\n" +
				"3. Missing considerations (security, performance, testing)\n" +
				"4. User experience and edge cases\n" +
				"5. Dependencies and integration points\n\n" +
				"Provide constructive feedback to improve the plan.",
			UserTemplate: "Please review this feature plan:\n\n" +
				"{feature_plan}\n\n" +
				"Context: {context}\n\n" +
				"Focus areas: {focus_areas}",
			Variables: map[string]string{
				"feature_plan": "Feature plan document",
				"context":      "Project context and constraints",
				"focus_areas":  "Specific areas to focus on",
			},
		},
		{
			Name:        "bug_analysis",
			Description: "Template for analyzing bugs and suggesting fixes",
			SystemPrompt: "You are a debugging expert. Analyze the provided bug report and code to:\n" +
				"1. Identify the root cause of the issue\n" +
				"2. Explain why the bug occurs\n" +
				"3. Suggest specific fixes with code examples\n" +
				"4. Recommend preventive measures\n" +
				"5. Consider edge cases and testing strategies\n\n" +
				"Be thorough but concise in your analysis.",
			UserTemplate: "Bug Description: {bug_description}\n\n" +
				"Error Logs:\n{error_logs}\n\n" +
				"Relevant Code:\n```{language}\n{code_context}\n```\n\n" +
				"Environment: {environment}\n\n" +
				"Steps to reproduce: {reproduction_steps}",
			Variables: map[string]string{
				"bug_description":    "Description of the bug",
				"error_logs":         "Error messages and logs",
				"code_context":       "Relevant code snippets",
				"language":           "Programming language",
				"environment":        "Environment details",
				"reproduction_steps": "Steps to reproduce the issue",
			},
		},
		{
			Name:        "code_explanation",
			Description: "Template for explaining code functionality",
			SystemPrompt: "You are a technical educator. Explain the provided code in a clear, " +
				"comprehensive way that helps others understand:\n" +
				"1. What the code does (high-level purpose)\n" +
				"2. How it works (step-by-step breakdown)\n" +
				"3. Key concepts and patterns used\n" +
				"4. Important implementation details\n" +
				"5. Potential improvements or alternatives\n\n" +
				"Adjust your explanation level based on the requested detail level.",
			UserTemplate: "Please explain this {language} code:\n\n" +
				"```{language}\n{code}\n```\n\n" +
				"Detail level: {detail_level}\n" +
				"Specific questions: {questions}",
			Variables: map[string]string{
				"language":     "Programming language",
				"code":         "Code to explain",
				"detail_level": "Level of detail (basic, intermediate, advanced)",
				"questions":    "Specific questions about the code",
			},
		},
	}
}
