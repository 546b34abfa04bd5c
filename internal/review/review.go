// Package review parses the model's code review output. The model is
// asked for a JSON block but often answers in prose, with issue and
// suggestion entries as either plain strings or objects, so parsing
// normalizes everything into one shape and never fails outright.
package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Issue is one problem the reviewer found.
type Issue struct {
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message"`
}

// Suggestion is one proposed improvement.
type Suggestion struct {
	Line       int    `json:"line,omitempty"`
	Suggestion string `json:"suggestion"`
}

// Result is the normalized review.
type Result struct {
	Summary     string       `json:"summary"`
	Issues      []Issue      `json:"issues"`
	Suggestions []Suggestion `json:"suggestions"`
	Rating      string       `json:"rating"`
}

// rawResult accepts the loose shapes models actually emit: issues and
// suggestions may be strings or objects, line numbers may be floats.
type rawResult struct {
	Summary     string            `json:"summary"`
	Issues      []json.RawMessage `json:"issues"`
	Suggestions []json.RawMessage `json:"suggestions"`
	Rating      string            `json:"rating"`
}

// Parse turns raw model output into a Result. If the output carries a
// fenced ```json block it is decoded and normalized; otherwise the
// text itself becomes the summary with line-split suggestions.
func Parse(content string) Result {
	jsonText, ok := extractJSONBlock(content)
	if !ok {
		return textFallback(content, 500)
	}
	var raw rawResult
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		r := textFallback(content, 200)
		r.Suggestions = []Suggestion{{Suggestion: content}}
		r.Rating = "Review completed (text format)"
		return r
	}

	result := Result{
		Summary: raw.Summary,
		Rating:  raw.Rating,
	}
	if result.Summary == "" {
		result.Summary = "Code review completed"
	}
	if result.Rating == "" {
		result.Rating = "Review completed"
	}
	for _, item := range raw.Issues {
		result.Issues = append(result.Issues, normalizeIssue(item))
	}
	for _, item := range raw.Suggestions {
		s := normalizeSuggestion(item)
		if s.Suggestion != "" {
			result.Suggestions = append(result.Suggestions, s)
		}
	}
	return result
}

// extractJSONBlock returns the contents of the first fenced ```json
// block, trimmed.
func extractJSONBlock(content string) (string, bool) {
	start := strings.Index(content, "```json")
	if start == -1 {
		return "", false
	}
	start += len("```json")
	end := strings.Index(content[start:], "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(content[start : start+end]), true
}

func textFallback(content string, limit int) Result {
	summary := content
	if len(summary) > limit {
		summary = summary[:limit] + "..."
	}
	r := Result{Summary: summary, Rating: "Review completed"}
	for _, line := range strings.Split(content, "\n") {
		if line != "" {
			r.Suggestions = append(r.Suggestions, Suggestion{Suggestion: line})
		}
	}
	return r
}

func normalizeIssue(raw json.RawMessage) Issue {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Issue{Message: s}
	}
	var obj struct {
		Line     int    `json:"line"`
		Severity string `json:"severity"`
		Message  string `json:"message"`
		Issue    string `json:"issue"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Issue{Message: string(raw)}
	}
	msg := obj.Message
	if msg == "" {
		msg = obj.Issue
	}
	if msg == "" {
		msg = string(raw)
	}
	return Issue{Line: obj.Line, Severity: obj.Severity, Message: msg}
}

func normalizeSuggestion(raw json.RawMessage) Suggestion {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Suggestion{Suggestion: s}
	}
	var obj struct {
		Line       int    `json:"line"`
		Suggestion string `json:"suggestion"`
		Text       string `json:"text"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Suggestion{Suggestion: string(raw)}
	}
	text := obj.Suggestion
	if text == "" {
		text = obj.Text
	}
	if text == "" {
		text = string(raw)
	}
	return Suggestion{Line: obj.Line, Suggestion: text}
}

// FocusInstruction maps a review focus keyword to the instruction
// appended to the prompt. Unknown focus values get the general one.
func FocusInstruction(focus string) string {
	switch focus {
	case "security":
		return "Focus specifically on security vulnerabilities and potential exploits."
	case "performance":
		return "Focus on performance optimizations and bottlenecks."
	case "style":
		return "Focus on code style, formatting, and best practices."
	case "bugs":
		return "Focus on potential bugs and logical errors."
	default:
		return "Provide a comprehensive review covering all aspects."
	}
}

// Render formats a Result as markdown for terminal display.
func Render(r Result) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n")
	if len(r.Issues) > 0 {
		b.WriteString("\n## Issues\n\n")
		for _, issue := range r.Issues {
			b.WriteString("- ")
			if issue.Severity != "" {
				fmt.Fprintf(&b, "**%s** ", issue.Severity)
			}
			if issue.Line > 0 {
				fmt.Fprintf(&b, "(line %d) ", issue.Line)
			}
			b.WriteString(issue.Message)
			b.WriteString("\n")
		}
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("\n## Suggestions\n\n")
		for _, s := range r.Suggestions {
			b.WriteString("- ")
			if s.Line > 0 {
				fmt.Fprintf(&b, "(line %d) ", s.Line)
			}
			b.WriteString(s.Suggestion)
			b.WriteString("\n")
		}
	}
	if r.Rating != "" {
		fmt.Fprintf(&b, "\n**Rating:** %s\n", r.Rating)
	}
	return b.String()
}
