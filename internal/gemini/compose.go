package gemini

import "strings"

// Compose assembles the single wire-format prompt the CLI expects:
// labeled System, optional Context, and User sections separated by
// blank lines. No escaping is done; section labels appearing inside
// caller text pass through verbatim.
func Compose(systemPrompt, userPrompt, context string) string {
	var b strings.Builder
	b.WriteString("System: ")
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	if context != "" {
		b.WriteString("Context:\n")
		b.WriteString(context)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(userPrompt)
	return b.String()
}
