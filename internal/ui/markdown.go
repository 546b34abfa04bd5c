package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// rendererCache provides width-keyed caching of glamour renderers.
// Creating a renderer is expensive; caching by width avoids recreation.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders markdown for the terminal. On error, returns
// the original content unchanged.
func RenderMarkdown(content string, width int) string {
	if content == "" {
		return ""
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// TerminalWidth returns the current terminal width, or 80 when stdout
// is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// IsTerminal reports whether stdout is attached to a TTY.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
