package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the UI
type Theme struct {
	Primary   lipgloss.Color // main accent color (commands, highlights)
	Secondary lipgloss.Color // secondary accent (headers, borders)

	Success lipgloss.Color // success states, verified
	Error   lipgloss.Color // error states, failed attempts
	Warning lipgloss.Color // warnings, fallback in use
	Muted   lipgloss.Color // dimmed/secondary text
	Text    lipgloss.Color // primary text

	Spinner lipgloss.Color // loading spinner
	Border  lipgloss.Color // borders and dividers
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary: lipgloss.Color("#83a598"), // gruvbox aqua
		Success:   lipgloss.Color("#b8bb26"), // gruvbox green
		Error:     lipgloss.Color("#fb4934"), // gruvbox red
		Warning:   lipgloss.Color("#fabd2f"), // gruvbox yellow
		Muted:     lipgloss.Color("#928374"), // gruvbox gray
		Text:      lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Spinner:   lipgloss.Color("#d3869b"), // gruvbox purple
		Border:    lipgloss.Color("#83a598"), // gruvbox aqua (matches secondary)
	}
}

// ThemeConfig mirrors config.ThemeConfig for applying overrides
type ThemeConfig struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
	Text      string
	Spinner   string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()
	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
		theme.Border = lipgloss.Color(cfg.Secondary) // border follows secondary
	}
	if cfg.Success != "" {
		theme.Success = lipgloss.Color(cfg.Success)
	}
	if cfg.Error != "" {
		theme.Error = lipgloss.Color(cfg.Error)
	}
	if cfg.Warning != "" {
		theme.Warning = lipgloss.Color(cfg.Warning)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	if cfg.Spinner != "" {
		theme.Spinner = lipgloss.Color(cfg.Spinner)
	}
	return theme
}

// Styles built from a theme, used by the command output paths.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles derives the command output styles from a theme.
func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
	}
}
