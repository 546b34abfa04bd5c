package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerDoneMsg struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	message string
	err     error
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + m.message
}

// RunWithSpinner runs fn while showing an animated spinner with the
// given message. When stdout is not a terminal fn runs silently. The
// returned error is fn's error.
func RunWithSpinner(theme *Theme, message string, fn func() error) error {
	if !IsTerminal() {
		return fn()
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Spinner)),
	)
	m := spinnerModel{spinner: s, message: message}
	p := tea.NewProgram(m)

	go func() {
		err := fn()
		p.Send(spinnerDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(spinnerModel); ok {
		return fm.err
	}
	return nil
}
