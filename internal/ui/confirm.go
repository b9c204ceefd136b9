package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	confirmYes    = key.NewBinding(key.WithKeys("y", "Y"))
	confirmNo     = key.NewBinding(key.WithKeys("n", "N", "esc", "ctrl+c"))
	confirmAccept = key.NewBinding(key.WithKeys("enter"))
)

// confirmModel is a one-line yes/no prompt.
type confirmModel struct {
	prompt     string
	defaultYes bool
	confirmed  bool
	done       bool
	theme      Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, confirmYes):
		m.confirmed = true
	case key.Matches(k, confirmNo):
		m.confirmed = false
	case key.Matches(k, confirmAccept):
		m.confirmed = m.defaultYes
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	choices := "[y/N]"
	if m.defaultYes {
		choices = "[Y/n]"
	}
	return m.theme.HeaderStyle().UnsetBackground().Render(m.prompt) + " " +
		m.theme.DangerStyle().UnsetBackground().Render(choices) + " "
}

// Confirm asks a yes/no question on stderr and blocks for the answer. Enter
// picks the default.
func Confirm(prompt string, defaultYes bool, theme Theme) (bool, error) {
	m := confirmModel{prompt: prompt, defaultYes: defaultYes, theme: theme}
	result, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
