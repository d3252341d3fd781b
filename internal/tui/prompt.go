package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const echoCharacter = '•'

// promptModel asks for one masked line, typically the master password.
type promptModel struct {
	label string
	input textinput.Model

	submitted bool
	cancelled bool
}

func newPromptModel(label string) promptModel {
	input := textinput.New()
	input.Prompt = promptStyle.Render(label) + " "
	input.CharLimit = 1024
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = echoCharacter
	input.Focus()

	return promptModel{label: label, input: input}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.enter):
			m.submitted = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc), key.Matches(keyMsg, keys.quit):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return m.input.View() + "\n"
}

// value returns what was typed so far.
func (m promptModel) value() string {
	return m.input.Value()
}
