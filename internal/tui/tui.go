package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-key/internal/service"
)

// TUI runs small interactive programs on a terminal. Output goes to out,
// which the CLI points at stderr so that stdout stays clean for pipes.
type TUI struct {
	in  io.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// PromptPassword asks for a masked password. label is shown before the
// input.
func (t *TUI) PromptPassword(ctx context.Context, label string) (string, error) {
	final, err := t.run(ctx, newPromptModel(label))
	if err != nil {
		return "", err
	}

	result, ok := final.(promptModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.cancelled {
		return "", ErrUserQuit
	}
	return result.value(), nil
}

// Choose shows choices in a filterable list and returns the picked one.
func (t *TUI) Choose(ctx context.Context, title string, choices []service.Choice) (service.Choice, error) {
	if len(choices) == 0 {
		return service.Choice{}, ErrNothingToChoose
	}

	final, err := t.run(ctx, newChooserModel(title, choices), tea.WithAltScreen())
	if err != nil {
		return service.Choice{}, err
	}

	result, ok := final.(chooserModel)
	if !ok {
		return service.Choice{}, tea.ErrProgramKilled
	}
	if result.cancelled || result.chosen == nil {
		return service.Choice{}, ErrUserQuit
	}
	return *result.chosen, nil
}

// PrintError renders err the way the interactive screens do.
func (t *TUI) PrintError(err error) {
	fmt.Fprintln(t.out, renderPage("", errorStyle.Render(strings.TrimSpace(err.Error())), ""))
}

func (t *TUI) run(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	opts = append(opts,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	return tea.NewProgram(model, opts...).Run()
}
