// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-key/internal/service"
)

const (
	chooserWidth  = 60
	chooserHeight = 20
)

// choiceItem adapts a [service.Choice] to the list widget.
type choiceItem struct {
	choice service.Choice
}

func (i choiceItem) Title() string { return i.choice.Label() }

func (i choiceItem) Description() string { return i.choice.User }

func (i choiceItem) FilterValue() string { return i.choice.Label() + " " + i.choice.User }

// chooserModel is a filterable list of entries. Enter picks the highlighted
// entry, esc outside of filtering cancels.
type chooserModel struct {
	list list.Model

	chosen    *service.Choice
	cancelled bool
}

func newChooserModel(title string, choices []service.Choice) chooserModel {
	items := make([]list.Item, 0, len(choices))
	for _, c := range choices {
		items = append(items, choiceItem{choice: c})
	}

	l := list.New(items, list.NewDefaultDelegate(), chooserWidth, chooserHeight)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return chooserModel{list: l}
}

func (m chooserModel) Init() tea.Cmd {
	return nil
}

func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.enter):
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				c := item.choice
				m.chosen = &c
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, keys.esc) && m.list.FilterState() == list.Unfiltered:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m chooserModel) View() string {
	if m.chosen != nil || m.cancelled {
		return ""
	}
	return appStyle.Render(m.list.View())
}
