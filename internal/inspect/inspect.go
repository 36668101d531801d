package inspect

import (
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mbarbey/nfgrid/internal/rules"
)

// model is the Bubble Tea model for the rule-set viewer: a viewport over the
// rendered inspection text.
type model struct {
	vp      viewport.Model
	content string
	ready   bool
}

func newModel(set *rules.Set, title string) model {
	return model{
		vp:      viewport.New(),
		content: Render(set, title),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.SetWidth(msg.Width)
		m.vp.SetHeight(msg.Height - 1) // one line for the footer
		m.vp.SetContent(m.content)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if !m.ready {
		return v
	}

	footer := dimStyle.Render("↑↓ scroll · q quit")
	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, m.vp.View(), footer))
	return v
}

// Run opens the interactive viewer over a trained rule set.
func Run(set *rules.Set, title string) error {
	p := tea.NewProgram(newModel(set, title))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}
