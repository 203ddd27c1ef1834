package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/isocheck/pkg/iso"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// AlgorithmListModel - Interactive algorithm selection
// =============================================================================

// AlgorithmListModel is the bubbletea model for picking an engine.
type AlgorithmListModel struct {
	Algorithms []iso.Info
	Cursor     int
	Selected   *iso.Info
}

// NewAlgorithmListModel creates a picker with the cursor on current, or on
// the first entry when current is not listed.
func NewAlgorithmListModel(algorithms []iso.Info, current string) AlgorithmListModel {
	m := AlgorithmListModel{Algorithms: algorithms}
	for i, a := range algorithms {
		if a.Name == current {
			m.Cursor = i
		}
	}
	return m
}

func (m AlgorithmListModel) Init() tea.Cmd {
	return nil
}

func (m AlgorithmListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Algorithms)-1 {
				m.Cursor++
			}
		case "enter":
			info := m.Algorithms[m.Cursor]
			m.Selected = &info
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m AlgorithmListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Algorithm"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Algorithms))
	for i, a := range m.Algorithms {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, a.Name, strings.Join(a.Aliases, ", "), exactness(a.Exact)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Algorithm", "Also known as", "Verdict").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return listSelectedStyle
			case col >= 2:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.Cursor < len(m.Algorithms) {
		b.WriteString(listDimStyle.Render("  " + m.Algorithms[m.Cursor].Description))
	}
	b.WriteString("\n")
	return b.String()
}

func exactness(exact bool) string {
	if exact {
		return "exact"
	}
	return "heuristic"
}

// pickAlgorithm runs the picker and returns the chosen engine name.
func pickAlgorithm(current string) (string, error) {
	model := NewAlgorithmListModel(iso.Algorithms(), current)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("algorithm picker: %w", err)
	}
	m, ok := final.(AlgorithmListModel)
	if !ok || m.Selected == nil {
		return "", errPickerAborted
	}
	return m.Selected.Name, nil
}
