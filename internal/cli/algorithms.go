package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isocheck/pkg/iso"
)

// algorithmsCommand creates the algorithms command.
func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available isomorphism engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), algorithmsTable(iso.Algorithms(), c.Config.Algorithm))
			return nil
		},
	}
}

// algorithmsTable renders the engines, marking the configured default.
func algorithmsTable(infos []iso.Info, current string) string {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		name := info.Name
		if name == current {
			name += " *"
		}
		rows[i] = []string{name, strings.Join(info.Aliases, ", "), exactness(info.Exact), info.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Algorithm", "Also known as", "Verdict", "Method").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 2 && !infos[row].Exact:
				return StyleWarning
			default:
				return StyleValue
			}
		}).
		Render()
}
