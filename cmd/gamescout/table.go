package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gamescout/internal/detect"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// table renders static rows with per-column widths sized to the content.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func (t *table) addRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) render() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(titleStyle.Render(t.title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	// Width includes the cell padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	for i, h := range t.headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.headers)-1 {
			sb.WriteString(mutedStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(mutedStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// renderGameTable prints one table per detected source.
func renderGameTable(groups []detect.SourceGames) string {
	if len(groups) == 0 {
		return "No game launchers detected.\n"
	}

	var sb strings.Builder
	total := 0
	for _, group := range groups {
		t := &table{
			title:   group.Source.String(),
			headers: []string{"Title", "Install Dir", "Launch"},
		}
		for _, game := range group.Games {
			t.addRow(game.Title, game.InstallDir, strings.Join(game.Launch.Args, " "))
			total++
		}
		sb.WriteString(t.render())
	}
	if total == 0 {
		return "No installed games found.\n"
	}
	return sb.String()
}

// renderSourceTable prints every supported source and its detection state.
func renderSourceTable(all []detect.Launcher) string {
	t := &table{
		title:   "Sources",
		headers: []string{"Source", "Slug", "Installed"},
	}
	for _, l := range all {
		installed := "no"
		if l.Detected() {
			installed = "yes"
		}
		t.addRow(l.Kind().String(), l.Kind().Slug(), installed)
	}
	return t.render()
}
