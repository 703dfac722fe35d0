package client

import (
	"cmp"
	"slices"

	"github.com/YabaiTech/YAPM/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// shortIDLen is how much of a record ID the table shows. Any unique prefix
// is accepted back.
const shortIDLen = 8

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Faint(true)
)

// sortEntries orders entries by URL, then username. The table and the
// vault screen cursor both use this order.
func sortEntries(entries []models.Entry) []models.Entry {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b models.Entry) int {
		return cmp.Or(cmp.Compare(a.URL, b.URL), cmp.Compare(a.Username, b.Username))
	})
	return sorted
}

// renderEntries draws entries as a table ordered by URL, then username.
// The password column is only added when showPasswords is set.
func renderEntries(entries []models.Entry, showPasswords bool) string {
	return entryTable(sortEntries(entries), showPasswords, -1)
}

// entryTable draws already sorted entries and highlights row selected.
func entryTable(sorted []models.Entry, showPasswords bool, selected int) string {
	headers := []string{"ID", "URL", "USERNAME"}
	if showPasswords {
		headers = append(headers, "PASSWORD")
	}

	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		row := []string{shortID(e.ID), e.URL, e.Username}
		if showPasswords {
			row = append(row, e.Password)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case selected:
				return selectedStyle
			}
			return cellStyle
		})

	return t.String()
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
