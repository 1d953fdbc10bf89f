package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#005FAF"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AA00"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#005FAF")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// renderReview renders the whole review screen
func renderReview(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	b.WriteString(renderDocumentList(m))
	b.WriteString("\n")

	b.WriteString(renderContentPane(m))
	b.WriteString("\n")

	b.WriteString(renderFooter(m))

	return b.String()
}

// renderHeader renders the title and document count
func renderHeader(m Model) string {
	title := titleStyle.Render("msoconv - Conversion Review")
	subtitle := subtitleStyle.Render(fmt.Sprintf("%d document(s), %d log entries", len(m.Docs), len(m.Log)))
	return title + "\n" + subtitle
}

// renderDocumentList renders the selectable list of output documents
func renderDocumentList(m Model) string {
	if len(m.Docs) == 0 {
		return subtitleStyle.Render(" (no documents)")
	}

	var b strings.Builder
	for i, doc := range m.Docs {
		entry := fmt.Sprintf("%s (%d filters)", doc.Name, doc.Filters)
		if i == m.Selected && !m.ShowLog {
			b.WriteString(" " + selectedStyle.Render("▸ "+entry))
		} else {
			b.WriteString("   " + entry)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderContentPane renders the selected document or the processing log
func renderContentPane(m Model) string {
	lines := m.contentLines()
	height := m.contentHeight()

	from := m.Scroll
	if from > len(lines) {
		from = len(lines)
	}
	to := from + height
	if to > len(lines) {
		to = len(lines)
	}

	title := "Processing Log"
	if !m.ShowLog && len(m.Docs) > 0 {
		title = m.Docs[m.Selected].Name
	}
	if len(lines) > height {
		title += fmt.Sprintf("  [%d-%d/%d]", from+1, to, len(lines))
	}

	width := m.Width - 4
	if width < 20 {
		width = 20
	}

	content := subtitleStyle.Render(title) + "\n" + strings.Join(lines[from:to], "\n")
	return paneStyle.Width(width).Render(content)
}

// renderFooter renders the key hints
func renderFooter(m Model) string {
	view := "log"
	if m.ShowLog {
		view = "documents"
	}
	return footerStyle.Render(fmt.Sprintf(" ↑/↓ select · u/d scroll · tab %s · q quit", view))
}
