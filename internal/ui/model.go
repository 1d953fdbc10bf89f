// Package ui provides the Bubbletea review interface for browsing the
// documents and processing log of a finished conversion.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikkopa/mso-rew-converter/internal/rew"
)

// Model is the Bubbletea model for the review pager. Conversion has already
// finished when the pager opens; the model is a read-only view over the
// result.
type Model struct {
	// Documents under review, shared document last when present
	Docs []rew.Document

	// Processing log from the conversion
	Log []string

	// Navigation state
	Selected int  // index into Docs
	ShowLog  bool // content pane shows the log instead of a document
	Scroll   int  // first visible content line

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a review model over a conversion result.
func NewModel(result *rew.Result) Model {
	docs := append([]rew.Document{}, result.Documents...)
	if result.Shared != nil {
		docs = append(docs, *result.Shared)
	}
	return Model{
		Docs: docs,
		Log:  result.Log,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if !m.ShowLog && m.Selected > 0 {
				m.Selected--
				m.Scroll = 0
			}
		case "down", "j":
			if !m.ShowLog && m.Selected < len(m.Docs)-1 {
				m.Selected++
				m.Scroll = 0
			}
		case "tab":
			m.ShowLog = !m.ShowLog
			m.Scroll = 0
		case "pgup", "u":
			m.Scroll -= m.contentHeight()
			if m.Scroll < 0 {
				m.Scroll = 0
			}
		case "pgdown", "d":
			m.Scroll += m.contentHeight()
			if max := m.maxScroll(); m.Scroll > max {
				m.Scroll = max
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if max := m.maxScroll(); m.Scroll > max {
			m.Scroll = max
		}
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading review...\n"
	}
	return renderReview(m)
}

// contentLines returns the lines of whatever the content pane shows.
func (m Model) contentLines() []string {
	if m.ShowLog {
		return m.Log
	}
	if len(m.Docs) == 0 {
		return []string{"No documents were produced."}
	}
	return strings.Split(strings.TrimRight(m.Docs[m.Selected].Text, "\n"), "\n")
}

// contentHeight is the number of content lines visible in the pane.
func (m Model) contentHeight() int {
	// Header, document list, footer, and pane border eat the rest.
	h := m.Height - len(m.Docs) - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) maxScroll() int {
	max := len(m.contentLines()) - m.contentHeight()
	if max < 0 {
		max = 0
	}
	return max
}
