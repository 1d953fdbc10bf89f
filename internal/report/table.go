// Package report generates the conversion report file for a completed run.
// This file contains reusable table formatting infrastructure for the
// per-channel summary table.

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikkopa/mso-rew-converter/internal/rew"
)

// MissingValue is rendered for channels without an output document.
const MissingValue = "-"

// SummaryTable formats aligned columns of per-channel conversion results.
type SummaryTable struct {
	Rows []rew.ChannelStat
}

// String renders the table with aligned columns.
// - Channel names and document names are left-aligned
// - Counts are right-aligned within their column
func (t *SummaryTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	headers := []string{"Channel", "Parsed", "Exported", "Document"}

	channelWidth := len(headers[0])
	parsedWidth := len(headers[1])
	exportedWidth := len(headers[2])
	for _, row := range t.Rows {
		if len(row.Channel) > channelWidth {
			channelWidth = len(row.Channel)
		}
		if w := len(strconv.Itoa(row.Parsed)); w > parsedWidth {
			parsedWidth = w
		}
		if w := len(strconv.Itoa(row.Exported)); w > exportedWidth {
			exportedWidth = w
		}
	}

	var sb strings.Builder

	// Header row
	sb.WriteString(fmt.Sprintf("%-*s  %*s  %*s  %s\n",
		channelWidth, headers[0],
		parsedWidth, headers[1],
		exportedWidth, headers[2],
		headers[3]))

	// Data rows
	for _, row := range t.Rows {
		doc := row.Document
		if doc == "" {
			doc = MissingValue
		}
		sb.WriteString(fmt.Sprintf("%-*s  %*d  %*d  %s\n",
			channelWidth, row.Channel,
			parsedWidth, row.Parsed,
			exportedWidth, row.Exported,
			doc))
	}

	return sb.String()
}
