package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	helpTermStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	helpMetaStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// helpEntry is one left-column term with its right-column description.
type helpEntry struct {
	term string
	desc string
}

// StyledHelpPrinter renders msoconv's help screen with the shared colour
// palette. Terms within a section are padded to a common width before any
// style is applied, since ANSI escapes would throw off the column math.
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpHeadingStyle.Render(ctx.Model.Name))
		sb.WriteString("\n")
		sb.WriteString(helpMetaStyle.Render("Convert MSO filter reports to REW/StormAudio filter settings files"))
		sb.WriteString("\n\n")
		sb.WriteString(helpHeadingStyle.Render("Usage:"))
		sb.WriteString(fmt.Sprintf("\n  %s [flags] <input-file> <output-folder>\n", ctx.Model.Name))

		writeSection(&sb, "Arguments:", argumentEntries(ctx))
		writeSection(&sb, "Flags:", flagEntries(ctx))

		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

// writeSection emits one heading plus its two-column entry table.
func writeSection(sb *strings.Builder, heading string, entries []helpEntry) {
	if len(entries) == 0 {
		return
	}

	width := 0
	for _, e := range entries {
		if len(e.term) > width {
			width = len(e.term)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpHeadingStyle.Render(heading))
	sb.WriteString("\n")
	for _, e := range entries {
		padded := fmt.Sprintf("%-*s", width, e.term)
		sb.WriteString("  ")
		sb.WriteString(helpTermStyle.Render(padded))
		if e.desc != "" {
			sb.WriteString("  ")
			sb.WriteString(e.desc)
		}
		sb.WriteString("\n")
	}
}

func argumentEntries(ctx *kong.Context) []helpEntry {
	var entries []helpEntry
	for _, arg := range ctx.Model.Node.Positional {
		entries = append(entries, helpEntry{term: arg.Summary(), desc: arg.Help})
	}
	return entries
}

func flagEntries(ctx *kong.Context) []helpEntry {
	entries := []helpEntry{{term: "-h, --help", desc: "Show context-sensitive help."}}

	for _, f := range ctx.Model.Node.Flags {
		if f.Name == "help" {
			continue
		}

		term := "--" + f.Name
		if f.Short != 0 {
			term = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		}
		if !f.IsBool() && f.PlaceHolder != "" {
			term += "=" + strings.ToUpper(f.PlaceHolder)
		}

		desc := f.Help
		if def := f.FormatPlaceHolder(); def != "" {
			desc = strings.TrimSpace(desc + " " + helpMetaStyle.Render("(default: "+def+")"))
		}
		entries = append(entries, helpEntry{term: term, desc: desc})
	}
	return entries
}
