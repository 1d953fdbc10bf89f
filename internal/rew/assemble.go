package rew

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikkopa/mso-rew-converter/internal/mso"
)

// SharedDocumentName is the file name of the standalone shared sub document.
const SharedDocumentName = "shared_sub_filters.txt"

// sharedDisplayName is the Channel header value in the shared document.
const sharedDisplayName = "Shared Sub"

// Document is one named output document ready to be written by the caller.
type Document struct {
	// Name is the output file name, e.g. "FL_filters.txt".
	Name string

	// Channel is the display name written to the document header.
	Channel string

	// Text is the full document content.
	Text string

	// Filters is the number of filter lines in the document.
	Filters int
}

// ChannelStat summarises one channel's conversion for reporting.
type ChannelStat struct {
	Channel  string
	Parsed   int    // filter records parsed from the channel's blocks
	Exported int    // filter lines written to the channel's document
	Document string // output document name, empty when nothing was exported
}

// Result is the complete outcome of one conversion run.
type Result struct {
	// Documents holds one document per channel with exported filters, in
	// channel appearance order.
	Documents []Document

	// Shared is the standalone shared sub document. Nil when there is no
	// shared block, when it exports no filters, or when CombineShared
	// folded the shared filters into the channel documents.
	Shared *Document

	// Channels holds per-channel conversion statistics in appearance
	// order, including channels that exported nothing. The shared group
	// appears last when a shared block exists.
	Channels []ChannelStat

	// Log is the ordered processing log: counts per channel plus every
	// skip reason from block extraction, parsing, and rendering.
	Log []string

	// Encountered counts every filter record parsed across all blocks.
	// Exported counts every filter line written across all documents; with
	// CombineShared the shared filters count once per channel document.
	Encountered int
	Exported    int
}

// Convert runs the full pipeline on one MSO filter report: block extraction,
// per-block filter parsing, selection/formatting per document, and document
// assembly. Malformed content degrades gracefully into log entries; the only
// error is an invalid Options value.
func Convert(content string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	res.Log = append(res.Log, fmt.Sprintf("using Q type: %s", strings.ToUpper(string(opts.QType))))
	if len(opts.IncludedTypes) > 0 {
		res.Log = append(res.Log, "included filter types: "+strings.Join(opts.IncludedTypes, ", "))
	}
	if len(opts.ExcludedTypes) > 0 {
		res.Log = append(res.Log, "excluded filter types: "+strings.Join(opts.ExcludedTypes, ", "))
	}

	blocks, sharedBlock, extractLog := mso.ExtractBlocks(content)
	res.Log = append(res.Log, extractLog...)
	if len(blocks) == 0 && sharedBlock == nil {
		res.Log = append(res.Log, "no channel blocks found in input")
	}

	// Group blocks by channel label, preserving first-appearance order. A
	// label defined by two separate block pairs contributes both blocks'
	// filters, concatenated in appearance order.
	var order []string
	byChannel := make(map[string][]mso.Filter)
	for _, block := range blocks {
		filters, parseLog := mso.ParseBlock(block)
		res.Log = append(res.Log, parseLog...)
		res.Encountered += len(filters)
		if _, ok := byChannel[block.Channel]; !ok {
			order = append(order, block.Channel)
		}
		byChannel[block.Channel] = append(byChannel[block.Channel], filters...)
	}

	var sharedFilters []mso.Filter
	if sharedBlock != nil {
		var parseLog []string
		sharedFilters, parseLog = mso.ParseBlock(*sharedBlock)
		res.Log = append(res.Log, parseLog...)
		res.Encountered += len(sharedFilters)
	}
	combining := opts.CombineShared && len(sharedFilters) > 0
	if combining {
		res.Log = append(res.Log, fmt.Sprintf("combining %d shared sub filters with individual channel filters", len(sharedFilters)))
		// Render once so shared-filter skip reasons are logged exactly once,
		// not repeated per channel document.
		_, sharedLog := FormatFilters(sharedFilters, opts)
		res.Log = append(res.Log, sharedLog...)
	}

	for _, channel := range order {
		filters := byChannel[channel]
		ownLines, formatLog := FormatFilters(filters, opts)
		res.Log = append(res.Log, formatLog...)
		// A channel must contribute at least one kept filter of its own to
		// get a document; shared filters alone never create one.
		if len(ownLines) == 0 {
			res.Channels = append(res.Channels, ChannelStat{Channel: channel, Parsed: len(filters)})
			res.Log = append(res.Log, fmt.Sprintf("channel %s: no filters exported", channel))
			continue
		}
		lines := ownLines
		if combining {
			// Shared filters occupy the lowest output indices.
			combined := append(append([]mso.Filter{}, sharedFilters...), filters...)
			lines, _ = FormatFilters(combined, opts)
		}
		doc := Document{
			Name:    channel + "_filters.txt",
			Channel: channel,
			Text:    documentText(channel, lines, opts),
			Filters: len(lines),
		}
		res.Documents = append(res.Documents, doc)
		res.Channels = append(res.Channels, ChannelStat{
			Channel:  channel,
			Parsed:   len(filters),
			Exported: len(lines),
			Document: doc.Name,
		})
		res.Exported += len(lines)
		if combining {
			res.Log = append(res.Log, fmt.Sprintf("channel %s: %d shared + %d channel filters exported to %s",
				channel, len(lines)-len(ownLines), len(ownLines), doc.Name))
		} else {
			res.Log = append(res.Log, fmt.Sprintf("channel %s: %d filters exported to %s", channel, len(lines), doc.Name))
		}
	}

	if sharedBlock != nil {
		stat := ChannelStat{Channel: sharedDisplayName, Parsed: len(sharedFilters)}
		if !opts.CombineShared && len(sharedFilters) > 0 {
			lines, formatLog := FormatFilters(sharedFilters, opts)
			res.Log = append(res.Log, formatLog...)
			if len(lines) > 0 {
				res.Shared = &Document{
					Name:    SharedDocumentName,
					Channel: sharedDisplayName,
					Text:    documentText(sharedDisplayName, lines, opts),
					Filters: len(lines),
				}
				stat.Exported = len(lines)
				stat.Document = SharedDocumentName
				res.Exported += len(lines)
				res.Log = append(res.Log, fmt.Sprintf("shared sub: %d filters exported to %s", len(lines), SharedDocumentName))
			} else {
				res.Log = append(res.Log, "shared sub: no filters exported")
			}
		}
		res.Channels = append(res.Channels, stat)
	}

	if res.Encountered == 0 {
		res.Log = append(res.Log, "no filters found in input")
	}

	return res, nil
}

// documentText assembles one output document: the REW filter settings
// header followed by the rendered filter lines.
func documentText(channel string, lines []string, opts Options) string {
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString("Filter Settings file\n\n")
	fmt.Fprintf(&b, "Dated:%s\n\n", ts.Format("20060102"))
	fmt.Fprintf(&b, "Equaliser: %s\n", opts.EqualiserName)
	if channel != "" {
		fmt.Fprintf(&b, "Channel: %s\n", channel)
	}
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
