package mso

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Line patterns for filter parsing within one block. A header line opens a
// filter record; the two parameter syntaxes attach values to the open record.
// Anything else (blank lines, prose) is ignored.
var (
	headerRe    = regexp.MustCompile(`^\s*([A-Za-z]+)(\d+):\s*(.+?)\s*$`)
	parameterRe = regexp.MustCompile(`^\s*Parameter\s+"([^"]+)"\s*=\s*(\S+)\s*$`)
	classicQRe  = regexp.MustCompile(`(?i)^\s*"Classic"\s+Q\s*=\s*(\S+)\s*$`)

	// Decimal floating point with optional leading sign and decimal point.
	numberRe = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)$`)
)

// ParseBlock extracts the ordered filter records from one block's text. The
// scan is an explicit line-classification loop: header line, parameter line,
// Classic-Q line, or ignored. Filter order follows header order of
// appearance; indices are not resequenced here. A parameter that fails
// numeric parsing is dropped with a log entry, never a fatal error, and a
// parameter seen twice keeps its last occurrence.
func ParseBlock(block Block) (filters []Filter, log []string) {
	var cur *Filter

	flush := func() {
		if cur != nil {
			filters = append(filters, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(block.Text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			index, err := strconv.Atoi(m[2])
			if err != nil {
				log = append(log, fmt.Sprintf("%s: filter label %q has an unusable index, filter skipped", block.Channel, m[1]+m[2]))
				continue
			}
			typeText := m[3]
			cur = &Filter{
				Index:    index,
				Label:    m[1] + m[2],
				Channel:  block.Channel,
				TypeText: typeText,
				Type:     ClassifyType(typeText),
				Params:   make(map[string]Value),
			}
			if cur.Type == TypeUnknown {
				log = append(log, fmt.Sprintf("%s %s: unknown filter type %q", block.Channel, cur.Label, typeText))
			}
			continue
		}

		if m := parameterRe.FindStringSubmatch(line); m != nil {
			log = setParam(cur, block.Channel, m[1], m[2], log)
			continue
		}

		if m := classicQRe.FindStringSubmatch(line); m != nil {
			log = setParam(cur, block.Channel, ParamClassicQ, m[1], log)
			continue
		}
	}
	flush()

	return filters, log
}

// setParam validates and stores one parameter value on the open filter
// record. Values keep their source literal so output preserves the exact
// decimal representation encountered at parse time.
func setParam(cur *Filter, channel, name, raw string, log []string) []string {
	if cur == nil {
		return append(log, fmt.Sprintf("%s: parameter %q before any filter header, dropped", channel, name))
	}
	if !numberRe.MatchString(raw) {
		return append(log, fmt.Sprintf("%s %s: unparseable number %q for %q, dropped", channel, cur.Label, raw, name))
	}
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return append(log, fmt.Sprintf("%s %s: unparseable number %q for %q, dropped", channel, cur.Label, raw, name))
	}
	cur.Params[name] = Value{Num: num, Raw: raw}
	return log
}
