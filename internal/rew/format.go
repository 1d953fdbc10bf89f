package rew

import (
	"fmt"
	"strings"

	"github.com/mikkopa/mso-rew-converter/internal/mso"
)

// renderFunc renders one filter into the text following "Filter <n>: ".
// It returns an error when the filter is missing a parameter required by
// its type; such filters are skipped and logged, never fatal.
type renderFunc func(f mso.Filter, qType mso.QType) (string, error)

// renderers maps each filter type to its line renderer. Types without an
// entry (gain and delay blocks, unknown types) have no destination
// representation and are skipped even when explicitly included.
var renderers = map[mso.FilterType]renderFunc{
	mso.TypeParametricEQ: renderBell,
	mso.TypeAllPass:      renderAllPass,
}

// selected applies the include/exclude policy to one filter's type text.
// Matching is case-insensitive substring matching, and exclusion takes
// precedence over inclusion on conflict.
func selected(typeText string, included, excluded []string) bool {
	lower := strings.ToLower(typeText)
	keep := false
	for _, inc := range included {
		if strings.Contains(lower, strings.ToLower(inc)) {
			keep = true
			break
		}
	}
	if !keep {
		return false
	}
	for _, exc := range excluded {
		if strings.Contains(lower, strings.ToLower(exc)) {
			return false
		}
	}
	return true
}

// FormatFilters selects, renumbers, and renders the filters of one output
// document. Kept filters are renumbered sequentially from 1 in their
// filtered relative order: source indices are never reused as output
// numbers, which avoids gaps and collisions when filters are excluded.
func FormatFilters(filters []mso.Filter, opts Options) (lines []string, log []string) {
	n := 1
	for _, f := range filters {
		if !selected(f.TypeText, opts.IncludedTypes, opts.ExcludedTypes) {
			continue
		}
		render, ok := renderers[f.Type]
		if !ok {
			log = append(log, fmt.Sprintf("%s %s: no output rendering for type %q, skipped", f.Channel, f.Label, f.TypeText))
			continue
		}
		body, err := render(f, opts.QType)
		if err != nil {
			log = append(log, fmt.Sprintf("%s %s: %v, skipped", f.Channel, f.Label, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("Filter %d: %s", n, body))
		n++
	}
	return lines, log
}

// renderBell renders a Parametric EQ filter as a REW Bell filter. A missing
// boost renders as gain 0; a missing frequency or Q is a hard skip.
func renderBell(f mso.Filter, qType mso.QType) (string, error) {
	freq, ok := f.Param(mso.ParamCenterFreq)
	if !ok {
		return "", fmt.Errorf("missing %q", mso.ParamCenterFreq)
	}
	q, ok := f.SelectQ(qType)
	if !ok {
		return "", fmt.Errorf("no usable Q value for mode %q", qType)
	}
	gain := "0"
	if v, ok := f.Param(mso.ParamBoost); ok {
		gain = v.Raw
	}
	return fmt.Sprintf("ON Bell Fc %s Hz Gain %s dB Q %s", freq.Raw, gain, q.Raw), nil
}

// renderAllPass renders an All-Pass filter. All-pass filters have no gain
// concept in the destination format, so the Gain field is always the
// literal 0 regardless of Q mode or any gain-like source parameter.
func renderAllPass(f mso.Filter, _ mso.QType) (string, error) {
	freq, ok := f.Param(mso.ParamAllPassFreq)
	if !ok {
		return "", fmt.Errorf("missing %q", mso.ParamAllPassFreq)
	}
	q, ok := f.Param(mso.ParamAllPassQ)
	if !ok {
		return "", fmt.Errorf("missing %q", mso.ParamAllPassQ)
	}
	return fmt.Sprintf("ON All Pass Order %d Fc %s Hz Gain 0 dB Q %s", allPassOrder(f.TypeText), freq.Raw, q.Raw), nil
}

// allPassOrder derives the filter order from the source type text, e.g.
// "All-Pass Second-Order" -> 2. Unspecified orders default to 2.
func allPassOrder(typeText string) int {
	lower := strings.ToLower(typeText)
	switch {
	case strings.Contains(lower, "first-order"):
		return 1
	case strings.Contains(lower, "third-order"):
		return 3
	case strings.Contains(lower, "fourth-order"):
		return 4
	default:
		return 2
	}
}
