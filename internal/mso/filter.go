// Package mso parses Multi-Sub Optimizer filter reports into per-channel
// filter records using a two-stage scan: block extraction, then line-level
// filter parsing within each block.
package mso

import "strings"

// FilterType identifies a filter in the MSO source vocabulary
type FilterType string

// Known filter types from the MSO filter report vocabulary
const (
	TypeParametricEQ FilterType = "Parametric EQ"
	TypeAllPass      FilterType = "All-Pass"
	TypeGainBlock    FilterType = "Gain Block"
	TypeDelayBlock   FilterType = "Delay Block"
	TypeUnknown      FilterType = "Unknown"
)

// typeVocabulary maps source type text to a FilterType by case-insensitive
// substring match. Adding a filter type is a data change here, not a logic
// change in the parser. Order matters: first match wins.
var typeVocabulary = []struct {
	Type  FilterType
	Match string
}{
	{TypeParametricEQ, "parametric eq"},
	{TypeAllPass, "all-pass"},
	{TypeGainBlock, "gain block"},
	{TypeDelayBlock, "delay block"},
}

// ClassifyType resolves the verbatim type text of a filter header line
// against the known vocabulary. Unrecognized text yields TypeUnknown; such
// filters are passed through and left to the selection stage.
func ClassifyType(text string) FilterType {
	lower := strings.ToLower(text)
	for _, entry := range typeVocabulary {
		if strings.Contains(lower, entry.Match) {
			return entry.Type
		}
	}
	return TypeUnknown
}

// Parameter names as they appear quoted in the source. ParamClassicQ is the
// storage key for the unquoted `"Classic" Q = <n>` syntax, which uses a
// different label form than the Parameter "..." entries.
const (
	ParamCenterFreq  = "Center freq (Hz)"
	ParamBoost       = "Boost (dB)"
	ParamQRBJ        = "Q (RBJ)"
	ParamClassicQ    = "Classic Q"
	ParamAllPassFreq = "Freq of 180 deg phase (Hz)"
	ParamAllPassQ    = "All-pass Q"
)

// QType selects which Q parameter is used when rendering a filter
type QType string

// Supported Q selection modes
const (
	QTypeRBJ     QType = "rbj"
	QTypeClassic QType = "classic"
)

// Valid reports whether q is one of the supported Q selection modes.
func (q QType) Valid() bool {
	return q == QTypeRBJ || q == QTypeClassic
}

// Value is one numeric parameter value. Raw preserves the source literal so
// rendered output carries the exact decimal representation the optimizer
// wrote, without reformatting.
type Value struct {
	Num float64
	Raw string
}

// Filter is one parsed filter record, independent of source text layout.
// Records are built during block parsing and never mutated afterwards.
type Filter struct {
	// Index is the numeric suffix of the source label ("FL9" -> 9). It is
	// not reused as the output filter number; documents renumber from 1.
	Index int

	// Label is the full source label, e.g. "FL9". Used in diagnostics.
	Label string

	// Channel is the channel or shared group the filter was found in.
	Channel string

	// TypeText is the verbatim type text from the header line.
	TypeText string

	// Type is TypeText resolved against the known vocabulary.
	Type FilterType

	// Params maps parameter names to their values. A parameter seen more
	// than once keeps its last occurrence.
	Params map[string]Value
}

// Param looks up a parameter by name.
func (f *Filter) Param(name string) (Value, bool) {
	v, ok := f.Params[name]
	return v, ok
}

// SelectQ returns the Q value to render for the requested mode. Q (RBJ) is
// required in both modes; classic mode merely prefers the "Classic" Q entry
// when present. Requiring Q (RBJ) unconditionally keeps the kept-filter set
// identical across modes, so switching modes only changes rendered Q values,
// never filter counts or ordering. The second return is false when Q (RBJ)
// is absent, in which case the filter is skipped by the formatter.
func (f *Filter) SelectQ(mode QType) (Value, bool) {
	rbj, ok := f.Params[ParamQRBJ]
	if !ok {
		return Value{}, false
	}
	if mode == QTypeClassic {
		if v, ok := f.Params[ParamClassicQ]; ok {
			return v, true
		}
	}
	return rbj, true
}
