// Package rew renders parsed MSO filters into REW/StormAudio filter
// settings documents: type selection, output renumbering, per-type line
// formatting, and per-channel document assembly.
package rew

import (
	"fmt"
	"time"

	"github.com/mikkopa/mso-rew-converter/internal/mso"
)

// Options configures one conversion run.
type Options struct {
	// QType selects which Q parameter Bell filters render: rbj or classic.
	QType mso.QType

	// IncludedTypes and ExcludedTypes filter by case-insensitive substring
	// match against the source type text. A filter is kept iff its type
	// matches an included entry and no excluded entry; exclusion wins when
	// a type matches both. That priority is deliberate and load-bearing for
	// compatibility with existing configurations.
	IncludedTypes []string
	ExcludedTypes []string

	// CombineShared merges shared sub filters into each channel document,
	// shared filters first, instead of emitting a separate shared document.
	CombineShared bool

	// EqualiserName is written verbatim into each document header.
	EqualiserName string

	// Timestamp is used for the Dated header line. Zero means time.Now().
	Timestamp time.Time
}

// DefaultOptions returns the stock conversion configuration. Gain and Delay
// blocks are excluded because they have no counterpart in the destination
// EQ filter format.
func DefaultOptions() Options {
	return Options{
		QType:         mso.QTypeRBJ,
		IncludedTypes: []string{"Parametric EQ", "All-Pass"},
		ExcludedTypes: []string{"Gain Block", "Delay Block"},
		CombineShared: false,
		EqualiserName: "StormAudio",
	}
}

// Validate checks the options for API-boundary contract violations. Content
// problems are never errors; an unrecognized Q mode is.
func (o Options) Validate() error {
	if !o.QType.Valid() {
		return fmt.Errorf("unknown q type %q (supported: %s, %s)", o.QType, mso.QTypeRBJ, mso.QTypeClassic)
	}
	return nil
}
