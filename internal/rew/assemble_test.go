package rew

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikkopa/mso-rew-converter/internal/mso"
)

const sampleChannel = `Channel: "FL"
FL1: Parametric EQ (RBJ)
Parameter "Center freq (Hz)" = 52.9284
Parameter "Boost (dB)" = -2.56499
Parameter "Q (RBJ)" = 11.0387
FL9: All-Pass Second-Order
Parameter "Freq of 180 deg phase (Hz)" = 32.1576
Parameter "All-pass Q" = 0.500044
End Channel: "FL"
`

const sampleShared = `Shared sub channel:
SW1: Parametric EQ (RBJ)
Parameter "Center freq (Hz)" = 40.5
Parameter "Boost (dB)" = -4.25
Parameter "Q (RBJ)" = 3.2
End shared sub channel
`

func testOptions() Options {
	opts := DefaultOptions()
	opts.Timestamp = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return opts
}

func TestConvertEndToEnd(t *testing.T) {
	result, err := Convert(sampleChannel, testOptions())
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, "FL_filters.txt", doc.Name)
	assert.Equal(t, "FL", doc.Channel)
	assert.Equal(t, 2, doc.Filters)

	assert.Contains(t, doc.Text, "Filter 1: ON Bell Fc 52.9284 Hz Gain -2.56499 dB Q 11.0387\n")
	assert.Contains(t, doc.Text, "Filter 2: ON All Pass Order 2 Fc 32.1576 Hz Gain 0 dB Q 0.500044\n")

	assert.Equal(t, 2, result.Encountered)
	assert.Equal(t, 2, result.Exported)
	assert.Nil(t, result.Shared)
}

func TestConvertDocumentHeader(t *testing.T) {
	result, err := Convert(sampleChannel, testOptions())
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)

	text := result.Documents[0].Text
	assert.True(t, strings.HasPrefix(text, "Filter Settings file\n\n"))
	assert.Contains(t, text, "Dated:20240115\n")
	assert.Contains(t, text, "Equaliser: StormAudio\n")
	assert.Contains(t, text, "Channel: FL\n")
}

func TestConvertSharedSeparate(t *testing.T) {
	result, err := Convert(sampleChannel+sampleShared, testOptions())
	require.NoError(t, err)

	require.NotNil(t, result.Shared)
	assert.Equal(t, SharedDocumentName, result.Shared.Name)
	assert.Equal(t, "Shared Sub", result.Shared.Channel)
	assert.Equal(t, 1, result.Shared.Filters)
	assert.Contains(t, result.Shared.Text, "Filter 1: ON Bell Fc 40.5 Hz Gain -4.25 dB Q 3.2\n")
	assert.Contains(t, result.Shared.Text, "Channel: Shared Sub\n")

	assert.Equal(t, 3, result.Encountered)
	assert.Equal(t, 3, result.Exported)
}

func TestConvertCombineShared(t *testing.T) {
	opts := testOptions()
	opts.CombineShared = true

	result, err := Convert(sampleChannel+sampleShared, opts)
	require.NoError(t, err)

	assert.Nil(t, result.Shared, "combined runs emit no standalone shared document")
	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, 3, doc.Filters)

	// Shared filters occupy the lowest output indices, numbering continuous.
	assert.Contains(t, doc.Text, "Filter 1: ON Bell Fc 40.5 Hz Gain -4.25 dB Q 3.2\n")
	assert.Contains(t, doc.Text, "Filter 2: ON Bell Fc 52.9284 Hz Gain -2.56499 dB Q 11.0387\n")
	assert.Contains(t, doc.Text, "Filter 3: ON All Pass Order 2 Fc 32.1576 Hz Gain 0 dB Q 0.500044\n")

	assert.Equal(t, 3, result.Encountered)
	assert.Equal(t, 3, result.Exported)
}

func TestConvertClassicQOnlyFilterSkippedInBothModes(t *testing.T) {
	input := `Channel: "FL"
FL1: Parametric EQ (RBJ)
Parameter "Center freq (Hz)" = 52.9284
Parameter "Boost (dB)" = -2.56499
"Classic" Q = 10.9384
End Channel: "FL"
`
	rbjOpts := testOptions()
	classicOpts := testOptions()
	classicOpts.QType = mso.QTypeClassic

	rbjResult, err := Convert(input, rbjOpts)
	require.NoError(t, err)
	classicResult, err := Convert(input, classicOpts)
	require.NoError(t, err)

	// A filter without Q (RBJ) is skipped under both modes, so switching
	// modes never changes how many filters a document exports.
	assert.Equal(t, rbjResult.Exported, classicResult.Exported)
	assert.Equal(t, 0, rbjResult.Exported)
	assert.Empty(t, rbjResult.Documents)
	assert.Empty(t, classicResult.Documents)
	assert.Contains(t, strings.Join(classicResult.Log, "\n"), "no usable Q value")
}

func TestConvertMalformedBoundaryResilience(t *testing.T) {
	// FR lacks its end marker; FL must still convert.
	input := `Channel: "FR"
FR1: Parametric EQ (RBJ)
` + sampleChannel

	result, err := Convert(input, testOptions())
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "FL_filters.txt", result.Documents[0].Name)

	found := false
	for _, entry := range result.Log {
		if strings.Contains(entry, `"FR"`) && strings.Contains(entry, "skipped") {
			found = true
		}
	}
	assert.True(t, found, "log must name the skipped FR block: %v", result.Log)
}

func TestConvertAllExcludedChannelEmitsNoDocument(t *testing.T) {
	opts := testOptions()
	opts.ExcludedTypes = []string{"Parametric EQ", "All-Pass"}

	result, err := Convert(sampleChannel, opts)
	require.NoError(t, err)

	assert.Empty(t, result.Documents)
	assert.Equal(t, 2, result.Encountered)
	assert.Equal(t, 0, result.Exported)
	assert.Contains(t, strings.Join(result.Log, "\n"), "channel FL: no filters exported")
}

func TestConvertEmptyInput(t *testing.T) {
	result, err := Convert("", testOptions())
	require.NoError(t, err)

	assert.Empty(t, result.Documents)
	assert.Nil(t, result.Shared)
	assert.Equal(t, 0, result.Encountered)
	assert.Equal(t, 0, result.Exported)

	joined := strings.Join(result.Log, "\n")
	assert.Contains(t, joined, "no channel blocks found")
	assert.Contains(t, joined, "no filters found")
}

func TestConvertInvalidQType(t *testing.T) {
	opts := testOptions()
	opts.QType = mso.QType("butterworth")

	result, err := Convert(sampleChannel, opts)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "butterworth")
}

func TestConvertCombineSharedSkipsChannelWithNoOwnFilters(t *testing.T) {
	input := sampleChannel + `Channel: "SW2"
SW21: Gain Block
Parameter "Gain (dB)" = -3.5
End Channel: "SW2"
` + sampleShared
	opts := testOptions()
	opts.CombineShared = true

	result, err := Convert(input, opts)
	require.NoError(t, err)

	// SW2 contributes no kept filters of its own, so the shared filters
	// alone must not produce a document for it.
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "FL_filters.txt", result.Documents[0].Name)

	var sw2 ChannelStat
	for _, stat := range result.Channels {
		if stat.Channel == "SW2" {
			sw2 = stat
		}
	}
	assert.Equal(t, ChannelStat{Channel: "SW2", Parsed: 1}, sw2)
	assert.Contains(t, strings.Join(result.Log, "\n"), "channel SW2: no filters exported")
}

func TestConvertChannelStats(t *testing.T) {
	result, err := Convert(sampleChannel+sampleShared, testOptions())
	require.NoError(t, err)

	require.Len(t, result.Channels, 2)
	assert.Equal(t, ChannelStat{Channel: "FL", Parsed: 2, Exported: 2, Document: "FL_filters.txt"}, result.Channels[0])
	assert.Equal(t, ChannelStat{Channel: "Shared Sub", Parsed: 1, Exported: 1, Document: SharedDocumentName}, result.Channels[1])
}

func TestConvertDuplicateChannelLabelConcatenates(t *testing.T) {
	input := sampleChannel + `Channel: "FL"
FL2: Parametric EQ (RBJ)
Parameter "Center freq (Hz)" = 95.1
Parameter "Boost (dB)" = 1.25
Parameter "Q (RBJ)" = 2.5
End Channel: "FL"
`
	result, err := Convert(input, testOptions())
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, 3, doc.Filters)
	assert.Contains(t, doc.Text, "Filter 3: ON Bell Fc 95.1 Hz Gain 1.25 dB Q 2.5\n")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, mso.QTypeRBJ, opts.QType)
	assert.Equal(t, []string{"Parametric EQ", "All-Pass"}, opts.IncludedTypes)
	assert.Equal(t, []string{"Gain Block", "Delay Block"}, opts.ExcludedTypes)
	assert.False(t, opts.CombineShared)
	assert.Equal(t, "StormAudio", opts.EqualiserName)
	assert.NoError(t, opts.Validate())
}
