package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikkopa/mso-rew-converter/internal/rew"
)

// Data contains everything needed to generate a conversion report
type Data struct {
	InputPath    string
	OutputFolder string
	StartTime    time.Time
	EndTime      time.Time
	Options      rew.Options
	Result       *rew.Result
}

// Generate creates a conversion report next to the output documents.
// The report filename is msoconv-<input>.log inside the output folder.
//
// Report structure:
// 1. Header - input/output paths and timestamp
// 2. Configuration - the options the run used
// 3. Channel Summary - aligned per-channel table
// 4. Processing Log - every diagnostic from the pipeline
// 5. Totals
func Generate(data Data) error {
	base := strings.TrimSuffix(filepath.Base(data.InputPath), filepath.Ext(data.InputPath))
	logPath := filepath.Join(data.OutputFolder, "msoconv-"+base+".log")

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	writeHeader(f, data)
	writeConfiguration(f, data.Options)
	writeChannelSummary(f, data.Result)
	writeProcessingLog(f, data.Result)
	writeTotals(f, data.Result)

	return nil
}

func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

func writeHeader(f *os.File, data Data) {
	writeSection(f, "MSO to REW Conversion Report")
	fmt.Fprintf(f, "Input:     %s\n", data.InputPath)
	fmt.Fprintf(f, "Output:    %s\n", data.OutputFolder)
	fmt.Fprintf(f, "Generated: %s\n", data.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Duration:  %s\n", data.EndTime.Sub(data.StartTime).Round(time.Millisecond))
	fmt.Fprintln(f)
}

func writeConfiguration(f *os.File, opts rew.Options) {
	writeSection(f, "Configuration")
	fmt.Fprintf(f, "Q type:         %s\n", strings.ToUpper(string(opts.QType)))
	fmt.Fprintf(f, "Included types: %s\n", strings.Join(opts.IncludedTypes, ", "))
	fmt.Fprintf(f, "Excluded types: %s\n", strings.Join(opts.ExcludedTypes, ", "))
	fmt.Fprintf(f, "Combine shared: %t\n", opts.CombineShared)
	fmt.Fprintf(f, "Equaliser:      %s\n", opts.EqualiserName)
	fmt.Fprintln(f)
}

func writeChannelSummary(f *os.File, result *rew.Result) {
	if result == nil || len(result.Channels) == 0 {
		return
	}
	writeSection(f, "Channel Summary")
	table := &SummaryTable{Rows: result.Channels}
	fmt.Fprint(f, table.String())
	fmt.Fprintln(f)
}

func writeProcessingLog(f *os.File, result *rew.Result) {
	if result == nil || len(result.Log) == 0 {
		return
	}
	writeSection(f, "Processing Log")
	for _, entry := range result.Log {
		fmt.Fprintln(f, entry)
	}
	fmt.Fprintln(f)
}

func writeTotals(f *os.File, result *rew.Result) {
	if result == nil {
		return
	}
	writeSection(f, "Totals")
	fmt.Fprintf(f, "Filters found:    %d\n", result.Encountered)
	fmt.Fprintf(f, "Filters exported: %d\n", result.Exported)
	docs := len(result.Documents)
	if result.Shared != nil {
		docs++
	}
	fmt.Fprintf(f, "Documents:        %d\n", docs)
}
