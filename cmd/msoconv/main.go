package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikkopa/mso-rew-converter/internal/cli"
	"github.com/mikkopa/mso-rew-converter/internal/mso"
	"github.com/mikkopa/mso-rew-converter/internal/preset"
	"github.com/mikkopa/mso-rew-converter/internal/report"
	"github.com/mikkopa/mso-rew-converter/internal/rew"
	"github.com/mikkopa/mso-rew-converter/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface. Option flags have no kong
// defaults on purpose: defaults come from rew.DefaultOptions, then an
// optional preset file, then any flag the user actually set.
type CLI struct {
	Version       bool     `short:"v" help:"Show version information"`
	Equaliser     string   `help:"Equaliser name written to document headers (default: StormAudio)"`
	QType         string   `name:"q-type" help:"Q value type to use: rbj or classic (default: rbj)"`
	IncludeTypes  []string `help:"Filter types to include (default: \"Parametric EQ\",\"All-Pass\")"`
	ExcludeTypes  []string `help:"Filter types to exclude; exclusion wins over inclusion (default: \"Gain Block\",\"Delay Block\")"`
	CombineShared bool     `help:"Merge shared sub filters into each channel file, shared filters first"`
	Preset        string   `type:"existingfile" help:"YAML preset file with conversion options"`
	Logs          bool     `help:"Write a conversion report file into the output folder"`
	Review        bool     `help:"Open an interactive review of the converted documents"`
	Input         string   `arg:"" name:"input-file" optional:"" type:"existingfile" help:"MSO filter report file"`
	Output        string   `arg:"" name:"output-folder" optional:"" help:"Output folder for the converted files"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("msoconv"),
		kong.Description("Convert MSO filter reports to REW/StormAudio filter settings files"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate input
	if cliArgs.Input == "" || cliArgs.Output == "" {
		cli.PrintError("Input file and output folder are required")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	opts, err := buildOptions(cliArgs)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	content, err := os.ReadFile(cliArgs.Input)
	if err != nil {
		cli.PrintError(fmt.Sprintf("Cannot read input file: %v", err))
		os.Exit(1)
	}

	startTime := time.Now()
	result, err := rew.Convert(string(content), opts)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if err := writeDocuments(result, cliArgs.Output); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	printSummary(result, cliArgs.Output)

	if cliArgs.Logs {
		data := report.Data{
			InputPath:    cliArgs.Input,
			OutputFolder: cliArgs.Output,
			StartTime:    startTime,
			EndTime:      time.Now(),
			Options:      opts,
			Result:       result,
		}
		if err := report.Generate(data); err != nil {
			cli.PrintError(fmt.Sprintf("Failed to write report: %v", err))
		}
	}

	if cliArgs.Review {
		p := tea.NewProgram(ui.NewModel(result), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			cli.PrintError(fmt.Sprintf("Review UI error: %v", err))
			os.Exit(1)
		}
	}
}

// buildOptions layers the conversion options: defaults, then the preset
// file, then explicitly set flags.
func buildOptions(cliArgs *CLI) (rew.Options, error) {
	opts := rew.DefaultOptions()

	if cliArgs.Preset != "" {
		p, err := preset.Load(cliArgs.Preset)
		if err != nil {
			return rew.Options{}, err
		}
		opts = p.Apply(opts)
	}

	if cliArgs.Equaliser != "" {
		opts.EqualiserName = cliArgs.Equaliser
	}
	if cliArgs.QType != "" {
		opts.QType = mso.QType(cliArgs.QType)
	}
	if cliArgs.IncludeTypes != nil {
		opts.IncludedTypes = cliArgs.IncludeTypes
	}
	if cliArgs.ExcludeTypes != nil {
		opts.ExcludedTypes = cliArgs.ExcludeTypes
	}
	if cliArgs.CombineShared {
		opts.CombineShared = true
	}

	return opts, opts.Validate()
}

// writeDocuments persists every output document into the output folder.
func writeDocuments(result *rew.Result, outputFolder string) error {
	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	docs := result.Documents
	if result.Shared != nil {
		docs = append(append([]rew.Document{}, docs...), *result.Shared)
	}
	for _, doc := range docs {
		path := filepath.Join(outputFolder, doc.Name)
		if err := os.WriteFile(path, []byte(doc.Text), 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", doc.Name, err)
		}
	}
	return nil
}

// printSummary echoes the processing log and totals to the console.
func printSummary(result *rew.Result, outputFolder string) {
	fmt.Println(cli.TitleStyle.Render("msoconv"))

	for _, entry := range result.Log {
		fmt.Println(cli.MutedStyle.Render("  " + entry))
	}

	fmt.Println()
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Filters found:"), cli.ValueStyle.Render(fmt.Sprintf("%d", result.Encountered)))
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Filters exported:"), cli.ValueStyle.Render(fmt.Sprintf("%d", result.Exported)))
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Output folder:"), cli.ValueStyle.Render(outputFolder))
	fmt.Println(cli.SuccessStyle.Render("Conversion complete"))
}
