package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	phasereport "github.com/thenoetrevino/phaseboard/internal/report"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// Output formats for human-readable mode
const (
	FormatPretty   = "pretty"
	FormatMarkdown = "markdown"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [column-id]",
		Short: "Generate phase reports",
		Long: `Aggregate a phase into a report: card counts, average and top metrics,
variant groups, winning cards and per-member contributions.

Examples:
  # Rendered in the terminal
  phaseboard report hook-testing

  # Every phase, as raw markdown
  phaseboard report --all --format=markdown

  # Write phase-N-report-YYYY-MM-DD.json files
  phaseboard report --all --out=./reports --quiet

  # JSON output for agents
  phaseboard report scaling --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().Bool("all", false, "Report on every phase")
	cmd.Flags().String("format", FormatPretty, "Human output: pretty or markdown")
	cmd.Flags().String("style", "auto", "Glamour style for pretty output (auto, dark, light, notty)")
	cmd.Flags().String("out", "", "Directory to write JSON report files into")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (file paths or phase numbers)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	all, _ := cmd.Flags().GetBool("all")
	format, _ := cmd.Flags().GetString("format")
	style, _ := cmd.Flags().GetString("style")
	outDir, _ := cmd.Flags().GetString("out")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if all == (len(args) > 0) {
		return formatter.Usage("give a column ID or --all, not both",
			"Usage: phaseboard report <column-id> or phaseboard report --all")
	}
	if format != FormatPretty && format != FormatMarkdown {
		return formatter.Usage(fmt.Sprintf("unknown format '%s'", format), "Use --format=pretty or --format=markdown")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return cli.Coded(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	var reports []*phasereport.PhaseReport
	if all {
		reports, err = cliInstance.App.Reports(ctx)
	} else {
		var r *phasereport.PhaseReport
		r, err = cliInstance.App.Report(types.ColumnID(args[0]))
		reports = []*phasereport.PhaseReport{r}
	}
	if err != nil {
		return formatter.Fail(err, "Run 'phaseboard board show' to see column IDs")
	}

	var written []string
	if outDir != "" {
		written, err = writeFiles(outDir, reports)
		if err != nil {
			return formatter.Fail(err, "")
		}
	}

	if quietMode {
		if len(written) > 0 {
			for _, path := range written {
				fmt.Println(path)
			}
			return nil
		}
		for _, r := range reports {
			fmt.Println(r.PhaseNumber)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"reports": reports,
			"files":   written,
		})
	}

	if len(written) > 0 {
		for _, path := range written {
			fmt.Printf("✓ Wrote %s\n", path)
		}
		return nil
	}

	md := make([]string, len(reports))
	for i, r := range reports {
		md[i] = phasereport.Markdown(r)
	}
	doc := strings.Join(md, "\n---\n\n")

	if format == FormatMarkdown {
		fmt.Print(doc)
		return nil
	}

	rendered, err := render(doc, style)
	if err != nil {
		slog.Warn("falling back to raw markdown", "error", err)
		fmt.Print(doc)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// render runs markdown through glamour
func render(doc, style string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(doc)
}

// writeFiles writes each report as JSON under dir and returns the paths
func writeFiles(dir string, reports []*phasereport.PhaseReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	paths := make([]string, 0, len(reports))
	for _, r := range reports {
		path := filepath.Join(dir, phasereport.FileName(r))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := phasereport.WriteJSON(f, r); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
