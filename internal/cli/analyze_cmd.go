package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okravets/freightdesk/internal/assistant"
	"github.com/okravets/freightdesk/internal/cli/formatter"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		question string
		mode     string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze a customs or logistics data file",
		Long: "Runs an AI analysis of a data file (CSV, XLSX export, plain text). " +
			"Without --question, produces a full report; with it, answers the question.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}

			analysisMode := assistant.AnalysisMode(mode)
			if mode == "" {
				analysisMode = assistant.ModeComprehensive
				if question != "" {
					analysisMode = assistant.ModeChat
				}
			}

			stopSpinner := func() {}
			if app.interactive() {
				stopSpinner = formatter.StartSpinner("Analyzing...")
			}
			result, err := app.Analyzer.Analyze(context.Background(), assistant.AnalyzeRequest{
				FileName:    fileBase(args[0]),
				FileType:    mimeTypeForPath(args[0]),
				FileContent: string(data),
				Question:    question,
				Mode:        analysisMode,
			})
			stopSpinner()
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(result), 0644); err != nil {
					return fmt.Errorf("writing analysis: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Analysis written to %s\n", outPath)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Ask a specific question about the file")
	cmd.Flags().StringVar(&mode, "mode", "", "Analysis mode: chat or comprehensive")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the analysis to a file")

	return cmd
}

func fileBase(path string) string {
	return filepath.Base(path)
}

// mimeTypeForPath maps the extensions this tool actually sees to MIME
// types, falling back to text/plain.
func mimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".pdf":
		return "application/pdf"
	case ".md":
		return "text/markdown"
	default:
		return "text/plain"
	}
}
