package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	docmark "github.com/goliatone/go-docmark"
	"github.com/goliatone/go-docmark/cmd/docmark/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runExport(os.Args[1:]); err != nil {
		log.Fatalf("docmark export: %v", err)
	}
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("docmark-export", flag.ExitOnError)
	documents := fs.String("documents", "", "Comma separated document ids to export (positional ids also accepted)")
	baseURL := fs.String("base-url", "", "API base URL (defaults to FEISHU_BASE_URL)")
	token := fs.String("token", "", "API access token (defaults to FEISHU_ACCESS_TOKEN)")
	outputDir := fs.String("output", "exports", "Directory exported markdown is written to")
	timestamp := fs.Bool("timestamp", true, "Append the export timestamp to filenames")
	withFrontmatter := fs.Bool("frontmatter", true, "Prepend a YAML frontmatter block to exports")
	overwrite := fs.Bool("overwrite", false, "Replace existing files instead of choosing unique names")
	dryRun := fs.Bool("dry-run", false, "Render documents without writing anything to disk")
	history := fs.Bool("history", false, "Record completed exports in the local history database")
	historyDSN := fs.String("history-dsn", "", "History database DSN (defaults to a local sqlite file)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	ids := bootstrap.SplitIDs(*documents)
	ids = append(ids, fs.Args()...)
	if len(ids) == 0 {
		return fmt.Errorf("at least one document id is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		BaseURL:            *baseURL,
		AccessToken:        *token,
		OutputDir:          *outputDir,
		TimestampSuffix:    timestamp,
		IncludeFrontmatter: withFrontmatter,
		Overwrite:          *overwrite,
		History:            *history,
		HistoryDSN:         *historyDSN,
		LogLevel:           *logLevel,
		LogFormat:          *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	ctx := context.Background()

	for _, id := range ids {
		result, err := module.Service.ExportDocument(ctx, id, docmark.ExportOptions{
			DryRun: *dryRun,
		})
		if err != nil {
			return fmt.Errorf("export document %s: %w", id, err)
		}

		if *dryRun {
			fmt.Fprintf(os.Stdout, "%s %q would export (%d bytes, %d warnings)\n",
				id, result.Title, len(result.Markdown), len(result.Warnings))
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %q -> %s\n", id, result.Title, result.Path)
		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stdout, "  warning: %s\n", warning)
		}
	}

	return nil
}
