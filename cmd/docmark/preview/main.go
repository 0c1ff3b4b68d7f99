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
	var (
		document  = flag.String("document", "", "Document id to fetch and preview")
		baseURL   = flag.String("base-url", "", "API base URL (defaults to FEISHU_BASE_URL)")
		token     = flag.String("token", "", "API access token (defaults to FEISHU_ACCESS_TOKEN)")
		asHTML    = flag.Bool("html", false, "Render the markdown preview into HTML")
		logLevel  = flag.String("log-level", "warn", "Log level (trace, debug, info, warn, error, fatal)")
		logFormat = flag.String("log-format", "console", "Log format (json, console, pretty)")
	)

	flag.Parse()

	if *document == "" {
		log.Fatalf("--document is required")
	}

	noFrontmatter := false
	module, err := moduleBuilder(bootstrap.Options{
		BaseURL:            *baseURL,
		AccessToken:        *token,
		IncludeFrontmatter: &noFrontmatter,
		LogLevel:           *logLevel,
		LogFormat:          *logFormat,
		Preview:            *asHTML,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Module.Close()

	ctx := context.Background()

	result, err := module.Service.ExportDocument(ctx, *document, docmark.ExportOptions{DryRun: true})
	if err != nil {
		log.Fatalf("render document: %v", err)
	}

	output := result.Markdown
	if *asHTML {
		renderer := module.Module.Preview()
		if renderer == nil {
			log.Fatalf("preview renderer not configured")
		}
		htmlOut, err := renderer.Render([]byte(result.Markdown))
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		output = string(htmlOut)
	}

	fmt.Fprintf(os.Stderr, "Title: %s\nChecksum: %s\nWarnings: %d\n\n", result.Title, result.Checksum, len(result.Warnings))
	fmt.Fprint(os.Stdout, output)
}
