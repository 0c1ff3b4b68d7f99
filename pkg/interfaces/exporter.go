package interfaces

import "context"

// ExportOptions adjusts a single export run. Zero values defer to the
// service's configured behaviour.
type ExportOptions struct {
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
	// DryRun renders the document without writing anything to disk.
	DryRun bool
	// Overwrite replaces an existing file instead of choosing a unique name.
	Overwrite bool
}

// ExportResult reports one completed export.
type ExportResult struct {
	DocumentID string
	Title      string
	Path       string
	Checksum   string
	Markdown   string
	Warnings   []string
}

// ExportService turns a remote document into a markdown file on disk.
type ExportService interface {
	ExportDocument(ctx context.Context, documentID string, opts ExportOptions) (*ExportResult, error)
}
