package exporter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-docmark/blocks"
	"github.com/goliatone/go-docmark/history"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/render"
)

var (
	ErrSourceRequired   = errors.New("exporter: block source is required")
	ErrRendererRequired = errors.New("exporter: renderer is required")
	ErrDocumentID       = errors.New("exporter: document id is required")
)

// ImageResolver optionally fills download URLs on image records before
// rendering. The fetch client implements it; tests substitute stubs.
type ImageResolver interface {
	ResolveImageURLs(ctx context.Context, records []blocks.BlockRecord) error
}

// ServiceConfig encapsulates dependencies and behaviour for the export
// pipeline. Source and Renderer are required; everything else is optional.
type ServiceConfig struct {
	Source   interfaces.BlockSource
	Renderer render.Service
	Images   ImageResolver
	History  *history.Store
	Logger   interfaces.Logger

	OutputDir          string
	TimestampSuffix    bool
	IncludeFrontmatter bool
	Overwrite          bool

	// Now is the clock used for timestamps and filenames. Defaults to
	// time.Now.
	Now func() time.Time
}

// Service runs the full export pipeline: fetch, assemble, render, write,
// record. It satisfies interfaces.ExportService.
type Service struct {
	source   interfaces.BlockSource
	renderer render.Service
	images   ImageResolver
	store    *history.Store
	logger   interfaces.Logger

	outputDir       string
	timestampSuffix bool
	frontmatter     bool
	overwrite       bool
	now             func() time.Time
}

var _ interfaces.ExportService = (*Service)(nil)

// NewService builds an export service from the supplied configuration.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Source == nil {
		return nil, ErrSourceRequired
	}
	if cfg.Renderer == nil {
		return nil, ErrRendererRequired
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	outputDir := strings.TrimSpace(cfg.OutputDir)
	if outputDir == "" {
		outputDir = "exports"
	}

	return &Service{
		source:          cfg.Source,
		renderer:        cfg.Renderer,
		images:          cfg.Images,
		store:           cfg.History,
		logger:          logger,
		outputDir:       outputDir,
		timestampSuffix: cfg.TimestampSuffix,
		frontmatter:     cfg.IncludeFrontmatter,
		overwrite:       cfg.Overwrite,
		now:             now,
	}, nil
}

// ExportDocument fetches a document's block records, converts them to
// markdown, and writes the result to disk. Dry runs stop after rendering and
// report the would-be content without touching the filesystem or history.
func (s *Service) ExportDocument(ctx context.Context, documentID string, opts interfaces.ExportOptions) (*interfaces.ExportResult, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, ErrDocumentID
	}

	logger := logging.WithDocumentContext(s.logger, documentID, "", "")
	logger.Info("export started")

	info, err := s.source.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	records, err := s.source.ListBlocks(ctx, documentID)
	if err != nil {
		return nil, err
	}
	logger.Debug("blocks fetched", "count", len(records))

	if s.images != nil {
		if err := s.images.ResolveImageURLs(ctx, records); err != nil {
			// Unresolved images degrade to placeholders, they do not fail
			// the export.
			logger.Warn("image resolution failed", "error", err)
		}
	}

	rendered, err := s.renderer.Convert(ctx, records)
	if err != nil {
		return nil, err
	}

	title := rendered.Title
	if title == "" {
		title = info.Title
	}

	exportedAt := s.now().UTC()
	warnings := warningStrings(rendered.Warnings)

	content := rendered.Markdown
	if s.frontmatter {
		front, err := renderFrontmatter(documentMeta{
			Title:      title,
			DocumentID: documentID,
			RevisionID: info.RevisionID,
			ExportedAt: exportedAt,
			Warnings:   warnings,
		})
		if err != nil {
			return nil, err
		}
		content = front + "\n" + content
	}

	result := &interfaces.ExportResult{
		DocumentID: documentID,
		Title:      title,
		Markdown:   content,
		Warnings:   warnings,
	}

	if opts.DryRun {
		result.Checksum = checksum(content)
		logger.Info("export dry run complete", "warnings", len(warnings))
		return result, nil
	}

	outputDir := s.outputDir
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		outputDir = dir
	}
	overwrite := s.overwrite || opts.Overwrite

	path := uniquePath(outputDir, fileStem(title, exportedAt, s.timestampSuffix), overwrite)
	sum, err := writeDocument(path, content)
	if err != nil {
		return nil, err
	}
	result.Path = path
	result.Checksum = sum

	if s.store != nil {
		_, err := s.store.Record(ctx, history.ExportRecord{
			DocumentID: documentID,
			RevisionID: info.RevisionID,
			Title:      title,
			Path:       path,
			Checksum:   sum,
			Warnings:   len(warnings),
			ExportedAt: exportedAt,
		})
		if err != nil {
			return nil, err
		}
	}

	logging.WithDocumentContext(s.logger, documentID, "", path).
		Info("export complete", "warnings", len(warnings))
	return result, nil
}

func warningStrings(warnings []render.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
