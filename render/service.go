package render

import (
	"context"
	"errors"

	"github.com/goliatone/go-docmark/blocks"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

var ErrNilTree = errors.New("render: document tree is required")

// Service converts assembled block trees into markdown documents.
type Service interface {
	Convert(ctx context.Context, records []blocks.BlockRecord) (*Result, error)
	ConvertTree(ctx context.Context, tree *blocks.DocumentTree) (*Result, error)
}

// Result is one rendered document. Markdown ends with a single trailing
// newline unless the document is empty. Warnings carry every non-fatal
// degradation encountered while rendering.
type Result struct {
	Markdown string
	Title    string
	Warnings []Warning
}

// ServiceConfig encapsulates rendering options and ambient dependencies.
type ServiceConfig struct {
	Options Options
	Logger  interfaces.Logger
}

type service struct {
	opts   Options
	logger interfaces.Logger
}

// NewService builds a renderer from the supplied configuration.
func NewService(cfg ServiceConfig) Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		opts:   cfg.Options.normalized(),
		logger: logger,
	}
}

// Convert assembles the record set and renders it. Assembly failures are
// returned unrendered; see blocks.Assemble for the failure modes.
func (s *service) Convert(ctx context.Context, records []blocks.BlockRecord) (*Result, error) {
	tree, err := blocks.Assemble(records)
	if err != nil {
		return nil, err
	}
	return s.ConvertTree(ctx, tree)
}

// ConvertTree renders an already-assembled tree.
func (s *service) ConvertTree(ctx context.Context, tree *blocks.DocumentTree) (*Result, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := newComposer(tree, s.opts)
	markdown, title := c.compose()
	warnings := c.warnings.all()

	for _, w := range warnings {
		s.logger.Warn("render degradation", "code", string(w.Code), "block_id", w.BlockID, "detail", w.Message)
	}
	s.logger.Debug("document rendered", "blocks", tree.Len(), "warnings", len(warnings))

	return &Result{
		Markdown: markdown,
		Title:    title,
		Warnings: warnings,
	}, nil
}
