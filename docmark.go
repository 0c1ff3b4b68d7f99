package docmark

import (
	"context"

	exportcmd "github.com/goliatone/go-docmark/internal/commands/export"
	"github.com/goliatone/go-docmark/internal/di"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/preview"
	"github.com/goliatone/go-docmark/render"
)

// RenderService exports the markdown render service contract.
type RenderService = render.Service

// RenderResult exports the conversion result DTO.
type RenderResult = render.Result

// ExportService exports the document export pipeline contract.
type ExportService = interfaces.ExportService

// ExportOptions exports the per-call export options.
type ExportOptions = interfaces.ExportOptions

// ExportResult exports the export result DTO.
type ExportResult = interfaces.ExportResult

// BlockSource exports the remote document source contract.
type BlockSource = interfaces.BlockSource

// DocumentInfo exports the remote document metadata DTO.
type DocumentInfo = interfaces.DocumentInfo

// PreviewRenderer exports the markdown-to-HTML preview renderer.
type PreviewRenderer = preview.Renderer

// CommandRegistry exports the registry contract command handlers attach to.
type CommandRegistry = exportcmd.CommandRegistry

// Module is the top level exporter runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an exporter module from the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Renderer returns the configured markdown render service.
func (m *Module) Renderer() RenderService {
	return m.container.Renderer()
}

// Exporter returns the export pipeline, nil when no block source is
// configured.
func (m *Module) Exporter() ExportService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ExportService()
}

// Source returns the configured block source, nil when fetch is disabled.
func (m *Module) Source() BlockSource {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.BlockSource()
}

// Preview returns the HTML preview renderer, nil when previews are disabled.
func (m *Module) Preview() *PreviewRenderer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Preview()
}

// ExportDocument runs the export pipeline for a single document.
func (m *Module) ExportDocument(ctx context.Context, documentID string, opts ExportOptions) (*ExportResult, error) {
	svc := m.Exporter()
	if svc == nil {
		return nil, exportcmd.ErrFetchFeatureDisabled
	}
	return svc.ExportDocument(ctx, documentID, opts)
}

// RegisterCommands attaches the export command handlers to the provided
// registry.
func (m *Module) RegisterCommands(reg CommandRegistry) error {
	svc := m.Exporter()
	if svc == nil {
		return exportcmd.ErrFetchFeatureDisabled
	}
	_, err := exportcmd.RegisterExportCommands(reg, svc, m.container.LoggerProvider(), exportcmd.FeatureGates{
		FetchEnabled: m.container.FetchEnabled,
	})
	return err
}

// Close releases resources owned by the module, such as the history
// database handle.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
