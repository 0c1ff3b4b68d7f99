package exportcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-docmark/internal/commands"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const exportOperation = "export.document"

// ErrFetchFeatureDisabled is returned when the fetch feature flag is disabled at runtime.
var ErrFetchFeatureDisabled = errors.New("export command: fetch feature disabled")

var _ command.Commander[ExportDocumentCommand] = (*ExportDocumentHandler)(nil)

// FeatureGates exposes runtime feature toggles required by export command
// handlers. Callers supply closures that read from the runtime configuration
// so handlers stay decoupled from it.
type FeatureGates struct {
	FetchEnabled func() bool
}

func (g FeatureGates) fetchEnabled() bool {
	if g.FetchEnabled == nil {
		return true
	}
	return g.FetchEnabled()
}

// ExportDocumentHandler orchestrates document exports via the shared command
// handler foundation.
type ExportDocumentHandler struct {
	inner *commands.Handler[ExportDocumentCommand]
}

// NewExportDocumentHandler creates a handler bound to the supplied export service.
func NewExportDocumentHandler(service interfaces.ExportService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ExportDocumentCommand]) *ExportDocumentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExportDocumentCommand) error {
		if !gates.fetchEnabled() {
			return ErrFetchFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.ExportDocument(ctx, msg.DocumentID, interfaces.ExportOptions{
			OutputDir: msg.OutputDir,
			DryRun:    msg.DryRun,
			Overwrite: msg.Overwrite,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"document_id":   result.DocumentID,
				"path":          result.Path,
				"warning_count": len(result.Warnings),
				"dry_run":       msg.DryRun,
			}).Info("export.command.document.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportDocumentCommand]{
		commands.WithLogger[ExportDocumentCommand](baseLogger),
		commands.WithOperation[ExportDocumentCommand](exportOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportDocumentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportDocumentCommand].
func (h *ExportDocumentHandler) Execute(ctx context.Context, msg ExportDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the export command handlers produced by RegisterExportCommands.
type HandlerSet struct {
	Export *ExportDocumentHandler
}

// RegisterExportCommands builds export command handlers and registers them
// with the provided registry. The constructed handlers are returned so
// callers can wire additional integrations as needed.
func RegisterExportCommands(reg CommandRegistry, service interfaces.ExportService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...commands.HandlerOption[ExportDocumentCommand]) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("export command registration: service is nil")
	}

	logger := commands.CommandLogger(provider, "export")
	handler := NewExportDocumentHandler(service, logger, gates, opts...)

	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Export: handler}, nil
}
