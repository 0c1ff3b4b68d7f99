package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const exportDocumentMessageType = "docmark.export.document"

// ExportDocumentCommand triggers a full fetch, convert, and write cycle for
// one remote document. Options map directly onto interfaces.ExportOptions.
type ExportDocumentCommand struct {
	// DocumentID selects the remote document to export.
	DocumentID string `json:"document_id"`
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string `json:"output_dir,omitempty"`
	// DryRun renders the document without writing anything to disk.
	DryRun bool `json:"dry_run,omitempty"`
	// Overwrite replaces an existing file instead of choosing a unique name.
	Overwrite bool `json:"overwrite,omitempty"`
}

// Type implements command.Message.
func (ExportDocumentCommand) Type() string { return exportDocumentMessageType }

// Validate ensures a document identifier is present before handlers execute.
func (cmd ExportDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DocumentID, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("docmark.export.document_id_required", "document id is required")
			}
			return nil
		})),
	)
}
