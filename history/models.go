package history

import (
	"time"

	"github.com/uptrace/bun"
)

// ExportRecord is one completed export run persisted for auditing and
// incremental re-export decisions.
type ExportRecord struct {
	bun.BaseModel `bun:"table:export_history,alias:eh"`

	ID         string    `bun:"id,pk"`
	DocumentID string    `bun:"document_id,notnull"`
	RevisionID int       `bun:"revision_id"`
	Title      string    `bun:"title"`
	Path       string    `bun:"path,notnull"`
	Checksum   string    `bun:"checksum"`
	Warnings   int       `bun:"warnings"`
	ExportedAt time.Time `bun:"exported_at,notnull"`
}
