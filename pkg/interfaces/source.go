package interfaces

import (
	"context"

	"github.com/goliatone/go-docmark/blocks"
)

// DocumentInfo is the metadata envelope for a remote document.
type DocumentInfo struct {
	DocumentID string
	RevisionID int
	Title      string
}

// BlockSource is the fetch collaborator contract: it hands the exporter a
// complete block record set for a document. Implementations own pagination,
// retries, and credentials; overlapping pages are fine because tree assembly
// deduplicates by identifier.
type BlockSource interface {
	GetDocument(ctx context.Context, documentID string) (*DocumentInfo, error)
	ListBlocks(ctx context.Context, documentID string) ([]blocks.BlockRecord, error)
}
