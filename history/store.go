package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

var (
	ErrDatabaseRequired   = errors.New("history: store requires a database")
	ErrDocumentIDRequired = errors.New("history: document id is required")
	ErrPathRequired       = errors.New("history: export path is required")
	ErrRecordNotFound     = errors.New("history: export record not found")
)

// StoreConfig captures history store behaviour.
type StoreConfig struct {
	// Retention caps the number of records kept per document. Zero keeps
	// everything.
	Retention int
	Logger    interfaces.Logger
}

// Store persists export runs in a Bun-backed database.
type Store struct {
	db        *bun.DB
	retention int
	logger    interfaces.Logger
}

// NewStore constructs a Bun-backed export history store.
func NewStore(db *bun.DB, cfg StoreConfig) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	retention := cfg.Retention
	if retention < 0 {
		retention = 0
	}
	return &Store{
		db:        db,
		retention: retention,
		logger:    logger,
	}
}

// Init creates the history table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	_, err := s.db.NewCreateTable().
		Model((*ExportRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Record persists one completed export and enforces the retention cap for
// its document. A missing identifier or timestamp is filled in.
func (s *Store) Record(ctx context.Context, record ExportRecord) (*ExportRecord, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	if strings.TrimSpace(record.DocumentID) == "" {
		return nil, ErrDocumentIDRequired
	}
	if strings.TrimSpace(record.Path) == "" {
		return nil, ErrPathRequired
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.ExportedAt.IsZero() {
		record.ExportedAt = time.Now().UTC()
	}

	if _, err := s.db.NewInsert().Model(&record).Exec(ctx); err != nil {
		return nil, err
	}

	if err := s.trimDocument(ctx, record.DocumentID); err != nil {
		return nil, err
	}

	s.logger.Debug("export recorded", "document_id", record.DocumentID, "path", record.Path)
	return &record, nil
}

// List returns export records for one document, newest first. A zero limit
// returns every record.
func (s *Store) List(ctx context.Context, documentID string, limit int) ([]ExportRecord, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrDocumentIDRequired
	}

	var records []ExportRecord
	query := s.db.NewSelect().
		Model(&records).
		Where("document_id = ?", documentID).
		Order("exported_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// Last returns the most recent export of one document.
func (s *Store) Last(ctx context.Context, documentID string) (*ExportRecord, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrDocumentIDRequired
	}

	var record ExportRecord
	err := s.db.NewSelect().
		Model(&record).
		Where("document_id = ?", documentID).
		Order("exported_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// trimDocument deletes records beyond the retention cap, oldest first.
func (s *Store) trimDocument(ctx context.Context, documentID string) error {
	if s.retention <= 0 {
		return nil
	}

	var stale []ExportRecord
	err := s.db.NewSelect().
		Model(&stale).
		Column("id").
		Where("document_id = ?", documentID).
		Order("exported_at DESC").
		Offset(s.retention).
		Scan(ctx)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]string, len(stale))
	for i := range stale {
		ids[i] = stale[i].ID
	}

	_, err = s.db.NewDelete().
		Model((*ExportRecord)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err == nil {
		s.logger.Debug("history trimmed", "document_id", documentID, "removed", len(ids))
	}
	return err
}
