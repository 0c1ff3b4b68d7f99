package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-docmark/cmd/docmark/internal/bootstrap"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

type stubExportService struct {
	calls []string
	opts  []interfaces.ExportOptions
}

func (s *stubExportService) ExportDocument(_ context.Context, documentID string, opts interfaces.ExportOptions) (*interfaces.ExportResult, error) {
	s.calls = append(s.calls, documentID)
	s.opts = append(s.opts, opts)
	return &interfaces.ExportResult{
		DocumentID: documentID,
		Title:      "Doc " + documentID,
		Path:       "exports/" + documentID + ".md",
	}, nil
}

func withStubBuilder(t *testing.T, svc *stubExportService) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service: svc,
			Logger:  logging.NoOp(),
		}, nil
	}
}

func TestRunExportExportsEachDocument(t *testing.T) {
	svc := &stubExportService{}
	withStubBuilder(t, svc)

	if err := runExport([]string{"-documents", "doc1,doc2", "doc3"}); err != nil {
		t.Fatalf("runExport returned error: %v", err)
	}

	if len(svc.calls) != 3 {
		t.Fatalf("expected three exports, got %d", len(svc.calls))
	}
	if svc.calls[0] != "doc1" || svc.calls[1] != "doc2" || svc.calls[2] != "doc3" {
		t.Fatalf("unexpected export order: %v", svc.calls)
	}
}

func TestRunExportForwardsDryRun(t *testing.T) {
	svc := &stubExportService{}
	withStubBuilder(t, svc)

	if err := runExport([]string{"-dry-run", "doc1"}); err != nil {
		t.Fatalf("runExport returned error: %v", err)
	}
	if len(svc.opts) != 1 || !svc.opts[0].DryRun {
		t.Fatalf("expected dry run option, got %+v", svc.opts)
	}
}

func TestRunExportRequiresDocumentID(t *testing.T) {
	svc := &stubExportService{}
	withStubBuilder(t, svc)

	if err := runExport(nil); err == nil {
		t.Fatal("expected error without document ids")
	}
	if len(svc.calls) != 0 {
		t.Fatalf("expected no exports, got %d", len(svc.calls))
	}
}
